package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/tubebridge/tubebridge-api/internal/domain/model"
	apperrors "github.com/tubebridge/tubebridge-api/internal/errors"
	"github.com/tubebridge/tubebridge-api/internal/mocks"
)

const testUploadID int64 = 42

func newReviewService(t *testing.T) (*mocks.MockUploadRepository, *mocks.MockActivityRepository, *ReviewService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	uploadRepo := mocks.NewMockUploadRepository(ctrl)
	activityRepo := mocks.NewMockActivityRepository(ctrl)

	service := NewReviewService(ReviewServiceOptions{
		Uploads:  uploadRepo,
		Activity: activityRepo,
	})

	return uploadRepo, activityRepo, service
}

func TestReviewService_Approve_Pending(t *testing.T) {
	t.Parallel()
	uploadRepo, activityRepo, service := newReviewService(t)
	ctx := context.Background()

	uploadRepo.EXPECT().
		GetByID(ctx, testUploadID).
		Return(&model.Upload{ID: testUploadID, Status: model.UploadStatusPending}, nil).
		Times(1)

	approved := &model.Upload{ID: testUploadID, Status: model.UploadStatusApproved}
	uploadRepo.EXPECT().
		UpdateStatus(ctx, testUploadID, &model.ReviewUploadRequest{Status: model.UploadStatusApproved}).
		Return(approved, nil).
		Times(1)

	activityRepo.EXPECT().
		Create(ctx, &model.CreateActivityRequest{
			UploadID: testUploadID,
			Action:   model.ActivityUploadApproved,
			Actor:    "editor@example.com",
		}).
		Return(&model.ActivityEntry{}, nil).
		Times(1)

	result, err := service.Approve(ctx, testUploadID, "editor@example.com", model.ReviewUploadEdits{})
	require.NoError(t, err)
	assert.Equal(t, approved, result)
}

func TestReviewService_Approve_Scheduled(t *testing.T) {
	t.Parallel()
	uploadRepo, activityRepo, service := newReviewService(t)
	ctx := context.Background()

	// Scheduled uploads are still awaiting review and can be decided
	uploadRepo.EXPECT().
		GetByID(ctx, testUploadID).
		Return(&model.Upload{ID: testUploadID, Status: model.UploadStatusScheduled}, nil).
		Times(1)
	uploadRepo.EXPECT().
		UpdateStatus(ctx, testUploadID, gomock.Any()).
		Return(&model.Upload{ID: testUploadID, Status: model.UploadStatusApproved}, nil).
		Times(1)
	activityRepo.EXPECT().
		Create(ctx, gomock.Any()).
		Return(&model.ActivityEntry{}, nil).
		Times(1)

	_, err := service.Approve(ctx, testUploadID, "editor@example.com", model.ReviewUploadEdits{})
	require.NoError(t, err)
}

func TestReviewService_Approve_AlreadyDecided(t *testing.T) {
	t.Parallel()

	for _, status := range []model.UploadStatus{model.UploadStatusApproved, model.UploadStatusRejected} {
		t.Run(string(status), func(t *testing.T) {
			t.Parallel()
			uploadRepo, _, service := newReviewService(t)
			ctx := context.Background()

			uploadRepo.EXPECT().
				GetByID(ctx, testUploadID).
				Return(&model.Upload{ID: testUploadID, Status: status}, nil).
				Times(1)

			result, err := service.Approve(ctx, testUploadID, "editor@example.com", model.ReviewUploadEdits{})
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, apperrors.IsConflict(err))
		})
	}
}

func TestReviewService_Approve_NotFound(t *testing.T) {
	t.Parallel()
	uploadRepo, _, service := newReviewService(t)
	ctx := context.Background()

	notFound := errors.New("upload not found")
	uploadRepo.EXPECT().
		GetByID(ctx, testUploadID).
		Return(nil, notFound).
		Times(1)

	_, err := service.Approve(ctx, testUploadID, "editor@example.com", model.ReviewUploadEdits{})
	assert.ErrorIs(t, err, notFound)
}

func TestReviewService_Approve_AppliesEdits(t *testing.T) {
	t.Parallel()
	uploadRepo, activityRepo, service := newReviewService(t)
	ctx := context.Background()

	title := "Launch Video (final)"
	description := "Re-cut with the new intro."
	tags := []string{"launch", "final"}

	uploadRepo.EXPECT().
		GetByID(ctx, testUploadID).
		Return(&model.Upload{ID: testUploadID, Status: model.UploadStatusPending}, nil).
		Times(1)
	uploadRepo.EXPECT().
		UpdateStatus(ctx, testUploadID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int64, req *model.ReviewUploadRequest) (*model.Upload, error) {
			assert.Equal(t, model.UploadStatusApproved, req.Status)
			require.NotNil(t, req.Title)
			assert.Equal(t, title, *req.Title)
			require.NotNil(t, req.Description)
			assert.Equal(t, description, *req.Description)
			assert.Equal(t, tags, req.Tags)
			return &model.Upload{ID: testUploadID, Status: model.UploadStatusApproved, Title: title}, nil
		}).
		Times(1)
	activityRepo.EXPECT().
		Create(ctx, gomock.Any()).
		Return(&model.ActivityEntry{}, nil).
		Times(1)

	result, err := service.Approve(ctx, testUploadID, "editor@example.com", model.ReviewUploadEdits{
		Title:       &title,
		Description: &description,
		Tags:        tags,
	})
	require.NoError(t, err)
	assert.Equal(t, title, result.Title)
}

func TestReviewService_Approve_RejectsBlankEdits(t *testing.T) {
	t.Parallel()
	uploadRepo, _, service := newReviewService(t)
	ctx := context.Background()

	uploadRepo.EXPECT().
		GetByID(ctx, gomock.Any()).
		Times(0)

	blank := "   "
	_, err := service.Approve(ctx, testUploadID, "editor@example.com", model.ReviewUploadEdits{
		Description: &blank,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestReviewService_ListQueue(t *testing.T) {
	t.Parallel()
	uploadRepo, _, service := newReviewService(t)
	ctx := context.Background()

	queue := []*model.Upload{
		{ID: 5, Status: model.UploadStatusScheduled},
		{ID: 3, Status: model.UploadStatusPending},
	}
	uploadRepo.EXPECT().
		List(ctx, model.UploadsListOptions{
			Limit:    20,
			Statuses: []model.UploadStatus{model.UploadStatusPending, model.UploadStatusScheduled},
		}).
		Return(queue, nil).
		Times(1)

	got, err := service.ListQueue(ctx, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, queue, got)
}

func TestReviewService_Reject_Success(t *testing.T) {
	t.Parallel()
	uploadRepo, activityRepo, service := newReviewService(t)
	ctx := context.Background()

	feedback := "Audio clipping throughout, please re-record"
	uploadRepo.EXPECT().
		GetByID(ctx, testUploadID).
		Return(&model.Upload{ID: testUploadID, Status: model.UploadStatusPending}, nil).
		Times(1)

	rejected := &model.Upload{ID: testUploadID, Status: model.UploadStatusRejected, Feedback: &feedback}
	uploadRepo.EXPECT().
		UpdateStatus(ctx, testUploadID, &model.ReviewUploadRequest{
			Status:   model.UploadStatusRejected,
			Feedback: &feedback,
		}).
		Return(rejected, nil).
		Times(1)

	activityRepo.EXPECT().
		Create(ctx, &model.CreateActivityRequest{
			UploadID: testUploadID,
			Action:   model.ActivityUploadRejected,
			Actor:    "editor@example.com",
			Detail:   &feedback,
		}).
		Return(&model.ActivityEntry{}, nil).
		Times(1)

	result, err := service.Reject(ctx, testUploadID, "editor@example.com", feedback)
	require.NoError(t, err)
	assert.Equal(t, rejected, result)
}

func TestReviewService_Reject_RequiresFeedback(t *testing.T) {
	t.Parallel()
	_, _, service := newReviewService(t)
	ctx := context.Background()

	for _, feedback := range []string{"", "   "} {
		result, err := service.Reject(ctx, testUploadID, "editor@example.com", feedback)
		require.Error(t, err)
		assert.Nil(t, result)
		assert.True(t, apperrors.IsValidation(err))
		assert.Equal(t, "feedback", apperrors.GetField(err))
	}
}

func TestReviewService_Reject_ActivityFailureSwallowed(t *testing.T) {
	t.Parallel()
	uploadRepo, activityRepo, service := newReviewService(t)
	ctx := context.Background()

	uploadRepo.EXPECT().
		GetByID(ctx, testUploadID).
		Return(&model.Upload{ID: testUploadID, Status: model.UploadStatusPending}, nil).
		Times(1)
	uploadRepo.EXPECT().
		UpdateStatus(ctx, testUploadID, gomock.Any()).
		Return(&model.Upload{ID: testUploadID, Status: model.UploadStatusRejected}, nil).
		Times(1)
	activityRepo.EXPECT().
		Create(ctx, gomock.Any()).
		Return(nil, errors.New("feed unavailable")).
		Times(1)

	// The decision is already committed; feed errors do not surface
	_, err := service.Reject(ctx, testUploadID, "editor@example.com", "needs work")
	require.NoError(t, err)
}
