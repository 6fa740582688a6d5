package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/tubebridge/tubebridge-api/config"
	"github.com/tubebridge/tubebridge-api/internal/domain/model"
	apperrors "github.com/tubebridge/tubebridge-api/internal/errors"
	"github.com/tubebridge/tubebridge-api/internal/mocks"
)

// fastUploadConfig finishes simulated transfers on the first tick.
func fastUploadConfig() config.UploadConfig {
	return config.UploadConfig{
		ProgressTick:  time.Millisecond,
		ProgressStep:  100,
		SubmitGrace:   time.Minute,
		StagingTTL:    time.Hour,
		MaxVideoBytes: 1 << 30,
	}
}

// slowUploadConfig keeps transfers running long enough to observe and cancel.
func slowUploadConfig() config.UploadConfig {
	return config.UploadConfig{
		ProgressTick:  time.Millisecond,
		ProgressStep:  1,
		SubmitGrace:   time.Minute,
		StagingTTL:    time.Hour,
		MaxVideoBytes: 1 << 30,
	}
}

func newUploadService(t *testing.T, cfg config.UploadConfig) (*mocks.MockUploadRepository, *mocks.MockActivityRepository, *UploadService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	uploadRepo := mocks.NewMockUploadRepository(ctrl)
	activityRepo := mocks.NewMockActivityRepository(ctrl)

	service := NewUploadService(UploadServiceOptions{
		Uploads:  uploadRepo,
		Activity: activityRepo,
		Config:   cfg,
	})

	return uploadRepo, activityRepo, service
}

func videoInput() SelectFileInput {
	return SelectFileInput{
		FileName:    "launch.mp4",
		ContentType: "video/mp4",
		Size:        42 << 20,
	}
}

// waitForVideoReady polls the staging snapshot until the video transfer finishes.
func waitForVideoReady(t *testing.T, service *UploadService, id string) *model.StagingState {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		state, err := service.GetStaging(context.Background(), id)
		require.NoError(t, err)
		if state.VideoReady() {
			return state
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatal("video transfer did not finish in time")
	return nil
}

func TestUploadService_OpenStaging(t *testing.T) {
	t.Parallel()
	_, _, service := newUploadService(t, fastUploadConfig())

	state := service.OpenStaging(context.Background())

	assert.NotEmpty(t, state.ID)
	assert.Nil(t, state.Video)
	assert.Nil(t, state.Thumbnail)
	assert.Empty(t, state.Details.Title)
	assert.False(t, state.CreatedAt.IsZero())
}

func TestUploadService_GetStaging_NotFound(t *testing.T) {
	t.Parallel()
	_, _, service := newUploadService(t, fastUploadConfig())

	_, err := service.GetStaging(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestUploadService_SelectVideo_RejectsNonMP4(t *testing.T) {
	t.Parallel()
	_, _, service := newUploadService(t, fastUploadConfig())
	ctx := context.Background()
	state := service.OpenStaging(ctx)

	_, err := service.SelectVideo(ctx, state.ID, SelectFileInput{
		FileName:    "clip.mov",
		ContentType: "video/quicktime",
		Size:        1024,
	})

	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "video", apperrors.GetField(err))
}

func TestUploadService_SelectVideo_RejectsOversize(t *testing.T) {
	t.Parallel()
	_, _, service := newUploadService(t, fastUploadConfig())
	ctx := context.Background()
	state := service.OpenStaging(ctx)

	input := videoInput()
	input.Size = 2 << 30

	_, err := service.SelectVideo(ctx, state.ID, input)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestUploadService_SelectVideo_ProgressCompletes(t *testing.T) {
	t.Parallel()
	_, _, service := newUploadService(t, fastUploadConfig())
	ctx := context.Background()
	state := service.OpenStaging(ctx)

	after, err := service.SelectVideo(ctx, state.ID, videoInput())
	require.NoError(t, err)
	require.NotNil(t, after.Video)
	assert.Equal(t, "launch.mp4", after.Video.FileName)
	assert.False(t, after.Video.Ready)

	done := waitForVideoReady(t, service, state.ID)
	assert.Equal(t, model.StagedProgressDone, done.Video.Progress)
	assert.True(t, done.Video.Ready)
}

func TestUploadService_ClearVideo_CancelsTransfer(t *testing.T) {
	t.Parallel()
	_, _, service := newUploadService(t, slowUploadConfig())
	ctx := context.Background()
	state := service.OpenStaging(ctx)

	_, err := service.SelectVideo(ctx, state.ID, videoInput())
	require.NoError(t, err)

	after, err := service.ClearVideo(ctx, state.ID)
	require.NoError(t, err)
	assert.Nil(t, after.Video)

	// The cleared transfer must not resurrect the slot
	time.Sleep(10 * time.Millisecond)
	latest, err := service.GetStaging(ctx, state.ID)
	require.NoError(t, err)
	assert.Nil(t, latest.Video)
}

func TestUploadService_ReplaceVideo_RestartsProgress(t *testing.T) {
	t.Parallel()
	_, _, service := newUploadService(t, slowUploadConfig())
	ctx := context.Background()
	state := service.OpenStaging(ctx)

	_, err := service.SelectVideo(ctx, state.ID, videoInput())
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)

	replacement := videoInput()
	replacement.FileName = "retake.mp4"
	after, err := service.SelectVideo(ctx, state.ID, replacement)
	require.NoError(t, err)
	assert.Equal(t, "retake.mp4", after.Video.FileName)
	assert.Equal(t, 0, after.Video.Progress)
	assert.False(t, after.Video.Ready)
}

func TestUploadService_Thumbnail_IndependentOfVideo(t *testing.T) {
	t.Parallel()
	_, _, service := newUploadService(t, slowUploadConfig())
	ctx := context.Background()
	state := service.OpenStaging(ctx)

	_, err := service.SelectVideo(ctx, state.ID, videoInput())
	require.NoError(t, err)

	_, err = service.SelectThumbnail(ctx, state.ID, SelectFileInput{
		FileName:    "cover.png",
		ContentType: "image/png",
		Size:        2048,
		Data:        []byte{0x89, 0x50, 0x4e, 0x47},
	})
	require.NoError(t, err)

	// Cancelling the thumbnail leaves the video transfer running
	after, err := service.ClearThumbnail(ctx, state.ID)
	require.NoError(t, err)
	assert.Nil(t, after.Thumbnail)
	require.NotNil(t, after.Video)
}

func TestUploadService_SelectThumbnail_RejectsNonImage(t *testing.T) {
	t.Parallel()
	_, _, service := newUploadService(t, fastUploadConfig())
	ctx := context.Background()
	state := service.OpenStaging(ctx)

	_, err := service.SelectThumbnail(ctx, state.ID, SelectFileInput{
		FileName:    "cover.pdf",
		ContentType: "application/pdf",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "thumbnail", apperrors.GetField(err))
}

func TestUploadService_SelectThumbnail_PreviewDataURL(t *testing.T) {
	t.Parallel()
	_, _, service := newUploadService(t, fastUploadConfig())
	ctx := context.Background()
	state := service.OpenStaging(ctx)

	after, err := service.SelectThumbnail(ctx, state.ID, SelectFileInput{
		FileName:    "cover.png",
		ContentType: "image/png",
		Size:        4,
		Data:        []byte{0x89, 0x50, 0x4e, 0x47},
	})
	require.NoError(t, err)
	require.NotNil(t, after.Thumbnail)
	require.NotNil(t, after.Thumbnail.PreviewURL)
	assert.True(t, strings.HasPrefix(*after.Thumbnail.PreviewURL, "data:image/png;base64,"))
}

// thumbnailInput is a minimal valid thumbnail selection with preview bytes.
func thumbnailInput() SelectFileInput {
	return SelectFileInput{
		FileName:    "cover.png",
		ContentType: "image/png",
		Size:        4,
		Data:        []byte{0x89, 0x50, 0x4e, 0x47},
	}
}

func completeDetails() model.StagingDetails {
	return model.StagingDetails{
		Title:       "Launch video",
		Description: "Full walkthrough",
		Tags:        []string{"launch", "demo"},
	}
}

// waitForThumbnailReady polls the staging snapshot until the thumbnail
// transfer finishes.
func waitForThumbnailReady(t *testing.T, service *UploadService, id string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		state, err := service.GetStaging(context.Background(), id)
		require.NoError(t, err)
		if state.Thumbnail != nil && state.Thumbnail.Ready {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatal("thumbnail transfer did not finish in time")
}

// stageCompleteDraft fills every required part of the upload form: finished
// video and thumbnail transfers plus the metadata fields.
func stageCompleteDraft(t *testing.T, service *UploadService, id string, details model.StagingDetails) {
	t.Helper()
	ctx := context.Background()

	_, err := service.SelectVideo(ctx, id, videoInput())
	require.NoError(t, err)
	waitForVideoReady(t, service, id)

	_, err = service.SelectThumbnail(ctx, id, thumbnailInput())
	require.NoError(t, err)
	waitForThumbnailReady(t, service, id)

	_, err = service.SetDetails(ctx, id, details)
	require.NoError(t, err)
}

func TestUploadService_Submit_Success(t *testing.T) {
	t.Parallel()
	uploadRepo, activityRepo, service := newUploadService(t, fastUploadConfig())
	ctx := context.Background()
	state := service.OpenStaging(ctx)

	stageCompleteDraft(t, service, state.ID, completeDetails())

	expected := &model.Upload{
		ID:     7,
		Title:  "Launch video",
		Status: model.UploadStatusPending,
	}

	uploadRepo.EXPECT().
		Create(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, req *model.CreateUploadRequest) (*model.Upload, error) {
			assert.Equal(t, "Launch video", req.Title)
			assert.Equal(t, "launch.mp4", req.VideoFileName)
			assert.Equal(t, []string{"launch", "demo"}, req.Tags)
			require.NotNil(t, req.ThumbnailURL)
			assert.True(t, strings.HasPrefix(*req.ThumbnailURL, "data:image/png;base64,"))
			require.NotNil(t, req.SubmittedBy)
			assert.Equal(t, "reviewer@example.com", *req.SubmittedBy)
			return expected, nil
		}).
		Times(1)

	activityRepo.EXPECT().
		Create(ctx, &model.CreateActivityRequest{
			UploadID: 7,
			Action:   model.ActivityUploadSubmitted,
			Actor:    "reviewer@example.com",
		}).
		Return(&model.ActivityEntry{}, nil).
		Times(1)

	upload, err := service.Submit(ctx, state.ID, "reviewer@example.com")
	require.NoError(t, err)
	assert.Equal(t, expected, upload)

	// Staging session is gone after a successful submit
	_, err = service.GetStaging(ctx, state.ID)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestUploadService_Submit_RequiredFields(t *testing.T) {
	t.Parallel()
	_, _, service := newUploadService(t, fastUploadConfig())
	ctx := context.Background()

	// Each missing part of the form fails independently, in form order.
	t.Run("missing title", func(t *testing.T) {
		state := service.OpenStaging(ctx)
		_, err := service.Submit(ctx, state.ID, "someone")
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
		assert.Equal(t, "title", apperrors.GetField(err))
	})

	t.Run("missing description", func(t *testing.T) {
		state := service.OpenStaging(ctx)
		_, err := service.SetDetails(ctx, state.ID, model.StagingDetails{Title: "Launch"})
		require.NoError(t, err)
		_, err = service.Submit(ctx, state.ID, "someone")
		require.Error(t, err)
		assert.Equal(t, "description", apperrors.GetField(err))
	})

	t.Run("missing tags", func(t *testing.T) {
		state := service.OpenStaging(ctx)
		_, err := service.SetDetails(ctx, state.ID, model.StagingDetails{
			Title:       "Launch",
			Description: "Walkthrough",
		})
		require.NoError(t, err)
		_, err = service.Submit(ctx, state.ID, "someone")
		require.Error(t, err)
		assert.Equal(t, "tags", apperrors.GetField(err))
	})

	t.Run("missing video", func(t *testing.T) {
		state := service.OpenStaging(ctx)
		_, err := service.SetDetails(ctx, state.ID, completeDetails())
		require.NoError(t, err)
		_, err = service.Submit(ctx, state.ID, "someone")
		require.Error(t, err)
		assert.Equal(t, "video", apperrors.GetField(err))
	})

	t.Run("missing thumbnail", func(t *testing.T) {
		state := service.OpenStaging(ctx)
		_, err := service.SetDetails(ctx, state.ID, completeDetails())
		require.NoError(t, err)
		_, err = service.SelectVideo(ctx, state.ID, videoInput())
		require.NoError(t, err)
		waitForVideoReady(t, service, state.ID)
		_, err = service.Submit(ctx, state.ID, "someone")
		require.Error(t, err)
		assert.Equal(t, "thumbnail", apperrors.GetField(err))
	})
}

func TestUploadService_Submit_VideoStillTransferring(t *testing.T) {
	t.Parallel()
	cfg := slowUploadConfig()
	cfg.ProgressTick = time.Hour // never advances during the test
	_, _, service := newUploadService(t, cfg)
	ctx := context.Background()
	state := service.OpenStaging(ctx)

	_, err := service.SetDetails(ctx, state.ID, completeDetails())
	require.NoError(t, err)
	_, err = service.SelectVideo(ctx, state.ID, videoInput())
	require.NoError(t, err)
	_, err = service.SelectThumbnail(ctx, state.ID, thumbnailInput())
	require.NoError(t, err)

	_, err = service.Submit(ctx, state.ID, "someone")
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))

	// The failed submit releases the session for another attempt.
	_, err = service.Submit(ctx, state.ID, "someone")
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
}

func TestUploadService_Submit_ThumbnailStillTransferring(t *testing.T) {
	t.Parallel()
	_, _, service := newUploadService(t, slowUploadConfig())
	ctx := context.Background()
	state := service.OpenStaging(ctx)

	_, err := service.SetDetails(ctx, state.ID, completeDetails())
	require.NoError(t, err)
	_, err = service.SelectVideo(ctx, state.ID, videoInput())
	require.NoError(t, err)
	waitForVideoReady(t, service, state.ID)
	_, err = service.SelectThumbnail(ctx, state.ID, thumbnailInput())
	require.NoError(t, err)

	_, err = service.Submit(ctx, state.ID, "someone")
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
	assert.Contains(t, err.Error(), "thumbnail")
}

func TestUploadService_Submit_ScheduledInPast(t *testing.T) {
	t.Parallel()
	_, _, service := newUploadService(t, fastUploadConfig())
	ctx := context.Background()
	state := service.OpenStaging(ctx)

	details := completeDetails()
	past := time.Now().Add(-time.Hour)
	details.ScheduledAt = &past
	stageCompleteDraft(t, service, state.ID, details)

	_, err := service.Submit(ctx, state.ID, "someone")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "scheduled_at", apperrors.GetField(err))
}

func TestUploadService_Submit_ScheduledWithinGrace(t *testing.T) {
	t.Parallel()
	uploadRepo, activityRepo, service := newUploadService(t, fastUploadConfig())
	ctx := context.Background()
	state := service.OpenStaging(ctx)

	// A few seconds in the past is covered by the submit grace window
	details := completeDetails()
	at := time.Now().Add(-5 * time.Second)
	details.ScheduledAt = &at
	stageCompleteDraft(t, service, state.ID, details)

	// The repository records a past-but-in-grace time as an immediate submit.
	uploadRepo.EXPECT().
		Create(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, req *model.CreateUploadRequest) (*model.Upload, error) {
			require.NotNil(t, req.ScheduledAt)
			return &model.Upload{ID: 1, Status: model.UploadStatusPending}, nil
		}).
		Times(1)
	activityRepo.EXPECT().
		Create(ctx, gomock.Any()).
		Return(&model.ActivityEntry{}, nil).
		Times(1)

	_, err := service.Submit(ctx, state.ID, "someone")
	require.NoError(t, err)
}

func TestUploadService_DiscardStaging(t *testing.T) {
	t.Parallel()
	_, _, service := newUploadService(t, slowUploadConfig())
	ctx := context.Background()
	state := service.OpenStaging(ctx)

	_, err := service.SelectVideo(ctx, state.ID, videoInput())
	require.NoError(t, err)

	service.DiscardStaging(ctx, state.ID)

	_, err = service.GetStaging(ctx, state.ID)
	assert.True(t, apperrors.IsNotFound(err))

	// Discarding an unknown ID is a no-op
	service.DiscardStaging(ctx, "missing")
}

func TestUploadService_StaleSessionsPruned(t *testing.T) {
	t.Parallel()
	now := time.Now()
	clock := now

	_, _, service := newUploadService(t, fastUploadConfig())
	service.now = func() time.Time { return clock }

	ctx := context.Background()
	stale := service.OpenStaging(ctx)

	// Advance past the staging TTL; opening a new session prunes the old one
	clock = now.Add(2 * time.Hour)
	fresh := service.OpenStaging(ctx)

	_, err := service.GetStaging(ctx, stale.ID)
	assert.True(t, apperrors.IsNotFound(err))
	_, err = service.GetStaging(ctx, fresh.ID)
	assert.NoError(t, err)
}

func TestUploadService_List_NormalizesOptions(t *testing.T) {
	t.Parallel()
	uploadRepo, _, service := newUploadService(t, fastUploadConfig())
	ctx := context.Background()

	uploadRepo.EXPECT().
		List(ctx, model.UploadsListOptions{Limit: defaultUploadListLimit, Offset: 0}).
		Return([]*model.Upload{}, nil).
		Times(1)

	_, err := service.List(ctx, model.UploadsListOptions{Limit: 0, Offset: -3})
	require.NoError(t, err)
}

func TestUploadService_ListPage(t *testing.T) {
	t.Parallel()
	uploadRepo, _, service := newUploadService(t, fastUploadConfig())
	ctx := context.Background()

	opts := model.UploadsListOptions{Limit: defaultUploadListLimit, Offset: 0}
	uploads := []*model.Upload{{ID: 2, Title: "Newest"}, {ID: 1, Title: "Oldest"}}

	// ListPage runs both queries under an errgroup-derived context.
	uploadRepo.EXPECT().List(gomock.Any(), opts).Return(uploads, nil).Times(1)
	uploadRepo.EXPECT().Count(gomock.Any(), opts).Return(7, nil).Times(1)

	got, total, err := service.ListPage(ctx, model.UploadsListOptions{})
	require.NoError(t, err)
	assert.Equal(t, uploads, got)
	assert.Equal(t, 7, total)
}

func TestUploadService_ListPage_PropagatesErrors(t *testing.T) {
	t.Parallel()
	uploadRepo, _, service := newUploadService(t, fastUploadConfig())
	ctx := context.Background()

	countErr := errors.New("count failed")
	uploadRepo.EXPECT().List(gomock.Any(), gomock.Any()).Return([]*model.Upload{}, nil).AnyTimes()
	uploadRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, countErr).Times(1)

	_, _, err := service.ListPage(ctx, model.UploadsListOptions{})
	assert.ErrorIs(t, err, countErr)
}
