package httpx

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/tubebridge/tubebridge-api/internal/domain/model"
)

func TestApproveUpload(t *testing.T) {
	t.Parallel()
	uploadRepo, activityRepo, router := testRouter(t)

	pending := &model.Upload{ID: 4, Title: "Launch Video", Status: model.UploadStatusPending}
	approved := &model.Upload{ID: 4, Title: "Launch Video", Status: model.UploadStatusApproved}

	uploadRepo.EXPECT().GetByID(gomock.Any(), int64(4)).Return(pending, nil).Times(1)
	uploadRepo.EXPECT().
		UpdateStatus(gomock.Any(), int64(4), gomock.Any()).
		DoAndReturn(func(_ any, _ int64, req *model.ReviewUploadRequest) (*model.Upload, error) {
			assert.Equal(t, model.UploadStatusApproved, req.Status)
			return approved, nil
		}).
		Times(1)
	activityRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(&model.ActivityEntry{}, nil).Times(1)

	rec := doRequest(t, router, http.MethodPost, "/api/uploads/4/approve", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var upload model.Upload
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&upload))
	assert.Equal(t, model.UploadStatusApproved, upload.Status)
}

func TestApproveUpload_AlreadyDecided(t *testing.T) {
	t.Parallel()
	uploadRepo, _, router := testRouter(t)

	rejected := &model.Upload{ID: 4, Status: model.UploadStatusRejected}
	uploadRepo.EXPECT().GetByID(gomock.Any(), int64(4)).Return(rejected, nil).Times(1)

	rec := doRequest(t, router, http.MethodPost, "/api/uploads/4/approve", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "cannot be reviewed")
}

func TestApproveUpload_WithEdits(t *testing.T) {
	t.Parallel()
	uploadRepo, activityRepo, router := testRouter(t)

	pending := &model.Upload{ID: 4, Title: "Draft Title", Status: model.UploadStatusPending}

	uploadRepo.EXPECT().GetByID(gomock.Any(), int64(4)).Return(pending, nil).Times(1)
	uploadRepo.EXPECT().
		UpdateStatus(gomock.Any(), int64(4), gomock.Any()).
		DoAndReturn(func(_ any, _ int64, req *model.ReviewUploadRequest) (*model.Upload, error) {
			require.NotNil(t, req.Title)
			assert.Equal(t, "Final Title", *req.Title)
			assert.Equal(t, []string{"launch"}, req.Tags)
			return &model.Upload{ID: 4, Title: "Final Title", Status: model.UploadStatusApproved}, nil
		}).
		Times(1)
	activityRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(&model.ActivityEntry{}, nil).Times(1)

	rec := doRequest(t, router, http.MethodPost, "/api/uploads/4/approve", map[string]any{
		"title": "Final Title",
		"tags":  []string{"launch"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var upload model.Upload
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&upload))
	assert.Equal(t, "Final Title", upload.Title)
}

func TestReviewQueue(t *testing.T) {
	t.Parallel()
	uploadRepo, _, router := testRouter(t)

	queue := []*model.Upload{
		{ID: 6, Status: model.UploadStatusScheduled},
		{ID: 2, Status: model.UploadStatusPending},
	}
	uploadRepo.EXPECT().
		List(gomock.Any(), model.UploadsListOptions{
			Limit:    50,
			Statuses: []model.UploadStatus{model.UploadStatusPending, model.UploadStatusScheduled},
		}).
		Return(queue, nil).
		Times(1)

	rec := doRequest(t, router, http.MethodGet, "/api/uploads/pending", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var uploads []*model.Upload
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&uploads))
	require.Len(t, uploads, 2)
	assert.Equal(t, int64(6), uploads[0].ID)
}

func TestRejectUpload(t *testing.T) {
	t.Parallel()
	uploadRepo, activityRepo, router := testRouter(t)

	pending := &model.Upload{ID: 9, Status: model.UploadStatusScheduled}
	feedback := "Audio levels are off, please re-export."
	rejected := &model.Upload{ID: 9, Status: model.UploadStatusRejected, Feedback: &feedback}

	uploadRepo.EXPECT().GetByID(gomock.Any(), int64(9)).Return(pending, nil).Times(1)
	uploadRepo.EXPECT().
		UpdateStatus(gomock.Any(), int64(9), gomock.Any()).
		DoAndReturn(func(_ any, _ int64, req *model.ReviewUploadRequest) (*model.Upload, error) {
			assert.Equal(t, model.UploadStatusRejected, req.Status)
			require.NotNil(t, req.Feedback)
			assert.Equal(t, feedback, *req.Feedback)
			return rejected, nil
		}).
		Times(1)
	activityRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(&model.ActivityEntry{}, nil).Times(1)

	rec := doRequest(t, router, http.MethodPost, "/api/uploads/9/reject", map[string]string{
		"feedback": feedback,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var upload model.Upload
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&upload))
	assert.Equal(t, model.UploadStatusRejected, upload.Status)
}

func TestRejectUpload_FeedbackRequired(t *testing.T) {
	t.Parallel()
	_, _, router := testRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/api/uploads/9/reject", map[string]string{
		"feedback": "   ",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "feedback is required")
}
