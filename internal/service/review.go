package service

import (
	"context"
	"strings"

	"github.com/tubebridge/tubebridge-api/internal/core"
	"github.com/tubebridge/tubebridge-api/internal/domain/model"
	apperrors "github.com/tubebridge/tubebridge-api/internal/errors"
)

// ReviewServiceOptions groups dependencies for ReviewService.
type ReviewServiceOptions struct {
	Uploads  core.UploadRepository
	Activity core.ActivityRepository
}

// ReviewService applies editorial decisions to submitted uploads. Only
// uploads still awaiting review (Pending or Scheduled) can be decided;
// a decision is final.
type ReviewService struct {
	uploads  core.UploadRepository
	activity core.ActivityRepository
}

// NewReviewService constructs a new ReviewService.
func NewReviewService(opts ReviewServiceOptions) *ReviewService {
	return &ReviewService{uploads: opts.Uploads, activity: opts.Activity}
}

// Approve marks an upload as approved, applies any metadata edits the
// reviewer made in the approval dialog, and clears prior feedback.
func (s *ReviewService) Approve(
	ctx context.Context,
	id int64,
	actor string,
	edits model.ReviewUploadEdits,
) (*model.Upload, error) {
	return s.decide(ctx, id, actor, &model.ReviewUploadRequest{
		ReviewUploadEdits: edits,
		Status:            model.UploadStatusApproved,
	})
}

// Reject marks an upload as rejected. Feedback for the submitter is required.
func (s *ReviewService) Reject(ctx context.Context, id int64, actor, feedback string) (*model.Upload, error) {
	feedback = strings.TrimSpace(feedback)
	if feedback == "" {
		return nil, apperrors.ValidationField("feedback", "feedback is required when rejecting an upload")
	}
	return s.decide(ctx, id, actor, &model.ReviewUploadRequest{
		Status:   model.UploadStatusRejected,
		Feedback: &feedback,
	})
}

// ListQueue returns the uploads still awaiting a decision (Pending and
// Scheduled), newest first.
func (s *ReviewService) ListQueue(ctx context.Context, limit, offset int) ([]*model.Upload, error) {
	return s.uploads.List(ctx, model.UploadsListOptions{
		Limit:    limit,
		Offset:   offset,
		Statuses: []model.UploadStatus{model.UploadStatusPending, model.UploadStatusScheduled},
	})
}

func (s *ReviewService) decide(ctx context.Context, id int64, actor string, req *model.ReviewUploadRequest) (*model.Upload, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	current, err := s.uploads.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !current.Status.Reviewable() {
		return nil, apperrors.Conflictf("upload in status %s cannot be reviewed", current.Status)
	}

	updated, err := s.uploads.UpdateStatus(ctx, id, req)
	if err != nil {
		return nil, err
	}

	action := model.ActivityUploadApproved
	if req.Status == model.UploadStatusRejected {
		action = model.ActivityUploadRejected
	}
	s.recordDecision(ctx, id, action, actor, req.Feedback)

	return updated, nil
}

// recordDecision appends the decision to the activity feed. The status change
// is already committed, so feed failures are swallowed.
func (s *ReviewService) recordDecision(ctx context.Context, uploadID int64, action model.ActivityAction, actor string, detail *string) {
	if s.activity == nil {
		return
	}
	if actor == "" {
		actor = "system"
	}
	_, _ = s.activity.Create(ctx, &model.CreateActivityRequest{
		UploadID: uploadID,
		Action:   action,
		Actor:    actor,
		Detail:   detail,
	})
}
