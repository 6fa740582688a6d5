package service

import (
	"context"

	"github.com/tubebridge/tubebridge-api/internal/core"
	"github.com/tubebridge/tubebridge-api/internal/domain/model"
	apperrors "github.com/tubebridge/tubebridge-api/internal/errors"
)

// ActivityServiceOptions groups dependencies for ActivityService.
type ActivityServiceOptions struct {
	Activity core.ActivityRepository
}

// ActivityService exposes the upload activity feed.
type ActivityService struct {
	activity core.ActivityRepository
}

// NewActivityService constructs a new ActivityService.
func NewActivityService(opts ActivityServiceOptions) *ActivityService {
	return &ActivityService{activity: opts.Activity}
}

// Record appends an entry to the feed.
func (s *ActivityService) Record(ctx context.Context, req *model.CreateActivityRequest) (*model.ActivityEntry, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	return s.activity.Create(ctx, req)
}

// List returns a page of activity entries, newest first.
func (s *ActivityService) List(ctx context.Context, opts model.ActivityListOptions) ([]*model.ActivityEntry, error) {
	if opts.Limit <= 0 {
		opts.Limit = defaultUploadListLimit
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}
	return s.activity.List(ctx, opts)
}
