package data

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"

	"github.com/tubebridge/tubebridge-api/internal/domain/model"
)

// MemoryUploadRepo is an in-memory UploadRepository used in development mode
// and in tests that do not need Postgres. It preserves the same semantics as
// UploadRepo: IDs are one greater than the current maximum and listings read
// newest first.
type MemoryUploadRepo struct {
	mu           sync.RWMutex
	uploads      []*model.Upload // newest first
	timeProvider TimeProvider
}

// NewMemoryUploadRepo creates an empty in-memory upload repository.
func NewMemoryUploadRepo() *MemoryUploadRepo {
	return &MemoryUploadRepo{timeProvider: &RealTimeProvider{}}
}

// NewMemoryUploadRepoWithTimeProvider creates an in-memory repository with a custom time provider.
func NewMemoryUploadRepoWithTimeProvider(tp TimeProvider) *MemoryUploadRepo {
	return &MemoryUploadRepo{timeProvider: tp}
}

// Create records a new upload and prepends it to the listing.
func (r *MemoryUploadRepo) Create(
	_ context.Context,
	req *model.CreateUploadRequest,
) (*model.Upload, error) {
	if req == nil {
		return nil, errors.New("create upload request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var maxID int64
	for _, u := range r.uploads {
		if u.ID > maxID {
			maxID = u.ID
		}
	}

	now := r.timeProvider.Now().UTC()

	// Only a future publish time makes the record Scheduled; a past time that
	// slipped through the submit grace window stays Pending.
	status := model.UploadStatusPending
	var feedback *string
	if req.ScheduledAt != nil && req.ScheduledAt.After(now) {
		status = model.UploadStatusScheduled
		note := model.ScheduledFeedbackNote(*req.ScheduledAt)
		feedback = &note
	}
	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}

	upload := &model.Upload{
		ID:            maxID + 1,
		Title:         strings.TrimSpace(req.Title),
		Description:   req.Description,
		Tags:          slices.Clone(tags),
		VideoFileName: strings.TrimSpace(req.VideoFileName),
		VideoSize:     req.VideoSize,
		ThumbnailURL:  req.ThumbnailURL,
		UploadDate:    now,
		Status:        status,
		Feedback:      feedback,
		ScheduledAt:   req.ScheduledAt,
		SubmittedBy:   req.SubmittedBy,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	r.uploads = append([]*model.Upload{upload}, r.uploads...)

	out := *upload
	return &out, nil
}

// GetByID retrieves an upload by ID.
func (r *MemoryUploadRepo) GetByID(_ context.Context, id int64) (*model.Upload, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.uploads {
		if u.ID == id {
			out := *u
			return &out, nil
		}
	}
	return nil, ErrUploadNotFound
}

// List retrieves uploads matching the options, newest first.
func (r *MemoryUploadRepo) List(
	_ context.Context,
	opts model.UploadsListOptions,
) ([]*model.Upload, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := r.filter(opts)

	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := max(opts.Offset, 0)

	if offset >= len(matched) {
		return []*model.Upload{}, nil
	}
	matched = matched[offset:]
	if len(matched) > limit {
		matched = matched[:limit]
	}

	res := make([]*model.Upload, len(matched))
	for i, u := range matched {
		out := *u
		res[i] = &out
	}
	return res, nil
}

// Count returns the number of uploads matching the options.
func (r *MemoryUploadRepo) Count(_ context.Context, opts model.UploadsListOptions) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.filter(opts)), nil
}

// UpdateStatus applies a review decision to an upload.
func (r *MemoryUploadRepo) UpdateStatus(
	_ context.Context,
	id int64,
	req *model.ReviewUploadRequest,
) (*model.Upload, error) {
	if req == nil {
		return nil, errors.New("review upload request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.uploads {
		if u.ID != id {
			continue
		}
		if !u.Status.Reviewable() {
			return nil, ErrUploadAlreadyDecided
		}
		u.Status = req.Status
		if req.Status == model.UploadStatusRejected {
			u.Feedback = req.Feedback
		} else {
			u.Feedback = nil
			if req.Title != nil {
				u.Title = strings.TrimSpace(*req.Title)
			}
			if req.Description != nil {
				u.Description = *req.Description
			}
			if req.Tags != nil {
				u.Tags = slices.Clone(req.Tags)
			}
		}
		u.UpdatedAt = r.timeProvider.Now().UTC()
		out := *u
		return &out, nil
	}
	return nil, ErrUploadNotFound
}

// Delete removes an upload by ID.
func (r *MemoryUploadRepo) Delete(_ context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, u := range r.uploads {
		if u.ID == id {
			r.uploads = append(r.uploads[:i], r.uploads[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// filter returns uploads matching opts. Callers must hold the lock.
func (r *MemoryUploadRepo) filter(opts model.UploadsListOptions) []*model.Upload {
	matched := make([]*model.Upload, 0, len(r.uploads))
	for _, u := range r.uploads {
		if opts.Status != nil && u.Status != *opts.Status {
			continue
		}
		if opts.Status == nil && len(opts.Statuses) > 0 && !slices.Contains(opts.Statuses, u.Status) {
			continue
		}
		if opts.Q != nil {
			q := strings.ToLower(strings.TrimSpace(*opts.Q))
			if q != "" && !strings.Contains(strings.ToLower(u.Title), q) {
				continue
			}
		}
		matched = append(matched, u)
	}
	return matched
}
