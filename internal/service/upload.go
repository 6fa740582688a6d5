package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/tubebridge/tubebridge-api/config"
	"github.com/tubebridge/tubebridge-api/internal/core"
	"github.com/tubebridge/tubebridge-api/internal/domain/model"
	apperrors "github.com/tubebridge/tubebridge-api/internal/errors"
)

const defaultUploadListLimit = 50

// UploadServiceOptions groups dependencies for UploadService.
type UploadServiceOptions struct {
	Uploads  core.UploadRepository
	Activity core.ActivityRepository
	Config   config.UploadConfig

	// Now overrides the clock, for tests. Defaults to time.Now.
	Now func() time.Time
}

// UploadService manages upload staging sessions and submitted uploads.
//
// A staging session holds the not-yet-submitted state of the upload form:
// the selected video, an optional thumbnail, and the metadata fields. File
// transfers are simulated; each selected file gets its own progress loop
// that can be cancelled independently by clearing or replacing the file.
type UploadService struct {
	uploads  core.UploadRepository
	activity core.ActivityRepository
	cfg      config.UploadConfig
	now      func() time.Time

	mu       sync.Mutex
	sessions map[string]*stagingSession
}

// stagingSession is the mutable server-side record behind a StagingState.
// All access goes through UploadService.mu.
type stagingSession struct {
	state      model.StagingState
	videoTx    *transfer
	thumbTx    *transfer
	submitting bool
}

// NewUploadService constructs a new UploadService.
func NewUploadService(opts UploadServiceOptions) *UploadService {
	cfg := opts.Config
	cfg.Sanitize()
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &UploadService{
		uploads:  opts.Uploads,
		activity: opts.Activity,
		cfg:      cfg,
		now:      now,
		sessions: make(map[string]*stagingSession),
	}
}

// OpenStaging creates a new, empty staging session.
func (s *UploadService) OpenStaging(_ context.Context) *model.StagingState {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneStaleLocked()

	sess := &stagingSession{
		state: model.StagingState{
			ID:        uuid.New().String(),
			Details:   model.StagingDetails{Tags: []string{}},
			CreatedAt: s.now().UTC(),
		},
	}
	s.sessions[sess.state.ID] = sess
	return snapshotState(sess.state)
}

// GetStaging returns a snapshot of a staging session.
func (s *UploadService) GetStaging(_ context.Context, id string) (*model.StagingState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, apperrors.NotFoundf("staging session %s not found", id)
	}
	return snapshotState(sess.state), nil
}

// SelectFileInput describes a file chosen in the upload form. Data carries
// the raw bytes for thumbnail previews and may be nil.
type SelectFileInput struct {
	FileName    string
	ContentType string
	Size        int64
	Data        []byte
}

// SelectVideo places a video file into the staging session and starts its
// simulated transfer. Replacing an in-flight video cancels the old transfer
// first.
func (s *UploadService) SelectVideo(_ context.Context, id string, input SelectFileInput) (*model.StagingState, error) {
	if !model.AcceptedVideoType(input.ContentType) {
		return nil, apperrors.ValidationField("video", "Please select a valid MP4 video file")
	}
	if input.Size > s.cfg.MaxVideoBytes {
		return nil, apperrors.ValidationField("video", fmt.Sprintf("video file exceeds %d bytes", s.cfg.MaxVideoBytes))
	}

	s.mu.Lock()
	sess, ok := s.sessions[id]
	if !ok {
		s.mu.Unlock()
		return nil, apperrors.NotFoundf("staging session %s not found", id)
	}

	old := sess.videoTx
	sess.videoTx = newTransfer()
	sess.state.Video = &model.StagedFile{
		FileName:    input.FileName,
		ContentType: input.ContentType,
		Size:        input.Size,
	}
	go s.runTransfer(id, slotVideo, sess.videoTx)
	snap := snapshotState(sess.state)
	s.mu.Unlock()

	stopTransfer(old)
	return snap, nil
}

// ClearVideo removes the staged video, cancelling its transfer if still running.
func (s *UploadService) ClearVideo(_ context.Context, id string) (*model.StagingState, error) {
	return s.clearSlot(id, slotVideo)
}

// SelectThumbnail places a thumbnail image into the staging session. When the
// raw bytes are provided a data-URL preview is attached; the simulated
// transfer runs independently of the video's.
func (s *UploadService) SelectThumbnail(_ context.Context, id string, input SelectFileInput) (*model.StagingState, error) {
	if !model.AcceptedThumbnailType(input.ContentType) {
		return nil, apperrors.ValidationField("thumbnail", "Please select a valid image file")
	}

	file := &model.StagedFile{
		FileName:    input.FileName,
		ContentType: input.ContentType,
		Size:        input.Size,
	}
	if len(input.Data) > 0 {
		preview := "data:" + input.ContentType + ";base64," + base64.StdEncoding.EncodeToString(input.Data)
		file.PreviewURL = &preview
	}

	s.mu.Lock()
	sess, ok := s.sessions[id]
	if !ok {
		s.mu.Unlock()
		return nil, apperrors.NotFoundf("staging session %s not found", id)
	}

	old := sess.thumbTx
	sess.thumbTx = newTransfer()
	sess.state.Thumbnail = file
	go s.runTransfer(id, slotThumbnail, sess.thumbTx)
	snap := snapshotState(sess.state)
	s.mu.Unlock()

	stopTransfer(old)
	return snap, nil
}

// ClearThumbnail removes the staged thumbnail, cancelling its transfer if still running.
func (s *UploadService) ClearThumbnail(_ context.Context, id string) (*model.StagingState, error) {
	return s.clearSlot(id, slotThumbnail)
}

// SetDetails replaces the metadata fields of a staging session.
func (s *UploadService) SetDetails(_ context.Context, id string, details model.StagingDetails) (*model.StagingState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, apperrors.NotFoundf("staging session %s not found", id)
	}
	if details.Tags == nil {
		details.Tags = []string{}
	}
	sess.state.Details = details
	return snapshotState(sess.state), nil
}

// Submit validates the staged state, records the upload, and discards the
// staging session. The new upload lands at the top of listings. While a
// submit is in flight the session is marked submitting; a concurrent submit
// for the same session fails with a conflict.
func (s *UploadService) Submit(ctx context.Context, id, actor string) (upload *model.Upload, err error) {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	if !ok {
		s.mu.Unlock()
		return nil, apperrors.NotFoundf("staging session %s not found", id)
	}
	if sess.submitting {
		s.mu.Unlock()
		return nil, apperrors.Conflict("a submit for this staging session is already in progress")
	}
	sess.submitting = true
	state := *snapshotState(sess.state)
	s.mu.Unlock()

	// Any failure releases the submitting mark so the user can correct the
	// draft and try again.
	defer func() {
		if err == nil {
			return
		}
		s.mu.Lock()
		if cur, stillThere := s.sessions[id]; stillThere {
			cur.submitting = false
		}
		s.mu.Unlock()
	}()

	if verr := validateDraft(&state); verr != nil {
		return nil, verr
	}
	if !state.Video.Ready {
		return nil, apperrors.Conflict("video transfer is still in progress")
	}
	if !state.Thumbnail.Ready {
		return nil, apperrors.Conflict("thumbnail transfer is still in progress")
	}

	req := &model.CreateUploadRequest{
		Title:         state.Details.Title,
		Description:   state.Details.Description,
		Tags:          state.Details.Tags,
		VideoFileName: state.Video.FileName,
		VideoSize:     state.Video.Size,
		ScheduledAt:   state.Details.ScheduledAt,
	}
	if state.Thumbnail.PreviewURL != nil {
		req.ThumbnailURL = state.Thumbnail.PreviewURL
	}
	if actor != "" {
		req.SubmittedBy = &actor
	}
	if verr := req.Validate(); verr != nil {
		return nil, apperrors.Validation(verr.Error())
	}
	if req.ScheduledAt != nil && req.ScheduledAt.Before(s.now().Add(-s.cfg.SubmitGrace)) {
		return nil, apperrors.ValidationField("scheduled_at", "scheduled publish time is in the past")
	}

	upload, err = s.uploads.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	s.recordActivity(ctx, upload.ID, model.ActivityUploadSubmitted, actor, nil)
	s.discard(id)
	return upload, nil
}

// validateDraft checks that every required part of the upload form is filled
// in before the record is created.
func validateDraft(state *model.StagingState) error {
	if strings.TrimSpace(state.Details.Title) == "" {
		return apperrors.ValidationField("title", "a title is required before submitting")
	}
	if strings.TrimSpace(state.Details.Description) == "" {
		return apperrors.ValidationField("description", "a description is required before submitting")
	}
	if len(state.Details.Tags) == 0 {
		return apperrors.ValidationField("tags", "at least one tag is required before submitting")
	}
	if state.Video == nil {
		return apperrors.ValidationField("video", "a video file must be selected before submitting")
	}
	if state.Thumbnail == nil {
		return apperrors.ValidationField("thumbnail", "a thumbnail image must be selected before submitting")
	}
	return nil
}

// DiscardStaging drops a staging session, cancelling any running transfers.
func (s *UploadService) DiscardStaging(_ context.Context, id string) {
	s.discard(id)
}

// GetByID retrieves a submitted upload by ID.
func (s *UploadService) GetByID(ctx context.Context, id int64) (*model.Upload, error) {
	return s.uploads.GetByID(ctx, id)
}

// List returns a page of submitted uploads, newest first.
func (s *UploadService) List(ctx context.Context, opts model.UploadsListOptions) ([]*model.Upload, error) {
	return s.uploads.List(ctx, normalizeUploadListOptions(opts))
}

// Count returns the number of uploads matching the filters.
func (s *UploadService) Count(ctx context.Context, opts model.UploadsListOptions) (int, error) {
	return s.uploads.Count(ctx, opts)
}

// ListPage returns one page of uploads together with the total count for the
// same filters. The page query and the count run concurrently.
func (s *UploadService) ListPage(ctx context.Context, opts model.UploadsListOptions) ([]*model.Upload, int, error) {
	opts = normalizeUploadListOptions(opts)

	var (
		uploads []*model.Upload
		total   int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		uploads, err = s.uploads.List(gctx, opts)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.uploads.Count(gctx, opts)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return uploads, total, nil
}

// Delete removes a submitted upload.
func (s *UploadService) Delete(ctx context.Context, id int64) (bool, error) {
	return s.uploads.Delete(ctx, id)
}

func (s *UploadService) clearSlot(id string, slot uploadSlot) (*model.StagingState, error) {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	if !ok {
		s.mu.Unlock()
		return nil, apperrors.NotFoundf("staging session %s not found", id)
	}

	var old *transfer
	switch slot {
	case slotVideo:
		old = sess.videoTx
		sess.videoTx = nil
		sess.state.Video = nil
	case slotThumbnail:
		old = sess.thumbTx
		sess.thumbTx = nil
		sess.state.Thumbnail = nil
	}
	snap := snapshotState(sess.state)
	s.mu.Unlock()

	stopTransfer(old)
	return snap, nil
}

// discard removes a session and stops its transfers. Safe to call for
// unknown IDs.
func (s *UploadService) discard(id string) {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	if ok {
		delete(s.sessions, id)
	}
	s.mu.Unlock()

	if ok {
		stopTransfer(sess.videoTx)
		stopTransfer(sess.thumbTx)
	}
}

// pruneStaleLocked drops sessions idle past the staging TTL. Callers hold s.mu.
// Orphaned transfers notice their session is gone on the next tick and exit.
func (s *UploadService) pruneStaleLocked() {
	cutoff := s.now().Add(-s.cfg.StagingTTL)
	for id, sess := range s.sessions {
		if sess.state.CreatedAt.Before(cutoff) {
			delete(s.sessions, id)
		}
	}
}

// recordActivity appends to the activity feed. The upload itself is already
// committed, so feed failures are swallowed rather than surfaced to the caller.
func (s *UploadService) recordActivity(ctx context.Context, uploadID int64, action model.ActivityAction, actor string, detail *string) {
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

// snapshotState deep-copies a staging state so callers cannot mutate the
// session behind the lock.
func snapshotState(state model.StagingState) *model.StagingState {
	out := state
	out.Video = copyStagedFile(state.Video)
	out.Thumbnail = copyStagedFile(state.Thumbnail)
	if state.Details.Tags != nil {
		out.Details.Tags = append([]string{}, state.Details.Tags...)
	}
	if state.Details.ScheduledAt != nil {
		at := *state.Details.ScheduledAt
		out.Details.ScheduledAt = &at
	}
	return &out
}

func copyStagedFile(f *model.StagedFile) *model.StagedFile {
	if f == nil {
		return nil
	}
	out := *f
	if f.PreviewURL != nil {
		u := *f.PreviewURL
		out.PreviewURL = &u
	}
	return &out
}

func normalizeUploadListOptions(opts model.UploadsListOptions) model.UploadsListOptions {
	if opts.Limit <= 0 {
		opts.Limit = defaultUploadListLimit
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}
	return opts
}
