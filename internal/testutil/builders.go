package testutil

import (
	"fmt"
	"time"

	"github.com/tubebridge/tubebridge-api/internal/domain/model"
)

// UploadRequestBuilder provides a fluent interface for building CreateUploadRequest objects for testing.
type UploadRequestBuilder struct {
	req *model.CreateUploadRequest
}

// NewUploadRequest creates a new UploadRequestBuilder with sensible defaults.
func NewUploadRequest() *UploadRequestBuilder {
	return &UploadRequestBuilder{
		req: &model.CreateUploadRequest{
			Title:         "Test Upload",
			Description:   "A test upload.",
			Tags:          []string{"test"},
			VideoFileName: "test-upload.mp4",
			VideoSize:     64 << 20,
		},
	}
}

// WithTitle sets the upload title.
func (b *UploadRequestBuilder) WithTitle(title string) *UploadRequestBuilder {
	b.req.Title = title
	return b
}

// WithDescription sets the upload description.
func (b *UploadRequestBuilder) WithDescription(description string) *UploadRequestBuilder {
	b.req.Description = description
	return b
}

// WithTags sets the upload tags.
func (b *UploadRequestBuilder) WithTags(tags ...string) *UploadRequestBuilder {
	b.req.Tags = tags
	return b
}

// WithVideo sets the video file name and size.
func (b *UploadRequestBuilder) WithVideo(fileName string, size int64) *UploadRequestBuilder {
	b.req.VideoFileName = fileName
	b.req.VideoSize = size
	return b
}

// WithThumbnailURL sets the thumbnail data URL.
func (b *UploadRequestBuilder) WithThumbnailURL(url string) *UploadRequestBuilder {
	b.req.ThumbnailURL = &url
	return b
}

// WithScheduledAt sets the publish schedule.
func (b *UploadRequestBuilder) WithScheduledAt(at time.Time) *UploadRequestBuilder {
	b.req.ScheduledAt = &at
	return b
}

// WithSubmittedBy sets the submitter.
func (b *UploadRequestBuilder) WithSubmittedBy(email string) *UploadRequestBuilder {
	b.req.SubmittedBy = &email
	return b
}

// Build returns the constructed CreateUploadRequest.
func (b *UploadRequestBuilder) Build() *model.CreateUploadRequest {
	return b.req
}

// ManagerRequestBuilder provides a fluent interface for building CreateManagerRequest objects for testing.
type ManagerRequestBuilder struct {
	req *model.CreateManagerRequest
}

// NewManagerRequest creates a new ManagerRequestBuilder with sensible defaults.
// A sequence suffix keeps emails unique across calls within one test.
func NewManagerRequest(seq int) *ManagerRequestBuilder {
	return &ManagerRequestBuilder{
		req: &model.CreateManagerRequest{
			Name:   fmt.Sprintf("Manager %d", seq),
			Email:  fmt.Sprintf("manager-%d@example.com", seq),
			Status: model.ManagerStatusActive,
		},
	}
}

// WithName sets the manager name.
func (b *ManagerRequestBuilder) WithName(name string) *ManagerRequestBuilder {
	b.req.Name = name
	return b
}

// WithEmail sets the manager email.
func (b *ManagerRequestBuilder) WithEmail(email string) *ManagerRequestBuilder {
	b.req.Email = email
	return b
}

// WithStatus sets the manager status.
func (b *ManagerRequestBuilder) WithStatus(status model.ManagerStatus) *ManagerRequestBuilder {
	b.req.Status = status
	return b
}

// Build returns the constructed CreateManagerRequest.
func (b *ManagerRequestBuilder) Build() *model.CreateManagerRequest {
	return b.req
}

// ActivityRequestBuilder builds CreateActivityRequest objects for testing.
type ActivityRequestBuilder struct {
	req *model.CreateActivityRequest
}

// NewActivityRequest creates a new ActivityRequestBuilder with sensible defaults.
func NewActivityRequest(uploadID int64) *ActivityRequestBuilder {
	return &ActivityRequestBuilder{
		req: &model.CreateActivityRequest{
			UploadID: uploadID,
			Action:   model.ActivityUploadSubmitted,
			Actor:    "tester@example.com",
		},
	}
}

// WithAction sets the activity action.
func (b *ActivityRequestBuilder) WithAction(action model.ActivityAction) *ActivityRequestBuilder {
	b.req.Action = action
	return b
}

// WithActor sets the acting user.
func (b *ActivityRequestBuilder) WithActor(actor string) *ActivityRequestBuilder {
	b.req.Actor = actor
	return b
}

// WithDetail sets the free-form detail.
func (b *ActivityRequestBuilder) WithDetail(detail string) *ActivityRequestBuilder {
	b.req.Detail = &detail
	return b
}

// Build returns the constructed CreateActivityRequest.
func (b *ActivityRequestBuilder) Build() *model.CreateActivityRequest {
	return b.req
}
