//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	maxUploadTitleLen       = 200
	maxUploadDescriptionLen = 5000
	maxUploadTags           = 25
)

// UploadStatus is the review lifecycle state of a submitted upload.
type UploadStatus string

const (
	UploadStatusPending   UploadStatus = "Pending"
	UploadStatusApproved  UploadStatus = "Approved"
	UploadStatusRejected  UploadStatus = "Rejected"
	UploadStatusScheduled UploadStatus = "Scheduled"
)

// Valid reports whether the upload status is supported.
func (s UploadStatus) Valid() bool {
	switch s {
	case UploadStatusPending, UploadStatusApproved, UploadStatusRejected, UploadStatusScheduled:
		return true
	default:
		return false
	}
}

// Reviewable reports whether an upload in this status can still be approved or rejected.
func (s UploadStatus) Reviewable() bool {
	return s == UploadStatusPending || s == UploadStatusScheduled
}

// ParseUploadStatus normalizes a status string and reports whether it is supported.
func ParseUploadStatus(value string) (UploadStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "pending":
		return UploadStatusPending, true
	case "approved":
		return UploadStatusApproved, true
	case "rejected":
		return UploadStatusRejected, true
	case "scheduled":
		return UploadStatusScheduled, true
	default:
		return "", false
	}
}

// UploadsListOptions controls paging and filtering for listing uploads.
// Notes:
// - Status matches exactly when set.
// - Q matches title via ILIKE substring.
// - Results are always ordered newest first (descending ID).
type UploadsListOptions struct {
	Limit    int
	Offset   int
	Q        *string        // substring match on title (ILIKE)
	Status   *UploadStatus  // exact match
	Statuses []UploadStatus // membership match; ignored when Status is set
}

// Upload represents a submitted video awaiting (or past) editorial review.
// IDs are assigned as one greater than the current maximum, so ordering by
// ID descending yields submission order, newest first.
type Upload struct {
	ID            int64        `json:"id"                     db:"id"`
	Title         string       `json:"title"                  db:"title"`
	Description   string       `json:"description"            db:"description"`
	Tags          []string     `json:"tags"                   db:"tags"`
	VideoFileName string       `json:"video_file_name"        db:"video_file_name"`
	VideoSize     int64        `json:"video_size"             db:"video_size"`
	ThumbnailURL  *string      `json:"thumbnail_url,omitempty" db:"thumbnail_url"`
	UploadDate    time.Time    `json:"upload_date"            db:"upload_date"`
	Status        UploadStatus `json:"status"                 db:"status"`
	Feedback      *string      `json:"feedback,omitempty"     db:"feedback"`
	ScheduledAt   *time.Time   `json:"scheduled_at,omitempty" db:"scheduled_at"`
	SubmittedBy   *string      `json:"submitted_by,omitempty" db:"submitted_by"`
	CreatedAt     time.Time    `json:"created_at"             db:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"             db:"updated_at"`
}

// CreateUploadRequest represents parameters to record a new Upload.
type CreateUploadRequest struct {
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Tags          []string   `json:"tags"`
	VideoFileName string     `json:"video_file_name"`
	VideoSize     int64      `json:"video_size"`
	ThumbnailURL  *string    `json:"thumbnail_url,omitempty"`
	ScheduledAt   *time.Time `json:"scheduled_at,omitempty"`
	SubmittedBy   *string    `json:"submitted_by,omitempty"`
}

// Validate validates CreateUploadRequest.
func (r *CreateUploadRequest) Validate() error {
	title := strings.TrimSpace(r.Title)
	if title == "" {
		return errors.New("title is required and cannot be empty")
	}
	if utf8.RuneCountInString(title) > maxUploadTitleLen {
		return errors.New("title cannot exceed 200 characters")
	}
	if utf8.RuneCountInString(r.Description) > maxUploadDescriptionLen {
		return errors.New("description cannot exceed 5000 characters")
	}
	if len(r.Tags) > maxUploadTags {
		return errors.New("too many tags")
	}
	if strings.TrimSpace(r.VideoFileName) == "" {
		return errors.New("video_file_name is required")
	}
	if r.VideoSize < 0 {
		return errors.New("video_size cannot be negative")
	}
	return nil
}

// ScheduledFeedbackNote is the reader-facing note attached to uploads
// submitted with a future publish time.
func ScheduledFeedbackNote(t time.Time) string {
	return "Scheduled for publication on " + t.UTC().Format("Jan 2, 2006 at 15:04 MST")
}

// ReviewUploadEdits carries the reviewer's optional metadata changes,
// applied only when approving. Nil fields keep the record's current value.
type ReviewUploadEdits struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// ReviewUploadRequest represents an approve/reject decision for an Upload.
type ReviewUploadRequest struct {
	ReviewUploadEdits
	Status   UploadStatus `json:"status"`
	Feedback *string      `json:"feedback,omitempty"`
}

// Validate validates ReviewUploadRequest.
func (r *ReviewUploadRequest) Validate() error {
	switch r.Status {
	case UploadStatusApproved:
		return r.validateEdits()
	case UploadStatusRejected:
		if r.Feedback == nil || strings.TrimSpace(*r.Feedback) == "" {
			return errors.New("feedback is required when rejecting")
		}
		return nil
	default:
		return errors.New("status must be Approved or Rejected")
	}
}

func (r *ReviewUploadRequest) validateEdits() error {
	if r.Title != nil {
		title := strings.TrimSpace(*r.Title)
		if title == "" {
			return errors.New("title cannot be empty")
		}
		if utf8.RuneCountInString(title) > maxUploadTitleLen {
			return errors.New("title cannot exceed 200 characters")
		}
	}
	if r.Description != nil {
		if strings.TrimSpace(*r.Description) == "" {
			return errors.New("description cannot be empty")
		}
		if utf8.RuneCountInString(*r.Description) > maxUploadDescriptionLen {
			return errors.New("description cannot exceed 5000 characters")
		}
	}
	if r.Tags != nil {
		if len(r.Tags) == 0 {
			return errors.New("tags cannot be empty")
		}
		if len(r.Tags) > maxUploadTags {
			return errors.New("too many tags")
		}
	}
	return nil
}
