//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
)

// ActivityAction identifies what happened to an upload.
type ActivityAction string

const (
	ActivityUploadSubmitted ActivityAction = "upload.submitted"
	ActivityUploadApproved  ActivityAction = "upload.approved"
	ActivityUploadRejected  ActivityAction = "upload.rejected"
)

// Valid reports whether the activity action is supported.
func (a ActivityAction) Valid() bool {
	switch a {
	case ActivityUploadSubmitted, ActivityUploadApproved, ActivityUploadRejected:
		return true
	default:
		return false
	}
}

// ActivityListOptions controls paging and filtering for listing activity entries.
type ActivityListOptions struct {
	Limit    int
	Offset   int
	UploadID *int64          // exact match
	Action   *ActivityAction // exact match
}

// ActivityEntry records a state change on an upload for the activity feed.
type ActivityEntry struct {
	ID        string         `json:"id"               db:"id"`
	UploadID  int64          `json:"upload_id"        db:"upload_id"`
	Action    ActivityAction `json:"action"           db:"action"`
	Actor     string         `json:"actor"            db:"actor"`
	Detail    *string        `json:"detail,omitempty" db:"detail"`
	CreatedAt time.Time      `json:"created_at"       db:"created_at"`
}

// CreateActivityRequest represents parameters to append an ActivityEntry.
type CreateActivityRequest struct {
	UploadID int64          `json:"upload_id"`
	Action   ActivityAction `json:"action"`
	Actor    string         `json:"actor"`
	Detail   *string        `json:"detail,omitempty"`
}

// Validate validates CreateActivityRequest.
func (r *CreateActivityRequest) Validate() error {
	if r.UploadID <= 0 {
		return errors.New("upload_id must be > 0")
	}
	if !r.Action.Valid() {
		return errors.New("invalid action")
	}
	if strings.TrimSpace(r.Actor) == "" {
		return errors.New("actor is required")
	}
	return nil
}
