//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"strings"
	"time"
)

// Accepted content types for staged files. Video is restricted to a single
// exact type; thumbnails accept any image subtype.
const (
	VideoContentType      = "video/mp4"
	ThumbnailTypePrefix   = "image/"
	StagedProgressDone    = 100
	StagedProgressStepMax = 15
)

// AcceptedVideoType reports whether the content type is allowed for the video slot.
func AcceptedVideoType(contentType string) bool {
	return strings.TrimSpace(contentType) == VideoContentType
}

// AcceptedThumbnailType reports whether the content type is allowed for the thumbnail slot.
func AcceptedThumbnailType(contentType string) bool {
	return strings.HasPrefix(strings.TrimSpace(contentType), ThumbnailTypePrefix)
}

// StagedFile is the state of one staging slot (video or thumbnail).
// Progress advances from 0 to 100 while the simulated transfer runs;
// Ready flips to true exactly once, when progress reaches 100.
type StagedFile struct {
	FileName    string  `json:"file_name"`
	ContentType string  `json:"content_type"`
	Size        int64   `json:"size"`
	Progress    int     `json:"progress"`
	Ready       bool    `json:"ready"`
	PreviewURL  *string `json:"preview_url,omitempty"`
}

// StagingDetails holds the metadata fields entered alongside the files.
type StagingDetails struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Tags        []string   `json:"tags"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
}

// StagingState is a read-only snapshot of an upload staging session.
type StagingState struct {
	ID        string         `json:"id"`
	Video     *StagedFile    `json:"video,omitempty"`
	Thumbnail *StagedFile    `json:"thumbnail,omitempty"`
	Details   StagingDetails `json:"details"`
	CreatedAt time.Time      `json:"created_at"`
}

// VideoReady reports whether the staged video has finished its transfer.
func (s StagingState) VideoReady() bool {
	return s.Video != nil && s.Video.Ready
}
