package config

import "time"

// UploadConfig contains upload staging configuration.
//
// The staging flow simulates the transfer of a selected file: progress
// advances on a fixed tick in fixed steps until it reaches 100. These knobs
// exist so tests can run the simulation quickly.
type UploadConfig struct {
	// ProgressTick is the interval between progress advances.
	ProgressTick time.Duration `env:"UPLOAD_PROGRESS_TICK" envDefault:"200ms"`

	// ProgressStep is the progress increment applied per tick (1-100).
	ProgressStep int `env:"UPLOAD_PROGRESS_STEP" envDefault:"15"`

	// SubmitGrace is how far in the past a scheduled publish time may be
	// and still be accepted at submit. Covers the time spent filling the form.
	SubmitGrace time.Duration `env:"UPLOAD_SUBMIT_GRACE" envDefault:"1m"`

	// StagingTTL is how long an idle staging session is kept before
	// it is discarded.
	StagingTTL time.Duration `env:"UPLOAD_STAGING_TTL" envDefault:"1h"`

	// MaxVideoBytes caps the size of a staged video file.
	MaxVideoBytes int64 `env:"UPLOAD_MAX_VIDEO_BYTES" envDefault:"2147483648"`
}

// Sanitize applies guardrails to upload configuration values.
func (u *UploadConfig) Sanitize() {
	if u.ProgressTick <= 0 {
		u.ProgressTick = 200 * time.Millisecond
	}
	if u.ProgressStep < 1 {
		u.ProgressStep = 1
	}
	if u.ProgressStep > 100 {
		u.ProgressStep = 100
	}
	if u.SubmitGrace < 0 {
		u.SubmitGrace = time.Minute
	}
	if u.StagingTTL <= 0 {
		u.StagingTTL = time.Hour
	}
	if u.MaxVideoBytes <= 0 {
		u.MaxVideoBytes = 2 << 30
	}
}
