package data

import "errors"

// Shared sentinel errors for data-layer repositories.
var (
	// Upload repository sentinels.
	ErrUploadNotFound       = errors.New("upload not found")
	ErrUploadAlreadyDecided = errors.New("upload already decided")

	// Manager repository sentinels.
	ErrManagerNotFound    = errors.New("manager not found")
	ErrManagerEmailExists = errors.New("manager email already exists")
)
