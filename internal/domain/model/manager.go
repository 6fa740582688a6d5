//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	maxManagerNameLen = 255
)

// ManagerStatus describes whether a content manager account is active.
type ManagerStatus string

const (
	ManagerStatusActive   ManagerStatus = "active"
	ManagerStatusInactive ManagerStatus = "inactive"
)

// Valid reports whether the manager status is supported.
func (s ManagerStatus) Valid() bool {
	switch s {
	case ManagerStatusActive, ManagerStatusInactive:
		return true
	default:
		return false
	}
}

// normalizeManagerStatus trims and lowercases the input, defaulting to active when empty.
func normalizeManagerStatus(v ManagerStatus) ManagerStatus {
	normalized := ManagerStatus(strings.ToLower(strings.TrimSpace(string(v))))
	if normalized == "" {
		return ManagerStatusActive
	}
	return normalized
}

// Manager represents a content manager account visible to admins.
type Manager struct {
	ID        string        `json:"id"         db:"id"`
	Name      string        `json:"name"       db:"name"`
	Email     string        `json:"email"      db:"email"`
	Status    ManagerStatus `json:"status"     db:"status"`
	CreatedAt time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt time.Time     `json:"updated_at" db:"updated_at"`
}

// CreateManagerRequest represents parameters to create a Manager.
type CreateManagerRequest struct {
	Name   string        `json:"name"`
	Email  string        `json:"email"`
	Status ManagerStatus `json:"status,omitempty"`
}

// Validate validates CreateManagerRequest.
func (r *CreateManagerRequest) Validate() error {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return errors.New("name is required and cannot be empty")
	}
	if utf8.RuneCountInString(name) > maxManagerNameLen {
		return errors.New("name cannot exceed 255 characters")
	}
	email := strings.TrimSpace(r.Email)
	if email == "" {
		return errors.New("email is required")
	}
	if !strings.Contains(email, "@") {
		return errors.New("email is not valid")
	}
	r.Status = normalizeManagerStatus(r.Status)
	if !r.Status.Valid() {
		return errors.New("invalid status")
	}
	return nil
}

// UpdateManagerRequest represents parameters to update a Manager.
// Email is immutable after creation and therefore not present here.
type UpdateManagerRequest struct {
	Name   *string        `json:"name,omitempty"`
	Status *ManagerStatus `json:"status,omitempty"`
}

// HasUpdates reports whether any field is set in UpdateManagerRequest.
func (r *UpdateManagerRequest) HasUpdates() bool {
	return r.Name != nil || r.Status != nil
}

// Validate validates UpdateManagerRequest, ensuring at least one field is set and values are sane.
func (r *UpdateManagerRequest) Validate() error {
	if !r.HasUpdates() {
		return errors.New("at least one field must be updated")
	}
	if r.Name != nil {
		n := strings.TrimSpace(*r.Name)
		if n == "" {
			return errors.New("name cannot be empty")
		}
		if utf8.RuneCountInString(n) > maxManagerNameLen {
			return errors.New("name cannot exceed 255 characters")
		}
	}
	if r.Status != nil {
		status := normalizeManagerStatus(*r.Status)
		if !status.Valid() {
			return errors.New("invalid status")
		}
		*r.Status = status
	}
	return nil
}
