package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.

import (
	"strings"
	"time"
)

// Role represents the access level a user is operating as.
// Keep string form for easy persistence and cookies.
// Valid values are defined as constants below.
type Role string

const (
	RoleAdmin          Role = "admin"
	RoleContentManager Role = "content-manager"
)

// Valid reports whether the role is supported.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleContentManager:
		return true
	default:
		return false
	}
}

// ParseRole normalizes a role string, defaulting to admin when empty.
// The bool result reports whether the input was usable.
func ParseRole(value string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(value)))
	if r == "" {
		return RoleAdmin, true
	}
	if r.Valid() {
		return r, true
	}
	return "", false
}

// LandingPath returns the screen a freshly authenticated user of this role lands on.
func (r Role) LandingPath() string {
	if r == RoleAdmin {
		return "/dashboard"
	}
	return "/content-manager"
}

// Identity represents the authenticated principal returned by the IdP.
// Adapters map provider-specific claims into this shape.
type Identity struct {
	UserID    string // stable user identifier (Google sub)
	Name      string
	Email     string
	Picture   string
	IDToken   string    // raw verified id_token, when the provider issues one
	ExpiresAt time.Time // absolute expiry from IdP token
}

// Session is the server-side record we persist for an authenticated user.
// ID is the store key and Token is the bearer credential authenticated API
// calls present; both carry the raw id_token when the provider issues one,
// so the value a browser stores is the same one the server looks up.
type Session struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Picture   string    `json:"picture,omitempty"`
	Role      Role      `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsAdmin returns true if the session role is admin.
func (s Session) IsAdmin() bool { return s.Role == RoleAdmin }

// UserProfile is the profile shown in navigation and settings screens.
// Email is immutable after creation; updates replace the whole value.
type UserProfile struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	PictureURL string `json:"picture_url,omitempty"`
	Role       Role   `json:"role"`
	Bio        string `json:"bio,omitempty"`
}

// PendingAuth is the persisted context for an in-flight login. It is created
// before the redirect to the IdP and consumed exactly once on return, which
// is how the selected role survives the full-page navigation round trip.
type PendingAuth struct {
	State        string    `json:"state"`
	Nonce        string    `json:"nonce"`
	Role         Role      `json:"role"`
	RedirectPath string    `json:"redirect_path"`
	CreatedAt    time.Time `json:"created_at"`
}
