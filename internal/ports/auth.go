package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"

	domainauth "github.com/tubebridge/tubebridge-api/internal/domain/auth"
)

// BeginInput carries inputs for initiating an auth flow.
type BeginInput struct {
	RedirectURL string
}

// AuthProvider initiates and completes an authentication flow against an IdP.
type AuthProvider interface {
	// Begin starts the login flow and returns the provider auth URL, an opaque state, and a nonce.
	Begin(ctx context.Context, in BeginInput) (authURL, state, nonce string, err error)

	// Exchange completes the login flow, verifying state and nonce, and returns the authenticated identity.
	Exchange(ctx context.Context, in ExchangeInput) (domainauth.Identity, error)
}

// ExchangeInput groups parameters for the code/token exchange.
type ExchangeInput struct {
	Code  string
	State string
	Nonce string
}

// SessionStore persists and retrieves user sessions.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
}

// ProfileStore persists and retrieves user profiles, keyed by user ID.
type ProfileStore interface {
	Save(ctx context.Context, userID string, profile domainauth.UserProfile) error
	Get(ctx context.Context, userID string) (domainauth.UserProfile, error)
	Delete(ctx context.Context, userID string) error
}

// PendingAuthStore persists in-flight login context between the redirect to
// the IdP and the callback. Consume removes the record as it reads it, so a
// pending login can be completed at most once.
type PendingAuthStore interface {
	Save(ctx context.Context, pending domainauth.PendingAuth) error
	Consume(ctx context.Context, state string) (domainauth.PendingAuth, error)
}

// RolePolicy decides the effective role for a completed login, given the
// role the user requested on the login screen and their verified identity.
type RolePolicy interface {
	Resolve(requested domainauth.Role, identity domainauth.Identity) domainauth.Role
}
