package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"errors"
	"fmt"
	"time"

	domainauth "github.com/tubebridge/tubebridge-api/internal/domain/auth"
	"github.com/tubebridge/tubebridge-api/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.AuthProvider     = (*MockAuthProvider)(nil)
	_ ports.SessionStore     = (*MemorySessionStore)(nil)
	_ ports.ProfileStore     = (*MemoryProfileStore)(nil)
	_ ports.PendingAuthStore = (*MemoryPendingAuthStore)(nil)
	_ ports.RolePolicy       = (*FixedRolePolicy)(nil)
)

// MockAuthProvider simulates an IdP for tests with deterministic state/nonce handling.
type MockAuthProvider struct {
	BeginFunc    func(ctx context.Context, in ports.BeginInput) (authURL, state, nonce string, err error)
	ExchangeFunc func(ctx context.Context, in ports.ExchangeInput) (domainauth.Identity, error)

	// Deterministic values for predictable testing
	AuthURL     string
	StatePrefix string
	NoncePrefix string
	DefaultUser domainauth.Identity

	// Internal state tracking for deterministic behavior
	callCount int
}

// NewMockAuthProvider creates a MockAuthProvider with sensible defaults.
func NewMockAuthProvider() *MockAuthProvider {
	return &MockAuthProvider{
		AuthURL:     "https://mock-idp/auth",
		StatePrefix: "state",
		NoncePrefix: "nonce",
		DefaultUser: domainauth.Identity{
			UserID:    "mock-user-1",
			Name:      "Mock User",
			Email:     "mock.user@example.com",
			Picture:   "https://mock-idp/avatar.png",
			ExpiresAt: time.Now().Add(time.Hour),
		},
	}
}

func (m *MockAuthProvider) Begin(ctx context.Context, in ports.BeginInput) (string, string, string, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx, in)
	}

	m.callCount++
	authURL := m.AuthURL
	if authURL == "" {
		authURL = "https://mock-idp/auth"
	}

	// Generate deterministic state and nonce based on call count
	statePrefix := m.StatePrefix
	if statePrefix == "" {
		statePrefix = "state"
	}
	noncePrefix := m.NoncePrefix
	if noncePrefix == "" {
		noncePrefix = "nonce"
	}

	state := fmt.Sprintf("%s-%d", statePrefix, m.callCount)
	nonce := fmt.Sprintf("%s-%d", noncePrefix, m.callCount)

	return authURL, state, nonce, nil
}

func (m *MockAuthProvider) Exchange(ctx context.Context, in ports.ExchangeInput) (domainauth.Identity, error) {
	if m.ExchangeFunc != nil {
		return m.ExchangeFunc(ctx, in)
	}

	// Return a copy of the default user with a fresh expiration time
	user := m.DefaultUser
	if user.UserID == "" {
		user = domainauth.Identity{
			UserID: "mock-user-1",
			Name:   "Mock User",
			Email:  "mock.user@example.com",
		}
	}
	user.ExpiresAt = time.Now().Add(time.Hour)

	return user, nil
}

// MemorySessionStore is an in-memory session store for unit tests.
type MemorySessionStore struct {
	sessions map[string]domainauth.Session
}

// NewMemorySessionStore creates a new in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]domainauth.Session),
	}
}

func (m *MemorySessionStore) Save(_ context.Context, sess domainauth.Session) error {
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}
	m.sessions[sess.ID] = sess
	return nil
}

func (m *MemorySessionStore) Get(_ context.Context, id string) (domainauth.Session, error) {
	if id == "" {
		return domainauth.Session{}, ErrNotFound
	}
	sess, ok := m.sessions[id]
	if !ok {
		return domainauth.Session{}, ErrNotFound
	}
	return sess, nil
}

func (m *MemorySessionStore) Delete(_ context.Context, id string) error {
	if id == "" {
		return nil
	}
	delete(m.sessions, id)
	return nil
}

// MemoryProfileStore is an in-memory profile store for unit tests. It keeps
// the first saved email for a user, like the real store.
type MemoryProfileStore struct {
	profiles map[string]domainauth.UserProfile
}

// NewMemoryProfileStore creates a new in-memory profile store.
func NewMemoryProfileStore() *MemoryProfileStore {
	return &MemoryProfileStore{
		profiles: make(map[string]domainauth.UserProfile),
	}
}

func (m *MemoryProfileStore) Save(_ context.Context, userID string, profile domainauth.UserProfile) error {
	if userID == "" {
		return errors.New("user ID cannot be empty")
	}
	if existing, ok := m.profiles[userID]; ok && existing.Email != "" {
		profile.Email = existing.Email
	}
	m.profiles[userID] = profile
	return nil
}

func (m *MemoryProfileStore) Get(_ context.Context, userID string) (domainauth.UserProfile, error) {
	profile, ok := m.profiles[userID]
	if !ok {
		return domainauth.UserProfile{}, ErrNotFound
	}
	return profile, nil
}

func (m *MemoryProfileStore) Delete(_ context.Context, userID string) error {
	delete(m.profiles, userID)
	return nil
}

// MemoryPendingAuthStore is an in-memory pending-login store for unit tests.
// Consume removes the record as it reads it.
type MemoryPendingAuthStore struct {
	pending map[string]domainauth.PendingAuth
}

// NewMemoryPendingAuthStore creates a new in-memory pending-login store.
func NewMemoryPendingAuthStore() *MemoryPendingAuthStore {
	return &MemoryPendingAuthStore{
		pending: make(map[string]domainauth.PendingAuth),
	}
}

func (m *MemoryPendingAuthStore) Save(_ context.Context, pending domainauth.PendingAuth) error {
	if pending.State == "" {
		return errors.New("state cannot be empty")
	}
	m.pending[pending.State] = pending
	return nil
}

func (m *MemoryPendingAuthStore) Consume(_ context.Context, state string) (domainauth.PendingAuth, error) {
	p, ok := m.pending[state]
	if !ok {
		return domainauth.PendingAuth{}, ErrNotFound
	}
	delete(m.pending, state)
	return p, nil
}

// ErrNotFound is returned by mocks when an entity is not present.
type notFoundError struct{}

func (notFoundError) Error() string { return "not found" }

var ErrNotFound error = notFoundError{}

// FixedRolePolicy always resolves to the configured role, or echoes the
// requested role when none is configured.
type FixedRolePolicy struct {
	Role domainauth.Role
}

func (p FixedRolePolicy) Resolve(requested domainauth.Role, _ domainauth.Identity) domainauth.Role {
	if p.Role != "" {
		return p.Role
	}
	return requested
}
