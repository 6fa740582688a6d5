package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	domainauth "github.com/tubebridge/tubebridge-api/internal/domain/auth"
	apperrors "github.com/tubebridge/tubebridge-api/internal/errors"
	"github.com/tubebridge/tubebridge-api/internal/ports"
)

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Provider ports.AuthProvider
	Sessions ports.SessionStore
	Profiles ports.ProfileStore
	Pending  ports.PendingAuthStore
	Policy   ports.RolePolicy
}

// AuthService orchestrates authentication flows: it coordinates the IdP
// provider, the pending-login context carried across the redirect, the role
// policy, and session/profile persistence.
type AuthService struct {
	provider ports.AuthProvider
	sessions ports.SessionStore
	profiles ports.ProfileStore
	pending  ports.PendingAuthStore
	policy   ports.RolePolicy
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	return &AuthService{
		provider: opts.Provider,
		sessions: opts.Sessions,
		profiles: opts.Profiles,
		pending:  opts.Pending,
		policy:   opts.Policy,
	}
}

// BeginLoginInput groups parameters for starting a login flow.
type BeginLoginInput struct {
	RedirectURL string
	// Role is the role selected on the login screen; empty defaults to admin.
	Role string
	// RedirectPath is where to land after the callback completes. When empty
	// the role's landing path is used.
	RedirectPath string
}

// BeginLoginResult contains the result of beginning a login flow.
type BeginLoginResult struct {
	AuthURL string
	State   string
	Nonce   string
}

// BeginLogin initiates an authentication flow. The selected role travels in
// the pending-login record keyed by state, not in the IdP round trip, so it
// survives the full-page redirect.
func (s *AuthService) BeginLogin(ctx context.Context, input BeginLoginInput) (*BeginLoginResult, error) {
	if input.RedirectURL == "" {
		return nil, errors.New("redirect URL is required")
	}

	role, ok := domainauth.ParseRole(input.Role)
	if !ok {
		return nil, apperrors.ValidationField("role", "unknown role")
	}

	authURL, state, nonce, err := s.provider.Begin(ctx, ports.BeginInput{RedirectURL: input.RedirectURL})
	if err != nil {
		return nil, fmt.Errorf("begin auth flow: %w", err)
	}

	pending := domainauth.PendingAuth{
		State:        state,
		Nonce:        nonce,
		Role:         role,
		RedirectPath: input.RedirectPath,
		CreatedAt:    time.Now().UTC(),
	}
	if saveErr := s.pending.Save(ctx, pending); saveErr != nil {
		return nil, fmt.Errorf("save pending login: %w", saveErr)
	}

	return &BeginLoginResult{
		AuthURL: authURL,
		State:   state,
		Nonce:   nonce,
	}, nil
}

// CompleteLoginInput groups parameters for completing a login flow.
type CompleteLoginInput struct {
	Code  string
	State string
}

// CompleteLoginResult contains the result of completing a login flow.
type CompleteLoginResult struct {
	Session      domainauth.Session
	RedirectPath string
}

// CompleteLogin completes an authentication flow: it consumes the pending
// login for the state (one shot), exchanges the code for an identity, applies
// the role policy, and persists the session and profile.
func (s *AuthService) CompleteLogin(ctx context.Context, input CompleteLoginInput) (*CompleteLoginResult, error) {
	if input.Code == "" {
		return nil, apperrors.Validation("authorization code is required")
	}
	if input.State == "" {
		return nil, apperrors.Validation("state parameter is required")
	}

	// Consuming removes the record, so a replayed state cannot complete twice.
	pending, err := s.pending.Consume(ctx, input.State)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeAuthExchange, "unknown or already used login state")
	}

	identity, err := s.provider.Exchange(ctx, ports.ExchangeInput{
		Code:  input.Code,
		State: input.State,
		Nonce: pending.Nonce,
	})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeAuthExchange, "exchange authorization code")
	}

	role := pending.Role
	if s.policy != nil {
		role = s.policy.Resolve(pending.Role, identity)
	}

	// The raw id_token is both the session key and the bearer credential, so
	// API calls can present the same value the browser stores. The dev
	// provider issues no id_token; a generated ID fills both roles there.
	sessionID := identity.IDToken
	if sessionID == "" {
		sessionID = generateSessionID()
	}
	token := sessionID

	session := domainauth.Session{
		ID:        sessionID,
		Token:     token,
		UserID:    identity.UserID,
		Name:      identity.Name,
		Email:     identity.Email,
		Picture:   identity.Picture,
		Role:      role,
		ExpiresAt: identity.ExpiresAt,
	}

	if saveErr := s.sessions.Save(ctx, session); saveErr != nil {
		return nil, fmt.Errorf("save session: %w", saveErr)
	}

	profile := domainauth.UserProfile{
		Name:       identity.Name,
		Email:      identity.Email,
		PictureURL: identity.Picture,
		Role:       role,
	}
	if saveErr := s.profiles.Save(ctx, identity.UserID, profile); saveErr != nil {
		return nil, fmt.Errorf("save profile: %w", saveErr)
	}

	redirectPath := pending.RedirectPath
	if redirectPath == "" {
		redirectPath = role.LandingPath()
	}

	return &CompleteLoginResult{
		Session:      session,
		RedirectPath: redirectPath,
	}, nil
}

// GetSession retrieves a session by ID.
func (s *AuthService) GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error) {
	if sessionID == "" {
		return nil, errors.New("session ID is required")
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	// Check if session is expired
	if time.Now().After(session.ExpiresAt) {
		// Clean up expired session
		if deleteErr := s.sessions.Delete(ctx, sessionID); deleteErr != nil {
			return nil, errors.Join(
				apperrors.AuthExpired("session expired"),
				fmt.Errorf("delete session: %w", deleteErr),
			)
		}
		return nil, apperrors.AuthExpired("session expired")
	}

	return &session, nil
}

// GetProfile retrieves the stored profile for a user.
func (s *AuthService) GetProfile(ctx context.Context, userID string) (*domainauth.UserProfile, error) {
	if userID == "" {
		return nil, errors.New("user ID is required")
	}
	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &profile, nil
}

// UpdateProfile replaces the stored profile for a user. The store keeps the
// original email regardless of what the update carries.
func (s *AuthService) UpdateProfile(
	ctx context.Context,
	userID string,
	profile domainauth.UserProfile,
) (*domainauth.UserProfile, error) {
	if userID == "" {
		return nil, errors.New("user ID is required")
	}
	if saveErr := s.profiles.Save(ctx, userID, profile); saveErr != nil {
		return nil, fmt.Errorf("save profile: %w", saveErr)
	}
	saved, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &saved, nil
}

// Logout removes a session and destroys the profile stored for its user.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil // Nothing to logout
	}

	// Look up the owner before the session disappears.
	session, getErr := s.sessions.Get(ctx, sessionID)

	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	if getErr != nil || session.UserID == "" {
		return nil
	}
	if err := s.profiles.Delete(ctx, session.UserID); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}

	return nil
}

// generateSessionID creates a cryptographically secure random session ID.
func generateSessionID() string {
	// Use UUID for session ID - it's URL-safe and has good entropy
	id := uuid.New()
	return id.String()
}
