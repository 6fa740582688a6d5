package config

import (
	"fmt"
	"strings"
	"time"
)

// AuthMode represents the authentication mode for the application.
type AuthMode string

const (
	// AuthModeOAuth uses Google OAuth/OIDC for authentication.
	AuthModeOAuth AuthMode = "oauth"
	// AuthModeMock uses mock/dev authentication (for development only).
	AuthModeMock AuthMode = "mock"
)

// UnmarshalText implements encoding.TextUnmarshaler for AuthMode.
func (a *AuthMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "oauth", "mock":
		*a = AuthMode(v)
		return nil
	default:
		return fmt.Errorf("invalid AuthMode: %q (valid options: oauth, mock)", v)
	}
}

// OAuthConfig contains OAuth/OIDC configuration for the Google sign-in flow.
type OAuthConfig struct {
	ClientID     string `env:"CLIENT_ID"     envDefault:"tubebridge"`
	ClientSecret string `env:"CLIENT_SECRET" envDefault:"tubebridge"`
	RedirectURL  string `env:"REDIRECT_URL"  envDefault:"http://localhost:8080/auth/callback"`
	Scope        string `env:"SCOPE"         envDefault:"openid profile email"`
	DiscoveryURL string `env:"DISCOVERY_URL" envDefault:"https://accounts.google.com"`
	LogoutURL    string `env:"LOGOUT_URL"`
}

// DevAuthConfig controls mock/dev authentication identity.
// Used when AUTH_MODE=mock for development and testing.
type DevAuthConfig struct {
	UserID  string `env:"USER_ID" envDefault:"dev-user"`
	Name    string `env:"NAME"    envDefault:"Dev User"`
	Email   string `env:"EMAIL"   envDefault:"dev@example.com"`
	Picture string `env:"PICTURE" envDefault:""`
}

// AuthConfig groups all authentication-related configuration.
type AuthConfig struct {
	// Mode determines which authentication provider to use.
	Mode AuthMode `env:"AUTH_MODE" envDefault:"oauth"`

	// OAuth configuration (used when Mode=oauth).
	OAuth OAuthConfig `envPrefix:"OAUTH_"`

	// DevAuth configuration (used when Mode=mock).
	DevAuth DevAuthConfig `envPrefix:"DEV_AUTH_"`

	// SessionTTL is the lifetime of a server-side session when the
	// provider does not supply a token expiry.
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"24h"`

	// PendingTTL is how long an in-flight login context (state, nonce,
	// selected role) survives before the callback must complete.
	PendingTTL time.Duration `env:"AUTH_PENDING_TTL" envDefault:"10m"`

	// AdminEmails, when set, restricts the admin role to the listed
	// addresses. Empty means any authenticated user may select admin.
	AdminEmails []string `env:"AUTH_ADMIN_EMAILS" envSeparator:","`
}

// Sanitize applies guardrails to auth configuration values.
func (a *AuthConfig) Sanitize() {
	if a.SessionTTL <= 0 {
		a.SessionTTL = 24 * time.Hour
	}
	if a.PendingTTL <= 0 {
		a.PendingTTL = 10 * time.Minute
	}
}
