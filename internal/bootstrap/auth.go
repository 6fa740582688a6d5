package bootstrap

import (
	"log/slog"

	"github.com/redis/go-redis/v9"
	"github.com/tubebridge/tubebridge-api/config"
	"github.com/tubebridge/tubebridge-api/internal/adapters/authroles"
	"github.com/tubebridge/tubebridge-api/internal/adapters/devauth"
	"github.com/tubebridge/tubebridge-api/internal/adapters/googleauth"
	redisadapter "github.com/tubebridge/tubebridge-api/internal/adapters/redis"
	"github.com/tubebridge/tubebridge-api/internal/service"
)

// AuthBuildConfig contains configuration for building the auth service.
type AuthBuildConfig struct {
	Auth        config.AuthConfig
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

type authStores struct {
	sessions *redisadapter.SessionStore
	profiles *redisadapter.ProfileStore
	pending  *redisadapter.PendingAuthStore
}

// BuildAuthService creates an auth service based on the configured auth mode.
// Returns nil if auth is not configured or configuration is invalid; the
// router treats a nil auth service as "auth disabled".
func BuildAuthService(cfg AuthBuildConfig) *service.AuthService {
	if cfg.RedisClient == nil {
		if cfg.Logger != nil {
			cfg.Logger.Warn("auth service disabled: redis client not configured", "mode", cfg.Auth.Mode)
		}
		return nil
	}

	// Sessions are keyed by the raw id_token so the browser cookie and the
	// Authorization bearer resolve to the same record.
	stores := authStores{
		sessions: redisadapter.NewSessionStoreWithPrefix(cfg.RedisClient, "id_token:"),
		profiles: redisadapter.NewProfileStore(cfg.RedisClient),
		pending:  redisadapter.NewPendingAuthStore(cfg.RedisClient, cfg.Auth.PendingTTL),
	}

	policy := authroles.StaticRolePolicy{AdminEmails: cfg.Auth.AdminEmails}

	switch cfg.Auth.Mode {
	case config.AuthModeMock:
		return buildDevAuthService(cfg, stores, policy)

	case config.AuthModeOAuth:
		return buildOAuthService(cfg, stores, policy)

	default:
		return nil
	}
}

func buildDevAuthService(
	cfg AuthBuildConfig,
	stores authStores,
	policy authroles.StaticRolePolicy,
) *service.AuthService {
	// Explicitly enabled dev auth mode; build a local provider.
	prov, err := devauth.NewProvider(devauth.Config{
		UserID:          cfg.Auth.DevAuth.UserID,
		Name:            cfg.Auth.DevAuth.Name,
		Email:           cfg.Auth.DevAuth.Email,
		Picture:         cfg.Auth.DevAuth.Picture,
		SessionDuration: cfg.Auth.SessionTTL,
	})
	if err != nil {
		if cfg.Logger != nil {
			cfg.Logger.Warn("failed to create dev auth provider, auth disabled", "error", err)
		}
		return nil
	}

	return service.NewAuthService(service.AuthServiceOptions{
		Provider: prov,
		Sessions: stores.sessions,
		Profiles: stores.profiles,
		Pending:  stores.pending,
		Policy:   policy,
	})
}

func buildOAuthService(
	cfg AuthBuildConfig,
	stores authStores,
	policy authroles.StaticRolePolicy,
) *service.AuthService {
	// Only enable when fully configured
	oauth := cfg.Auth.OAuth
	if oauth.DiscoveryURL == "" || oauth.ClientID == "" || oauth.ClientSecret == "" {
		if cfg.Logger != nil {
			cfg.Logger.Warn("AuthModeOAuth selected but required config missing; auth disabled",
				"discovery_url_empty", oauth.DiscoveryURL == "",
				"client_id_empty", oauth.ClientID == "",
				"client_secret_empty", oauth.ClientSecret == "",
			)
		}
		return nil
	}

	prov, err := googleauth.NewProvider(googleauth.ProviderConfig{
		ClientID:     oauth.ClientID,
		ClientSecret: oauth.ClientSecret,
		RedirectURL:  oauth.RedirectURL,
		Scope:        oauth.Scope,
		DiscoveryURL: oauth.DiscoveryURL,
		LogoutURL:    oauth.LogoutURL,
	})
	if err != nil {
		if cfg.Logger != nil {
			cfg.Logger.Warn("failed to create OIDC provider, auth disabled", "error", err)
		}
		return nil
	}

	return service.NewAuthService(service.AuthServiceOptions{
		Provider: prov,
		Sessions: stores.sessions,
		Profiles: stores.profiles,
		Pending:  stores.pending,
		Policy:   policy,
	})
}
