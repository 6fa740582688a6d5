// Package bootstrap wires configuration, infrastructure, and services into a
// runnable application.
package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tubebridge/tubebridge-api/config"
	"github.com/tubebridge/tubebridge-api/internal/data"
	"github.com/tubebridge/tubebridge-api/internal/service"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Uploads  *service.UploadService
	Reviews  *service.ReviewService
	Managers *service.ManagerService
	Activity *service.ActivityService
	Auth     *service.AuthService
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// serviceRepositories groups data adapters backing service ports.
type serviceRepositories struct {
	UploadRepo   *data.UploadRepo
	ManagerRepo  *data.ManagerRepo
	ActivityRepo *data.ActivityRepo
}

func buildRepositories(db *sql.DB) *serviceRepositories {
	return &serviceRepositories{
		UploadRepo:   data.NewUploadRepo(db),
		ManagerRepo:  data.NewManagerRepo(db),
		ActivityRepo: data.NewActivityRepo(db),
	}
}

// NewServices creates all application services with their dependencies.
func NewServices(deps ServiceDeps) (*ServiceContainer, error) {
	if deps.Config == nil {
		return nil, errors.New("service deps missing AppConfig")
	}
	if deps.DB == nil {
		return nil, errors.New("service deps missing database connection")
	}

	repos := buildRepositories(deps.DB)

	uploads := service.NewUploadService(service.UploadServiceOptions{
		Uploads:  repos.UploadRepo,
		Activity: repos.ActivityRepo,
		Config:   deps.Config.Upload,
	})
	reviews := service.NewReviewService(service.ReviewServiceOptions{
		Uploads:  repos.UploadRepo,
		Activity: repos.ActivityRepo,
	})
	managers := service.NewManagerService(service.ManagerServiceOptions{
		Managers: repos.ManagerRepo,
	})
	activity := service.NewActivityService(service.ActivityServiceOptions{
		Activity: repos.ActivityRepo,
	})

	auth := BuildAuthService(AuthBuildConfig{
		Auth:        deps.Config.Auth,
		RedisClient: deps.RedisClient,
		Logger:      deps.Logger,
	})

	return &ServiceContainer{
		Uploads:  uploads,
		Reviews:  reviews,
		Managers: managers,
		Activity: activity,
		Auth:     auth,
	}, nil
}

// shutdownWaitTimeout is the maximum time to wait for the server to stop gracefully.
const shutdownWaitTimeout = 15 * time.Second

// RunConfig groups everything needed to run the application.
type RunConfig struct {
	Config   *config.AppConfig
	Services *ServiceContainer
	Logger   *slog.Logger
}

// RunWithShutdown starts the HTTP server and blocks until a shutdown signal
// is received or the server fails.
func RunWithShutdown(cfg *RunConfig) error {
	if cfg == nil {
		return errors.New("run config is required")
	}
	if cfg.Config == nil {
		return errors.New("run config missing AppConfig")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	errCh := make(chan error, 1)
	server := StartHTTPServer(&HTTPServerConfig{
		Config:   cfg.Config,
		Services: cfg.Services,
		Logger:   logger,
		ErrCh:    errCh,
	})

	return waitForShutdown(shutdownState{
		server: server,
		errCh:  errCh,
		logger: logger,
	})
}

type shutdownState struct {
	server *http.Server
	errCh  chan error
	logger *slog.Logger
}

// waitForShutdown waits for a shutdown signal or server error.
func waitForShutdown(state shutdownState) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case <-quit:
		state.logger.Info("shutting down...")
		return gracefulStop(state)
	case err := <-state.errCh:
		state.logger.Error("http server error", "error", err)
		if stopErr := gracefulStop(state); stopErr != nil {
			state.logger.Error("graceful stop failed", "error", stopErr)
		}
		return err
	}
}

// gracefulStop attempts to gracefully stop the HTTP server.
func gracefulStop(state shutdownState) error {
	if state.server == nil {
		return nil
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownWaitTimeout)
	defer cancel()

	return ShutdownHTTPServer(ShutdownConfig{
		Context: shutdownCtx,
		Server:  state.server,
		Logger:  state.logger,
	})
}
