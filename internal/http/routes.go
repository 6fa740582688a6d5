package httpx

import (
	"log/slog"
	"net/http"

	domainauth "github.com/tubebridge/tubebridge-api/internal/domain/auth"
	"github.com/tubebridge/tubebridge-api/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Uploads  *service.UploadService
	Reviews  *service.ReviewService
	Managers *service.ManagerService
	Activity *service.ActivityService
	Auth     *service.AuthService
	// RedirectURL is the OAuth callback URL registered with the IdP.
	RedirectURL  string
	CookieDomain string
	Logger       *slog.Logger
}

// NewRouter creates and configures a new HTTP router.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	uploadHandlers := &UploadHandlers{Svc: services.Uploads}
	reviewHandlers := &ReviewHandlers{Svc: services.Reviews}
	managerHandlers := &ManagerHandlers{Svc: services.Managers}
	activityHandlers := &ActivityHandlers{Svc: services.Activity}
	var authHandlers *AuthHandlers
	if services.Auth != nil {
		authHandlers = &AuthHandlers{
			Svc:          services.Auth,
			RedirectURL:  services.RedirectURL,
			CookieDomain: services.CookieDomain,
			Logger:       services.Logger,
		}
	}

	registerUploadRoutes(mux, uploadHandlers, reviewHandlers, services.Auth)
	registerStagingRoutes(mux, uploadHandlers, services.Auth)
	registerManagerRoutes(mux, managerHandlers, services.Auth)
	registerActivityRoutes(mux, activityHandlers, services.Auth)
	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))
	if authHandlers != nil {
		registerAuthRoutes(mux, authHandlers, services.Auth)
	}

	return mux
}

// authWrap returns a no-op wrapper when auth is nil, otherwise applies RequireAuth.
func authWrap(auth *service.AuthService) func(http.Handler) http.Handler {
	if auth == nil {
		return func(h http.Handler) http.Handler { return h }
	}
	return RequireAuth(auth)
}

// adminWrap returns a no-op wrapper when auth is nil, otherwise requires the admin role.
func adminWrap(auth *service.AuthService) func(http.Handler) http.Handler {
	if auth == nil {
		return func(h http.Handler) http.Handler { return h }
	}
	return RequireRole(auth, domainauth.RoleAdmin)
}

// registerUploadRoutes wires the uploads listing and the review decisions.
// Any authenticated user can browse; approve/reject is an admin call.
func registerUploadRoutes(mux *http.ServeMux, h *UploadHandlers, rh *ReviewHandlers, auth *service.AuthService) {
	wrap := authWrap(auth)
	wrapAdmin := adminWrap(auth)

	mux.Handle("GET /api/uploads", wrap(http.HandlerFunc(h.List)))
	mux.Handle("GET /api/uploads/pending", wrapAdmin(http.HandlerFunc(rh.Queue)))
	mux.Handle("GET /api/uploads/{id}", wrap(http.HandlerFunc(h.GetByID)))
	mux.Handle("DELETE /api/uploads/{id}", wrapAdmin(http.HandlerFunc(h.Delete)))

	mux.Handle("POST /api/uploads/{id}/approve", wrapAdmin(http.HandlerFunc(rh.Approve)))
	mux.Handle("POST /api/uploads/{id}/reject", wrapAdmin(http.HandlerFunc(rh.Reject)))
}

// registerStagingRoutes wires the staged-upload lifecycle.
func registerStagingRoutes(mux *http.ServeMux, h *UploadHandlers, auth *service.AuthService) {
	wrap := authWrap(auth)

	mux.Handle("POST /api/staging", wrap(http.HandlerFunc(h.OpenStaging)))
	mux.Handle("GET /api/staging/{id}", wrap(http.HandlerFunc(h.GetStaging)))
	mux.Handle("DELETE /api/staging/{id}", wrap(http.HandlerFunc(h.DiscardStaging)))
	mux.Handle("POST /api/staging/{id}/video", wrap(http.HandlerFunc(h.SelectVideo)))
	mux.Handle("DELETE /api/staging/{id}/video", wrap(http.HandlerFunc(h.ClearVideo)))
	mux.Handle("POST /api/staging/{id}/thumbnail", wrap(http.HandlerFunc(h.SelectThumbnail)))
	mux.Handle("DELETE /api/staging/{id}/thumbnail", wrap(http.HandlerFunc(h.ClearThumbnail)))
	mux.Handle("PUT /api/staging/{id}/details", wrap(http.HandlerFunc(h.SetDetails)))
	mux.Handle("POST /api/staging/{id}/submit", wrap(http.HandlerFunc(h.Submit)))
}

// registerManagerRoutes wires content manager administration (admin-only).
func registerManagerRoutes(mux *http.ServeMux, h *ManagerHandlers, auth *service.AuthService) {
	registerCRUD(mux, crudRoutes{
		Base:       "/api/managers",
		Create:     h.Create,
		List:       h.List,
		GetByID:    h.GetByID,
		Update:     h.Update,
		Delete:     h.Delete,
		Middleware: adminWrap(auth),
	})
}

func registerActivityRoutes(mux *http.ServeMux, h *ActivityHandlers, auth *service.AuthService) {
	wrap := authWrap(auth)
	mux.Handle("GET /api/activity", wrap(http.HandlerFunc(h.List)))
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers, auth *service.AuthService) {
	mux.HandleFunc("GET /auth/login", h.Login)
	mux.HandleFunc("GET /auth/callback", h.Callback)
	mux.HandleFunc("POST /auth/logout", h.Logout)

	wrap := authWrap(auth)
	mux.Handle("GET /api/me", wrap(http.HandlerFunc(h.Me)))
	mux.Handle("GET /api/profile", wrap(http.HandlerFunc(h.GetProfile)))
	mux.Handle("PUT /api/profile", wrap(http.HandlerFunc(h.UpdateProfile)))
}

// crudRoutes describes standard CRUD routes for a resource base path.
type crudRoutes struct {
	Base       string
	Create     http.HandlerFunc
	List       http.HandlerFunc
	GetByID    http.HandlerFunc
	Update     http.HandlerFunc
	Delete     http.HandlerFunc
	Middleware func(http.Handler) http.Handler
}

func registerCRUD(mux *http.ServeMux, cfg crudRoutes) {
	if cfg.Base == "" {
		panic("registerCRUD: Base must not be empty") //nolint:forbidigo // Fail fast during server setup.
	}
	if cfg.Create == nil ||
		cfg.List == nil ||
		cfg.GetByID == nil ||
		cfg.Update == nil ||
		cfg.Delete == nil {
		panic("registerCRUD: nil handler for base " + cfg.Base) //nolint:forbidigo // Fail fast during server setup.
	}

	wrap := func(h http.HandlerFunc) http.Handler {
		if cfg.Middleware != nil {
			return cfg.Middleware(h)
		}
		return h
	}
	mux.Handle("POST "+cfg.Base, wrap(cfg.Create))
	mux.Handle("GET "+cfg.Base, wrap(cfg.List))
	mux.Handle("GET "+cfg.Base+"/{id}", wrap(cfg.GetByID))
	mux.Handle("PATCH "+cfg.Base+"/{id}", wrap(cfg.Update))
	mux.Handle("DELETE "+cfg.Base+"/{id}", wrap(cfg.Delete))
}
