package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/tubebridge/tubebridge-api/internal/domain/auth"
	apperrors "github.com/tubebridge/tubebridge-api/internal/errors"
	"github.com/tubebridge/tubebridge-api/internal/service"
)

func newAuthHandlers(svc *stubAuthService) *AuthHandlers {
	return &AuthHandlers{Svc: svc, RedirectURL: "http://localhost:8080/auth/callback"}
}

func TestLogin_RedirectsToProvider(t *testing.T) {
	t.Parallel()
	svc := newStubAuthService()
	svc.beginResult = &service.BeginLoginResult{
		AuthURL: "https://idp.example.com/authorize?state=state-1",
		State:   "state-1",
		Nonce:   "nonce-1",
	}
	h := newAuthHandlers(svc)

	req := httptest.NewRequest(http.MethodGet, "/auth/login?role=content-manager&redirect_uri=/content-manager", nil)
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, svc.beginResult.AuthURL, rec.Header().Get("Location"))

	var stateCookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == oauthStateCookie {
			stateCookie = c
		}
	}
	require.NotNil(t, stateCookie, "expected state cookie to be set")
	assert.Equal(t, "state-1", stateCookie.Value)
	assert.True(t, stateCookie.HttpOnly)
}

func TestLogin_InvalidRole(t *testing.T) {
	t.Parallel()
	svc := newStubAuthService()
	svc.beginErr = apperrors.ValidationField("role", "unknown role")
	h := newAuthHandlers(svc)

	req := httptest.NewRequest(http.MethodGet, "/auth/login?role=superuser", nil)
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_role")
}

func TestCallback_MissingCode(t *testing.T) {
	t.Parallel()
	h := newAuthHandlers(newStubAuthService())

	req := httptest.NewRequest(http.MethodGet, "/auth/callback?state=state-1", nil)
	rec := httptest.NewRecorder()
	h.Callback(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "missing_code", body["error"])
	assert.Equal(t, "No authorization code found in the URL.", body["message"])
}

func TestCallback_StateMismatch(t *testing.T) {
	t.Parallel()
	h := newAuthHandlers(newStubAuthService())

	req := httptest.NewRequest(http.MethodGet, "/auth/callback?code=abc&state=state-1", nil)
	req.AddCookie(&http.Cookie{Name: oauthStateCookie, Value: "other-state"})
	rec := httptest.NewRecorder()
	h.Callback(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_state")
}

func TestCallback_Success(t *testing.T) {
	t.Parallel()
	svc := newStubAuthService()
	svc.completeResult = &service.CompleteLoginResult{
		Session: domainauth.Session{
			ID:        "raw-id-token",
			Token:     "raw-id-token",
			UserID:    "user-1",
			Role:      domainauth.RoleContentManager,
			ExpiresAt: time.Now().Add(time.Hour),
		},
		RedirectPath: "/content-manager",
	}
	h := newAuthHandlers(svc)

	req := httptest.NewRequest(http.MethodGet, "/auth/callback?code=abc&state=state-1", nil)
	req.AddCookie(&http.Cookie{Name: oauthStateCookie, Value: "state-1"})
	rec := httptest.NewRecorder()
	h.Callback(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/content-manager", rec.Header().Get("Location"))
	assert.Equal(t, 1, svc.completeCalls)

	var sessionCookie, stateCookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		switch c.Name {
		case sessionCookieName:
			sessionCookie = c
		case oauthStateCookie:
			stateCookie = c
		}
	}
	require.NotNil(t, sessionCookie)
	assert.Equal(t, "raw-id-token", sessionCookie.Value)
	assert.Positive(t, sessionCookie.MaxAge)
	require.NotNil(t, stateCookie, "expected state cookie to be cleared")
	assert.Negative(t, stateCookie.MaxAge)
}

func TestCallback_ExchangeFailure(t *testing.T) {
	t.Parallel()
	svc := newStubAuthService()
	svc.completeErr = apperrors.Wrap(assert.AnError, apperrors.ErrCodeAuthExchange, "unknown or already used login state")
	h := newAuthHandlers(svc)

	req := httptest.NewRequest(http.MethodGet, "/auth/callback?code=abc&state=state-1", nil)
	req.AddCookie(&http.Cookie{Name: oauthStateCookie, Value: "state-1"})
	rec := httptest.NewRecorder()
	h.Callback(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "auth_exchange_failed")
}

func TestLogout_AJAX(t *testing.T) {
	t.Parallel()
	svc := newStubAuthService()
	sess := svc.addSession(domainauth.RoleAdmin)
	h := newAuthHandlers(svc)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: sess.ID})
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	h.Logout(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "/", body["redirect_to"])
	assert.Equal(t, []string{sess.ID}, svc.loggedOut)
}

func TestLogout_BrowserRedirect(t *testing.T) {
	t.Parallel()
	svc := newStubAuthService()
	h := newAuthHandlers(svc)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	rec := httptest.NewRecorder()
	h.Logout(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestMe_RequiresSession(t *testing.T) {
	t.Parallel()
	h := newAuthHandlers(newStubAuthService())

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	rec := httptest.NewRecorder()
	h.Me(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMe_ReturnsSession(t *testing.T) {
	t.Parallel()
	svc := newStubAuthService()
	sess := svc.addSession(domainauth.RoleContentManager)
	h := newAuthHandlers(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req = req.WithContext(SetSessionInContext(req.Context(), sess))
	rec := httptest.NewRecorder()
	h.Me(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body domainauth.Session
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, sess.UserID, body.UserID)
	assert.Equal(t, sess.Role, body.Role)
}

func TestProfile_RoundTrip(t *testing.T) {
	t.Parallel()
	svc := newStubAuthService()
	sess := svc.addSession(domainauth.RoleContentManager)
	svc.profiles[sess.UserID] = domainauth.UserProfile{
		Name:  "Test User",
		Email: sess.Email,
		Role:  sess.Role,
	}
	h := newAuthHandlers(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	req = req.WithContext(SetSessionInContext(req.Context(), sess))
	rec := httptest.NewRecorder()
	h.GetProfile(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var profile domainauth.UserProfile
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&profile))
	assert.Equal(t, "Test User", profile.Name)
	assert.Equal(t, sess.Email, profile.Email)
}
