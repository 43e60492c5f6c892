package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swiftpos/backend/internal/auth"
	"github.com/swiftpos/backend/internal/cfg"
	"github.com/swiftpos/backend/pkg/logger"
)

const testSecret = "gate-test-secret"

func testAuthCfg() *cfg.AuthCfg {
	return &cfg.AuthCfg{
		JWTSecret:  testSecret,
		TokenTTL:   time.Hour,
		CookieName: "pos_session",
	}
}

func gatedServer(t *testing.T) http.Handler {
	t.Helper()

	gate := NewAccessGate(testAuthCfg(), logger.NewSlogLogger())
	return gate.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func requestWithRole(t *testing.T, path, role string) *http.Request {
	t.Helper()

	token, err := auth.IssueToken(testSecret, "someone", role, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.AddCookie(&http.Cookie{Name: "pos_session", Value: token})
	return req
}

func TestGateRedirectsAnonymousToLogin(t *testing.T) {
	handler := gatedServer(t)

	for _, path := range []string{"/pos", "/inventory", "/api/products", "/invoice/abc"} {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

		assert.Equal(t, http.StatusFound, rec.Code, path)
		assert.Equal(t, "/login", rec.Header().Get("Location"), path)
	}
}

func TestGatePassesPublicPaths(t *testing.T) {
	handler := gatedServer(t)

	for _, path := range []string{"/login", "/api/auth/login", "/favicon.ico", "/static/app.css", "/public/logo.png"} {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestGateRedirectsCashierFromAdminPaths(t *testing.T) {
	handler := gatedServer(t)

	for _, path := range []string{"/inventory", "/users", "/api/users/1"} {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, requestWithRole(t, path, auth.RoleCashier))

		assert.Equal(t, http.StatusFound, rec.Code, path)
		assert.Equal(t, "/pos", rec.Header().Get("Location"), path)
	}
}

func TestGatePassesCashierToOperationalPaths(t *testing.T) {
	handler := gatedServer(t)

	for _, path := range []string{"/pos", "/invoice/abc", "/api/products", "/api/sales/xyz"} {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, requestWithRole(t, path, auth.RoleCashier))

		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestGatePassesAdminEverywhere(t *testing.T) {
	handler := gatedServer(t)

	for _, path := range []string{"/inventory", "/users", "/api/users/1", "/pos", "/api/sales"} {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, requestWithRole(t, path, auth.RoleAdmin))

		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestGateRejectsForgedToken(t *testing.T) {
	handler := gatedServer(t)

	forged, err := auth.IssueToken("wrong-secret", "intruder", auth.RoleAdmin, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/inventory", nil)
	req.AddCookie(&http.Cookie{Name: "pos_session", Value: forged})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestGateAcceptsBearerHeader(t *testing.T) {
	handler := gatedServer(t)

	token, err := auth.IssueToken(testSecret, "api-client", auth.RoleAdmin, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGateInjectsClaimsIntoContext(t *testing.T) {
	gate := NewAccessGate(testAuthCfg(), logger.NewSlogLogger())

	var gotRole string
	handler := gate.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if claims, ok := ClaimsFromCtx(r.Context()); ok {
			gotRole = claims.Role
		}
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithRole(t, "/pos", auth.RoleCashier))

	assert.Equal(t, auth.RoleCashier, gotRole)
}
