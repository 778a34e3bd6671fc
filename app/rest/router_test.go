package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"auth-api/app/config"
	"auth-api/app/domain"
	"auth-api/app/mocks"
	"auth-api/app/rest/response"
)

func testRouterConfig() *config.Config {
	return &config.Config{
		Port:               "8888",
		Host:               "localhost",
		LogLevel:           "info",
		CORSOrigin:         "http://localhost:3000",
		CORSMethods:        "GET,POST,PATCH,OPTIONS",
		CORSAllowedHeaders: "Content-Type,Authorization",
		RateLimitRequests:  1000,
		RateLimitWindow:    time.Minute,
		BodyLimit:          "10M",
	}
}

func newTestRouter(t *testing.T) (*mocks.MockIdentityProvider, http.Handler) {
	t.Helper()

	ctrl := gomock.NewController(t)
	provider := mocks.NewMockIdentityProvider(ctrl)
	e := NewRouter(RouterConfig{
		Config:   testRouterConfig(),
		Logger:   slog.Default(),
		Provider: provider,
	})
	return provider, e
}

func doRequest(t *testing.T, h http.Handler, method, path, token, body string) (*httptest.ResponseRecorder, response.Envelope) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env response.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

func TestUnknownRouteReturnsEnvelope404(t *testing.T) {
	_, router := newTestRouter(t)

	rec, env := doRequest(t, router, http.MethodGet, "/api/nonexistent", "", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "The route you are looking for [/api/nonexistent] does not exist...", env.Message)
	assert.Equal(t, map[string]interface{}{}, env.Data)
}

func TestHealthRoute(t *testing.T) {
	_, router := newTestRouter(t)

	rec, env := doRequest(t, router, http.MethodGet, "/", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Server is online!", env.Message)
}

func TestLoginRouteWiresValidation(t *testing.T) {
	_, router := newTestRouter(t)

	rec, env := doRequest(t, router, http.MethodPost, "/api/auth/login", "",
		`{"email":"not-an-email","password":"Pa$$w0rd"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Bad email format.", env.Message)
}

func TestMeRouteRequiresAuthorization(t *testing.T) {
	_, router := newTestRouter(t)

	rec, env := doRequest(t, router, http.MethodGet, "/api/auth/me", "", "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Missing authorization header", env.Message)
}

func TestMeRouteAllowsUserRole(t *testing.T) {
	provider, router := newTestRouter(t)
	provider.EXPECT().
		ResolveIdentity(gomock.Any(), "user-token").
		Return(&domain.Identity{ID: "user-1", Email: "user@example.com", Role: domain.RoleUser}, nil)

	rec, env := doRequest(t, router, http.MethodGet, "/api/auth/me", "user-token", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "User info retrieved successfully", env.Message)
	user := env.Data.(map[string]interface{})["user"].(map[string]interface{})
	assert.Equal(t, "user-1", user["id"])
}

func TestAdminOnlyRouteDeniesUserRole(t *testing.T) {
	provider, router := newTestRouter(t)
	provider.EXPECT().
		ResolveIdentity(gomock.Any(), "user-token").
		Return(&domain.Identity{ID: "user-1", Email: "user@example.com", Role: domain.RoleUser}, nil)

	rec, env := doRequest(t, router, http.MethodGet, "/api/protected/admin-only", "user-token", "")

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Access denied", env.Message)
}

func TestAdminOnlyRouteAllowsAdmin(t *testing.T) {
	provider, router := newTestRouter(t)
	provider.EXPECT().
		ResolveIdentity(gomock.Any(), "admin-token").
		Return(&domain.Identity{ID: "admin-1", Email: "admin@example.com", Role: domain.RoleAdmin}, nil)

	rec, env := doRequest(t, router, http.MethodGet, "/api/protected/admin-only", "admin-token", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Hello Admin!", env.Message)
}

// The set-role route validates the body before the role gate runs, so a
// malformed body is rejected without an identity lookup.
func TestSetRouteValidatesBeforeGate(t *testing.T) {
	_, router := newTestRouter(t)

	rec, env := doRequest(t, router, http.MethodPatch, "/api/users/set-role", "",
		`{"role":"admin"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "userId is required.", env.Message)
}

func TestSetRoleEndToEnd(t *testing.T) {
	provider, router := newTestRouter(t)
	provider.EXPECT().
		ResolveIdentity(gomock.Any(), "admin-token").
		Return(&domain.Identity{ID: "admin-1", Email: "admin@example.com", Role: domain.RoleAdmin}, nil)
	provider.EXPECT().
		UpdateRole(gomock.Any(), "9f86d081-8292-4a2f-b905-4a8e03ac5a1b", domain.RoleAdmin).
		Return(&domain.Identity{ID: "9f86d081-8292-4a2f-b905-4a8e03ac5a1b", Email: "user@example.com", Role: domain.RoleAdmin}, nil)

	rec, env := doRequest(t, router, http.MethodPatch, "/api/users/set-role", "admin-token",
		`{"userId":"9f86d081-8292-4a2f-b905-4a8e03ac5a1b","role":"admin"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "User role updated successfully", env.Message)
}

func TestFaviconReturnsNoContent(t *testing.T) {
	_, router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/favicon.ico", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestSecurityHeadersApplied(t *testing.T) {
	_, router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
}
