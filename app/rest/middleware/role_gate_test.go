package middleware

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"auth-api/app/domain"
	"auth-api/app/mocks"
	"auth-api/app/rest/response"
)

func gateRequest(t *testing.T, gate *RoleGate, authHeader string, roles ...domain.Role) (*httptest.ResponseRecorder, response.Envelope) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := gate.RequireRoles(roles...)(func(c echo.Context) error {
		return response.Success(c, http.StatusOK, "ok", map[string]interface{}{
			"user": IdentityFrom(c),
		})
	})
	require.NoError(t, handler(c))

	var env response.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

func TestRoleGateMissingHeader(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := mocks.NewMockIdentityProvider(ctrl)

	gate := NewRoleGate(provider, slog.Default())
	rec, env := gateRequest(t, gate, "", domain.RoleAdmin)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "Missing authorization header", env.Message)
}

func TestRoleGateMissingToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := mocks.NewMockIdentityProvider(ctrl)

	gate := NewRoleGate(provider, slog.Default())

	for _, header := range []string{"Bearer", "Bearer   "} {
		rec, env := gateRequest(t, gate, header, domain.RoleAdmin)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Missing token", env.Message)
	}
}

func TestRoleGateInvalidToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := mocks.NewMockIdentityProvider(ctrl)
	provider.EXPECT().
		ResolveIdentity(gomock.Any(), "bad-token").
		Return(nil, domain.ErrInvalidToken)

	gate := NewRoleGate(provider, slog.Default())
	rec, env := gateRequest(t, gate, "Bearer bad-token", domain.RoleAdmin)

	// Provider-rejected tokens are a 401, never a 500.
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid token or user not found", env.Message)
}

func TestRoleGateForbidden(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := mocks.NewMockIdentityProvider(ctrl)
	provider.EXPECT().
		ResolveIdentity(gomock.Any(), "user-token").
		Return(&domain.Identity{ID: "u1", Email: "u@example.com", Role: domain.RoleUser}, nil)

	gate := NewRoleGate(provider, slog.Default())
	rec, env := gateRequest(t, gate, "Bearer user-token", domain.RoleAdmin)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Access denied", env.Message)
}

func TestRoleGateAuthorized(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := mocks.NewMockIdentityProvider(ctrl)
	provider.EXPECT().
		ResolveIdentity(gomock.Any(), "admin-token").
		Return(&domain.Identity{ID: "a1", Email: "admin@example.com", Role: domain.RoleAdmin}, nil)

	gate := NewRoleGate(provider, slog.Default())
	rec, env := gateRequest(t, gate, "Bearer admin-token", domain.RoleUser, domain.RoleAdmin)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)

	data, ok := env.Data.(map[string]interface{})
	require.True(t, ok)
	user, ok := data["user"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "a1", user["id"])
}

func TestRoleGateEmptyRoleDefaultsToUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := mocks.NewMockIdentityProvider(ctrl)
	provider.EXPECT().
		ResolveIdentity(gomock.Any(), "token").
		Return(&domain.Identity{ID: "u1", Role: ""}, nil)

	gate := NewRoleGate(provider, slog.Default())
	rec, env := gateRequest(t, gate, "Bearer token", domain.RoleUser)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
}

func TestRoleGateProviderFailureIs500(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := mocks.NewMockIdentityProvider(ctrl)
	provider.EXPECT().
		ResolveIdentity(gomock.Any(), "token").
		Return(nil, errors.Join(domain.ErrProviderUnavailable, errors.New("connection refused")))

	gate := NewRoleGate(provider, slog.Default())
	rec, env := gateRequest(t, gate, "Bearer token", domain.RoleUser)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.False(t, env.Success)
	assert.Contains(t, env.Message, "Error checking user role")
	assert.Contains(t, env.Message, "connection refused")
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", bearerToken("Bearer abc"))
	assert.Equal(t, "abc", bearerToken("Token abc"))
	assert.Equal(t, "", bearerToken("Bearer"))
	assert.Equal(t, "", bearerToken(""))
}
