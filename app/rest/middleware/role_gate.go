package middleware

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/labstack/echo/v4"

	"auth-api/app/domain"
	"auth-api/app/port"
	"auth-api/app/rest/response"
	apperrors "auth-api/app/utils/errors"
)

// identityContextKey is where the gate stores the resolved identity for
// downstream handlers.
const identityContextKey = "identity"

// RoleGate authorizes requests by resolving the bearer token against the
// identity provider and checking the resolved role. Every gated request pays
// a provider round trip; nothing is cached, so a revoked token is rejected
// immediately.
type RoleGate struct {
	provider port.IdentityProvider
	logger   *slog.Logger
}

// NewRoleGate creates a role gate backed by the given provider.
func NewRoleGate(provider port.IdentityProvider, logger *slog.Logger) *RoleGate {
	return &RoleGate{
		provider: provider,
		logger:   logger,
	}
}

// RequireRoles returns middleware admitting only callers whose resolved role
// is in allowedRoles.
func (g *RoleGate) RequireRoles(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return response.FromAppError(c,
					apperrors.New(apperrors.ErrCodeMissingAuthHeader, "Missing authorization header"))
			}

			token := bearerToken(authHeader)
			if token == "" {
				return response.FromAppError(c,
					apperrors.New(apperrors.ErrCodeMissingToken, "Missing token"))
			}

			identity, err := g.provider.ResolveIdentity(c.Request().Context(), token)
			if err != nil {
				if isTokenRejection(err) {
					return response.FromAppError(c,
						apperrors.New(apperrors.ErrCodeInvalidToken, "Invalid token or user not found"))
				}
				g.logger.Error("identity resolution failed", "error", err, "path", c.Path())
				return response.FromAppError(c, apperrors.Wrapf(apperrors.ErrCodeInternal, err,
					"Error checking user role: %v", err))
			}

			role := identity.Role
			if role == "" {
				role = domain.DefaultRole
			}
			// Unreachable once the default above applies; kept so an
			// explicitly blanked role still maps to 403.
			if role == "" {
				return response.FromAppError(c,
					apperrors.New(apperrors.ErrCodeForbidden, "No role assigned to the user"))
			}

			if !domain.RoleIn(role, allowedRoles) {
				g.logger.Warn("access denied",
					"user_id", identity.ID,
					"role", role,
					"path", c.Path())
				return response.FromAppError(c,
					apperrors.New(apperrors.ErrCodeForbidden, "Access denied"))
			}

			c.Set(identityContextKey, identity)
			return next(c)
		}
	}
}

// IdentityFrom returns the identity attached by RequireRoles, or nil when
// the route is not gated.
func IdentityFrom(c echo.Context) *domain.Identity {
	identity, _ := c.Get(identityContextKey).(*domain.Identity)
	return identity
}

// bearerToken extracts the second whitespace-delimited segment of the
// Authorization header.
func bearerToken(header string) string {
	parts := strings.Fields(header)
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}

// isTokenRejection reports whether the provider rejected the token itself,
// as opposed to failing unexpectedly.
func isTokenRejection(err error) bool {
	return errors.Is(err, domain.ErrInvalidToken) || errors.Is(err, domain.ErrProviderRejected)
}
