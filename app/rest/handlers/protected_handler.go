package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"auth-api/app/rest/middleware"
	"auth-api/app/rest/response"
)

// ProtectedHandler serves the role-gated demo endpoints.
type ProtectedHandler struct{}

// NewProtectedHandler creates a new protected handler.
func NewProtectedHandler() *ProtectedHandler {
	return &ProtectedHandler{}
}

// AdminOnly is reachable only with the admin role.
// @Summary Admin-only route
// @Tags protected
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /api/protected/admin-only [get]
func (h *ProtectedHandler) AdminOnly(c echo.Context) error {
	return response.Success(c, http.StatusOK, "Hello Admin!", map[string]interface{}{
		"user": middleware.IdentityFrom(c),
	})
}

// UserOrAdmin is reachable with either the user or the admin role.
// @Summary User-or-admin route
// @Tags protected
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /api/protected/user-or-admin [get]
func (h *ProtectedHandler) UserOrAdmin(c echo.Context) error {
	return response.Success(c, http.StatusOK, "Hello User or Admin!", map[string]interface{}{
		"user": middleware.IdentityFrom(c),
	})
}
