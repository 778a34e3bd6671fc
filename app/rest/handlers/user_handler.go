package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"auth-api/app/domain"
	"auth-api/app/port"
	"auth-api/app/rest/middleware"
	"auth-api/app/rest/response"
	apperrors "auth-api/app/utils/errors"
)

// UserHandler handles admin-side user management.
type UserHandler struct {
	provider port.IdentityProvider
	logger   *slog.Logger
}

// NewUserHandler creates a new user handler.
func NewUserHandler(provider port.IdentityProvider, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		provider: provider,
		logger:   logger,
	}
}

// SetRole updates the target user's role through the provider's admin
// interface. The role must be a member of the closed role set; the provider
// is not contacted otherwise.
// @Summary Set a user's role
// @Tags users
// @Accept json
// @Produce json
// @Param body body SetRoleRequest true "Target user and role"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /api/users/set-role [patch]
func (h *UserHandler) SetRole(c echo.Context) error {
	req := middleware.ValidatedBody(c).(*SetRoleRequest)

	role, ok := domain.ParseRole(req.Role)
	if !ok {
		return response.FromAppError(c,
			apperrors.New(apperrors.ErrCodeValidation, "Invalid role"))
	}

	updated, err := h.provider.UpdateRole(c.Request().Context(), req.UserID, role)
	if err != nil {
		h.logger.Error("role update failed", "user_id", req.UserID, "role", role, "error", err)
		if errors.Is(err, domain.ErrProviderRejected) {
			// Admin-side rejections surface the provider's wording at 500.
			return response.FromAppError(c,
				apperrors.Wrap(apperrors.ErrCodeInternal, domain.RejectionMessage(err), err))
		}
		return response.FromAppError(c, apperrors.Wrapf(apperrors.ErrCodeInternal, err,
			"Failed to update user role: %v", err))
	}

	h.logger.Info("role assigned", "user_id", updated.ID, "role", updated.Role)
	return response.Success(c, http.StatusOK, "User role updated successfully", map[string]interface{}{
		"user": updated,
	})
}
