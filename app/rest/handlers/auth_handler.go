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

// AuthHandler handles registration, login, token refresh and the current
// user endpoint. Each operation is a single call to the identity provider;
// at-most-once, no retries.
type AuthHandler struct {
	provider port.IdentityProvider
	logger   *slog.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(provider port.IdentityProvider, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		provider: provider,
		logger:   logger,
	}
}

// Register creates a new account with the identity provider.
// @Summary User registration
// @Tags auth
// @Accept json
// @Produce json
// @Param body body CredentialsRequest true "Registration credentials"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /api/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	req := middleware.ValidatedBody(c).(*CredentialsRequest)

	result, err := h.provider.SignUp(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrProviderRejected) {
			return response.FromAppError(c,
				apperrors.New(apperrors.ErrCodeProviderRejected, domain.RejectionMessage(err)))
		}
		h.logger.Error("registration failed", "email", req.Email, "error", err)
		return response.FromAppError(c, apperrors.Wrapf(apperrors.ErrCodeInternal, err,
			"Failed to register user: %v", err))
	}

	h.logger.Info("user registered", "user_id", result.Identity.ID)
	return response.Success(c, http.StatusOK, "User registered successfully", map[string]interface{}{
		"user": map[string]interface{}{
			"id":    result.Identity.ID,
			"email": result.Identity.Email,
		},
		"session": map[string]interface{}{
			"access_token": result.Session.AccessToken,
		},
	})
}

// Login authenticates a user with email and password.
// @Summary User login
// @Tags auth
// @Accept json
// @Produce json
// @Param body body CredentialsRequest true "Login credentials"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	req := middleware.ValidatedBody(c).(*CredentialsRequest)

	result, err := h.provider.SignIn(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrProviderRejected) {
			// Failed credentials are 401 here, unlike the 400 default
			// for provider rejections elsewhere.
			return response.FromAppError(c,
				apperrors.New(apperrors.ErrCodeProviderRejected, domain.RejectionMessage(err)).
					WithStatus(http.StatusUnauthorized))
		}
		h.logger.Error("login failed", "email", req.Email, "error", err)
		return response.FromAppError(c, apperrors.Wrapf(apperrors.ErrCodeInternal, err,
			"Failed to login user: %v", err))
	}

	h.logger.Info("user logged in", "user_id", result.Identity.ID)
	return response.Success(c, http.StatusOK, "Login successful", sessionPayload(result))
}

// Refresh exchanges a refresh token for a renewed session.
// @Summary Refresh access token
// @Tags auth
// @Accept json
// @Produce json
// @Param body body RefreshRequest true "Refresh token"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /api/auth/refresh-token [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	req := middleware.ValidatedBody(c).(*RefreshRequest)

	result, err := h.provider.RefreshSession(c.Request().Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, domain.ErrProviderRejected) || errors.Is(err, domain.ErrInvalidToken) {
			return response.FromAppError(c,
				apperrors.New(apperrors.ErrCodeProviderRejected, domain.RejectionMessage(err)))
		}
		h.logger.Error("token refresh failed", "error", err)
		return response.FromAppError(c, apperrors.Wrapf(apperrors.ErrCodeInternal, err,
			"Failed to refresh token: %v", err))
	}

	h.logger.Info("session refreshed", "user_id", result.Identity.ID)
	return response.Success(c, http.StatusOK, "Token refreshed successfully", sessionPayload(result))
}

// Me returns the identity resolved by the role gate.
// @Summary Get current user
// @Tags auth
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /api/auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	identity := middleware.IdentityFrom(c)
	return response.Success(c, http.StatusOK, "User info retrieved successfully", map[string]interface{}{
		"user": identity,
	})
}

// sessionPayload shapes the user and full session projection returned by
// login and refresh.
func sessionPayload(result *domain.AuthResult) map[string]interface{} {
	session := map[string]interface{}{
		"access_token": result.Session.AccessToken,
	}
	if result.Session.RefreshToken != "" {
		session["refresh_token"] = result.Session.RefreshToken
	}
	if result.Session.ExpiresAt != nil {
		session["expires_at"] = result.Session.ExpiresAt
	}
	return map[string]interface{}{
		"user": map[string]interface{}{
			"id":    result.Identity.ID,
			"email": result.Identity.Email,
		},
		"session": session,
	}
}
