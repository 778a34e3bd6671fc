package rest

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"auth-api/app/config"
	"auth-api/app/domain"
	"auth-api/app/port"
	"auth-api/app/rest/handlers"
	custommw "auth-api/app/rest/middleware"
	"auth-api/app/rest/response"
	apperrors "auth-api/app/utils/errors"
	"auth-api/app/utils/validator"
)

// RouterConfig holds everything the router needs.
type RouterConfig struct {
	Config   *config.Config
	Logger   *slog.Logger
	Provider port.IdentityProvider
}

// NewRouter creates and configures the Echo router.
func NewRouter(rc RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = envelopeErrorHandler(rc.Logger)

	// Handlers
	authHandler := handlers.NewAuthHandler(rc.Provider, rc.Logger)
	userHandler := handlers.NewUserHandler(rc.Provider, rc.Logger)
	protectedHandler := handlers.NewProtectedHandler()
	healthHandler := handlers.NewHealthHandler()

	// Middleware
	gate := custommw.NewRoleGate(rc.Provider, rc.Logger)
	bodyValidator := custommw.NewBodyValidator(validator.New())
	rateLimiter := custommw.NewRateLimiter(rc.Config.RateLimitRequests, rc.Config.RateLimitWindow)

	e.Use(echomw.Recover())
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(custommw.CORS(rc.Config))
	e.Use(custommw.SecurityHeaders())
	e.Use(rateLimiter.RateLimit())
	e.Use(echomw.BodyLimit(rc.Config.BodyLimit))

	// Health
	e.GET("/", healthHandler.Root)
	e.GET("/favicon.ico", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})

	// Auth
	auth := e.Group("/api/auth")
	credentialsBody := bodyValidator.Validate(func() interface{} {
		return new(handlers.CredentialsRequest)
	})
	auth.POST("/login", authHandler.Login, credentialsBody)
	auth.POST("/register", authHandler.Register, credentialsBody)
	auth.POST("/refresh-token", authHandler.Refresh, bodyValidator.Validate(func() interface{} {
		return new(handlers.RefreshRequest)
	}))
	auth.GET("/me", authHandler.Me, gate.RequireRoles(domain.RoleUser, domain.RoleAdmin))

	// Protected demo routes
	protected := e.Group("/api/protected")
	protected.GET("/admin-only", protectedHandler.AdminOnly,
		gate.RequireRoles(domain.RoleAdmin))
	protected.GET("/user-or-admin", protectedHandler.UserOrAdmin,
		gate.RequireRoles(domain.RoleUser, domain.RoleAdmin))

	// User management
	users := e.Group("/api/users")
	users.PATCH("/set-role", userHandler.SetRole,
		bodyValidator.Validate(func() interface{} { return new(handlers.SetRoleRequest) }),
		gate.RequireRoles(domain.RoleAdmin))

	return e
}

// envelopeErrorHandler shapes every error that escapes a handler into the
// standard envelope, including the framework's own 404/405 rejections.
func envelopeErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := err.Error()

		if appErr, ok := apperrors.AsAppError(err); ok {
			status = appErr.StatusCode
			message = appErr.Message
		} else if httpErr, ok := err.(*echo.HTTPError); ok {
			status = httpErr.Code
			if msg, ok := httpErr.Message.(string); ok {
				message = msg
			} else {
				message = fmt.Sprintf("%v", httpErr.Message)
			}
			if status == http.StatusNotFound {
				message = fmt.Sprintf("The route you are looking for [%s] does not exist...",
					c.Request().URL.Path)
			}
		}

		if status >= http.StatusInternalServerError {
			logger.Error("request failed", "status", status, "error", err,
				"method", c.Request().Method, "path", c.Request().URL.Path)
		}

		if writeErr := response.Error(c, status, message); writeErr != nil {
			logger.Error("failed to write error response", "error", writeErr)
		}
	}
}
