package di

import (
	"fmt"
	"log/slog"

	"github.com/labstack/echo/v4"

	"auth-api/app/config"
	"auth-api/app/driver/kratos"
	"auth-api/app/port"
	"auth-api/app/rest"
	"auth-api/app/utils/logger"
)

// Container holds the application's dependencies. The provider client is
// constructed here and injected downward; nothing holds it as ambient
// global state.
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	KratosClient *kratos.Client
	Provider     port.IdentityProvider
}

// NewContainer creates and initializes the dependency container.
func NewContainer(cfg *config.Config, log *slog.Logger) (*Container, error) {
	kratosClient, err := kratos.NewClient(cfg, logger.WithComponent(log, "kratos"))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Kratos client: %w", err)
	}

	return &Container{
		Config:       cfg,
		Logger:       log,
		KratosClient: kratosClient,
		Provider:     kratos.NewProvider(kratosClient, logger.WithComponent(log, "kratos")),
	}, nil
}

// CreateRouter builds the fully wired Echo router.
func (c *Container) CreateRouter() *echo.Echo {
	return rest.NewRouter(rest.RouterConfig{
		Config:   c.Config,
		Logger:   c.Logger,
		Provider: c.Provider,
	})
}
