package di

import (
	"fmt"
	"log/slog"

	"github.com/labstack/echo/v4"

	"auth-client/app/config"
	"auth-client/app/driver/accountapi"
	"auth-client/app/driver/kratos"
	"auth-client/app/driver/popup"
	"auth-client/app/port"
	"auth-client/app/rest"
	"auth-client/app/token"
	"auth-client/app/usecase"
)

// Container holds all dependencies for the application
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	// Drivers
	KratosClient *kratos.Client
	PopupBroker  *popup.Broker

	// Ports
	Provider port.IdentityProvider
	Bridge   port.AccountBridge

	// Usecases
	Session port.SessionManager

	Catalog *config.ProviderCatalog
}

// NewContainer creates and initializes a new dependency injection container
func NewContainer(cfg *config.Config, logger *slog.Logger) (*Container, error) {
	container := &Container{
		Config: cfg,
		Logger: logger,
	}

	var err error

	container.KratosClient, err = kratos.NewClient(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Kratos client: %w", err)
	}

	container.Catalog, err = config.LoadProviderCatalog(cfg.ProvidersFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load provider catalog: %w", err)
	}

	container.PopupBroker = popup.NewBroker()

	minter := token.NewMinter(token.Config{
		Secret:   cfg.TokenSecret,
		Issuer:   cfg.TokenIssuer,
		Audience: cfg.TokenAudience,
		TTL:      cfg.TokenTTL,
	})

	container.Provider = kratos.NewAdapter(container.KratosClient, container.PopupBroker, minter, logger)

	container.Bridge, err = accountapi.NewClient(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize account API client: %w", err)
	}

	container.Session = usecase.NewSessionUseCase(container.Provider, container.Bridge, logger)

	logger.Info("Container initialized with full dependency stack")

	return container, nil
}

// CreateRouter creates and returns a fully configured Echo router
func (c *Container) CreateRouter() *echo.Echo {
	routerConfig := rest.RouterConfig{
		Logger:         c.Logger,
		Session:        c.Session,
		Broker:         c.PopupBroker,
		Catalog:        c.Catalog,
		Provider:       c.KratosClient,
		RateLimitRPS:   c.Config.RateLimitRPS,
		RateLimitBurst: c.Config.RateLimitBurst,
		EnableDebug:    c.Config.LogLevel == "debug",
	}

	router := rest.NewRouter(routerConfig)

	c.Logger.Info("Full API router created")
	return router
}

// Close closes all resources
func (c *Container) Close() error {
	// Kratos and account API clients hold no resources needing cleanup
	c.Logger.Info("Container closed successfully")
	return nil
}
