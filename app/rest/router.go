package rest

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"auth-client/app/config"
	"auth-client/app/driver/popup"
	"auth-client/app/port"
	"auth-client/app/rest/handlers"
	custommw "auth-client/app/rest/middleware"
)

// RouterConfig holds router configuration
type RouterConfig struct {
	Logger         *slog.Logger
	Session        port.SessionManager
	Broker         *popup.Broker
	Catalog        *config.ProviderCatalog
	Provider       handlers.DependencyChecker
	RateLimitRPS   float64
	RateLimitBurst int
	EnableDebug    bool
}

// NewRouter creates and configures the Echo router
func NewRouter(cfg RouterConfig) *echo.Echo {
	e := echo.New()

	e.HideBanner = true
	e.Debug = cfg.EnableDebug

	sessionHandler := handlers.NewSessionHandler(cfg.Session, cfg.Broker, cfg.Catalog, cfg.Logger)
	healthHandler := handlers.NewHealthHandler(cfg.Provider, cfg.Logger)

	guard := custommw.NewGuardMiddleware(cfg.Session, cfg.Logger)
	rateLimiter := custommw.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	// Global middleware
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{echo.GET, echo.POST},
		AllowCredentials: false,
	}))
	e.Use(custommw.SecurityHeaders())
	e.Use(rateLimiter.RateLimit())
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "method=${method}, uri=${uri}, status=${status}, latency=${latency_human}, error=${error}\n",
	}))

	// API versioning
	v1 := e.Group("/v1")

	// Health endpoints (no auth required)
	v1.GET("/health", healthHandler.HealthCheck)
	v1.GET("/ready", healthHandler.ReadinessCheck)
	v1.GET("/live", healthHandler.LivenessCheck)

	// Provider catalog for the sign-in UI
	v1.GET("/providers", sessionHandler.ListProviders)

	// Session endpoints
	session := v1.Group("/session")
	session.GET("", sessionHandler.GetSession)
	session.DELETE("", sessionHandler.Logout)
	session.POST("/login", sessionHandler.Login)
	session.POST("/signup", sessionHandler.Signup)
	session.POST("/password-reset", sessionHandler.PasswordReset)

	// Federated sign-in: the POST long-polls while the popup endpoints
	// resolve the flow from another connection.
	session.POST("/federated", sessionHandler.FederatedSignIn)
	session.GET("/federated/pending", sessionHandler.PendingFederatedFlows)
	session.POST("/federated/:flowId/callback", sessionHandler.FederatedCallback)
	session.POST("/federated/:flowId/cancel", sessionHandler.FederatedCancel)

	// Operations that only make sense with an identity present
	session.POST("/verification/resend", sessionHandler.ResendVerification, guard.RequireIdentity())
	v1.GET("/me", sessionHandler.Me, guard.RequireIdentity())

	return e
}
