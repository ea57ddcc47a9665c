package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quote-sync-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quote-sync-service/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quote-sync-service/internal/platform/config"
	"github.com/jsamuelsen/quote-sync-service/internal/platform/telemetry"
)

// syncTimeoutExempt lists routes whose duration is bounded by the outbound
// client rather than the request timeout.
var syncTimeoutExempt = []string{"/api/v1/sync"}

// RouterConfig contains configuration for setting up the router.
type RouterConfig struct {
	Logger      *slog.Logger
	ServiceName string

	Server *config.ServerConfig
	Auth   *config.AuthConfig

	HealthHandler *handlers.HealthHandler
	QuoteHandler  *handlers.QuoteHandler
	SyncHandler   *handlers.SyncHandler
}

// SetupRouter configures all routes and middleware on the Gin engine.
// Global middleware, first to last:
//  1. Recovery
//  2. Request ID and correlation ID
//  3. OpenTelemetry tracing and HTTP metrics
//  4. Logging (skips /-/)
//
// The /api/v1 group adds rate limiting, the body size cap and the request
// deadline. Mutating routes require authentication when auth is enabled.
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	engine.Use(
		middleware.Recovery(cfg.Logger),
		middleware.RequestID(),
		middleware.CorrelationID(),
	)
	engine.Use(telemetry.Middleware(cfg.ServiceName)...)
	engine.Use(middleware.Logging())

	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterHealthRoutes(engine.Group("/-"))
	}

	apiV1 := engine.Group("/api/v1")

	if cfg.Server != nil {
		if rl := cfg.Server.RateLimit; rl.Enabled {
			apiV1.Use(middleware.NewRateLimiter(rl.RPS, rl.Burst).Middleware())
		}

		apiV1.Use(
			middleware.MaxBodySize(cfg.Server.MaxRequestSize),
			middleware.Timeout(cfg.Server.RequestTimeout, syncTimeoutExempt...),
		)
	}

	write := apiV1.Group("")
	if cfg.Auth != nil && cfg.Auth.Enabled {
		write.Use(middleware.RequireAuth(cfg.Auth))
	}

	if cfg.QuoteHandler != nil {
		cfg.QuoteHandler.RegisterQuoteRoutes(apiV1, write)
	}

	if cfg.SyncHandler != nil {
		cfg.SyncHandler.RegisterSyncRoutes(apiV1, write)
	}
}
