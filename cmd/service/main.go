// Package main is the entry point for the quote sync service.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/jsamuelsen/quote-sync-service/internal/adapters/clients"
	"github.com/jsamuelsen/quote-sync-service/internal/adapters/clients/acl"
	"github.com/jsamuelsen/quote-sync-service/internal/adapters/featureflags"
	"github.com/jsamuelsen/quote-sync-service/internal/adapters/http"
	"github.com/jsamuelsen/quote-sync-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quote-sync-service/internal/adapters/notify"
	"github.com/jsamuelsen/quote-sync-service/internal/adapters/storage/memory"
	"github.com/jsamuelsen/quote-sync-service/internal/adapters/storage/sqlite"
	"github.com/jsamuelsen/quote-sync-service/internal/app"
	"github.com/jsamuelsen/quote-sync-service/internal/platform/config"
	"github.com/jsamuelsen/quote-sync-service/internal/platform/logging"
	"github.com/jsamuelsen/quote-sync-service/internal/platform/telemetry"
	"github.com/jsamuelsen/quote-sync-service/internal/ports"
)

// Build-time variables, injected via ldflags.
// Example: go build -ldflags "-X main.Version=1.0.0 -X main.Commit=$(git rev-parse HEAD)"
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// noticeHistory is how many status lines and conflict notices are kept for
// GET /api/v1/sync/notices.
const noticeHistory = 50

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger := logging.New(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	slog.SetDefault(logger)

	logger.Info("starting service",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
	)

	telProvider, err := telemetry.New(ctx, &telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		Endpoint:     cfg.Telemetry.Endpoint,
		ServiceName:  cfg.Telemetry.ServiceName,
		Version:      cfg.App.Version,
		Environment:  cfg.App.Environment,
		SamplingRate: cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	defer func() {
		if shutdownErr := telProvider.Shutdown(context.WithoutCancel(ctx)); shutdownErr != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", shutdownErr))
		}
	}()

	store, err := sqlite.Open(ctx, cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("opening quote store: %w", err)
	}

	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			logger.Error("closing quote store", slog.Any("error", closeErr))
		}
	}()

	session := memory.NewSessionStore()

	httpClient, err := clients.New(&clients.Config{
		BaseURL:     cfg.Sync.BaseURL,
		ServiceName: cfg.Sync.Name,
		Timeout:     cfg.Client.Timeout,
		Retry:       cfg.Client.Retry,
		Circuit:     cfg.Client.CircuitBreaker,
		Transport:   cfg.Client.Transport,
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("creating HTTP client: %w", err)
	}

	remote := acl.NewRemoteQuoteClient(acl.RemoteQuoteClientConfig{
		Client:         httpClient,
		Name:           cfg.Sync.Name,
		Path:           cfg.Sync.Path,
		FetchLimit:     cfg.Sync.FetchLimit,
		ServerCategory: cfg.Sync.ServerCategory,
		Logger:         logger,
	})

	flags, err := featureflags.NewStatic(cfg.Features, logger)
	if err != nil {
		return fmt.Errorf("loading feature flags: %w", err)
	}

	healthRegistry := ports.NewHealthRegistry()

	for _, checker := range []ports.HealthChecker{store, session} {
		if err := healthRegistry.Register(checker); err != nil {
			return fmt.Errorf("registering %s health check: %w", checker.Name(), err)
		}
	}

	// An unreachable remote degrades readiness; local reads and writes keep working.
	if err := healthRegistry.RegisterOptional(remote); err != nil {
		return fmt.Errorf("registering %s health check: %w", remote.Name(), err)
	}

	quoteService := app.NewQuoteService(app.QuoteServiceConfig{
		Repository: store,
		Session:    session,
		Logger:     logger,
	})
	quoteService.Load(ctx)

	notifier := notify.NewLogNotifier(logger, noticeHistory)

	syncService := app.NewSyncService(app.SyncServiceConfig{
		Quotes:   quoteService,
		Remote:   remote,
		Notifier: notifier,
		Flags:    flags,
		Metrics:  telemetry.NewSyncMetrics(prometheus.DefaultRegisterer),
		Logger:   logger,
		Interval: cfg.Sync.Interval,
	})

	server := http.New(&cfg.Server, logger)

	http.SetupRouter(server.Engine(), http.RouterConfig{
		Logger:      logger,
		ServiceName: cfg.App.Name,
		Server:      &cfg.Server,
		Auth:        &cfg.Auth,
		HealthHandler: handlers.NewHealthHandler(
			healthRegistry,
			handlers.NewBuildInfo(Version, Commit, BuildTime),
			prometheus.DefaultGatherer,
		),
		QuoteHandler: handlers.NewQuoteHandler(quoteService),
		SyncHandler:  handlers.NewSyncHandler(syncService, notifier),
	})

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return server.Run(gctx)
	})

	if cfg.Sync.Enabled {
		g.Go(func() error {
			return syncService.Run(gctx)
		})
	} else {
		logger.Info("periodic sync disabled")
	}

	err = g.Wait()
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	logger.Info("shutdown complete")

	return nil
}
