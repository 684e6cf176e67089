// Package main is the entry point for the service.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/quotewell/quotewell/internal/adapters/clients"
	"github.com/quotewell/quotewell/internal/adapters/http"
	"github.com/quotewell/quotewell/internal/adapters/http/handlers"
	"github.com/quotewell/quotewell/internal/adapters/postgres"
	"github.com/quotewell/quotewell/internal/adapters/push"
	"github.com/quotewell/quotewell/internal/adapters/reminder"
	"github.com/quotewell/quotewell/internal/app"
	"github.com/quotewell/quotewell/internal/platform/config"
	"github.com/quotewell/quotewell/internal/platform/logging"
	"github.com/quotewell/quotewell/internal/platform/telemetry"
	"github.com/quotewell/quotewell/internal/ports"
)

// Build-time variables, injected via ldflags.
// Example: go build -ldflags "-X main.Version=1.0.0 -X main.Commit=$(git rev-parse HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	// Version is the semantic version of the service.
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "unknown"

	// BuildTime is the timestamp when the binary was built.
	BuildTime = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// 1. Determine profile from environment
	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	// 2. Load and validate configuration (fail fast)
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// 3. Initialize logging
	logger := logging.New(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
	})
	slog.SetDefault(logger)

	logger.Info("starting service",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
	)

	// 4. Initialize telemetry (noop if disabled)
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
		if shutdownErr := telProvider.Shutdown(ctx); shutdownErr != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", shutdownErr))
		}
	}()

	// 5. Open the database and run migrations
	db, err := postgres.Open(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}

	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			logger.Error("database close error", slog.Any("error", closeErr))
		}
	}()

	if cfg.Database.MigrateOnStart {
		if err := postgres.Migrate(db, logger); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
	}

	// 6. Create stores (persistence adapters)
	quoteStore := postgres.NewQuoteStore(db, logger)
	dailyStore := postgres.NewDailyQuoteStore(db, logger)
	favoriteStore := postgres.NewFavoriteStore(db, logger)
	collectionStore := postgres.NewCollectionStore(db, logger)
	profileStore := postgres.NewProfileStore(db, logger)
	reminderStore := postgres.NewReminderPrefsStore(db, logger)
	searchStore := postgres.NewRecentSearchStore(db, logger)

	// 7. Create the push gateway client
	pushClient, err := clients.New(&clients.Config{
		BaseURL:     cfg.Services.Push.BaseURL,
		ServiceName: cfg.Services.Push.Name,
		Timeout:     cfg.Client.Timeout,
		Retry:       cfg.Client.Retry,
		Circuit:     cfg.Client.CircuitBreaker,
		Transport:   cfg.Client.Transport,
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("creating push client: %w", err)
	}

	pushGateway := push.NewGateway(push.GatewayConfig{
		Client: pushClient,
		Logger: logger,
	})

	// 8. Create the reminder scheduler
	scheduler := reminder.NewScheduler(reminder.Config{
		Gateway: pushGateway,
		Title:   cfg.Reminder.Title,
		Logger:  logger,
	})
	defer scheduler.Close()

	// 9. Create health registry
	healthRegistry := ports.NewHealthRegistry()

	if err := healthRegistry.Register(postgres.NewHealthChecker(db)); err != nil {
		return fmt.Errorf("registering database health check: %w", err)
	}

	if err := healthRegistry.Register(pushGateway); err != nil {
		return fmt.Errorf("registering push gateway health check: %w", err)
	}

	// 10. Create application services
	quoteService := app.NewQuoteService(app.QuoteServiceConfig{
		Quotes: quoteStore,
		Logger: logger,
	})

	dailyService := app.NewDailyQuoteService(app.DailyQuoteServiceConfig{
		Quotes:    quoteStore,
		Daily:     dailyStore,
		PoolLimit: cfg.Daily.PoolLimit,
		Logger:    logger,
	})

	searchService := app.NewSearchService(app.SearchServiceConfig{
		Quotes:   quoteStore,
		Searches: searchStore,
		Logger:   logger,
	})

	favoriteService := app.NewFavoriteService(app.FavoriteServiceConfig{
		Favorites: favoriteStore,
		Quotes:    quoteStore,
		Logger:    logger,
	})

	collectionService := app.NewCollectionService(app.CollectionServiceConfig{
		Collections: collectionStore,
		Quotes:      quoteStore,
		Logger:      logger,
	})

	profileService := app.NewProfileService(app.ProfileServiceConfig{
		Profiles: profileStore,
		Logger:   logger,
	})

	reminderService := app.NewReminderSettingsService(app.ReminderSettingsServiceConfig{
		Prefs:     reminderStore,
		Scheduler: scheduler,
		Daily:     dailyService,
		Executor:  app.NewExecutor(logger),
		Logger:    logger,
	})

	// Re-arm stored reminder schedules lost with the previous process.
	if err := reminderService.RestoreSchedules(ctx); err != nil {
		logger.Error("restoring reminder schedules", slog.Any("error", err))
	}

	// 11. Create handlers
	buildInfo := handlers.NewBuildInfo(Version, Commit, BuildTime)
	healthHandler := handlers.NewHealthHandler(healthRegistry, buildInfo)

	// 12. Create HTTP server
	server := http.New(&cfg.Server, logger)

	// 13. Setup router with all middleware and routes
	routerCfg := http.RouterConfig{
		Logger:            logger,
		AuthConfig:        &cfg.Auth,
		AppConfig:         &cfg.App,
		HealthHandler:     healthHandler,
		QuoteHandler:      handlers.NewQuoteHandler(quoteService, dailyService),
		SearchHandler:     handlers.NewSearchHandler(searchService),
		FavoriteHandler:   handlers.NewFavoriteHandler(favoriteService),
		CollectionHandler: handlers.NewCollectionHandler(collectionService),
		ProfileHandler:    handlers.NewProfileHandler(profileService),
		ReminderHandler:   handlers.NewReminderHandler(reminderService),
		Timeout:           http.DefaultRequestTimeout,
	}
	http.SetupRouter(server.Engine(), routerCfg)

	// 14. Start server (non-blocking)
	serverErr := server.Start()

	// 15. Wait for shutdown signal
	return waitForShutdown(ctx, logger, server, serverErr, cfg.Server.ShutdownTimeout)
}

// waitForShutdown blocks until a shutdown signal is received or server error occurs.
// It then performs graceful shutdown of the HTTP server.
func waitForShutdown(
	ctx context.Context,
	logger *slog.Logger,
	server *http.Server,
	serverErr <-chan error,
	shutdownTimeout time.Duration,
) error {
	// Listen for OS signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		// Server error during startup or runtime
		return fmt.Errorf("server error: %w", err)

	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	}

	// Create shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	// Graceful shutdown sequence
	logger.Info("initiating graceful shutdown",
		slog.Duration("timeout", shutdownTimeout),
	)

	// Stop accepting new requests, drain in-flight
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("shutdown complete")

	return nil
}
