package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/SscSPs/dkk_exchange_service/internal/adapters/nationalbank"
	portsrepo "github.com/SscSPs/dkk_exchange_service/internal/core/ports/repositories"
	"github.com/SscSPs/dkk_exchange_service/internal/core/services"
	"github.com/SscSPs/dkk_exchange_service/internal/handlers"
	"github.com/SscSPs/dkk_exchange_service/internal/jobs"
	"github.com/SscSPs/dkk_exchange_service/internal/middleware"
	"github.com/SscSPs/dkk_exchange_service/internal/platform/config"
	"github.com/SscSPs/dkk_exchange_service/internal/platform/metrics"
	"github.com/SscSPs/dkk_exchange_service/internal/repositories/database/badgerdb"
	"github.com/SscSPs/dkk_exchange_service/internal/repositories/database/pgsql"
	"github.com/SscSPs/dkk_exchange_service/internal/utils"
	"github.com/SscSPs/dkk_exchange_service/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

const shutdownTimeout = 10 * time.Second

// @title DKK Exchange Service API
// @version 1.0
// @description Converts foreign currency amounts to Danish kroner using National Bank rates.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("Service stopped with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, err := openRepositories(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := repos.Close(); cerr != nil {
			logger.Error("Error closing storage", slog.String("error", cerr.Error()))
		}
	}()

	registry := prometheus.NewRegistry()
	appMetrics := metrics.NewExchangeMetrics(registry)

	fetcher := nationalbank.NewFetcher(nationalbank.Config{
		URL:        cfg.RateFeedURL,
		Timeout:    cfg.RateFeedTimeout,
		MaxRetries: cfg.RateFeedMaxRetries,
	}, logger, appMetrics)

	serviceContainer := services.NewServiceContainer(cfg, repos, fetcher, appMetrics)

	rateSync := jobs.NewRateSyncJob(serviceContainer.CurrencyRate, cfg.RateSyncInterval, cfg.RateSyncOnStartup, logger, appMetrics)
	serviceContainer.RateSync = rateSync
	rateSync.Start(ctx)

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, logger)
	defer posthogClient.Close()

	convertLimiter, err := middleware.NewMemoryLimiter(cfg.RateLimit)
	if err != nil {
		return fmt.Errorf("invalid rate limit %q: %w", cfg.RateLimit, err)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		gin.Recovery(),
		corsMiddleware(cfg),
		middleware.MetricsMiddleware(appMetrics),
		middleware.PosthogMiddleware(posthogClient),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		return fmt.Errorf("failed to set trusted proxies: %w", err)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, registry, convertLimiter)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server failed to run: %w", err)
		}
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	logger.Info("Server stopped")
	return nil
}

// openRepositories connects the configured storage driver. Postgres is migrated before use.
func openRepositories(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, error) {
	switch cfg.StorageDriver {
	case config.StorageDriverBadger:
		db, err := database.OpenBadger(cfg.BadgerPath)
		if err != nil {
			return portsrepo.RepositoryProvider{}, fmt.Errorf("failed to open badger store: %w", err)
		}
		logger.Info("Badger store opened", slog.String("path", cfg.BadgerPath))
		return badgerdb.NewRepositoryProvider(db), nil
	default:
		dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck, logger)
		if err != nil {
			return portsrepo.RepositoryProvider{}, fmt.Errorf("failed to initialize database pool: %w", err)
		}
		logger.Info("Database connection pool established.")

		if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
			dbPool.Close()
			return portsrepo.RepositoryProvider{}, err
		}
		return pgsql.NewRepositoryProvider(dbPool), nil
	}
}

func corsMiddleware(cfg *config.Config) gin.HandlerFunc {
	corsCfg := cors.DefaultConfig()
	if len(cfg.CORSAllowedOrigins) == 0 || slices.Contains(cfg.CORSAllowedOrigins, "*") {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.CORSAllowedOrigins
	}
	corsCfg.AddAllowHeaders("Authorization")
	return cors.New(corsCfg)
}
