package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/livro_caixa/internal/core/ports/repositories"
	"github.com/SscSPs/livro_caixa/internal/core/services"
	"github.com/SscSPs/livro_caixa/internal/handlers"
	"github.com/SscSPs/livro_caixa/internal/metrics"
	"github.com/SscSPs/livro_caixa/internal/middleware"
	"github.com/SscSPs/livro_caixa/internal/platform/config"
	"github.com/SscSPs/livro_caixa/internal/repositories/cache"
	"github.com/SscSPs/livro_caixa/internal/repositories/database/pgsql"
	"github.com/SscSPs/livro_caixa/internal/scheduler"
	"github.com/SscSPs/livro_caixa/internal/utils"
	"github.com/SscSPs/livro_caixa/internal/utils/datetime"
	"github.com/SscSPs/livro_caixa/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 30 * time.Second

// @title Livro Caixa API
// @version 1.0
// @description Cash book backend: drawer openings, sales, withdrawals, closures and reports.

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

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	loc, err := datetime.LoadLocation(cfg.BusinessTimezone)
	if err != nil {
		logger.Error("Invalid business timezone", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	// --- Run Database Migrations ---
	logger.Info("Running database migrations...")
	migrationDB, err := database.OpenSQL(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to open database connection for migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := database.RunMigrations(ctx, migrationDB, database.MigrationsPath, cfg.EnableDBCheck, logger); err != nil {
		logger.Error("Database migration failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	drawerCache := newDrawerCache(ctx, cfg, logger)

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, logger)
	defer posthogClient.Close()

	appMetrics := metrics.New()

	serviceContainer := services.NewServiceContainer(cfg, pgsql.NewRepositoryProvider(dbPool), drawerCache,
		services.WithLocation(loc),
		services.WithEventTracker(metrics.Trackers{posthogClient, appMetrics}),
	)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendBaseURL},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Disposition", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := handlers.RegisterRoutes(r, cfg, serviceContainer, handlers.Options{
		Metrics: appMetrics,
		Posthog: posthogClient,
	}); err != nil {
		logger.Error("Failed to register routes", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var jobs *scheduler.Scheduler
	if cfg.SchedulerEnabled {
		jobs, err = scheduler.New(scheduler.Config{
			StaleDrawerCron:  cfg.StaleDrawerCron,
			StaleDrawerAfter: cfg.StaleDrawerAfter,
			PurgeCron:        cfg.PurgeCron,
			Retention:        cfg.SoftDeleteRetention,
			Location:         loc,
		}, serviceContainer.Housekeeping, appMetrics, logger)
		if err != nil {
			logger.Error("Failed to create scheduler", slog.String("error", err.Error()))
			os.Exit(1)
		}
		jobs.Start()
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Server shutting down...")
	if jobs != nil {
		jobs.Stop()
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", slog.String("error", err.Error()))
	}
	logger.Info("Server stopped")
}

// newDrawerCache picks the configured cache backend, falling back to memory when Redis is unreachable.
func newDrawerCache(ctx context.Context, cfg *config.Config, logger *slog.Logger) repositories.DrawerCache {
	if cfg.CacheBackend == config.CacheBackendRedis {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		client, err := cache.NewRedisClient(pingCtx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err == nil {
			logger.Info("Using Redis drawer cache", slog.String("addr", cfg.RedisAddr))
			return cache.NewRedisDrawerCache(client, cfg.CacheTTL)
		}
		logger.Warn("Redis unavailable, using in-memory drawer cache", slog.String("error", err.Error()))
	}
	return cache.NewMemoryDrawerCache(cfg.CacheTTL)
}
