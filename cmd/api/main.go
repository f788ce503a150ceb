// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/frohlich71/creator-builds-api/internal/admin"
	"github.com/frohlich71/creator-builds-api/internal/auth"
	"github.com/frohlich71/creator-builds-api/internal/config"
	"github.com/frohlich71/creator-builds-api/internal/core"
	"github.com/frohlich71/creator-builds-api/internal/email"
	"github.com/frohlich71/creator-builds-api/internal/health"
	"github.com/frohlich71/creator-builds-api/internal/middleware"
	"github.com/frohlich71/creator-builds-api/internal/product"
	"github.com/frohlich71/creator-builds-api/internal/seed"
	"github.com/frohlich71/creator-builds-api/internal/server"
	"github.com/frohlich71/creator-builds-api/internal/setup"
	"github.com/frohlich71/creator-builds-api/internal/user"
)

const drainDelay = 5 * time.Second

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	// .env is optional; real deployments inject environment directly.
	_ = godotenv.Load() //nolint:errcheck

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	logger.Info("redis connected", "pool_size", cfg.Redis.PoolSize)

	tokenManager, err := auth.NewTokenManager(cfg.JWT)
	if err != nil {
		return err
	}
	logger.Info("token manager initialized",
		"algorithm", "HS256",
		"access_ttl", cfg.JWT.AccessTokenExpire,
		"refresh_ttl", cfg.JWT.RefreshTokenExpire,
	)

	mailer := email.New(cfg.Email)

	productRepo := product.NewRepository(db.DB)
	productSvc := product.NewService(productRepo)
	productHandler := product.NewHandler(productSvc)

	userRepo := user.NewRepository(db.DB)
	userSvc := user.NewService(userRepo, mailer)
	userHandler := user.NewHandler(userSvc)

	setupRepo := setup.NewRepository(db.DB)
	equipmentRepo := setup.NewEquipmentRepository(db.DB)
	setupSvc := setup.NewService(
		db.DB,
		setupRepo,
		equipmentRepo,
		userSvc,
		productSvc,
	)
	setupHandler := setup.NewHandler(setupSvc)
	userSvc.SetSetupSource(setupSvc)

	authSvc := auth.NewService(userSvc, tokenManager, cfg.JWT)
	authHandler := auth.NewHandler(authSvc)

	healthHandler := health.NewHandler(db, redis, productSvc)

	adminHandler := admin.NewHandler(admin.HandlerConfig{
		DBStats:    db.Stats,
		RedisStats: redis.PoolStats,
		DBPing:     db.Ping,
		RedisPing:  redis.Ping,
		Catalog:    productSvc,
	})

	importer := seed.NewImporter(cfg.Seed, productSvc, logger)
	if seedErr := importer.Run(ctx); seedErr != nil {
		// A broken seed file should not stop the API from serving.
		logger.Error("catalog seed failed", "error", seedErr)
	}

	srv := server.New(server.Config{
		ServerConfig: cfg.Server,
		Logger:       logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	router.Use(
		middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
			Limit: middleware.PerMinute(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
			),
			FailOpen: true,
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)

	requireAuth := middleware.Authenticator(tokenManager)

	router.Route("/v1", func(r chi.Router) {
		authHandler.RegisterRoutes(r)
		userHandler.RegisterRoutes(r, requireAuth)
		productHandler.RegisterRoutes(r, requireAuth)
		setupHandler.RegisterRoutes(r, requireAuth)
		adminHandler.RegisterRoutes(r, requireAuth)
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	healthHandler.SetShutdown(true)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
