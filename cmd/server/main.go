// Package main is the entry point for the API server.
// It loads configuration, connects PostgreSQL and Redis, builds the fiber
// app with its middleware chain and serves until interrupted.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"marketplace/internal/config"
	"marketplace/internal/handlers"
	"marketplace/internal/logger"
	"marketplace/internal/metrics"
	"marketplace/internal/repositories"
	"marketplace/internal/repositories/cache"
	"marketplace/internal/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Server.Env, cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	db, err := repositories.InitDB(cfg.DB)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := repositories.Close(db); err != nil {
			log.Warn("failed to close database connection", zap.Error(err))
		}
	}()
	if err := repositories.Migrate(db); err != nil {
		log.Fatal("failed to migrate database", zap.Error(err))
	}
	log.Info("connected to database", zap.String("host", cfg.DB.Host), zap.String("name", cfg.DB.Name))

	redisClient := cache.NewRedisClient(cfg.Redis)
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Warn("failed to close redis connection", zap.Error(err))
		}
	}()

	pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	if err := cache.Ping(pingCtx, redisClient); err != nil {
		log.Warn("redis unreachable, token revocation checks will fail until it is back", zap.Error(err))
	}
	cancel()

	httpMetrics := metrics.NewHTTPMetrics("marketplace")

	app := fiber.New(fiber.Config{
		AppName:      "marketplace",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				code = fe.Code
			}
			if code >= fiber.StatusInternalServerError {
				logger.FromCtx(c).Error("unhandled error", zap.Error(err))
			}
			return c.Status(code).JSON(fiber.Map{"detail": errorDetail(code, err)})
		},
	})

	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.Middleware(log))
	app.Use(recover.New(recover.Config{EnableStackTrace: !cfg.IsProduction()}))
	app.Use(httpMetrics.Middleware())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowCredentials: true,
	}))

	app.Get("/metrics", httpMetrics.Handler())

	routes.SetupRoutes(app, routes.Dependencies{
		DB:        db,
		Config:    cfg,
		Logger:    log,
		Blacklist: cache.NewTokenBlacklist(redisClient),
		Health: map[string]handlers.Pinger{
			"database": func(ctx context.Context) error { return repositories.Ping(ctx, db) },
			"redis":    func(ctx context.Context) error { return cache.Ping(ctx, redisClient) },
		},
	})

	statsCtx, stopStats := context.WithCancel(context.Background())
	go logPoolStats(statsCtx, log, db, time.Minute)

	go func() {
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			log.Fatal("server stopped", zap.Error(err))
		}
	}()
	log.Info("server started", zap.String("port", cfg.Server.Port), zap.String("env", cfg.Server.Env))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	stopStats()
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}

func errorDetail(code int, err error) string {
	if code >= fiber.StatusInternalServerError {
		return "internal server error"
	}
	return err.Error()
}

// logPoolStats reports the database connection pool usage every interval
// until ctx is cancelled.
func logPoolStats(ctx context.Context, log *zap.Logger, db *gorm.DB, interval time.Duration) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		stats := sqlDB.Stats()
		log.Debug("db pool stats",
			zap.Int("open", stats.OpenConnections),
			zap.Int("idle", stats.Idle),
			zap.Int("in_use", stats.InUse),
			zap.Int64("wait_count", stats.WaitCount),
			zap.Duration("wait_duration", stats.WaitDuration),
		)
	}
}
