// PeaceConnect back office and help-request API.
package main

// @title       PeaceConnect API
// @version     1.0
// @description Events, articles, catalog and help requests of the PeaceConnect platform.
// @BasePath    /

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"peaceconnect_service/internal/config"
	"peaceconnect_service/internal/handler"
	"peaceconnect_service/internal/repository"
	"peaceconnect_service/internal/service"
	"peaceconnect_service/pkg/databaseManager"
	"peaceconnect_service/pkg/healthcheck"
	"peaceconnect_service/pkg/logger"
	"peaceconnect_service/pkg/redisManager"
	"peaceconnect_service/pkg/websocketManager"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func provideDatabaseSettings(cfg *config.Config) databaseManager.Settings {
	return cfg
}

func providePublisher(m *websocketManager.Manager) service.Publisher {
	return m
}

// provideCache returns the Redis-backed catalog cache when Redis is
// enabled. The RedisManager is nil otherwise.
func provideCache(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (service.Cache, redisManager.RedisManager) {
	if !cfg.Redis.Enabled {
		log.Info("redis disabled, catalog reads go to the database")
		return service.NopCache(), nil
	}
	manager := redisManager.ProvideRedisManager(lc, &redisManager.RedisConfig{
		Addr:     cfg.Redis.Addr,
		Username: cfg.Redis.Username,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}, log)
	return manager, manager
}

// prepareDatabase migrates and seeds before the HTTP server starts.
func prepareDatabase(lc fx.Lifecycle, cfg *config.Config, db *gorm.DB, catalog service.CatalogService, log *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return service.PrepareDatabase(ctx, cfg, db, catalog, log)
		},
	})
}

func registerHealthChecks(health *healthcheck.Manager, db databaseManager.DatabaseManager, redis redisManager.RedisManager) {
	health.AddReadinessCheck(&healthcheck.DatabaseChecker{Name_: "database", DB: db})
	if redis != nil {
		health.AddReadinessCheck(&healthcheck.RedisChecker{Name_: "redis", PingFunc: redis.Ping})
	}
}

func main() {
	app := fx.New(
		logger.Module,
		config.Module,
		healthcheck.Module,
		websocketManager.Module,
		repository.Module,
		service.Module,

		fx.Provide(
			provideDatabaseSettings,
			databaseManager.ProvideDatabaseManager,
			provideCache,
			providePublisher,
		),
		fx.Invoke(prepareDatabase, registerHealthChecks),

		// last, so the listener opens after the schema is ready
		handler.Module,
	)

	startCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		fmt.Fprintf(os.Stderr, "failed to start application: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%s started\n", config.ShortVersionString())

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer stopCancel()
	if err := app.Stop(stopCtx); err != nil {
		fmt.Fprintf(os.Stderr, "failed to stop application: %v\n", err)
		os.Exit(1)
	}
}
