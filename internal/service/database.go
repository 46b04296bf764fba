package service

import (
	"context"
	"fmt"

	"peaceconnect_service/internal/config"
	"peaceconnect_service/internal/model"
	"peaceconnect_service/pkg/databaseManager"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func ProvideGormDB(dbManager databaseManager.DatabaseManager) *gorm.DB {
	return dbManager.GetDB()
}

// Migrate creates or updates the tables of every model.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(model.All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// PrepareDatabase migrates and seeds according to cfg.
func PrepareDatabase(ctx context.Context, cfg *config.Config, db *gorm.DB, catalog CatalogService, log *zap.Logger) error {
	if cfg.Database.AutoMigrate {
		if err := Migrate(ctx, db); err != nil {
			return err
		}
		log.Info("database schema up to date")
	}
	if cfg.Database.SeedDefaults {
		if err := catalog.SeedDefaults(ctx); err != nil {
			return err
		}
	}
	return nil
}
