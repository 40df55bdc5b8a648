package main

import (
	"log/slog"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mikios34/storefront-backend/config"
	"github.com/mikios34/storefront-backend/entity"
)

func setupDatabase(cfg *config.Config) (*gorm.DB, error) {
	gormLogger := logger.Default.LogMode(logger.Warn)
	if cfg.LogLevel <= slog.LevelDebug {
		gormLogger = logger.Default.LogMode(logger.Info)
	}
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, err
	}

	// Ensure required extensions for UUID are present
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"").Error; err != nil {
		slog.Warn("failed to ensure uuid-ossp extension", "err", err)
	}

	if err := db.AutoMigrate(entity.Models()...); err != nil {
		return nil, err
	}
	return db, nil
}
