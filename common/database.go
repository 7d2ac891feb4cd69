package common

import (
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase opens the production database. An empty DSN falls back to
// a local sqlite file so the service can be poked at without postgres.
func NewDatabase(cfg *AppConfig) (*gorm.DB, error) {
	if cfg.DatabaseDSN == "" {
		return gorm.Open(sqlite.Open("condo_service.db"), &gorm.Config{})
	}

	gormLogger := logger.Default.LogMode(logger.Warn)
	if cfg.Mode == "debug" {
		gormLogger = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}
