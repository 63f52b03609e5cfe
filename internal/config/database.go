package config

import (
	"fmt"
	"time"

	_ "github.com/lib/pq" // registers the "postgres" database/sql driver
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"transit_api/internal/logger"
	"transit_api/internal/models"
)

// OpenDatabase connects to Postgres through lib/pq and returns the handle that
// is injected into the repositories.
func OpenDatabase(cfg DatabaseConfig) (*gorm.DB, error) {
	dialector := postgres.New(postgres.Config{
		DriverName: "postgres",
		DSN:        cfg.DSN(),
	})

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.GormLogger(200 * time.Millisecond),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("config: connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("config: database handle: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	logrus.WithFields(logrus.Fields{
		"host": cfg.Host,
		"db":   cfg.Name,
	}).Info("database connection established")
	return db, nil
}

// Migrate creates or updates every table, including the foreign keys that
// carry the cascade and set-null rules.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("config: auto-migration failed: %w", err)
	}
	return nil
}
