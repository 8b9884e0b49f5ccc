// Package database provides database connection management for PostgreSQL and SQLite.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/festy23/querystudy/internal/database/config"
	"github.com/festy23/querystudy/internal/database/pool"
	"github.com/festy23/querystudy/pkg/retry"
)

// Options tunes how a connection is opened.
type Options struct {
	Logger   *zap.SugaredLogger
	SQLLevel gormlogger.LogLevel
	Pool     pool.Config
	Retry    retry.Config
}

// DefaultOptions returns options loaded from environment variables for the given driver.
func DefaultOptions(driver string, log *zap.SugaredLogger, sqlLevel string) Options {
	return Options{
		Logger:   log,
		SQLLevel: ParseLogLevel(sqlLevel),
		Pool:     pool.LoadPoolConfigFromEnv(driver),
		Retry:    config.LoadRetryConfigFromEnv(driver),
	}
}

// New creates a new database connection using environment variables.
func New(ctx context.Context, log *zap.SugaredLogger, sqlLevel string) (*gorm.DB, error) {
	cfg := config.LoadConfigFromEnv()
	return NewWithConfig(ctx, cfg, DefaultOptions(cfg.Driver, log, sqlLevel))
}

// NewWithConfig opens a connection for cfg, retrying transient failures.
func NewWithConfig(ctx context.Context, cfg config.Config, opts Options) (*gorm.DB, error) {
	dialector, err := config.Dialector(cfg)
	if err != nil {
		return nil, err
	}

	log := opts.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	retryCfg := opts.Retry
	if retryCfg.OnRetry == nil {
		retryCfg.OnRetry = func(attempt int, err error, delay time.Duration) {
			log.Warnw("Database connection failed, retrying",
				"driver", cfg.Driver,
				"attempt", attempt,
				"delay", delay.String(),
				"error", config.SanitizeError(err, cfg),
			)
		}
	}

	gormCfg := &gorm.Config{
		Logger: NewGormLogger(log, opts.SQLLevel),
	}

	db, err := retry.DoWithResult(ctx, retryCfg, func() (*gorm.DB, error) {
		conn, openErr := gorm.Open(dialector, gormCfg)
		if openErr != nil {
			return nil, openErr
		}
		if pingErr := HealthCheck(ctx, conn); pingErr != nil {
			_ = Close(conn)
			return nil, pingErr
		}
		return conn, nil
	})
	if err != nil {
		return nil, config.SanitizeError(err, cfg)
	}

	if cfg.Driver == config.DriverSQLite {
		if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			_ = Close(db)
			return nil, fmt.Errorf("failed to enable sqlite foreign keys: %w", err)
		}
	}

	if err := pool.SetupConnectionPool(db, opts.Pool); err != nil {
		_ = Close(db)
		return nil, fmt.Errorf("failed to setup connection pool: %w", err)
	}

	log.Infow("Database connection established",
		"driver", cfg.Driver,
		"max_open_conns", opts.Pool.MaxOpenConns,
		"max_idle_conns", opts.Pool.MaxIdleConns,
	)

	return db, nil
}

// HealthCheck verifies database connection availability.
func HealthCheck(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// Close gracefully closes database connection.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}
	return nil
}

// GetStats returns database connection pool statistics.
func GetStats(db *gorm.DB) (*sql.DBStats, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	stats := sqlDB.Stats()
	return &stats, nil
}
