package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/mytheresa/orders-report/config"
)

const pingTimeout = 5 * time.Second

// NewGormConfig returns the gorm settings shared by every store handle.
// Driver errors are translated so unique violations surface as gorm.ErrDuplicatedKey.
func NewGormConfig(logSQL bool, logger *slog.Logger) *gorm.Config {
	level, slogLevel := gormlogger.Warn, slog.LevelWarn
	if logSQL {
		level, slogLevel = gormlogger.Info, slog.LevelInfo
	}
	return &gorm.Config{
		TranslateError: true,
		Logger: gormlogger.New(
			slog.NewLogLogger(logger.Handler(), slogLevel),
			gormlogger.Config{
				SlowThreshold:             200 * time.Millisecond,
				LogLevel:                  level,
				IgnoreRecordNotFoundError: true,
				Colorful:                  false,
			},
		),
	}
}

// Open connects to the configured PostgreSQL database and tests the connection.
// The caller owns the handle and must release it with Close.
func Open(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*gorm.DB, error) {
	logger.Info("Connecting to database", "dsn", cfg.Redacted())

	db, err := gorm.Open(postgres.Open(cfg.DSN()), NewGormConfig(cfg.LogSQL, logger))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := Ping(ctx, db); err != nil {
		_ = Close(db)
		return nil, err
	}

	logger.Info("Connected to the database!")
	return db, nil
}

// Ping tests the connection behind db.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}

// Close releases the connections held by db.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// OpenSQL opens a plain database/sql connection through lib/pq. It backs the
// tabulation step, which re-runs report statements outside of gorm.
func OpenSQL(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	sqlDB, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return sqlDB, nil
}

// EnsureDatabaseExists creates the configured database when the server does
// not have it yet. It connects to the "postgres" maintenance database.
func EnsureDatabaseExists(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) error {
	logger.Info("Checking if database exists", "database", cfg.Name)

	poolCfg, err := pgxpool.ParseConfig(cfg.MaintenanceDSN())
	if err != nil {
		return fmt.Errorf("failed to parse connection string: %w", err)
	}
	poolCfg.MaxConns = 1

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	defer pool.Close()

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	var exists bool
	query := "SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)"
	if err := pool.QueryRow(ctx, query, cfg.Name).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check if database exists: %w", err)
	}
	if exists {
		logger.Info("Database already exists", "database", cfg.Name)
		return nil
	}

	// CREATE DATABASE cannot run inside a transaction block.
	createQuery := fmt.Sprintf("CREATE DATABASE %s", pgx.Identifier{cfg.Name}.Sanitize())
	if _, err := pool.Exec(ctx, createQuery); err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	logger.Info("Database created", "database", cfg.Name)
	return nil
}
