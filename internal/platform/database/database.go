// Package database opens the configured SQL backend and pairs it with the
// matching store dialect.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/todo-api/internal/config"
	"github.com/phrazzld/todo-api/internal/migrations"
	"github.com/phrazzld/todo-api/internal/platform/postgres"
	"github.com/phrazzld/todo-api/internal/platform/sqlite"
	"github.com/phrazzld/todo-api/internal/platform/sqlstore"
	"github.com/phrazzld/todo-api/internal/redact"
)

// Open connects to the database described by cfg.
func Open(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*sql.DB, sqlstore.Dialect, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var (
		db  *sql.DB
		err error
	)
	switch cfg.Driver {
	case config.DriverPostgres:
		db, err = postgres.Open(ctx, cfg.URL, postgres.PoolOptions{
			MaxOpenConns:    cfg.MaxOpenConns,
			ConnMaxLifetime: time.Duration(cfg.ConnMaxLifetimeMinutes) * time.Minute,
		})
	case config.DriverSQLite:
		db, err = sqlite.Open(ctx, cfg.URL)
	default:
		return nil, nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s database: %s", cfg.Driver, redact.Error(err))
	}

	logger.Info("database connection established", slog.String("driver", cfg.Driver))
	return db, DialectFor(cfg.Driver), nil
}

// DialectFor returns the store dialect for a configured driver name.
func DialectFor(driver string) sqlstore.Dialect {
	if driver == config.DriverPostgres {
		return postgres.Dialect{}
	}
	return sqlite.Dialect{}
}

// Migrate runs a migration command against db.
func Migrate(ctx context.Context, db *sql.DB, driver, command string, logger *slog.Logger) error {
	m, err := migrations.New(db, driver, logger)
	if err != nil {
		return err
	}
	return m.Run(ctx, command)
}
