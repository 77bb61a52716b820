// Package sqlite opens SQLite databases through the pure-Go modernc driver and
// describes the SQL dialect differences the shared stores need to know about.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" // registers the "sqlite" database/sql driver
)

// DriverName is the database/sql driver registered by modernc.org/sqlite.
const DriverName = "sqlite"

// DSN builds a connection string for the database file at path. Foreign keys
// are enforced and time values are stored in SQLite's text format so they
// sort chronologically.
func DSN(path string) string {
	params := []string{
		"_pragma=foreign_keys(1)",
		"_pragma=busy_timeout(5000)",
		"_time_format=sqlite",
	}
	return "file:" + path + "?" + strings.Join(params, "&")
}

// Open opens and pings the database file at path.
//
// The pool is limited to one connection. SQLite serialises writers anyway, and
// a single connection keeps a transaction and its surrounding reads on the
// same handle.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite database path is required")
	}

	db, err := sql.Open(DriverName, DSN(filepath.Clean(path)))
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	return db, nil
}

// Dialect is the SQLite flavour of sqlstore.Dialect.
type Dialect struct{}

// Name implements sqlstore.Dialect.
func (Dialect) Name() string { return "sqlite" }

// LockClause implements sqlstore.Dialect. SQLite has no row locks; the
// single-writer transaction already isolates the read-modify-write.
func (Dialect) LockClause() string { return "" }

// MapError implements sqlstore.Dialect.
func (Dialect) MapError(err error) error { return MapError(err) }
