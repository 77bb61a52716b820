package testutils

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/phrazzld/todo-api/internal/config"
	"github.com/phrazzld/todo-api/internal/migrations"
	"github.com/phrazzld/todo-api/internal/platform/postgres"
	"github.com/phrazzld/todo-api/internal/platform/sqlite"
	"github.com/stretchr/testify/require"
)

// NewSQLiteDB opens a fresh SQLite database in the test's temp directory and
// applies every migration. The handle is closed on cleanup.
func NewSQLiteDB(t *testing.T) *sql.DB {
	t.Helper()

	ctx := context.Background()
	db, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "todo.db"))
	require.NoError(t, err, "Failed to open sqlite database")
	t.Cleanup(func() { _ = db.Close() })

	m, err := migrations.New(db, config.DriverSQLite, DiscardLogger())
	require.NoError(t, err, "Failed to create migrator")
	require.NoError(t, m.Up(ctx), "Failed to apply migrations")

	return db
}

// NewPostgresDB connects to DATABASE_URL, applies migrations and returns the
// handle. The test is skipped when DATABASE_URL is unset.
func NewPostgresDB(t *testing.T) *sql.DB {
	t.Helper()

	ctx := context.Background()
	db, err := postgres.Open(ctx, GetTestDatabaseURL(t), postgres.PoolOptions{MaxOpenConns: 5})
	require.NoError(t, err, "Failed to connect to PostgreSQL")
	t.Cleanup(func() { _ = db.Close() })

	m, err := migrations.New(db, config.DriverPostgres, DiscardLogger())
	require.NoError(t, err, "Failed to create migrator")
	require.NoError(t, m.Up(ctx), "Failed to apply migrations")

	return db
}
