// Package migrations embeds the SQL schema for every supported backend and
// applies it with goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"sync"

	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite/*.sql
var embedded embed.FS

// Commands accepted by Run.
const (
	CommandUp      = "up"
	CommandDown    = "down"
	CommandReset   = "reset"
	CommandStatus  = "status"
	CommandVersion = "version"
)

// goose keeps its dialect, filesystem and logger in package globals.
var gooseMu sync.Mutex

// Migrator applies the embedded migrations for one database backend.
type Migrator struct {
	db      *sql.DB
	dialect string
	dir     string
	logger  *slog.Logger
}

// New returns a Migrator for driver ("postgres" or "sqlite").
func New(db *sql.DB, driver string, logger *slog.Logger) (*Migrator, error) {
	if db == nil {
		return nil, fmt.Errorf("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	m := &Migrator{
		db:     db,
		logger: logger.With(slog.String("component", "migrations")),
	}
	switch driver {
	case "postgres":
		m.dialect, m.dir = "postgres", "postgres"
	case "sqlite":
		m.dialect, m.dir = "sqlite3", "sqlite"
	default:
		return nil, fmt.Errorf("unsupported migration driver %q", driver)
	}
	return m, nil
}

// Up applies all pending migrations.
func (m *Migrator) Up(ctx context.Context) error {
	return m.Run(ctx, CommandUp)
}

// Version returns the current schema version.
func (m *Migrator) Version(ctx context.Context) (int64, error) {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	if err := m.configure(); err != nil {
		return 0, err
	}
	v, err := goose.GetDBVersionContext(ctx, m.db)
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return v, nil
}

// Run executes a goose command against the embedded migrations.
func (m *Migrator) Run(ctx context.Context, command string) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	if err := m.configure(); err != nil {
		return err
	}

	m.logger.Info("running migrations",
		slog.String("command", command),
		slog.String("dialect", m.dialect))

	var err error
	switch command {
	case CommandUp:
		err = goose.UpContext(ctx, m.db, m.dir)
	case CommandDown:
		err = goose.DownContext(ctx, m.db, m.dir)
	case CommandReset:
		err = goose.ResetContext(ctx, m.db, m.dir)
	case CommandStatus:
		err = goose.StatusContext(ctx, m.db, m.dir)
	case CommandVersion:
		err = goose.VersionContext(ctx, m.db, m.dir)
	default:
		return fmt.Errorf("unknown migration command %q", command)
	}
	if err != nil {
		return fmt.Errorf("migration %s failed: %w", command, err)
	}
	return nil
}

func (m *Migrator) configure() error {
	goose.SetBaseFS(embedded)
	goose.SetLogger(&slogGooseLogger{logger: m.logger})
	if err := goose.SetDialect(m.dialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return nil
}

// slogGooseLogger adapts goose's Printf/Fatalf logging to slog.
type slogGooseLogger struct {
	logger *slog.Logger
}

// Printf implements the goose.Logger Printf method by forwarding messages to slog.Info
func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, v...))
}

// Fatalf implements the goose.Logger Fatalf method by forwarding error messages to slog.Error
// Unlike the standard Fatalf behavior, this does NOT call os.Exit; goose
// returns the error to the caller.
func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, v...))
}
