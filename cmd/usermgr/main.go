// Package main implements usermgr, the administrative CLI for todo-api users.
// It reads the same TODO_* configuration as the server.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/todo-api/internal/cli"
	"github.com/phrazzld/todo-api/internal/config"
	"github.com/phrazzld/todo-api/internal/migrations"
	"github.com/phrazzld/todo-api/internal/platform/database"
	"github.com/phrazzld/todo-api/internal/platform/sqlstore"
	"github.com/phrazzld/todo-api/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		return cli.NewRunner(nil, stdout, stderr).Run(ctx, args)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "usermgr: failed to load configuration: %v\n", err)
		return cli.ExitError
	}

	// Operator output goes to stdout; only warnings from the data layer are
	// worth showing alongside it.
	l := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	db, dialect, err := database.Open(ctx, cfg.Database, l)
	if err != nil {
		fmt.Fprintf(stderr, "usermgr: %v\n", err)
		return cli.ExitError
	}
	defer func() {
		if err := db.Close(); err != nil {
			l.Error("error closing database connection", "error", err)
		}
	}()

	if cfg.Database.AutoMigrate || cfg.Database.Driver == config.DriverSQLite {
		if err := database.Migrate(ctx, db, cfg.Database.Driver, migrations.CommandUp, l); err != nil {
			fmt.Fprintf(stderr, "usermgr: %v\n", err)
			return cli.ExitError
		}
	}

	users, err := service.NewUserService(sqlstore.NewUserStore(db, dialect, l), l)
	if err != nil {
		fmt.Fprintf(stderr, "usermgr: %v\n", err)
		return cli.ExitError
	}
	return cli.NewRunner(users, stdout, stderr).Run(ctx, args)
}
