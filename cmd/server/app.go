package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/todo-api/internal/config"
	"github.com/phrazzld/todo-api/internal/migrations"
	"github.com/phrazzld/todo-api/internal/platform/database"
	"github.com/phrazzld/todo-api/internal/platform/otel"
	"github.com/phrazzld/todo-api/internal/platform/sqlstore"
	"github.com/phrazzld/todo-api/internal/service"
	"github.com/phrazzld/todo-api/internal/service/auth"
	"github.com/phrazzld/todo-api/internal/store"
)

// devKeyHintLimit caps how many users' API keys are logged at startup in
// development.
const devKeyHintLimit = 3

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores
	userStore        store.UserStore
	todoListStore    store.TodoListStore
	todoItemStore    store.TodoItemStore
	designationStore store.DesignationStore

	// Services
	authenticator      *auth.Authenticator
	todoListService    service.TodoListService
	todoItemService    service.TodoItemService
	designationService service.DesignationService

	shutdownTelemetry otel.ShutdownFunc
}

// newApplication connects to the database and wires every store and service.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	shutdownTelemetry, err := otel.Setup(ctx, cfg.Telemetry)
	if err != nil {
		return nil, fmt.Errorf("failed to set up telemetry: %w", err)
	}

	db, dialect, err := database.Open(ctx, cfg.Database, logger)
	if err != nil {
		_ = shutdownTelemetry(ctx)
		return nil, err
	}

	app, err := assemble(cfg, logger, db, dialect)
	if err != nil {
		_ = db.Close()
		_ = shutdownTelemetry(ctx)
		return nil, err
	}
	app.shutdownTelemetry = shutdownTelemetry

	if cfg.Database.AutoMigrate || cfg.Database.Driver == config.DriverSQLite {
		if err := database.Migrate(ctx, db, cfg.Database.Driver, migrations.CommandUp, logger); err != nil {
			app.cleanup(ctx)
			return nil, err
		}
	}

	logger.Info("application initialized successfully")
	return app, nil
}

// assemble builds stores and services over an open database.
func assemble(cfg *config.Config, logger *slog.Logger, db *sql.DB, dialect sqlstore.Dialect) (*application, error) {
	app := &application{
		config:            cfg,
		logger:            logger,
		db:                db,
		shutdownTelemetry: func(context.Context) error { return nil },
	}

	app.userStore = sqlstore.NewUserStore(db, dialect, logger)
	app.todoListStore = sqlstore.NewTodoListStore(db, dialect, logger)
	app.todoItemStore = sqlstore.NewTodoItemStore(db, dialect, logger)
	app.designationStore = sqlstore.NewDesignationStore(db, dialect, logger)

	var err error
	app.authenticator, err = auth.NewAuthenticator(app.userStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create authenticator: %w", err)
	}

	reconciler, err := service.NewReconciler(db, app.todoItemStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create reconciler: %w", err)
	}

	app.todoListService, err = service.NewTodoListService(db, app.todoListStore, app.todoItemStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create todo list service: %w", err)
	}

	app.todoItemService, err = service.NewTodoItemService(app.todoListStore, app.todoItemStore, reconciler, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create todo item service: %w", err)
	}

	app.designationService, err = service.NewDesignationService(app.designationStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create designation service: %w", err)
	}

	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	if app.config.Server.IsDevelopment() {
		app.logDevelopmentKeys(ctx)
	}

	router := app.setupRouter()
	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// logDevelopmentKeys logs a few usernames with their API keys so a local
// developer can call the API straight away.
func (app *application) logDevelopmentKeys(ctx context.Context) {
	users, total, err := app.userStore.List(ctx, store.NewPage(0, devKeyHintLimit))
	if err != nil {
		app.logger.Warn("could not list users for development key hint", "error", err)
		return
	}
	for _, u := range users {
		app.logger.Info("development API key",
			slog.String("username", u.Username),
			slog.String("api_key", u.APIKey))
	}
	if total > len(users) {
		app.logger.Info("more users exist; use usermgr to list them", slog.Int("total", total))
	}
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup(ctx context.Context) {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}
	if app.shutdownTelemetry != nil {
		if err := app.shutdownTelemetry(ctx); err != nil {
			app.logger.Error("error shutting down telemetry", "error", err)
		}
	}
	app.logger.Info("application shutdown completed")
}
