package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/todo-api/internal/api"
	apiMiddleware "github.com/phrazzld/todo-api/internal/api/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// setupRouter creates the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))
	if app.config.Server.IsDevelopment() {
		r.Use(apiMiddleware.ErrorStacks)
	}

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.authenticator, app.logger)

	api.RegisterRoutes(r, api.Handlers{
		Health:       api.NewHealthHandler(app.db, app.logger),
		Todos:        api.NewTodoHandler(app.todoListService, app.todoItemService, app.logger),
		Items:        api.NewItemHandler(app.todoItemService, app.logger),
		Designations: api.NewDesignationHandler(app.designationService, app.logger),
	}, authMiddleware.Authenticate)

	// otelhttp wraps the whole router so the trace middleware sees its span.
	return otelhttp.NewHandler(r, "todo-api",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}))
}
