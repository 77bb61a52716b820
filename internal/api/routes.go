package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handlers groups the HTTP handlers mounted by RegisterRoutes.
type Handlers struct {
	Health       *HealthHandler
	Todos        *TodoHandler
	Items        *ItemHandler
	Designations *DesignationHandler
}

// RegisterRoutes mounts the public endpoints and, behind authenticate, the
// caller-scoped resource endpoints.
func RegisterRoutes(r chi.Router, h Handlers, authenticate func(http.Handler) http.Handler) {
	r.Get("/", h.Health.Root)
	r.Get("/health", h.Health.Health)

	r.Group(func(r chi.Router) {
		r.Use(authenticate)

		r.Route("/todos", func(r chi.Router) {
			r.Get("/", h.Todos.ListTodos)
			r.Post("/", h.Todos.CreateTodo)
			r.Put("/{id}", h.Todos.UpdateTodo)
			r.Delete("/{id}", h.Todos.DeleteTodo)
			r.Get("/{id}/items", h.Todos.ListItems)
			r.Post("/{id}/items", h.Todos.CreateItems)
		})

		r.Patch("/items", h.Items.UpdateItems)
		r.Delete("/items", h.Items.DeleteItems)

		r.Route("/designation", func(r chi.Router) {
			r.Get("/", h.Designations.ListDesignations)
			r.Post("/", h.Designations.CreateDesignation)
			r.Put("/{id}", h.Designations.UpdateDesignation)
			r.Delete("/{id}", h.Designations.DeleteDesignation)
		})
	})
}
