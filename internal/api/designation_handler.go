package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/todo-api/internal/api/shared"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/phrazzld/todo-api/internal/service"
)

// DesignationHandler handles /designation requests.
type DesignationHandler struct {
	designations service.DesignationService
	logger       *slog.Logger
}

// NewDesignationHandler creates a new DesignationHandler
func NewDesignationHandler(designations service.DesignationService, logger *slog.Logger) *DesignationHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for DesignationHandler")
	}
	return &DesignationHandler{
		designations: designations,
		logger:       logger.With(slog.String("component", "designation_handler")),
	}
}

// ListDesignations handles GET /designation
func (h *DesignationHandler) ListDesignations(w http.ResponseWriter, r *http.Request) {
	userID, ok := handleUserID(w, r, logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}

	page, err := h.designations.ListDesignations(r.Context(), userID, parsePage(r))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list designations")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, toPageResponse(page, toDesignationResponse))
}

// CreateDesignation handles POST /designation
func (h *DesignationHandler) CreateDesignation(w http.ResponseWriter, r *http.Request) {
	userID, ok := handleUserID(w, r, logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}

	var req DesignationRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	d, err := h.designations.CreateDesignation(r.Context(), userID, *req.Name)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create designation")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, toDesignationResponse(d))
}

// UpdateDesignation handles PUT /designation/{id}
func (h *DesignationHandler) UpdateDesignation(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := handleUserIDAndPathUUID(w, r, "id", logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}

	var req DesignationRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	d, err := h.designations.RenameDesignation(r.Context(), userID, id, *req.Name)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update designation")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, toDesignationResponse(d))
}

// DeleteDesignation handles DELETE /designation/{id}
func (h *DesignationHandler) DeleteDesignation(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := handleUserIDAndPathUUID(w, r, "id", logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}

	if err := h.designations.DeleteDesignation(r.Context(), userID, id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete designation")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
