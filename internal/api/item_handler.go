package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/phrazzld/todo-api/internal/api/shared"
	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/phrazzld/todo-api/internal/service"
)

// ExcludedCountHeader reports how many requested ids a bulk update skipped
// because they were missing or belonged to another user.
const ExcludedCountHeader = "X-Excluded-Count"

// ItemHandler handles the bulk /items requests.
type ItemHandler struct {
	items  service.TodoItemService
	logger *slog.Logger
}

// NewItemHandler creates a new ItemHandler
func NewItemHandler(items service.TodoItemService, logger *slog.Logger) *ItemHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ItemHandler")
	}
	return &ItemHandler{
		items:  items,
		logger: logger.With(slog.String("component", "item_handler")),
	}
}

// UpdateItems handles PATCH /items. Only the caller's items are changed;
// others are skipped and counted in ExcludedCountHeader.
func (h *ItemHandler) UpdateItems(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := handleUserID(w, r, log)
	if !ok {
		return
	}

	reqs, err := decodeArray[UpdateItemRequest](r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	patches := make([]domain.ItemPatch, 0, len(reqs))
	for i, req := range reqs {
		if err := shared.ValidateRequest(req); err != nil {
			HandleAPIError(w, r, atIndex(err, i), "")
			return
		}
		patch, err := req.toItemPatch()
		if err != nil {
			HandleAPIError(w, r, atIndex(err, i), "")
			return
		}
		patches = append(patches, patch)
	}

	result, err := h.items.UpdateItems(r.Context(), userID, patches)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update todo items")
		return
	}

	w.Header().Set(ExcludedCountHeader, strconv.Itoa(result.Excluded))
	shared.RespondWithJSON(w, r, http.StatusOK, toItemResponses(result.Items))
}

// DeleteItems handles DELETE /items. The body is an array of item ids.
func (h *ItemHandler) DeleteItems(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := handleUserID(w, r, log)
	if !ok {
		return
	}

	raw, err := decodeArray[string](r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	ids := make([]uuid.UUID, 0, len(raw))
	for i, s := range raw {
		if err := shared.ValidateValue(s, itemIDRule, indexLabel(i)); err != nil {
			HandleAPIError(w, r, err, "")
			return
		}
		ids = append(ids, uuid.MustParse(s))
	}

	result, err := h.items.DeleteItems(r.Context(), userID, ids)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to delete todo items")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, DeleteItemsResponse{
		Deleted:  len(result.Items),
		Excluded: result.Excluded,
	})
}
