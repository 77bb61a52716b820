package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/todo-api/internal/api/shared"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/phrazzld/todo-api/internal/service"
)

// TodoHandler handles /todos requests: lists and the items of one list.
type TodoHandler struct {
	lists  service.TodoListService
	items  service.TodoItemService
	logger *slog.Logger
}

// NewTodoHandler creates a new TodoHandler
func NewTodoHandler(
	lists service.TodoListService,
	items service.TodoItemService,
	logger *slog.Logger,
) *TodoHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TodoHandler")
	}
	return &TodoHandler{
		lists:  lists,
		items:  items,
		logger: logger.With(slog.String("component", "todo_handler")),
	}
}

// ListTodos handles GET /todos
func (h *TodoHandler) ListTodos(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := handleUserID(w, r, log)
	if !ok {
		return
	}

	page, err := h.lists.ListLists(r.Context(), userID, parsePage(r))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list todo lists")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, toPageResponse(page, toTodoListResponse))
}

// CreateTodo handles POST /todos
func (h *TodoHandler) CreateTodo(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := handleUserID(w, r, log)
	if !ok {
		return
	}

	var req CreateTodoListRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	list, err := h.lists.CreateList(r.Context(), userID, *req.Title, req.Items)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create todo list")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, toTodoListResponse(list))
}

// UpdateTodo handles PUT /todos/{id}
func (h *TodoHandler) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, listID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req RenameTodoListRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	list, err := h.lists.RenameList(r.Context(), userID, listID, *req.Title)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update todo list")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, toTodoListResponse(list))
}

// DeleteTodo handles DELETE /todos/{id}
func (h *TodoHandler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, listID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	if err := h.lists.DeleteList(r.Context(), userID, listID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete todo list")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListItems handles GET /todos/{id}/items
func (h *TodoHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, listID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	page, err := h.items.ListItems(r.Context(), userID, listID, parsePage(r))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list todo items")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, toPageResponse(page, toTodoItemResponse))
}

// CreateItems handles POST /todos/{id}/items. The body is an array of
// descriptions.
func (h *TodoHandler) CreateItems(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, listID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	descriptions, err := decodeArray[string](r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	for i, desc := range descriptions {
		if err := shared.ValidateValue(desc, itemDescriptionRule, indexLabel(i)); err != nil {
			HandleAPIError(w, r, err, "")
			return
		}
	}

	items, err := h.items.CreateItems(r.Context(), userID, listID, descriptions)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create todo items")
		return
	}

	log.Debug("todo items created",
		slog.String("list_id", listID.String()),
		slog.Int("count", len(items)))
	shared.RespondWithJSON(w, r, http.StatusCreated, toItemResponses(items))
}
