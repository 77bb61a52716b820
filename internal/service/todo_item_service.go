package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/phrazzld/todo-api/internal/store"
)

// TodoItemService provides the caller-scoped item operations.
type TodoItemService interface {
	// ListItems returns a page of the items in one of the caller's lists.
	ListItems(ctx context.Context, userID, listID uuid.UUID, page store.Page) (PageResult[*domain.TodoItem], error)

	// CreateItems adds items to one of the caller's lists.
	CreateItems(ctx context.Context, userID, listID uuid.UUID, descriptions []string) ([]*domain.TodoItem, error)

	// UpdateItems patches the caller's items among the patched ids.
	UpdateItems(ctx context.Context, userID uuid.UUID, patches []domain.ItemPatch) (BatchResult[*domain.TodoItem], error)

	// DeleteItems removes the caller's items among ids.
	DeleteItems(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (BatchResult[uuid.UUID], error)
}

type todoItemServiceImpl struct {
	lists      store.TodoListStore
	items      store.TodoItemStore
	reconciler *Reconciler
	logger     *slog.Logger
}

// NewTodoItemService creates a TodoItemService. Item-by-list operations are
// guarded through the parent list; bulk update and delete go through the
// reconciler's ownership filter.
func NewTodoItemService(
	lists store.TodoListStore,
	items store.TodoItemStore,
	reconciler *Reconciler,
	logger *slog.Logger,
) (TodoItemService, error) {
	if lists == nil || items == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "stores cannot be nil"}
	}
	if reconciler == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "reconciler cannot be nil"}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &todoItemServiceImpl{
		lists:      lists,
		items:      items,
		reconciler: reconciler,
		logger:     logger.With(slog.String("component", "todo_item_service")),
	}, nil
}

// guardList fetches the list and checks it belongs to userID.
func (s *todoItemServiceImpl) guardList(ctx context.Context, userID, listID uuid.UUID) error {
	list, err := s.lists.GetByID(ctx, listID)
	if err != nil {
		return NewServiceError("get_list", "failed to retrieve todo list", err)
	}
	if _, err := Authorize(userID, list); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Warn("todo list access denied",
			slog.String("user_id", userID.String()),
			slog.String("list_id", listID.String()))
		return err
	}
	return nil
}

func (s *todoItemServiceImpl) ListItems(
	ctx context.Context,
	userID, listID uuid.UUID,
	page store.Page,
) (PageResult[*domain.TodoItem], error) {
	if err := s.guardList(ctx, userID, listID); err != nil {
		return PageResult[*domain.TodoItem]{}, err
	}

	items, total, err := s.items.ListByList(ctx, listID, page)
	if err != nil {
		return PageResult[*domain.TodoItem]{}, NewServiceError("list_items", "failed to list todo items", err)
	}
	return PageResult[*domain.TodoItem]{Items: items, Total: total}, nil
}

func (s *todoItemServiceImpl) CreateItems(
	ctx context.Context,
	userID, listID uuid.UUID,
	descriptions []string,
) ([]*domain.TodoItem, error) {
	if err := s.guardList(ctx, userID, listID); err != nil {
		return nil, err
	}
	return s.reconciler.BulkCreate(ctx, listID, descriptions)
}

func (s *todoItemServiceImpl) UpdateItems(
	ctx context.Context,
	userID uuid.UUID,
	patches []domain.ItemPatch,
) (BatchResult[*domain.TodoItem], error) {
	return s.reconciler.BulkUpdate(ctx, userID, patches)
}

func (s *todoItemServiceImpl) DeleteItems(
	ctx context.Context,
	userID uuid.UUID,
	ids []uuid.UUID,
) (BatchResult[uuid.UUID], error) {
	return s.reconciler.BulkDelete(ctx, userID, ids)
}
