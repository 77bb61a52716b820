package service

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/phrazzld/todo-api/internal/store"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// TodoListService provides the caller-scoped todo list operations.
type TodoListService interface {
	// ListLists returns a page of the caller's lists.
	ListLists(ctx context.Context, userID uuid.UUID, page store.Page) (PageResult[*domain.TodoList], error)

	// GetList returns one of the caller's lists.
	GetList(ctx context.Context, userID, listID uuid.UUID) (*domain.TodoList, error)

	// CreateList creates a list, and optionally its first items, in one transaction.
	CreateList(ctx context.Context, userID uuid.UUID, title string, items []string) (*domain.TodoList, error)

	// RenameList changes the title of one of the caller's lists.
	RenameList(ctx context.Context, userID, listID uuid.UUID, title string) (*domain.TodoList, error)

	// DeleteList removes one of the caller's lists together with its items.
	DeleteList(ctx context.Context, userID, listID uuid.UUID) error
}

type todoListServiceImpl struct {
	db     *sql.DB
	lists  store.TodoListStore
	items  store.TodoItemStore
	logger *slog.Logger
}

// NewTodoListService creates a TodoListService.
// It returns an error if any of the required dependencies are nil.
func NewTodoListService(
	db *sql.DB,
	lists store.TodoListStore,
	items store.TodoItemStore,
	logger *slog.Logger,
) (TodoListService, error) {
	if db == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "db cannot be nil"}
	}
	if lists == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "lists store cannot be nil"}
	}
	if items == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "items store cannot be nil"}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &todoListServiceImpl{
		db:     db,
		lists:  lists,
		items:  items,
		logger: logger.With(slog.String("component", "todo_list_service")),
	}, nil
}

func (s *todoListServiceImpl) ListLists(
	ctx context.Context,
	userID uuid.UUID,
	page store.Page,
) (PageResult[*domain.TodoList], error) {
	lists, total, err := s.lists.ListByUser(ctx, userID, page)
	if err != nil {
		return PageResult[*domain.TodoList]{}, NewServiceError("list_lists", "failed to list todo lists", err)
	}
	return PageResult[*domain.TodoList]{Items: lists, Total: total}, nil
}

func (s *todoListServiceImpl) GetList(ctx context.Context, userID, listID uuid.UUID) (*domain.TodoList, error) {
	return s.owned(ctx, userID, listID)
}

// owned fetches the list and checks it belongs to userID.
func (s *todoListServiceImpl) owned(ctx context.Context, userID, listID uuid.UUID) (*domain.TodoList, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	list, err := s.lists.GetByID(ctx, listID)
	if err != nil {
		return nil, NewServiceError("get_list", "failed to retrieve todo list", err)
	}
	list, err = Authorize(userID, list)
	if err != nil {
		log.Warn("todo list access denied",
			slog.String("user_id", userID.String()),
			slog.String("list_id", listID.String()))
		return nil, err
	}
	return list, nil
}

func (s *todoListServiceImpl) CreateList(
	ctx context.Context,
	userID uuid.UUID,
	title string,
	descriptions []string,
) (*domain.TodoList, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	ctx, span := tracer.Start(ctx, "service.TodoListService.CreateList",
		trace.WithAttributes(attribute.Int("items.count", len(descriptions))))
	defer span.End()

	list, err := domain.NewTodoList(userID, title)
	if err != nil {
		return nil, err
	}
	items, err := newItems(list.ID, descriptions)
	if err != nil {
		return nil, relabel(err, func(field string) string { return "items" + field })
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.lists.WithTx(tx).Create(ctx, list); err != nil {
			return err
		}
		return s.items.WithTx(tx).CreateMultiple(ctx, items)
	})
	if err != nil {
		return nil, NewServiceError("create_list", "failed to save todo list", err)
	}

	log.Info("todo list created",
		slog.String("list_id", list.ID.String()),
		slog.String("user_id", userID.String()),
		slog.Int("items", len(items)))
	return list, nil
}

func (s *todoListServiceImpl) RenameList(
	ctx context.Context,
	userID, listID uuid.UUID,
	title string,
) (*domain.TodoList, error) {
	list, err := s.owned(ctx, userID, listID)
	if err != nil {
		return nil, err
	}
	if err := list.Rename(title); err != nil {
		return nil, err
	}
	if err := s.lists.Update(ctx, list); err != nil {
		return nil, NewServiceError("rename_list", "failed to update todo list", err)
	}
	return list, nil
}

func (s *todoListServiceImpl) DeleteList(ctx context.Context, userID, listID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.owned(ctx, userID, listID); err != nil {
		return err
	}
	if err := s.lists.Delete(ctx, listID); err != nil {
		return NewServiceError("delete_list", "failed to delete todo list", err)
	}

	log.Info("todo list deleted",
		slog.String("list_id", listID.String()),
		slog.String("user_id", userID.String()))
	return nil
}
