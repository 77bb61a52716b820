package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/phrazzld/todo-api/internal/store"
)

const todoListColumns = `id, user_id, title, created_at, updated_at`

// TodoListStore implements store.TodoListStore.
type TodoListStore struct {
	db      store.DBTX
	dialect Dialect
	logger  *slog.Logger
}

// NewTodoListStore creates a TodoListStore over a connection or transaction.
func NewTodoListStore(db store.DBTX, dialect Dialect, logger *slog.Logger) *TodoListStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if dialect == nil {
		panic("dialect cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &TodoListStore{
		db:      db,
		dialect: dialect,
		logger:  logger.With(slog.String("component", "todo_list_store")),
	}
}

var _ store.TodoListStore = (*TodoListStore)(nil)

// Create implements store.TodoListStore.Create.
func (s *TodoListStore) Create(ctx context.Context, list *domain.TodoList) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := list.Validate(); err != nil {
		log.Warn("todo list validation failed during create",
			slog.String("error", err.Error()),
			slog.String("list_id", list.ID.String()))
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO todo_lists (id, user_id, title, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`, list.ID, list.UserID, list.Title, list.CreatedAt, list.UpdatedAt)
	if err != nil {
		log.Error("failed to create todo list",
			slog.String("error", err.Error()),
			slog.String("list_id", list.ID.String()),
			slog.String("user_id", list.UserID.String()))
		return s.dialect.MapError(err)
	}

	log.Debug("todo list created",
		slog.String("list_id", list.ID.String()),
		slog.String("user_id", list.UserID.String()))
	return nil
}

// GetByID implements store.TodoListStore.GetByID.
func (s *TodoListStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.TodoList, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	list, err := scanTodoList(s.db.QueryRowContext(ctx,
		`SELECT `+todoListColumns+` FROM todo_lists WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("todo list not found", slog.String("list_id", id.String()))
			return nil, store.ErrTodoListNotFound
		}
		log.Error("failed to get todo list",
			slog.String("error", err.Error()),
			slog.String("list_id", id.String()))
		return nil, s.dialect.MapError(err)
	}
	return list, nil
}

// ListByUser implements store.TodoListStore.ListByUser.
func (s *TodoListStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	page store.Page,
) ([]*domain.TodoList, int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var total int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM todo_lists WHERE user_id = $1`, userID).Scan(&total)
	if err != nil {
		log.Error("failed to count todo lists",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, 0, s.dialect.MapError(err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+todoListColumns+` FROM todo_lists
		WHERE user_id = $1
		ORDER BY created_at, id
		LIMIT $2 OFFSET $3
	`, userID, page.Limit, page.Offset)
	if err != nil {
		log.Error("failed to list todo lists",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, 0, s.dialect.MapError(err)
	}
	defer func() { _ = rows.Close() }()

	lists := make([]*domain.TodoList, 0, page.Limit)
	for rows.Next() {
		list, err := scanTodoList(rows)
		if err != nil {
			return nil, 0, s.dialect.MapError(err)
		}
		lists = append(lists, list)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, s.dialect.MapError(err)
	}
	return lists, total, nil
}

// Update implements store.TodoListStore.Update.
func (s *TodoListStore) Update(ctx context.Context, list *domain.TodoList) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := list.Validate(); err != nil {
		return err
	}
	if list.UpdatedAt.IsZero() {
		list.UpdatedAt = time.Now().UTC()
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE todo_lists SET title = $1, updated_at = $2 WHERE id = $3`,
		list.Title, list.UpdatedAt, list.ID)
	if err != nil {
		log.Error("failed to update todo list",
			slog.String("error", err.Error()),
			slog.String("list_id", list.ID.String()))
		return s.dialect.MapError(err)
	}
	return checkRowsAffected(result, store.ErrTodoListNotFound)
}

// Delete implements store.TodoListStore.Delete. Items go with the list by
// ON DELETE CASCADE.
func (s *TodoListStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM todo_lists WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete todo list",
			slog.String("error", err.Error()),
			slog.String("list_id", id.String()))
		return s.dialect.MapError(err)
	}
	return checkRowsAffected(result, store.ErrTodoListNotFound)
}

// WithTx implements store.TodoListStore.WithTx.
func (s *TodoListStore) WithTx(tx *sql.Tx) store.TodoListStore {
	return &TodoListStore{db: tx, dialect: s.dialect, logger: s.logger}
}

func scanTodoList(row rowScanner) (*domain.TodoList, error) {
	var l domain.TodoList
	err := row.Scan(&l.ID, &l.UserID, &l.Title, scanTime(&l.CreatedAt), scanTime(&l.UpdatedAt))
	if err != nil {
		return nil, err
	}
	return &l, nil
}
