package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/phrazzld/todo-api/internal/store"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const todoItemColumns = `id, todo_list_id, description, completed, created_at, updated_at`

var tracer = otel.Tracer("github.com/phrazzld/todo-api/internal/platform/sqlstore")

// TodoItemStore implements store.TodoItemStore.
type TodoItemStore struct {
	db      store.DBTX
	dialect Dialect
	logger  *slog.Logger
}

// NewTodoItemStore creates a TodoItemStore over a connection or transaction.
func NewTodoItemStore(db store.DBTX, dialect Dialect, logger *slog.Logger) *TodoItemStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if dialect == nil {
		panic("dialect cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &TodoItemStore{
		db:      db,
		dialect: dialect,
		logger:  logger.With(slog.String("component", "todo_item_store")),
	}
}

var _ store.TodoItemStore = (*TodoItemStore)(nil)

// ListByList implements store.TodoItemStore.ListByList.
func (s *TodoItemStore) ListByList(
	ctx context.Context,
	listID uuid.UUID,
	page store.Page,
) ([]*domain.TodoItem, int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var total int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM todo_items WHERE todo_list_id = $1`, listID).Scan(&total)
	if err != nil {
		log.Error("failed to count todo items",
			slog.String("error", err.Error()),
			slog.String("list_id", listID.String()))
		return nil, 0, s.dialect.MapError(err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+todoItemColumns+` FROM todo_items
		WHERE todo_list_id = $1
		ORDER BY created_at, id
		LIMIT $2 OFFSET $3
	`, listID, page.Limit, page.Offset)
	if err != nil {
		log.Error("failed to list todo items",
			slog.String("error", err.Error()),
			slog.String("list_id", listID.String()))
		return nil, 0, s.dialect.MapError(err)
	}

	items, err := s.collect(rows, page.Limit)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// CreateMultiple implements store.TodoItemStore.CreateMultiple. Every item is
// validated before the first insert.
func (s *TodoItemStore) CreateMultiple(ctx context.Context, items []*domain.TodoItem) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if len(items) == 0 {
		return nil
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			log.Warn("todo item validation failed during create",
				slog.String("error", err.Error()),
				slog.String("item_id", item.ID.String()))
			return err
		}
	}

	ctx, span := tracer.Start(ctx, "sqlstore.TodoItemStore.CreateMultiple",
		trace.WithAttributes(attribute.Int("items.count", len(items))))
	defer span.End()

	stmt, err := s.db.PrepareContext(ctx, `
		INSERT INTO todo_items (id, todo_list_id, description, completed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`)
	if err != nil {
		log.Error("failed to prepare todo item insert", slog.String("error", err.Error()))
		return s.dialect.MapError(err)
	}
	defer func() { _ = stmt.Close() }()

	for _, item := range items {
		_, err := stmt.ExecContext(ctx,
			item.ID, item.ListID, item.Description, item.Completed, item.CreatedAt, item.UpdatedAt)
		if err != nil {
			log.Error("failed to insert todo item",
				slog.String("error", err.Error()),
				slog.String("item_id", item.ID.String()),
				slog.String("list_id", item.ListID.String()))
			return s.dialect.MapError(err)
		}
	}

	log.Debug("todo items created", slog.Int("count", len(items)))
	return nil
}

// FindOwned implements store.TodoItemStore.FindOwned.
func (s *TodoItemStore) FindOwned(
	ctx context.Context,
	userID uuid.UUID,
	ids []uuid.UUID,
) ([]*domain.TodoItem, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return nil, nil
	}

	ctx, span := tracer.Start(ctx, "sqlstore.TodoItemStore.FindOwned",
		trace.WithAttributes(attribute.Int("ids.count", len(ids))))
	defer span.End()

	chunks := chunkIDs(ids, maxIDsPerStatement)
	var items []*domain.TodoItem
	for _, chunk := range chunks {
		query := `
			SELECT i.id, i.todo_list_id, i.description, i.completed, i.created_at, i.updated_at
			FROM todo_items i
			JOIN todo_lists l ON l.id = i.todo_list_id
			WHERE l.user_id = $1 AND i.id IN (` + placeholders(2, len(chunk)) + `)
			ORDER BY i.created_at, i.id` + s.dialect.LockClause()

		args := append([]any{userID}, idArgs(chunk)...)
		rows, err := s.db.QueryContext(ctx, query, args...)
		if err != nil {
			log.Error("failed to fetch owned todo items",
				slog.String("error", err.Error()),
				slog.String("user_id", userID.String()))
			return nil, s.dialect.MapError(err)
		}

		owned, err := s.collect(rows, len(chunk))
		if err != nil {
			return nil, err
		}
		items = append(items, owned...)
	}
	if len(chunks) > 1 {
		slices.SortFunc(items, func(a, b *domain.TodoItem) int {
			if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
				return c
			}
			return strings.Compare(a.ID.String(), b.ID.String())
		})
	}

	span.SetAttributes(attribute.Int("items.owned", len(items)))
	log.Debug("fetched owned todo items",
		slog.Int("requested", len(ids)),
		slog.Int("owned", len(items)))
	return items, nil
}

// UpdateMultiple implements store.TodoItemStore.UpdateMultiple. Items are
// written one statement each and read back through RETURNING, so the result
// reflects what was persisted.
func (s *TodoItemStore) UpdateMultiple(
	ctx context.Context,
	items []*domain.TodoItem,
) ([]*domain.TodoItem, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if len(items) == 0 {
		return nil, nil
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
	}

	ctx, span := tracer.Start(ctx, "sqlstore.TodoItemStore.UpdateMultiple",
		trace.WithAttributes(attribute.Int("items.count", len(items))))
	defer span.End()

	stmt, err := s.db.PrepareContext(ctx, `
		UPDATE todo_items
		SET description = $1, completed = $2, updated_at = $3
		WHERE id = $4
		RETURNING `+todoItemColumns)
	if err != nil {
		log.Error("failed to prepare todo item update", slog.String("error", err.Error()))
		return nil, s.dialect.MapError(err)
	}
	defer func() { _ = stmt.Close() }()

	updated := make([]*domain.TodoItem, 0, len(items))
	for _, item := range items {
		row := stmt.QueryRowContext(ctx, item.Description, item.Completed, item.UpdatedAt, item.ID)
		persisted, err := scanTodoItem(row)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, store.NewStoreError("todo_item", "update_multiple",
					fmt.Sprintf("item %s vanished during update", item.ID), store.ErrTodoItemNotFound)
			}
			log.Error("failed to update todo item",
				slog.String("error", err.Error()),
				slog.String("item_id", item.ID.String()))
			return nil, s.dialect.MapError(err)
		}
		updated = append(updated, persisted)
	}

	log.Debug("todo items updated", slog.Int("count", len(updated)))
	return updated, nil
}

// DeleteMultiple implements store.TodoItemStore.DeleteMultiple.
func (s *TodoItemStore) DeleteMultiple(ctx context.Context, ids []uuid.UUID) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return 0, nil
	}

	var deleted int64
	for _, chunk := range chunkIDs(ids, maxIDsPerStatement) {
		result, err := s.db.ExecContext(ctx,
			`DELETE FROM todo_items WHERE id IN (`+placeholders(1, len(chunk))+`)`, idArgs(chunk)...)
		if err != nil {
			log.Error("failed to delete todo items",
				slog.String("error", err.Error()),
				slog.Int("count", len(chunk)))
			return 0, s.dialect.MapError(err)
		}

		n, err := result.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("failed to get rows affected: %w", err)
		}
		deleted += n
	}

	log.Debug("todo items deleted", slog.Int64("deleted", deleted))
	return deleted, nil
}

// WithTx implements store.TodoItemStore.WithTx.
func (s *TodoItemStore) WithTx(tx *sql.Tx) store.TodoItemStore {
	return &TodoItemStore{db: tx, dialect: s.dialect, logger: s.logger}
}

func (s *TodoItemStore) collect(rows *sql.Rows, capacity int) ([]*domain.TodoItem, error) {
	defer func() { _ = rows.Close() }()

	items := make([]*domain.TodoItem, 0, capacity)
	for rows.Next() {
		item, err := scanTodoItem(rows)
		if err != nil {
			return nil, s.dialect.MapError(err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, s.dialect.MapError(err)
	}
	return items, nil
}

func scanTodoItem(row rowScanner) (*domain.TodoItem, error) {
	var i domain.TodoItem
	err := row.Scan(
		&i.ID,
		&i.ListID,
		&i.Description,
		&i.Completed,
		scanTime(&i.CreatedAt),
		scanTime(&i.UpdatedAt),
	)
	if err != nil {
		return nil, err
	}
	return &i, nil
}
