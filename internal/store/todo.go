package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/todo-api/internal/domain"
)

// TodoListStore defines the interface for todo list persistence.
type TodoListStore interface {
	// Create saves a new list.
	// Returns store.ErrInvalidEntity if the owner does not exist.
	Create(ctx context.Context, list *domain.TodoList) error

	// GetByID retrieves a list regardless of owner; ownership is checked by the caller.
	// Returns ErrTodoListNotFound if the list does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.TodoList, error)

	// ListByUser returns a page of the user's lists plus the user's total list count.
	ListByUser(ctx context.Context, userID uuid.UUID, page Page) ([]*domain.TodoList, int, error)

	// Update persists the list's title.
	// Returns ErrTodoListNotFound if the list does not exist.
	Update(ctx context.Context, list *domain.TodoList) error

	// Delete removes the list and its items.
	// Returns ErrTodoListNotFound if the list does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new TodoListStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) TodoListStore
}

// TodoItemStore defines the interface for todo item persistence, including
// the set-based operations used by bulk reconciliation.
type TodoItemStore interface {
	// ListByList returns a page of the list's items plus the list's total item count.
	ListByList(ctx context.Context, listID uuid.UUID, page Page) ([]*domain.TodoItem, int, error)

	// CreateMultiple inserts all items. It performs no ownership check; callers
	// must have authorized the parent list.
	CreateMultiple(ctx context.Context, items []*domain.TodoItem) error

	// FindOwned returns the subset of ids that exist and belong to lists owned
	// by userID. Missing and foreign ids are omitted without error. Where the
	// backend supports it the rows stay locked until the transaction ends.
	FindOwned(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]*domain.TodoItem, error)

	// UpdateMultiple writes description and completed for every item and
	// returns the rows as persisted.
	UpdateMultiple(ctx context.Context, items []*domain.TodoItem) ([]*domain.TodoItem, error)

	// DeleteMultiple removes exactly the given ids and reports how many rows went away.
	DeleteMultiple(ctx context.Context, ids []uuid.UUID) (int64, error)

	// WithTx returns a new TodoItemStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) TodoItemStore
}

// DesignationStore defines the interface for designation persistence.
type DesignationStore interface {
	// Create saves a new designation.
	Create(ctx context.Context, d *domain.Designation) error

	// GetByID retrieves a designation regardless of owner.
	// Returns ErrDesignationNotFound if it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Designation, error)

	// ListByUser returns a page of the user's designations plus the total count.
	ListByUser(ctx context.Context, userID uuid.UUID, page Page) ([]*domain.Designation, int, error)

	// Update persists the designation's name.
	Update(ctx context.Context, d *domain.Designation) error

	// Delete removes the designation.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new DesignationStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) DesignationStore
}
