package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/store"
)

// MockTodoListStore implements store.TodoListStore for testing
type MockTodoListStore struct {
	CreateFn     func(ctx context.Context, list *domain.TodoList) error
	GetByIDFn    func(ctx context.Context, id uuid.UUID) (*domain.TodoList, error)
	ListByUserFn func(ctx context.Context, userID uuid.UUID, page store.Page) ([]*domain.TodoList, int, error)
	UpdateFn     func(ctx context.Context, list *domain.TodoList) error
	DeleteFn     func(ctx context.Context, id uuid.UUID) error

	// Lists backs the default implementation.
	Lists map[uuid.UUID]*domain.TodoList
}

// NewMockTodoListStore creates a mock holding lists.
func NewMockTodoListStore(lists ...*domain.TodoList) *MockTodoListStore {
	m := &MockTodoListStore{Lists: make(map[uuid.UUID]*domain.TodoList)}
	for _, l := range lists {
		m.Lists[l.ID] = l
	}
	return m
}

var _ store.TodoListStore = (*MockTodoListStore)(nil)

func (m *MockTodoListStore) Create(ctx context.Context, list *domain.TodoList) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, list)
	}
	m.Lists[list.ID] = list
	return nil
}

func (m *MockTodoListStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.TodoList, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	if l, ok := m.Lists[id]; ok {
		return l, nil
	}
	return nil, store.ErrTodoListNotFound
}

func (m *MockTodoListStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	page store.Page,
) ([]*domain.TodoList, int, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID, page)
	}
	var out []*domain.TodoList
	for _, l := range m.Lists {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	return out, len(out), nil
}

func (m *MockTodoListStore) Update(ctx context.Context, list *domain.TodoList) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, list)
	}
	if _, ok := m.Lists[list.ID]; !ok {
		return store.ErrTodoListNotFound
	}
	m.Lists[list.ID] = list
	return nil
}

func (m *MockTodoListStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	if _, ok := m.Lists[id]; !ok {
		return store.ErrTodoListNotFound
	}
	delete(m.Lists, id)
	return nil
}

func (m *MockTodoListStore) WithTx(tx *sql.Tx) store.TodoListStore {
	return m
}
