package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/store"
)

// MockDesignationStore implements store.DesignationStore for testing
type MockDesignationStore struct {
	CreateFn     func(ctx context.Context, d *domain.Designation) error
	GetByIDFn    func(ctx context.Context, id uuid.UUID) (*domain.Designation, error)
	ListByUserFn func(ctx context.Context, userID uuid.UUID, page store.Page) ([]*domain.Designation, int, error)
	UpdateFn     func(ctx context.Context, d *domain.Designation) error
	DeleteFn     func(ctx context.Context, id uuid.UUID) error

	// Designations backs the default implementation.
	Designations map[uuid.UUID]*domain.Designation
}

// NewMockDesignationStore creates a mock holding designations.
func NewMockDesignationStore(designations ...*domain.Designation) *MockDesignationStore {
	m := &MockDesignationStore{Designations: make(map[uuid.UUID]*domain.Designation)}
	for _, d := range designations {
		m.Designations[d.ID] = d
	}
	return m
}

var _ store.DesignationStore = (*MockDesignationStore)(nil)

func (m *MockDesignationStore) Create(ctx context.Context, d *domain.Designation) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, d)
	}
	m.Designations[d.ID] = d
	return nil
}

func (m *MockDesignationStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Designation, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	if d, ok := m.Designations[id]; ok {
		return d, nil
	}
	return nil, store.ErrDesignationNotFound
}

func (m *MockDesignationStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	page store.Page,
) ([]*domain.Designation, int, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID, page)
	}
	var out []*domain.Designation
	for _, d := range m.Designations {
		if d.UserID == userID {
			out = append(out, d)
		}
	}
	return out, len(out), nil
}

func (m *MockDesignationStore) Update(ctx context.Context, d *domain.Designation) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, d)
	}
	if _, ok := m.Designations[d.ID]; !ok {
		return store.ErrDesignationNotFound
	}
	m.Designations[d.ID] = d
	return nil
}

func (m *MockDesignationStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	if _, ok := m.Designations[id]; !ok {
		return store.ErrDesignationNotFound
	}
	delete(m.Designations, id)
	return nil
}

func (m *MockDesignationStore) WithTx(tx *sql.Tx) store.DesignationStore {
	return m
}
