package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServiceError(t *testing.T) {
	assert.NoError(t, NewServiceError("op", "msg", nil))

	tests := []struct {
		name        string
		err         error
		passThrough bool
	}{
		{"validation", domain.NewValidationError("title", "is not allowed to be empty", nil), true},
		{"not found", fmt.Errorf("get: %w", store.ErrTodoListNotFound), true},
		{"not owned", ErrNotOwned, true},
		{"database failure", errors.New("connection reset"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewServiceError("update_items", "failed to update items", tt.err)
			assert.ErrorIs(t, got, tt.err)

			var svcErr *ServiceError
			assert.Equal(t, !tt.passThrough, errors.As(got, &svcErr))
		})
	}

	wrapped := &ServiceError{Operation: "delete_list", Message: "failed", Err: errors.New("boom")}
	assert.Equal(t, "delete_list failed: failed: boom", wrapped.Error())
	bare := &ServiceError{Operation: "create_service", Message: "db cannot be nil"}
	assert.Equal(t, "create_service failed: db cannot be nil", bare.Error())
}

func TestAuthorize(t *testing.T) {
	owner := uuid.New()
	list, err := domain.NewTodoList(owner, "Groceries")
	require.NoError(t, err)

	got, err := Authorize(owner, list)
	require.NoError(t, err)
	assert.Same(t, list, got)

	got, err = Authorize(uuid.New(), list)
	assert.ErrorIs(t, err, ErrNotOwned)
	assert.Nil(t, got)

	d, err := domain.NewDesignation(owner, "Engineer")
	require.NoError(t, err)
	_, err = Authorize(uuid.New(), d)
	assert.ErrorIs(t, err, ErrNotOwned)
}

func TestRelabel(t *testing.T) {
	err := relabel(domain.NewValidationError("description", "is not allowed to be empty", nil),
		func(field string) string { return "[2]." + field })
	assert.EqualError(t, err, `"[2].description" is not allowed to be empty`)
	assert.ErrorIs(t, err, domain.ErrValidation)

	plain := errors.New("plain")
	assert.Same(t, plain, relabel(plain, func(string) string { return "x" }))
}
