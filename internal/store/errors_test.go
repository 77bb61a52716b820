package store

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsNotFoundError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"generic error", errors.New("some error"), false},
		{"ErrNotFound", ErrNotFound, true},
		{"wrapped ErrNotFound", fmt.Errorf("failed to do something: %w", ErrNotFound), true},
		{"ErrUserNotFound", ErrUserNotFound, true},
		{"ErrTodoListNotFound", ErrTodoListNotFound, true},
		{"ErrTodoItemNotFound", ErrTodoItemNotFound, true},
		{"wrapped ErrDesignationNotFound", fmt.Errorf("get: %w", ErrDesignationNotFound), true},
		{"ErrDuplicate", ErrDuplicate, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNotFoundError(tt.err); got != tt.expected {
				t.Errorf("IsNotFoundError() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestEntityNotFoundErrorsAreDistinct(t *testing.T) {
	if errors.Is(ErrTodoListNotFound, ErrDesignationNotFound) {
		t.Error("todo list and designation not-found errors must be distinguishable")
	}
	if errors.Is(ErrUserNotFound, ErrTodoListNotFound) {
		t.Error("user and todo list not-found errors must be distinguishable")
	}
}

func TestIsDuplicateError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"generic error", errors.New("some error"), false},
		{"ErrDuplicate", ErrDuplicate, true},
		{"ErrUsernameExists", ErrUsernameExists, true},
		{"wrapped ErrUsernameExists", fmt.Errorf("failed to create user: %w", ErrUsernameExists), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDuplicateError(tt.err); got != tt.expected {
				t.Errorf("IsDuplicateError() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestStoreError(t *testing.T) {
	originalErr := errors.New("database connection failed")
	storeErr := NewStoreError("todo_item", "update_multiple", "database error", originalErr)

	expected := "update_multiple operation on todo_item failed: database error: database connection failed"
	if got := storeErr.Error(); got != expected {
		t.Errorf("StoreError.Error() = %v, want %v", got, expected)
	}

	if !errors.Is(storeErr, originalErr) {
		t.Errorf("errors.Is() not recognizing the wrapped error")
	}

	bare := NewStoreError("user", "create", "no rows", nil)
	if got := bare.Error(); got != "create operation on user failed: no rows" {
		t.Errorf("StoreError.Error() = %v", got)
	}
}

func TestNewPage(t *testing.T) {
	tests := []struct {
		offset, limit int
		want          Page
	}{
		{0, 0, Page{0, DefaultLimit}},
		{-5, 20, Page{0, 20}},
		{7, -1, Page{7, DefaultLimit}},
		{0, 1000, Page{0, MaxLimit}},
		{3, 4, Page{3, 4}},
	}
	for _, tt := range tests {
		if got := NewPage(tt.offset, tt.limit); got != tt.want {
			t.Errorf("NewPage(%d, %d) = %+v, want %+v", tt.offset, tt.limit, got, tt.want)
		}
	}
}
