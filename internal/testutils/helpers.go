package testutils

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/store"
	"github.com/stretchr/testify/require"
)

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// MustInsertUser creates and stores a user. A random suffix is appended when
// username is empty.
func MustInsertUser(ctx context.Context, t *testing.T, users store.UserStore, username string) *domain.User {
	t.Helper()

	if username == "" {
		username = "user-" + uuid.NewString()[:8]
	}
	user, err := domain.NewUser(username)
	require.NoError(t, err, "Failed to build test user")
	require.NoError(t, users.Create(ctx, user), "Failed to insert test user")
	return user
}

// MustInsertTodoList creates and stores a list owned by userID.
func MustInsertTodoList(
	ctx context.Context,
	t *testing.T,
	lists store.TodoListStore,
	userID uuid.UUID,
	title string,
) *domain.TodoList {
	t.Helper()

	list, err := domain.NewTodoList(userID, title)
	require.NoError(t, err, "Failed to build test todo list")
	require.NoError(t, lists.Create(ctx, list), "Failed to insert test todo list")
	return list
}

// MustInsertTodoItems creates and stores one item per description in listID.
func MustInsertTodoItems(
	ctx context.Context,
	t *testing.T,
	items store.TodoItemStore,
	listID uuid.UUID,
	descriptions ...string,
) []*domain.TodoItem {
	t.Helper()

	created := make([]*domain.TodoItem, 0, len(descriptions))
	for _, desc := range descriptions {
		item, err := domain.NewTodoItem(listID, desc)
		require.NoError(t, err, "Failed to build test todo item")
		created = append(created, item)
	}
	require.NoError(t, items.CreateMultiple(ctx, created), "Failed to insert test todo items")
	return created
}

// MustInsertDesignation creates and stores a designation owned by userID.
func MustInsertDesignation(
	ctx context.Context,
	t *testing.T,
	designations store.DesignationStore,
	userID uuid.UUID,
	name string,
) *domain.Designation {
	t.Helper()

	d, err := domain.NewDesignation(userID, name)
	require.NoError(t, err, "Failed to build test designation")
	require.NoError(t, designations.Create(ctx, d), "Failed to insert test designation")
	return d
}

// Ptr returns a pointer to v, for building partial patches.
func Ptr[T any](v T) *T {
	return &v
}
