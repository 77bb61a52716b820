package sqlstore_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/platform/sqlite"
	"github.com/phrazzld/todo-api/internal/platform/sqlstore"
	"github.com/phrazzld/todo-api/internal/store"
	"github.com/phrazzld/todo-api/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// storeFactory hands each subtest a clean database.
type storeFactory func(t *testing.T) (*sql.DB, sqlstore.Dialect)

func sqliteFactory(t *testing.T) (*sql.DB, sqlstore.Dialect) {
	return testutils.NewSQLiteDB(t), sqlite.Dialect{}
}

func TestStores_SQLite(t *testing.T) {
	runStoreSuite(t, sqliteFactory)
}

// runStoreSuite exercises every store against one backend. The PostgreSQL
// integration test runs the same suite.
func runStoreSuite(t *testing.T, newDB storeFactory) {
	t.Run("users", func(t *testing.T) { testUserStore(t, newDB) })
	t.Run("todo lists", func(t *testing.T) { testTodoListStore(t, newDB) })
	t.Run("todo items", func(t *testing.T) { testTodoItemStore(t, newDB) })
	t.Run("designations", func(t *testing.T) { testDesignationStore(t, newDB) })
	t.Run("transactions", func(t *testing.T) { testTransactions(t, newDB) })
}

func testUserStore(t *testing.T, newDB storeFactory) {
	ctx := context.Background()
	db, dialect := newDB(t)
	stores := testutils.CreateTestStores(db, dialect)

	t.Run("seed user exists", func(t *testing.T) {
		seed, err := stores.Users.GetByUsername(ctx, "user1")
		require.NoError(t, err)
		assert.NotEmpty(t, seed.APIKey)
		assert.NotEqual(t, uuid.Nil, seed.ID)
	})

	alice := testutils.MustInsertUser(ctx, t, stores.Users, "alice-"+uuid.NewString()[:6])

	t.Run("lookups", func(t *testing.T) {
		byID, err := stores.Users.GetByID(ctx, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, alice.Username, byID.Username)
		assert.WithinDuration(t, alice.CreatedAt, byID.CreatedAt, time.Millisecond)

		byKey, err := stores.Users.GetByAPIKey(ctx, alice.APIKey)
		require.NoError(t, err)
		assert.Equal(t, alice.ID, byKey.ID)

		_, err = stores.Users.GetByAPIKey(ctx, "not-a-key")
		assert.ErrorIs(t, err, store.ErrUserNotFound)

		_, err = stores.Users.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})

	t.Run("duplicate username", func(t *testing.T) {
		dup, err := domain.NewUser(alice.Username)
		require.NoError(t, err)
		err = stores.Users.Create(ctx, dup)
		assert.ErrorIs(t, err, store.ErrUsernameExists)
		assert.ErrorIs(t, err, store.ErrDuplicate)
	})

	t.Run("invalid user never reaches the database", func(t *testing.T) {
		err := stores.Users.Create(ctx, &domain.User{ID: uuid.New(), Username: "ab", APIKey: "k"})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("list pages through users", func(t *testing.T) {
		users, total, err := stores.Users.List(ctx, store.NewPage(0, 1))
		require.NoError(t, err)
		assert.GreaterOrEqual(t, total, 2)
		assert.Len(t, users, 1)
	})

	t.Run("delete cascades", func(t *testing.T) {
		list := testutils.MustInsertTodoList(ctx, t, stores.TodoLists, alice.ID, "Groceries")
		testutils.MustInsertTodoItems(ctx, t, stores.TodoItems, list.ID, "milk", "eggs")

		require.NoError(t, stores.Users.Delete(ctx, alice.ID))
		_, err := stores.TodoLists.GetByID(ctx, list.ID)
		assert.ErrorIs(t, err, store.ErrTodoListNotFound)

		assert.ErrorIs(t, stores.Users.Delete(ctx, alice.ID), store.ErrUserNotFound)
	})
}

func testTodoListStore(t *testing.T, newDB storeFactory) {
	ctx := context.Background()
	db, dialect := newDB(t)
	stores := testutils.CreateTestStores(db, dialect)

	owner := testutils.MustInsertUser(ctx, t, stores.Users, "")
	other := testutils.MustInsertUser(ctx, t, stores.Users, "")

	for i := 0; i < 3; i++ {
		testutils.MustInsertTodoList(ctx, t, stores.TodoLists, owner.ID, fmt.Sprintf("List %d", i))
	}
	testutils.MustInsertTodoList(ctx, t, stores.TodoLists, other.ID, "Not yours")

	t.Run("list by user is scoped and paged", func(t *testing.T) {
		lists, total, err := stores.TodoLists.ListByUser(ctx, owner.ID, store.NewPage(1, 1))
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		require.Len(t, lists, 1)
		assert.Equal(t, "List 1", lists[0].Title)
		assert.Equal(t, owner.ID, lists[0].UserID)
	})

	t.Run("unknown owner is rejected", func(t *testing.T) {
		list, err := domain.NewTodoList(uuid.New(), "Orphan")
		require.NoError(t, err)
		assert.ErrorIs(t, stores.TodoLists.Create(ctx, list), store.ErrInvalidEntity)
	})

	t.Run("update and delete", func(t *testing.T) {
		list := testutils.MustInsertTodoList(ctx, t, stores.TodoLists, owner.ID, "Before")
		require.NoError(t, list.Rename("After"))
		require.NoError(t, stores.TodoLists.Update(ctx, list))

		got, err := stores.TodoLists.GetByID(ctx, list.ID)
		require.NoError(t, err)
		assert.Equal(t, "After", got.Title)

		require.NoError(t, stores.TodoLists.Delete(ctx, list.ID))
		assert.ErrorIs(t, stores.TodoLists.Delete(ctx, list.ID), store.ErrTodoListNotFound)

		missing := &domain.TodoList{ID: uuid.New(), UserID: owner.ID, Title: "Ghost"}
		assert.ErrorIs(t, stores.TodoLists.Update(ctx, missing), store.ErrTodoListNotFound)
	})
}

func testTodoItemStore(t *testing.T, newDB storeFactory) {
	ctx := context.Background()
	db, dialect := newDB(t)
	stores := testutils.CreateTestStores(db, dialect)

	owner := testutils.MustInsertUser(ctx, t, stores.Users, "")
	other := testutils.MustInsertUser(ctx, t, stores.Users, "")
	ownList := testutils.MustInsertTodoList(ctx, t, stores.TodoLists, owner.ID, "Mine")
	foreignList := testutils.MustInsertTodoList(ctx, t, stores.TodoLists, other.ID, "Theirs")

	own := testutils.MustInsertTodoItems(ctx, t, stores.TodoItems, ownList.ID, "first", "second", "third")
	foreign := testutils.MustInsertTodoItems(ctx, t, stores.TodoItems, foreignList.ID, "hands off")

	t.Run("list by list", func(t *testing.T) {
		items, total, err := stores.TodoItems.ListByList(ctx, ownList.ID, store.NewPage(0, 2))
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		assert.Len(t, items, 2)
		assert.False(t, items[0].Completed)
	})

	t.Run("find owned drops foreign and missing ids", func(t *testing.T) {
		ids := []uuid.UUID{own[0].ID, foreign[0].ID, uuid.New(), own[2].ID, own[0].ID}
		items, err := stores.TodoItems.FindOwned(ctx, owner.ID, ids)
		require.NoError(t, err)

		got := make([]uuid.UUID, 0, len(items))
		for _, item := range items {
			got = append(got, item.ID)
		}
		assert.ElementsMatch(t, []uuid.UUID{own[0].ID, own[2].ID}, got)

		none, err := stores.TodoItems.FindOwned(ctx, owner.ID, nil)
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("update multiple returns persisted rows", func(t *testing.T) {
		a := *own[0]
		a.Description = "first, revised"
		a.Completed = true
		a.UpdatedAt = time.Now().UTC()

		updated, err := stores.TodoItems.UpdateMultiple(ctx, []*domain.TodoItem{&a})
		require.NoError(t, err)
		require.Len(t, updated, 1)
		assert.Equal(t, "first, revised", updated[0].Description)
		assert.True(t, updated[0].Completed)
		assert.Equal(t, ownList.ID, updated[0].ListID)
		assert.WithinDuration(t, own[0].CreatedAt, updated[0].CreatedAt, time.Millisecond)
	})

	t.Run("update multiple rejects invalid items", func(t *testing.T) {
		bad := *own[1]
		bad.Description = "no"
		_, err := stores.TodoItems.UpdateMultiple(ctx, []*domain.TodoItem{&bad})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("delete multiple", func(t *testing.T) {
		n, err := stores.TodoItems.DeleteMultiple(ctx, []uuid.UUID{own[1].ID, uuid.New()})
		require.NoError(t, err)
		assert.EqualValues(t, 1, n)

		n, err = stores.TodoItems.DeleteMultiple(ctx, nil)
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("batches span several statements", func(t *testing.T) {
		ids := []uuid.UUID{own[0].ID, foreign[0].ID}
		for i := 0; i < 2500; i++ {
			ids = append(ids, uuid.New())
		}
		ids = append(ids, own[2].ID)

		items, err := stores.TodoItems.FindOwned(ctx, owner.ID, ids)
		require.NoError(t, err)
		got := make([]uuid.UUID, 0, len(items))
		for _, item := range items {
			got = append(got, item.ID)
		}
		assert.ElementsMatch(t, []uuid.UUID{own[0].ID, own[2].ID}, got)

		n, err := stores.TodoItems.DeleteMultiple(ctx, ids[2:])
		require.NoError(t, err)
		assert.EqualValues(t, 1, n)
	})

	t.Run("items need an existing list", func(t *testing.T) {
		item, err := domain.NewTodoItem(uuid.New(), "orphan")
		require.NoError(t, err)
		err = stores.TodoItems.CreateMultiple(ctx, []*domain.TodoItem{item})
		assert.ErrorIs(t, err, store.ErrInvalidEntity)
	})
}

func testDesignationStore(t *testing.T, newDB storeFactory) {
	ctx := context.Background()
	db, dialect := newDB(t)
	stores := testutils.CreateTestStores(db, dialect)

	owner := testutils.MustInsertUser(ctx, t, stores.Users, "")
	d := testutils.MustInsertDesignation(ctx, t, stores.Designations, owner.ID, "Engineer")

	got, err := stores.Designations.GetByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, "Engineer", got.Name)
	assert.Equal(t, owner.ID, got.OwnerID())

	require.NoError(t, got.Rename("Architect"))
	require.NoError(t, stores.Designations.Update(ctx, got))

	all, total, err := stores.Designations.ListByUser(ctx, owner.ID, store.NewPage(0, 0))
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, all, 1)
	assert.Equal(t, "Architect", all[0].Name)

	require.NoError(t, stores.Designations.Delete(ctx, d.ID))
	_, err = stores.Designations.GetByID(ctx, d.ID)
	assert.ErrorIs(t, err, store.ErrDesignationNotFound)
}

func testTransactions(t *testing.T, newDB storeFactory) {
	ctx := context.Background()
	db, dialect := newDB(t)
	stores := testutils.CreateTestStores(db, dialect)
	owner := testutils.MustInsertUser(ctx, t, stores.Users, "")

	t.Run("error rolls back", func(t *testing.T) {
		var listID uuid.UUID
		boom := fmt.Errorf("boom")
		err := store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
			list := testutils.MustInsertTodoList(ctx, t, stores.TodoLists.WithTx(tx), owner.ID, "Doomed")
			listID = list.ID
			return boom
		})
		assert.ErrorIs(t, err, boom)

		_, err = stores.TodoLists.GetByID(ctx, listID)
		assert.ErrorIs(t, err, store.ErrTodoListNotFound)
	})

	t.Run("panic rolls back and propagates", func(t *testing.T) {
		var listID uuid.UUID
		assert.Panics(t, func() {
			_ = store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
				list := testutils.MustInsertTodoList(ctx, t, stores.TodoLists.WithTx(tx), owner.ID, "Panicky")
				listID = list.ID
				panic("kaboom")
			})
		})

		_, err := stores.TodoLists.GetByID(ctx, listID)
		assert.ErrorIs(t, err, store.ErrTodoListNotFound)
	})

	t.Run("success commits", func(t *testing.T) {
		var listID uuid.UUID
		err := store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
			listID = testutils.MustInsertTodoList(ctx, t, stores.TodoLists.WithTx(tx), owner.ID, "Kept").ID
			return nil
		})
		require.NoError(t, err)

		_, err = stores.TodoLists.GetByID(ctx, listID)
		assert.NoError(t, err)
	})
}
