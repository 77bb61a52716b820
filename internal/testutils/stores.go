package testutils

import (
	"github.com/phrazzld/todo-api/internal/platform/sqlstore"
	"github.com/phrazzld/todo-api/internal/store"
)

// TestStores bundles every store over one connection or transaction.
type TestStores struct {
	Users        store.UserStore
	TodoLists    store.TodoListStore
	TodoItems    store.TodoItemStore
	Designations store.DesignationStore
}

// CreateTestStores creates the sqlstore implementations over db. Logging is
// discarded to keep test output readable.
func CreateTestStores(db store.DBTX, dialect sqlstore.Dialect) TestStores {
	log := DiscardLogger()
	return TestStores{
		Users:        sqlstore.NewUserStore(db, dialect, log),
		TodoLists:    sqlstore.NewTodoListStore(db, dialect, log),
		TodoItems:    sqlstore.NewTodoItemStore(db, dialect, log),
		Designations: sqlstore.NewDesignationStore(db, dialect, log),
	}
}
