// Package testutils provides common utilities for testing across the application.
// It centralizes repeated test setup: migrated SQLite databases on temporary
// files, store bundles wired to either backend, and fixture constructors.
//
// Usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutils.NewSQLiteDB(t)
//	    stores := testutils.CreateTestStores(db, sqlite.Dialect{})
//	    user := testutils.MustInsertUser(ctx, t, stores.Users, "alice")
//	    ...
//	}
package testutils
