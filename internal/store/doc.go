// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the application's core logic. Implementations live in platform/sqlstore
// and run on PostgreSQL or SQLite; transactions are scoped explicitly with
// RunInTransaction and threaded through the stores' WithTx methods.
package store
