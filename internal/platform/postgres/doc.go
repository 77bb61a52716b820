// Package postgres opens PostgreSQL connections through the pgx stdlib driver
// and maps PostgreSQL error codes onto the store package's error values. The
// stores themselves live in platform/sqlstore and receive this package's
// Dialect.
package postgres
