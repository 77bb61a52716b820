package postgres_test

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/todo-api/internal/platform/postgres"
	"github.com/phrazzld/todo-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func newPgError(code string) *pgconn.PgError {
	return &pgconn.PgError{
		Code:           code,
		Message:        "error message",
		SchemaName:     "public",
		TableName:      "todo_items",
		ColumnName:     "description",
		ConstraintName: "todo_items_description_check",
	}
}

func TestMapError(t *testing.T) {
	t.Parallel()

	plain := errors.New("connection reset")

	tests := []struct {
		name    string
		err     error
		wantIs  error
		wantMsg string
	}{
		{name: "no rows", err: sql.ErrNoRows, wantIs: store.ErrNotFound},
		{name: "unique violation", err: newPgError("23505"), wantIs: store.ErrDuplicate},
		{
			name:    "foreign key violation",
			err:     newPgError("23503"),
			wantIs:  store.ErrInvalidEntity,
			wantMsg: "foreign key violation (todo_items_description_check)",
		},
		{
			name:    "check violation",
			err:     fmt.Errorf("exec: %w", newPgError("23514")),
			wantIs:  store.ErrInvalidEntity,
			wantMsg: "check constraint violation",
		},
		{
			name:    "not null violation",
			err:     newPgError("23502"),
			wantIs:  store.ErrInvalidEntity,
			wantMsg: "not null violation (description)",
		},
		{name: "unmapped code", err: newPgError("42P01"), wantIs: nil},
		{name: "plain error", err: plain, wantIs: plain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := postgres.MapError(tt.err)
			if tt.wantIs == nil {
				assert.Same(t, tt.err, got)
				return
			}
			assert.ErrorIs(t, got, tt.wantIs)
			if tt.wantMsg != "" {
				assert.Contains(t, got.Error(), tt.wantMsg)
			}
		})
	}

	assert.NoError(t, postgres.MapError(nil))
}

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	assert.False(t, postgres.IsUniqueViolation(nil))
	assert.False(t, postgres.IsUniqueViolation(errors.New("generic error")))
	assert.False(t, postgres.IsUniqueViolation(newPgError("23503")))
	assert.True(t, postgres.IsUniqueViolation(newPgError("23505")))
	assert.True(t, postgres.IsUniqueViolation(fmt.Errorf("wrapped: %w", newPgError("23505"))))
}

func TestDialect(t *testing.T) {
	t.Parallel()

	d := postgres.Dialect{}
	assert.Equal(t, "postgres", d.Name())
	assert.Equal(t, " FOR UPDATE OF i", d.LockClause())
	assert.ErrorIs(t, d.MapError(newPgError("23505")), store.ErrDuplicate)
}
