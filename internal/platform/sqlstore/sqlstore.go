// Package sqlstore implements the store interfaces once, in SQL that both
// PostgreSQL and SQLite accept. Positional parameters use the $N form, which
// pgx and modernc.org/sqlite both bind by ordinal. What differs between the
// backends (row locking and error codes) is supplied by a Dialect.
package sqlstore

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Dialect describes the backend-specific parts of the SQL the stores issue.
type Dialect interface {
	// Name identifies the backend in logs.
	Name() string

	// LockClause is appended to the ownership-filtered item fetch so the
	// selected rows stay locked until the transaction ends. Empty when the
	// backend has no row locks.
	LockClause() string

	// MapError translates driver errors into store errors.
	MapError(err error) error
}

// placeholders returns "$start, $start+1, ..." for n parameters.
func placeholders(start, n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('$')
		b.WriteString(strconv.Itoa(start + i))
	}
	return b.String()
}

// uniqueIDs drops duplicates while keeping first-seen order.
func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// maxIDsPerStatement bounds the ids bound into one IN list. SQLite accepts
// 32766 parameters per statement and PostgreSQL 65535.
const maxIDsPerStatement = 1000

// chunkIDs splits ids into consecutive slices of at most size ids.
func chunkIDs(ids []uuid.UUID, size int) [][]uuid.UUID {
	chunks := make([][]uuid.UUID, 0, (len(ids)+size-1)/size)
	for len(ids) > size {
		chunks = append(chunks, ids[:size:size])
		ids = ids[size:]
	}
	if len(ids) > 0 {
		chunks = append(chunks, ids)
	}
	return chunks
}

func idArgs(ids []uuid.UUID) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}

// timestampLayouts are the text encodings a timestamp may come back in.
// SQLite returns text for RETURNING and computed columns, and for rows
// written by CURRENT_TIMESTAMP defaults.
var timestampLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02T15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05.999999999",
}

// timestamp scans a time column from either backend into a UTC time.Time.
type timestamp struct {
	dest *time.Time
}

func scanTime(dest *time.Time) sql.Scanner {
	return timestamp{dest: dest}
}

// Scan implements sql.Scanner.
func (ts timestamp) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*ts.dest = v.UTC()
		return nil
	case string:
		return ts.parse(v)
	case []byte:
		return ts.parse(string(v))
	case nil:
		*ts.dest = time.Time{}
		return nil
	default:
		return fmt.Errorf("cannot scan %T into timestamp", src)
	}
}

func (ts timestamp) parse(s string) error {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			*ts.dest = t.UTC()
			return nil
		}
	}
	return fmt.Errorf("unrecognised timestamp %q", s)
}

// checkRowsAffected returns notFound when an UPDATE or DELETE matched nothing.
func checkRowsAffected(result sql.Result, notFound error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return notFound
	}
	return nil
}
