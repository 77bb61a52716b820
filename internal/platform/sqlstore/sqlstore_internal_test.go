package sqlstore

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "", placeholders(1, 0))
	assert.Equal(t, "$1", placeholders(1, 1))
	assert.Equal(t, "$2, $3, $4", placeholders(2, 3))
}

func TestUniqueIDs(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	assert.Equal(t, []uuid.UUID{a, b}, uniqueIDs([]uuid.UUID{a, b, a, b, a}))
	assert.Empty(t, uniqueIDs(nil))
}

func TestChunkIDs(t *testing.T) {
	ids := make([]uuid.UUID, 7)
	for i := range ids {
		ids[i] = uuid.New()
	}

	chunks := chunkIDs(ids, 3)
	require.Len(t, chunks, 3)
	assert.Equal(t, ids[0:3], chunks[0])
	assert.Equal(t, ids[3:6], chunks[1])
	assert.Equal(t, ids[6:], chunks[2])

	assert.Len(t, chunkIDs(ids, 7), 1)
	assert.Empty(t, chunkIDs(nil, 3))

	// Appending to a chunk must not clobber the next one.
	_ = append(chunks[0], uuid.New())
	assert.Equal(t, ids[3], chunks[1][0])
}

func TestTimestampScan(t *testing.T) {
	want := time.Date(2024, 3, 9, 14, 5, 7, 120000000, time.UTC)

	tests := []struct {
		name string
		src  any
		want time.Time
	}{
		{"time value", want.In(time.FixedZone("CET", 3600)), want},
		{"sqlite text", "2024-03-09 14:05:07.12+00:00", want},
		{"sqlite bytes", []byte("2024-03-09 15:05:07.12+01:00"), want},
		{"current_timestamp default", "2024-03-09 14:05:07", want.Truncate(time.Second)},
		{"rfc3339", "2024-03-09T14:05:07.12Z", want},
		{"null", nil, time.Time{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got time.Time
			require.NoError(t, scanTime(&got).Scan(tt.src))
			assert.True(t, tt.want.Equal(got), "got %v, want %v", got, tt.want)
		})
	}

	var got time.Time
	assert.Error(t, scanTime(&got).Scan("yesterday"))
	assert.Error(t, scanTime(&got).Scan(42))
}
