package shared

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondWithJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rr := httptest.NewRecorder()

	RespondWithJSON(rr, req, http.StatusCreated, map[string]any{"id": "x", "title": "Vacation"})

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"id":"x","title":"Vacation"}`, rr.Body.String())
}

func TestRespondWithErrorAndLog(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		stacks    bool
		wantStack bool
		wantLevel string
	}{
		{"client error", http.StatusNotFound, true, false, "DEBUG"},
		{"server error without stacks", http.StatusInternalServerError, false, false, "ERROR"},
		{"server error with stacks", http.StatusInternalServerError, true, true, "ERROR"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			buf, log := logger.SetupTestLogger(t)

			ctx := logger.WithLogger(context.Background(), log)
			if tc.stacks {
				ctx = WithErrorStacks(ctx)
			}
			req := httptest.NewRequest(http.MethodGet, "/todos", nil).WithContext(ctx)
			rr := httptest.NewRecorder()

			err := errors.New("dial postgres://admin:hunter2@db:5432/todo failed")
			RespondWithErrorAndLog(rr, req, tc.status, "Something went wrong", err)

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, tc.status, rr.Code)
			assert.Equal(t, "Something went wrong", resp.Message)
			if tc.wantStack {
				assert.Contains(t, resp.Stack, "goroutine")
				assert.Contains(t, resp.Stack, "[REDACTED_CREDENTIAL]")
			} else {
				assert.Empty(t, resp.Stack)
			}

			entries, err := buf.GetLogEntries()
			require.NoError(t, err)
			require.NotEmpty(t, entries)
			assert.Equal(t, tc.wantLevel, entries[0]["level"])
			assert.NotContains(t, buf.String(), "hunter2")
			assert.NotContains(t, rr.Body.String(), "hunter2")
		})
	}
}

func TestSetTraceID(t *testing.T) {
	ctx := SetTraceID(context.Background())
	id := GetTraceID(ctx)
	assert.Len(t, id, TraceIDLength*2)
	assert.NotEqual(t, id, GetTraceID(SetTraceID(context.Background())))
	assert.Empty(t, GetTraceID(context.Background()))
}
