package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/todo-api/internal/api/shared"
	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/service"
	"github.com/phrazzld/todo-api/internal/service/auth"
	"github.com/phrazzld/todo-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapErrorToStatusCodeAndMessage(t *testing.T) {
	tests := []struct {
		name            string
		err             error
		expectedStatus  int
		expectedMessage string
	}{
		{"nil error", nil, http.StatusInternalServerError, "An unexpected error occurred"},
		{
			"validation error",
			domain.NewValidationError("title", "length must be at least 3 characters long", nil),
			http.StatusBadRequest,
			`"title" length must be at least 3 characters long`,
		},
		{"invalid entity", fmt.Errorf("insert: %w", store.ErrInvalidEntity), http.StatusBadRequest, "Invalid entity data"},
		{"missing key", auth.ErrMissingAPIKey, http.StatusUnauthorized, "API Key is required"},
		{"unknown key", auth.ErrInvalidAPIKey, http.StatusUnauthorized, "This API Key is unauthorized"},
		{"not owned", service.ErrNotOwned, http.StatusForbidden, "You do not have access to this resource"},
		{
			"wrapped list not found",
			service.NewServiceError("get_list", "failed", store.ErrTodoListNotFound),
			http.StatusNotFound,
			"Todo list not found",
		},
		{"designation not found", store.ErrDesignationNotFound, http.StatusNotFound, "Designation not found"},
		{"username exists", store.ErrUsernameExists, http.StatusConflict, "Username already exists"},
		{"unknown", errors.New("pq: connection reset"), http.StatusInternalServerError, "An unexpected error occurred"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expectedStatus, MapErrorToStatusCode(tc.err))
			assert.Equal(t, tc.expectedMessage, GetSafeErrorMessage(tc.err))
		})
	}
}

func TestHandleAPIError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		defaultMsg  string
		stacks      bool
		wantMessage string
		wantStack   bool
	}{
		{"default message on 500", errors.New("boom"), "Failed to list todo lists", false,
			"Failed to list todo lists", false},
		{"default message ignored on 404", store.ErrTodoListNotFound, "Failed to list todo lists", true,
			"Todo list not found", false},
		{"stack in development", errors.New("boom"), "", true, "An unexpected error occurred", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/todos", nil)
			if tc.stacks {
				req = req.WithContext(shared.WithErrorStacks(req.Context()))
			}
			rr := httptest.NewRecorder()

			HandleAPIError(rr, req, tc.err, tc.defaultMsg)

			var resp shared.ErrorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, tc.wantMessage, resp.Message)
			if tc.wantStack {
				assert.Contains(t, resp.Stack, "boom")
				assert.Contains(t, resp.Stack, "goroutine")
			} else {
				assert.Empty(t, resp.Stack)
			}
		})
	}
}

func TestParsePage(t *testing.T) {
	tests := []struct {
		query      string
		wantOffset int
		wantLimit  int
	}{
		{"", 0, store.DefaultLimit},
		{"offset=5&limit=20", 5, 20},
		{"offset=-3&limit=-1", 0, store.DefaultLimit},
		{"offset=abc&limit=xyz", 0, store.DefaultLimit},
		{"limit=1000", 0, store.MaxLimit},
	}

	for _, tc := range tests {
		t.Run(tc.query, func(t *testing.T) {
			page := parsePage(httptest.NewRequest(http.MethodGet, "/todos?"+tc.query, nil))
			assert.Equal(t, tc.wantOffset, page.Offset)
			assert.Equal(t, tc.wantLimit, page.Limit)
		})
	}
}
