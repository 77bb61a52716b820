package shared

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type titleRequest struct {
	Title *string  `json:"title" validate:"required,min=3,max=255"`
	Items []string `json:"items" validate:"omitempty,dive,required,min=3,max=255"`
}

func ptr(s string) *string { return &s }

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name    string
		req     titleRequest
		wantErr string
	}{
		{"valid", titleRequest{Title: ptr("Vacation")}, ""},
		{"missing", titleRequest{}, `"title" is required`},
		{"empty", titleRequest{Title: ptr("")}, `"title" is not allowed to be empty`},
		{"short", titleRequest{Title: ptr("ab")}, `"title" length must be at least 3 characters long`},
		{"long", titleRequest{Title: ptr(strings.Repeat("x", 256))},
			`"title" length must be less than or equal to 255 characters long`},
		{"bad item", titleRequest{Title: ptr("Vacation"), Items: []string{"pack", "x"}},
			`"items[1]" length must be at least 3 characters long`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateRequest(tc.req)
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.EqualError(t, err, tc.wantErr)
		})
	}
}

func TestValidateValue(t *testing.T) {
	assert.NoError(t, ValidateValue("4d4c2f31-8d5c-4b53-8f7a-3c9a40e1a3a1", "required,guid", "[0]"))
	assert.NoError(t, ValidateValue("4D4C2F31-8D5C-4B53-8F7A-3C9A40E1A3A1", "required,guid", "[0]"))
	assert.EqualError(t, ValidateValue("nope", "required,guid", "[2]"), `"[2]" must be a valid GUID`)
	assert.EqualError(t, ValidateValue("", "required,guid", "[1]"), `"[1]" is not allowed to be empty`)
	assert.EqualError(t, ValidateValue("", "required,min=3", "[0]"), `"[0]" is not allowed to be empty`)
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		into    func() any
		wantErr string
	}{
		{"object", `{"title":"Vacation"}`, func() any { return &titleRequest{} }, ""},
		{"empty body", ``, func() any { return &titleRequest{} }, `"value" is required`},
		{"array for object", `["a"]`, func() any { return &titleRequest{} }, `"value" must be of type object`},
		{"object for array", `{"a":1}`, func() any { return &[]string{} }, `"value" must be of type array`},
		{"wrong field type", `{"title":5}`, func() any { return &titleRequest{} }, `"title" must be of type string`},
		{"malformed", `{"title":`, func() any { return &titleRequest{} }, "Invalid request format"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body))
			err := DecodeJSON(req, tc.into())
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.EqualError(t, err, tc.wantErr)
		})
	}
}
