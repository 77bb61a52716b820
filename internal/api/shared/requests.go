package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/phrazzld/todo-api/internal/domain"
)

// Global validator instance for reuse. Field errors are named after the
// json tag so messages match the request body the client sent.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	// guid accepts every form uuid.Parse does, in either case. The built-in
	// uuid tag only matches lowercase.
	_ = v.RegisterValidation("guid", func(fl validator.FieldLevel) bool {
		_, err := uuid.Parse(fl.Field().String())
		return err == nil
	})
	return v
}

// DecodeJSON decodes the request body into v. Malformed bodies and type
// mismatches come back as *domain.ValidationError.
func DecodeJSON(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.Is(err, io.EOF):
		return domain.NewValidationError("value", "is required", domain.ErrValidation)
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = "value"
		}
		return domain.NewValidationError(field, "must be of type "+jsonKind(typeErr.Type), domain.ErrValidation)
	default:
		return domain.NewValidationError("", "Invalid request format", domain.ErrValidation)
	}
}

func jsonKind(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Struct, reflect.Map:
		return "object"
	case reflect.Bool:
		return "boolean"
	case reflect.String:
		return "string"
	default:
		return "number"
	}
}

// ValidateRequest validates the given struct and reports the first
// violation as a *domain.ValidationError.
func ValidateRequest(v any) error {
	if validator, ok := v.(interface{ Validate() error }); ok {
		return validator.Validate()
	}
	return firstViolation(validate.Struct(v), "")
}

// ValidateValue validates a single value against tag, naming it label in
// the resulting error.
func ValidateValue(value any, tag, label string) error {
	return firstViolation(validate.Var(value, tag), label)
}

func firstViolation(err error, label string) error {
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}

	fe := fieldErrs[0]
	field := fe.Field()
	if label != "" {
		field = label
	}
	return domain.NewValidationError(field, violationMessage(fe), domain.ErrValidation)
}

func violationMessage(fe validator.FieldError) string {
	empty := false
	if s, ok := fe.Value().(string); ok && s == "" {
		empty = true
	}

	switch fe.Tag() {
	case "required":
		if empty {
			return "is not allowed to be empty"
		}
		return "is required"
	case "min":
		if empty {
			return "is not allowed to be empty"
		}
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("length must be at least %s characters long", fe.Param())
		}
		return "must contain at least " + fe.Param() + " items"
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("length must be less than or equal to %s characters long", fe.Param())
		}
		return "must contain less than or equal to " + fe.Param() + " items"
	case "guid", "uuid", "uuid4":
		return "must be a valid GUID"
	default:
		return "is invalid"
	}
}
