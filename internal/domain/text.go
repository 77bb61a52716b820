package domain

import (
	"fmt"
	"unicode/utf8"
)

// Length bounds shared by every user-supplied text field.
const (
	MinTextLength = 3
	MaxTextLength = 255
)

// validateText enforces the shared length bounds on a named text field.
func validateText(field, value string) error {
	n := utf8.RuneCountInString(value)
	switch {
	case value == "":
		return NewValidationError(field, "is not allowed to be empty", ErrValidation)
	case n < MinTextLength:
		return NewValidationError(field,
			fmt.Sprintf("length must be at least %d characters long", MinTextLength), ErrValidation)
	case n > MaxTextLength:
		return NewValidationError(field,
			fmt.Sprintf("length must be less than or equal to %d characters long", MaxTextLength), ErrValidation)
	}
	return nil
}
