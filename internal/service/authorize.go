package service

import (
	"errors"

	"github.com/google/uuid"
	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/store"
)

// Authorize returns resource when userID owns it and ErrNotOwned otherwise.
//
// Callers fetch the resource before calling Authorize, so a missing id is
// reported as not found and a foreign one as forbidden.
func Authorize[T domain.Owned](userID uuid.UUID, resource T) (T, error) {
	if resource.OwnerID() != userID {
		var zero T
		return zero, ErrNotOwned
	}
	return resource, nil
}

// isClientError reports whether err is one the caller can act on.
func isClientError(err error) bool {
	return errors.Is(err, domain.ErrValidation) ||
		errors.Is(err, ErrNotOwned) ||
		store.IsNotFoundError(err)
}
