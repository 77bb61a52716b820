package service

import (
	"errors"
	"fmt"
)

// Service errors. The API layer maps them to status codes with errors.Is.
var (
	// ErrNotOwned indicates a resource is owned by a different user than the one making the request.
	// API layer should map this to HTTP 403 Forbidden.
	ErrNotOwned = errors.New("resource is owned by another user")
)

// ServiceError wraps a failure with the operation that produced it.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "update_items")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError wraps err with context. Sentinel errors the API layer maps
// to a client status (validation, not found, not owned) are returned as they
// are, so their message is not buried under internal detail.
func NewServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}
	if isClientError(err) {
		return err
	}
	return &ServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
