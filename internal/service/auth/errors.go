package auth

import (
	"errors"
	"fmt"
)

// Authentication errors. Both credential failures wrap ErrUnauthenticated so
// callers can map them to 401 with a single errors.Is check.
var (
	// ErrUnauthenticated indicates the request carries no usable identity.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrMissingAPIKey indicates no API key was supplied in the header, body or query.
	ErrMissingAPIKey = fmt.Errorf("%w: API key is missing", ErrUnauthenticated)

	// ErrInvalidAPIKey indicates the supplied API key matches no user.
	ErrInvalidAPIKey = fmt.Errorf("%w: API key is not recognised", ErrUnauthenticated)
)
