// Package auth resolves API keys to user identities.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/phrazzld/todo-api/internal/redact"
	"github.com/phrazzld/todo-api/internal/store"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("github.com/phrazzld/todo-api/internal/service/auth")

// CredentialStore resolves an API key to the user holding it.
// store.UserStore satisfies it.
type CredentialStore interface {
	// GetByAPIKey returns store.ErrUserNotFound when no user holds the key.
	GetByAPIKey(ctx context.Context, apiKey string) (*domain.User, error)
}

// Authenticator turns a presented API key into a user identity. It fails
// closed: any lookup failure other than "no such key" is reported as an
// internal error rather than as an anonymous pass.
type Authenticator struct {
	credentials CredentialStore
	logger      *slog.Logger
}

// NewAuthenticator creates an Authenticator over credentials.
func NewAuthenticator(credentials CredentialStore, logger *slog.Logger) (*Authenticator, error) {
	if credentials == nil {
		return nil, fmt.Errorf("credential store cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Authenticator{
		credentials: credentials,
		logger:      logger.With(slog.String("component", "authenticator")),
	}, nil
}

// Authenticate resolves apiKey with a single point lookup.
//
// Returns ErrMissingAPIKey for a blank key and ErrInvalidAPIKey when no user
// holds it. Other store failures are wrapped and returned as they are.
func (a *Authenticator) Authenticate(ctx context.Context, apiKey string) (*domain.User, error) {
	ctx, span := tracer.Start(ctx, "auth.Authenticate")
	defer span.End()

	log := logger.FromContextOrDefault(ctx, a.logger)

	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	user, err := a.credentials.GetByAPIKey(ctx, apiKey)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug("rejected unknown API key")
			return nil, ErrInvalidAPIKey
		}
		span.SetStatus(codes.Error, "credential lookup failed")
		log.Error("credential lookup failed", slog.String("error", redact.Error(err)))
		return nil, fmt.Errorf("credential lookup failed: %w", err)
	}

	return user, nil
}
