package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/todo-api/internal/api/shared"
	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/phrazzld/todo-api/internal/service/auth"
)

// MaxCredentialBodyBytes bounds how much of a request body is buffered while
// looking for an apikey field.
const MaxCredentialBodyBytes = 1 << 20

// Authenticator resolves an API key to a user. *auth.Authenticator satisfies it.
type Authenticator interface {
	Authenticate(ctx context.Context, apiKey string) (*domain.User, error)
}

// AuthMiddleware provides API key authentication for routes.
type AuthMiddleware struct {
	authenticator Authenticator
	logger        *slog.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(authenticator Authenticator, logger *slog.Logger) *AuthMiddleware {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthMiddleware{
		authenticator: authenticator,
		logger:        logger.With(slog.String("component", "auth_middleware")),
	}
}

// Authenticate resolves the request's API key and adds the user ID to the
// request context and its logger. Requests without a valid key are
// rejected with 401; credential store failures with 500.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContextOrDefault(r.Context(), m.logger)

		apiKey, err := ExtractAPIKey(r)
		if err != nil {
			shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Authentication error", err)
			return
		}

		user, err := m.authenticator.Authenticate(r.Context(), apiKey)
		switch {
		case errors.Is(err, auth.ErrMissingAPIKey):
			shared.RespondWithError(w, r, http.StatusUnauthorized, "API Key is required")
			return
		case errors.Is(err, auth.ErrUnauthenticated):
			shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, "This API Key is unauthorized", err,
				shared.WithElevatedLogLevel())
			return
		case err != nil:
			shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Authentication error", err)
			return
		}

		log = log.With(slog.String("user_id", user.ID.String()))
		ctx := context.WithValue(r.Context(), shared.UserIDContextKey, user.ID)
		ctx = logger.WithLogger(ctx, log)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ExtractAPIKey finds the caller's API key. In order: the last
// whitespace-separated token of the Authorization header, the apikey field
// of a JSON object body, the apikey query parameter. The body is restored
// for the handler. An empty key with a nil error means none was supplied.
func ExtractAPIKey(r *http.Request) (string, error) {
	if fields := strings.Fields(r.Header.Get("Authorization")); len(fields) > 0 {
		return fields[len(fields)-1], nil
	}

	key, err := apiKeyFromBody(r)
	if err != nil || key != "" {
		return key, err
	}

	return r.URL.Query().Get("apikey"), nil
}

func apiKeyFromBody(r *http.Request) (string, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return "", nil
	}

	buf, err := io.ReadAll(io.LimitReader(r.Body, MaxCredentialBodyBytes))
	if err != nil {
		return "", err
	}
	r.Body = readCloser{io.MultiReader(bytes.NewReader(buf), r.Body), r.Body}

	var body struct {
		APIKey json.RawMessage `json:"apikey"`
	}
	if trimmed := bytes.TrimSpace(buf); len(trimmed) == 0 || trimmed[0] != '{' {
		return "", nil
	}
	if err := json.Unmarshal(buf, &body); err != nil {
		return "", nil
	}

	var key string
	if err := json.Unmarshal(body.APIKey, &key); err != nil {
		return "", nil
	}
	return key, nil
}

// readCloser replays the buffered prefix of a body and closes the original.
type readCloser struct {
	io.Reader
	io.Closer
}

// GetUserID extracts the user ID from the request context.
// Returns the user ID and a boolean indicating if it was found.
func GetUserID(r *http.Request) (uuid.UUID, bool) {
	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	return userID, ok
}
