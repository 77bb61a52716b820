package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors
var (
	ErrEmptyUserID = errors.New("user ID cannot be empty")
	ErrEmptyAPIKey = errors.New("API key cannot be empty")
)

// User is an account holder. Users are created administratively and are
// identified on every request by their API key.
type User struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	APIKey    string    `json:"-"` // Never expose the credential in JSON
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUser creates a new User with a freshly generated API key.
// Returns an error if validation fails.
func NewUser(username string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		ID:        uuid.New(),
		Username:  username,
		APIKey:    NewAPIKey(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// NewAPIKey generates a random API key. Keys are issued once at user creation
// and never rotated.
func NewAPIKey() string {
	return uuid.NewString()
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}

	if err := validateText("username", u.Username); err != nil {
		return err
	}

	if u.APIKey == "" {
		return ErrEmptyAPIKey
	}

	return nil
}
