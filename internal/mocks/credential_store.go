package mocks

import (
	"context"

	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/stretchr/testify/mock"
)

// TestifyMockCredentialStore is a mock of auth.CredentialStore for use with testify/mock
type TestifyMockCredentialStore struct {
	mock.Mock
}

// GetByAPIKey is a mock implementation of auth.CredentialStore.GetByAPIKey
func (m *TestifyMockCredentialStore) GetByAPIKey(ctx context.Context, apiKey string) (*domain.User, error) {
	args := m.Called(ctx, apiKey)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}
