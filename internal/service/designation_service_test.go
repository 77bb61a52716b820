package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/mocks"
	"github.com/phrazzld/todo-api/internal/service"
	"github.com/phrazzld/todo-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDesignationService(t *testing.T) {
	ctx := context.Background()
	owner, stranger := uuid.New(), uuid.New()

	engineer, err := domain.NewDesignation(owner, "Engineer")
	require.NoError(t, err)
	designations := mocks.NewMockDesignationStore(engineer)

	svc, err := service.NewDesignationService(designations, nil)
	require.NoError(t, err)

	t.Run("create", func(t *testing.T) {
		d, err := svc.CreateDesignation(ctx, owner, "Manager")
		require.NoError(t, err)
		assert.Equal(t, owner, d.UserID)

		_, err = svc.CreateDesignation(ctx, owner, "")
		assert.EqualError(t, err, `"name" is not allowed to be empty`)
	})

	t.Run("list is scoped to the caller", func(t *testing.T) {
		page, err := svc.ListDesignations(ctx, stranger, store.NewPage(0, 0))
		require.NoError(t, err)
		assert.Zero(t, page.Total)
	})

	t.Run("foreign designation is forbidden", func(t *testing.T) {
		_, err := svc.RenameDesignation(ctx, stranger, engineer.ID, "Hacker")
		assert.ErrorIs(t, err, service.ErrNotOwned)
		assert.ErrorIs(t, svc.DeleteDesignation(ctx, stranger, engineer.ID), service.ErrNotOwned)
		assert.Equal(t, "Engineer", designations.Designations[engineer.ID].Name)
	})

	t.Run("missing designation is not found", func(t *testing.T) {
		_, err := svc.RenameDesignation(ctx, owner, uuid.New(), "Ghost")
		assert.ErrorIs(t, err, store.ErrDesignationNotFound)
	})

	t.Run("rename and delete own", func(t *testing.T) {
		d, err := svc.RenameDesignation(ctx, owner, engineer.ID, "Staff Engineer")
		require.NoError(t, err)
		assert.Equal(t, "Staff Engineer", d.Name)

		require.NoError(t, svc.DeleteDesignation(ctx, owner, engineer.ID))
		assert.NotContains(t, designations.Designations, engineer.ID)
	})

	t.Run("store failure is wrapped", func(t *testing.T) {
		boom := errors.New("disk full")
		failing := &mocks.MockDesignationStore{
			CreateFn: func(context.Context, *domain.Designation) error { return boom },
		}
		svc, err := service.NewDesignationService(failing, nil)
		require.NoError(t, err)

		_, err = svc.CreateDesignation(ctx, owner, "Designer")
		assert.ErrorIs(t, err, boom)
		var svcErr *service.ServiceError
		assert.True(t, errors.As(err, &svcErr))
	})
}
