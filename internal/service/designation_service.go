package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/phrazzld/todo-api/internal/store"
)

// DesignationService provides the caller-scoped designation operations.
type DesignationService interface {
	ListDesignations(ctx context.Context, userID uuid.UUID, page store.Page) (PageResult[*domain.Designation], error)
	CreateDesignation(ctx context.Context, userID uuid.UUID, name string) (*domain.Designation, error)
	RenameDesignation(ctx context.Context, userID, id uuid.UUID, name string) (*domain.Designation, error)
	DeleteDesignation(ctx context.Context, userID, id uuid.UUID) error
}

type designationServiceImpl struct {
	designations store.DesignationStore
	logger       *slog.Logger
}

// NewDesignationService creates a DesignationService.
func NewDesignationService(designations store.DesignationStore, logger *slog.Logger) (DesignationService, error) {
	if designations == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "designation store cannot be nil"}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &designationServiceImpl{
		designations: designations,
		logger:       logger.With(slog.String("component", "designation_service")),
	}, nil
}

func (s *designationServiceImpl) ListDesignations(
	ctx context.Context,
	userID uuid.UUID,
	page store.Page,
) (PageResult[*domain.Designation], error) {
	all, total, err := s.designations.ListByUser(ctx, userID, page)
	if err != nil {
		return PageResult[*domain.Designation]{}, NewServiceError("list_designations", "failed to list designations", err)
	}
	return PageResult[*domain.Designation]{Items: all, Total: total}, nil
}

func (s *designationServiceImpl) CreateDesignation(
	ctx context.Context,
	userID uuid.UUID,
	name string,
) (*domain.Designation, error) {
	d, err := domain.NewDesignation(userID, name)
	if err != nil {
		return nil, err
	}
	if err := s.designations.Create(ctx, d); err != nil {
		return nil, NewServiceError("create_designation", "failed to save designation", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("designation created",
		slog.String("designation_id", d.ID.String()),
		slog.String("user_id", userID.String()))
	return d, nil
}

func (s *designationServiceImpl) owned(ctx context.Context, userID, id uuid.UUID) (*domain.Designation, error) {
	d, err := s.designations.GetByID(ctx, id)
	if err != nil {
		return nil, NewServiceError("get_designation", "failed to retrieve designation", err)
	}
	return Authorize(userID, d)
}

func (s *designationServiceImpl) RenameDesignation(
	ctx context.Context,
	userID, id uuid.UUID,
	name string,
) (*domain.Designation, error) {
	d, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := d.Rename(name); err != nil {
		return nil, err
	}
	if err := s.designations.Update(ctx, d); err != nil {
		return nil, NewServiceError("rename_designation", "failed to update designation", err)
	}
	return d, nil
}

func (s *designationServiceImpl) DeleteDesignation(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return err
	}
	if err := s.designations.Delete(ctx, id); err != nil {
		return NewServiceError("delete_designation", "failed to delete designation", err)
	}
	return nil
}
