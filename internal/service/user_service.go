package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/store"
)

// UserService provides the administrative user operations. Users never
// register through the HTTP API.
type UserService interface {
	// CreateUser creates a user with a fresh API key.
	CreateUser(ctx context.Context, username string) (*domain.User, error)

	// FindUser resolves ref as a user id first and as a username otherwise.
	FindUser(ctx context.Context, ref string) (*domain.User, error)

	// DeleteUser removes the user named by ref and everything the user owns.
	DeleteUser(ctx context.Context, ref string) (*domain.User, error)

	// ListUsers returns a page of users in creation order.
	ListUsers(ctx context.Context, page store.Page) (PageResult[*domain.User], error)
}

type userServiceImpl struct {
	users  store.UserStore
	logger *slog.Logger
}

// NewUserService creates a new UserService
func NewUserService(users store.UserStore, logger *slog.Logger) (UserService, error) {
	if users == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "user store cannot be nil"}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &userServiceImpl{
		users:  users,
		logger: logger.With(slog.String("component", "user_service")),
	}, nil
}

func (s *userServiceImpl) CreateUser(ctx context.Context, username string) (*domain.User, error) {
	user, err := domain.NewUser(username)
	if err != nil {
		return nil, err
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrUsernameExists) {
			s.logger.Debug("attempted to create user with existing username",
				slog.String("username", username))
			return nil, err
		}
		s.logger.Error("failed to save user",
			slog.String("error", err.Error()),
			slog.String("username", username))
		return nil, NewServiceError("create_user", "failed to save user", err)
	}

	s.logger.Info("user created successfully",
		slog.String("user_id", user.ID.String()),
		slog.String("username", user.Username))
	return user, nil
}

func (s *userServiceImpl) FindUser(ctx context.Context, ref string) (*domain.User, error) {
	if id, err := uuid.Parse(ref); err == nil {
		user, err := s.users.GetByID(ctx, id)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, store.ErrUserNotFound) {
			return nil, NewServiceError("find_user", "failed to retrieve user", err)
		}
	}

	user, err := s.users.GetByUsername(ctx, ref)
	if err != nil {
		return nil, NewServiceError("find_user", "failed to retrieve user", err)
	}
	return user, nil
}

func (s *userServiceImpl) DeleteUser(ctx context.Context, ref string) (*domain.User, error) {
	user, err := s.FindUser(ctx, ref)
	if err != nil {
		return nil, err
	}
	if err := s.users.Delete(ctx, user.ID); err != nil {
		return nil, NewServiceError("delete_user", "failed to delete user", err)
	}

	s.logger.Info("user deleted",
		slog.String("user_id", user.ID.String()),
		slog.String("username", user.Username))
	return user, nil
}

func (s *userServiceImpl) ListUsers(ctx context.Context, page store.Page) (PageResult[*domain.User], error) {
	users, total, err := s.users.List(ctx, page)
	if err != nil {
		return PageResult[*domain.User]{}, NewServiceError("list_users", "failed to list users", err)
	}
	return PageResult[*domain.User]{Items: users, Total: total}, nil
}
