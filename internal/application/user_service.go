package application

import (
	"context"

	"go.uber.org/zap"

	userDomain "github.com/shareit-marketplace/shareit-backend/internal/domain/user"
)

// UserService handles user registration and profile management.
type UserService struct {
	users  userDomain.Repository
	logger *zap.Logger
}

// NewUserService creates a new UserService.
func NewUserService(users userDomain.Repository, logger *zap.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

// CreateUser registers a new user. A duplicate email is a conflict.
func (s *UserService) CreateUser(ctx context.Context, req CreateUserRequest) (*UserResponse, error) {
	u, err := userDomain.NewUser(req.Name, req.Email)
	if err != nil {
		return nil, err
	}

	saved, err := s.users.Save(ctx, u)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user created", zap.Int64("user_id", saved.ID()))
	resp := toUserResponse(saved)
	return &resp, nil
}

// UpdateUser applies a partial update: empty fields keep their current value.
func (s *UserService) UpdateUser(ctx context.Context, id int64, req UpdateUserRequest) (*UserResponse, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	u.Update(req.Name, req.Email)
	saved, err := s.users.Save(ctx, u)
	if err != nil {
		return nil, err
	}

	resp := toUserResponse(saved)
	return &resp, nil
}

// GetUser returns a user by id.
func (s *UserService) GetUser(ctx context.Context, id int64) (*UserResponse, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toUserResponse(u)
	return &resp, nil
}

// ListUsers returns every registered user.
func (s *UserService) ListUsers(ctx context.Context) ([]UserResponse, error) {
	list, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]UserResponse, 0, len(list))
	for _, u := range list {
		responses = append(responses, toUserResponse(u))
	}
	return responses, nil
}

// DeleteUser removes a user by id.
func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	return s.users.Delete(ctx, id)
}
