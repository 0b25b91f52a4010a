package service

import (
	"context"
	"fmt"

	"github.com/devcampdir/api/internal/auth"
	"github.com/devcampdir/api/internal/models"
	"github.com/devcampdir/api/internal/repository"
	"github.com/devcampdir/api/internal/utils"
)

// UserService handles administrative user management.
type UserService struct {
	userRepo    repository.UserRepository
	passwordCfg *auth.PasswordConfig
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository, passwordCfg *auth.PasswordConfig) *UserService {
	return &UserService{
		userRepo:    userRepo,
		passwordCfg: passwordCfg,
	}
}

// List retrieves a page of users with credentials stripped.
func (s *UserService) List(ctx context.Context, limit, offset int) ([]*models.User, int, error) {
	users, total, err := s.userRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	sanitized := make([]*models.User, len(users))
	for i, user := range users {
		sanitized[i] = user.Sanitize()
	}

	return sanitized, total, nil
}

// Get retrieves a single user by ID.
func (s *UserService) Get(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.Sanitize(), nil
}

// Create adds a new user with the given role.
func (s *UserService) Create(ctx context.Context, req *models.UserCreate) (*models.User, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, utils.NewDuplicateError("User", "email", req.Email)
	}

	passwordHash, salt, err := auth.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.NewUser(req.Name, req.Email, req.Role)
	user.PasswordHash = passwordHash
	user.Salt = salt

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user.Sanitize(), nil
}

// Update changes a user's name, email, or role.
func (s *UserService) Update(ctx context.Context, id int64, req *models.UserUpdate) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Role != "" {
		user.Role = req.Role
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user.Sanitize(), nil
}

// Delete removes a user account.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	return s.userRepo.Delete(ctx, id)
}
