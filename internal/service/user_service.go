package service

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/staffing-tracker/internal/auth"
	"github.com/spec-kit/staffing-tracker/internal/config"
	"github.com/spec-kit/staffing-tracker/internal/domain"
	"github.com/spec-kit/staffing-tracker/internal/repository"
	apperrors "github.com/spec-kit/staffing-tracker/pkg/util"
)

// UserService manages application accounts. All operations require the
// acting user to be an admin.
type UserService struct {
	users      repository.UserRepository
	bcryptCost int
}

// NewUserService constructs the service.
func NewUserService(cfg config.Config, users repository.UserRepository) *UserService {
	return &UserService{users: users, bcryptCost: cfg.Auth.BcryptCost}
}

func requireAdmin(actor *domain.User) error {
	if actor == nil || actor.Role != domain.UserRoleAdmin {
		return apperrors.NewForbidden("admin role required")
	}
	return nil
}

// CreateUser adds a new account. New accounts must reset their password
// on first login.
func (s *UserService) CreateUser(ctx context.Context, actor *domain.User, username, email, password string, role domain.UserRole) (*domain.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if !domain.ValidUserRole(role) {
		return nil, apperrors.NewValidationError("unknown role", map[string]any{"role": role})
	}
	if existing, err := s.users.GetByUsername(ctx, username); err == nil && existing != nil {
		return nil, apperrors.NewConflict("username already exists", map[string]any{"username": username})
	} else if err != nil && err != pgx.ErrNoRows {
		return nil, apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		Username:          username,
		Email:             email,
		PasswordHash:      hash,
		Role:              role,
		MustResetPassword: true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// ListUsers lists all accounts.
func (s *UserService) ListUsers(ctx context.Context, actor *domain.User) ([]domain.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return users, nil
}

// GetUserByID fetches one account.
func (s *UserService) GetUserByID(ctx context.Context, actor *domain.User, id int64) (*domain.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// UpdateUser changes role, email or username.
func (s *UserService) UpdateUser(ctx context.Context, actor *domain.User, id int64, username, email string, role domain.UserRole) (*domain.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if !domain.ValidUserRole(role) {
		return nil, apperrors.NewValidationError("unknown role", map[string]any{"role": role})
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if username != "" && username != user.Username {
		if existing, err := s.users.GetByUsername(ctx, username); err == nil && existing != nil && existing.ID != user.ID {
			return nil, apperrors.NewConflict("username already exists", map[string]any{"username": username})
		} else if err != nil && err != pgx.ErrNoRows {
			return nil, apperrors.MapError(err)
		}
		user.Username = username
	}
	if email != "" {
		user.Email = email
	}
	user.Role = role

	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// DeleteUser removes an account. Admins cannot delete themselves.
func (s *UserService) DeleteUser(ctx context.Context, actor *domain.User, id int64) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if actor.ID == id {
		return apperrors.NewConflict("cannot delete own account", nil)
	}
	return apperrors.MapError(s.users.Delete(ctx, id))
}
