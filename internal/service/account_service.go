package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/ev-admin-gateway/internal/domain"
	"github.com/spec-kit/ev-admin-gateway/internal/platform"
)

// AccountDirectory covers the account mutation endpoints.
type AccountDirectory interface {
	UpdateStatus(ctx context.Context, id string, status domain.UserStatus) (*domain.User, error)
	UpdateRole(ctx context.Context, id string, role domain.Role) (*domain.User, error)
	Update(ctx context.Context, id string, input platform.UpdateUserInput) (*domain.User, error)
}

// AccountService forwards account mutations to the backend. Failures are
// surfaced as-is; no reconciliation is attempted outside the staff creation
// flow.
type AccountService struct {
	directory AccountDirectory
	cache     Cache
	logger    *zap.Logger
}

// NewAccountService constructs the service.
func NewAccountService(directory AccountDirectory, cache Cache, logger *zap.Logger) *AccountService {
	return &AccountService{directory: directory, cache: cache, logger: logger}
}

// UpdateStatus patches an account's lifecycle status.
func (s *AccountService) UpdateStatus(ctx context.Context, id string, status domain.UserStatus) (*domain.User, error) {
	user, err := s.directory.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return user, nil
}

// UpdateRole patches an account's role.
func (s *AccountService) UpdateRole(ctx context.Context, id string, role domain.Role) (*domain.User, error) {
	user, err := s.directory.UpdateRole(ctx, id, role)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return user, nil
}

// UpdateProfile replaces mutable profile fields.
func (s *AccountService) UpdateProfile(ctx context.Context, id string, input platform.UpdateUserInput) (*domain.User, error) {
	user, err := s.directory.Update(ctx, id, input)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return user, nil
}

func (s *AccountService) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, cacheNamespaceUsers)
	}
}
