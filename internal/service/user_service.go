// Package service contains the business logic layer of the application.
package service

import (
	"context"
	"strings"

	"ripple/internal/cache"
	"ripple/internal/models"
	"ripple/internal/repository"
)

// UserService provides user profile business logic.
type UserService struct {
	userRepo  repository.UserRepository
	userCache *cache.UserCache
}

// NewUserService returns a new UserService. The cache may be nil.
func NewUserService(userRepo repository.UserRepository, userCache *cache.UserCache) *UserService {
	return &UserService{
		userRepo:  userRepo,
		userCache: userCache,
	}
}

// CreateUserRequest carries the fields accepted on user creation.
type CreateUserRequest struct {
	ExternalID string `json:"external_id"`
	Name       string `json:"name"`
}

// UpdateUserRequest carries the fields accepted on user update.
// Nil fields are left unchanged.
type UpdateUserRequest struct {
	ExternalID *string `json:"external_id"`
	Name       *string `json:"name"`
}

// CreateUser creates a user profile. The external id comes from the
// identity provider and must be unique.
func (s *UserService) CreateUser(ctx context.Context, req CreateUserRequest) (*models.User, error) {
	if strings.TrimSpace(req.ExternalID) == "" {
		return nil, models.NewValidationError("external_id is required")
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, models.NewValidationError("name is required")
	}

	user := &models.User{
		ExternalID: req.ExternalID,
		Name:       req.Name,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUser returns the user with the given id.
func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	if cached, ok := s.userCache.Get(ctx, id); ok {
		return cached, nil
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.userCache.Set(ctx, user)
	return user, nil
}

// UpdateUser merges the non-nil request fields into the stored profile.
func (s *UserService) UpdateUser(ctx context.Context, id uint, req UpdateUserRequest) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.ExternalID != nil {
		if strings.TrimSpace(*req.ExternalID) == "" {
			return nil, models.NewValidationError("external_id cannot be empty")
		}
		user.ExternalID = *req.ExternalID
	}
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, models.NewValidationError("name cannot be empty")
		}
		user.Name = *req.Name
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	s.userCache.Invalidate(ctx, id)
	return user, nil
}

// DeleteUser removes the user profile. Rows in other tables referencing the
// id are left in place.
func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.userCache.Invalidate(ctx, id)
	return nil
}

// ListUsers returns a page of users in store order.
func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.userRepo.List(ctx, limit, offset)
}

// SearchUsers returns users whose name contains the given substring.
func (s *UserService) SearchUsers(ctx context.Context, name string) ([]models.User, error) {
	return s.userRepo.Search(ctx, name)
}
