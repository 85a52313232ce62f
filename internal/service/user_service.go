package service

import (
	"context"
	"fmt"

	"github.com/admin-console-api/internal/auth"
	"github.com/admin-console-api/internal/models"
	"github.com/admin-console-api/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// userService is the concrete implementation of UserService
type userService struct {
	repo  repository.UserRepository
	audit AuditService
	log   zerolog.Logger
}

// newUserService creates a new UserService
func newUserService(repo repository.UserRepository, audit AuditService, log zerolog.Logger) *userService {
	return &userService{
		repo:  repo,
		audit: audit,
		log:   log.With().Str("service", "user").Logger(),
	}
}

// List returns one page of users
func (s *userService) List(ctx context.Context, tenantID string, q models.ListQuery) ([]models.User, int, error) {
	return s.repo.List(ctx, tenantID, q)
}

// Get retrieves a user; returns nil when not found
func (s *userService) Get(ctx context.Context, id string) (*models.User, error) {
	return s.repo.GetByID(ctx, id)
}

// Create stores a new user with a hashed password and audits the mutation
func (s *userService) Create(ctx context.Context, actor *models.Session, user *models.User, password string) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	if err := s.repo.Create(ctx, user, hash); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	s.audit.Record(ctx, actor, "user", user.ID, models.AuditActionCreate, "", nil, user)
	return nil
}

// Update modifies a user's profile and audits the before/after snapshots
func (s *userService) Update(ctx context.Context, actor *models.Session, user *models.User) error {
	before, err := s.repo.GetByID(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}
	if before == nil {
		return fmt.Errorf("user %s not found", user.ID)
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	s.audit.Record(ctx, actor, "user", user.ID, models.AuditActionUpdate, "", before, user)
	return nil
}

// SetRoles replaces a user's ordered role sequence. The first ID becomes the
// primary role, so callers must send the sequence in the intended order.
func (s *userService) SetRoles(ctx context.Context, actor *models.Session, userID string, roleIDs []string) error {
	before, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}
	if before == nil {
		return fmt.Errorf("user %s not found", userID)
	}

	if err := s.repo.SetRoles(ctx, userID, roleIDs); err != nil {
		return fmt.Errorf("failed to set roles: %w", err)
	}
	s.audit.Record(ctx, actor, "user", userID, models.AuditActionUpdate, "roles", before.Roles, roleIDs)
	return nil
}

// Delete removes a user and audits the deleted snapshot
func (s *userService) Delete(ctx context.Context, actor *models.Session, id string) error {
	before, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}
	if before == nil {
		return fmt.Errorf("user %s not found", id)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	s.audit.Record(ctx, actor, "user", id, models.AuditActionDelete, "", before, nil)
	return nil
}
