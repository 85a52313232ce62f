package service

import (
	"context"
	"fmt"

	"github.com/admin-console-api/internal/models"
	"github.com/admin-console-api/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// roleService is the concrete implementation of RoleService
type roleService struct {
	repo  repository.RoleRepository
	audit AuditService
	log   zerolog.Logger
}

// newRoleService creates a new RoleService
func newRoleService(repo repository.RoleRepository, audit AuditService, log zerolog.Logger) *roleService {
	return &roleService{
		repo:  repo,
		audit: audit,
		log:   log.With().Str("service", "role").Logger(),
	}
}

// List returns one page of roles
func (s *roleService) List(ctx context.Context, q models.ListQuery) ([]models.Role, int, error) {
	return s.repo.List(ctx, q)
}

// Get retrieves a role; returns nil when not found
func (s *roleService) Get(ctx context.Context, id string) (*models.Role, error) {
	return s.repo.GetByID(ctx, id)
}

// Create stores a new role and audits the mutation
func (s *roleService) Create(ctx context.Context, actor *models.Session, role *models.Role) error {
	if role.ID == "" {
		role.ID = uuid.New().String()
	}
	if err := s.repo.Create(ctx, role); err != nil {
		return fmt.Errorf("failed to create role: %w", err)
	}
	s.audit.Record(ctx, actor, "role", role.ID, models.AuditActionCreate, "", nil, role)
	return nil
}

// Update modifies a role and audits the before/after snapshots
func (s *roleService) Update(ctx context.Context, actor *models.Session, role *models.Role) error {
	before, err := s.repo.GetByID(ctx, role.ID)
	if err != nil {
		return fmt.Errorf("failed to load role: %w", err)
	}
	if before == nil {
		return fmt.Errorf("role %s not found", role.ID)
	}

	if err := s.repo.Update(ctx, role); err != nil {
		return fmt.Errorf("failed to update role: %w", err)
	}
	s.audit.Record(ctx, actor, "role", role.ID, models.AuditActionUpdate, "", before, role)
	return nil
}

// Delete removes a role and audits the deleted snapshot
func (s *roleService) Delete(ctx context.Context, actor *models.Session, id string) error {
	before, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load role: %w", err)
	}
	if before == nil {
		return fmt.Errorf("role %s not found", id)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete role: %w", err)
	}
	s.audit.Record(ctx, actor, "role", id, models.AuditActionDelete, "", before, nil)
	return nil
}
