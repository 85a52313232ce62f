package service

import (
	"context"
	"fmt"
	"time"

	"github.com/admin-console-api/internal/models"
	"github.com/admin-console-api/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// vendorService is the concrete implementation of VendorService
type vendorService struct {
	repo  repository.VendorRepository
	audit AuditService
	log   zerolog.Logger
}

// newVendorService creates a new VendorService
func newVendorService(repo repository.VendorRepository, audit AuditService, log zerolog.Logger) *vendorService {
	return &vendorService{
		repo:  repo,
		audit: audit,
		log:   log.With().Str("service", "vendor").Logger(),
	}
}

// List returns one page of vendors
func (s *vendorService) List(ctx context.Context, tenantID string, q models.ListQuery) ([]models.Vendor, int, error) {
	return s.repo.List(ctx, tenantID, q)
}

// Get retrieves a vendor; returns nil when not found
func (s *vendorService) Get(ctx context.Context, id string) (*models.Vendor, error) {
	return s.repo.GetByID(ctx, id)
}

// Create stores a new vendor in the actor's tenant and audits the mutation
func (s *vendorService) Create(ctx context.Context, actor *models.Session, input models.VendorInput) (*models.Vendor, error) {
	status := input.Status
	if status == "" {
		status = models.VendorStatusActive
	}

	vendor := &models.Vendor{
		ID:         uuid.New().String(),
		TenantID:   actor.User.TenantID,
		Name:       input.Name,
		Email:      input.Email,
		Phone:      input.Phone,
		Department: input.Department,
		Status:     status,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	if err := s.repo.Create(ctx, vendor); err != nil {
		return nil, fmt.Errorf("failed to create vendor: %w", err)
	}
	s.audit.Record(ctx, actor, "vendor", vendor.ID, models.AuditActionCreate, "", nil, vendor)
	return vendor, nil
}

// Update modifies a vendor and audits the before/after snapshots
func (s *vendorService) Update(ctx context.Context, actor *models.Session, id string, input models.VendorInput) (*models.Vendor, error) {
	before, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load vendor: %w", err)
	}
	if before == nil {
		return nil, fmt.Errorf("vendor %s not found", id)
	}

	updated := *before
	updated.Name = input.Name
	updated.Email = input.Email
	updated.Phone = input.Phone
	updated.Department = input.Department
	if input.Status != "" {
		updated.Status = input.Status
	}

	if err := s.repo.Update(ctx, &updated); err != nil {
		return nil, fmt.Errorf("failed to update vendor: %w", err)
	}
	s.audit.Record(ctx, actor, "vendor", id, models.AuditActionUpdate, "", before, &updated)
	return &updated, nil
}

// Delete removes a vendor and audits the deleted snapshot
func (s *vendorService) Delete(ctx context.Context, actor *models.Session, id string) error {
	before, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load vendor: %w", err)
	}
	if before == nil {
		return fmt.Errorf("vendor %s not found", id)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete vendor: %w", err)
	}
	s.audit.Record(ctx, actor, "vendor", id, models.AuditActionDelete, "", before, nil)
	return nil
}
