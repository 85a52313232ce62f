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

// warehouseService is the concrete implementation of WarehouseService
type warehouseService struct {
	repo  repository.WarehouseRepository
	audit AuditService
	log   zerolog.Logger
}

// newWarehouseService creates a new WarehouseService
func newWarehouseService(repo repository.WarehouseRepository, audit AuditService, log zerolog.Logger) *warehouseService {
	return &warehouseService{
		repo:  repo,
		audit: audit,
		log:   log.With().Str("service", "warehouse").Logger(),
	}
}

// List returns one page of warehouses
func (s *warehouseService) List(ctx context.Context, tenantID string, q models.ListQuery) ([]models.Warehouse, int, error) {
	return s.repo.List(ctx, tenantID, q)
}

// Get retrieves a warehouse; returns nil when not found
func (s *warehouseService) Get(ctx context.Context, id string) (*models.Warehouse, error) {
	return s.repo.GetByID(ctx, id)
}

// Create stores a new warehouse in the actor's tenant
func (s *warehouseService) Create(ctx context.Context, actor *models.Session, input models.WarehouseInput) (*models.Warehouse, error) {
	active := true
	if input.Active != nil {
		active = *input.Active
	}

	wh := &models.Warehouse{
		ID:        uuid.New().String(),
		TenantID:  actor.User.TenantID,
		Code:      input.Code,
		Name:      input.Name,
		City:      input.City,
		Active:    active,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.repo.Create(ctx, wh); err != nil {
		return nil, fmt.Errorf("failed to create warehouse: %w", err)
	}
	s.audit.Record(ctx, actor, "warehouse", wh.ID, models.AuditActionCreate, "", nil, wh)
	return wh, nil
}

// Update modifies a warehouse and audits the before/after snapshots
func (s *warehouseService) Update(ctx context.Context, actor *models.Session, id string, input models.WarehouseInput) (*models.Warehouse, error) {
	before, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load warehouse: %w", err)
	}
	if before == nil {
		return nil, fmt.Errorf("warehouse %s not found", id)
	}

	updated := *before
	updated.Code = input.Code
	updated.Name = input.Name
	updated.City = input.City
	if input.Active != nil {
		updated.Active = *input.Active
	}

	if err := s.repo.Update(ctx, &updated); err != nil {
		return nil, fmt.Errorf("failed to update warehouse: %w", err)
	}
	s.audit.Record(ctx, actor, "warehouse", id, models.AuditActionUpdate, "", before, &updated)
	return &updated, nil
}

// Delete removes a warehouse and audits the deleted snapshot
func (s *warehouseService) Delete(ctx context.Context, actor *models.Session, id string) error {
	before, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load warehouse: %w", err)
	}
	if before == nil {
		return fmt.Errorf("warehouse %s not found", id)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete warehouse: %w", err)
	}
	s.audit.Record(ctx, actor, "warehouse", id, models.AuditActionDelete, "", before, nil)
	return nil
}

// ListBins returns one page of a warehouse's layout
func (s *warehouseService) ListBins(ctx context.Context, warehouseID string, q models.ListQuery) ([]models.Bin, int, error) {
	return s.repo.ListBins(ctx, warehouseID, q)
}

// CreateBin adds a layout bin to a warehouse
func (s *warehouseService) CreateBin(ctx context.Context, actor *models.Session, warehouseID string, input models.BinInput) (*models.Bin, error) {
	status := input.Status
	if status == "" {
		status = models.BinStatusEmpty
	}

	bin := &models.Bin{
		ID:          uuid.New().String(),
		WarehouseID: warehouseID,
		Zone:        input.Zone,
		Rack:        input.Rack,
		Position:    input.Position,
		SKU:         input.SKU,
		Quantity:    input.Quantity,
		Status:      status,
		UpdatedAt:   time.Now(),
	}

	if err := s.repo.CreateBin(ctx, bin); err != nil {
		return nil, fmt.Errorf("failed to create bin: %w", err)
	}
	s.audit.Record(ctx, actor, "warehouse_bin", bin.ID, models.AuditActionCreate, "", nil, bin)
	return bin, nil
}

// UpdateBin modifies a layout bin
func (s *warehouseService) UpdateBin(ctx context.Context, actor *models.Session, binID string, input models.BinInput) (*models.Bin, error) {
	before, err := s.repo.GetBin(ctx, binID)
	if err != nil {
		return nil, fmt.Errorf("failed to load bin: %w", err)
	}
	if before == nil {
		return nil, fmt.Errorf("bin %s not found", binID)
	}

	updated := *before
	updated.Zone = input.Zone
	updated.Rack = input.Rack
	updated.Position = input.Position
	updated.SKU = input.SKU
	updated.Quantity = input.Quantity
	if input.Status != "" {
		updated.Status = input.Status
	}

	if err := s.repo.UpdateBin(ctx, &updated); err != nil {
		return nil, fmt.Errorf("failed to update bin: %w", err)
	}
	s.audit.Record(ctx, actor, "warehouse_bin", binID, models.AuditActionUpdate, "", before, &updated)
	return &updated, nil
}

// ListMovements returns one page of stock movements, newest first
func (s *warehouseService) ListMovements(ctx context.Context, warehouseID string, q models.ListQuery) ([]models.StockMovement, int, error) {
	return s.repo.ListMovements(ctx, warehouseID, q)
}

// RecordMovement stores a stock movement attributed to the actor
func (s *warehouseService) RecordMovement(ctx context.Context, actor *models.Session, warehouseID string, input models.MovementInput) (*models.StockMovement, error) {
	if input.Quantity <= 0 {
		return nil, fmt.Errorf("movement quantity must be positive")
	}

	mv := &models.StockMovement{
		ID:          uuid.New().String(),
		WarehouseID: warehouseID,
		BinID:       input.BinID,
		SKU:         input.SKU,
		Direction:   input.Direction,
		Quantity:    input.Quantity,
		Reference:   input.Reference,
		CreatedBy:   actor.User.ID,
		CreatedAt:   time.Now(),
	}

	if err := s.repo.CreateMovement(ctx, mv); err != nil {
		return nil, fmt.Errorf("failed to record movement: %w", err)
	}
	s.audit.Record(ctx, actor, "stock_movement", mv.ID, models.AuditActionCreate, "", nil, mv)
	return mv, nil
}
