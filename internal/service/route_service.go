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

// routeService is the concrete implementation of RouteService
type routeService struct {
	repo  repository.RouteRepository
	audit AuditService
	log   zerolog.Logger
}

// newRouteService creates a new RouteService
func newRouteService(repo repository.RouteRepository, audit AuditService, log zerolog.Logger) *routeService {
	return &routeService{
		repo:  repo,
		audit: audit,
		log:   log.With().Str("service", "route").Logger(),
	}
}

// List returns one page of delivery routes
func (s *routeService) List(ctx context.Context, tenantID string, q models.ListQuery) ([]models.DeliveryRoute, int, error) {
	return s.repo.List(ctx, tenantID, q)
}

// Get retrieves a route with its areas; returns nil when not found
func (s *routeService) Get(ctx context.Context, id string) (*models.DeliveryRoute, error) {
	return s.repo.GetByID(ctx, id)
}

// Create stores a new route in the actor's tenant
func (s *routeService) Create(ctx context.Context, actor *models.Session, input models.RouteInput) (*models.DeliveryRoute, error) {
	status := input.Status
	if status == "" {
		status = models.RouteStatusPlanned
	}

	route := &models.DeliveryRoute{
		ID:          uuid.New().String(),
		TenantID:    actor.User.TenantID,
		WarehouseID: input.WarehouseID,
		Code:        input.Code,
		Name:        input.Name,
		Status:      status,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := s.repo.Create(ctx, route); err != nil {
		return nil, fmt.Errorf("failed to create route: %w", err)
	}
	s.audit.Record(ctx, actor, "route", route.ID, models.AuditActionCreate, "", nil, route)
	return route, nil
}

// Update modifies a route and audits the before/after snapshots
func (s *routeService) Update(ctx context.Context, actor *models.Session, id string, input models.RouteInput) (*models.DeliveryRoute, error) {
	before, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load route: %w", err)
	}
	if before == nil {
		return nil, fmt.Errorf("route %s not found", id)
	}

	updated := *before
	updated.WarehouseID = input.WarehouseID
	updated.Code = input.Code
	updated.Name = input.Name
	if input.Status != "" {
		updated.Status = input.Status
	}

	if err := s.repo.Update(ctx, &updated); err != nil {
		return nil, fmt.Errorf("failed to update route: %w", err)
	}
	s.audit.Record(ctx, actor, "route", id, models.AuditActionUpdate, "", before, &updated)
	return &updated, nil
}

// Delete removes a route and audits the deleted snapshot
func (s *routeService) Delete(ctx context.Context, actor *models.Session, id string) error {
	before, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load route: %w", err)
	}
	if before == nil {
		return fmt.Errorf("route %s not found", id)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete route: %w", err)
	}
	s.audit.Record(ctx, actor, "route", id, models.AuditActionDelete, "", before, nil)
	return nil
}

// AssignArea attaches an area to a route
func (s *routeService) AssignArea(ctx context.Context, actor *models.Session, routeID string, input models.AreaInput) (*models.Area, error) {
	route, err := s.repo.GetByID(ctx, routeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load route: %w", err)
	}
	if route == nil {
		return nil, fmt.Errorf("route %s not found", routeID)
	}

	area := &models.Area{
		ID:       uuid.New().String(),
		TenantID: route.TenantID,
		RouteID:  routeID,
		Name:     input.Name,
		Pincode:  input.Pincode,
		Position: input.Position,
	}

	if err := s.repo.AssignArea(ctx, area); err != nil {
		return nil, fmt.Errorf("failed to assign area: %w", err)
	}
	s.audit.Record(ctx, actor, "area", area.ID, models.AuditActionCreate, "", nil, area)
	return area, nil
}

// RemoveArea detaches an area from a route
func (s *routeService) RemoveArea(ctx context.Context, actor *models.Session, routeID, areaID string) error {
	if err := s.repo.RemoveArea(ctx, areaID); err != nil {
		return fmt.Errorf("failed to remove area: %w", err)
	}
	s.audit.Record(ctx, actor, "area", areaID, models.AuditActionDelete, "route_id", routeID, nil)
	return nil
}
