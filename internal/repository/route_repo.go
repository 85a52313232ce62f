package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/admin-console-api/internal/database"
	"github.com/admin-console-api/internal/models"
)

// routeRepo is the concrete implementation of RouteRepository
type routeRepo struct {
	db *database.DB
}

// NewRouteRepo creates a new route repository
func NewRouteRepo(db *database.DB) RouteRepository {
	return &routeRepo{db: db}
}

// Create inserts a new delivery route
func (r *routeRepo) Create(ctx context.Context, route *models.DeliveryRoute) error {
	query := `
		INSERT INTO routes (id, tenant_id, warehouse_id, code, name, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	now := time.Now()
	_, err := r.db.ExecContext(ctx, query,
		route.ID, route.TenantID, route.WarehouseID, route.Code, route.Name,
		route.Status, now, now,
	)
	return err
}

// Update modifies a delivery route
func (r *routeRepo) Update(ctx context.Context, route *models.DeliveryRoute) error {
	query := `
		UPDATE routes SET warehouse_id = $2, code = $3, name = $4, status = $5, updated_at = $6
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query,
		route.ID, route.WarehouseID, route.Code, route.Name, route.Status, time.Now(),
	)
	return err
}

// Delete removes a route; its area assignments cascade
func (r *routeRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM routes WHERE id = $1`, id)
	return err
}

// GetByID retrieves a route with its ordered areas
func (r *routeRepo) GetByID(ctx context.Context, id string) (*models.DeliveryRoute, error) {
	query := `
		SELECT id, tenant_id, warehouse_id, code, name, status, created_at, updated_at
		FROM routes WHERE id = $1
	`
	var route models.DeliveryRoute
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&route.ID, &route.TenantID, &route.WarehouseID, &route.Code, &route.Name,
		&route.Status, &route.CreatedAt, &route.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	areas, err := r.ListAreas(ctx, route.ID)
	if err != nil {
		return nil, err
	}
	route.Areas = areas

	return &route, nil
}

// List returns one page of routes matching the query. Search matches code
// and name; "status" and "warehouse_id" filters are exact-match.
func (r *routeRepo) List(ctx context.Context, tenantID string, q models.ListQuery) ([]models.DeliveryRoute, int, error) {
	q = sanitizeQuery(q)

	where := "WHERE 1=1"
	args := []interface{}{}

	if tenantID != "" {
		args = append(args, tenantID)
		where += " AND tenant_id = $" + strconv.Itoa(len(args))
	}
	if q.Search != "" {
		args = append(args, likePattern(q.Search))
		pos := strconv.Itoa(len(args))
		where += " AND (code ILIKE $" + pos + " OR name ILIKE $" + pos + ")"
	}
	if v := q.Filter("status"); v != "" {
		args = append(args, v)
		where += " AND status = $" + strconv.Itoa(len(args))
	}
	if v := q.Filter("warehouse_id"); v != "" {
		args = append(args, v)
		where += " AND warehouse_id = $" + strconv.Itoa(len(args))
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM routes "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count routes: %w", err)
	}

	args = append(args, q.PageSize, q.Offset())
	limitPos := strconv.Itoa(len(args) - 1)
	offsetPos := strconv.Itoa(len(args))

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, tenant_id, warehouse_id, code, name, status, created_at, updated_at
		FROM routes `+where+`
		ORDER BY created_at, id
		LIMIT $`+limitPos+` OFFSET $`+offsetPos, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list routes: %w", err)
	}
	defer rows.Close()

	var routes []models.DeliveryRoute
	for rows.Next() {
		var route models.DeliveryRoute
		if err := rows.Scan(&route.ID, &route.TenantID, &route.WarehouseID, &route.Code, &route.Name, &route.Status, &route.CreatedAt, &route.UpdatedAt); err != nil {
			return nil, 0, err
		}
		routes = append(routes, route)
	}
	return routes, total, rows.Err()
}

// AssignArea attaches an area to a route at the given position
func (r *routeRepo) AssignArea(ctx context.Context, area *models.Area) error {
	query := `
		INSERT INTO areas (id, tenant_id, route_id, name, pincode, position)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		area.ID, area.TenantID, area.RouteID, area.Name, area.Pincode, area.Position,
	)
	return err
}

// RemoveArea detaches an area from its route
func (r *routeRepo) RemoveArea(ctx context.Context, areaID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM areas WHERE id = $1`, areaID)
	return err
}

// ListAreas returns a route's areas in position order
func (r *routeRepo) ListAreas(ctx context.Context, routeID string) ([]models.Area, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, tenant_id, COALESCE(route_id::text, ''), name, pincode, position
		FROM areas WHERE route_id = $1
		ORDER BY position, id
	`, routeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list areas: %w", err)
	}
	defer rows.Close()

	var areas []models.Area
	for rows.Next() {
		var a models.Area
		if err := rows.Scan(&a.ID, &a.TenantID, &a.RouteID, &a.Name, &a.Pincode, &a.Position); err != nil {
			return nil, err
		}
		areas = append(areas, a)
	}
	return areas, rows.Err()
}
