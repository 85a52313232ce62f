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

// warehouseRepo is the concrete implementation of WarehouseRepository
type warehouseRepo struct {
	db *database.DB
}

// NewWarehouseRepo creates a new warehouse repository
func NewWarehouseRepo(db *database.DB) WarehouseRepository {
	return &warehouseRepo{db: db}
}

// Create inserts a new warehouse
func (r *warehouseRepo) Create(ctx context.Context, wh *models.Warehouse) error {
	query := `
		INSERT INTO warehouses (id, tenant_id, code, name, city, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	now := time.Now()
	_, err := r.db.ExecContext(ctx, query,
		wh.ID, wh.TenantID, wh.Code, wh.Name, wh.City, wh.Active, now, now,
	)
	return err
}

// Update modifies a warehouse
func (r *warehouseRepo) Update(ctx context.Context, wh *models.Warehouse) error {
	query := `
		UPDATE warehouses SET code = $2, name = $3, city = $4, active = $5, updated_at = $6
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query,
		wh.ID, wh.Code, wh.Name, wh.City, wh.Active, time.Now(),
	)
	return err
}

// Delete removes a warehouse
func (r *warehouseRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM warehouses WHERE id = $1`, id)
	return err
}

// GetByID retrieves a warehouse by ID
func (r *warehouseRepo) GetByID(ctx context.Context, id string) (*models.Warehouse, error) {
	query := `
		SELECT id, tenant_id, code, name, city, active, created_at, updated_at
		FROM warehouses WHERE id = $1
	`
	var wh models.Warehouse
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&wh.ID, &wh.TenantID, &wh.Code, &wh.Name, &wh.City, &wh.Active,
		&wh.CreatedAt, &wh.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &wh, nil
}

// List returns one page of warehouses matching the query. Search matches
// code, name, and city.
func (r *warehouseRepo) List(ctx context.Context, tenantID string, q models.ListQuery) ([]models.Warehouse, int, error) {
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
		where += " AND (code ILIKE $" + pos + " OR name ILIKE $" + pos + " OR city ILIKE $" + pos + ")"
	}
	if v := q.Filter("active"); v != "" {
		args = append(args, v == "true")
		where += " AND active = $" + strconv.Itoa(len(args))
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM warehouses "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count warehouses: %w", err)
	}

	args = append(args, q.PageSize, q.Offset())
	limitPos := strconv.Itoa(len(args) - 1)
	offsetPos := strconv.Itoa(len(args))

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, tenant_id, code, name, city, active, created_at, updated_at
		FROM warehouses `+where+`
		ORDER BY created_at, id
		LIMIT $`+limitPos+` OFFSET $`+offsetPos, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list warehouses: %w", err)
	}
	defer rows.Close()

	var whs []models.Warehouse
	for rows.Next() {
		var wh models.Warehouse
		if err := rows.Scan(&wh.ID, &wh.TenantID, &wh.Code, &wh.Name, &wh.City, &wh.Active, &wh.CreatedAt, &wh.UpdatedAt); err != nil {
			return nil, 0, err
		}
		whs = append(whs, wh)
	}
	return whs, total, rows.Err()
}

// Count returns the total number of warehouses
func (r *warehouseRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM warehouses`).Scan(&count)
	return count, err
}

// CreateBin inserts a layout bin
func (r *warehouseRepo) CreateBin(ctx context.Context, bin *models.Bin) error {
	query := `
		INSERT INTO warehouse_bins (id, warehouse_id, zone, rack, position, sku, quantity, status, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.ExecContext(ctx, query,
		bin.ID, bin.WarehouseID, bin.Zone, bin.Rack, bin.Position,
		bin.SKU, bin.Quantity, bin.Status, time.Now(),
	)
	return err
}

// UpdateBin modifies a layout bin
func (r *warehouseRepo) UpdateBin(ctx context.Context, bin *models.Bin) error {
	query := `
		UPDATE warehouse_bins SET zone = $2, rack = $3, position = $4, sku = $5, quantity = $6, status = $7, updated_at = $8
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query,
		bin.ID, bin.Zone, bin.Rack, bin.Position, bin.SKU, bin.Quantity,
		bin.Status, time.Now(),
	)
	return err
}

// GetBin retrieves a layout bin by ID
func (r *warehouseRepo) GetBin(ctx context.Context, id string) (*models.Bin, error) {
	query := `
		SELECT id, warehouse_id, zone, rack, position, sku, quantity, status, updated_at
		FROM warehouse_bins WHERE id = $1
	`
	var b models.Bin
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&b.ID, &b.WarehouseID, &b.Zone, &b.Rack, &b.Position,
		&b.SKU, &b.Quantity, &b.Status, &b.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// ListBins returns one page of a warehouse's layout. Search matches zone,
// rack, and SKU; the "status" filter is exact-match. Bins keep their stable
// zone/rack/position order.
func (r *warehouseRepo) ListBins(ctx context.Context, warehouseID string, q models.ListQuery) ([]models.Bin, int, error) {
	q = sanitizeQuery(q)

	where := "WHERE warehouse_id = $1"
	args := []interface{}{warehouseID}

	if q.Search != "" {
		args = append(args, likePattern(q.Search))
		pos := strconv.Itoa(len(args))
		where += " AND (zone ILIKE $" + pos + " OR rack ILIKE $" + pos + " OR sku ILIKE $" + pos + ")"
	}
	if v := q.Filter("status"); v != "" {
		args = append(args, v)
		where += " AND status = $" + strconv.Itoa(len(args))
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM warehouse_bins "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count bins: %w", err)
	}

	args = append(args, q.PageSize, q.Offset())
	limitPos := strconv.Itoa(len(args) - 1)
	offsetPos := strconv.Itoa(len(args))

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, warehouse_id, zone, rack, position, sku, quantity, status, updated_at
		FROM warehouse_bins `+where+`
		ORDER BY zone, rack, position
		LIMIT $`+limitPos+` OFFSET $`+offsetPos, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list bins: %w", err)
	}
	defer rows.Close()

	var bins []models.Bin
	for rows.Next() {
		var b models.Bin
		if err := rows.Scan(&b.ID, &b.WarehouseID, &b.Zone, &b.Rack, &b.Position, &b.SKU, &b.Quantity, &b.Status, &b.UpdatedAt); err != nil {
			return nil, 0, err
		}
		bins = append(bins, b)
	}
	return bins, total, rows.Err()
}

// CreateMovement records a stock movement
func (r *warehouseRepo) CreateMovement(ctx context.Context, mv *models.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, warehouse_id, bin_id, sku, direction, quantity, reference, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.ExecContext(ctx, query,
		mv.ID, mv.WarehouseID, nullable(mv.BinID), mv.SKU, mv.Direction,
		mv.Quantity, mv.Reference, mv.CreatedBy, time.Now(),
	)
	return err
}

// ListMovements returns one page of stock movements, newest first. Search
// matches SKU and reference; the "direction" filter is exact-match.
func (r *warehouseRepo) ListMovements(ctx context.Context, warehouseID string, q models.ListQuery) ([]models.StockMovement, int, error) {
	q = sanitizeQuery(q)

	where := "WHERE warehouse_id = $1"
	args := []interface{}{warehouseID}

	if q.Search != "" {
		args = append(args, likePattern(q.Search))
		pos := strconv.Itoa(len(args))
		where += " AND (sku ILIKE $" + pos + " OR reference ILIKE $" + pos + ")"
	}
	if v := q.Filter("direction"); v != "" {
		args = append(args, v)
		where += " AND direction = $" + strconv.Itoa(len(args))
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM stock_movements "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count movements: %w", err)
	}

	args = append(args, q.PageSize, q.Offset())
	limitPos := strconv.Itoa(len(args) - 1)
	offsetPos := strconv.Itoa(len(args))

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, warehouse_id, COALESCE(bin_id::text, ''), sku, direction, quantity, reference, created_by, created_at
		FROM stock_movements `+where+`
		ORDER BY created_at DESC, id
		LIMIT $`+limitPos+` OFFSET $`+offsetPos, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list movements: %w", err)
	}
	defer rows.Close()

	var movements []models.StockMovement
	for rows.Next() {
		var m models.StockMovement
		if err := rows.Scan(&m.ID, &m.WarehouseID, &m.BinID, &m.SKU, &m.Direction, &m.Quantity, &m.Reference, &m.CreatedBy, &m.CreatedAt); err != nil {
			return nil, 0, err
		}
		movements = append(movements, m)
	}
	return movements, total, rows.Err()
}

// nullable maps "" to SQL NULL for optional foreign keys
func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
