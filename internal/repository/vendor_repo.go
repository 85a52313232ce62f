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

// vendorRepo is the concrete implementation of VendorRepository
type vendorRepo struct {
	db *database.DB
}

// NewVendorRepo creates a new vendor repository
func NewVendorRepo(db *database.DB) VendorRepository {
	return &vendorRepo{db: db}
}

// Create inserts a new vendor
func (r *vendorRepo) Create(ctx context.Context, vendor *models.Vendor) error {
	query := `
		INSERT INTO vendors (id, tenant_id, name, email, phone, department, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	now := time.Now()
	_, err := r.db.ExecContext(ctx, query,
		vendor.ID, vendor.TenantID, vendor.Name, vendor.Email, vendor.Phone,
		vendor.Department, vendor.Status, now, now,
	)
	return err
}

// Update modifies a vendor
func (r *vendorRepo) Update(ctx context.Context, vendor *models.Vendor) error {
	query := `
		UPDATE vendors SET name = $2, email = $3, phone = $4, department = $5, status = $6, updated_at = $7
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query,
		vendor.ID, vendor.Name, vendor.Email, vendor.Phone, vendor.Department,
		vendor.Status, time.Now(),
	)
	return err
}

// Delete removes a vendor
func (r *vendorRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM vendors WHERE id = $1`, id)
	return err
}

// GetByID retrieves a vendor by ID
func (r *vendorRepo) GetByID(ctx context.Context, id string) (*models.Vendor, error) {
	query := `
		SELECT id, tenant_id, name, email, phone, department, status, created_at, updated_at
		FROM vendors WHERE id = $1
	`
	var vendor models.Vendor
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&vendor.ID, &vendor.TenantID, &vendor.Name, &vendor.Email, &vendor.Phone,
		&vendor.Department, &vendor.Status, &vendor.CreatedAt, &vendor.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &vendor, nil
}

// List returns one page of vendors matching the query, plus the filtered
// total. Search matches name and email; "status" and "department" filters are
// exact-match and ANDed together.
func (r *vendorRepo) List(ctx context.Context, tenantID string, q models.ListQuery) ([]models.Vendor, int, error) {
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
		where += " AND (name ILIKE $" + pos + " OR email ILIKE $" + pos + ")"
	}
	if v := q.Filter("status"); v != "" {
		args = append(args, v)
		where += " AND status = $" + strconv.Itoa(len(args))
	}
	if v := q.Filter("department"); v != "" {
		args = append(args, v)
		where += " AND department = $" + strconv.Itoa(len(args))
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM vendors "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count vendors: %w", err)
	}

	args = append(args, q.PageSize, q.Offset())
	limitPos := strconv.Itoa(len(args) - 1)
	offsetPos := strconv.Itoa(len(args))

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, tenant_id, name, email, phone, department, status, created_at, updated_at
		FROM vendors `+where+`
		ORDER BY created_at, id
		LIMIT $`+limitPos+` OFFSET $`+offsetPos, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list vendors: %w", err)
	}
	defer rows.Close()

	var vendors []models.Vendor
	for rows.Next() {
		var v models.Vendor
		if err := rows.Scan(&v.ID, &v.TenantID, &v.Name, &v.Email, &v.Phone, &v.Department, &v.Status, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, 0, err
		}
		vendors = append(vendors, v)
	}
	return vendors, total, rows.Err()
}

// Count returns the total number of vendors
func (r *vendorRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM vendors`).Scan(&count)
	return count, err
}
