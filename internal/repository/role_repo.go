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

// roleRepo is the concrete implementation of RoleRepository
type roleRepo struct {
	db *database.DB
}

// NewRoleRepo creates a new role repository
func NewRoleRepo(db *database.DB) RoleRepository {
	return &roleRepo{db: db}
}

// Create inserts a new role
func (r *roleRepo) Create(ctx context.Context, role *models.Role) error {
	query := `
		INSERT INTO roles (id, system_role, ui_access, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	now := time.Now()
	_, err := r.db.ExecContext(ctx, query,
		role.ID, role.SystemRole, role.UIAccess, role.Description, now, now,
	)
	return err
}

// Update modifies a role
func (r *roleRepo) Update(ctx context.Context, role *models.Role) error {
	query := `
		UPDATE roles SET system_role = $2, ui_access = $3, description = $4, updated_at = $5
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query,
		role.ID, role.SystemRole, role.UIAccess, role.Description, time.Now(),
	)
	return err
}

// Delete removes a role
func (r *roleRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM roles WHERE id = $1`, id)
	return err
}

// GetByID retrieves a role by ID
func (r *roleRepo) GetByID(ctx context.Context, id string) (*models.Role, error) {
	query := `
		SELECT id, system_role, ui_access, description, created_at, updated_at
		FROM roles WHERE id = $1
	`
	var role models.Role
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&role.ID, &role.SystemRole, &role.UIAccess, &role.Description,
		&role.CreatedAt, &role.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &role, nil
}

// List returns one page of roles matching the query, plus the filtered total.
// Search matches system_role and description; the "ui_access" filter is
// exact-match.
func (r *roleRepo) List(ctx context.Context, q models.ListQuery) ([]models.Role, int, error) {
	q = sanitizeQuery(q)

	where := "WHERE 1=1"
	args := []interface{}{}

	if q.Search != "" {
		args = append(args, likePattern(q.Search))
		pos := strconv.Itoa(len(args))
		where += " AND (system_role ILIKE $" + pos + " OR description ILIKE $" + pos + ")"
	}
	if v := q.Filter("ui_access"); v != "" {
		args = append(args, v)
		where += " AND ui_access = $" + strconv.Itoa(len(args))
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM roles "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count roles: %w", err)
	}

	args = append(args, q.PageSize, q.Offset())
	limitPos := strconv.Itoa(len(args) - 1)
	offsetPos := strconv.Itoa(len(args))

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, system_role, ui_access, description, created_at, updated_at
		FROM roles `+where+`
		ORDER BY created_at, id
		LIMIT $`+limitPos+` OFFSET $`+offsetPos, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list roles: %w", err)
	}
	defer rows.Close()

	var roles []models.Role
	for rows.Next() {
		var role models.Role
		if err := rows.Scan(&role.ID, &role.SystemRole, &role.UIAccess, &role.Description, &role.CreatedAt, &role.UpdatedAt); err != nil {
			return nil, 0, err
		}
		roles = append(roles, role)
	}
	return roles, total, rows.Err()
}

// Count returns the total number of roles
func (r *roleRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM roles`).Scan(&count)
	return count, err
}
