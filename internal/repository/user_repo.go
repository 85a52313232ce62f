package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/admin-console-api/internal/database"
	"github.com/admin-console-api/internal/models"
	"github.com/lib/pq"
)

// userRepo is the concrete implementation of UserRepository
type userRepo struct {
	db *database.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *database.DB) UserRepository {
	return &userRepo{db: db}
}

// Create inserts a new user and its ordered role assignments
func (r *userRepo) Create(ctx context.Context, user *models.User, passwordHash string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO users (id, tenant_id, email, name, password_hash, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	now := time.Now()
	_, err = tx.ExecContext(ctx, query,
		user.ID, user.TenantID, user.Email, user.Name, passwordHash, user.Active,
		now, now,
	)
	if err != nil {
		return err
	}

	for i, role := range user.Roles {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO user_roles (user_id, role_id, position) VALUES ($1, $2, $3)`,
			user.ID, role.ID, i,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Update modifies a user's profile fields
func (r *userRepo) Update(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users SET email = $2, name = $3, active = $4, updated_at = $5
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Email, user.Name, user.Active, time.Now(),
	)
	return err
}

// Delete removes a user; role assignments cascade
func (r *userRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	return err
}

// GetByID retrieves a user with its ordered role sequence
func (r *userRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `
		SELECT id, tenant_id, email, name, active, created_at, updated_at
		FROM users WHERE id = $1
	`
	var user models.User
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID, &user.TenantID, &user.Email, &user.Name, &user.Active,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	roles, err := r.loadRoles(ctx, []string{user.ID})
	if err != nil {
		return nil, err
	}
	user.Roles = roles[user.ID]

	return &user, nil
}

// GetCredentials retrieves a user and its password hash by email for login
func (r *userRepo) GetCredentials(ctx context.Context, email string) (*models.User, string, error) {
	query := `
		SELECT id, tenant_id, email, name, password_hash, active, created_at, updated_at
		FROM users WHERE lower(email) = lower($1)
	`
	var (
		user models.User
		hash string
	)
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID, &user.TenantID, &user.Email, &user.Name, &hash, &user.Active,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", err
	}

	roles, err := r.loadRoles(ctx, []string{user.ID})
	if err != nil {
		return nil, "", err
	}
	user.Roles = roles[user.ID]

	return &user, hash, nil
}

// SetRoles replaces a user's role sequence, preserving the given order
func (r *userRepo) SetRoles(ctx context.Context, userID string, roleIDs []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM user_roles WHERE user_id = $1`, userID); err != nil {
		return err
	}

	for i, roleID := range roleIDs {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO user_roles (user_id, role_id, position) VALUES ($1, $2, $3)`,
			userID, roleID, i,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// List returns one page of users matching the query, plus the filtered total.
// Search matches name and email; the "active" filter is exact-match.
func (r *userRepo) List(ctx context.Context, tenantID string, q models.ListQuery) ([]models.User, int, error) {
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
	if v := q.Filter("active"); v != "" {
		args = append(args, v == "true")
		where += " AND active = $" + strconv.Itoa(len(args))
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	args = append(args, q.PageSize, q.Offset())
	limitPos := strconv.Itoa(len(args) - 1)
	offsetPos := strconv.Itoa(len(args))

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, tenant_id, email, name, active, created_at, updated_at
		FROM users `+where+`
		ORDER BY created_at, id
		LIMIT $`+limitPos+` OFFSET $`+offsetPos, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	var ids []string
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.TenantID, &u.Email, &u.Name, &u.Active, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, 0, err
		}
		users = append(users, u)
		ids = append(ids, u.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	roles, err := r.loadRoles(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	for i := range users {
		users[i].Roles = roles[users[i].ID]
	}

	return users, total, nil
}

// Count returns the total number of users
func (r *userRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	return count, err
}

// loadRoles fetches the ordered role sequences for a set of users in one
// query. Position 0 is the primary role.
func (r *userRepo) loadRoles(ctx context.Context, userIDs []string) (map[string][]models.Role, error) {
	byUser := make(map[string][]models.Role, len(userIDs))
	if len(userIDs) == 0 {
		return byUser, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT ur.user_id, r.id, r.system_role, r.ui_access, r.description, r.created_at, r.updated_at
		FROM user_roles ur
		JOIN roles r ON r.id = ur.role_id
		WHERE ur.user_id = ANY($1)
		ORDER BY ur.user_id, ur.position
	`, pq.Array(userIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to load user roles: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			userID string
			role   models.Role
		)
		if err := rows.Scan(&userID, &role.ID, &role.SystemRole, &role.UIAccess, &role.Description, &role.CreatedAt, &role.UpdatedAt); err != nil {
			return nil, err
		}
		byUser[userID] = append(byUser[userID], role)
	}
	return byUser, rows.Err()
}
