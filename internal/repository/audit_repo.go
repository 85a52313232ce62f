package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/admin-console-api/internal/database"
	"github.com/admin-console-api/internal/models"
	"github.com/lib/pq"
)

// auditRepo is the concrete implementation of AuditRepository
type auditRepo struct {
	db *database.DB
}

// NewAuditRepo creates a new audit repository
func NewAuditRepo(db *database.DB) AuditRepository {
	return &auditRepo{db: db}
}

// Insert writes a single audit record
func (r *auditRepo) Insert(ctx context.Context, entry *models.AuditLog) error {
	query := `
		INSERT INTO audit_logs (id, tenant_id, actor_id, actor_name, entity_type, entity_id, action, field, before_data, after_data, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	_, err := r.db.ExecContext(ctx, query,
		entry.ID, entry.TenantID, entry.ActorID, entry.ActorName,
		entry.EntityType, entry.EntityID, entry.Action, entry.Field,
		entry.Before, entry.After, createdAt,
	)
	return err
}

// BatchInsert writes multiple audit records using PostgreSQL COPY. Used by
// the retry flusher to drain buffered records in one round trip.
func (r *auditRepo) BatchInsert(ctx context.Context, entries []models.AuditLog) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("audit_logs",
		"id", "tenant_id", "actor_id", "actor_name", "entity_type", "entity_id",
		"action", "field", "before_data", "after_data", "created_at",
	))
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for _, entry := range entries {
		createdAt := entry.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now()
		}
		// A row error aborts the whole COPY, so there is no partial success
		// to salvage.
		_, err := stmt.ExecContext(ctx,
			entry.ID, entry.TenantID, entry.ActorID, entry.ActorName,
			entry.EntityType, entry.EntityID, string(entry.Action), entry.Field,
			entry.Before, entry.After, createdAt,
		)
		if err != nil {
			return 0, err
		}
	}

	// Flush the COPY buffer
	if _, err := stmt.ExecContext(ctx); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	return len(entries), nil
}

// List returns one page of audit records, newest first. Search matches
// actor_name and field; "entity_type", "action", and "actor_id" filters are
// exact-match.
func (r *auditRepo) List(ctx context.Context, tenantID string, q models.ListQuery) ([]models.AuditLog, int, error) {
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
		where += " AND (actor_name ILIKE $" + pos + " OR field ILIKE $" + pos + ")"
	}
	if v := q.Filter("entity_type"); v != "" {
		args = append(args, v)
		where += " AND entity_type = $" + strconv.Itoa(len(args))
	}
	if v := q.Filter("action"); v != "" {
		args = append(args, v)
		where += " AND action = $" + strconv.Itoa(len(args))
	}
	if v := q.Filter("actor_id"); v != "" {
		args = append(args, v)
		where += " AND actor_id = $" + strconv.Itoa(len(args))
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM audit_logs "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count audit logs: %w", err)
	}

	args = append(args, q.PageSize, q.Offset())
	limitPos := strconv.Itoa(len(args) - 1)
	offsetPos := strconv.Itoa(len(args))

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, tenant_id, actor_id, actor_name, entity_type, entity_id, action, field, before_data, after_data, created_at
		FROM audit_logs `+where+`
		ORDER BY created_at DESC, id
		LIMIT $`+limitPos+` OFFSET $`+offsetPos, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list audit logs: %w", err)
	}
	defer rows.Close()

	var logs []models.AuditLog
	for rows.Next() {
		var l models.AuditLog
		if err := rows.Scan(&l.ID, &l.TenantID, &l.ActorID, &l.ActorName, &l.EntityType, &l.EntityID, &l.Action, &l.Field, &l.Before, &l.After, &l.CreatedAt); err != nil {
			return nil, 0, err
		}
		logs = append(logs, l)
	}
	return logs, total, rows.Err()
}

// Count returns the total number of audit records
func (r *auditRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM audit_logs`).Scan(&count)
	return count, err
}
