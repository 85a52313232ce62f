package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/admin-console-api/internal/database"
	"github.com/admin-console-api/internal/models"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

func newMockDB(t *testing.T) (*database.DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return database.Wrap(conn, zerolog.Nop()), mock
}

func TestVendorListAppliesTenantSearchAndFilter(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewVendorRepo(db)

	now := time.Now()
	countQuery := `SELECT COUNT(*) FROM vendors WHERE 1=1 AND tenant_id = $1 AND (name ILIKE $2 OR email ILIKE $2) AND status = $3`
	mock.ExpectQuery(regexp.QuoteMeta(countQuery)).
		WithArgs("t-1", "%priya%", "Active").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	listRows := sqlmock.NewRows([]string{
		"id", "tenant_id", "name", "email", "phone", "department", "status", "created_at", "updated_at",
	}).AddRow("v-1", "t-1", "Priya Traders", "priya@x.com", "", "Procurement", "Active", now, now)

	mock.ExpectQuery(regexp.QuoteMeta("FROM vendors WHERE 1=1 AND tenant_id = $1 AND (name ILIKE $2 OR email ILIKE $2) AND status = $3")).
		WithArgs("t-1", "%priya%", "Active", 10, 0).
		WillReturnRows(listRows)

	vendors, total, err := repo.List(context.Background(), "t-1", models.ListQuery{
		Search:   "priya",
		Filters:  map[string]string{"status": "Active"},
		Page:     1,
		PageSize: 10,
	})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if total != 1 || len(vendors) != 1 {
		t.Errorf("List() = %d vendors, total %d, want 1/1", len(vendors), total)
	}
	if vendors[0].Name != "Priya Traders" {
		t.Errorf("vendor name = %q", vendors[0].Name)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestVendorListPageTwoOffsets(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewVendorRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM vendors WHERE 1=1")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(11))

	mock.ExpectQuery(regexp.QuoteMeta("LIMIT $1 OFFSET $2")).
		WithArgs(9, 9).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "tenant_id", "name", "email", "phone", "department", "status", "created_at", "updated_at",
		}))

	_, total, err := repo.List(context.Background(), "", models.ListQuery{Page: 2, PageSize: 9})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if total != 11 {
		t.Errorf("total = %d, want 11", total)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestVendorGetByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewVendorRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM vendors WHERE id = $1")).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	vendor, err := repo.GetByID(context.Background(), "missing")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if vendor != nil {
		t.Errorf("GetByID() = %+v, want nil for missing row", vendor)
	}
}

func TestUserCreateWritesOrderedRoleAssignments(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("u-1", "t-1", "a@x.com", "A", "hash", true, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO user_roles (user_id, role_id, position) VALUES ($1, $2, $3)")).
		WithArgs("u-1", "r-primary", 0).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO user_roles (user_id, role_id, position) VALUES ($1, $2, $3)")).
		WithArgs("u-1", "r-secondary", 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Create(context.Background(), &models.User{
		ID:       "u-1",
		TenantID: "t-1",
		Email:    "a@x.com",
		Name:     "A",
		Active:   true,
		Roles:    []models.Role{{ID: "r-primary"}, {ID: "r-secondary"}},
	}, "hash")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestUserSetRolesReplacesSequence(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM user_roles WHERE user_id = $1")).
		WithArgs("u-1").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO user_roles")).
		WithArgs("u-1", "r-new", 0).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.SetRoles(context.Background(), "u-1", []string{"r-new"}); err != nil {
		t.Fatalf("SetRoles() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestUserGetCredentialsMatchesEmailCaseInsensitively(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepo(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("WHERE lower(email) = lower($1)")).
		WithArgs("Admin@Example.com").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "tenant_id", "email", "name", "password_hash", "active", "created_at", "updated_at",
		}).AddRow("u-1", "t-1", "admin@example.com", "Admin", "bcrypt-hash", true, now, now))

	mock.ExpectQuery(regexp.QuoteMeta("FROM user_roles ur")).
		WillReturnRows(sqlmock.NewRows([]string{
			"user_id", "id", "system_role", "ui_access", "description", "created_at", "updated_at",
		}).
			AddRow("u-1", "r-1", models.RoleSuperAdmin, models.PortalAdmin, "", now, now).
			AddRow("u-1", "r-2", models.RoleVendorAdmin, models.PortalVendor, "", now, now))

	user, hash, err := repo.GetCredentials(context.Background(), "Admin@Example.com")
	if err != nil {
		t.Fatalf("GetCredentials() error = %v", err)
	}
	if hash != "bcrypt-hash" {
		t.Errorf("hash = %q", hash)
	}
	if len(user.Roles) != 2 || user.Roles[0].SystemRole != models.RoleSuperAdmin {
		t.Errorf("roles = %v, want super_admin first (position order)", user.Roles)
	}
}

func TestGetCredentialsUnknownEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE lower(email) = lower($1)")).
		WithArgs("nobody@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	user, hash, err := repo.GetCredentials(context.Background(), "nobody@example.com")
	if err != nil {
		t.Fatalf("GetCredentials() error = %v", err)
	}
	if user != nil || hash != "" {
		t.Errorf("GetCredentials() = (%v, %q), want (nil, \"\")", user, hash)
	}
}

func TestLikePatternEscapesMetacharacters(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "%plain%"},
		{"50%", `%50\%%`},
		{"a_b", `%a\_b%`},
		{`back\slash`, `%back\\slash%`},
	}
	for _, tt := range tests {
		if got := likePattern(tt.in); got != tt.want {
			t.Errorf("likePattern(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSanitizeQueryDefaults(t *testing.T) {
	q := sanitizeQuery(models.ListQuery{})
	if q.PageSize != 25 {
		t.Errorf("PageSize = %d, want 25", q.PageSize)
	}
	if q.Page != 1 {
		t.Errorf("Page = %d, want 1", q.Page)
	}

	// An explicit out-of-range page is preserved after the minimum bound
	q = sanitizeQuery(models.ListQuery{Page: 7, PageSize: 10})
	if q.Page != 7 || q.PageSize != 10 {
		t.Errorf("sanitizeQuery altered in-range values: %+v", q)
	}
}

func TestAssignAreaColumnsMatchSchema(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRouteRepo(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO areas (id, tenant_id, route_id, name, pincode, position)")).
		WithArgs("a-1", "t-1", "rt-1", "MG Road", "560001", 0).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.AssignArea(context.Background(), &models.Area{
		ID:       "a-1",
		TenantID: "t-1",
		RouteID:  "rt-1",
		Name:     "MG Road",
		Pincode:  "560001",
		Position: 0,
	})
	if err != nil {
		t.Fatalf("AssignArea() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestListAreasReadsNullableRouteAsText(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRouteRepo(db)

	rows := sqlmock.NewRows([]string{
		"id", "tenant_id", "coalesce", "name", "pincode", "position",
	}).
		AddRow("a-1", "t-1", "rt-1", "MG Road", "560001", 0).
		AddRow("a-2", "t-1", "", "Indiranagar", "560038", 1)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, tenant_id, COALESCE(route_id::text, ''), name, pincode, position")).
		WithArgs("rt-1").
		WillReturnRows(rows)

	areas, err := repo.ListAreas(context.Background(), "rt-1")
	if err != nil {
		t.Fatalf("ListAreas() error = %v", err)
	}
	if len(areas) != 2 {
		t.Fatalf("ListAreas() = %d areas, want 2", len(areas))
	}
	if areas[0].Name != "MG Road" || areas[1].Name != "Indiranagar" {
		t.Errorf("areas out of position order: %q, %q", areas[0].Name, areas[1].Name)
	}
	if areas[1].RouteID != "" {
		t.Errorf("detached area RouteID = %q, want empty", areas[1].RouteID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestListMovementsReadsNullableBinAsText(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewWarehouseRepo(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM stock_movements WHERE warehouse_id = $1")).
		WithArgs("wh-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	rows := sqlmock.NewRows([]string{
		"id", "warehouse_id", "coalesce", "sku", "direction", "quantity", "reference", "created_by", "created_at",
	}).AddRow("mv-1", "wh-1", "", "SKU-9", "inbound", 5, "PO-44", "u-1", now)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, warehouse_id, COALESCE(bin_id::text, ''), sku, direction, quantity, reference, created_by, created_at")).
		WithArgs("wh-1", 10, 0).
		WillReturnRows(rows)

	movements, total, err := repo.ListMovements(context.Background(), "wh-1", models.ListQuery{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("ListMovements() error = %v", err)
	}
	if total != 1 || len(movements) != 1 {
		t.Fatalf("ListMovements() = %d movements, total %d, want 1/1", len(movements), total)
	}
	if movements[0].BinID != "" {
		t.Errorf("unbinned movement BinID = %q, want empty", movements[0].BinID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestAuditBatchInsertAbortsOnRowError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAuditRepo(db)

	copyStmt := pq.CopyIn("audit_logs",
		"id", "tenant_id", "actor_id", "actor_name", "entity_type", "entity_id",
		"action", "field", "before_data", "after_data", "created_at",
	)
	mock.ExpectBegin()
	prep := mock.ExpectPrepare(regexp.QuoteMeta(copyStmt))
	prep.ExpectExec().WillReturnError(errors.New("copy aborted"))
	mock.ExpectRollback()

	inserted, err := repo.BatchInsert(context.Background(), []models.AuditLog{
		{ID: "al-1", TenantID: "t-1", ActorID: "u-1", Action: models.AuditActionCreate, Before: "null", After: "null"},
		{ID: "al-2", TenantID: "t-1", ActorID: "u-1", Action: models.AuditActionCreate, Before: "null", After: "null"},
	})
	if err == nil {
		t.Fatal("BatchInsert() expected error on aborted COPY")
	}
	if inserted != 0 {
		t.Errorf("inserted = %d, want 0 after abort", inserted)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
