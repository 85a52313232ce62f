package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/admin-console-api/internal/auth"
	"github.com/admin-console-api/internal/config"
	"github.com/admin-console-api/internal/mocks"
	"github.com/admin-console-api/internal/models"
	"github.com/admin-console-api/internal/repository"
	"github.com/admin-console-api/internal/service"
	"github.com/rs/zerolog"
)

func newTestServices(t *testing.T) (*service.Services, *testRepos, auth.SessionStore) {
	t.Helper()

	repos := &testRepos{
		users:      mocks.NewMockUserRepository(),
		roles:      mocks.NewMockRoleRepository(),
		vendors:    mocks.NewMockVendorRepository(),
		warehouses: mocks.NewMockWarehouseRepository(),
		routes:     mocks.NewMockRouteRepository(),
		audit:      mocks.NewMockAuditRepository(),
	}

	cfg := &config.Config{
		Auth: config.AuthConfig{JWTSecret: "test-secret", TokenTTL: time.Hour},
	}
	sessions := auth.NewMemorySessionStore()
	tokens := auth.NewTokenManager(&cfg.Auth)

	services := service.NewServices(&repository.Repositories{
		User:      repos.users,
		Role:      repos.roles,
		Vendor:    repos.vendors,
		Warehouse: repos.warehouses,
		Route:     repos.routes,
		Audit:     repos.audit,
	}, sessions, tokens, cfg, zerolog.Nop())

	return services, repos, sessions
}

type testRepos struct {
	users      *mocks.MockUserRepository
	roles      *mocks.MockRoleRepository
	vendors    *mocks.MockVendorRepository
	warehouses *mocks.MockWarehouseRepository
	routes     *mocks.MockRouteRepository
	audit      *mocks.MockAuditRepository
}

func actorSession() *models.Session {
	return &models.Session{
		Token: "actor-token",
		User: models.User{
			ID:       "actor-1",
			TenantID: "t-1",
			Name:     "Actor",
			Email:    "actor@example.com",
			Active:   true,
			Roles: []models.Role{{
				ID:         "r-1",
				SystemRole: models.RoleSuperAdmin,
				UIAccess:   models.PortalAdmin,
			}},
		},
		CreatedAt: time.Now(),
	}
}

func seedUser(t *testing.T, repos *testRepos, password string, roles ...models.Role) *models.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatal(err)
	}
	user := &models.User{
		ID:       "u-1",
		TenantID: "t-1",
		Email:    "user@example.com",
		Name:     "User",
		Roles:    roles,
		Active:   true,
	}
	repos.users.Create(context.Background(), user, hash)
	return user
}

func TestLoginStoresSessionBeforeReturningToken(t *testing.T) {
	services, repos, sessions := newTestServices(t)
	seedUser(t, repos, "pass-1234", models.Role{
		ID: "r-1", SystemRole: models.RoleAdmin, UIAccess: models.PortalAdmin,
	})

	result, err := services.Auth.Login(context.Background(), "user@example.com", "pass-1234")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if result.Token == "" {
		t.Fatal("Login() returned empty token")
	}

	session, ok := sessions.Get(result.Token)
	if !ok {
		t.Fatal("session missing from store after login")
	}
	if session.User.ID != "u-1" {
		t.Errorf("session user = %s, want u-1", session.User.ID)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	services, repos, _ := newTestServices(t)
	seedUser(t, repos, "pass-1234", models.Role{
		ID: "r-1", SystemRole: models.RoleAdmin, UIAccess: models.PortalAdmin,
	})

	_, err := services.Auth.Login(context.Background(), "user@example.com", "nope")
	if !errors.Is(err, service.ErrInvalidCredentials) {
		t.Errorf("Login() error = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginRejectsUserWithoutRoles(t *testing.T) {
	services, repos, _ := newTestServices(t)
	seedUser(t, repos, "pass-1234")

	_, err := services.Auth.Login(context.Background(), "user@example.com", "pass-1234")
	if !errors.Is(err, service.ErrInvalidCredentials) {
		t.Errorf("Login() error = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginRejectsDisabledAccount(t *testing.T) {
	services, repos, _ := newTestServices(t)
	user := seedUser(t, repos, "pass-1234", models.Role{
		ID: "r-1", SystemRole: models.RoleAdmin, UIAccess: models.PortalAdmin,
	})
	user.Active = false

	_, err := services.Auth.Login(context.Background(), "user@example.com", "pass-1234")
	if !errors.Is(err, service.ErrAccountDisabled) {
		t.Errorf("Login() error = %v, want ErrAccountDisabled", err)
	}
}

func TestLogoutRemovesSessionAndToleratesUnknownToken(t *testing.T) {
	services, _, sessions := newTestServices(t)
	sessions.Put(*actorSession())

	if err := services.Auth.Logout(context.Background(), "actor-token"); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if _, ok := sessions.Get("actor-token"); ok {
		t.Error("session still present after logout")
	}

	// Logging out an unknown token is a no-op, not an error
	if err := services.Auth.Logout(context.Background(), "never-existed"); err != nil {
		t.Errorf("Logout(unknown) error = %v, want nil", err)
	}
}

func TestVendorCreateFillsDefaultsAndTenant(t *testing.T) {
	services, repos, _ := newTestServices(t)

	vendor, err := services.Vendor.Create(context.Background(), actorSession(), models.VendorInput{
		Name:  "Acme Traders",
		Email: "acme@example.com",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if vendor.Status != models.VendorStatusActive {
		t.Errorf("status = %q, want %q", vendor.Status, models.VendorStatusActive)
	}
	if vendor.TenantID != "t-1" {
		t.Errorf("tenant = %q, want t-1 (taken from actor)", vendor.TenantID)
	}
	if _, ok := repos.vendors.Vendors[vendor.ID]; !ok {
		t.Error("vendor not persisted")
	}
}

func TestVendorUpdateAuditsBeforeAndAfter(t *testing.T) {
	services, repos, _ := newTestServices(t)

	vendor, _ := services.Vendor.Create(context.Background(), actorSession(), models.VendorInput{
		Name: "Old Name", Email: "v@example.com",
	})
	repos.audit.Entries = nil

	_, err := services.Vendor.Update(context.Background(), actorSession(), vendor.ID, models.VendorInput{
		Name: "New Name", Email: "v@example.com",
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if len(repos.audit.Entries) != 1 {
		t.Fatalf("audit has %d entries, want 1", len(repos.audit.Entries))
	}
	entry := repos.audit.Entries[0]
	if entry.Action != models.AuditActionUpdate {
		t.Errorf("action = %s, want update", entry.Action)
	}
	if entry.Before == "" || entry.Before == "null" {
		t.Error("before snapshot missing on update")
	}
	if entry.After == "" || entry.After == "null" {
		t.Error("after snapshot missing on update")
	}
}

func TestUserSetRolesAuditsRolesField(t *testing.T) {
	services, repos, _ := newTestServices(t)
	seedUser(t, repos, "pass-1234", models.Role{ID: "r-old"})
	repos.audit.Entries = nil

	err := services.User.SetRoles(context.Background(), actorSession(), "u-1", []string{"r-new-1", "r-new-2"})
	if err != nil {
		t.Fatalf("SetRoles() error = %v", err)
	}

	user := repos.users.Users["u-1"]
	if len(user.Roles) != 2 || user.Roles[0].ID != "r-new-1" {
		t.Errorf("roles = %v, want ordered [r-new-1 r-new-2]", user.Roles)
	}
	if len(repos.audit.Entries) != 1 || repos.audit.Entries[0].Field != "roles" {
		t.Errorf("expected one audit entry on field %q", "roles")
	}
}

func TestMovementRejectsNonPositiveQuantity(t *testing.T) {
	services, _, _ := newTestServices(t)

	_, err := services.Warehouse.RecordMovement(context.Background(), actorSession(), "wh-1", models.MovementInput{
		SKU:       "SKU-1",
		Direction: models.MovementInbound,
		Quantity:  0,
	})
	if err == nil {
		t.Error("RecordMovement() accepted zero quantity")
	}
}

func TestAuditFailedWritesAreFlushedLater(t *testing.T) {
	services, repos, _ := newTestServices(t)

	// First write fails and lands in the retry buffer
	repos.audit.InsertError = errors.New("db down")
	services.Audit.Record(context.Background(), actorSession(), "vendor", "v-1", models.AuditActionCreate, "", nil, nil)
	if len(repos.audit.Entries) != 0 {
		t.Fatal("entry stored despite insert error")
	}

	// Backend recovers; stopping the flusher drains the buffer
	repos.audit.InsertError = nil
	services.Audit.StartFlusher(context.Background())
	services.Audit.StopFlusher()

	if len(repos.audit.Entries) != 1 {
		t.Fatalf("audit has %d entries after flush, want 1", len(repos.audit.Entries))
	}
	if repos.audit.BatchCalls == 0 {
		t.Error("flush did not use the batch path")
	}
}

func TestRouteAssignAreaKeepsOrder(t *testing.T) {
	services, _, _ := newTestServices(t)

	route, err := services.Route.Create(context.Background(), actorSession(), models.RouteInput{
		WarehouseID: "wh-1",
		Code:        "R-01",
		Name:        "North Loop",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if route.Status != models.RouteStatusPlanned {
		t.Errorf("status = %q, want %q", route.Status, models.RouteStatusPlanned)
	}

	for i, name := range []string{"Sector 5", "Sector 2", "Sector 9"} {
		if _, err := services.Route.AssignArea(context.Background(), actorSession(), route.ID, models.AreaInput{
			Name:     name,
			Position: i,
		}); err != nil {
			t.Fatalf("AssignArea(%s) error = %v", name, err)
		}
	}

	loaded, err := services.Route.Get(context.Background(), route.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(loaded.Areas) != 3 {
		t.Fatalf("route has %d areas, want 3", len(loaded.Areas))
	}
	want := []string{"Sector 5", "Sector 2", "Sector 9"}
	for i, area := range loaded.Areas {
		if area.Name != want[i] {
			t.Errorf("area %d = %q, want %q (position order)", i, area.Name, want[i])
		}
	}
}
