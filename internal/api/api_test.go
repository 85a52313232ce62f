package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/admin-console-api/internal/api"
	"github.com/admin-console-api/internal/auth"
	"github.com/admin-console-api/internal/config"
	"github.com/admin-console-api/internal/mocks"
	"github.com/admin-console-api/internal/models"
	"github.com/admin-console-api/internal/repository"
	"github.com/admin-console-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type testEnv struct {
	router   *gin.Engine
	sessions auth.SessionStore
	users    *mocks.MockUserRepository
	roles    *mocks.MockRoleRepository
	vendors  *mocks.MockVendorRepository
	audit    *mocks.MockAuditRepository
}

func setupTestRouter(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := mocks.NewMockUserRepository()
	roles := mocks.NewMockRoleRepository()
	vendors := mocks.NewMockVendorRepository()
	warehouses := mocks.NewMockWarehouseRepository()
	routes := mocks.NewMockRouteRepository()
	audit := mocks.NewMockAuditRepository()

	repos := &repository.Repositories{
		User:      users,
		Role:      roles,
		Vendor:    vendors,
		Warehouse: warehouses,
		Route:     routes,
		Audit:     audit,
	}

	cfg := &config.Config{
		Server: config.ServerConfig{
			Port:           "8080",
			AllowedOrigins: []string{"*"},
		},
		Auth: config.AuthConfig{
			JWTSecret: "test-secret",
			TokenTTL:  time.Hour,
		},
	}

	log := zerolog.Nop()
	sessions := auth.NewMemorySessionStore()
	tokens := auth.NewTokenManager(&cfg.Auth)
	services := service.NewServices(repos, sessions, tokens, cfg, log)
	router := api.NewRouter(services, sessions, repos, cfg, log)

	return &testEnv{
		router:   router,
		sessions: sessions,
		users:    users,
		roles:    roles,
		vendors:  vendors,
		audit:    audit,
	}
}

// signIn seeds a session directly and returns its token
func (e *testEnv) signIn(role models.Role) string {
	token := "test-token-" + role.SystemRole
	e.sessions.Put(models.Session{
		Token: token,
		User: models.User{
			ID:       "actor-1",
			TenantID: "t-1",
			Email:    "actor@example.com",
			Name:     "Actor",
			Roles:    []models.Role{role},
			Active:   true,
		},
		CreatedAt: time.Now(),
	})
	return token
}

func (e *testEnv) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

var superAdminRole = models.Role{
	ID:         "role-super",
	SystemRole: models.RoleSuperAdmin,
	UIAccess:   models.PortalAdmin,
}

var adminRole = models.Role{
	ID:         "role-admin",
	SystemRole: models.RoleAdmin,
	UIAccess:   models.PortalAdmin,
}

var vendorAdminRole = models.Role{
	ID:         "role-vadmin",
	SystemRole: models.RoleVendorAdmin,
	UIAccess:   models.PortalVendor,
}

func TestHealthEndpoint(t *testing.T) {
	env := setupTestRouter(t)

	w := env.do("GET", "/health", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	if response["status"] != "healthy" {
		t.Errorf("status = %v, want healthy", response["status"])
	}
	if response["service"] != "admin-console-api" {
		t.Errorf("service = %v, want admin-console-api", response["service"])
	}
}

func TestLoginIssuesUsableToken(t *testing.T) {
	env := setupTestRouter(t)

	hash, err := auth.HashPassword("s3cret-pass")
	if err != nil {
		t.Fatal(err)
	}
	env.users.Create(nil, &models.User{
		ID:       "u-1",
		TenantID: "t-1",
		Email:    "admin@example.com",
		Name:     "Admin",
		Roles:    []models.Role{superAdminRole},
		Active:   true,
	}, hash)

	w := env.do("POST", "/v1/auth/login", "", models.LoginRequest{
		Email:    "admin@example.com",
		Password: "s3cret-pass",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d, want 200, body: %s", w.Code, w.Body.String())
	}

	var response struct {
		Data models.LoginResponse `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatal(err)
	}
	if response.Data.Token == "" {
		t.Fatal("login returned empty token")
	}

	// The session must be readable before the client ever uses the token
	if _, ok := env.sessions.Get(response.Data.Token); !ok {
		t.Fatal("session not stored at login")
	}

	// The token works against a guarded route immediately
	w = env.do("GET", "/v1/admin/roles", response.Data.Token, nil)
	if w.Code != http.StatusOK {
		t.Errorf("guarded request status = %d, want 200, body: %s", w.Code, w.Body.String())
	}
}

func TestLoginRejectsBadPassword(t *testing.T) {
	env := setupTestRouter(t)

	hash, _ := auth.HashPassword("right-password")
	env.users.Create(nil, &models.User{
		ID:     "u-1",
		Email:  "admin@example.com",
		Roles:  []models.Role{superAdminRole},
		Active: true,
	}, hash)

	w := env.do("POST", "/v1/auth/login", "", models.LoginRequest{
		Email:    "admin@example.com",
		Password: "wrong-password",
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestLogoutInvalidatesSession(t *testing.T) {
	env := setupTestRouter(t)
	token := env.signIn(superAdminRole)

	w := env.do("POST", "/v1/auth/logout", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("logout status = %d, want 200", w.Code)
	}

	w = env.do("GET", "/v1/admin/roles", token, nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status after logout = %d, want 401", w.Code)
	}
}

func TestRoleListPaginates(t *testing.T) {
	env := setupTestRouter(t)
	token := env.signIn(adminRole)

	for i := 0; i < 11; i++ {
		id := string(rune('a' + i))
		env.roles.Roles["role-"+id] = &models.Role{
			ID:         "role-" + id,
			SystemRole: models.RoleVendorStaff,
			UIAccess:   models.PortalVendor,
		}
	}

	w := env.do("GET", "/v1/admin/roles?page=1&page_size=9", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", w.Code, w.Body.String())
	}

	var response struct {
		Data struct {
			Items      []models.Role     `json:"items"`
			Pagination models.Pagination `json:"pagination"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatal(err)
	}
	if len(response.Data.Items) != 9 {
		t.Errorf("page 1 has %d items, want 9", len(response.Data.Items))
	}
	if response.Data.Pagination.TotalItems != 11 {
		t.Errorf("total items = %d, want 11", response.Data.Pagination.TotalItems)
	}
	if response.Data.Pagination.TotalPages != 2 {
		t.Errorf("total pages = %d, want 2", response.Data.Pagination.TotalPages)
	}

	w = env.do("GET", "/v1/admin/roles?page=2&page_size=9", token, nil)
	json.Unmarshal(w.Body.Bytes(), &response)
	if len(response.Data.Items) != 2 {
		t.Errorf("page 2 has %d items, want 2", len(response.Data.Items))
	}
}

func TestRoleMutationRequiresSuperAdmin(t *testing.T) {
	env := setupTestRouter(t)
	body := models.Role{SystemRole: models.RoleVendorStaff, UIAccess: models.PortalVendor}

	// Plain admin may read but not create
	adminToken := env.signIn(adminRole)
	w := env.do("POST", "/v1/admin/roles", adminToken, body)
	if w.Code != http.StatusForbidden {
		t.Fatalf("admin create status = %d, want 403", w.Code)
	}

	superToken := env.signIn(superAdminRole)
	w = env.do("POST", "/v1/admin/roles", superToken, body)
	if w.Code != http.StatusCreated {
		t.Fatalf("super_admin create status = %d, want 201, body: %s", w.Code, w.Body.String())
	}
	if len(env.roles.Roles) != 1 {
		t.Errorf("stored %d roles, want 1", len(env.roles.Roles))
	}
}

func TestRoleCreateValidatesPayload(t *testing.T) {
	env := setupTestRouter(t)
	token := env.signIn(superAdminRole)

	w := env.do("POST", "/v1/admin/roles", token, models.Role{
		SystemRole: "not_a_role",
		UIAccess:   "Nowhere",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if len(env.roles.Roles) != 0 {
		t.Error("invalid role was stored")
	}
}

func TestVendorPortalBlocksAdminRole(t *testing.T) {
	env := setupTestRouter(t)
	token := env.signIn(adminRole)

	w := env.do("GET", "/v1/vendor/vendors", token, nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}

	var body struct {
		Redirect string `json:"redirect"`
	}
	json.Unmarshal(w.Body.Bytes(), &body)
	if body.Redirect != "/admin/roles-permissions" {
		t.Errorf("redirect = %q, want /admin/roles-permissions", body.Redirect)
	}
}

func TestVendorSearchAndFilter(t *testing.T) {
	env := setupTestRouter(t)
	token := env.signIn(vendorAdminRole)

	seed := []models.Vendor{
		{ID: "v-1", TenantID: "t-1", Name: "Priya Traders", Email: "priya@x.com", Status: models.VendorStatusActive},
		{ID: "v-2", TenantID: "t-1", Name: "PRIYA Logistics", Email: "pl@x.com", Status: models.VendorStatusSuspended},
		{ID: "v-3", TenantID: "t-1", Name: "Bulk Goods", Email: "bulk@x.com", Status: models.VendorStatusActive},
	}
	for i := range seed {
		env.vendors.Vendors[seed[i].ID] = &seed[i]
	}

	w := env.do("GET", "/v1/vendor/vendors?search=priya", token, nil)
	var response struct {
		Data struct {
			Items []models.Vendor `json:"items"`
		} `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &response)
	if len(response.Data.Items) != 2 {
		t.Errorf("search priya found %d vendors, want 2", len(response.Data.Items))
	}

	w = env.do("GET", "/v1/vendor/vendors?search=priya&status="+models.VendorStatusActive, token, nil)
	json.Unmarshal(w.Body.Bytes(), &response)
	if len(response.Data.Items) != 1 {
		t.Errorf("search+filter found %d vendors, want 1", len(response.Data.Items))
	}
}

func TestVendorCreateRecordsAudit(t *testing.T) {
	env := setupTestRouter(t)
	token := env.signIn(vendorAdminRole)

	w := env.do("POST", "/v1/vendor/vendors", token, models.VendorInput{
		Name:  "New Vendor",
		Email: "new@example.com",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body: %s", w.Code, w.Body.String())
	}

	if len(env.audit.Entries) != 1 {
		t.Fatalf("audit has %d entries, want 1", len(env.audit.Entries))
	}
	entry := env.audit.Entries[0]
	if entry.EntityType != "vendor" || entry.Action != models.AuditActionCreate {
		t.Errorf("audit entry = %s/%s, want vendor/create", entry.EntityType, entry.Action)
	}
	if entry.ActorID != "actor-1" || entry.TenantID != "t-1" {
		t.Errorf("audit actor = %s tenant = %s, want actor-1 t-1", entry.ActorID, entry.TenantID)
	}
}

func TestAuditTrailExportIsPDF(t *testing.T) {
	env := setupTestRouter(t)
	token := env.signIn(adminRole)

	env.audit.Entries = append(env.audit.Entries, models.AuditLog{
		ID:         "a-1",
		TenantID:   "t-1",
		ActorID:    "actor-1",
		ActorName:  "Actor",
		EntityType: "vendor",
		EntityID:   "v-1",
		Action:     models.AuditActionCreate,
		CreatedAt:  time.Now(),
	})

	w := env.do("GET", "/v1/admin/audit-logs/export", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Content-Type = %q, want application/pdf", ct)
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")) {
		t.Error("body does not start with a PDF header")
	}
}

func TestUnknownFilterFieldIsIgnored(t *testing.T) {
	env := setupTestRouter(t)
	token := env.signIn(adminRole)

	env.roles.Roles["r-1"] = &models.Role{ID: "r-1", SystemRole: models.RoleAdmin, UIAccess: models.PortalAdmin}

	w := env.do("GET", "/v1/admin/roles?bogus_field=zzz", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var response struct {
		Data struct {
			Items []models.Role `json:"items"`
		} `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &response)
	if len(response.Data.Items) != 1 {
		t.Errorf("unknown filter dropped records: got %d, want 1", len(response.Data.Items))
	}
}
