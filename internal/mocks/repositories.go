package mocks

import (
	"context"
	"sort"

	"github.com/admin-console-api/internal/models"
	"github.com/admin-console-api/pkg/listview"
)

// page runs a ListQuery against an in-memory slice using the same
// filter/paginate controller the real list surfaces use.
func page[T any](records []T, q models.ListQuery, cfg listview.Config[T]) ([]T, int) {
	if q.PageSize > 0 {
		cfg.PageSize = q.PageSize
	}
	if cfg.PageSize < 1 {
		cfg.PageSize = 25
	}

	ctrl := listview.New(records, cfg)
	ctrl.ApplySearch(q.Search)
	ctrl.ApplyFilter(q.Filters)
	if q.Page > 1 {
		ctrl.GoToPage(q.Page)
	}
	return ctrl.VisibleRecords(), ctrl.FilteredCount()
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	Users       map[string]*models.User
	Credentials map[string]string
	InsertError error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users:       make(map[string]*models.User),
		Credentials: make(map[string]string),
	}
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User, passwordHash string) error {
	if m.InsertError != nil {
		return m.InsertError
	}
	m.Users[user.ID] = user
	m.Credentials[user.Email] = passwordHash
	return nil
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	m.Users[user.ID] = user
	return nil
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) error {
	delete(m.Users, id)
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return m.Users[id], nil
}

func (m *MockUserRepository) GetCredentials(ctx context.Context, email string) (*models.User, string, error) {
	for _, u := range m.Users {
		if u.Email == email {
			return u, m.Credentials[email], nil
		}
	}
	return nil, "", nil
}

func (m *MockUserRepository) SetRoles(ctx context.Context, userID string, roleIDs []string) error {
	u, ok := m.Users[userID]
	if !ok {
		return nil
	}
	u.Roles = nil
	for _, id := range roleIDs {
		u.Roles = append(u.Roles, models.Role{ID: id})
	}
	return nil
}

func (m *MockUserRepository) List(ctx context.Context, tenantID string, q models.ListQuery) ([]models.User, int, error) {
	var all []models.User
	for _, u := range m.Users {
		if tenantID == "" || u.TenantID == tenantID {
			all = append(all, *u)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	items, total := page(all, q, listview.Config[models.User]{
		SearchFields: func(u models.User) []string { return []string{u.Name, u.Email} },
		FilterField: func(u models.User, field string) string {
			if field == "active" {
				if u.Active {
					return "true"
				}
				return "false"
			}
			return ""
		},
	})
	return items, total, nil
}

func (m *MockUserRepository) Count(ctx context.Context) (int, error) {
	return len(m.Users), nil
}

// MockRoleRepository is a mock implementation of RoleRepository
type MockRoleRepository struct {
	Roles       map[string]*models.Role
	InsertError error
}

func NewMockRoleRepository() *MockRoleRepository {
	return &MockRoleRepository{Roles: make(map[string]*models.Role)}
}

func (m *MockRoleRepository) Create(ctx context.Context, role *models.Role) error {
	if m.InsertError != nil {
		return m.InsertError
	}
	m.Roles[role.ID] = role
	return nil
}

func (m *MockRoleRepository) Update(ctx context.Context, role *models.Role) error {
	m.Roles[role.ID] = role
	return nil
}

func (m *MockRoleRepository) Delete(ctx context.Context, id string) error {
	delete(m.Roles, id)
	return nil
}

func (m *MockRoleRepository) GetByID(ctx context.Context, id string) (*models.Role, error) {
	return m.Roles[id], nil
}

func (m *MockRoleRepository) List(ctx context.Context, q models.ListQuery) ([]models.Role, int, error) {
	var all []models.Role
	for _, r := range m.Roles {
		all = append(all, *r)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	items, total := page(all, q, listview.Config[models.Role]{
		SearchFields: func(r models.Role) []string { return []string{r.SystemRole, r.Description} },
		FilterField: func(r models.Role, field string) string {
			if field == "ui_access" {
				return r.UIAccess
			}
			return ""
		},
	})
	return items, total, nil
}

func (m *MockRoleRepository) Count(ctx context.Context) (int, error) {
	return len(m.Roles), nil
}

// MockVendorRepository is a mock implementation of VendorRepository
type MockVendorRepository struct {
	Vendors     map[string]*models.Vendor
	InsertError error
}

func NewMockVendorRepository() *MockVendorRepository {
	return &MockVendorRepository{Vendors: make(map[string]*models.Vendor)}
}

func (m *MockVendorRepository) Create(ctx context.Context, vendor *models.Vendor) error {
	if m.InsertError != nil {
		return m.InsertError
	}
	m.Vendors[vendor.ID] = vendor
	return nil
}

func (m *MockVendorRepository) Update(ctx context.Context, vendor *models.Vendor) error {
	m.Vendors[vendor.ID] = vendor
	return nil
}

func (m *MockVendorRepository) Delete(ctx context.Context, id string) error {
	delete(m.Vendors, id)
	return nil
}

func (m *MockVendorRepository) GetByID(ctx context.Context, id string) (*models.Vendor, error) {
	return m.Vendors[id], nil
}

func (m *MockVendorRepository) List(ctx context.Context, tenantID string, q models.ListQuery) ([]models.Vendor, int, error) {
	var all []models.Vendor
	for _, v := range m.Vendors {
		if tenantID == "" || v.TenantID == tenantID {
			all = append(all, *v)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	items, total := page(all, q, listview.Config[models.Vendor]{
		SearchFields: func(v models.Vendor) []string { return []string{v.Name, v.Email} },
		FilterField: func(v models.Vendor, field string) string {
			switch field {
			case "status":
				return v.Status
			case "department":
				return v.Department
			}
			return ""
		},
	})
	return items, total, nil
}

func (m *MockVendorRepository) Count(ctx context.Context) (int, error) {
	return len(m.Vendors), nil
}

// MockWarehouseRepository is a mock implementation of WarehouseRepository
type MockWarehouseRepository struct {
	Warehouses  map[string]*models.Warehouse
	Bins        map[string]*models.Bin
	Movements   []models.StockMovement
	InsertError error
}

func NewMockWarehouseRepository() *MockWarehouseRepository {
	return &MockWarehouseRepository{
		Warehouses: make(map[string]*models.Warehouse),
		Bins:       make(map[string]*models.Bin),
	}
}

func (m *MockWarehouseRepository) Create(ctx context.Context, wh *models.Warehouse) error {
	if m.InsertError != nil {
		return m.InsertError
	}
	m.Warehouses[wh.ID] = wh
	return nil
}

func (m *MockWarehouseRepository) Update(ctx context.Context, wh *models.Warehouse) error {
	m.Warehouses[wh.ID] = wh
	return nil
}

func (m *MockWarehouseRepository) Delete(ctx context.Context, id string) error {
	delete(m.Warehouses, id)
	return nil
}

func (m *MockWarehouseRepository) GetByID(ctx context.Context, id string) (*models.Warehouse, error) {
	return m.Warehouses[id], nil
}

func (m *MockWarehouseRepository) List(ctx context.Context, tenantID string, q models.ListQuery) ([]models.Warehouse, int, error) {
	var all []models.Warehouse
	for _, wh := range m.Warehouses {
		if tenantID == "" || wh.TenantID == tenantID {
			all = append(all, *wh)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	items, total := page(all, q, listview.Config[models.Warehouse]{
		SearchFields: func(wh models.Warehouse) []string { return []string{wh.Code, wh.Name, wh.City} },
		FilterField: func(wh models.Warehouse, field string) string {
			if field == "active" {
				if wh.Active {
					return "true"
				}
				return "false"
			}
			return ""
		},
	})
	return items, total, nil
}

func (m *MockWarehouseRepository) Count(ctx context.Context) (int, error) {
	return len(m.Warehouses), nil
}

func (m *MockWarehouseRepository) CreateBin(ctx context.Context, bin *models.Bin) error {
	if m.InsertError != nil {
		return m.InsertError
	}
	m.Bins[bin.ID] = bin
	return nil
}

func (m *MockWarehouseRepository) UpdateBin(ctx context.Context, bin *models.Bin) error {
	m.Bins[bin.ID] = bin
	return nil
}

func (m *MockWarehouseRepository) GetBin(ctx context.Context, id string) (*models.Bin, error) {
	return m.Bins[id], nil
}

func (m *MockWarehouseRepository) ListBins(ctx context.Context, warehouseID string, q models.ListQuery) ([]models.Bin, int, error) {
	var all []models.Bin
	for _, b := range m.Bins {
		if b.WarehouseID == warehouseID {
			all = append(all, *b)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Zone != all[j].Zone {
			return all[i].Zone < all[j].Zone
		}
		if all[i].Rack != all[j].Rack {
			return all[i].Rack < all[j].Rack
		}
		return all[i].Position < all[j].Position
	})

	items, total := page(all, q, listview.Config[models.Bin]{
		SearchFields: func(b models.Bin) []string { return []string{b.Zone, b.Rack, b.SKU} },
		FilterField: func(b models.Bin, field string) string {
			if field == "status" {
				return b.Status
			}
			return ""
		},
	})
	return items, total, nil
}

func (m *MockWarehouseRepository) CreateMovement(ctx context.Context, mv *models.StockMovement) error {
	if m.InsertError != nil {
		return m.InsertError
	}
	m.Movements = append(m.Movements, *mv)
	return nil
}

func (m *MockWarehouseRepository) ListMovements(ctx context.Context, warehouseID string, q models.ListQuery) ([]models.StockMovement, int, error) {
	var all []models.StockMovement
	for _, mv := range m.Movements {
		if mv.WarehouseID == warehouseID {
			all = append(all, mv)
		}
	}

	items, total := page(all, q, listview.Config[models.StockMovement]{
		SearchFields: func(mv models.StockMovement) []string { return []string{mv.SKU, mv.Reference} },
		FilterField: func(mv models.StockMovement, field string) string {
			if field == "direction" {
				return mv.Direction
			}
			return ""
		},
	})
	return items, total, nil
}

// MockRouteRepository is a mock implementation of RouteRepository
type MockRouteRepository struct {
	Routes      map[string]*models.DeliveryRoute
	Areas       map[string]*models.Area
	InsertError error
}

func NewMockRouteRepository() *MockRouteRepository {
	return &MockRouteRepository{
		Routes: make(map[string]*models.DeliveryRoute),
		Areas:  make(map[string]*models.Area),
	}
}

func (m *MockRouteRepository) Create(ctx context.Context, route *models.DeliveryRoute) error {
	if m.InsertError != nil {
		return m.InsertError
	}
	m.Routes[route.ID] = route
	return nil
}

func (m *MockRouteRepository) Update(ctx context.Context, route *models.DeliveryRoute) error {
	m.Routes[route.ID] = route
	return nil
}

func (m *MockRouteRepository) Delete(ctx context.Context, id string) error {
	delete(m.Routes, id)
	return nil
}

func (m *MockRouteRepository) GetByID(ctx context.Context, id string) (*models.DeliveryRoute, error) {
	route, ok := m.Routes[id]
	if !ok {
		return nil, nil
	}
	copied := *route
	copied.Areas, _ = m.ListAreas(ctx, id)
	return &copied, nil
}

func (m *MockRouteRepository) List(ctx context.Context, tenantID string, q models.ListQuery) ([]models.DeliveryRoute, int, error) {
	var all []models.DeliveryRoute
	for _, r := range m.Routes {
		if tenantID == "" || r.TenantID == tenantID {
			all = append(all, *r)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	items, total := page(all, q, listview.Config[models.DeliveryRoute]{
		SearchFields: func(r models.DeliveryRoute) []string { return []string{r.Code, r.Name} },
		FilterField: func(r models.DeliveryRoute, field string) string {
			switch field {
			case "status":
				return r.Status
			case "warehouse_id":
				return r.WarehouseID
			}
			return ""
		},
	})
	return items, total, nil
}

func (m *MockRouteRepository) AssignArea(ctx context.Context, area *models.Area) error {
	if m.InsertError != nil {
		return m.InsertError
	}
	m.Areas[area.ID] = area
	return nil
}

func (m *MockRouteRepository) RemoveArea(ctx context.Context, areaID string) error {
	delete(m.Areas, areaID)
	return nil
}

func (m *MockRouteRepository) ListAreas(ctx context.Context, routeID string) ([]models.Area, error) {
	var areas []models.Area
	for _, a := range m.Areas {
		if a.RouteID == routeID {
			areas = append(areas, *a)
		}
	}
	sort.Slice(areas, func(i, j int) bool {
		if areas[i].Position != areas[j].Position {
			return areas[i].Position < areas[j].Position
		}
		return areas[i].ID < areas[j].ID
	})
	return areas, nil
}

// MockAuditRepository is a mock implementation of AuditRepository
type MockAuditRepository struct {
	Entries     []models.AuditLog
	InsertError error
	BatchCalls  int
}

func NewMockAuditRepository() *MockAuditRepository {
	return &MockAuditRepository{}
}

func (m *MockAuditRepository) Insert(ctx context.Context, entry *models.AuditLog) error {
	if m.InsertError != nil {
		return m.InsertError
	}
	m.Entries = append(m.Entries, *entry)
	return nil
}

func (m *MockAuditRepository) BatchInsert(ctx context.Context, entries []models.AuditLog) (int, error) {
	m.BatchCalls++
	if m.InsertError != nil {
		return 0, m.InsertError
	}
	m.Entries = append(m.Entries, entries...)
	return len(entries), nil
}

func (m *MockAuditRepository) List(ctx context.Context, tenantID string, q models.ListQuery) ([]models.AuditLog, int, error) {
	var all []models.AuditLog
	for _, e := range m.Entries {
		if tenantID == "" || e.TenantID == tenantID {
			all = append(all, e)
		}
	}

	items, total := page(all, q, listview.Config[models.AuditLog]{
		SearchFields: func(e models.AuditLog) []string { return []string{e.ActorName, e.Field} },
		FilterField: func(e models.AuditLog, field string) string {
			switch field {
			case "entity_type":
				return e.EntityType
			case "action":
				return string(e.Action)
			case "actor_id":
				return e.ActorID
			}
			return ""
		},
	})
	return items, total, nil
}

func (m *MockAuditRepository) Count(ctx context.Context) (int, error) {
	return len(m.Entries), nil
}
