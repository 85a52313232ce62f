package repository

import (
	"context"

	"github.com/admin-console-api/internal/database"
	"github.com/admin-console-api/internal/models"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User, passwordHash string) error
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetCredentials(ctx context.Context, email string) (*models.User, string, error)
	SetRoles(ctx context.Context, userID string, roleIDs []string) error
	List(ctx context.Context, tenantID string, q models.ListQuery) ([]models.User, int, error)
	Count(ctx context.Context) (int, error)
}

// RoleRepository defines the interface for role data operations
type RoleRepository interface {
	Create(ctx context.Context, role *models.Role) error
	Update(ctx context.Context, role *models.Role) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.Role, error)
	List(ctx context.Context, q models.ListQuery) ([]models.Role, int, error)
	Count(ctx context.Context) (int, error)
}

// VendorRepository defines the interface for vendor data operations
type VendorRepository interface {
	Create(ctx context.Context, vendor *models.Vendor) error
	Update(ctx context.Context, vendor *models.Vendor) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.Vendor, error)
	List(ctx context.Context, tenantID string, q models.ListQuery) ([]models.Vendor, int, error)
	Count(ctx context.Context) (int, error)
}

// WarehouseRepository defines the interface for warehouse data operations
type WarehouseRepository interface {
	Create(ctx context.Context, wh *models.Warehouse) error
	Update(ctx context.Context, wh *models.Warehouse) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.Warehouse, error)
	List(ctx context.Context, tenantID string, q models.ListQuery) ([]models.Warehouse, int, error)
	Count(ctx context.Context) (int, error)

	CreateBin(ctx context.Context, bin *models.Bin) error
	UpdateBin(ctx context.Context, bin *models.Bin) error
	GetBin(ctx context.Context, id string) (*models.Bin, error)
	ListBins(ctx context.Context, warehouseID string, q models.ListQuery) ([]models.Bin, int, error)

	CreateMovement(ctx context.Context, mv *models.StockMovement) error
	ListMovements(ctx context.Context, warehouseID string, q models.ListQuery) ([]models.StockMovement, int, error)
}

// RouteRepository defines the interface for route/area planning operations
type RouteRepository interface {
	Create(ctx context.Context, route *models.DeliveryRoute) error
	Update(ctx context.Context, route *models.DeliveryRoute) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.DeliveryRoute, error)
	List(ctx context.Context, tenantID string, q models.ListQuery) ([]models.DeliveryRoute, int, error)
	AssignArea(ctx context.Context, area *models.Area) error
	RemoveArea(ctx context.Context, areaID string) error
	ListAreas(ctx context.Context, routeID string) ([]models.Area, error)
}

// AuditRepository defines the interface for audit log operations
type AuditRepository interface {
	Insert(ctx context.Context, entry *models.AuditLog) error
	BatchInsert(ctx context.Context, entries []models.AuditLog) (int, error)
	List(ctx context.Context, tenantID string, q models.ListQuery) ([]models.AuditLog, int, error)
	Count(ctx context.Context) (int, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	User      UserRepository
	Role      RoleRepository
	Vendor    VendorRepository
	Warehouse WarehouseRepository
	Route     RouteRepository
	Audit     AuditRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		User:      NewUserRepo(db),
		Role:      NewRoleRepo(db),
		Vendor:    NewVendorRepo(db),
		Warehouse: NewWarehouseRepo(db),
		Route:     NewRouteRepo(db),
		Audit:     NewAuditRepo(db),
	}
}
