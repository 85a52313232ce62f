package service

import (
	"context"

	"github.com/admin-console-api/internal/auth"
	"github.com/admin-console-api/internal/config"
	"github.com/admin-console-api/internal/models"
	"github.com/admin-console-api/internal/repository"
	"github.com/rs/zerolog"
)

// AuthService defines the interface for login/logout flows
type AuthService interface {
	Login(ctx context.Context, email, password string) (*models.LoginResponse, error)
	Logout(ctx context.Context, token string) error
}

// RoleService defines the interface for role management
type RoleService interface {
	List(ctx context.Context, q models.ListQuery) ([]models.Role, int, error)
	Get(ctx context.Context, id string) (*models.Role, error)
	Create(ctx context.Context, actor *models.Session, role *models.Role) error
	Update(ctx context.Context, actor *models.Session, role *models.Role) error
	Delete(ctx context.Context, actor *models.Session, id string) error
}

// UserService defines the interface for user management
type UserService interface {
	List(ctx context.Context, tenantID string, q models.ListQuery) ([]models.User, int, error)
	Get(ctx context.Context, id string) (*models.User, error)
	Create(ctx context.Context, actor *models.Session, user *models.User, password string) error
	Update(ctx context.Context, actor *models.Session, user *models.User) error
	SetRoles(ctx context.Context, actor *models.Session, userID string, roleIDs []string) error
	Delete(ctx context.Context, actor *models.Session, id string) error
}

// VendorService defines the interface for vendor management
type VendorService interface {
	List(ctx context.Context, tenantID string, q models.ListQuery) ([]models.Vendor, int, error)
	Get(ctx context.Context, id string) (*models.Vendor, error)
	Create(ctx context.Context, actor *models.Session, input models.VendorInput) (*models.Vendor, error)
	Update(ctx context.Context, actor *models.Session, id string, input models.VendorInput) (*models.Vendor, error)
	Delete(ctx context.Context, actor *models.Session, id string) error
}

// WarehouseService defines the interface for warehouse operations
type WarehouseService interface {
	List(ctx context.Context, tenantID string, q models.ListQuery) ([]models.Warehouse, int, error)
	Get(ctx context.Context, id string) (*models.Warehouse, error)
	Create(ctx context.Context, actor *models.Session, input models.WarehouseInput) (*models.Warehouse, error)
	Update(ctx context.Context, actor *models.Session, id string, input models.WarehouseInput) (*models.Warehouse, error)
	Delete(ctx context.Context, actor *models.Session, id string) error

	ListBins(ctx context.Context, warehouseID string, q models.ListQuery) ([]models.Bin, int, error)
	CreateBin(ctx context.Context, actor *models.Session, warehouseID string, input models.BinInput) (*models.Bin, error)
	UpdateBin(ctx context.Context, actor *models.Session, binID string, input models.BinInput) (*models.Bin, error)

	ListMovements(ctx context.Context, warehouseID string, q models.ListQuery) ([]models.StockMovement, int, error)
	RecordMovement(ctx context.Context, actor *models.Session, warehouseID string, input models.MovementInput) (*models.StockMovement, error)
}

// RouteService defines the interface for route/area planning
type RouteService interface {
	List(ctx context.Context, tenantID string, q models.ListQuery) ([]models.DeliveryRoute, int, error)
	Get(ctx context.Context, id string) (*models.DeliveryRoute, error)
	Create(ctx context.Context, actor *models.Session, input models.RouteInput) (*models.DeliveryRoute, error)
	Update(ctx context.Context, actor *models.Session, id string, input models.RouteInput) (*models.DeliveryRoute, error)
	Delete(ctx context.Context, actor *models.Session, id string) error
	AssignArea(ctx context.Context, actor *models.Session, routeID string, input models.AreaInput) (*models.Area, error)
	RemoveArea(ctx context.Context, actor *models.Session, routeID, areaID string) error
}

// AuditService defines the interface for audit recording and inspection
type AuditService interface {
	Record(ctx context.Context, actor *models.Session, entityType, entityID string, action models.AuditAction, field string, before, after interface{})
	List(ctx context.Context, tenantID string, q models.ListQuery) ([]models.AuditLog, int, error)
	StartFlusher(ctx context.Context)
	StopFlusher()
}

// ReportService defines the interface for PDF exports
type ReportService interface {
	AuditTrailPDF(ctx context.Context, tenantID string, q models.ListQuery) ([]byte, error)
	StockSheetPDF(ctx context.Context, warehouseID string) ([]byte, error)
}

// Services holds all service interfaces
type Services struct {
	Auth      AuthService
	Role      RoleService
	User      UserService
	Vendor    VendorService
	Warehouse WarehouseService
	Route     RouteService
	Audit     AuditService
	Report    ReportService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, sessions auth.SessionStore, tokens *auth.TokenManager, cfg *config.Config, log zerolog.Logger) *Services {
	auditSvc := newAuditService(repos.Audit, log)

	return &Services{
		Auth:      newAuthService(repos.User, sessions, tokens, auditSvc, log),
		Role:      newRoleService(repos.Role, auditSvc, log),
		User:      newUserService(repos.User, auditSvc, log),
		Vendor:    newVendorService(repos.Vendor, auditSvc, log),
		Warehouse: newWarehouseService(repos.Warehouse, auditSvc, log),
		Route:     newRouteService(repos.Route, auditSvc, log),
		Audit:     auditSvc,
		Report:    newReportService(repos.Audit, repos.Warehouse, log),
	}
}
