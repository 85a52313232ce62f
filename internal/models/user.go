package models

import (
	"time"
)

// Portal names a console section a role may enter.
// These values are the contract with the web clients; do not rename.
const (
	PortalAdmin     = "Admin Panel"
	PortalVendor    = "Vendor Portal"
	PortalWarehouse = "Warehouse Portal"
)

// System role tags known to the console.
const (
	RoleSuperAdmin       = "super_admin"
	RoleAdmin            = "admin"
	RoleVendorAdmin      = "vendor_admin"
	RoleVendorStaff      = "vendor_staff"
	RoleWarehouseManager = "warehouse_manager"
	RoleWarehouseStaff   = "warehouse_staff"
)

// ValidSystemRoles defines allowed system role tags
var ValidSystemRoles = map[string]bool{
	RoleSuperAdmin:       true,
	RoleAdmin:            true,
	RoleVendorAdmin:      true,
	RoleVendorStaff:      true,
	RoleWarehouseManager: true,
	RoleWarehouseStaff:   true,
}

// ValidPortals defines allowed portal tags
var ValidPortals = map[string]bool{
	PortalAdmin:     true,
	PortalVendor:    true,
	PortalWarehouse: true,
}

// Role is a role assignment: a system role tag plus the portal it may enter.
type Role struct {
	ID          string    `json:"id" db:"id"`
	SystemRole  string    `json:"system_role" db:"system_role"`
	UIAccess    string    `json:"ui_access" db:"ui_access"`
	Description string    `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// User represents a console user. Roles is an ordered sequence; the role at
// position 0 is the user's primary role.
type User struct {
	ID        string    `json:"id" db:"id"`
	TenantID  string    `json:"tenant_id" db:"tenant_id"`
	Email     string    `json:"email" db:"email"`
	Name      string    `json:"name" db:"name"`
	Roles     []Role    `json:"roles"`
	Active    bool      `json:"active" db:"active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// PrimaryRole returns the role that drives every access decision: the first
// role in the user's sequence. Secondary roles are never consulted; this is
// intended product behavior, not a shortcut.
func PrimaryRole(u *User) (Role, bool) {
	if u == nil || len(u.Roles) == 0 {
		return Role{}, false
	}
	return u.Roles[0], true
}

// LoginPath is where unauthenticated requests are pointed.
const LoginPath = "/login"

// DefaultLandingPath maps a role's portal to its fixed landing route. Unknown
// portals fall back to the login path.
func DefaultLandingPath(r Role) string {
	switch r.UIAccess {
	case PortalAdmin:
		return "/admin/roles-permissions"
	case PortalVendor:
		return "/vendor/dashboard"
	case PortalWarehouse:
		return "/warehouse/dashboard"
	default:
		return LoginPath
	}
}

// Session pairs an opaque token with the user it was issued to. A session is
// valid iff the token is non-empty and the user has at least one role.
type Session struct {
	Token     string    `json:"token"`
	User      User      `json:"user"`
	CreatedAt time.Time `json:"created_at"`
}

// Valid reports whether the session passes the presence checks the portal
// guard relies on.
func (s *Session) Valid() bool {
	return s != nil && s.Token != "" && len(s.User.Roles) > 0
}

// LoginRequest is the POST /v1/auth/login payload
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the issued token plus the user it belongs to
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
