package models

import (
	"time"
)

// Route statuses
const (
	RouteStatusPlanned  = "Planned"
	RouteStatusActive   = "Active"
	RouteStatusArchived = "Archived"
)

// ValidRouteStatuses defines allowed route statuses
var ValidRouteStatuses = map[string]bool{
	RouteStatusPlanned:  true,
	RouteStatusActive:   true,
	RouteStatusArchived: true,
}

// DeliveryRoute is a planned delivery run out of a warehouse, covering an
// ordered set of areas.
type DeliveryRoute struct {
	ID          string    `json:"id" db:"id"`
	TenantID    string    `json:"tenant_id" db:"tenant_id"`
	WarehouseID string    `json:"warehouse_id" db:"warehouse_id"`
	Code        string    `json:"code" db:"code"`
	Name        string    `json:"name" db:"name"`
	Status      string    `json:"status" db:"status"`
	Areas       []Area    `json:"areas,omitempty"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Area is a delivery zone assignable to a route. Position orders areas within
// their route.
type Area struct {
	ID       string `json:"id" db:"id"`
	TenantID string `json:"tenant_id" db:"tenant_id"`
	RouteID  string `json:"route_id,omitempty" db:"route_id"`
	Name     string `json:"name" db:"name"`
	Pincode  string `json:"pincode,omitempty" db:"pincode"`
	Position int    `json:"position" db:"position"`
}

// RouteInput is the create/update payload for a delivery route
type RouteInput struct {
	WarehouseID string `json:"warehouse_id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Status      string `json:"status"`
}

// AreaInput is the payload assigning an area to a route
type AreaInput struct {
	Name     string `json:"name"`
	Pincode  string `json:"pincode"`
	Position int    `json:"position"`
}
