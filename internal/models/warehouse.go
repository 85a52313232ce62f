package models

import (
	"time"
)

// Bin statuses for the inventory layout
const (
	BinStatusEmpty    = "Empty"
	BinStatusOccupied = "Occupied"
	BinStatusReserved = "Reserved"
	BinStatusBlocked  = "Blocked"
)

// ValidBinStatuses defines allowed bin statuses
var ValidBinStatuses = map[string]bool{
	BinStatusEmpty:    true,
	BinStatusOccupied: true,
	BinStatusReserved: true,
	BinStatusBlocked:  true,
}

// Warehouse represents a physical site managed through the warehouse portal
type Warehouse struct {
	ID        string    `json:"id" db:"id"`
	TenantID  string    `json:"tenant_id" db:"tenant_id"`
	Code      string    `json:"code" db:"code"`
	Name      string    `json:"name" db:"name"`
	City      string    `json:"city,omitempty" db:"city"`
	Active    bool      `json:"active" db:"active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Bin is one slot of a warehouse layout: zone / rack / bin position plus the
// SKU currently stored there, if any.
type Bin struct {
	ID          string    `json:"id" db:"id"`
	WarehouseID string    `json:"warehouse_id" db:"warehouse_id"`
	Zone        string    `json:"zone" db:"zone"`
	Rack        string    `json:"rack" db:"rack"`
	Position    string    `json:"position" db:"position"`
	SKU         string    `json:"sku,omitempty" db:"sku"`
	Quantity    int       `json:"quantity" db:"quantity"`
	Status      string    `json:"status" db:"status"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Movement directions
const (
	MovementInbound  = "inbound"
	MovementOutbound = "outbound"
	MovementTransfer = "transfer"
)

// StockMovement records stock entering, leaving, or moving within a warehouse
type StockMovement struct {
	ID          string    `json:"id" db:"id"`
	WarehouseID string    `json:"warehouse_id" db:"warehouse_id"`
	BinID       string    `json:"bin_id,omitempty" db:"bin_id"`
	SKU         string    `json:"sku" db:"sku"`
	Direction   string    `json:"direction" db:"direction"`
	Quantity    int       `json:"quantity" db:"quantity"`
	Reference   string    `json:"reference,omitempty" db:"reference"`
	CreatedBy   string    `json:"created_by" db:"created_by"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// WarehouseInput is the create/update payload for a warehouse
type WarehouseInput struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	City   string `json:"city"`
	Active *bool  `json:"active"`
}

// BinInput is the create/update payload for a layout bin
type BinInput struct {
	Zone     string `json:"zone"`
	Rack     string `json:"rack"`
	Position string `json:"position"`
	SKU      string `json:"sku"`
	Quantity int    `json:"quantity"`
	Status   string `json:"status"`
}

// MovementInput is the payload recording a stock movement
type MovementInput struct {
	BinID     string `json:"bin_id"`
	SKU       string `json:"sku"`
	Direction string `json:"direction"`
	Quantity  int    `json:"quantity"`
	Reference string `json:"reference"`
}
