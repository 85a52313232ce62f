package models

import (
	"time"
)

// Vendor statuses
const (
	VendorStatusActive    = "Active"
	VendorStatusInactive  = "Inactive"
	VendorStatusSuspended = "Suspended"
)

// ValidVendorStatuses defines allowed vendor statuses
var ValidVendorStatuses = map[string]bool{
	VendorStatusActive:    true,
	VendorStatusInactive:  true,
	VendorStatusSuspended: true,
}

// Vendor represents a supplier managed through the vendor portal
type Vendor struct {
	ID         string    `json:"id" db:"id"`
	TenantID   string    `json:"tenant_id" db:"tenant_id"`
	Name       string    `json:"name" db:"name"`
	Email      string    `json:"email" db:"email"`
	Phone      string    `json:"phone,omitempty" db:"phone"`
	Department string    `json:"department,omitempty" db:"department"`
	Status     string    `json:"status" db:"status"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// VendorInput is the create/update payload for a vendor
type VendorInput struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Department string `json:"department"`
	Status     string `json:"status"`
}
