package validation

import (
	"fmt"
	"regexp"

	"github.com/admin-console-api/internal/models"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// FieldError represents a single field-level validation error
type FieldError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// ValidateRole checks a role payload
func ValidateRole(role *models.Role) []FieldError {
	var errors []FieldError

	if role.SystemRole == "" {
		errors = append(errors, FieldError{Field: "system_role", Message: "system_role is required"})
	} else if !models.ValidSystemRoles[role.SystemRole] {
		errors = append(errors, FieldError{
			Field:   "system_role",
			Message: "unknown system role",
			Value:   role.SystemRole,
		})
	}

	if role.UIAccess == "" {
		errors = append(errors, FieldError{Field: "ui_access", Message: "ui_access is required"})
	} else if !models.ValidPortals[role.UIAccess] {
		errors = append(errors, FieldError{
			Field:   "ui_access",
			Message: fmt.Sprintf("ui_access must be one of: %s, %s, %s", models.PortalAdmin, models.PortalVendor, models.PortalWarehouse),
			Value:   role.UIAccess,
		})
	}

	return errors
}

// ValidateNewUser checks a user creation payload
func ValidateNewUser(user *models.User, password string) []FieldError {
	var errors []FieldError

	if user.Email == "" {
		errors = append(errors, FieldError{Field: "email", Message: "email is required"})
	} else if !emailRegex.MatchString(user.Email) {
		errors = append(errors, FieldError{Field: "email", Message: "invalid email format", Value: user.Email})
	}

	if user.Name == "" {
		errors = append(errors, FieldError{Field: "name", Message: "name is required"})
	}

	if len(password) < 8 {
		errors = append(errors, FieldError{Field: "password", Message: "password must be at least 8 characters"})
	}

	if len(user.Roles) == 0 {
		errors = append(errors, FieldError{Field: "roles", Message: "at least one role is required"})
	}

	return errors
}

// ValidateVendor checks a vendor payload
func ValidateVendor(input models.VendorInput) []FieldError {
	var errors []FieldError

	if input.Name == "" {
		errors = append(errors, FieldError{Field: "name", Message: "name is required"})
	}

	if input.Email == "" {
		errors = append(errors, FieldError{Field: "email", Message: "email is required"})
	} else if !emailRegex.MatchString(input.Email) {
		errors = append(errors, FieldError{Field: "email", Message: "invalid email format", Value: input.Email})
	}

	if input.Status != "" && !models.ValidVendorStatuses[input.Status] {
		errors = append(errors, FieldError{
			Field:   "status",
			Message: "status must be one of: Active, Inactive, Suspended",
			Value:   input.Status,
		})
	}

	return errors
}

// ValidateWarehouse checks a warehouse payload
func ValidateWarehouse(input models.WarehouseInput) []FieldError {
	var errors []FieldError

	if input.Code == "" {
		errors = append(errors, FieldError{Field: "code", Message: "code is required"})
	}
	if input.Name == "" {
		errors = append(errors, FieldError{Field: "name", Message: "name is required"})
	}

	return errors
}

// ValidateBin checks a layout bin payload
func ValidateBin(input models.BinInput) []FieldError {
	var errors []FieldError

	if input.Zone == "" {
		errors = append(errors, FieldError{Field: "zone", Message: "zone is required"})
	}
	if input.Rack == "" {
		errors = append(errors, FieldError{Field: "rack", Message: "rack is required"})
	}
	if input.Position == "" {
		errors = append(errors, FieldError{Field: "position", Message: "position is required"})
	}
	if input.Quantity < 0 {
		errors = append(errors, FieldError{Field: "quantity", Message: "quantity cannot be negative", Value: input.Quantity})
	}
	if input.Status != "" && !models.ValidBinStatuses[input.Status] {
		errors = append(errors, FieldError{
			Field:   "status",
			Message: "status must be one of: Empty, Occupied, Reserved, Blocked",
			Value:   input.Status,
		})
	}

	return errors
}

// ValidateMovement checks a stock movement payload
func ValidateMovement(input models.MovementInput) []FieldError {
	var errors []FieldError

	if input.SKU == "" {
		errors = append(errors, FieldError{Field: "sku", Message: "sku is required"})
	}
	if input.Quantity <= 0 {
		errors = append(errors, FieldError{Field: "quantity", Message: "quantity must be positive", Value: input.Quantity})
	}
	switch input.Direction {
	case models.MovementInbound, models.MovementOutbound, models.MovementTransfer:
	default:
		errors = append(errors, FieldError{
			Field:   "direction",
			Message: "direction must be one of: inbound, outbound, transfer",
			Value:   input.Direction,
		})
	}

	return errors
}

// ValidateRoute checks a delivery route payload
func ValidateRoute(input models.RouteInput) []FieldError {
	var errors []FieldError

	if input.Code == "" {
		errors = append(errors, FieldError{Field: "code", Message: "code is required"})
	}
	if input.Name == "" {
		errors = append(errors, FieldError{Field: "name", Message: "name is required"})
	}
	if input.WarehouseID == "" {
		errors = append(errors, FieldError{Field: "warehouse_id", Message: "warehouse_id is required"})
	}
	if input.Status != "" && !models.ValidRouteStatuses[input.Status] {
		errors = append(errors, FieldError{
			Field:   "status",
			Message: "status must be one of: Planned, Active, Archived",
			Value:   input.Status,
		})
	}

	return errors
}

// ValidateArea checks an area assignment payload
func ValidateArea(input models.AreaInput) []FieldError {
	var errors []FieldError

	if input.Name == "" {
		errors = append(errors, FieldError{Field: "name", Message: "name is required"})
	}
	if input.Position < 0 {
		errors = append(errors, FieldError{Field: "position", Message: "position cannot be negative", Value: input.Position})
	}

	return errors
}
