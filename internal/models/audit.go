package models

import (
	"time"
)

// AuditAction identifies what a mutation did to an entity
type AuditAction string

const (
	AuditActionCreate AuditAction = "create"
	AuditActionUpdate AuditAction = "update"
	AuditActionDelete AuditAction = "delete"
	AuditActionLogin  AuditAction = "login"
	AuditActionLogout AuditAction = "logout"
)

// AuditLog records who changed what. Before/After hold JSON snapshots of the
// entity around the mutation ("null" when not applicable).
type AuditLog struct {
	ID         string      `json:"id" db:"id"`
	TenantID   string      `json:"tenant_id" db:"tenant_id"`
	ActorID    string      `json:"actor_id" db:"actor_id"`
	ActorName  string      `json:"actor_name" db:"actor_name"`
	EntityType string      `json:"entity_type" db:"entity_type"`
	EntityID   string      `json:"entity_id" db:"entity_id"`
	Action     AuditAction `json:"action" db:"action"`
	Field      string      `json:"field,omitempty" db:"field"`
	Before     string      `json:"before,omitempty" db:"before_data"`
	After      string      `json:"after,omitempty" db:"after_data"`
	CreatedAt  time.Time   `json:"created_at" db:"created_at"`
}
