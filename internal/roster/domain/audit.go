package domain

import "time"

// EntityUser is the entity type of user audit entries.
const EntityUser = "User"

// SystemActor is recorded when a change has no authenticated actor.
const SystemActor = "System"

// Audit actions. The set is open; queries match the string exactly.
const (
	ActionCreate       = "Create"
	ActionRegister     = "Register"
	ActionUpdate       = "Update"
	ActionDelete       = "Delete"
	ActionRestore      = "Restore"
	ActionStatusChange = "StatusChange"
	ActionUpdateAvatar = "UpdateAvatar"
	ActionDeleteAvatar = "DeleteAvatar"
	ActionEnrollMFA    = "EnrollMFA"
	ActionEnableMFA    = "EnableMFA"
	ActionDisableMFA   = "DisableMFA"
)

// AuditChanges is the before and after state of an audited change. Old is
// nil for creations, New is nil for deletions.
type AuditChanges struct {
	Old map[string]any `json:"old"`
	New map[string]any `json:"new"`
}

// AuditLog is an append-only record of a change. It references its entity
// by type and id only and outlives deleted users.
type AuditLog struct {
	ID         int64
	EntityType string
	EntityID   string
	Action     string
	ActorID    *string
	ActorName  string
	Changes    AuditChanges
	CreatedAt  time.Time
}

// AuditFilter selects audit entries. Empty fields match everything.
type AuditFilter struct {
	EntityType string
	EntityID   string
	Action     string
	Limit      int
	Offset     int
}
