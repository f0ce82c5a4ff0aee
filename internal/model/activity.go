package model

import "time"

// Activity actions recorded in the audit trail.
const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
	ActionImport = "import"
)

// ActivityLog is an append-only audit record. UserID is nil for system
// actions (scheduled imports).
type ActivityLog struct {
	ID         int64     `json:"id"`
	UserID     *int64    `json:"userId,omitempty"`
	Action     string    `json:"action"`
	EntityType string    `json:"entityType"`
	EntityID   int64     `json:"entityId"`
	Details    string    `json:"details,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}
