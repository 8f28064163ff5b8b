package entity

import (
	"encoding/json"
	"time"
)

// AuditLogEntry registro inmutable de una acción mutadora: quién, qué entidad,
// valores antes/después y cuándo. Nunca se actualiza ni se borra.
type AuditLogEntry struct {
	ID         string
	UserID     string
	Action     string // create, update, delete, approve, reject, waste
	EntityType string // item, batch, suggestion, user
	EntityID   string
	OldValues  json.RawMessage
	NewValues  json.RawMessage
	CreatedAt  time.Time
}
