package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// AuditLog is an append-only record of a state change to a domain entity.
type AuditLog struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	EntityType  string          `gorm:"column:entity_type;not null"`
	EntityID    uuid.UUID       `gorm:"column:entity_id;type:uuid;not null"`
	Action      string          `gorm:"column:action;not null"`
	ActorUserID *uuid.UUID      `gorm:"column:actor_user_id;type:uuid"`
	OldValues   json.RawMessage `gorm:"column:old_values;type:jsonb"`
	NewValues   json.RawMessage `gorm:"column:new_values;type:jsonb"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
}
