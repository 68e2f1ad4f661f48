package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/ocampodev/supplyline-backend/pkg/enums"
)

// Notification stores in-app notification payloads scoped to stores.
type Notification struct {
	ID              uuid.UUID              `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	StoreID         uuid.UUID              `gorm:"type:uuid;not null"`
	RecipientUserID *uuid.UUID             `gorm:"column:recipient_user_id;type:uuid"`
	Type            enums.NotificationType `gorm:"type:notification_type;not null"`
	Title           string                 `gorm:"type:text;not null"`
	Body            string                 `gorm:"type:text;not null"`
	Data            json.RawMessage        `gorm:"column:data;type:jsonb"`
	ReadAt          *time.Time             `gorm:"type:timestamptz"`
	CreatedAt       time.Time              `gorm:"type:timestamptz;default:now()"`
}
