package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/ocampodev/supplyline-backend/pkg/enums"
)

// SalesNote is a shipment document for one store.
type SalesNote struct {
	ID         uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	StoreID    uuid.UUID             `gorm:"column:store_id;type:uuid;not null"`
	CreatedBy  uuid.UUID             `gorm:"column:created_by;type:uuid;not null"`
	Status     enums.SalesNoteStatus `gorm:"column:status;type:sales_note_status;not null;default:'draft'"`
	Notes      *string               `gorm:"column:notes"`
	ShippedAt  *time.Time            `gorm:"column:shipped_at"`
	ReceivedAt *time.Time            `gorm:"column:received_at"`
	ReceivedBy *uuid.UUID            `gorm:"column:received_by;type:uuid"`
	Items      []SalesNoteItem       `gorm:"foreignKey:SalesNoteID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
