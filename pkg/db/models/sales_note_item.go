package models

import (
	"time"

	"github.com/google/uuid"
)

// SalesNoteItem ties a shipped quantity back to the order item it fulfills.
type SalesNoteItem struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SalesNoteID uuid.UUID `gorm:"column:sales_note_id;type:uuid;not null"`
	OrderItemID uuid.UUID `gorm:"column:order_item_id;type:uuid;not null"`
	Quantity    int       `gorm:"column:quantity;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}
