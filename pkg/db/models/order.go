package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/ocampodev/supplyline-backend/pkg/enums"
)

// Order is a store's wholesale order. Whether every item is shipped is
// derived from the items, never stored on the order row.
type Order struct {
	ID        uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	StoreID   uuid.UUID         `gorm:"column:store_id;type:uuid;not null"`
	CreatedBy uuid.UUID         `gorm:"column:created_by;type:uuid;not null"`
	Source    enums.OrderSource `gorm:"column:source;type:order_source;not null;default:'frontend'"`
	Status    enums.OrderStatus `gorm:"column:status;type:order_status;not null;default:'pending'"`
	Notes     *string           `gorm:"column:notes"`
	Items     []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
