package models

import (
	"time"

	"github.com/google/uuid"
)

// ShippingPoolEntry stages a quantity of an order item for the next sales
// note of its store.
type ShippingPoolEntry struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderItemID uuid.UUID `gorm:"column:order_item_id;type:uuid;not null"`
	StoreID     uuid.UUID `gorm:"column:store_id;type:uuid;not null"`
	Quantity    int       `gorm:"column:quantity;not null"`
	CreatedBy   uuid.UUID `gorm:"column:created_by;type:uuid;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}
