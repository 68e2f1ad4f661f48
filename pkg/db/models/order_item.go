package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ocampodev/supplyline-backend/pkg/enums"
)

// OrderItem is one fulfillment line of an order. Prices are snapshots taken
// at order creation. shipped_quantity never exceeds quantity.
type OrderItem struct {
	ID                 uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID            uuid.UUID             `gorm:"column:order_id;type:uuid;not null"`
	ProductID          uuid.UUID             `gorm:"column:product_id;type:uuid;not null"`
	VariantID          *uuid.UUID            `gorm:"column:variant_id;type:uuid"`
	StoreID            uuid.UUID             `gorm:"column:store_id;type:uuid;not null"`
	Quantity           int                   `gorm:"column:quantity;not null"`
	UnitWholesalePrice decimal.Decimal       `gorm:"column:unit_wholesale_price;type:numeric(12,2);not null"`
	UnitRetailPrice    decimal.Decimal       `gorm:"column:unit_retail_price;type:numeric(12,2);not null"`
	ShippedQuantity    int                   `gorm:"column:shipped_quantity;not null;default:0"`
	Status             enums.OrderItemStatus `gorm:"column:status;type:order_item_status;not null;default:'waiting'"`
	CreatedAt          time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
