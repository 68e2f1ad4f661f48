package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ocampodev/supplyline-backend/pkg/enums"
)

// ListFilters describe the inputs supported by the order list.
type ListFilters struct {
	StoreID      *uuid.UUID
	Status       *enums.OrderStatus
	FullyShipped *bool
}

// OrderSummary exposes the aggregated fields returned in the order list.
type OrderSummary struct {
	ID           uuid.UUID                     `json:"id"`
	StoreID      uuid.UUID                     `json:"store_id"`
	StoreName    string                        `json:"store_name"`
	Source       enums.OrderSource             `json:"source"`
	Status       enums.OrderStatus             `json:"status"`
	FullyShipped bool                          `json:"fully_shipped"`
	ItemCount    int                           `json:"item_count"`
	StatusCounts map[enums.OrderItemStatus]int `json:"status_counts"`
	CreatedAt    time.Time                     `json:"created_at"`
}

// OrderList wraps the paginated orders plus the next page cursor.
type OrderList struct {
	Orders     []OrderSummary `json:"orders"`
	NextCursor string         `json:"next_cursor,omitempty"`
}

// OrderItemDetail is one fulfillment line in the order detail view.
type OrderItemDetail struct {
	ID                 uuid.UUID             `json:"id"`
	ProductID          uuid.UUID             `json:"product_id"`
	ProductName        string                `json:"product_name"`
	VariantID          *uuid.UUID            `json:"variant_id,omitempty"`
	VariantName        *string               `json:"variant_name,omitempty"`
	Quantity           int                   `json:"quantity"`
	ShippedQuantity    int                   `json:"shipped_quantity"`
	PooledQuantity     int                   `json:"pooled_quantity"`
	RemainingQuantity  int                   `json:"remaining_quantity"`
	UnitWholesalePrice decimal.Decimal       `json:"unit_wholesale_price"`
	UnitRetailPrice    decimal.Decimal       `json:"unit_retail_price"`
	Status             enums.OrderItemStatus `json:"status"`
}

// OrderDetail is the full order view with items and the derived rollup.
type OrderDetail struct {
	ID           uuid.UUID                     `json:"id"`
	StoreID      uuid.UUID                     `json:"store_id"`
	StoreName    string                        `json:"store_name"`
	Source       enums.OrderSource             `json:"source"`
	Status       enums.OrderStatus             `json:"status"`
	Notes        *string                       `json:"notes,omitempty"`
	FullyShipped bool                          `json:"fully_shipped"`
	StatusCounts map[enums.OrderItemStatus]int `json:"status_counts"`
	Items        []OrderItemDetail             `json:"items"`
	CreatedAt    time.Time                     `json:"created_at"`
	UpdatedAt    time.Time                     `json:"updated_at"`
}

// CreateItemInput is one requested line at order intake.
type CreateItemInput struct {
	ProductID uuid.UUID  `json:"product_id"`
	VariantID *uuid.UUID `json:"variant_id,omitempty"`
	Quantity  int        `json:"quantity"`
}

// CreateInput captures everything needed to create an order.
type CreateInput struct {
	StoreID uuid.UUID
	Source  enums.OrderSource
	Items   []CreateItemInput
	Notes   *string
}
