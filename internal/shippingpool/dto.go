package shippingpool

import (
	"time"

	"github.com/google/uuid"

	"github.com/ocampodev/supplyline-backend/pkg/auth"
	"github.com/ocampodev/supplyline-backend/pkg/enums"
)

// AddInput stages a quantity of one order item for its store's next note.
type AddInput struct {
	OrderItemID uuid.UUID
	Quantity    int
	Actor       auth.CurrentUser
}

// EntryView is one staged entry in the grouped pool projection.
type EntryView struct {
	ID                uuid.UUID             `json:"id"`
	OrderItemID       uuid.UUID             `json:"order_item_id"`
	OrderID           uuid.UUID             `json:"order_id"`
	ProductID         uuid.UUID             `json:"product_id"`
	ProductName       string                `json:"product_name"`
	VariantName       *string               `json:"variant_name,omitempty"`
	Quantity          int                   `json:"quantity"`
	OrderedQuantity   int                   `json:"ordered_quantity"`
	ShippedQuantity   int                   `json:"shipped_quantity"`
	RemainingHeadroom int                   `json:"remaining_headroom"`
	ItemStatus        enums.OrderItemStatus `json:"item_status"`
	CreatedAt         time.Time             `json:"created_at"`
}

// StoreGroup aggregates a store's staged entries.
type StoreGroup struct {
	StoreID       uuid.UUID   `json:"store_id"`
	StoreName     string      `json:"store_name"`
	EntryCount    int         `json:"entry_count"`
	TotalQuantity int         `json:"total_quantity"`
	Entries       []EntryView `json:"entries"`
}
