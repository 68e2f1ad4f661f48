package payloads

import (
	"time"

	"github.com/google/uuid"
)

// OrderCreatedEvent signals a new wholesale order with its item count.
type OrderCreatedEvent struct {
	OrderID   uuid.UUID `json:"order_id"`
	StoreID   uuid.UUID `json:"store_id"`
	Source    string    `json:"source"`
	ItemCount int       `json:"item_count"`
}

// OrderFullyShippedEvent fires once when the last open item of an order
// reaches shipped.
type OrderFullyShippedEvent struct {
	OrderID uuid.UUID `json:"order_id"`
	StoreID uuid.UUID `json:"store_id"`
}

// SalesNoteCreatedEvent is emitted for both pool commits and manual drafts.
type SalesNoteCreatedEvent struct {
	SalesNoteID uuid.UUID `json:"sales_note_id"`
	StoreID     uuid.UUID `json:"store_id"`
	Status      string    `json:"status"`
	ItemCount   int       `json:"item_count"`
}

// SalesNoteShippedEvent is emitted when a note's quantities are applied.
type SalesNoteShippedEvent struct {
	SalesNoteID uuid.UUID `json:"sales_note_id"`
	StoreID     uuid.UUID `json:"store_id"`
	ShippedAt   time.Time `json:"shipped_at"`
}

// SalesNoteReceivedEvent is emitted when the store confirms receipt.
type SalesNoteReceivedEvent struct {
	SalesNoteID uuid.UUID `json:"sales_note_id"`
	StoreID     uuid.UUID `json:"store_id"`
	ReceivedBy  uuid.UUID `json:"received_by"`
	ReceivedAt  time.Time `json:"received_at"`
}

// SalesNoteDeletedEvent is emitted after a rollback deletion.
type SalesNoteDeletedEvent struct {
	SalesNoteID    uuid.UUID `json:"sales_note_id"`
	StoreID        uuid.UUID `json:"store_id"`
	RolledBackQty  int       `json:"rolled_back_qty"`
	PriorStatus    string    `json:"prior_status"`
	AffectedOrders int       `json:"affected_orders"`
}
