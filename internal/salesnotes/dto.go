package salesnotes

import (
	"time"

	"github.com/google/uuid"

	"github.com/ocampodev/supplyline-backend/pkg/auth"
	"github.com/ocampodev/supplyline-backend/pkg/enums"
	"github.com/ocampodev/supplyline-backend/pkg/types"
)

// CommitInput selects the store groups consolidated by one commit run.
type CommitInput struct {
	StoreIDs []uuid.UUID
	Notes    *string
	Actor    auth.CurrentUser
}

// StoreOutcome reports one store's result of a pool commit. A store either
// produced a sales note or failed with a coded error; never both.
type StoreOutcome struct {
	StoreID     uuid.UUID       `json:"store_id"`
	SalesNoteID *uuid.UUID      `json:"sales_note_id,omitempty"`
	Error       *types.APIError `json:"error,omitempty"`
}

// CommitResult aggregates the per-store outcomes of one commit run.
type CommitResult struct {
	Outcomes []StoreOutcome `json:"outcomes"`
}

// CreateDraftItem is one requested line of a direct draft.
type CreateDraftItem struct {
	OrderItemID uuid.UUID `json:"order_item_id"`
	Quantity    int       `json:"quantity"`
}

// CreateDraftInput captures a staff multi-select draft.
type CreateDraftInput struct {
	StoreID uuid.UUID
	Items   []CreateDraftItem
	Notes   *string
	Actor   auth.CurrentUser
}

// ListFilters describe the inputs supported by the sales note list.
type ListFilters struct {
	StoreID *uuid.UUID
	Status  *enums.SalesNoteStatus
}

// NoteSummary is one row of the sales note list.
type NoteSummary struct {
	ID         uuid.UUID             `json:"id"`
	StoreID    uuid.UUID             `json:"store_id"`
	StoreName  string                `json:"store_name"`
	Status     enums.SalesNoteStatus `json:"status"`
	ItemCount  int                   `json:"item_count"`
	ShippedAt  *time.Time            `json:"shipped_at,omitempty"`
	ReceivedAt *time.Time            `json:"received_at,omitempty"`
	CreatedAt  time.Time             `json:"created_at"`
}

// NoteList wraps the paginated notes plus the next page cursor.
type NoteList struct {
	Notes      []NoteSummary `json:"notes"`
	NextCursor string        `json:"next_cursor,omitempty"`
}

// NoteItemDetail is one line of a note with its order context.
type NoteItemDetail struct {
	ID              uuid.UUID `json:"id"`
	OrderItemID     uuid.UUID `json:"order_item_id"`
	OrderID         uuid.UUID `json:"order_id"`
	ProductName     string    `json:"product_name"`
	VariantName     *string   `json:"variant_name,omitempty"`
	Quantity        int       `json:"quantity"`
	OrderedQuantity int       `json:"ordered_quantity"`
	ShippedQuantity int       `json:"shipped_quantity"`
}

// NoteDetail is the full sales note view.
type NoteDetail struct {
	ID         uuid.UUID             `json:"id"`
	StoreID    uuid.UUID             `json:"store_id"`
	StoreName  string                `json:"store_name"`
	Status     enums.SalesNoteStatus `json:"status"`
	Notes      *string               `json:"notes,omitempty"`
	ShippedAt  *time.Time            `json:"shipped_at,omitempty"`
	ReceivedAt *time.Time            `json:"received_at,omitempty"`
	ReceivedBy *uuid.UUID            `json:"received_by,omitempty"`
	Items      []NoteItemDetail      `json:"items"`
	CreatedAt  time.Time             `json:"created_at"`
}
