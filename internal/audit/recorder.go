package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ocampodev/supplyline-backend/pkg/db/models"
	"github.com/ocampodev/supplyline-backend/pkg/enums"
	"github.com/ocampodev/supplyline-backend/pkg/pagination"
)

// Entity type tags written to audit_logs.entity_type.
const (
	EntityOrder     = "order"
	EntityOrderItem = "order_item"
	EntityPoolEntry = "pool_entry"
	EntitySalesNote = "sales_note"
)

// Actions recorded by the fulfillment mutations.
const (
	ActionOrderCreated     = "order.created"
	ActionOrderLockToggled = "order.lock_toggled"
	ActionOrderNotesSet    = "order.notes_updated"
	ActionItemShippedDelta = "order_item.shipped_delta"
	ActionItemStatusSet    = "order_item.status_set"
	ActionPoolEntryAdded   = "pool_entry.added"
	ActionPoolEntryRemoved = "pool_entry.removed"
	ActionNoteCreated      = "sales_note.created"
	ActionNoteShipped      = "sales_note.shipped"
	ActionNoteReceived     = "sales_note.received"
	ActionNoteDeleted      = "sales_note.deleted"
)

// OrderSnapshot captures the audited state of an order.
type OrderSnapshot struct {
	Status enums.OrderStatus `json:"status"`
	Notes  *string           `json:"notes,omitempty"`
}

// OrderItemSnapshot captures the audited quantities of an order item.
type OrderItemSnapshot struct {
	Status          enums.OrderItemStatus `json:"status"`
	Quantity        int                   `json:"quantity"`
	ShippedQuantity int                   `json:"shipped_quantity"`
}

// PoolEntrySnapshot captures the audited state of a shipping pool entry.
type PoolEntrySnapshot struct {
	OrderItemID uuid.UUID `json:"order_item_id"`
	StoreID     uuid.UUID `json:"store_id"`
	Quantity    int       `json:"quantity"`
}

// SalesNoteSnapshot captures the audited state of a sales note.
type SalesNoteSnapshot struct {
	Status    enums.SalesNoteStatus   `json:"status"`
	StoreID   uuid.UUID               `json:"store_id"`
	ItemCount int                     `json:"item_count"`
	Items     []SalesNoteItemSnapshot `json:"items,omitempty"`
}

// SalesNoteItemSnapshot is one line of a sales note snapshot.
type SalesNoteItemSnapshot struct {
	OrderItemID uuid.UUID `json:"order_item_id"`
	Quantity    int       `json:"quantity"`
}

// Entry is one audit record prior to serialization.
type Entry struct {
	EntityType  string
	EntityID    uuid.UUID
	Action      string
	ActorUserID *uuid.UUID
	Old         any
	New         any
}

// Recorder writes audit rows inside caller transactions.
type Recorder interface {
	Record(ctx context.Context, tx *gorm.DB, entry Entry) error
	ListByEntity(ctx context.Context, entityType string, entityID uuid.UUID, params pagination.Params) ([]models.AuditLog, *pagination.Cursor, error)
}

type recorder struct {
	repo Repository
}

// NewRecorder wires an audit recorder with the provided repository.
func NewRecorder(repo Repository) (Recorder, error) {
	if repo == nil {
		return nil, fmt.Errorf("audit repository required")
	}
	return &recorder{repo: repo}, nil
}

func (r *recorder) Record(ctx context.Context, tx *gorm.DB, entry Entry) error {
	if entry.EntityType == "" {
		return fmt.Errorf("entity type is required")
	}
	if entry.EntityID == uuid.Nil {
		return fmt.Errorf("entity id is required")
	}
	if entry.Action == "" {
		return fmt.Errorf("action is required")
	}

	oldValues, err := marshalSnapshot(entry.Old)
	if err != nil {
		return fmt.Errorf("marshal old snapshot: %w", err)
	}
	newValues, err := marshalSnapshot(entry.New)
	if err != nil {
		return fmt.Errorf("marshal new snapshot: %w", err)
	}

	row := models.AuditLog{
		EntityType:  entry.EntityType,
		EntityID:    entry.EntityID,
		Action:      entry.Action,
		ActorUserID: entry.ActorUserID,
		OldValues:   oldValues,
		NewValues:   newValues,
	}
	return r.repo.Create(ctx, tx, &row)
}

func (r *recorder) ListByEntity(ctx context.Context, entityType string, entityID uuid.UUID, params pagination.Params) ([]models.AuditLog, *pagination.Cursor, error) {
	if entityType == "" {
		return nil, nil, fmt.Errorf("entity type is required")
	}
	if entityID == uuid.Nil {
		return nil, nil, fmt.Errorf("entity id is required")
	}
	return r.repo.ListByEntity(ctx, entityType, entityID, params)
}

func marshalSnapshot(snapshot any) (json.RawMessage, error) {
	if snapshot == nil {
		return nil, nil
	}
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return nil, err
	}
	return raw, nil
}
