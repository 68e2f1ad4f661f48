package salesnotes

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/ocampodev/supplyline-backend/internal/audit"
	"github.com/ocampodev/supplyline-backend/pkg/db/models"
	"github.com/ocampodev/supplyline-backend/pkg/enums"
	pkgerrors "github.com/ocampodev/supplyline-backend/pkg/errors"
	"github.com/ocampodev/supplyline-backend/pkg/outbox"
	"github.com/ocampodev/supplyline-backend/pkg/outbox/payloads"
	"github.com/ocampodev/supplyline-backend/pkg/types"
)

// CommitPool consolidates each requested store's pool entries into a shipped
// sales note. Store groups run in their own transactions; one store failing
// never rolls back another. The returned error is the combined per-store
// failure set and accompanies a fully populated result.
func (s *service) CommitPool(ctx context.Context, input CommitInput) (*CommitResult, error) {
	if len(input.StoreIDs) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one store id required")
	}
	seen := make(map[uuid.UUID]struct{}, len(input.StoreIDs))
	for _, storeID := range input.StoreIDs {
		if storeID == uuid.Nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "store id required")
		}
		if _, dup := seen[storeID]; dup {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "duplicate store id").
				WithDetails(map[string]any{"store_id": storeID})
		}
		seen[storeID] = struct{}{}
	}

	started := time.Now()
	result := &CommitResult{Outcomes: make([]StoreOutcome, 0, len(input.StoreIDs))}
	var combined error

	for _, storeID := range input.StoreIDs {
		noteID, err := s.commitStore(ctx, storeID, input)
		outcome := StoreOutcome{StoreID: storeID}
		if err != nil {
			outcome.Error = toAPIError(err)
			combined = multierr.Append(combined, fmt.Errorf("store %s: %w", storeID, err))
			s.metrics.IncSkipped(string(codeOf(err)))
			s.logg.Error(s.logg.WithStoreID(ctx, storeID.String()), "pool commit failed for store", err)
		} else {
			outcome.SalesNoteID = &noteID
			s.metrics.IncCommitted()
		}
		result.Outcomes = append(result.Outcomes, outcome)
	}

	s.metrics.ObserveDuration(time.Since(started))
	return result, combined
}

// commitStore runs one store's commit under its claim lock and transaction.
func (s *service) commitStore(ctx context.Context, storeID uuid.UUID, input CommitInput) (uuid.UUID, error) {
	lockKey := s.locker.LockKey("poolcommit", storeID.String())
	acquired, err := s.locker.AcquireLock(ctx, lockKey, input.Actor.UserID.String(), s.lockTTL)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "acquire commit lock")
	}
	if !acquired {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeConcurrencyConflict, "another commit holds this store's pool").
			WithDetails(map[string]any{"store_id": storeID})
	}
	defer func() {
		if err := s.locker.ReleaseLock(ctx, lockKey); err != nil {
			s.logg.Error(ctx, "release commit lock", err)
		}
	}()

	var noteID uuid.UUID
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		entries, err := repo.PoolEntriesByStore(ctx, storeID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load pool entries")
		}
		if len(entries) == 0 {
			return pkgerrors.New(pkgerrors.CodeConcurrencyConflict, "pool drained for store between read and commit").
				WithDetails(map[string]any{"store_id": storeID})
		}

		shippedAt := time.Now().UTC()
		note := &models.SalesNote{
			StoreID:   storeID,
			CreatedBy: input.Actor.UserID,
			Status:    enums.SalesNoteStatusShipped,
			Notes:     input.Notes,
			ShippedAt: &shippedAt,
		}
		if err := repo.CreateNote(ctx, note); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create sales note")
		}
		noteID = note.ID

		noteItems := make([]models.SalesNoteItem, 0, len(entries))
		entryIDs := make([]uuid.UUID, 0, len(entries))
		summed := make(map[uuid.UUID]int)
		for _, entry := range entries {
			noteItems = append(noteItems, models.SalesNoteItem{
				SalesNoteID: note.ID,
				OrderItemID: entry.OrderItemID,
				Quantity:    entry.Quantity,
			})
			entryIDs = append(entryIDs, entry.ID)
			summed[entry.OrderItemID] += entry.Quantity
		}
		if err := repo.CreateNoteItems(ctx, noteItems); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create sales note items")
		}
		note.Items = noteItems

		itemIDs := make([]uuid.UUID, 0, len(summed))
		for id := range summed {
			itemIDs = append(itemIDs, id)
		}
		items, err := repo.FindOrderItems(ctx, itemIDs)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order items")
		}
		for _, item := range items {
			if summed[item.ID]+item.ShippedQuantity > item.Quantity {
				return pkgerrors.New(pkgerrors.CodeOverAllocation, "pooled quantity exceeds remaining allocation").
					WithDetails(map[string]any{
						"order_item_id": item.ID,
						"ordered":       item.Quantity,
						"shipped":       item.ShippedQuantity,
						"pooled":        summed[item.ID],
					})
			}
		}
		for _, item := range items {
			if err := s.orders.IncrementShipped(ctx, tx, item.ID, summed[item.ID], input.Actor); err != nil {
				return err
			}
		}

		affected, err := repo.DeletePoolEntries(ctx, entryIDs)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete pool entries")
		}
		if affected != int64(len(entryIDs)) {
			return pkgerrors.New(pkgerrors.CodeConcurrencyConflict, "pool entries changed during commit").
				WithDetails(map[string]any{"store_id": storeID, "expected": len(entryIDs), "deleted": affected})
		}

		if err := s.rollupAffectedOrders(ctx, tx, repo, noteItems); err != nil {
			return err
		}

		if err := s.audit.Record(ctx, tx, audit.Entry{
			EntityType:  audit.EntitySalesNote,
			EntityID:    note.ID,
			Action:      audit.ActionNoteCreated,
			ActorUserID: &input.Actor.UserID,
			New:         noteSnapshot(note),
		}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record note audit")
		}

		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventSalesNoteCreated,
			AggregateType: enums.AggregateSalesNote,
			AggregateID:   note.ID,
			Actor:         actorRef(input.Actor),
			Version:       1,
			Data: payloads.SalesNoteCreatedEvent{
				SalesNoteID: note.ID,
				StoreID:     storeID,
				Status:      string(enums.SalesNoteStatusShipped),
				ItemCount:   len(noteItems),
			},
		})
	})
	if err != nil {
		return uuid.Nil, err
	}
	return noteID, nil
}

func toAPIError(err error) *types.APIError {
	typed := pkgerrors.As(err)
	if typed == nil {
		meta := pkgerrors.MetadataFor(pkgerrors.CodeInternal)
		return &types.APIError{Code: string(pkgerrors.CodeInternal), Message: meta.PublicMessage}
	}
	return &types.APIError{
		Code:    string(typed.Code()),
		Message: typed.Message(),
		Details: typed.Details(),
	}
}

func codeOf(err error) pkgerrors.Code {
	if typed := pkgerrors.As(err); typed != nil {
		return typed.Code()
	}
	return pkgerrors.CodeInternal
}
