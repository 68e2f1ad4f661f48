package shippingpool

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ocampodev/supplyline-backend/internal/audit"
	"github.com/ocampodev/supplyline-backend/internal/fulfillment"
	"github.com/ocampodev/supplyline-backend/pkg/auth"
	"github.com/ocampodev/supplyline-backend/pkg/db/models"
	pkgerrors "github.com/ocampodev/supplyline-backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service stages order item quantities for the next sales notes.
type Service interface {
	Add(ctx context.Context, input AddInput) (*models.ShippingPoolEntry, error)
	Remove(ctx context.Context, entryID uuid.UUID, actor auth.CurrentUser) error
	GroupedByStore(ctx context.Context) ([]StoreGroup, error)
}

type service struct {
	repo  Repository
	tx    txRunner
	audit audit.Recorder
}

// NewService builds a shipping pool service with the required dependencies.
func NewService(repo Repository, tx txRunner, recorder audit.Recorder) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("shipping pool repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if recorder == nil {
		return nil, fmt.Errorf("audit recorder required")
	}
	return &service{repo: repo, tx: tx, audit: recorder}, nil
}

func (s *service) Add(ctx context.Context, input AddInput) (*models.ShippingPoolEntry, error) {
	if input.OrderItemID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order item id required")
	}
	if input.Quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "pool quantity must be positive").
			WithDetails(map[string]any{"order_item_id": input.OrderItemID, "quantity": input.Quantity})
	}

	var entry *models.ShippingPoolEntry
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		item, err := repo.FindOrderItem(ctx, input.OrderItemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order item not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order item")
		}
		if item.Status.IsException() {
			return pkgerrors.New(pkgerrors.CodeStateConflict, fmt.Sprintf("cannot stage %s item", item.Status)).
				WithDetails(map[string]any{"order_item_id": item.ID, "status": item.Status})
		}

		pooled, err := repo.PooledQuantity(ctx, item.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum pooled quantity")
		}
		if input.Quantity+pooled+item.ShippedQuantity > item.Quantity {
			return pkgerrors.New(pkgerrors.CodeOverAllocation, "pool quantity exceeds remaining headroom").
				WithDetails(map[string]any{
					"order_item_id": item.ID,
					"ordered":       item.Quantity,
					"shipped":       item.ShippedQuantity,
					"pooled":        pooled,
					"requested":     input.Quantity,
				})
		}

		entry = &models.ShippingPoolEntry{
			OrderItemID: item.ID,
			StoreID:     item.StoreID,
			Quantity:    input.Quantity,
			CreatedBy:   input.Actor.UserID,
		}
		if err := repo.CreateEntry(ctx, entry); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create pool entry")
		}

		return s.audit.Record(ctx, tx, audit.Entry{
			EntityType:  audit.EntityPoolEntry,
			EntityID:    entry.ID,
			Action:      audit.ActionPoolEntryAdded,
			ActorUserID: &input.Actor.UserID,
			New: audit.PoolEntrySnapshot{
				OrderItemID: entry.OrderItemID,
				StoreID:     entry.StoreID,
				Quantity:    entry.Quantity,
			},
		})
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *service) Remove(ctx context.Context, entryID uuid.UUID, actor auth.CurrentUser) error {
	if entryID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "pool entry id required")
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		entry, err := repo.FindEntry(ctx, entryID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "pool entry not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load pool entry")
		}

		affected, err := repo.DeleteEntry(ctx, entryID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete pool entry")
		}
		if affected == 0 {
			return pkgerrors.New(pkgerrors.CodeNotFound, "pool entry not found")
		}

		return s.audit.Record(ctx, tx, audit.Entry{
			EntityType:  audit.EntityPoolEntry,
			EntityID:    entryID,
			Action:      audit.ActionPoolEntryRemoved,
			ActorUserID: &actor.UserID,
			Old: audit.PoolEntrySnapshot{
				OrderItemID: entry.OrderItemID,
				StoreID:     entry.StoreID,
				Quantity:    entry.Quantity,
			},
		})
	})
}

// GroupedByStore projects the pool as one group per store, ordered by store
// name. Headroom counts every staged entry of the item, not just this one.
func (s *service) GroupedByStore(ctx context.Context) ([]StoreGroup, error) {
	rows, err := s.repo.ListEntryRows(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list pool entries")
	}

	pooledByItem := make(map[uuid.UUID]int)
	for _, row := range rows {
		pooledByItem[row.OrderItemID] += row.Quantity
	}

	groups := make([]StoreGroup, 0)
	index := make(map[uuid.UUID]int)
	for _, row := range rows {
		i, ok := index[row.StoreID]
		if !ok {
			i = len(groups)
			index[row.StoreID] = i
			groups = append(groups, StoreGroup{StoreID: row.StoreID, StoreName: row.StoreName})
		}
		groups[i].EntryCount++
		groups[i].TotalQuantity += row.Quantity
		groups[i].Entries = append(groups[i].Entries, EntryView{
			ID:                row.EntryID,
			OrderItemID:       row.OrderItemID,
			OrderID:           row.OrderID,
			ProductID:         row.ProductID,
			ProductName:       row.ProductName,
			VariantName:       row.VariantName,
			Quantity:          row.Quantity,
			OrderedQuantity:   row.OrderedQuantity,
			ShippedQuantity:   row.ShippedQuantity,
			RemainingHeadroom: fulfillment.Remaining(row.OrderedQuantity, row.ShippedQuantity, pooledByItem[row.OrderItemID]),
			ItemStatus:        row.ItemStatus,
			CreatedAt:         row.CreatedAt,
		})
	}
	return groups, nil
}
