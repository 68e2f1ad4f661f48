package salesnotes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ocampodev/supplyline-backend/internal/audit"
	"github.com/ocampodev/supplyline-backend/internal/fulfillment"
	"github.com/ocampodev/supplyline-backend/pkg/auth"
	"github.com/ocampodev/supplyline-backend/pkg/db/models"
	"github.com/ocampodev/supplyline-backend/pkg/enums"
	pkgerrors "github.com/ocampodev/supplyline-backend/pkg/errors"
	"github.com/ocampodev/supplyline-backend/pkg/logger"
	"github.com/ocampodev/supplyline-backend/pkg/metrics"
	"github.com/ocampodev/supplyline-backend/pkg/outbox"
	"github.com/ocampodev/supplyline-backend/pkg/outbox/payloads"
	"github.com/ocampodev/supplyline-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type outboxPublisher interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

// fulfillmentApplier is the slice of the orders service notes build on.
type fulfillmentApplier interface {
	IncrementShipped(ctx context.Context, tx *gorm.DB, itemID uuid.UUID, delta int, actor auth.CurrentUser) error
	RollupFullyShipped(ctx context.Context, tx *gorm.DB, orderID uuid.UUID) error
}

type poolLocker interface {
	LockKey(parts ...string) string
	AcquireLock(ctx context.Context, key, owner string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key string) error
}

// Service manages the sales note lifecycle and pool commits.
type Service interface {
	CommitPool(ctx context.Context, input CommitInput) (*CommitResult, error)
	CreateDraft(ctx context.Context, input CreateDraftInput) (*NoteDetail, error)
	MarkShipped(ctx context.Context, noteID uuid.UUID, actor auth.CurrentUser) error
	MarkReceived(ctx context.Context, noteID uuid.UUID, actor auth.CurrentUser) error
	Delete(ctx context.Context, noteID uuid.UUID, actor auth.CurrentUser) error
	List(ctx context.Context, filters ListFilters, params pagination.Params, actor auth.CurrentUser) (*NoteList, error)
	Get(ctx context.Context, noteID uuid.UUID, actor auth.CurrentUser) (*NoteDetail, error)
}

type service struct {
	repo    Repository
	tx      txRunner
	orders  fulfillmentApplier
	outbox  outboxPublisher
	audit   audit.Recorder
	locker  poolLocker
	metrics *metrics.PoolCommitMetrics
	logg    *logger.Logger
	lockTTL time.Duration
}

// NewService builds a sales notes service with the required dependencies.
func NewService(
	repo Repository,
	tx txRunner,
	ordersSvc fulfillmentApplier,
	outboxSvc outboxPublisher,
	recorder audit.Recorder,
	locker poolLocker,
	poolMetrics *metrics.PoolCommitMetrics,
	logg *logger.Logger,
	opts ...Option,
) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("sales notes repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if ordersSvc == nil {
		return nil, fmt.Errorf("orders service required")
	}
	if outboxSvc == nil {
		return nil, fmt.Errorf("outbox publisher required")
	}
	if recorder == nil {
		return nil, fmt.Errorf("audit recorder required")
	}
	if locker == nil {
		return nil, fmt.Errorf("redis locker required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	svc := &service{
		repo:    repo,
		tx:      tx,
		orders:  ordersSvc,
		outbox:  outboxSvc,
		audit:   recorder,
		locker:  locker,
		metrics: poolMetrics,
		logg:    logg,
		lockTTL: defaultLockTTL,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

const defaultLockTTL = 30 * time.Second

// Option tweaks service construction.
type Option func(*service)

// WithLockTTL overrides the per-store claim lock lifetime used during commits.
func WithLockTTL(ttl time.Duration) Option {
	return func(s *service) {
		if ttl > 0 {
			s.lockTTL = ttl
		}
	}
}

func (s *service) CreateDraft(ctx context.Context, input CreateDraftInput) (*NoteDetail, error) {
	if input.StoreID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store id required")
	}
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "draft requires at least one item")
	}
	requested := make(map[uuid.UUID]int, len(input.Items))
	for _, line := range input.Items {
		if line.Quantity <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "draft quantity must be positive").
				WithDetails(map[string]any{"order_item_id": line.OrderItemID, "quantity": line.Quantity})
		}
		requested[line.OrderItemID] += line.Quantity
	}

	var note *models.SalesNote
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		itemIDs := make([]uuid.UUID, 0, len(requested))
		for id := range requested {
			itemIDs = append(itemIDs, id)
		}
		items, err := repo.FindOrderItems(ctx, itemIDs)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order items")
		}
		if len(items) != len(itemIDs) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "one or more order items not found")
		}
		pooled, err := repo.PooledQuantities(ctx, itemIDs)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum pooled quantities")
		}

		for _, item := range items {
			if item.StoreID != input.StoreID {
				return pkgerrors.New(pkgerrors.CodeValidation, "order item belongs to another store").
					WithDetails(map[string]any{"order_item_id": item.ID, "store_id": item.StoreID})
			}
			if item.Status.IsException() {
				return pkgerrors.New(pkgerrors.CodeStateConflict, fmt.Sprintf("cannot draft %s item", item.Status)).
					WithDetails(map[string]any{"order_item_id": item.ID, "status": item.Status})
			}
			// Early feedback only; the authoritative check re-runs at ship time.
			if requested[item.ID] > fulfillment.Remaining(item.Quantity, item.ShippedQuantity, pooled[item.ID]) {
				return pkgerrors.New(pkgerrors.CodeOverAllocation, "draft quantity exceeds remaining headroom").
					WithDetails(map[string]any{
						"order_item_id": item.ID,
						"ordered":       item.Quantity,
						"shipped":       item.ShippedQuantity,
						"pooled":        pooled[item.ID],
						"requested":     requested[item.ID],
					})
			}
		}

		note = &models.SalesNote{
			StoreID:   input.StoreID,
			CreatedBy: input.Actor.UserID,
			Status:    enums.SalesNoteStatusDraft,
			Notes:     input.Notes,
		}
		if err := repo.CreateNote(ctx, note); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create sales note")
		}

		rows := make([]models.SalesNoteItem, 0, len(input.Items))
		for _, line := range input.Items {
			rows = append(rows, models.SalesNoteItem{
				SalesNoteID: note.ID,
				OrderItemID: line.OrderItemID,
				Quantity:    line.Quantity,
			})
		}
		if err := repo.CreateNoteItems(ctx, rows); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create sales note items")
		}
		note.Items = rows

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
				StoreID:     note.StoreID,
				Status:      string(note.Status),
				ItemCount:   len(rows),
			},
		})
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, note.ID, input.Actor)
}

func (s *service) MarkShipped(ctx context.Context, noteID uuid.UUID, actor auth.CurrentUser) error {
	note, err := s.loadNote(ctx, noteID)
	if err != nil {
		return err
	}
	if note.Status != enums.SalesNoteStatusDraft {
		return pkgerrors.New(pkgerrors.CodeStateConflict, fmt.Sprintf("cannot ship a %s note", note.Status)).
			WithDetails(map[string]any{"sales_note_id": noteID, "status": note.Status})
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		shippedAt := time.Now().UTC()
		affected, err := repo.UpdateNoteShipped(ctx, noteID, shippedAt)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark note shipped")
		}
		if affected == 0 {
			return pkgerrors.New(pkgerrors.CodeConcurrencyConflict, "note left draft status concurrently").
				WithDetails(map[string]any{"sales_note_id": noteID})
		}

		// The draft's headroom check was advisory. Pool entries staged since
		// then still reserve stock, so the binding check runs here.
		requested := make(map[uuid.UUID]int, len(note.Items))
		for _, item := range note.Items {
			requested[item.OrderItemID] += item.Quantity
		}
		itemIDs := make([]uuid.UUID, 0, len(requested))
		for id := range requested {
			itemIDs = append(itemIDs, id)
		}
		items, err := repo.FindOrderItems(ctx, itemIDs)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order items")
		}
		pooled, err := repo.PooledQuantities(ctx, itemIDs)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum pooled quantities")
		}
		for _, item := range items {
			if requested[item.ID] > fulfillment.Remaining(item.Quantity, item.ShippedQuantity, pooled[item.ID]) {
				return pkgerrors.New(pkgerrors.CodeOverAllocation, "pooled stock no longer leaves room for this note").
					WithDetails(map[string]any{
						"order_item_id": item.ID,
						"ordered":       item.Quantity,
						"shipped":       item.ShippedQuantity,
						"pooled":        pooled[item.ID],
						"requested":     requested[item.ID],
					})
			}
		}

		for _, item := range note.Items {
			if err := s.orders.IncrementShipped(ctx, tx, item.OrderItemID, item.Quantity, actor); err != nil {
				return err
			}
		}

		if err := s.rollupAffectedOrders(ctx, tx, repo, note.Items); err != nil {
			return err
		}

		if err := s.audit.Record(ctx, tx, audit.Entry{
			EntityType:  audit.EntitySalesNote,
			EntityID:    noteID,
			Action:      audit.ActionNoteShipped,
			ActorUserID: &actor.UserID,
			Old:         noteSnapshot(note),
			New:         audit.SalesNoteSnapshot{Status: enums.SalesNoteStatusShipped, StoreID: note.StoreID, ItemCount: len(note.Items)},
		}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record note audit")
		}

		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventSalesNoteShipped,
			AggregateType: enums.AggregateSalesNote,
			AggregateID:   noteID,
			Actor:         actorRef(actor),
			Version:       1,
			Data: payloads.SalesNoteShippedEvent{
				SalesNoteID: noteID,
				StoreID:     note.StoreID,
				ShippedAt:   shippedAt,
			},
		})
	})
}

func (s *service) MarkReceived(ctx context.Context, noteID uuid.UUID, actor auth.CurrentUser) error {
	note, err := s.loadNote(ctx, noteID)
	if err != nil {
		return err
	}
	if !actor.CanConfirmReceipt(note.StoreID) {
		return pkgerrors.New(pkgerrors.CodePermissionDenied, "receipt confirmation requires store founder, manager or admin")
	}
	switch note.Status {
	case enums.SalesNoteStatusReceived:
		// Idempotent confirm.
		return nil
	case enums.SalesNoteStatusDraft:
		return pkgerrors.New(pkgerrors.CodeStateConflict, "cannot receive a draft note").
			WithDetails(map[string]any{"sales_note_id": noteID, "status": note.Status})
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		receivedAt := time.Now().UTC()
		affected, err := repo.UpdateNoteReceived(ctx, noteID, receivedAt, actor.UserID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark note received")
		}
		if affected == 0 {
			return pkgerrors.New(pkgerrors.CodeConcurrencyConflict, "note left shipped status concurrently").
				WithDetails(map[string]any{"sales_note_id": noteID})
		}

		if err := s.audit.Record(ctx, tx, audit.Entry{
			EntityType:  audit.EntitySalesNote,
			EntityID:    noteID,
			Action:      audit.ActionNoteReceived,
			ActorUserID: &actor.UserID,
			Old:         noteSnapshot(note),
			New:         audit.SalesNoteSnapshot{Status: enums.SalesNoteStatusReceived, StoreID: note.StoreID, ItemCount: len(note.Items)},
		}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record note audit")
		}

		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventSalesNoteReceived,
			AggregateType: enums.AggregateSalesNote,
			AggregateID:   noteID,
			Actor:         actorRef(actor),
			Version:       1,
			Data: payloads.SalesNoteReceivedEvent{
				SalesNoteID: noteID,
				StoreID:     note.StoreID,
				ReceivedBy:  actor.UserID,
				ReceivedAt:  receivedAt,
			},
		})
	})
}

// Delete rolls a note back. Draft notes are plainly removed; shipped notes
// compensate their quantities first. Received notes are terminal.
func (s *service) Delete(ctx context.Context, noteID uuid.UUID, actor auth.CurrentUser) error {
	if !actor.IsAdmin() {
		return pkgerrors.New(pkgerrors.CodePermissionDenied, "sales note deletion requires admin role")
	}
	note, err := s.loadNote(ctx, noteID)
	if err != nil {
		return err
	}
	if note.Status == enums.SalesNoteStatusReceived {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "received notes cannot be deleted").
			WithDetails(map[string]any{"sales_note_id": noteID})
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		rolledBack := 0

		if note.Status == enums.SalesNoteStatusShipped {
			for _, item := range note.Items {
				affected, err := repo.GuardedDecrementShipped(ctx, item.OrderItemID, item.Quantity)
				if err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decrement shipped quantity")
				}
				if affected == 0 {
					current, loadErr := repo.FindOrderItems(ctx, []uuid.UUID{item.OrderItemID})
					details := map[string]any{
						"order_item_id": item.OrderItemID,
						"rollback_qty":  item.Quantity,
					}
					if loadErr == nil && len(current) == 1 {
						details["shipped_quantity"] = current[0].ShippedQuantity
					}
					return pkgerrors.New(pkgerrors.CodeRollbackConflict, "shipped quantity no longer covers the rollback").
						WithDetails(details)
				}
				rolledBack += item.Quantity

				rows, err := repo.FindOrderItems(ctx, []uuid.UUID{item.OrderItemID})
				if err != nil || len(rows) != 1 {
					return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload order item")
				}
				updated := rows[0]
				status := fulfillment.ReconcileItemStatus(updated.Status, updated.ShippedQuantity, updated.Quantity)
				if status != updated.Status {
					if err := repo.UpdateItemStatus(ctx, updated.ID, status); err != nil {
						return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reconcile item status")
					}
				}
			}
		}

		if err := repo.DeleteNoteItems(ctx, noteID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete note items")
		}
		affected, err := repo.DeleteNote(ctx, noteID, note.Status)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete note")
		}
		if affected == 0 {
			return pkgerrors.New(pkgerrors.CodeConcurrencyConflict, "note changed status concurrently").
				WithDetails(map[string]any{"sales_note_id": noteID, "status": note.Status})
		}

		affectedOrders, err := s.affectedOrderIDs(ctx, repo, note.Items)
		if err != nil {
			return err
		}

		if err := s.audit.Record(ctx, tx, audit.Entry{
			EntityType:  audit.EntitySalesNote,
			EntityID:    noteID,
			Action:      audit.ActionNoteDeleted,
			ActorUserID: &actor.UserID,
			Old:         noteSnapshot(note),
		}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record note audit")
		}

		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventSalesNoteDeleted,
			AggregateType: enums.AggregateSalesNote,
			AggregateID:   noteID,
			Actor:         actorRef(actor),
			Version:       1,
			Data: payloads.SalesNoteDeletedEvent{
				SalesNoteID:    noteID,
				StoreID:        note.StoreID,
				RolledBackQty:  rolledBack,
				PriorStatus:    string(note.Status),
				AffectedOrders: len(affectedOrders),
			},
		})
	})
}

func (s *service) List(ctx context.Context, filters ListFilters, params pagination.Params, actor auth.CurrentUser) (*NoteList, error) {
	if !actor.IsAdmin() {
		if actor.ActiveStoreID == nil {
			return nil, pkgerrors.New(pkgerrors.CodePermissionDenied, "store context required")
		}
		filters.StoreID = actor.ActiveStoreID
	}

	rows, next, err := s.repo.ListNotes(ctx, filters, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list sales notes")
	}

	storeIDs := make([]uuid.UUID, 0, len(rows))
	for _, note := range rows {
		storeIDs = append(storeIDs, note.StoreID)
	}
	storeNames, err := s.repo.StoreNames(ctx, storeIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store names")
	}

	list := &NoteList{Notes: make([]NoteSummary, 0, len(rows))}
	for _, note := range rows {
		list.Notes = append(list.Notes, NoteSummary{
			ID:         note.ID,
			StoreID:    note.StoreID,
			StoreName:  storeNames[note.StoreID],
			Status:     note.Status,
			ItemCount:  len(note.Items),
			ShippedAt:  note.ShippedAt,
			ReceivedAt: note.ReceivedAt,
			CreatedAt:  note.CreatedAt,
		})
	}
	if next != nil {
		list.NextCursor = pagination.EncodeCursor(*next)
	}
	return list, nil
}

func (s *service) Get(ctx context.Context, noteID uuid.UUID, actor auth.CurrentUser) (*NoteDetail, error) {
	note, err := s.loadNote(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && !actor.MemberOf(note.StoreID) {
		return nil, pkgerrors.New(pkgerrors.CodePermissionDenied, "note does not belong to active store")
	}

	rows, err := s.repo.NoteItemRows(ctx, noteID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load note items")
	}
	storeNames, err := s.repo.StoreNames(ctx, []uuid.UUID{note.StoreID})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store name")
	}

	items := make([]NoteItemDetail, 0, len(rows))
	for _, row := range rows {
		items = append(items, NoteItemDetail{
			ID:              row.ItemID,
			OrderItemID:     row.OrderItemID,
			OrderID:         row.OrderID,
			ProductName:     row.ProductName,
			VariantName:     row.VariantName,
			Quantity:        row.Quantity,
			OrderedQuantity: row.OrderedQuantity,
			ShippedQuantity: row.ShippedQuantity,
		})
	}

	return &NoteDetail{
		ID:         note.ID,
		StoreID:    note.StoreID,
		StoreName:  storeNames[note.StoreID],
		Status:     note.Status,
		Notes:      note.Notes,
		ShippedAt:  note.ShippedAt,
		ReceivedAt: note.ReceivedAt,
		ReceivedBy: note.ReceivedBy,
		Items:      items,
		CreatedAt:  note.CreatedAt,
	}, nil
}

func (s *service) loadNote(ctx context.Context, noteID uuid.UUID) (*models.SalesNote, error) {
	if noteID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sales note id required")
	}
	note, err := s.repo.FindNote(ctx, noteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "sales note not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load sales note")
	}
	return note, nil
}

// affectedOrderIDs resolves the distinct parent orders of the given note items.
func (s *service) affectedOrderIDs(ctx context.Context, repo Repository, noteItems []models.SalesNoteItem) ([]uuid.UUID, error) {
	itemIDs := make([]uuid.UUID, 0, len(noteItems))
	for _, item := range noteItems {
		itemIDs = append(itemIDs, item.OrderItemID)
	}
	items, err := repo.FindOrderItems(ctx, itemIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order items")
	}
	seen := make(map[uuid.UUID]struct{}, len(items))
	orderIDs := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.OrderID]; ok {
			continue
		}
		seen[item.OrderID] = struct{}{}
		orderIDs = append(orderIDs, item.OrderID)
	}
	return orderIDs, nil
}

func (s *service) rollupAffectedOrders(ctx context.Context, tx *gorm.DB, repo Repository, noteItems []models.SalesNoteItem) error {
	orderIDs, err := s.affectedOrderIDs(ctx, repo, noteItems)
	if err != nil {
		return err
	}
	for _, orderID := range orderIDs {
		if err := s.orders.RollupFullyShipped(ctx, tx, orderID); err != nil {
			return err
		}
	}
	return nil
}

func noteSnapshot(note *models.SalesNote) audit.SalesNoteSnapshot {
	snapshot := audit.SalesNoteSnapshot{
		Status:    note.Status,
		StoreID:   note.StoreID,
		ItemCount: len(note.Items),
	}
	for _, item := range note.Items {
		snapshot.Items = append(snapshot.Items, audit.SalesNoteItemSnapshot{
			OrderItemID: item.OrderItemID,
			Quantity:    item.Quantity,
		})
	}
	return snapshot
}

func actorRef(actor auth.CurrentUser) *outbox.ActorRef {
	ref := &outbox.ActorRef{UserID: actor.UserID, StoreID: actor.ActiveStoreID}
	if actor.StoreRole != nil {
		ref.Role = string(*actor.StoreRole)
	} else if actor.SystemRole != nil {
		ref.Role = string(*actor.SystemRole)
	}
	return ref
}
