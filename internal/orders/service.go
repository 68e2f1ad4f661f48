package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ocampodev/supplyline-backend/internal/audit"
	"github.com/ocampodev/supplyline-backend/internal/catalog"
	"github.com/ocampodev/supplyline-backend/internal/fulfillment"
	"github.com/ocampodev/supplyline-backend/pkg/auth"
	"github.com/ocampodev/supplyline-backend/pkg/db/models"
	"github.com/ocampodev/supplyline-backend/pkg/enums"
	pkgerrors "github.com/ocampodev/supplyline-backend/pkg/errors"
	"github.com/ocampodev/supplyline-backend/pkg/outbox"
	"github.com/ocampodev/supplyline-backend/pkg/outbox/payloads"
	"github.com/ocampodev/supplyline-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type outboxPublisher interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
	EmitIfNotExists(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

// Service defines order-level operations.
type Service interface {
	Create(ctx context.Context, input CreateInput, actor auth.CurrentUser) (*OrderDetail, error)
	UpdateNotes(ctx context.Context, orderID uuid.UUID, notes *string, actor auth.CurrentUser) error
	List(ctx context.Context, filters ListFilters, params pagination.Params, actor auth.CurrentUser) (*OrderList, error)
	Get(ctx context.Context, orderID uuid.UUID, actor auth.CurrentUser) (*OrderDetail, error)
	ToggleLock(ctx context.Context, orderID uuid.UUID, actor auth.CurrentUser) (enums.OrderStatus, error)
	SetItemStatus(ctx context.Context, itemID uuid.UUID, status enums.OrderItemStatus, actor auth.CurrentUser) error

	// IncrementShipped and RollupFullyShipped run inside a caller-owned
	// transaction; sales note transitions build on them.
	IncrementShipped(ctx context.Context, tx *gorm.DB, itemID uuid.UUID, delta int, actor auth.CurrentUser) error
	RollupFullyShipped(ctx context.Context, tx *gorm.DB, orderID uuid.UUID) error
}

type service struct {
	repo     Repository
	tx       txRunner
	outbox   outboxPublisher
	resolver catalog.Resolver
	audit    audit.Recorder
}

// NewService builds an orders service with the required dependencies.
func NewService(repo Repository, tx txRunner, outboxSvc outboxPublisher, resolver catalog.Resolver, recorder audit.Recorder) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if outboxSvc == nil {
		return nil, fmt.Errorf("outbox publisher required")
	}
	if resolver == nil {
		return nil, fmt.Errorf("price resolver required")
	}
	if recorder == nil {
		return nil, fmt.Errorf("audit recorder required")
	}
	return &service{
		repo:     repo,
		tx:       tx,
		outbox:   outboxSvc,
		resolver: resolver,
		audit:    recorder,
	}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput, actor auth.CurrentUser) (*OrderDetail, error) {
	if input.StoreID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store id required")
	}
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order requires at least one item")
	}
	if !input.Source.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid order source %q", input.Source))
	}
	if input.Source == enums.OrderSourceAdminProxy && !actor.IsAdmin() {
		return nil, pkgerrors.New(pkgerrors.CodePermissionDenied, "admin_proxy intake requires admin role")
	}
	if input.Source == enums.OrderSourceFrontend && !actor.IsAdmin() && !actor.MemberOf(input.StoreID) {
		return nil, pkgerrors.New(pkgerrors.CodePermissionDenied, "order store does not match active store")
	}

	seen := make(map[string]struct{}, len(input.Items))
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "item quantity must be positive").
				WithDetails(map[string]any{"product_id": item.ProductID, "quantity": item.Quantity})
		}
		key := item.ProductID.String()
		if item.VariantID != nil {
			key += "|" + item.VariantID.String()
		}
		if _, dup := seen[key]; dup {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "duplicate order line").
				WithDetails(map[string]any{"product_id": item.ProductID, "variant_id": item.VariantID})
		}
		seen[key] = struct{}{}
	}

	var created *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		order := &models.Order{
			StoreID:   input.StoreID,
			CreatedBy: actor.UserID,
			Source:    input.Source,
			Status:    enums.OrderStatusPending,
			Notes:     input.Notes,
		}
		if _, err := repo.CreateOrder(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
		}

		items := make([]models.OrderItem, 0, len(input.Items))
		for _, line := range input.Items {
			quote, err := s.resolver.Resolve(ctx, line.ProductID, line.VariantID, input.StoreID)
			if err != nil {
				return err
			}
			items = append(items, models.OrderItem{
				OrderID:            order.ID,
				ProductID:          line.ProductID,
				VariantID:          line.VariantID,
				StoreID:            input.StoreID,
				Quantity:           line.Quantity,
				UnitWholesalePrice: quote.Wholesale,
				UnitRetailPrice:    quote.Retail,
				Status:             enums.OrderItemStatusWaiting,
			})
		}
		if err := repo.CreateOrderItems(ctx, items); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order items")
		}
		order.Items = items
		created = order

		if err := s.audit.Record(ctx, tx, audit.Entry{
			EntityType:  audit.EntityOrder,
			EntityID:    order.ID,
			Action:      audit.ActionOrderCreated,
			ActorUserID: &actor.UserID,
			New:         audit.OrderSnapshot{Status: order.Status, Notes: order.Notes},
		}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record order audit")
		}

		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventOrderCreated,
			AggregateType: enums.AggregateOrder,
			AggregateID:   order.ID,
			Actor:         actorRef(actor),
			Version:       1,
			Data: payloads.OrderCreatedEvent{
				OrderID:   order.ID,
				StoreID:   order.StoreID,
				Source:    string(order.Source),
				ItemCount: len(items),
			},
		})
	})
	if err != nil {
		return nil, err
	}
	return s.buildDetail(ctx, created)
}

func (s *service) UpdateNotes(ctx context.Context, orderID uuid.UUID, notes *string, actor auth.CurrentUser) error {
	if orderID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}

	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if !actor.IsAdmin() {
		if !actor.MemberOf(order.StoreID) {
			return pkgerrors.New(pkgerrors.CodePermissionDenied, "order does not belong to active store")
		}
		if order.Status == enums.OrderStatusProcessing {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "order is locked for processing").
				WithDetails(map[string]any{"order_id": orderID, "status": order.Status})
		}
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.UpdateOrderNotes(ctx, orderID, notes); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order notes")
		}
		return s.audit.Record(ctx, tx, audit.Entry{
			EntityType:  audit.EntityOrder,
			EntityID:    orderID,
			Action:      audit.ActionOrderNotesSet,
			ActorUserID: &actor.UserID,
			Old:         audit.OrderSnapshot{Status: order.Status, Notes: order.Notes},
			New:         audit.OrderSnapshot{Status: order.Status, Notes: notes},
		})
	})
}

func (s *service) List(ctx context.Context, filters ListFilters, params pagination.Params, actor auth.CurrentUser) (*OrderList, error) {
	if !actor.IsAdmin() {
		if actor.ActiveStoreID == nil {
			return nil, pkgerrors.New(pkgerrors.CodePermissionDenied, "store context required")
		}
		filters.StoreID = actor.ActiveStoreID
	}

	rows, next, err := s.repo.ListOrders(ctx, filters, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}

	storeIDs := make([]uuid.UUID, 0, len(rows))
	for _, order := range rows {
		storeIDs = append(storeIDs, order.StoreID)
	}
	storeNames, err := s.repo.StoreNames(ctx, storeIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store names")
	}

	list := &OrderList{Orders: make([]OrderSummary, 0, len(rows))}
	for _, order := range rows {
		statuses := make([]enums.OrderItemStatus, 0, len(order.Items))
		for _, item := range order.Items {
			statuses = append(statuses, item.Status)
		}
		list.Orders = append(list.Orders, OrderSummary{
			ID:           order.ID,
			StoreID:      order.StoreID,
			StoreName:    storeNames[order.StoreID],
			Source:       order.Source,
			Status:       order.Status,
			FullyShipped: fulfillment.OrderFullyShipped(statuses),
			ItemCount:    len(order.Items),
			StatusCounts: fulfillment.CountByStatus(statuses),
			CreatedAt:    order.CreatedAt,
		})
	}
	if next != nil {
		list.NextCursor = pagination.EncodeCursor(*next)
	}
	return list, nil
}

func (s *service) Get(ctx context.Context, orderID uuid.UUID, actor auth.CurrentUser) (*OrderDetail, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}

	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && !actor.MemberOf(order.StoreID) {
		return nil, pkgerrors.New(pkgerrors.CodePermissionDenied, "order does not belong to active store")
	}
	return s.buildDetail(ctx, order)
}

func (s *service) ToggleLock(ctx context.Context, orderID uuid.UUID, actor auth.CurrentUser) (enums.OrderStatus, error) {
	if orderID == uuid.Nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if !actor.IsAdmin() {
		return "", pkgerrors.New(pkgerrors.CodePermissionDenied, "lock toggle requires admin role")
	}

	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return "", err
	}
	target := order.Status.Toggled()

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.UpdateOrderStatus(ctx, orderID, target); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "toggle order lock")
		}
		return s.audit.Record(ctx, tx, audit.Entry{
			EntityType:  audit.EntityOrder,
			EntityID:    orderID,
			Action:      audit.ActionOrderLockToggled,
			ActorUserID: &actor.UserID,
			Old:         audit.OrderSnapshot{Status: order.Status, Notes: order.Notes},
			New:         audit.OrderSnapshot{Status: target, Notes: order.Notes},
		})
	})
	if err != nil {
		return "", err
	}
	return target, nil
}

func (s *service) SetItemStatus(ctx context.Context, itemID uuid.UUID, status enums.OrderItemStatus, actor auth.CurrentUser) error {
	if itemID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "order item id required")
	}
	if !actor.IsAdmin() {
		return pkgerrors.New(pkgerrors.CodePermissionDenied, "item status control requires admin role")
	}
	if !status.IsException() && status != enums.OrderItemStatusWaiting {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("status %q cannot be set manually", status))
	}

	item, err := s.loadItem(ctx, itemID)
	if err != nil {
		return err
	}

	if status.IsException() {
		pooled, err := s.repo.PoolEntryCount(ctx, itemID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count pool entries")
		}
		if pooled > 0 {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "item has staged pool entries; drain the pool first").
				WithDetails(map[string]any{"order_item_id": itemID, "pool_entries": pooled})
		}
	}

	target := status
	if status == enums.OrderItemStatusWaiting {
		// Clearing an exception re-enters the quantity machine.
		target = fulfillment.ReconcileItemStatus(enums.OrderItemStatusWaiting, item.ShippedQuantity, item.Quantity)
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.UpdateItemStatus(ctx, itemID, target); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "set item status")
		}
		return s.audit.Record(ctx, tx, audit.Entry{
			EntityType:  audit.EntityOrderItem,
			EntityID:    itemID,
			Action:      audit.ActionItemStatusSet,
			ActorUserID: &actor.UserID,
			Old:         itemSnapshot(item),
			New:         audit.OrderItemSnapshot{Status: target, Quantity: item.Quantity, ShippedQuantity: item.ShippedQuantity},
		})
	})
}

// IncrementShipped applies a positive shipped delta to one item inside the
// caller's transaction, reconciling the status in the same guarded UPDATE.
func (s *service) IncrementShipped(ctx context.Context, tx *gorm.DB, itemID uuid.UUID, delta int, actor auth.CurrentUser) error {
	if tx == nil {
		return pkgerrors.New(pkgerrors.CodeInternal, "transaction required")
	}
	if delta <= 0 {
		return pkgerrors.New(pkgerrors.CodeInvalidQuantity, "shipped delta must be positive").
			WithDetails(map[string]any{"order_item_id": itemID, "delta": delta})
	}

	repo := s.repo.WithTx(tx)
	item, err := repo.FindOrderItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "order item not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order item")
	}

	newShipped := item.ShippedQuantity + delta
	if newShipped > item.Quantity {
		return pkgerrors.New(pkgerrors.CodeInvalidQuantity, "shipped delta exceeds ordered quantity").
			WithDetails(map[string]any{
				"order_item_id": itemID,
				"quantity":      item.Quantity,
				"shipped":       item.ShippedQuantity,
				"delta":         delta,
			})
	}

	newStatus := fulfillment.ReconcileItemStatus(item.Status, newShipped, item.Quantity)
	affected, err := repo.GuardedUpdateShipped(ctx, itemID, item.ShippedQuantity, newShipped, newStatus)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update shipped quantity")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeConcurrencyConflict, "order item changed concurrently").
			WithDetails(map[string]any{"order_item_id": itemID})
	}

	return s.audit.Record(ctx, tx, audit.Entry{
		EntityType:  audit.EntityOrderItem,
		EntityID:    itemID,
		Action:      audit.ActionItemShippedDelta,
		ActorUserID: &actor.UserID,
		Old:         itemSnapshot(item),
		New:         audit.OrderItemSnapshot{Status: newStatus, Quantity: item.Quantity, ShippedQuantity: newShipped},
	})
}

// RollupFullyShipped reloads the order's item statuses inside the caller's
// transaction and emits order.fully_shipped once when the rollup flips on.
func (s *service) RollupFullyShipped(ctx context.Context, tx *gorm.DB, orderID uuid.UUID) error {
	if tx == nil {
		return pkgerrors.New(pkgerrors.CodeInternal, "transaction required")
	}
	repo := s.repo.WithTx(tx)

	statuses, err := repo.FindItemStatusesByOrder(ctx, orderID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load item statuses")
	}
	if !fulfillment.OrderFullyShipped(statuses) {
		return nil
	}

	order, err := repo.FindOrder(ctx, orderID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order for rollup")
	}
	return s.outbox.EmitIfNotExists(ctx, tx, outbox.DomainEvent{
		EventType:     enums.EventOrderFullyShipped,
		AggregateType: enums.AggregateOrder,
		AggregateID:   orderID,
		Version:       1,
		Data: payloads.OrderFullyShippedEvent{
			OrderID: orderID,
			StoreID: order.StoreID,
		},
	})
}

func (s *service) loadOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}

func (s *service) loadItem(ctx context.Context, itemID uuid.UUID) (*models.OrderItem, error) {
	item, err := s.repo.FindOrderItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order item")
	}
	return item, nil
}

func (s *service) buildDetail(ctx context.Context, order *models.Order) (*OrderDetail, error) {
	itemIDs := make([]uuid.UUID, 0, len(order.Items))
	productIDs := make([]uuid.UUID, 0, len(order.Items))
	variantIDs := make([]uuid.UUID, 0)
	for _, item := range order.Items {
		itemIDs = append(itemIDs, item.ID)
		productIDs = append(productIDs, item.ProductID)
		if item.VariantID != nil {
			variantIDs = append(variantIDs, *item.VariantID)
		}
	}

	pooled, err := s.repo.PooledQuantities(ctx, itemIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load pooled quantities")
	}
	productNames, err := s.repo.ProductNames(ctx, productIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product names")
	}
	variantNames, err := s.repo.VariantNames(ctx, variantIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load variant names")
	}
	storeNames, err := s.repo.StoreNames(ctx, []uuid.UUID{order.StoreID})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store name")
	}

	statuses := make([]enums.OrderItemStatus, 0, len(order.Items))
	items := make([]OrderItemDetail, 0, len(order.Items))
	for _, item := range order.Items {
		statuses = append(statuses, item.Status)
		detail := OrderItemDetail{
			ID:                 item.ID,
			ProductID:          item.ProductID,
			ProductName:        productNames[item.ProductID],
			VariantID:          item.VariantID,
			Quantity:           item.Quantity,
			ShippedQuantity:    item.ShippedQuantity,
			PooledQuantity:     pooled[item.ID],
			RemainingQuantity:  fulfillment.Remaining(item.Quantity, item.ShippedQuantity, pooled[item.ID]),
			UnitWholesalePrice: item.UnitWholesalePrice,
			UnitRetailPrice:    item.UnitRetailPrice,
			Status:             item.Status,
		}
		if item.VariantID != nil {
			if name, ok := variantNames[*item.VariantID]; ok {
				detail.VariantName = &name
			}
		}
		items = append(items, detail)
	}

	return &OrderDetail{
		ID:           order.ID,
		StoreID:      order.StoreID,
		StoreName:    storeNames[order.StoreID],
		Source:       order.Source,
		Status:       order.Status,
		Notes:        order.Notes,
		FullyShipped: fulfillment.OrderFullyShipped(statuses),
		StatusCounts: fulfillment.CountByStatus(statuses),
		Items:        items,
		CreatedAt:    order.CreatedAt,
		UpdatedAt:    order.UpdatedAt,
	}, nil
}

func itemSnapshot(item *models.OrderItem) audit.OrderItemSnapshot {
	return audit.OrderItemSnapshot{
		Status:          item.Status,
		Quantity:        item.Quantity,
		ShippedQuantity: item.ShippedQuantity,
	}
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
