package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ocampodev/supplyline-backend/pkg/db/models"
	"github.com/ocampodev/supplyline-backend/pkg/enums"
	"github.com/ocampodev/supplyline-backend/pkg/pagination"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

func (r *repository) CreateOrderItems(ctx context.Context, items []models.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *repository) FindOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("id = ?", orderID).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) FindOrderItem(ctx context.Context, itemID uuid.UUID) (*models.OrderItem, error) {
	var item models.OrderItem
	err := r.db.WithContext(ctx).Where("id = ?", itemID).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repository) FindItemStatusesByOrder(ctx context.Context, orderID uuid.UUID) ([]enums.OrderItemStatus, error) {
	var statuses []enums.OrderItemStatus
	err := r.db.WithContext(ctx).
		Model(&models.OrderItem{}).
		Where("order_id = ?", orderID).
		Pluck("status", &statuses).Error
	return statuses, err
}

func (r *repository) ListOrders(ctx context.Context, filters ListFilters, params pagination.Params) ([]models.Order, *pagination.Cursor, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, nil, err
	}

	query := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Preload("Items").
		Order("created_at DESC").
		Order("id DESC").
		Limit(pagination.LimitWithBuffer(params.Limit))
	if filters.StoreID != nil {
		query = query.Where("store_id = ?", *filters.StoreID)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.FullyShipped != nil {
		rollup := `EXISTS (SELECT 1 FROM order_items oi WHERE oi.order_id = orders.id)
			AND NOT EXISTS (SELECT 1 FROM order_items oi WHERE oi.order_id = orders.id AND oi.status <> 'shipped')`
		if *filters.FullyShipped {
			query = query.Where(rollup)
		} else {
			query = query.Where("NOT (" + rollup + ")")
		}
	}
	if cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	var rows []models.Order
	if err := query.Find(&rows).Error; err != nil {
		return nil, nil, err
	}

	limit := pagination.NormalizeLimit(params.Limit)
	if len(rows) <= limit {
		return rows, nil, nil
	}
	rows = rows[:limit]
	last := rows[len(rows)-1]
	next := pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID}
	return rows, &next, nil
}

func (r *repository) UpdateOrderNotes(ctx context.Context, orderID uuid.UUID, notes *string) error {
	return r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("notes", notes).Error
}

func (r *repository) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status enums.OrderStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("status", status).Error
}

func (r *repository) UpdateItemStatus(ctx context.Context, itemID uuid.UUID, status enums.OrderItemStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.OrderItem{}).
		Where("id = ?", itemID).
		Update("status", status).Error
}

// GuardedUpdateShipped applies an optimistic update keyed on the previously
// read shipped quantity. Zero rows affected means a concurrent writer won.
func (r *repository) GuardedUpdateShipped(ctx context.Context, itemID uuid.UUID, expectedShipped, newShipped int, newStatus enums.OrderItemStatus) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.OrderItem{}).
		Where("id = ? AND shipped_quantity = ?", itemID, expectedShipped).
		Updates(map[string]any{
			"shipped_quantity": newShipped,
			"status":           newStatus,
		})
	return result.RowsAffected, result.Error
}

func (r *repository) PooledQuantities(ctx context.Context, itemIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	pooled := make(map[uuid.UUID]int, len(itemIDs))
	if len(itemIDs) == 0 {
		return pooled, nil
	}

	type poolSum struct {
		OrderItemID uuid.UUID
		Total       int
	}
	var sums []poolSum
	err := r.db.WithContext(ctx).
		Model(&models.ShippingPoolEntry{}).
		Select("order_item_id, COALESCE(SUM(quantity), 0) AS total").
		Where("order_item_id IN ?", itemIDs).
		Group("order_item_id").
		Find(&sums).Error
	if err != nil {
		return nil, err
	}
	for _, sum := range sums {
		pooled[sum.OrderItemID] = sum.Total
	}
	return pooled, nil
}

func (r *repository) PoolEntryCount(ctx context.Context, itemID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ShippingPoolEntry{}).
		Where("order_item_id = ?", itemID).
		Count(&count).Error
	return count, err
}

func (r *repository) ProductNames(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]string, error) {
	return r.namesByID(ctx, &models.Product{}, productIDs)
}

func (r *repository) VariantNames(ctx context.Context, variantIDs []uuid.UUID) (map[uuid.UUID]string, error) {
	return r.namesByID(ctx, &models.ProductVariant{}, variantIDs)
}

func (r *repository) StoreNames(ctx context.Context, storeIDs []uuid.UUID) (map[uuid.UUID]string, error) {
	return r.namesByID(ctx, &models.Store{}, storeIDs)
}

func (r *repository) namesByID(ctx context.Context, model any, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	names := make(map[uuid.UUID]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	type row struct {
		ID   uuid.UUID
		Name string
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(model).
		Select("id, name").
		Where("id IN ?", ids).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, item := range rows {
		names[item.ID] = item.Name
	}
	return names, nil
}
