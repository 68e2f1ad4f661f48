package shippingpool

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ocampodev/supplyline-backend/pkg/db/models"
	"github.com/ocampodev/supplyline-backend/pkg/enums"
)

// EntryRow joins a pool entry with its order item and display names.
type EntryRow struct {
	EntryID         uuid.UUID             `gorm:"column:entry_id"`
	OrderItemID     uuid.UUID             `gorm:"column:order_item_id"`
	OrderID         uuid.UUID             `gorm:"column:order_id"`
	StoreID         uuid.UUID             `gorm:"column:store_id"`
	StoreName       string                `gorm:"column:store_name"`
	ProductID       uuid.UUID             `gorm:"column:product_id"`
	ProductName     string                `gorm:"column:product_name"`
	VariantName     *string               `gorm:"column:variant_name"`
	Quantity        int                   `gorm:"column:quantity"`
	OrderedQuantity int                   `gorm:"column:ordered_quantity"`
	ShippedQuantity int                   `gorm:"column:shipped_quantity"`
	ItemStatus      enums.OrderItemStatus `gorm:"column:item_status"`
	CreatedAt       time.Time             `gorm:"column:created_at"`
}

// Repository defines persistence operations for the shipping pool.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateEntry(ctx context.Context, entry *models.ShippingPoolEntry) error
	FindEntry(ctx context.Context, entryID uuid.UUID) (*models.ShippingPoolEntry, error)
	DeleteEntry(ctx context.Context, entryID uuid.UUID) (int64, error)
	FindOrderItem(ctx context.Context, itemID uuid.UUID) (*models.OrderItem, error)
	PooledQuantity(ctx context.Context, itemID uuid.UUID) (int, error)
	ListEntryRows(ctx context.Context) ([]EntryRow, error)
	StaleEntryCounts(ctx context.Context, cutoff time.Time) ([]StaleStoreCount, error)
}

// StaleStoreCount aggregates pool entries that have sat unstaged past a cutoff.
type StaleStoreCount struct {
	StoreID    uuid.UUID `gorm:"column:store_id"`
	StoreName  string    `gorm:"column:store_name"`
	EntryCount int64     `gorm:"column:entry_count"`
	OldestAt   time.Time `gorm:"column:oldest_at"`
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a shipping pool repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateEntry(ctx context.Context, entry *models.ShippingPoolEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repository) FindEntry(ctx context.Context, entryID uuid.UUID) (*models.ShippingPoolEntry, error) {
	var entry models.ShippingPoolEntry
	err := r.db.WithContext(ctx).Where("id = ?", entryID).First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *repository) DeleteEntry(ctx context.Context, entryID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ?", entryID).
		Delete(&models.ShippingPoolEntry{})
	return result.RowsAffected, result.Error
}

func (r *repository) FindOrderItem(ctx context.Context, itemID uuid.UUID) (*models.OrderItem, error) {
	var item models.OrderItem
	err := r.db.WithContext(ctx).Where("id = ?", itemID).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repository) PooledQuantity(ctx context.Context, itemID uuid.UUID) (int, error) {
	var total int
	err := r.db.WithContext(ctx).
		Model(&models.ShippingPoolEntry{}).
		Select("COALESCE(SUM(quantity), 0)").
		Where("order_item_id = ?", itemID).
		Scan(&total).Error
	return total, err
}

func (r *repository) ListEntryRows(ctx context.Context) ([]EntryRow, error) {
	var rows []EntryRow
	err := r.db.WithContext(ctx).
		Table("shipping_pool_entries AS spe").
		Select(`spe.id AS entry_id,
			spe.order_item_id,
			oi.order_id,
			spe.store_id,
			s.name AS store_name,
			oi.product_id,
			p.name AS product_name,
			pv.name AS variant_name,
			spe.quantity,
			oi.quantity AS ordered_quantity,
			oi.shipped_quantity,
			oi.status AS item_status,
			spe.created_at`).
		Joins("JOIN order_items oi ON oi.id = spe.order_item_id").
		Joins("JOIN products p ON p.id = oi.product_id").
		Joins("LEFT JOIN product_variants pv ON pv.id = oi.variant_id").
		Joins("JOIN stores s ON s.id = spe.store_id").
		Order("s.name ASC, spe.created_at ASC").
		Scan(&rows).Error
	return rows, err
}

// StaleEntryCounts groups staged entries created before the cutoff by store.
func (r *repository) StaleEntryCounts(ctx context.Context, cutoff time.Time) ([]StaleStoreCount, error) {
	var rows []StaleStoreCount
	err := r.db.WithContext(ctx).
		Table("shipping_pool_entries AS spe").
		Select(`spe.store_id,
			s.name AS store_name,
			COUNT(*) AS entry_count,
			MIN(spe.created_at) AS oldest_at`).
		Joins("JOIN stores s ON s.id = spe.store_id").
		Where("spe.created_at < ?", cutoff).
		Group("spe.store_id, s.name").
		Order("s.name ASC").
		Scan(&rows).Error
	return rows, err
}
