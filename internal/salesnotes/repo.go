package salesnotes

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ocampodev/supplyline-backend/pkg/db/models"
	"github.com/ocampodev/supplyline-backend/pkg/enums"
	"github.com/ocampodev/supplyline-backend/pkg/pagination"
)

// NoteItemRow joins a note item with its order context and display names.
type NoteItemRow struct {
	ItemID          uuid.UUID `gorm:"column:item_id"`
	OrderItemID     uuid.UUID `gorm:"column:order_item_id"`
	OrderID         uuid.UUID `gorm:"column:order_id"`
	ProductName     string    `gorm:"column:product_name"`
	VariantName     *string   `gorm:"column:variant_name"`
	Quantity        int       `gorm:"column:quantity"`
	OrderedQuantity int       `gorm:"column:ordered_quantity"`
	ShippedQuantity int       `gorm:"column:shipped_quantity"`
}

// Repository defines persistence operations for sales notes and the pool
// entries they consume.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateNote(ctx context.Context, note *models.SalesNote) error
	CreateNoteItems(ctx context.Context, items []models.SalesNoteItem) error
	FindNote(ctx context.Context, noteID uuid.UUID) (*models.SalesNote, error)
	ListNotes(ctx context.Context, filters ListFilters, params pagination.Params) ([]models.SalesNote, *pagination.Cursor, error)
	NoteItemRows(ctx context.Context, noteID uuid.UUID) ([]NoteItemRow, error)
	UpdateNoteShipped(ctx context.Context, noteID uuid.UUID, shippedAt time.Time) (int64, error)
	UpdateNoteReceived(ctx context.Context, noteID uuid.UUID, receivedAt time.Time, receivedBy uuid.UUID) (int64, error)
	DeleteNote(ctx context.Context, noteID uuid.UUID, status enums.SalesNoteStatus) (int64, error)
	DeleteNoteItems(ctx context.Context, noteID uuid.UUID) error
	PoolEntriesByStore(ctx context.Context, storeID uuid.UUID) ([]models.ShippingPoolEntry, error)
	DeletePoolEntries(ctx context.Context, entryIDs []uuid.UUID) (int64, error)
	FindOrderItems(ctx context.Context, itemIDs []uuid.UUID) ([]models.OrderItem, error)
	PooledQuantities(ctx context.Context, itemIDs []uuid.UUID) (map[uuid.UUID]int, error)
	GuardedDecrementShipped(ctx context.Context, itemID uuid.UUID, quantity int) (int64, error)
	UpdateItemStatus(ctx context.Context, itemID uuid.UUID, status enums.OrderItemStatus) error
	StoreNames(ctx context.Context, storeIDs []uuid.UUID) (map[uuid.UUID]string, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a sales notes repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateNote(ctx context.Context, note *models.SalesNote) error {
	return r.db.WithContext(ctx).Omit("Items").Create(note).Error
}

func (r *repository) CreateNoteItems(ctx context.Context, items []models.SalesNoteItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *repository) FindNote(ctx context.Context, noteID uuid.UUID) (*models.SalesNote, error) {
	var note models.SalesNote
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("id = ?", noteID).
		First(&note).Error
	if err != nil {
		return nil, err
	}
	return &note, nil
}

func (r *repository) ListNotes(ctx context.Context, filters ListFilters, params pagination.Params) ([]models.SalesNote, *pagination.Cursor, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, nil, err
	}

	query := r.db.WithContext(ctx).
		Model(&models.SalesNote{}).
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
	if cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	var rows []models.SalesNote
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

func (r *repository) NoteItemRows(ctx context.Context, noteID uuid.UUID) ([]NoteItemRow, error) {
	var rows []NoteItemRow
	err := r.db.WithContext(ctx).
		Table("sales_note_items AS sni").
		Select(`sni.id AS item_id,
			sni.order_item_id,
			oi.order_id,
			p.name AS product_name,
			pv.name AS variant_name,
			sni.quantity,
			oi.quantity AS ordered_quantity,
			oi.shipped_quantity`).
		Joins("JOIN order_items oi ON oi.id = sni.order_item_id").
		Joins("JOIN products p ON p.id = oi.product_id").
		Joins("LEFT JOIN product_variants pv ON pv.id = oi.variant_id").
		Where("sni.sales_note_id = ?", noteID).
		Order("sni.created_at ASC").
		Scan(&rows).Error
	return rows, err
}

// UpdateNoteShipped transitions a draft note to shipped. The status predicate
// makes the transition single-winner under concurrent callers; zero rows means
// the note was no longer a draft.
func (r *repository) UpdateNoteShipped(ctx context.Context, noteID uuid.UUID, shippedAt time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.SalesNote{}).
		Where("id = ? AND status = ?", noteID, enums.SalesNoteStatusDraft).
		Updates(map[string]any{
			"status":     enums.SalesNoteStatusShipped,
			"shipped_at": shippedAt,
		})
	return result.RowsAffected, result.Error
}

// UpdateNoteReceived transitions a shipped note to received, guarded the same
// way as UpdateNoteShipped.
func (r *repository) UpdateNoteReceived(ctx context.Context, noteID uuid.UUID, receivedAt time.Time, receivedBy uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.SalesNote{}).
		Where("id = ? AND status = ?", noteID, enums.SalesNoteStatusShipped).
		Updates(map[string]any{
			"status":      enums.SalesNoteStatusReceived,
			"received_at": receivedAt,
			"received_by": receivedBy,
		})
	return result.RowsAffected, result.Error
}

// DeleteNote removes a note only while it still holds the status the caller
// observed; zero rows means it transitioned underneath the delete.
func (r *repository) DeleteNote(ctx context.Context, noteID uuid.UUID, status enums.SalesNoteStatus) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND status = ?", noteID, status).
		Delete(&models.SalesNote{})
	return result.RowsAffected, result.Error
}

func (r *repository) DeleteNoteItems(ctx context.Context, noteID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("sales_note_id = ?", noteID).
		Delete(&models.SalesNoteItem{}).Error
}

func (r *repository) PoolEntriesByStore(ctx context.Context, storeID uuid.UUID) ([]models.ShippingPoolEntry, error) {
	var entries []models.ShippingPoolEntry
	err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("created_at ASC").
		Find(&entries).Error
	return entries, err
}

func (r *repository) DeletePoolEntries(ctx context.Context, entryIDs []uuid.UUID) (int64, error) {
	if len(entryIDs) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Where("id IN ?", entryIDs).
		Delete(&models.ShippingPoolEntry{})
	return result.RowsAffected, result.Error
}

func (r *repository) FindOrderItems(ctx context.Context, itemIDs []uuid.UUID) ([]models.OrderItem, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}
	var items []models.OrderItem
	err := r.db.WithContext(ctx).
		Where("id IN ?", itemIDs).
		Find(&items).Error
	return items, err
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

// GuardedDecrementShipped compensates a rollback. The guard keeps shipped
// quantities from going negative under concurrent writers.
func (r *repository) GuardedDecrementShipped(ctx context.Context, itemID uuid.UUID, quantity int) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.OrderItem{}).
		Where("id = ? AND shipped_quantity >= ?", itemID, quantity).
		Update("shipped_quantity", gorm.Expr("shipped_quantity - ?", quantity))
	return result.RowsAffected, result.Error
}

func (r *repository) UpdateItemStatus(ctx context.Context, itemID uuid.UUID, status enums.OrderItemStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.OrderItem{}).
		Where("id = ?", itemID).
		Update("status", status).Error
}

func (r *repository) StoreNames(ctx context.Context, storeIDs []uuid.UUID) (map[uuid.UUID]string, error) {
	names := make(map[uuid.UUID]string, len(storeIDs))
	if len(storeIDs) == 0 {
		return names, nil
	}

	type row struct {
		ID   uuid.UUID
		Name string
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&models.Store{}).
		Select("id, name").
		Where("id IN ?", storeIDs).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, item := range rows {
		names[item.ID] = item.Name
	}
	return names, nil
}
