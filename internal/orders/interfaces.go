package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ocampodev/supplyline-backend/pkg/db/models"
	"github.com/ocampodev/supplyline-backend/pkg/enums"
	"github.com/ocampodev/supplyline-backend/pkg/pagination"
)

// Repository defines persistence operations for orders and order items.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	CreateOrderItems(ctx context.Context, items []models.OrderItem) error
	FindOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
	FindOrderItem(ctx context.Context, itemID uuid.UUID) (*models.OrderItem, error)
	FindItemStatusesByOrder(ctx context.Context, orderID uuid.UUID) ([]enums.OrderItemStatus, error)
	ListOrders(ctx context.Context, filters ListFilters, params pagination.Params) ([]models.Order, *pagination.Cursor, error)
	UpdateOrderNotes(ctx context.Context, orderID uuid.UUID, notes *string) error
	UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status enums.OrderStatus) error
	UpdateItemStatus(ctx context.Context, itemID uuid.UUID, status enums.OrderItemStatus) error
	GuardedUpdateShipped(ctx context.Context, itemID uuid.UUID, expectedShipped, newShipped int, newStatus enums.OrderItemStatus) (int64, error)
	PooledQuantities(ctx context.Context, itemIDs []uuid.UUID) (map[uuid.UUID]int, error)
	PoolEntryCount(ctx context.Context, itemID uuid.UUID) (int64, error)
	ProductNames(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]string, error)
	VariantNames(ctx context.Context, variantIDs []uuid.UUID) (map[uuid.UUID]string, error)
	StoreNames(ctx context.Context, storeIDs []uuid.UUID) (map[uuid.UUID]string, error)
}
