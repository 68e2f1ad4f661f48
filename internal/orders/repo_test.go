package orders

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ocampodev/supplyline-backend/pkg/db/models"
	"github.com/ocampodev/supplyline-backend/pkg/enums"
	"github.com/ocampodev/supplyline-backend/pkg/pagination"
)

func newTestRepo(t *testing.T) (Repository, *gorm.DB) {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	stmts := []string{
		`CREATE TABLE orders (
			id TEXT PRIMARY KEY,
			store_id TEXT NOT NULL,
			created_by TEXT NOT NULL,
			source TEXT NOT NULL DEFAULT 'frontend',
			status TEXT NOT NULL DEFAULT 'pending',
			notes TEXT,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`,
		`CREATE TABLE order_items (
			id TEXT PRIMARY KEY,
			order_id TEXT NOT NULL,
			product_id TEXT NOT NULL,
			variant_id TEXT,
			store_id TEXT NOT NULL,
			quantity INTEGER NOT NULL,
			unit_wholesale_price NUMERIC NOT NULL,
			unit_retail_price NUMERIC NOT NULL,
			shipped_quantity INTEGER NOT NULL DEFAULT 0,
			status TEXT NOT NULL DEFAULT 'waiting',
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`,
		`CREATE TABLE shipping_pool_entries (
			id TEXT PRIMARY KEY,
			order_item_id TEXT NOT NULL,
			store_id TEXT NOT NULL,
			quantity INTEGER NOT NULL,
			created_by TEXT NOT NULL,
			created_at DATETIME NOT NULL
		)`,
		`CREATE TABLE products (id TEXT PRIMARY KEY, name TEXT NOT NULL)`,
		`CREATE TABLE product_variants (id TEXT PRIMARY KEY, name TEXT NOT NULL)`,
		`CREATE TABLE stores (id TEXT PRIMARY KEY, name TEXT NOT NULL)`,
	}
	for _, stmt := range stmts {
		require.NoError(t, conn.Exec(stmt).Error)
	}
	return NewRepository(conn), conn
}

func seedOrderRow(t *testing.T, db *gorm.DB, storeID uuid.UUID, createdAt time.Time) uuid.UUID {
	t.Helper()
	id := uuid.New()
	require.NoError(t, db.Exec(
		`INSERT INTO orders (id, store_id, created_by, source, status, created_at, updated_at)
		 VALUES (?, ?, ?, 'frontend', 'pending', ?, ?)`,
		id, storeID, uuid.New(), createdAt, createdAt,
	).Error)
	return id
}

func seedItemRow(t *testing.T, db *gorm.DB, orderID, storeID uuid.UUID, quantity, shipped int, status enums.OrderItemStatus) uuid.UUID {
	t.Helper()
	id := uuid.New()
	now := time.Now().UTC()
	require.NoError(t, db.Exec(
		`INSERT INTO order_items (id, order_id, product_id, store_id, quantity, unit_wholesale_price, unit_retail_price, shipped_quantity, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, '5.00', '9.99', ?, ?, ?, ?)`,
		id, orderID, uuid.New(), storeID, quantity, shipped, status, now, now,
	).Error)
	return id
}

func TestCreateAndFindOrder(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	order := &models.Order{
		ID:        uuid.New(),
		StoreID:   uuid.New(),
		CreatedBy: uuid.New(),
		Source:    enums.OrderSourceFrontend,
		Status:    enums.OrderStatusPending,
	}
	_, err := repo.CreateOrder(ctx, order)
	require.NoError(t, err)

	items := []models.OrderItem{
		{
			ID:                 uuid.New(),
			OrderID:            order.ID,
			ProductID:          uuid.New(),
			StoreID:            order.StoreID,
			Quantity:           4,
			UnitWholesalePrice: decimal.NewFromFloat(5.00),
			UnitRetailPrice:    decimal.NewFromFloat(9.99),
			Status:             enums.OrderItemStatusWaiting,
		},
	}
	require.NoError(t, repo.CreateOrderItems(ctx, items))

	found, err := repo.FindOrder(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, found.Items, 1)
	require.Equal(t, 4, found.Items[0].Quantity)
	require.Equal(t, enums.OrderItemStatusWaiting, found.Items[0].Status)
}

func TestGuardedUpdateShipped(t *testing.T) {
	repo, db := newTestRepo(t)
	ctx := context.Background()
	storeID := uuid.New()
	orderID := seedOrderRow(t, db, storeID, time.Now().UTC())
	itemID := seedItemRow(t, db, orderID, storeID, 5, 2, enums.OrderItemStatusPartial)

	affected, err := repo.GuardedUpdateShipped(ctx, itemID, 2, 5, enums.OrderItemStatusShipped)
	require.NoError(t, err)
	require.EqualValues(t, 1, affected)

	item, err := repo.FindOrderItem(ctx, itemID)
	require.NoError(t, err)
	require.Equal(t, 5, item.ShippedQuantity)
	require.Equal(t, enums.OrderItemStatusShipped, item.Status)

	// Stale expectation touches nothing.
	affected, err = repo.GuardedUpdateShipped(ctx, itemID, 2, 3, enums.OrderItemStatusPartial)
	require.NoError(t, err)
	require.EqualValues(t, 0, affected)

	item, err = repo.FindOrderItem(ctx, itemID)
	require.NoError(t, err)
	require.Equal(t, 5, item.ShippedQuantity)
}

func TestListOrdersFullyShippedFilter(t *testing.T) {
	repo, db := newTestRepo(t)
	ctx := context.Background()
	storeID := uuid.New()
	base := time.Now().UTC().Add(-time.Hour)

	doneID := seedOrderRow(t, db, storeID, base)
	seedItemRow(t, db, doneID, storeID, 2, 2, enums.OrderItemStatusShipped)
	seedItemRow(t, db, doneID, storeID, 1, 1, enums.OrderItemStatusShipped)

	openID := seedOrderRow(t, db, storeID, base.Add(time.Minute))
	seedItemRow(t, db, openID, storeID, 2, 2, enums.OrderItemStatusShipped)
	seedItemRow(t, db, openID, storeID, 3, 1, enums.OrderItemStatusPartial)

	// No items means never fully shipped.
	emptyID := seedOrderRow(t, db, storeID, base.Add(2*time.Minute))

	yes := true
	rows, _, err := repo.ListOrders(ctx, ListFilters{FullyShipped: &yes}, pagination.Params{Limit: 20})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, doneID, rows[0].ID)

	no := false
	rows, _, err = repo.ListOrders(ctx, ListFilters{FullyShipped: &no}, pagination.Params{Limit: 20})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	ids := []uuid.UUID{rows[0].ID, rows[1].ID}
	require.Contains(t, ids, openID)
	require.Contains(t, ids, emptyID)
}

func TestListOrdersCursorPagination(t *testing.T) {
	repo, db := newTestRepo(t)
	ctx := context.Background()
	storeID := uuid.New()
	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		seedOrderRow(t, db, storeID, base.Add(time.Duration(i)*time.Minute))
	}

	first, next, err := repo.ListOrders(ctx, ListFilters{StoreID: &storeID}, pagination.Params{Limit: 3})
	require.NoError(t, err)
	require.Len(t, first, 3)
	require.NotNil(t, next)

	second, tail, err := repo.ListOrders(ctx, ListFilters{StoreID: &storeID}, pagination.Params{
		Limit:  3,
		Cursor: pagination.EncodeCursor(*next),
	})
	require.NoError(t, err)
	require.Len(t, second, 2)
	require.Nil(t, tail)
	require.True(t, second[0].CreatedAt.Before(first[len(first)-1].CreatedAt))
}

func TestPooledQuantities(t *testing.T) {
	repo, db := newTestRepo(t)
	ctx := context.Background()
	storeID := uuid.New()
	orderID := seedOrderRow(t, db, storeID, time.Now().UTC())
	itemA := seedItemRow(t, db, orderID, storeID, 10, 0, enums.OrderItemStatusWaiting)
	itemB := seedItemRow(t, db, orderID, storeID, 5, 0, enums.OrderItemStatusWaiting)

	now := time.Now().UTC()
	for _, entry := range []struct {
		item uuid.UUID
		qty  int
	}{
		{itemA, 3},
		{itemA, 2},
		{itemB, 1},
	} {
		require.NoError(t, db.Exec(
			`INSERT INTO shipping_pool_entries (id, order_item_id, store_id, quantity, created_by, created_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			uuid.New(), entry.item, storeID, entry.qty, uuid.New(), now,
		).Error)
	}

	pooled, err := repo.PooledQuantities(ctx, []uuid.UUID{itemA, itemB, uuid.New()})
	require.NoError(t, err)
	require.Equal(t, 5, pooled[itemA])
	require.Equal(t, 1, pooled[itemB])
	require.Len(t, pooled, 2)

	count, err := repo.PoolEntryCount(ctx, itemA)
	require.NoError(t, err)
	require.EqualValues(t, 2, count)
}

func TestNameLookups(t *testing.T) {
	repo, db := newTestRepo(t)
	ctx := context.Background()

	productID := uuid.New()
	storeID := uuid.New()
	require.NoError(t, db.Exec(`INSERT INTO products (id, name) VALUES (?, ?)`, productID, "OG Kush 3.5g").Error)
	require.NoError(t, db.Exec(`INSERT INTO stores (id, name) VALUES (?, ?)`, storeID, "Sunset Dispensary").Error)

	products, err := repo.ProductNames(ctx, []uuid.UUID{productID})
	require.NoError(t, err)
	require.Equal(t, "OG Kush 3.5g", products[productID])

	stores, err := repo.StoreNames(ctx, []uuid.UUID{storeID})
	require.NoError(t, err)
	require.Equal(t, "Sunset Dispensary", stores[storeID])

	variants, err := repo.VariantNames(ctx, nil)
	require.NoError(t, err)
	require.Empty(t, variants)
}
