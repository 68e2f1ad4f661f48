package salesnotes

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
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
		`CREATE TABLE sales_notes (
			id TEXT PRIMARY KEY,
			store_id TEXT NOT NULL,
			created_by TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'draft',
			notes TEXT,
			shipped_at DATETIME,
			received_at DATETIME,
			received_by TEXT,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`,
		`CREATE TABLE sales_note_items (
			id TEXT PRIMARY KEY,
			sales_note_id TEXT NOT NULL,
			order_item_id TEXT NOT NULL,
			quantity INTEGER NOT NULL,
			created_at DATETIME NOT NULL
		)`,
		`CREATE TABLE order_items (
			id TEXT PRIMARY KEY,
			order_id TEXT NOT NULL,
			product_id TEXT NOT NULL,
			variant_id TEXT,
			store_id TEXT NOT NULL,
			quantity INTEGER NOT NULL,
			unit_wholesale_price NUMERIC NOT NULL DEFAULT '0',
			unit_retail_price NUMERIC NOT NULL DEFAULT '0',
			shipped_quantity INTEGER NOT NULL DEFAULT 0,
			status TEXT NOT NULL DEFAULT 'waiting',
			created_at DATETIME,
			updated_at DATETIME
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

func seedNoteItem(t *testing.T, db *gorm.DB, storeID uuid.UUID, quantity, shipped int) uuid.UUID {
	t.Helper()
	productID := uuid.New()
	require.NoError(t, db.Exec(`INSERT INTO products (id, name) VALUES (?, 'Tincture')`, productID).Error)
	itemID := uuid.New()
	require.NoError(t, db.Exec(
		`INSERT INTO order_items (id, order_id, product_id, store_id, quantity, shipped_quantity, status)
		 VALUES (?, ?, ?, ?, ?, ?, 'partial')`,
		itemID, uuid.New(), productID, storeID, quantity, shipped,
	).Error)
	return itemID
}

func createNote(t *testing.T, repo Repository, storeID uuid.UUID, status enums.SalesNoteStatus, itemID uuid.UUID, qty int) uuid.UUID {
	t.Helper()
	ctx := context.Background()
	note := &models.SalesNote{
		ID:        uuid.New(),
		StoreID:   storeID,
		CreatedBy: uuid.New(),
		Status:    status,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	require.NoError(t, repo.CreateNote(ctx, note))
	require.NoError(t, repo.CreateNoteItems(ctx, []models.SalesNoteItem{{
		ID:          uuid.New(),
		SalesNoteID: note.ID,
		OrderItemID: itemID,
		Quantity:    qty,
		CreatedAt:   time.Now().UTC(),
	}}))
	return note.ID
}

func TestNoteLifecyclePersistence(t *testing.T) {
	repo, db := newTestRepo(t)
	ctx := context.Background()
	storeID := uuid.New()
	itemID := seedNoteItem(t, db, storeID, 10, 2)
	noteID := createNote(t, repo, storeID, enums.SalesNoteStatusDraft, itemID, 3)

	note, err := repo.FindNote(ctx, noteID)
	require.NoError(t, err)
	require.Equal(t, enums.SalesNoteStatusDraft, note.Status)
	require.Len(t, note.Items, 1)
	require.Equal(t, 3, note.Items[0].Quantity)

	shippedAt := time.Now().UTC()
	affected, err := repo.UpdateNoteShipped(ctx, noteID, shippedAt)
	require.NoError(t, err)
	require.EqualValues(t, 1, affected)
	note, err = repo.FindNote(ctx, noteID)
	require.NoError(t, err)
	require.Equal(t, enums.SalesNoteStatusShipped, note.Status)
	require.NotNil(t, note.ShippedAt)

	// The status predicate lets only one transition win.
	affected, err = repo.UpdateNoteShipped(ctx, noteID, shippedAt)
	require.NoError(t, err)
	require.Zero(t, affected)

	receiver := uuid.New()
	affected, err = repo.UpdateNoteReceived(ctx, noteID, time.Now().UTC(), receiver)
	require.NoError(t, err)
	require.EqualValues(t, 1, affected)
	note, err = repo.FindNote(ctx, noteID)
	require.NoError(t, err)
	require.Equal(t, enums.SalesNoteStatusReceived, note.Status)
	require.Equal(t, receiver, *note.ReceivedBy)

	affected, err = repo.UpdateNoteReceived(ctx, noteID, time.Now().UTC(), receiver)
	require.NoError(t, err)
	require.Zero(t, affected)

	require.NoError(t, repo.DeleteNoteItems(ctx, noteID))
	affected, err = repo.DeleteNote(ctx, noteID, enums.SalesNoteStatusShipped)
	require.NoError(t, err)
	require.Zero(t, affected)
	affected, err = repo.DeleteNote(ctx, noteID, enums.SalesNoteStatusReceived)
	require.NoError(t, err)
	require.EqualValues(t, 1, affected)
	_, err = repo.FindNote(ctx, noteID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestGuardedDecrementShipped(t *testing.T) {
	repo, db := newTestRepo(t)
	ctx := context.Background()
	storeID := uuid.New()
	itemID := seedNoteItem(t, db, storeID, 10, 4)

	affected, err := repo.GuardedDecrementShipped(ctx, itemID, 3)
	require.NoError(t, err)
	require.EqualValues(t, 1, affected)

	items, err := repo.FindOrderItems(ctx, []uuid.UUID{itemID})
	require.NoError(t, err)
	require.Equal(t, 1, items[0].ShippedQuantity)

	// Remaining shipped quantity no longer covers the rollback.
	affected, err = repo.GuardedDecrementShipped(ctx, itemID, 3)
	require.NoError(t, err)
	require.EqualValues(t, 0, affected)
}

func TestDeletePoolEntriesReportsRows(t *testing.T) {
	repo, db := newTestRepo(t)
	ctx := context.Background()
	storeID := uuid.New()
	itemID := seedNoteItem(t, db, storeID, 10, 0)

	ids := make([]uuid.UUID, 0, 2)
	for _, qty := range []int{2, 3} {
		id := uuid.New()
		require.NoError(t, db.Exec(
			`INSERT INTO shipping_pool_entries (id, order_item_id, store_id, quantity, created_by, created_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			id, itemID, storeID, qty, uuid.New(), time.Now().UTC(),
		).Error)
		ids = append(ids, id)
	}

	entries, err := repo.PoolEntriesByStore(ctx, storeID)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	affected, err := repo.DeletePoolEntries(ctx, append(ids, uuid.New()))
	require.NoError(t, err)
	require.EqualValues(t, 2, affected)
}

func TestNoteItemRowsJoinOrderContext(t *testing.T) {
	repo, db := newTestRepo(t)
	ctx := context.Background()
	storeID := uuid.New()
	itemID := seedNoteItem(t, db, storeID, 10, 6)
	noteID := createNote(t, repo, storeID, enums.SalesNoteStatusShipped, itemID, 4)

	rows, err := repo.NoteItemRows(ctx, noteID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "Tincture", rows[0].ProductName)
	require.Equal(t, 4, rows[0].Quantity)
	require.Equal(t, 10, rows[0].OrderedQuantity)
	require.Equal(t, 6, rows[0].ShippedQuantity)
	require.Nil(t, rows[0].VariantName)
}

func TestListNotesFilters(t *testing.T) {
	repo, db := newTestRepo(t)
	ctx := context.Background()
	storeA := uuid.New()
	storeB := uuid.New()
	itemA := seedNoteItem(t, db, storeA, 10, 0)
	itemB := seedNoteItem(t, db, storeB, 10, 0)
	createNote(t, repo, storeA, enums.SalesNoteStatusDraft, itemA, 1)
	shippedID := createNote(t, repo, storeA, enums.SalesNoteStatusShipped, itemA, 2)
	createNote(t, repo, storeB, enums.SalesNoteStatusShipped, itemB, 3)

	rows, _, err := repo.ListNotes(ctx, ListFilters{StoreID: &storeA}, pagination.Params{Limit: 20})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	shipped := enums.SalesNoteStatusShipped
	rows, _, err = repo.ListNotes(ctx, ListFilters{StoreID: &storeA, Status: &shipped}, pagination.Params{Limit: 20})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, shippedID, rows[0].ID)
	require.Len(t, rows[0].Items, 1)
}
