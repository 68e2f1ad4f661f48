package memberships

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ocampodev/supplyline-backend/pkg/enums"
)

func newTestRepo(t *testing.T) (Repository, *gorm.DB) {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	stmts := []string{
		`CREATE TABLE stores (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			slug TEXT NOT NULL,
			brand TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'active'
		)`,
		`CREATE TABLE store_memberships (
			id TEXT PRIMARY KEY,
			store_id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			role TEXT NOT NULL,
			created_at DATETIME
		)`,
	}
	for _, stmt := range stmts {
		require.NoError(t, conn.Exec(stmt).Error)
	}
	return NewRepository(conn), conn
}

func seedStore(t *testing.T, db *gorm.DB, name string, status enums.StoreStatus) uuid.UUID {
	t.Helper()
	id := uuid.New()
	require.NoError(t, db.Exec(
		`INSERT INTO stores (id, name, slug, brand, status) VALUES (?, ?, ?, 'brand', ?)`,
		id, name, name, status,
	).Error)
	return id
}

func seedMembership(t *testing.T, db *gorm.DB, userID, storeID uuid.UUID, role enums.MemberRole) {
	t.Helper()
	require.NoError(t, db.Exec(
		`INSERT INTO store_memberships (id, store_id, user_id, role) VALUES (?, ?, ?, ?)`,
		uuid.New(), storeID, userID, role,
	).Error)
}

func TestListUserStoresOrdersByName(t *testing.T) {
	repo, db := newTestRepo(t)
	userID := uuid.New()
	zenith := seedStore(t, db, "Zenith", enums.StoreStatusActive)
	apex := seedStore(t, db, "Apex", enums.StoreStatusActive)
	seedMembership(t, db, userID, zenith, enums.MemberRoleManager)
	seedMembership(t, db, userID, apex, enums.MemberRoleFounder)

	rows, err := repo.ListUserStores(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "Apex", rows[0].StoreName)
	require.Equal(t, enums.MemberRoleFounder, rows[0].Role)
	require.Equal(t, "Zenith", rows[1].StoreName)
}

func TestListUserStoresSkipsSuspended(t *testing.T) {
	repo, db := newTestRepo(t)
	userID := uuid.New()
	suspended := seedStore(t, db, "Closed", enums.StoreStatusSuspended)
	seedMembership(t, db, userID, suspended, enums.MemberRoleFounder)

	rows, err := repo.ListUserStores(context.Background(), userID)
	require.NoError(t, err)
	require.Empty(t, rows)
}

func TestFindRole(t *testing.T) {
	repo, db := newTestRepo(t)
	userID := uuid.New()
	storeID := seedStore(t, db, "Apex", enums.StoreStatusActive)
	seedMembership(t, db, userID, storeID, enums.MemberRoleEmployee)

	role, err := repo.FindRole(context.Background(), userID, storeID)
	require.NoError(t, err)
	require.NotNil(t, role)
	require.Equal(t, enums.MemberRoleEmployee, *role)

	role, err = repo.FindRole(context.Background(), userID, uuid.New())
	require.NoError(t, err)
	require.Nil(t, role)
}
