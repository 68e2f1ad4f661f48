package shippingpool

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ocampodev/supplyline-backend/internal/audit"
	"github.com/ocampodev/supplyline-backend/pkg/auth"
	"github.com/ocampodev/supplyline-backend/pkg/db/models"
	"github.com/ocampodev/supplyline-backend/pkg/enums"
	pkgerrors "github.com/ocampodev/supplyline-backend/pkg/errors"
	"github.com/ocampodev/supplyline-backend/pkg/pagination"
)

type stubRepo struct {
	items   map[uuid.UUID]*models.OrderItem
	entries map[uuid.UUID]*models.ShippingPoolEntry
	rows    []EntryRow
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		items:   map[uuid.UUID]*models.OrderItem{},
		entries: map[uuid.UUID]*models.ShippingPoolEntry{},
	}
}

func (s *stubRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubRepo) CreateEntry(ctx context.Context, entry *models.ShippingPoolEntry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	copied := *entry
	s.entries[entry.ID] = &copied
	return nil
}

func (s *stubRepo) FindEntry(ctx context.Context, entryID uuid.UUID) (*models.ShippingPoolEntry, error) {
	entry, ok := s.entries[entryID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return entry, nil
}

func (s *stubRepo) DeleteEntry(ctx context.Context, entryID uuid.UUID) (int64, error) {
	if _, ok := s.entries[entryID]; !ok {
		return 0, nil
	}
	delete(s.entries, entryID)
	return 1, nil
}

func (s *stubRepo) FindOrderItem(ctx context.Context, itemID uuid.UUID) (*models.OrderItem, error) {
	item, ok := s.items[itemID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return item, nil
}

func (s *stubRepo) PooledQuantity(ctx context.Context, itemID uuid.UUID) (int, error) {
	total := 0
	for _, entry := range s.entries {
		if entry.OrderItemID == itemID {
			total += entry.Quantity
		}
	}
	return total, nil
}

func (s *stubRepo) ListEntryRows(ctx context.Context) ([]EntryRow, error) {
	return s.rows, nil
}

func (s *stubRepo) StaleEntryCounts(ctx context.Context, cutoff time.Time) ([]StaleStoreCount, error) {
	return nil, nil
}

type stubTxRunner struct{}

func (s *stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(&gorm.DB{})
}

type stubRecorder struct {
	entries []audit.Entry
}

func (s *stubRecorder) Record(ctx context.Context, tx *gorm.DB, entry audit.Entry) error {
	s.entries = append(s.entries, entry)
	return nil
}

func (s *stubRecorder) ListByEntity(ctx context.Context, entityType string, entityID uuid.UUID, params pagination.Params) ([]models.AuditLog, *pagination.Cursor, error) {
	return nil, nil, nil
}

func newFixture(t *testing.T) (*stubRepo, *stubRecorder, Service) {
	t.Helper()
	repo := newStubRepo()
	rec := &stubRecorder{}
	svc, err := NewService(repo, &stubTxRunner{}, rec)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return repo, rec, svc
}

func staffActor() auth.CurrentUser {
	role := enums.SystemRoleAdmin
	return auth.CurrentUser{UserID: uuid.New(), SystemRole: &role}
}

func seedItem(repo *stubRepo, quantity, shipped int, status enums.OrderItemStatus) *models.OrderItem {
	item := &models.OrderItem{
		ID:              uuid.New(),
		OrderID:         uuid.New(),
		StoreID:         uuid.New(),
		Quantity:        quantity,
		ShippedQuantity: shipped,
		Status:          status,
	}
	repo.items[item.ID] = item
	return item
}

func TestAddStagesEntry(t *testing.T) {
	repo, rec, svc := newFixture(t)
	item := seedItem(repo, 10, 2, enums.OrderItemStatusPartial)

	entry, err := svc.Add(context.Background(), AddInput{
		OrderItemID: item.ID,
		Quantity:    5,
		Actor:       staffActor(),
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if entry.StoreID != item.StoreID {
		t.Fatalf("store not denormalized, got %s", entry.StoreID)
	}
	if len(rec.entries) != 1 || rec.entries[0].Action != audit.ActionPoolEntryAdded {
		t.Fatalf("expected pool_entry.added audit, got %+v", rec.entries)
	}
}

func TestAddRejectsExceptionItems(t *testing.T) {
	repo, _, svc := newFixture(t)
	item := seedItem(repo, 10, 0, enums.OrderItemStatusOutOfStock)

	_, err := svc.Add(context.Background(), AddInput{OrderItemID: item.ID, Quantity: 1, Actor: staffActor()})
	if !pkgerrors.IsCode(err, pkgerrors.CodeStateConflict) {
		t.Fatalf("expected state conflict, got %v", err)
	}
}

func TestAddOverAllocationCountsPooled(t *testing.T) {
	repo, _, svc := newFixture(t)
	item := seedItem(repo, 10, 3, enums.OrderItemStatusPartial)
	actor := staffActor()

	// 3 shipped + 5 pooled leaves headroom of 2.
	if _, err := svc.Add(context.Background(), AddInput{OrderItemID: item.ID, Quantity: 5, Actor: actor}); err != nil {
		t.Fatalf("first add: %v", err)
	}

	_, err := svc.Add(context.Background(), AddInput{OrderItemID: item.ID, Quantity: 3, Actor: actor})
	if !pkgerrors.IsCode(err, pkgerrors.CodeOverAllocation) {
		t.Fatalf("expected over allocation, got %v", err)
	}

	if _, err := svc.Add(context.Background(), AddInput{OrderItemID: item.ID, Quantity: 2, Actor: actor}); err != nil {
		t.Fatalf("exact headroom add: %v", err)
	}
}

func TestAddRejectsNonPositiveQuantity(t *testing.T) {
	repo, _, svc := newFixture(t)
	item := seedItem(repo, 10, 0, enums.OrderItemStatusWaiting)

	_, err := svc.Add(context.Background(), AddInput{OrderItemID: item.ID, Quantity: 0, Actor: staffActor()})
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRemoveMissingEntry(t *testing.T) {
	_, _, svc := newFixture(t)

	err := svc.Remove(context.Background(), uuid.New(), staffActor())
	if !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestRemoveDeletesAndAudits(t *testing.T) {
	repo, rec, svc := newFixture(t)
	item := seedItem(repo, 10, 0, enums.OrderItemStatusWaiting)
	entry, err := svc.Add(context.Background(), AddInput{OrderItemID: item.ID, Quantity: 4, Actor: staffActor()})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := svc.Remove(context.Background(), entry.ID, staffActor()); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(repo.entries) != 0 {
		t.Fatal("entry not deleted")
	}
	last := rec.entries[len(rec.entries)-1]
	if last.Action != audit.ActionPoolEntryRemoved {
		t.Fatalf("expected pool_entry.removed audit, got %s", last.Action)
	}
}

func TestGroupedByStoreHeadroom(t *testing.T) {
	repo, _, svc := newFixture(t)
	storeA := uuid.New()
	storeB := uuid.New()
	itemID := uuid.New()
	now := time.Now().UTC()

	repo.rows = []EntryRow{
		{EntryID: uuid.New(), OrderItemID: itemID, OrderID: uuid.New(), StoreID: storeA, StoreName: "Alpha", ProductName: "Gummies", Quantity: 3, OrderedQuantity: 10, ShippedQuantity: 2, ItemStatus: enums.OrderItemStatusPartial, CreatedAt: now},
		{EntryID: uuid.New(), OrderItemID: itemID, OrderID: uuid.New(), StoreID: storeA, StoreName: "Alpha", ProductName: "Gummies", Quantity: 2, OrderedQuantity: 10, ShippedQuantity: 2, ItemStatus: enums.OrderItemStatusPartial, CreatedAt: now},
		{EntryID: uuid.New(), OrderItemID: uuid.New(), OrderID: uuid.New(), StoreID: storeB, StoreName: "Beta", ProductName: "Pre-roll", Quantity: 1, OrderedQuantity: 4, ShippedQuantity: 0, ItemStatus: enums.OrderItemStatusWaiting, CreatedAt: now},
	}

	groups, err := svc.GroupedByStore(context.Background())
	if err != nil {
		t.Fatalf("grouped: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	alpha := groups[0]
	if alpha.StoreName != "Alpha" || alpha.EntryCount != 2 || alpha.TotalQuantity != 5 {
		t.Fatalf("unexpected alpha group: %+v", alpha)
	}
	// 10 ordered - 2 shipped - 5 pooled across both entries.
	if alpha.Entries[0].RemainingHeadroom != 3 {
		t.Fatalf("headroom = %d", alpha.Entries[0].RemainingHeadroom)
	}
	if groups[1].StoreName != "Beta" || groups[1].Entries[0].RemainingHeadroom != 3 {
		t.Fatalf("unexpected beta group: %+v", groups[1])
	}
}
