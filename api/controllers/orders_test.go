package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ocampodev/supplyline-backend/api/middleware"
	"github.com/ocampodev/supplyline-backend/internal/orders"
	"github.com/ocampodev/supplyline-backend/pkg/auth"
	"github.com/ocampodev/supplyline-backend/pkg/enums"
	pkgerrors "github.com/ocampodev/supplyline-backend/pkg/errors"
	"github.com/ocampodev/supplyline-backend/pkg/pagination"
)

type stubOrdersService struct {
	createInput  *orders.CreateInput
	createActor  auth.CurrentUser
	createErr    error
	listFilters  *orders.ListFilters
	itemStatus   *enums.OrderItemStatus
	toggleCalled bool
}

func (s *stubOrdersService) Create(ctx context.Context, input orders.CreateInput, actor auth.CurrentUser) (*orders.OrderDetail, error) {
	s.createInput = &input
	s.createActor = actor
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &orders.OrderDetail{ID: uuid.New(), StoreID: input.StoreID, Source: input.Source}, nil
}

func (s *stubOrdersService) UpdateNotes(ctx context.Context, orderID uuid.UUID, notes *string, actor auth.CurrentUser) error {
	return nil
}

func (s *stubOrdersService) List(ctx context.Context, filters orders.ListFilters, params pagination.Params, actor auth.CurrentUser) (*orders.OrderList, error) {
	s.listFilters = &filters
	return &orders.OrderList{}, nil
}

func (s *stubOrdersService) Get(ctx context.Context, orderID uuid.UUID, actor auth.CurrentUser) (*orders.OrderDetail, error) {
	return &orders.OrderDetail{ID: orderID}, nil
}

func (s *stubOrdersService) ToggleLock(ctx context.Context, orderID uuid.UUID, actor auth.CurrentUser) (enums.OrderStatus, error) {
	s.toggleCalled = true
	return enums.OrderStatusProcessing, nil
}

func (s *stubOrdersService) SetItemStatus(ctx context.Context, itemID uuid.UUID, status enums.OrderItemStatus, actor auth.CurrentUser) error {
	s.itemStatus = &status
	return nil
}

func (s *stubOrdersService) IncrementShipped(ctx context.Context, tx *gorm.DB, itemID uuid.UUID, delta int, actor auth.CurrentUser) error {
	return nil
}

func (s *stubOrdersService) RollupFullyShipped(ctx context.Context, tx *gorm.DB, orderID uuid.UUID) error {
	return nil
}

func storeActor(storeID uuid.UUID) auth.CurrentUser {
	role := enums.MemberRoleEmployee
	return auth.CurrentUser{UserID: uuid.New(), ActiveStoreID: &storeID, StoreRole: &role}
}

func withActor(req *http.Request, actor auth.CurrentUser) *http.Request {
	return req.WithContext(middleware.WithCurrentUser(req.Context(), actor))
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestOrderCreateDefaultsToActiveStore(t *testing.T) {
	svc := &stubOrdersService{}
	storeID := uuid.New()
	productID := uuid.New()

	body := `{"items":[{"product_id":"` + productID.String() + `","quantity":3}]}`
	req := withActor(httptest.NewRequest(http.MethodPost, "/v1/orders", strings.NewReader(body)), storeActor(storeID))
	rec := httptest.NewRecorder()

	OrderCreate(svc, nil)(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.createInput == nil {
		t.Fatal("service not called")
	}
	if svc.createInput.StoreID != storeID {
		t.Fatalf("expected active store %s, got %s", storeID, svc.createInput.StoreID)
	}
	if svc.createInput.Source != enums.OrderSourceFrontend {
		t.Fatalf("expected frontend source, got %s", svc.createInput.Source)
	}
	if len(svc.createInput.Items) != 1 || svc.createInput.Items[0].Quantity != 3 {
		t.Fatalf("unexpected items %#v", svc.createInput.Items)
	}
}

func TestOrderCreateRejectsMissingItems(t *testing.T) {
	svc := &stubOrdersService{}
	req := withActor(httptest.NewRequest(http.MethodPost, "/v1/orders", strings.NewReader(`{"items":[]}`)), storeActor(uuid.New()))
	rec := httptest.NewRecorder()

	OrderCreate(svc, nil)(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if svc.createInput != nil {
		t.Fatal("service must not be called on invalid input")
	}
}

func TestOrderCreatePassesServiceErrorThrough(t *testing.T) {
	svc := &stubOrdersService{createErr: pkgerrors.New(pkgerrors.CodePermissionDenied, "admin_proxy intake requires admin role")}
	body := `{"source":"admin_proxy","store_id":"` + uuid.NewString() + `","items":[{"product_id":"` + uuid.NewString() + `","quantity":1}]}`
	req := withActor(httptest.NewRequest(http.MethodPost, "/v1/orders", strings.NewReader(body)), storeActor(uuid.New()))
	rec := httptest.NewRecorder()

	OrderCreate(svc, nil)(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestOrderListParsesFilters(t *testing.T) {
	svc := &stubOrdersService{}
	storeID := uuid.New()
	req := withActor(httptest.NewRequest(http.MethodGet, "/v1/orders?status=pending&fully_shipped=true&store_id="+storeID.String(), nil), storeActor(storeID))
	rec := httptest.NewRecorder()

	OrderList(svc, nil)(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.listFilters == nil {
		t.Fatal("service not called")
	}
	if svc.listFilters.Status == nil || *svc.listFilters.Status != enums.OrderStatusPending {
		t.Fatal("status filter not parsed")
	}
	if svc.listFilters.FullyShipped == nil || !*svc.listFilters.FullyShipped {
		t.Fatal("fully_shipped filter not parsed")
	}
	if svc.listFilters.StoreID == nil || *svc.listFilters.StoreID != storeID {
		t.Fatal("store filter not parsed")
	}
}

func TestOrderListRejectsBadStatus(t *testing.T) {
	svc := &stubOrdersService{}
	req := withActor(httptest.NewRequest(http.MethodGet, "/v1/orders?status=bogus", nil), storeActor(uuid.New()))
	rec := httptest.NewRecorder()

	OrderList(svc, nil)(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestOrderItemSetStatusParsesEnum(t *testing.T) {
	svc := &stubOrdersService{}
	itemID := uuid.New()
	req := withActor(httptest.NewRequest(http.MethodPost, "/v1/order-items/"+itemID.String()+"/status", strings.NewReader(`{"status":"out_of_stock"}`)), storeActor(uuid.New()))
	req = withURLParam(req, "itemID", itemID.String())
	rec := httptest.NewRecorder()

	OrderItemSetStatus(svc, nil)(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.itemStatus == nil || *svc.itemStatus != enums.OrderItemStatusOutOfStock {
		t.Fatal("status not parsed")
	}
}

func TestOrderDetailRejectsBadUUID(t *testing.T) {
	svc := &stubOrdersService{}
	req := withActor(httptest.NewRequest(http.MethodGet, "/v1/orders/not-a-uuid", nil), storeActor(uuid.New()))
	req = withURLParam(req, "orderID", "not-a-uuid")
	rec := httptest.NewRecorder()

	OrderDetail(svc, nil)(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestOrderToggleLockReturnsNewStatus(t *testing.T) {
	svc := &stubOrdersService{}
	orderID := uuid.New()
	req := withActor(httptest.NewRequest(http.MethodPost, "/v1/orders/"+orderID.String()+"/lock", nil), storeActor(uuid.New()))
	req = withURLParam(req, "orderID", orderID.String())
	rec := httptest.NewRecorder()

	OrderToggleLock(svc, nil)(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var envelope struct {
		Data map[string]string `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data["status"] != string(enums.OrderStatusProcessing) {
		t.Fatalf("unexpected status %q", envelope.Data["status"])
	}
}
