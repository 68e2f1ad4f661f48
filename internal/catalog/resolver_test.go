package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ocampodev/supplyline-backend/pkg/db/models"
	pkgerrors "github.com/ocampodev/supplyline-backend/pkg/errors"
	"github.com/ocampodev/supplyline-backend/pkg/pagination"
)

type stubRepo struct {
	store     *models.Store
	product   *models.Product
	variant   *models.ProductVariant
	overrides map[string]*models.PriceOverride
}

func (s *stubRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubRepo) FindProduct(ctx context.Context, productID uuid.UUID) (*models.Product, error) {
	if s.product == nil || s.product.ID != productID {
		return nil, gorm.ErrRecordNotFound
	}
	return s.product, nil
}

func (s *stubRepo) FindVariant(ctx context.Context, variantID uuid.UUID) (*models.ProductVariant, error) {
	if s.variant == nil || s.variant.ID != variantID {
		return nil, gorm.ErrRecordNotFound
	}
	return s.variant, nil
}

func (s *stubRepo) FindStore(ctx context.Context, storeID uuid.UUID) (*models.Store, error) {
	if s.store == nil || s.store.ID != storeID {
		return nil, gorm.ErrRecordNotFound
	}
	return s.store, nil
}

func (s *stubRepo) FindOverride(ctx context.Context, productID uuid.UUID, variantID *uuid.UUID, brand string) (*models.PriceOverride, error) {
	key := brand + "|product"
	if variantID != nil {
		key = brand + "|" + variantID.String()
	}
	return s.overrides[key], nil
}

func (s *stubRepo) ListProducts(ctx context.Context, params pagination.Params, activeOnly bool) ([]models.Product, *pagination.Cursor, error) {
	return nil, nil, nil
}

func newResolverFixture(t *testing.T) (*stubRepo, Resolver) {
	t.Helper()
	repo := &stubRepo{
		store: &models.Store{ID: uuid.New(), Brand: "acme"},
		product: &models.Product{
			ID:             uuid.New(),
			Active:         true,
			WholesalePrice: decimal.NewFromFloat(10.00),
			RetailPrice:    decimal.NewFromFloat(19.99),
		},
		overrides: map[string]*models.PriceOverride{},
	}
	repo.variant = &models.ProductVariant{ID: uuid.New(), ProductID: repo.product.ID, Active: true}
	r, err := NewResolver(repo)
	if err != nil {
		t.Fatalf("new resolver: %v", err)
	}
	return repo, r
}

func TestResolveBasePrice(t *testing.T) {
	repo, r := newResolverFixture(t)

	quote, err := r.Resolve(context.Background(), repo.product.ID, nil, repo.store.ID)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !quote.Wholesale.Equal(decimal.NewFromFloat(10.00)) {
		t.Fatalf("expected base wholesale price, got %s", quote.Wholesale)
	}
	if !quote.Retail.Equal(decimal.NewFromFloat(19.99)) {
		t.Fatalf("expected base retail price, got %s", quote.Retail)
	}
}

func TestResolveProductOverrideBeatsBase(t *testing.T) {
	repo, r := newResolverFixture(t)
	repo.overrides["acme|product"] = &models.PriceOverride{
		WholesalePrice: decimal.NewFromFloat(8.50),
		RetailPrice:    decimal.NewFromFloat(17.00),
	}

	quote, err := r.Resolve(context.Background(), repo.product.ID, nil, repo.store.ID)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !quote.Wholesale.Equal(decimal.NewFromFloat(8.50)) {
		t.Fatalf("expected override wholesale price, got %s", quote.Wholesale)
	}
}

func TestResolveVariantOverrideBeatsProductOverride(t *testing.T) {
	repo, r := newResolverFixture(t)
	repo.overrides["acme|product"] = &models.PriceOverride{
		WholesalePrice: decimal.NewFromFloat(8.50),
		RetailPrice:    decimal.NewFromFloat(17.00),
	}
	repo.overrides["acme|"+repo.variant.ID.String()] = &models.PriceOverride{
		WholesalePrice: decimal.NewFromFloat(7.25),
		RetailPrice:    decimal.NewFromFloat(15.00),
	}

	quote, err := r.Resolve(context.Background(), repo.product.ID, &repo.variant.ID, repo.store.ID)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !quote.Wholesale.Equal(decimal.NewFromFloat(7.25)) {
		t.Fatalf("expected variant override price, got %s", quote.Wholesale)
	}
}

func TestResolveVariantFallsBackToProductOverride(t *testing.T) {
	repo, r := newResolverFixture(t)
	repo.overrides["acme|product"] = &models.PriceOverride{
		WholesalePrice: decimal.NewFromFloat(8.50),
		RetailPrice:    decimal.NewFromFloat(17.00),
	}

	quote, err := r.Resolve(context.Background(), repo.product.ID, &repo.variant.ID, repo.store.ID)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !quote.Wholesale.Equal(decimal.NewFromFloat(8.50)) {
		t.Fatalf("expected product override price, got %s", quote.Wholesale)
	}
}

func TestResolveUnknownProduct(t *testing.T) {
	repo, r := newResolverFixture(t)

	_, err := r.Resolve(context.Background(), uuid.New(), nil, repo.store.ID)
	if !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestResolveVariantOfOtherProduct(t *testing.T) {
	repo, r := newResolverFixture(t)
	repo.variant.ProductID = uuid.New()

	_, err := r.Resolve(context.Background(), repo.product.ID, &repo.variant.ID, repo.store.ID)
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected VALIDATION, got %v", err)
	}
}

func TestResolveInactiveProduct(t *testing.T) {
	repo, r := newResolverFixture(t)
	repo.product.Active = false

	_, err := r.Resolve(context.Background(), repo.product.ID, nil, repo.store.ID)
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected VALIDATION, got %v", err)
	}
}

func TestResolveInactiveVariant(t *testing.T) {
	repo, r := newResolverFixture(t)
	repo.variant.Active = false

	_, err := r.Resolve(context.Background(), repo.product.ID, &repo.variant.ID, repo.store.ID)
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected VALIDATION, got %v", err)
	}
}
