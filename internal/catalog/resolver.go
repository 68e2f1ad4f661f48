package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ocampodev/supplyline-backend/pkg/db/models"
	pkgerrors "github.com/ocampodev/supplyline-backend/pkg/errors"
)

// PriceQuote carries the resolved unit prices snapshotted onto order items.
type PriceQuote struct {
	Wholesale decimal.Decimal
	Retail    decimal.Decimal
}

// Resolver resolves unit prices for a product/variant in the context of a
// store's brand. Variant-specific overrides beat product-level overrides,
// which beat base product prices.
type Resolver interface {
	Resolve(ctx context.Context, productID uuid.UUID, variantID *uuid.UUID, storeID uuid.UUID) (*PriceQuote, error)
}

type resolver struct {
	repo Repository
}

// NewResolver wires a price resolver with the provided repository.
func NewResolver(repo Repository) (Resolver, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &resolver{repo: repo}, nil
}

func (r *resolver) Resolve(ctx context.Context, productID uuid.UUID, variantID *uuid.UUID, storeID uuid.UUID) (*PriceQuote, error) {
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	if storeID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store id required")
	}

	store, err := r.repo.FindStore(ctx, storeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store")
	}

	product, err := r.repo.FindProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if !product.Active {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product is not active").
			WithDetails(map[string]any{"product_id": productID})
	}

	if variantID != nil {
		variant, err := r.repo.FindVariant(ctx, *variantID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product variant not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product variant")
		}
		if variant.ProductID != product.ID {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "variant does not belong to product")
		}
		if !variant.Active {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product variant is not active").
				WithDetails(map[string]any{"variant_id": *variantID})
		}

		override, err := r.repo.FindOverride(ctx, productID, variantID, store.Brand)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load variant price override")
		}
		if override != nil {
			return quoteFromOverride(override), nil
		}
	}

	override, err := r.repo.FindOverride(ctx, productID, nil, store.Brand)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product price override")
	}
	if override != nil {
		return quoteFromOverride(override), nil
	}

	return &PriceQuote{
		Wholesale: product.WholesalePrice,
		Retail:    product.RetailPrice,
	}, nil
}

func quoteFromOverride(override *models.PriceOverride) *PriceQuote {
	return &PriceQuote{
		Wholesale: override.WholesalePrice,
		Retail:    override.RetailPrice,
	}
}
