package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PriceOverride sets brand-specific pricing for a product or one of its
// variants. A variant-specific override beats a product-level one.
type PriceOverride struct {
	ID             uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID      uuid.UUID       `gorm:"column:product_id;type:uuid;not null;uniqueIndex:idx_price_overrides_scope"`
	VariantID      *uuid.UUID      `gorm:"column:variant_id;type:uuid;uniqueIndex:idx_price_overrides_scope"`
	Brand          string          `gorm:"column:brand;not null;uniqueIndex:idx_price_overrides_scope"`
	WholesalePrice decimal.Decimal `gorm:"column:wholesale_price;type:numeric(12,2);not null"`
	RetailPrice    decimal.Decimal `gorm:"column:retail_price;type:numeric(12,2);not null"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
