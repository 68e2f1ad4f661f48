package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Product represents a wholesale catalog listing.
type Product struct {
	ID             uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SKU            string           `gorm:"column:sku;not null;uniqueIndex"`
	Name           string           `gorm:"column:name;not null"`
	Brand          string           `gorm:"column:brand;not null"`
	WholesalePrice decimal.Decimal  `gorm:"column:wholesale_price;type:numeric(12,2);not null"`
	RetailPrice    decimal.Decimal  `gorm:"column:retail_price;type:numeric(12,2);not null"`
	Tags           pq.StringArray   `gorm:"column:tags;type:text[];not null;default:ARRAY[]::text[]"`
	Active         bool             `gorm:"column:active;not null;default:true"`
	Variants       []ProductVariant `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
