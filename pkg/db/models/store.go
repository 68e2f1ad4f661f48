package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/ocampodev/supplyline-backend/pkg/enums"
)

// Store represents the canonical tenant model. Brand drives price overrides.
type Store struct {
	ID           uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name         string            `gorm:"column:name;not null"`
	Slug         string            `gorm:"column:slug;not null;uniqueIndex"`
	Brand        string            `gorm:"column:brand;not null"`
	Status       enums.StoreStatus `gorm:"column:status;type:store_status;not null;default:'active'"`
	ContactEmail *string           `gorm:"column:contact_email"`
	CreatedAt    time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
