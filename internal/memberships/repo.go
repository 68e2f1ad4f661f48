package memberships

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ocampodev/supplyline-backend/pkg/enums"
)

// MembershipWithStore joins a membership row with the store it grants.
type MembershipWithStore struct {
	StoreID   uuid.UUID        `gorm:"column:store_id"`
	StoreName string           `gorm:"column:store_name"`
	Role      enums.MemberRole `gorm:"column:role"`
}

// Repository defines persistence operations for store memberships.
type Repository interface {
	ListUserStores(ctx context.Context, userID uuid.UUID) ([]MembershipWithStore, error)
	FindRole(ctx context.Context, userID, storeID uuid.UUID) (*enums.MemberRole, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a memberships repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// ListUserStores returns the active stores a user belongs to, with roles.
func (r *repository) ListUserStores(ctx context.Context, userID uuid.UUID) ([]MembershipWithStore, error) {
	var rows []MembershipWithStore
	err := r.db.WithContext(ctx).
		Table("store_memberships AS sm").
		Select("sm.store_id, s.name AS store_name, sm.role").
		Joins("JOIN stores s ON s.id = sm.store_id").
		Where("sm.user_id = ? AND s.status = ?", userID, enums.StoreStatusActive).
		Order("s.name ASC").
		Scan(&rows).Error
	return rows, err
}

// FindRole returns the user's role in the given store, or nil when the user
// is not a member.
func (r *repository) FindRole(ctx context.Context, userID, storeID uuid.UUID) (*enums.MemberRole, error) {
	var row struct {
		Role enums.MemberRole
	}
	err := r.db.WithContext(ctx).
		Table("store_memberships").
		Select("role").
		Where("user_id = ? AND store_id = ?", userID, storeID).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row.Role, nil
}
