package auth

import (
	"github.com/google/uuid"

	"github.com/ocampodev/supplyline-backend/pkg/enums"
)

// CurrentUser is the identity services consume from the request context.
type CurrentUser struct {
	UserID        uuid.UUID
	SystemRole    *enums.SystemRole
	ActiveStoreID *uuid.UUID
	StoreRole     *enums.MemberRole
}

// IsAdmin reports whether the user carries the platform admin role.
func (u CurrentUser) IsAdmin() bool {
	return u.SystemRole != nil && *u.SystemRole == enums.SystemRoleAdmin
}

// MemberOf reports whether the user's active store matches the given store.
func (u CurrentUser) MemberOf(storeID uuid.UUID) bool {
	return u.ActiveStoreID != nil && *u.ActiveStoreID == storeID
}

// CanConfirmReceipt reports whether the user may confirm receipt for the
// given store: its founder or manager, or a platform admin.
func (u CurrentUser) CanConfirmReceipt(storeID uuid.UUID) bool {
	if u.IsAdmin() {
		return true
	}
	return u.MemberOf(storeID) && u.StoreRole != nil && u.StoreRole.CanConfirmReceipt()
}

// FromClaims converts parsed token claims into a CurrentUser.
func FromClaims(claims *AccessTokenClaims) CurrentUser {
	if claims == nil {
		return CurrentUser{}
	}
	return CurrentUser{
		UserID:        claims.UserID,
		SystemRole:    claims.SystemRole,
		ActiveStoreID: claims.ActiveStoreID,
		StoreRole:     claims.StoreRole,
	}
}
