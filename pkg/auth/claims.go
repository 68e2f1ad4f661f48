package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/ocampodev/supplyline-backend/pkg/enums"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID        uuid.UUID
	SystemRole    *enums.SystemRole
	ActiveStoreID *uuid.UUID
	StoreRole     *enums.MemberRole
	JTI           string
}

// AccessTokenClaims represents the typed JWT issued to clients.
type AccessTokenClaims struct {
	UserID        uuid.UUID         `json:"user_id"`
	SystemRole    *enums.SystemRole `json:"system_role,omitempty"`
	ActiveStoreID *uuid.UUID        `json:"active_store_id,omitempty"`
	StoreRole     *enums.MemberRole `json:"store_role,omitempty"`
	jwt.RegisteredClaims
}

// IsAdmin reports whether the token carries the platform admin role.
func (c *AccessTokenClaims) IsAdmin() bool {
	return c.SystemRole != nil && *c.SystemRole == enums.SystemRoleAdmin
}
