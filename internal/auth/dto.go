package auth

import (
	"github.com/google/uuid"

	"github.com/ocampodev/supplyline-backend/internal/users"
	"github.com/ocampodev/supplyline-backend/pkg/enums"
)

// LoginRequest is the payload accepted by the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// StoreSummary lists a store the authenticated user belongs to.
type StoreSummary struct {
	ID   uuid.UUID        `json:"id"`
	Name string           `json:"name"`
	Role enums.MemberRole `json:"role"`
}

// LoginResponse carries the minted token plus the user's store context.
type LoginResponse struct {
	AccessToken string         `json:"access_token"`
	User        *users.UserDTO `json:"user"`
	Stores      []StoreSummary `json:"stores"`
}

// LoginInput bundles credentials with the caller address for rate limiting.
type LoginInput struct {
	Email    string
	Password string
	RemoteIP string
}
