package enums

import "fmt"

// MemberRole is the per-store role carried on a store membership.
type MemberRole string

const (
	MemberRoleFounder  MemberRole = "founder"
	MemberRoleManager  MemberRole = "manager"
	MemberRoleEmployee MemberRole = "employee"
)

var validMemberRoles = []MemberRole{
	MemberRoleFounder,
	MemberRoleManager,
	MemberRoleEmployee,
}

// String implements fmt.Stringer.
func (m MemberRole) String() string {
	return string(m)
}

// IsValid reports whether the value is a known MemberRole.
func (m MemberRole) IsValid() bool {
	for _, candidate := range validMemberRoles {
		if candidate == m {
			return true
		}
	}
	return false
}

// CanConfirmReceipt reports whether the role may confirm a shipment was
// received on behalf of its store.
func (m MemberRole) CanConfirmReceipt() bool {
	return m == MemberRoleFounder || m == MemberRoleManager
}

// ParseMemberRole converts raw input into a MemberRole.
func ParseMemberRole(value string) (MemberRole, error) {
	for _, candidate := range validMemberRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid member role %q", value)
}
