package model

import (
	"github.com/google/uuid"
)

// Role names carried in the access token's "role" claim
const (
	RoleAdministrator  = "administrator"
	RolePastor         = "pastor"
	RoleFinanceOfficer = "finance_officer"
	RoleSecretary      = "secretary"
	RoleMember         = "member"
)

// ActingUser is the identity every workflow call runs as. It is resolved from the
// request's access token and passed explicitly, never looked up globally.
type ActingUser struct {
	ID   uuid.UUID `json:"id"`
	Role string    `json:"role"`
	Name string    `json:"name,omitempty"`
}

// HasRole reports whether the user's role is one of roles
func (u ActingUser) HasRole(roles ...string) bool {
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}

// IsAdministrator is a shortcut used by edit rules that only administrators may bypass
func (u ActingUser) IsAdministrator() bool {
	return u.Role == RoleAdministrator
}
