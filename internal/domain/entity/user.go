package entity

import "time"

// Role is the closed set of authorization roles. Gates match on it
// exhaustively; handlers never compare raw strings.
type Role string

const (
	RoleUser         Role = "user"
	RoleCompanyAdmin Role = "company_admin"
	RoleSuperAdmin   Role = "super_admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleCompanyAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// IsAdmin reports whether r grants access to the admin surface.
func (r Role) IsAdmin() bool {
	return r == RoleCompanyAdmin || r == RoleSuperAdmin
}

// Status of a user account. Only active accounts may authenticate or act.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// User is the aggregate root for the identity domain.
// PasswordHash is empty for accounts provisioned without a usable password.
type User struct {
	ID               string
	CompanyID        string // empty for super admins not bound to a company
	HRID             string
	Email            string
	PasswordHash     string
	FirstName        string
	LastName         string
	Phone            string
	PhoneCountryCode string
	Role             Role
	Status           Status
	CreatedAt        time.Time
	LastLogin        *time.Time
}
