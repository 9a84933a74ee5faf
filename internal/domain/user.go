package domain

import "time"

// UserRole enumerates application access levels.
type UserRole string

const (
	UserRoleAdmin  UserRole = "admin"
	UserRoleEditor UserRole = "editor"
	UserRoleViewer UserRole = "viewer"
)

// ValidUserRole reports whether r is a known role.
func ValidUserRole(r UserRole) bool {
	switch r {
	case UserRoleAdmin, UserRoleEditor, UserRoleViewer:
		return true
	}
	return false
}

// CanWrite reports whether the role may mutate tracker data.
func (r UserRole) CanWrite() bool {
	return r == UserRoleAdmin || r == UserRoleEditor
}

// User is an application account. Distinct from StaffMember: a user may
// or may not correspond to a fee earner on the roster.
type User struct {
	ID                int64
	Username          string
	Email             string
	PasswordHash      string
	Role              UserRole
	MustResetPassword bool
	LastLogin         *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
