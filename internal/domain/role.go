package domain

import "strings"

// Role enumerates the closed set of account roles.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleFacility Role = "facility"
	RoleCleaner  Role = "cleaner"
	RoleUser     Role = "user"
)

// Valid reports whether the role is one of the known account roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleFacility, RoleCleaner, RoleUser:
		return true
	}
	return false
}

// Assignable reports whether tickets may be routed to this role.
// End-users submit tickets but never receive them.
func (r Role) Assignable() bool {
	switch r {
	case RoleAdmin, RoleFacility, RoleCleaner:
		return true
	}
	return false
}

// ParseRole normalizes a raw string into a Role.
func ParseRole(raw string) (Role, bool) {
	role := Role(strings.ToLower(strings.TrimSpace(raw)))
	if !role.Valid() {
		return "", false
	}
	return role, true
}
