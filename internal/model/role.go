package model

import "fmt"

// Role is the closed set of account roles.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleStudent Role = "student"
)

// legacyRoleSuperadmin is the bootstrap role value older deployments wrote
// for the first administrator. It is accepted on read and normalized to
// RoleAdmin, never written back.
const legacyRoleSuperadmin = "superadmin"

// ParseRole validates a role value arriving at a boundary (token claims,
// request payloads). Anything outside the closed set is rejected.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleStudent:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// RoleFromStorage maps a stored role string to a Role, normalizing the
// legacy superadmin bootstrap value to admin.
func RoleFromStorage(s string) (Role, error) {
	if s == legacyRoleSuperadmin {
		return RoleAdmin, nil
	}
	return ParseRole(s)
}

// Valid reports whether r is a member of the closed role set.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleStudent
}
