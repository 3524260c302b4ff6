package domain

import "strings"

// Role is the closed set of authorities a user can hold.
type Role string

const (
	RoleUser      Role = "USER"
	RoleAdmin     Role = "ADMIN"
	RoleModerator Role = "MODERATOR"
)

// ParseRole converts a string to a Role, case-insensitively. An unrecognized
// value is a hard validation error, never silently defaulted.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleUser:
		return RoleUser, nil
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleModerator:
		return RoleModerator, nil
	}
	return "", NewValidation("invalid role: " + s)
}

// DefaultRoles is the role set assigned when registration supplies none.
func DefaultRoles() []Role {
	return []Role{RoleUser}
}
