package entity

import (
	"errors"
	"strings"
)

// Role is the authorization role of an identity.
// The set is closed: every switch over Role must handle all three values.
type Role string

const (
	RoleUser   Role = "USER"
	RoleDoctor Role = "DOCTOR"
	RoleAdmin  Role = "ADMIN"
)

var ErrUnknownRole = errors.New("unknown role")

// Roles lists every role in display order.
func Roles() []Role {
	return []Role{RoleUser, RoleDoctor, RoleAdmin}
}

// ParseRole accepts the canonical names case-insensitively.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleUser:
		return RoleUser, nil
	case RoleDoctor:
		return RoleDoctor, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", ErrUnknownRole
	}
}

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleDoctor, RoleAdmin:
		return true
	default:
		return false
	}
}

// HasHealthProfile reports whether identities of this role carry a HealthProfile.
func (r Role) HasHealthProfile() bool {
	switch r {
	case RoleUser:
		return true
	case RoleDoctor, RoleAdmin:
		return false
	default:
		return false
	}
}

func (r Role) String() string { return string(r) }
