// internal/domain/user/entity.go
package user

import (
	"errors"
	"strings"
)

// Role gates the three dashboards.
type Role string

const (
	RoleUser     Role = "user"
	RoleAdmin    Role = "admin"
	RoleDelivery Role = "delivery"
)

// User is the profile document at users/{uid}. The uid comes from
// Firebase Auth; the profile carries what checkout snapshots into the
// order (name, email) plus the role.
type User struct {
	UID   string
	Name  string
	Email string
	Role  Role
}

var (
	ErrNotFound   = errors.New("user: not found")
	ErrInvalidUID = errors.New("user: invalid uid")
)

// ParseRole falls back to the customer role for unknown or missing
// values; old profile docs predate the role field.
func ParseRole(s string) Role {
	switch Role(strings.TrimSpace(strings.ToLower(s))) {
	case RoleAdmin:
		return RoleAdmin
	case RoleDelivery:
		return RoleDelivery
	default:
		return RoleUser
	}
}
