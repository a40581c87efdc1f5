// Package users provides the user directory: model, field schema and the
// listing service behind the users table and export.
package users

import (
	"time"

	"adminsuite/internal/core/id"
)

// Role is an access role.
type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleModerator Role = "MODERATOR"
	RoleManager   Role = "MANAGER"
	RoleUser      Role = "USER"
)

// Roles lists every role in display order.
var Roles = []Role{RoleAdmin, RoleModerator, RoleManager, RoleUser}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// Status values derived from IsActive.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// User is a directory entry.
type User struct {
	ID           id.ID      `db:"id" json:"id"`
	Email        string     `db:"email" json:"email"`
	PasswordHash string     `db:"password_hash" json:"-"`
	FirstName    string     `db:"first_name" json:"firstName"`
	LastName     string     `db:"last_name" json:"lastName"`
	Phone        *string    `db:"phone" json:"phone,omitempty"`
	Address      *string    `db:"address" json:"address,omitempty"`
	Role         Role       `db:"role" json:"role"`
	Permissions  []string   `db:"permissions" json:"permissions"`
	IsActive     bool       `db:"is_active" json:"isActive"`
	CreatedAt    time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updatedAt"`
	LastLogin    *time.Time `db:"last_login" json:"lastLogin,omitempty"`
}

// Status returns "active" or "inactive".
func (u User) Status() string {
	if u.IsActive {
		return StatusActive
	}
	return StatusInactive
}

// FullName joins first and last name.
func (u User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	default:
		return u.FirstName + " " + u.LastName
	}
}

// LoggedInWithin reports whether the last login falls in [from, to].
func (u User) LoggedInWithin(from, to time.Time) bool {
	if u.LastLogin == nil {
		return false
	}
	return !u.LastLogin.Before(from) && !u.LastLogin.After(to)
}
