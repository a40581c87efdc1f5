// Package auth provides authentication: password login and JWT access tokens.
package auth

import (
	"time"

	"adminsuite/internal/domain/users"
)

// Credentials for login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is a self-service sign-up.
type Registration struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     *string
	Address   *string
}

// Token is a signed access token.
type Token struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
	TokenType   string    `json:"tokenType"`
}

// Session is the result of a successful login.
type Session struct {
	Token Token       `json:"token"`
	User  *users.User `json:"user"`
}

// DefaultPermissions are granted to a role when the account lists none.
var DefaultPermissions = map[users.Role][]string{
	users.RoleAdmin:     {"users:read", "users:write", "analytics:read", "reports:export", "inventory:read"},
	users.RoleModerator: {"users:read", "analytics:read", "reports:export", "inventory:read"},
	users.RoleManager:   {"analytics:read", "reports:export", "inventory:read"},
	users.RoleUser:      {"analytics:read"},
}

// permissionsOf returns the effective permissions of u.
func permissionsOf(u *users.User) []string {
	if len(u.Permissions) > 0 {
		return u.Permissions
	}
	return DefaultPermissions[u.Role]
}
