package dto

import (
	"time"

	"adminsuite/internal/domain/auth"
	"adminsuite/internal/domain/users"
)

// LoginRequest for user login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ToCredentials converts to domain credentials.
func (r *LoginRequest) ToCredentials() auth.Credentials {
	return auth.Credentials{Email: r.Email, Password: r.Password}
}

// TokenResponse represents an access token.
type TokenResponse struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
	TokenType   string    `json:"tokenType"`
}

// UserResponse represents a user in API responses. The password hash is
// never part of it.
type UserResponse struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	FullName    string     `json:"fullName"`
	Phone       *string    `json:"phone,omitempty"`
	Address     *string    `json:"address,omitempty"`
	Role        string     `json:"role"`
	Permissions []string   `json:"permissions"`
	IsActive    bool       `json:"isActive"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	LastLogin   *time.Time `json:"lastLogin"`
}

// FromUser creates response from domain user.
func FromUser(u users.User) UserResponse {
	perms := u.Permissions
	if perms == nil {
		perms = []string{}
	}
	return UserResponse{
		ID:          u.ID.String(),
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		FullName:    u.FullName(),
		Phone:       u.Phone,
		Address:     u.Address,
		Role:        string(u.Role),
		Permissions: perms,
		IsActive:    u.IsActive,
		Status:      u.Status(),
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
		LastLogin:   u.LastLogin,
	}
}

// LoginResponse includes the token and user info.
type LoginResponse struct {
	Token TokenResponse `json:"token"`
	User  UserResponse  `json:"user"`
}

// FromSession converts a login session.
func FromSession(s *auth.Session) LoginResponse {
	return LoginResponse{
		Token: TokenResponse{
			AccessToken: s.Token.AccessToken,
			ExpiresAt:   s.Token.ExpiresAt,
			TokenType:   s.Token.TokenType,
		},
		User: FromUser(*s.User),
	}
}

// UserListRequest adds the users table predicates.
type UserListRequest struct {
	ListRequest
	Role   string `form:"role"`
	Status string `form:"status" binding:"omitempty,oneof=active inactive"`
}

// InventoryListRequest adds the inventory table predicates.
type InventoryListRequest struct {
	ListRequest
	Category    string `form:"category"`
	StockStatus string `form:"stockStatus" binding:"omitempty,oneof=in-stock low-stock out-of-stock"`
}
