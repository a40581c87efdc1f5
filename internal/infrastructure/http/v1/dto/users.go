package dto

import (
	"adminsuite/internal/domain/audit"
	"adminsuite/internal/domain/auth"
	"adminsuite/internal/domain/users"
)

// CreateUserRequest for POST /users.
type CreateUserRequest struct {
	Email       string   `json:"email" binding:"required,email"`
	Password    string   `json:"password" binding:"required,min=6"`
	FirstName   string   `json:"firstName" binding:"required"`
	LastName    string   `json:"lastName" binding:"required"`
	Phone       *string  `json:"phone"`
	Address     *string  `json:"address"`
	Role        string   `json:"role" binding:"omitempty,oneof=ADMIN MODERATOR MANAGER USER"`
	Permissions []string `json:"permissions"`
	IsActive    *bool    `json:"isActive"`
}

// ToInput converts to the domain input.
func (r *CreateUserRequest) ToInput() users.CreateInput {
	return users.CreateInput{
		Email:       r.Email,
		Password:    r.Password,
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Phone:       r.Phone,
		Address:     r.Address,
		Role:        users.Role(r.Role),
		Permissions: r.Permissions,
		IsActive:    r.IsActive,
	}
}

// UpdateUserRequest for PUT /users/:id. Omitted fields are unchanged.
type UpdateUserRequest struct {
	Email       *string  `json:"email" binding:"omitempty,email"`
	Password    *string  `json:"password" binding:"omitempty,min=6"`
	FirstName   *string  `json:"firstName" binding:"omitempty,min=1"`
	LastName    *string  `json:"lastName" binding:"omitempty,min=1"`
	Phone       *string  `json:"phone"`
	Address     *string  `json:"address"`
	Role        *string  `json:"role" binding:"omitempty,oneof=ADMIN MODERATOR MANAGER USER"`
	Permissions []string `json:"permissions"`
	IsActive    *bool    `json:"isActive"`
}

// ToInput converts to the domain input.
func (r *UpdateUserRequest) ToInput() users.UpdateInput {
	in := users.UpdateInput{
		Email:       r.Email,
		Password:    r.Password,
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Phone:       r.Phone,
		Address:     r.Address,
		Permissions: r.Permissions,
		IsActive:    r.IsActive,
	}
	if r.Role != nil {
		role := users.Role(*r.Role)
		in.Role = &role
	}
	return in
}

// RegisterRequest for POST /auth/register. The role is always USER.
type RegisterRequest struct {
	Email     string  `json:"email" binding:"required,email"`
	Password  string  `json:"password" binding:"required,min=6"`
	FirstName string  `json:"firstName" binding:"required"`
	LastName  string  `json:"lastName" binding:"required"`
	Phone     *string `json:"phone"`
	Address   *string `json:"address"`
}

// ToRegistration converts to the domain sign-up.
func (r *RegisterRequest) ToRegistration() auth.Registration {
	return auth.Registration{
		Email:     r.Email,
		Password:  r.Password,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Phone:     r.Phone,
		Address:   r.Address,
	}
}

// HistoryRequest for GET /users/:id/history.
type HistoryRequest struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=500"`
}

// HistoryResponse lists audit entries, newest first.
type HistoryResponse struct {
	Items []audit.Entry `json:"items"`
}

// MessageResponse carries a plain confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}
