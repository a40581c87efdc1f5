package users

import (
	"context"
	"time"

	"adminsuite/internal/core/id"
	"adminsuite/internal/core/types"
)

// Repository defines user storage operations.
type Repository interface {
	// List returns users created within r, newest first. A zero range returns all users.
	List(ctx context.Context, r types.DateRange) ([]User, error)

	// GetByID returns a user or an apperror not-found.
	GetByID(ctx context.Context, userID id.ID) (*User, error)

	// GetByEmail returns a user or an apperror not-found.
	GetByEmail(ctx context.Context, email string) (*User, error)

	// UpdateLastLogin stamps a successful login.
	UpdateLastLogin(ctx context.Context, userID id.ID, at time.Time) error
}

// Writer persists account changes.
type Writer interface {
	// Create inserts u. A taken email is an apperror conflict.
	Create(ctx context.Context, u *User) error

	// Update overwrites the mutable fields of u. Unknown IDs are not-found.
	Update(ctx context.Context, u *User) error

	// Delete removes a user. Unknown IDs are not-found.
	Delete(ctx context.Context, userID id.ID) error
}

// Store is the full user storage used by Service.
type Store interface {
	Repository
	Writer
}
