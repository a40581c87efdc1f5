// Package id provides identifiers for stored records.
package id

import (
	"github.com/google/uuid"
)

// ID identifies users, metrics and inventory items.
type ID = uuid.UUID

// New returns a time-ordered UUIDv7, falling back to v4.
func New() ID {
	v, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return v
}

// Parse converts string to ID with validation.
func Parse(s string) (ID, error) {
	return uuid.Parse(s)
}

// MustParse converts string to ID and panics on error. Tests and seeds only.
func MustParse(s string) ID {
	return uuid.MustParse(s)
}
