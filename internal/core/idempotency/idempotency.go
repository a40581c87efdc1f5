// Package idempotency defines replay protection for mutating requests. A
// client sends a key with a write; the first success is stored and later
// requests with the same key get the stored response instead of a second
// write.
package idempotency

import (
	"context"
	"net/http"
	"time"
)

// DefaultTTL is how long a completed response stays replayable.
const DefaultTTL = 24 * time.Hour

// StaleAfter is how long a pending key blocks retries before it is
// considered abandoned and may be reclaimed.
const StaleAfter = time.Minute

// Request identifies one keyed write.
type Request struct {
	Key       string
	UserID    string // empty for anonymous routes such as sign-up
	Operation string // method and route pattern, e.g. "POST /api/v1/users"
	Hash      string // hex SHA-256 of the request body
}

// Replay is a stored response.
type Replay struct {
	Status      int
	ContentType string
	Body        []byte
}

// Store keeps keys and their responses.
type Store interface {
	// Acquire claims req.Key. It returns (nil, nil) when the caller should
	// run the write, a Replay when the key already completed, and an
	// apperror when the key is in flight or belongs to a different request.
	Acquire(ctx context.Context, req Request) (*Replay, error)

	// Complete stores the response of a successful write.
	Complete(ctx context.Context, key string, r Replay) error

	// Release forgets a pending key so the client may retry.
	Release(ctx context.Context, key string) error
}

// Normalize fills defaults for rows stored without a status or type.
func (r Replay) Normalize() Replay {
	if r.Status == 0 {
		r.Status = http.StatusOK
	}
	if r.ContentType == "" {
		r.ContentType = "application/json; charset=utf-8"
	}
	return r
}
