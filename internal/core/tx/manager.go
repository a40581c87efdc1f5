// Package tx provides transaction management abstractions.
// Domain services depend on these interfaces; the pgx implementation lives
// in infrastructure/storage/postgres.
package tx

import (
	"context"
)

// Manager runs work inside a database transaction.
type Manager interface {
	// RunInTransaction executes fn within a transaction. An error from fn
	// rolls back; nested calls reuse the transaction carried by ctx.
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ReadOnlyManager adds read-only transactions used by report and analytics
// queries. A statement timeout applies.
type ReadOnlyManager interface {
	Manager

	// ReadOnly executes fn in a read-only transaction.
	ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Func adapts a plain function to Manager for tests and in-memory wiring.
type Func func(ctx context.Context, fn func(ctx context.Context) error) error

// RunInTransaction implements Manager.
func (f Func) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return f(ctx, fn)
}

// ReadOnly implements ReadOnlyManager.
func (f Func) ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return f(ctx, fn)
}

// Direct runs fn without a transaction.
var Direct ReadOnlyManager = Func(func(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
})
