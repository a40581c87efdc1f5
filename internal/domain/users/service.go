package users

import (
	"context"
	"fmt"
	"time"

	"adminsuite/internal/core/id"
	"adminsuite/internal/core/tx"
	"adminsuite/internal/core/types"
	"adminsuite/internal/domain/audit"
	"adminsuite/internal/domain/table"
)

// PasswordHasher turns a plain password into its stored hash.
type PasswordHasher func(password string) (string, error)

// Service serves the users table and account management.
type Service struct {
	repo      Store
	txManager tx.ReadOnlyManager
	table     *table.Table[User]
	hash      PasswordHasher
	audit     audit.Log
	now       func() time.Time
}

// NewService creates a users service. Account writes need a password hasher;
// see WithPasswordHasher.
func NewService(repo Store, txManager tx.ReadOnlyManager) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
		table:     table.New(Schema),
		now:       time.Now,
	}
}

// WithPasswordHasher sets the hasher used by Create and Update.
func (s *Service) WithPasswordHasher(h PasswordHasher) *Service {
	s.hash = h
	return s
}

// WithAuditLog records every account write in l, inside the write's
// transaction.
func (s *Service) WithAuditLog(l audit.Log) *Service {
	s.audit = l
	return s
}

// Table returns the engine bound to the user schema.
func (s *Service) Table() *table.Table[User] {
	return s.table
}

// All loads every user inside a read-only transaction.
func (s *Service) All(ctx context.Context, r types.DateRange) ([]User, error) {
	var users []User
	err := s.txManager.ReadOnly(ctx, func(ctx context.Context) error {
		var err error
		users, err = s.repo.List(ctx, r)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// List returns one page of users matching q.
func (s *Service) List(ctx context.Context, q table.Query) (table.Page[User], error) {
	if err := s.table.Validate(q.Filter, q.Sort); err != nil {
		return table.Page[User]{}, err
	}
	all, err := s.All(ctx, types.DateRange{})
	if err != nil {
		return table.Page[User]{}, err
	}
	return s.table.Query(all, q), nil
}

// Get returns one user.
func (s *Service) Get(ctx context.Context, userID id.ID) (*User, error) {
	var u *User
	err := s.txManager.ReadOnly(ctx, func(ctx context.Context) error {
		var err error
		u, err = s.repo.GetByID(ctx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}
