package inventory

import (
	"context"
	"fmt"

	"adminsuite/internal/core/tx"
	"adminsuite/internal/domain/table"
)

// Service serves the inventory table.
type Service struct {
	repo      Repository
	txManager tx.ReadOnlyManager
	table     *table.Table[Item]
}

// NewService creates an inventory service.
func NewService(repo Repository, txManager tx.ReadOnlyManager) *Service {
	return &Service{repo: repo, txManager: txManager, table: table.New(Schema)}
}

// List returns one page of items matching q, restricted to category when set.
func (s *Service) List(ctx context.Context, category string, q table.Query) (table.Page[Item], error) {
	if err := s.table.Validate(q.Filter, q.Sort); err != nil {
		return table.Page[Item]{}, err
	}

	var items []Item
	err := s.txManager.ReadOnly(ctx, func(ctx context.Context) error {
		var err error
		items, err = s.repo.List(ctx, category)
		return err
	})
	if err != nil {
		return table.Page[Item]{}, fmt.Errorf("list inventory: %w", err)
	}
	return s.table.Query(items, q), nil
}
