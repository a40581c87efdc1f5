package metrics_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"adminsuite/internal/domain/inventory"
	"adminsuite/internal/infrastructure/storage/postgres"
)

var inventoryColumns = postgres.Columns[inventory.Item]()

// InventoryRepo implements inventory.Repository.
type InventoryRepo struct {
	txManager *postgres.TxManager
	builder   squirrel.StatementBuilderType
}

// NewInventoryRepo creates a new inventory repository.
func NewInventoryRepo(txManager *postgres.TxManager) *InventoryRepo {
	return &InventoryRepo{
		txManager: txManager,
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *InventoryRepo) listQuery(category string) squirrel.SelectBuilder {
	q := r.builder.Select(inventoryColumns...).From(postgres.TableInventoryItems)
	if category != "" {
		q = q.Where(squirrel.Eq{"category": category})
	}
	return q.OrderBy("sku")
}

// List returns items ordered by SKU.
func (r *InventoryRepo) List(ctx context.Context, category string) ([]inventory.Item, error) {
	sql, args, err := r.listQuery(category).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []inventory.Item
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	return items, nil
}

var _ inventory.Repository = (*InventoryRepo)(nil)
