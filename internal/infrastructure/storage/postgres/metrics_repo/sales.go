// Package metrics_repo provides PostgreSQL readers for sales, customer and
// inventory metrics.
package metrics_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"adminsuite/internal/core/types"
	"adminsuite/internal/domain/sales"
	"adminsuite/internal/infrastructure/storage/postgres"
)

var (
	salesColumns    = postgres.Columns[sales.Metric]()
	customerColumns = postgres.Columns[sales.CustomerMetric]()
)

// SalesRepo implements sales.Repository.
type SalesRepo struct {
	txManager *postgres.TxManager
	builder   squirrel.StatementBuilderType
}

// NewSalesRepo creates a new sales metrics repository.
func NewSalesRepo(txManager *postgres.TxManager) *SalesRepo {
	return &SalesRepo{
		txManager: txManager,
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// dateBounds adds inclusive bounds on the date column; zero bounds are open.
func dateBounds(q squirrel.SelectBuilder, dr types.DateRange) squirrel.SelectBuilder {
	if !dr.From.IsZero() {
		q = q.Where(squirrel.GtOrEq{"date": dr.From})
	}
	if !dr.To.IsZero() {
		q = q.Where(squirrel.LtOrEq{"date": dr.To})
	}
	return q
}

func (r *SalesRepo) salesQuery(dr types.DateRange, channel string) squirrel.SelectBuilder {
	q := dateBounds(r.builder.Select(salesColumns...).From(postgres.TableSalesMetrics), dr)
	if channel != "" {
		q = q.Where(squirrel.Eq{"channel": channel})
	}
	return q.OrderBy("date", "channel")
}

func (r *SalesRepo) customersQuery(dr types.DateRange) squirrel.SelectBuilder {
	return dateBounds(r.builder.Select(customerColumns...).From(postgres.TableCustomerMetrics), dr).
		OrderBy("date")
}

// ListSales returns sales rows dated within dr, oldest first.
func (r *SalesRepo) ListSales(ctx context.Context, dr types.DateRange, channel string) ([]sales.Metric, error) {
	var out []sales.Metric
	if err := r.selectAll(ctx, r.salesQuery(dr, channel), &out); err != nil {
		return nil, fmt.Errorf("list sales metrics: %w", err)
	}
	return out, nil
}

// ListCustomers returns customer snapshots dated within dr, oldest first.
func (r *SalesRepo) ListCustomers(ctx context.Context, dr types.DateRange) ([]sales.CustomerMetric, error) {
	var out []sales.CustomerMetric
	if err := r.selectAll(ctx, r.customersQuery(dr), &out); err != nil {
		return nil, fmt.Errorf("list customer metrics: %w", err)
	}
	return out, nil
}

func (r *SalesRepo) selectAll(ctx context.Context, q squirrel.SelectBuilder, dst any) error {
	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	return pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), dst, sql, args...)
}

var _ sales.Repository = (*SalesRepo)(nil)
