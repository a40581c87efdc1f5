package sales

import (
	"context"

	"adminsuite/internal/core/types"
)

// Repository reads sales and customer metrics.
type Repository interface {
	// ListSales returns sales rows dated within r, oldest first.
	// An empty channel matches every channel.
	ListSales(ctx context.Context, r types.DateRange, channel string) ([]Metric, error)

	// ListCustomers returns customer snapshots dated within r, oldest first.
	ListCustomers(ctx context.Context, r types.DateRange) ([]CustomerMetric, error)
}
