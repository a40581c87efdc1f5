package postgres

import (
	"context"
	_ "embed"
	"fmt"

	"adminsuite/pkg/logger"
)

//go:embed schema.sql
var schemaSQL string

// Table names.
const (
	TableUsers           = "users"
	TableSalesMetrics    = "sales_metrics"
	TableCustomerMetrics = "customer_metrics"
	TableInventoryItems  = "inventory_items"
	TableAuditLog        = "audit_log"
	TableIdempotencyKeys = "idempotency_keys"
)

// Schema returns the DDL applied by Migrate.
func Schema() string {
	return schemaSQL
}

// Migrate applies the embedded schema. Every statement is idempotent.
func Migrate(ctx context.Context, m *TxManager) error {
	err := m.RunInTransaction(ctx, func(ctx context.Context) error {
		_, err := m.GetQuerier(ctx).Exec(ctx, schemaSQL)
		return err
	})
	if err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	logger.Info(ctx, "schema applied")
	return nil
}
