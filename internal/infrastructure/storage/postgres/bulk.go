package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
)

// CopyRecords bulk-loads rows into table with the COPY protocol. Columns
// come from the "db" tags of T. It must run inside RunInTransaction.
func CopyRecords[T any](ctx context.Context, m *TxManager, table string, rows []T) (int64, error) {
	t := m.GetTx(ctx)
	if t == nil {
		return 0, fmt.Errorf("copy into %s requires a transaction", table)
	}
	if len(rows) == 0 {
		return 0, nil
	}

	n, err := t.CopyFrom(ctx, pgx.Identifier{table}, Columns[T](),
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			return Values(rows[i]), nil
		}))
	if err != nil {
		return 0, fmt.Errorf("copy into %s: %w", table, err)
	}
	return n, nil
}

// Truncate empties tables in one statement.
func Truncate(ctx context.Context, m *TxManager, tables ...string) error {
	if len(tables) == 0 {
		return nil
	}
	ids := make([]string, len(tables))
	for i, name := range tables {
		ids[i] = pgx.Identifier{name}.Sanitize()
	}

	sql := "TRUNCATE " + strings.Join(ids, ", ")
	if _, err := m.GetQuerier(ctx).Exec(ctx, sql); err != nil {
		return fmt.Errorf("truncate: %w", err)
	}
	return nil
}
