package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/klauspost/compress/zstd"

	"adminsuite/internal/domain/audit"
)

// DefaultCompressThreshold is the change-set size from which entries are
// stored zstd-compressed instead of as JSONB.
const DefaultCompressThreshold = 4 << 10

// auditRow is one audit_log row. Exactly one of Changes and ChangesZstd is set.
type auditRow struct {
	ID          int64     `db:"id"`
	EntityType  string    `db:"entity_type"`
	EntityID    string    `db:"entity_id"`
	Action      string    `db:"action"`
	UserID      string    `db:"user_id"`
	Changes     []byte    `db:"changes"`
	ChangesZstd []byte    `db:"changes_zstd"`
	CreatedAt   time.Time `db:"created_at"`
}

var auditColumns = Columns[auditRow]()

// AuditLog implements audit.Log on the audit_log table. Entries join the
// transaction carried by the context.
type AuditLog struct {
	txManager *TxManager
	builder   squirrel.StatementBuilderType
	encoder   *zstd.Encoder
	decoder   *zstd.Decoder
	threshold int
}

var _ audit.Log = (*AuditLog)(nil)

// NewAuditLog creates an audit log with DefaultCompressThreshold.
func NewAuditLog(txManager *TxManager) (*AuditLog, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	return &AuditLog{
		txManager: txManager,
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		encoder:   encoder,
		decoder:   decoder,
		threshold: DefaultCompressThreshold,
	}, nil
}

// toRow packs e, compressing change sets at or above the threshold.
func (l *AuditLog) toRow(e audit.Entry) auditRow {
	row := auditRow{
		EntityType: e.EntityType,
		EntityID:   e.EntityID,
		Action:     string(e.Action),
		UserID:     e.UserID,
		CreatedAt:  e.CreatedAt,
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	if len(e.Changes) >= l.threshold {
		row.ChangesZstd = l.encoder.EncodeAll(e.Changes, nil)
	} else {
		row.Changes = e.Changes
	}
	return row
}

func (l *AuditLog) fromRow(row auditRow) (audit.Entry, error) {
	e := audit.Entry{
		ID:         row.ID,
		EntityType: row.EntityType,
		EntityID:   row.EntityID,
		Action:     audit.Action(row.Action),
		UserID:     row.UserID,
		Changes:    row.Changes,
		CreatedAt:  row.CreatedAt,
	}
	if row.ChangesZstd != nil {
		plain, err := l.decoder.DecodeAll(row.ChangesZstd, nil)
		if err != nil {
			return audit.Entry{}, fmt.Errorf("decompress audit entry %d: %w", row.ID, err)
		}
		e.Changes = json.RawMessage(plain)
	}
	return e, nil
}

func (l *AuditLog) insertQuery(row auditRow) squirrel.InsertBuilder {
	cols := Omit(auditColumns, "id")
	return l.builder.Insert(TableAuditLog).
		Columns(cols...).
		Values(row.EntityType, row.EntityID, row.Action, row.UserID, row.Changes, row.ChangesZstd, row.CreatedAt)
}

// Record appends e.
func (l *AuditLog) Record(ctx context.Context, e audit.Entry) error {
	sql, args, err := l.insertQuery(l.toRow(e)).ToSql()
	if err != nil {
		return fmt.Errorf("build audit insert: %w", err)
	}
	if _, err := l.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("record audit entry: %w", err)
	}
	return nil
}

func (l *AuditLog) historyQuery(entityType, entityID string, limit int) squirrel.SelectBuilder {
	return l.builder.Select(auditColumns...).
		From(TableAuditLog).
		Where(squirrel.Eq{"entity_type": entityType, "entity_id": entityID}).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit))
}

// History returns up to limit entries of one entity, newest first.
func (l *AuditLog) History(ctx context.Context, entityType, entityID string, limit int) ([]audit.Entry, error) {
	sql, args, err := l.historyQuery(entityType, entityID, limit).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build audit query: %w", err)
	}

	var rows []auditRow
	if err := pgxscan.Select(ctx, l.txManager.GetQuerier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("load audit history: %w", err)
	}

	out := make([]audit.Entry, 0, len(rows))
	for _, row := range rows {
		e, err := l.fromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}
