package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"adminsuite/internal/core/apperror"
	"adminsuite/internal/core/idempotency"
)

// Key states. Failed writes are released rather than stored, so a key is
// either being processed or holds a successful response.
const (
	keyPending = "pending"
	keyDone    = "done"
)

type idempotencyRow struct {
	Key            string    `db:"idempotency_key"`
	UserID         string    `db:"user_id"`
	Operation      string    `db:"operation"`
	RequestHash    string    `db:"request_hash"`
	Status         string    `db:"status"`
	ResponseStatus int       `db:"response_status"`
	ContentType    string    `db:"content_type"`
	Response       []byte    `db:"response"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
	ExpiresAt      time.Time `db:"expires_at"`
}

var idempotencyColumns = Columns[idempotencyRow]()

// IdempotencyStore implements idempotency.Store on the idempotency_keys table.
type IdempotencyStore struct {
	txManager *TxManager
	builder   squirrel.StatementBuilderType
	ttl       time.Duration
	now       func() time.Time
}

var _ idempotency.Store = (*IdempotencyStore)(nil)

// NewIdempotencyStore creates a store whose completed keys live for ttl.
func NewIdempotencyStore(txManager *TxManager, ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = idempotency.DefaultTTL
	}
	return &IdempotencyStore{
		txManager: txManager,
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		ttl:       ttl,
		now:       time.Now,
	}
}

func (s *IdempotencyStore) claimQuery(req idempotency.Request, now time.Time) squirrel.InsertBuilder {
	return s.builder.Insert(TableIdempotencyKeys).
		Columns("idempotency_key", "user_id", "operation", "request_hash", "status", "created_at", "updated_at", "expires_at").
		Values(req.Key, req.UserID, req.Operation, req.Hash, keyPending, now, now, now.Add(s.ttl)).
		Suffix("ON CONFLICT (idempotency_key) DO NOTHING")
}

func (s *IdempotencyStore) lockQuery(key string) squirrel.SelectBuilder {
	return s.builder.Select(idempotencyColumns...).
		From(TableIdempotencyKeys).
		Where(squirrel.Eq{"idempotency_key": key}).
		Suffix("FOR UPDATE")
}

// Acquire claims req.Key, or explains why the caller must not run the write.
func (s *IdempotencyStore) Acquire(ctx context.Context, req idempotency.Request) (*idempotency.Replay, error) {
	var replay *idempotency.Replay
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		now := s.now().UTC()
		q := s.txManager.GetQuerier(ctx)

		sql, args, err := s.claimQuery(req, now).ToSql()
		if err != nil {
			return fmt.Errorf("build claim: %w", err)
		}
		tag, err := q.Exec(ctx, sql, args...)
		if err != nil {
			return fmt.Errorf("claim idempotency key: %w", err)
		}
		if tag.RowsAffected() == 1 {
			return nil
		}

		sql, args, err = s.lockQuery(req.Key).ToSql()
		if err != nil {
			return fmt.Errorf("build lock: %w", err)
		}
		var row idempotencyRow
		if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
			return fmt.Errorf("load idempotency key: %w", err)
		}

		replay, err = s.resolve(row, req, now)
		if err != nil || replay != nil {
			return err
		}
		return s.reclaim(ctx, req, now)
	})
	if err != nil {
		return nil, err
	}
	return replay, nil
}

// resolve decides what an existing row means for req. A nil replay and nil
// error tell Acquire to reclaim the key.
func (s *IdempotencyStore) resolve(row idempotencyRow, req idempotency.Request, now time.Time) (*idempotency.Replay, error) {
	if now.After(row.ExpiresAt) {
		return nil, nil
	}
	if row.UserID != req.UserID || row.Operation != req.Operation || row.RequestHash != req.Hash {
		return nil, apperror.NewIdempotencyMismatch(req.Key).
			WithDetail("operation", row.Operation)
	}
	if row.Status == keyDone {
		r := idempotency.Replay{Status: row.ResponseStatus, ContentType: row.ContentType, Body: row.Response}.Normalize()
		return &r, nil
	}
	if now.Sub(row.UpdatedAt) > idempotency.StaleAfter {
		return nil, nil
	}
	return nil, apperror.NewIdempotencyInFlight(req.Key)
}

func (s *IdempotencyStore) reclaimQuery(req idempotency.Request, now time.Time) squirrel.UpdateBuilder {
	return s.builder.Update(TableIdempotencyKeys).
		Set("user_id", req.UserID).
		Set("operation", req.Operation).
		Set("request_hash", req.Hash).
		Set("status", keyPending).
		Set("response_status", 0).
		Set("content_type", "").
		Set("response", nil).
		Set("updated_at", now).
		Set("expires_at", now.Add(s.ttl)).
		Where(squirrel.Eq{"idempotency_key": req.Key})
}

func (s *IdempotencyStore) reclaim(ctx context.Context, req idempotency.Request, now time.Time) error {
	sql, args, err := s.reclaimQuery(req, now).ToSql()
	if err != nil {
		return fmt.Errorf("build reclaim: %w", err)
	}
	if _, err := s.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("reclaim idempotency key: %w", err)
	}
	return nil
}

func (s *IdempotencyStore) completeQuery(key string, r idempotency.Replay, now time.Time) squirrel.UpdateBuilder {
	return s.builder.Update(TableIdempotencyKeys).
		Set("status", keyDone).
		Set("response_status", r.Status).
		Set("content_type", r.ContentType).
		Set("response", r.Body).
		Set("updated_at", now).
		Where(squirrel.Eq{"idempotency_key": key, "status": keyPending})
}

// Complete stores the response of a successful write.
func (s *IdempotencyStore) Complete(ctx context.Context, key string, r idempotency.Replay) error {
	sql, args, err := s.completeQuery(key, r, s.now().UTC()).ToSql()
	if err != nil {
		return fmt.Errorf("build complete: %w", err)
	}
	if _, err := s.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("complete idempotency key: %w", err)
	}
	return nil
}

// Release drops a pending key.
func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	sql, args, err := s.builder.Delete(TableIdempotencyKeys).
		Where(squirrel.Eq{"idempotency_key": key, "status": keyPending}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build release: %w", err)
	}
	if _, err := s.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("release idempotency key: %w", err)
	}
	return nil
}

// CleanupExpired deletes keys past their expiry and returns how many went.
func (s *IdempotencyStore) CleanupExpired(ctx context.Context) (int64, error) {
	sql, args, err := s.builder.Delete(TableIdempotencyKeys).
		Where(squirrel.Lt{"expires_at": s.now().UTC()}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build cleanup: %w", err)
	}
	tag, err := s.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("cleanup idempotency keys: %w", err)
	}
	return tag.RowsAffected(), nil
}
