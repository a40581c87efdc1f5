// Package user_repo provides the PostgreSQL implementation of users.Store.
package user_repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgconn"

	"adminsuite/internal/core/apperror"
	"adminsuite/internal/core/id"
	"adminsuite/internal/core/types"
	"adminsuite/internal/domain/users"
	"adminsuite/internal/infrastructure/storage/postgres"
)

var userColumns = postgres.Columns[users.User]()

// UserRepo implements users.Store.
type UserRepo struct {
	txManager *postgres.TxManager
	builder   squirrel.StatementBuilderType
}

// NewUserRepo creates a new user repository.
func NewUserRepo(txManager *postgres.TxManager) *UserRepo {
	return &UserRepo{
		txManager: txManager,
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *UserRepo) baseSelect() squirrel.SelectBuilder {
	return r.builder.Select(userColumns...).From(postgres.TableUsers)
}

func (r *UserRepo) listQuery(dr types.DateRange) squirrel.SelectBuilder {
	q := r.baseSelect()
	if !dr.From.IsZero() {
		q = q.Where(squirrel.GtOrEq{"created_at": dr.From})
	}
	if !dr.To.IsZero() {
		q = q.Where(squirrel.LtOrEq{"created_at": dr.To})
	}
	return q.OrderBy("created_at DESC", "id")
}

// List returns users created within dr, newest first.
func (r *UserRepo) List(ctx context.Context, dr types.DateRange) ([]users.User, error) {
	sql, args, err := r.listQuery(dr).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var out []users.User
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &out, sql, args...); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return out, nil
}

// GetByID retrieves a user by ID.
func (r *UserRepo) GetByID(ctx context.Context, userID id.ID) (*users.User, error) {
	return r.getOne(ctx, squirrel.Eq{"id": userID}, userID.String())
}

// GetByEmail retrieves a user by email (case-insensitive).
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*users.User, error) {
	return r.getOne(ctx, squirrel.Expr("lower(email) = lower(?)", email), email)
}

func (r *UserRepo) getOne(ctx context.Context, where squirrel.Sqlizer, key string) (*users.User, error) {
	sql, args, err := r.baseSelect().Where(where).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var u users.User
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &u, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("user", key)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

func (r *UserRepo) lastLoginQuery(userID id.ID, at time.Time) squirrel.UpdateBuilder {
	return r.builder.Update(postgres.TableUsers).
		Set("last_login", at).
		Set("updated_at", at).
		Where(squirrel.Eq{"id": userID})
}

// UpdateLastLogin stamps a successful login.
func (r *UserRepo) UpdateLastLogin(ctx context.Context, userID id.ID, at time.Time) error {
	sql, args, err := r.lastLoginQuery(userID, at).ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	tag, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update last login: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("user", userID.String())
	}
	return nil
}

func (r *UserRepo) insertQuery(u *users.User) squirrel.InsertBuilder {
	return r.builder.Insert(postgres.TableUsers).
		Columns(userColumns...).
		Values(postgres.Values(withPermissions(u))...)
}

// Create inserts a user.
func (r *UserRepo) Create(ctx context.Context, u *users.User) error {
	sql, args, err := r.insertQuery(u).ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return writeError("insert user", u, err)
	}
	return nil
}

func (r *UserRepo) updateQuery(u *users.User) squirrel.UpdateBuilder {
	u = withPermissions(u)
	return r.builder.Update(postgres.TableUsers).
		SetMap(map[string]any{
			"email":         u.Email,
			"password_hash": u.PasswordHash,
			"first_name":    u.FirstName,
			"last_name":     u.LastName,
			"phone":         u.Phone,
			"address":       u.Address,
			"role":          string(u.Role),
			"permissions":   u.Permissions,
			"is_active":     u.IsActive,
			"updated_at":    u.UpdatedAt,
		}).
		Where(squirrel.Eq{"id": u.ID})
}

// Update overwrites the mutable columns of u.
func (r *UserRepo) Update(ctx context.Context, u *users.User) error {
	sql, args, err := r.updateQuery(u).ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	tag, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return writeError("update user", u, err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("user", u.ID.String())
	}
	return nil
}

func (r *UserRepo) deleteQuery(userID id.ID) squirrel.DeleteBuilder {
	return r.builder.Delete(postgres.TableUsers).Where(squirrel.Eq{"id": userID})
}

// Delete removes a user.
func (r *UserRepo) Delete(ctx context.Context, userID id.ID) error {
	sql, args, err := r.deleteQuery(userID).ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	tag, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("user", userID.String())
	}
	return nil
}

// writeError maps the unique email constraint to a conflict.
func writeError(op string, u *users.User, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return apperror.NewDuplicate("user", "email", u.Email).WithCause(err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

const uniqueViolation = "23505"

// withPermissions returns u with a non-nil permissions slice; the column
// is NOT NULL.
func withPermissions(u *users.User) *users.User {
	if u.Permissions != nil {
		return u
	}
	c := *u
	c.Permissions = []string{}
	return &c
}

var _ users.Store = (*UserRepo)(nil)
