package user_repo

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adminsuite/internal/core/apperror"
	"adminsuite/internal/core/id"
	"adminsuite/internal/core/types"
	"adminsuite/internal/domain/users"
)

func TestListQuery(t *testing.T) {
	r := NewUserRepo(nil)

	sql, args, err := r.listQuery(types.DateRange{}).ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "FROM users ORDER BY created_at DESC, id")
	assert.NotContains(t, sql, "WHERE")
	assert.Empty(t, args)

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)
	sql, args, err = r.listQuery(types.DateRange{From: from, To: to}).ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "WHERE created_at >= $1 AND created_at <= $2")
	assert.Equal(t, []any{from, to}, args)
}

func TestSelectColumns(t *testing.T) {
	assert.Equal(t, []string{
		"id", "email", "password_hash", "first_name", "last_name", "phone", "address",
		"role", "permissions", "is_active", "created_at", "updated_at", "last_login",
	}, userColumns)
}

func TestLastLoginQuery(t *testing.T) {
	uid := id.New()
	at := time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)

	sql, args, err := NewUserRepo(nil).lastLoginQuery(uid, at).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "UPDATE users SET last_login = $1, updated_at = $2 WHERE id = $3", sql)
	assert.Equal(t, []any{at, at, uid}, args)
}

func TestInsertQuery(t *testing.T) {
	u := &users.User{ID: id.New(), Email: "a@b.io", Role: users.RoleUser}

	sql, args, err := NewUserRepo(nil).insertQuery(u).ToSql()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(sql, "INSERT INTO users (id,email,password_hash,"), sql)
	assert.Contains(t, sql, "VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)")
	require.Len(t, args, len(userColumns))
	assert.Equal(t, []string{}, args[8], "permissions must not be NULL")
	assert.Nil(t, u.Permissions, "caller's user is left untouched")
}

func TestUpdateQuery(t *testing.T) {
	at := time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)
	u := &users.User{ID: id.New(), Email: "a@b.io", Role: users.RoleManager, Permissions: []string{"x"}, IsActive: true, UpdatedAt: at}

	sql, args, err := NewUserRepo(nil).updateQuery(u).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "UPDATE users SET address = $1, email = $2, first_name = $3, is_active = $4, last_name = $5, "+
		"password_hash = $6, permissions = $7, phone = $8, role = $9, updated_at = $10 WHERE id = $11", sql)
	assert.Equal(t, "MANAGER", args[8])
	assert.Equal(t, u.ID, args[10])
	assert.NotContains(t, sql, "created_at")
	assert.NotContains(t, sql, "last_login")
}

func TestDeleteQuery(t *testing.T) {
	uid := id.New()
	sql, args, err := NewUserRepo(nil).deleteQuery(uid).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM users WHERE id = $1", sql)
	assert.Equal(t, []any{uid}, args)
}

func TestWriteError(t *testing.T) {
	u := &users.User{Email: "a@b.io"}

	err := writeError("insert user", u, &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})
	assert.True(t, apperror.IsConflict(err))

	boom := errors.New("conn reset")
	err = writeError("insert user", u, boom)
	assert.ErrorIs(t, err, boom)
	assert.False(t, apperror.IsConflict(err))
}
