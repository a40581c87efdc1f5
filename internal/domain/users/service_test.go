package users

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adminsuite/internal/core/apperror"
	"adminsuite/internal/core/id"
	"adminsuite/internal/core/tx"
	"adminsuite/internal/core/types"
	"adminsuite/internal/domain/export"
	"adminsuite/internal/domain/table"
)

type memRepo struct {
	users []User
	err   error
}

func (m *memRepo) List(_ context.Context, r types.DateRange) ([]User, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []User
	for _, u := range m.users {
		if r.Contains(u.CreatedAt) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *memRepo) GetByID(_ context.Context, userID id.ID) (*User, error) {
	for i := range m.users {
		if m.users[i].ID == userID {
			return &m.users[i], nil
		}
	}
	return nil, apperror.NewNotFound("user", userID.String())
}

func (m *memRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	for i := range m.users {
		if m.users[i].Email == email {
			return &m.users[i], nil
		}
	}
	return nil, apperror.NewNotFound("user", email)
}

func (m *memRepo) UpdateLastLogin(_ context.Context, userID id.ID, at time.Time) error {
	for i := range m.users {
		if m.users[i].ID == userID {
			m.users[i].LastLogin = &at
			return nil
		}
	}
	return apperror.NewNotFound("user", userID.String())
}

func (m *memRepo) Create(_ context.Context, u *User) error {
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return apperror.NewDuplicate("user", "email", u.Email)
		}
	}
	m.users = append(m.users, *u)
	return nil
}

func (m *memRepo) Update(_ context.Context, u *User) error {
	for i := range m.users {
		if m.users[i].ID == u.ID {
			m.users[i] = *u
			return nil
		}
	}
	return apperror.NewNotFound("user", u.ID.String())
}

func (m *memRepo) Delete(_ context.Context, userID id.ID) error {
	for i := range m.users {
		if m.users[i].ID == userID {
			m.users = append(m.users[:i], m.users[i+1:]...)
			return nil
		}
	}
	return apperror.NewNotFound("user", userID.String())
}

func strp(s string) *string { return &s }

func seed() []User {
	jan := func(d int) time.Time { return time.Date(2024, 1, d, 8, 0, 0, 0, time.UTC) }
	return []User{
		{ID: id.New(), Email: "ann@example.com", FirstName: "Ann", LastName: "Lee", Role: RoleAdmin, IsActive: true, CreatedAt: jan(1), Address: strp("New York, NY"), Permissions: []string{"read", "write"}},
		{ID: id.New(), Email: "bob@example.com", FirstName: "Bob", LastName: "Stone", Role: RoleUser, IsActive: false, CreatedAt: jan(2)},
		{ID: id.New(), Email: "cat@corp.io", FirstName: "Cat", LastName: "Moss", Role: RoleUser, IsActive: true, CreatedAt: jan(3)},
	}
}

func TestService_List(t *testing.T) {
	svc := NewService(&memRepo{users: seed()}, tx.Direct)

	page, err := svc.List(context.Background(), table.Query{
		Filter: table.FilterSpec{Match: []table.Predicate{{Field: "role", Value: "USER"}, {Field: "status", Value: "active"}}},
		Page:   table.PageSpec{Page: 1},
	})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Cat", page.Items[0].FirstName)
	assert.Equal(t, table.DefaultPageSize, page.Size)

	page, err = svc.List(context.Background(), table.Query{
		Filter: table.FilterSpec{Search: "EXAMPLE"},
		Sort:   table.SortSpec{Field: "createdAt", Desc: true},
		Page:   table.PageSpec{Page: 1, Size: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, page.TotalItems)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, "Bob", page.Items[0].FirstName)
}

func TestService_ListRejectsUnknownSort(t *testing.T) {
	svc := NewService(&memRepo{users: seed()}, tx.Direct)
	_, err := svc.List(context.Background(), table.Query{Sort: table.SortSpec{Field: "passwordHash"}})
	assert.True(t, apperror.IsValidation(err))
}

func TestService_ListPropagatesStorageErrors(t *testing.T) {
	boom := errors.New("connection reset")
	svc := NewService(&memRepo{err: boom}, tx.Direct)
	_, err := svc.List(context.Background(), table.Query{})
	assert.ErrorIs(t, err, boom)
}

func TestService_Get(t *testing.T) {
	users := seed()
	svc := NewService(&memRepo{users: users}, tx.Direct)

	u, err := svc.Get(context.Background(), users[1].ID)
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", u.Email)

	_, err = svc.Get(context.Background(), id.New())
	assert.True(t, apperror.IsNotFound(err))
}

func TestSchema_Export(t *testing.T) {
	u := seed()[0]
	out := export.ToCSV([]User{u}, Schema, export.Options{
		Fields:         []string{"firstName", "lastName", "address", "permissions", "isActive", "lastLogin"},
		IncludeHeaders: true,
	})
	assert.Equal(t, "First Name,Last Name,Address,Permissions,Is Active,Last Login\n"+
		`Ann,Lee,"New York, NY","read; write",Yes,Never`, out)

	assert.False(t, Schema.Has("passwordHash"))
	assert.Equal(t, "inactive", User{}.Status())
}
