package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adminsuite/internal/core/apperror"
	"adminsuite/internal/domain/reports"
	"adminsuite/internal/domain/table"
	"adminsuite/internal/domain/users"
)

func TestListRequest_ToQuery(t *testing.T) {
	q := ListRequest{Search: "ann", SortBy: "email", SortOrder: "desc", Limit: 25}.
		ToQuery(table.Predicate{Field: "role", Value: "ADMIN"})

	assert.Equal(t, table.Query{
		Filter: table.FilterSpec{Search: "ann", Match: []table.Predicate{{Field: "role", Value: "ADMIN"}}},
		Sort:   table.SortSpec{Field: "email", Desc: true},
		Page:   table.PageSpec{Page: 1, Size: 25},
	}, q)
}

func TestFromPage(t *testing.T) {
	resp := FromPage(table.Paginate([]int{1, 2, 3}, table.PageSpec{Page: 2, Size: 2}), func(i int) int { return i * 10 })
	assert.Equal(t, []int{30}, resp.Data)
	assert.Equal(t, PaginationResponse{Page: 2, Limit: 2, Total: 3, TotalPages: 2, HasPrev: true}, resp.Pagination)
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("endDate", "2024-01-03", true)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 3, 23, 59, 59, 999999999, time.UTC), *got)

	got, err = ParseDate("startDate", "2024-01-03T10:00:00Z", true)
	require.NoError(t, err)
	assert.Equal(t, 10, got.Hour())

	got, err = ParseDate("startDate", "", false)
	assert.NoError(t, err)
	assert.Nil(t, got)

	_, err = ParseDate("startDate", "03/01/2024", false)
	assert.True(t, apperror.IsValidation(err))
}

func TestExportRequest_ToDomain(t *testing.T) {
	no := false
	req := ExportRequest{
		Type:           "users",
		Fields:         "email, role,,",
		IncludeHeaders: &no,
		StartDate:      "2024-01-01",
		EndDate:        "2024-01-31",
		Match:          []string{"role:ADMIN", "status:"},
		SortBy:         "createdAt",
		SortOrder:      "desc",
	}
	got, err := req.ToDomain()
	require.NoError(t, err)

	assert.Equal(t, reports.TypeUsers, got.Type)
	assert.Equal(t, reports.FormatCSV, got.Format)
	assert.Equal(t, []string{"email", "role"}, got.Fields)
	assert.False(t, got.IncludeHeaders)
	assert.Equal(t, []table.Predicate{{Field: "role", Value: "ADMIN"}, {Field: "status", Value: ""}}, got.Filter.Match)
	assert.True(t, got.Sort.Desc)
	assert.Equal(t, 31, got.EndDate.Day())

	for _, bad := range []ExportRequest{
		{Type: "orders"},
		{Type: "users", Format: "xml"},
		{Type: "users", StartDate: "2024-02-01", EndDate: "2024-01-01"},
		{Type: "users", Match: []string{"role"}},
	} {
		_, err := bad.ToDomain()
		assert.True(t, apperror.IsValidation(err), "%+v", bad)
	}

	got, err = (&ExportRequest{Type: "inventory"}).ToDomain()
	require.NoError(t, err)
	assert.True(t, got.IncludeHeaders)
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, SplitList(""))
	assert.Equal(t, []string{"a", "b"}, SplitList(" a ,b,"))
}

func TestUpdateUserRequest_ToInput(t *testing.T) {
	role := "MANAGER"
	in := (&UpdateUserRequest{Role: &role}).ToInput()
	require.NotNil(t, in.Role)
	assert.Equal(t, users.RoleManager, *in.Role)
	assert.Nil(t, in.Email)
	assert.Nil(t, in.Permissions)

	assert.Nil(t, (&UpdateUserRequest{}).ToInput().Role)
}
