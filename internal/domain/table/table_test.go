package table

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adminsuite/internal/core/apperror"
	"adminsuite/internal/core/record"
)

type person struct {
	ID        int
	Name      string
	Email     string
	Role      string
	Age       int
	Active    bool
	Joined    time.Time
	LastLogin *time.Time
}

var people = record.NewSchema(
	record.Field[person]{Key: "id", Kind: record.KindNumber, Get: func(p person) record.Value { return record.Int(p.ID) }},
	record.Field[person]{Key: "name", Kind: record.KindString, Get: func(p person) record.Value { return record.String(p.Name) }},
	record.Field[person]{Key: "email", Kind: record.KindString, Get: func(p person) record.Value { return record.String(p.Email) }},
	record.Field[person]{Key: "role", Kind: record.KindString, Get: func(p person) record.Value { return record.String(p.Role) }},
	record.Field[person]{Key: "age", Kind: record.KindNumber, Get: func(p person) record.Value { return record.Int(p.Age) }},
	record.Field[person]{Key: "active", Kind: record.KindBool, Get: func(p person) record.Value { return record.Bool(p.Active) }},
	record.Field[person]{Key: "joined", Kind: record.KindTime, Get: func(p person) record.Value { return record.Time(p.Joined) }},
	record.Field[person]{Key: "lastLogin", Kind: record.KindTime, Get: func(p person) record.Value { return record.TimePtr(p.LastLogin) }},
).WithSearchable("name", "email")

func date(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func fixtures() []person {
	return []person{
		{ID: 1, Name: "Alice", Email: "alice@example.com", Role: "ADMIN", Age: 34, Active: true, Joined: date(5)},
		{ID: 2, Name: "bob", Email: "bob@corp.io", Role: "USER", Age: 9, Active: false, Joined: date(1)},
		{ID: 3, Name: "Carol", Email: "carol@example.com", Role: "USER", Age: 34, Active: true, Joined: date(3)},
		{ID: 4, Name: "dave", Email: "dave@corp.io", Role: "MANAGER", Age: 100, Active: true, Joined: date(2)},
		{ID: 5, Name: "Eve", Email: "eve@example.com", Role: "USER", Age: 27, Active: false, Joined: date(4)},
	}
}

func ids(ps []person) []int {
	out := make([]int, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}

func TestFilter_Search(t *testing.T) {
	tbl := New(people)

	assert.Equal(t, []int{1, 3, 5}, ids(tbl.Filter(fixtures(), FilterSpec{Search: "EXAMPLE"})))
	assert.Equal(t, []int{2}, ids(tbl.Filter(fixtures(), FilterSpec{Search: "Bo"})))
	assert.Empty(t, tbl.Filter(fixtures(), FilterSpec{Search: "ADMIN"}), "role is not searchable")
	assert.Len(t, tbl.Filter(fixtures(), FilterSpec{}), 5)
}

func TestFilter_Predicates(t *testing.T) {
	tbl := New(people)

	got := tbl.Filter(fixtures(), FilterSpec{Match: []Predicate{
		{Field: "role", Value: "USER"},
		{Field: "active", Value: "true"},
	}})
	assert.Equal(t, []int{3}, ids(got))

	// Predicate order is irrelevant.
	swapped := tbl.Filter(fixtures(), FilterSpec{Match: []Predicate{
		{Field: "active", Value: "true"},
		{Field: "role", Value: "USER"},
	}})
	assert.Equal(t, ids(got), ids(swapped))

	// Empty values are no constraint; matching is exact and case-sensitive.
	assert.Len(t, tbl.Filter(fixtures(), FilterSpec{Match: []Predicate{{Field: "role", Value: ""}}}), 5)
	assert.Empty(t, tbl.Filter(fixtures(), FilterSpec{Match: []Predicate{{Field: "role", Value: "user"}}}))
	assert.Empty(t, tbl.Filter(fixtures(), FilterSpec{Match: []Predicate{{Field: "nope", Value: "x"}}}))
}

func TestFilter_SearchAndPredicate(t *testing.T) {
	tbl := New(people)
	got := tbl.Filter(fixtures(), FilterSpec{
		Search: "corp",
		Match:  []Predicate{{Field: "role", Value: "MANAGER"}},
	})
	assert.Equal(t, []int{4}, ids(got))
}

func TestFilter_Expression(t *testing.T) {
	tbl := New(people)

	got := tbl.Filter(fixtures(), FilterSpec{Expr: `age >= 30 && role != "ADMIN"`})
	assert.Equal(t, []int{3, 4}, ids(got))

	got = tbl.Filter(fixtures(), FilterSpec{Expr: `active && name.startsWith("A")`})
	assert.Equal(t, []int{1}, ids(got))

	assert.Empty(t, tbl.Filter(fixtures(), FilterSpec{Expr: `age >`}), "invalid expressions match nothing")
	assert.Empty(t, tbl.Filter(fixtures(), FilterSpec{Expr: `name`}), "non-boolean results match nothing")
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	tbl := New(people)
	in := fixtures()
	_ = tbl.Filter(in, FilterSpec{Search: "corp"})
	_ = tbl.Sort(in, SortSpec{Field: "name", Desc: true})
	assert.Equal(t, fixtures(), in)
}

func TestSort(t *testing.T) {
	tbl := New(people)

	tests := []struct {
		name string
		spec SortSpec
		want []int
	}{
		{"none keeps order", SortSpec{}, []int{1, 2, 3, 4, 5}},
		{"unknown keeps order", SortSpec{Field: "nope"}, []int{1, 2, 3, 4, 5}},
		{"numeric not lexical", SortSpec{Field: "age"}, []int{2, 5, 1, 3, 4}},
		{"numeric desc keeps ties stable", SortSpec{Field: "age", Desc: true}, []int{4, 1, 3, 5, 2}},
		{"collated text ignores case", SortSpec{Field: "name"}, []int{1, 2, 3, 4, 5}},
		{"chronological", SortSpec{Field: "joined"}, []int{2, 4, 3, 5, 1}},
		{"bool false first", SortSpec{Field: "active"}, []int{2, 5, 1, 3, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(tbl.Sort(fixtures(), tt.spec)))
		})
	}
}

func TestSort_NullsAsEmpty(t *testing.T) {
	tbl := New(people)
	login := date(9)
	in := []person{
		{ID: 1, LastLogin: &login},
		{ID: 2},
		{ID: 3},
	}
	assert.Equal(t, []int{2, 3, 1}, ids(tbl.Sort(in, SortSpec{Field: "lastLogin"})))
}

func TestPaginate(t *testing.T) {
	items := make([]int, 25)
	for i := range items {
		items[i] = i + 1
	}

	p := Paginate(items, PageSpec{Page: 3, Size: 10})
	assert.Equal(t, []int{21, 22, 23, 24, 25}, p.Items)
	assert.Equal(t, 25, p.TotalItems)
	assert.Equal(t, 3, p.TotalPages)
	assert.False(t, p.HasNext)
	assert.True(t, p.HasPrev)

	p = Paginate(items, PageSpec{Page: 1, Size: 0})
	assert.Equal(t, DefaultPageSize, p.Size)
	assert.Len(t, p.Items, 10)
	assert.True(t, p.HasNext)
	assert.False(t, p.HasPrev)
}

func TestPaginate_OutOfRange(t *testing.T) {
	items := []string{"a", "b", "c"}

	for _, page := range []int{-1, 0, 2, 50} {
		p := Paginate(items, PageSpec{Page: page, Size: 3})
		require.NotNil(t, p.Items)
		assert.Empty(t, p.Items)
		assert.Equal(t, 3, p.TotalItems)
		assert.Equal(t, 1, p.TotalPages)
		assert.False(t, p.HasNext, "page %d", page)
		assert.False(t, p.HasPrev, "page %d", page)
	}

	past := Paginate(items, PageSpec{Page: 99, Size: 2})
	assert.Empty(t, past.Items)
	assert.Equal(t, 2, past.TotalPages)
	assert.False(t, past.HasPrev)
	assert.False(t, past.HasNext)

	last := Paginate(items, PageSpec{Page: 2, Size: 2})
	assert.Equal(t, []string{"c"}, last.Items)
	assert.True(t, last.HasPrev)

	empty := Paginate([]string{}, PageSpec{Page: 1, Size: 10})
	assert.Empty(t, empty.Items)
	assert.Zero(t, empty.TotalPages)
}

func TestQuery_Deterministic(t *testing.T) {
	tbl := New(people)
	q := Query{
		Filter: FilterSpec{Search: "e"},
		Sort:   SortSpec{Field: "age", Desc: true},
		Page:   PageSpec{Page: 1, Size: 2},
	}

	first := tbl.Query(fixtures(), q)
	second := tbl.Query(fixtures(), q)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("query not deterministic (-first +second):\n%s", diff)
	}
	assert.Equal(t, []int{4, 1}, ids(first.Items))
	assert.Equal(t, 4, first.TotalItems)
	assert.Equal(t, 2, first.TotalPages)
}

func TestValidate(t *testing.T) {
	tbl := New(people)

	require.NoError(t, tbl.Validate(FilterSpec{Match: []Predicate{{Field: "role", Value: "USER"}}}, SortSpec{Field: "age"}))
	require.NoError(t, tbl.Validate(FilterSpec{Expr: `age > 10`}, SortSpec{}))

	err := tbl.Validate(FilterSpec{Match: []Predicate{{Field: "salary", Value: "1"}}}, SortSpec{Field: "height"})
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
	assert.Equal(t, []string{"salary", "height"}, appErr.Details["fields"])

	err = tbl.Validate(FilterSpec{Expr: `age >`}, SortSpec{})
	assert.True(t, apperror.IsValidation(err))
	err = tbl.Validate(FilterSpec{Expr: `salary > 3`}, SortSpec{})
	assert.True(t, apperror.IsValidation(err), "undeclared identifiers do not compile")
}
