// Package table implements search, exact-match filtering, stable sorting and
// pagination over in-memory record collections.
//
// A Table is bound to an entity schema and reads records only through its
// typed field accessors. All operations are pure: they never mutate their
// input and never fail on degenerate input.
package table

import (
	"math"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"adminsuite/internal/core/apperror"
	"adminsuite/internal/core/record"
)

// DefaultPageSize is used when a page spec carries no positive size.
const DefaultPageSize = 10

// Predicate is an exact-match condition on one field.
// An empty Value means "no constraint".
type Predicate struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// FilterSpec selects records.
type FilterSpec struct {
	// Search is matched case-insensitively as a substring of any searchable field.
	Search string `json:"search,omitempty"`

	// Match predicates are conjunctive; their order is irrelevant.
	Match []Predicate `json:"match,omitempty"`

	// Expr is an optional boolean CEL expression over the schema's field keys.
	Expr string `json:"expr,omitempty"`
}

// IsEmpty reports whether the filter keeps every record.
func (f FilterSpec) IsEmpty() bool {
	if f.Search != "" || f.Expr != "" {
		return false
	}
	for _, p := range f.Match {
		if p.Value != "" {
			return false
		}
	}
	return true
}

// SortSpec orders records by one field. An empty Field keeps input order.
type SortSpec struct {
	Field string `json:"field,omitempty"`
	Desc  bool   `json:"desc,omitempty"`
}

// PageSpec is a 1-indexed page window.
type PageSpec struct {
	Page int `json:"page"`
	Size int `json:"size"`
}

func (p PageSpec) size() int {
	if p.Size <= 0 {
		return DefaultPageSize
	}
	return p.Size
}

// Page is one window of a result set plus its totals.
type Page[T any] struct {
	Items      []T  `json:"items"`
	Page       int  `json:"page"`
	Size       int  `json:"size"`
	TotalItems int  `json:"totalItems"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

// Query combines the three stages of a table request.
type Query struct {
	Filter FilterSpec `json:"filter"`
	Sort   SortSpec   `json:"sort"`
	Page   PageSpec   `json:"page"`
}

// Table evaluates queries against records of T.
// It is safe for concurrent use.
type Table[T any] struct {
	schema *record.Schema[T]
	exprs  *exprEngine
}

// New binds a table to schema.
func New[T any](schema *record.Schema[T]) *Table[T] {
	return &Table[T]{
		schema: schema,
		exprs:  newExprEngine(schema.Keys()),
	}
}

// Schema returns the bound schema.
func (t *Table[T]) Schema() *record.Schema[T] {
	return t.schema
}

// Filter returns the records that satisfy spec, in input order.
func (t *Table[T]) Filter(records []T, spec FilterSpec) []T {
	if spec.IsEmpty() {
		return append([]T(nil), records...)
	}

	search := strings.ToLower(spec.Search)
	prg := t.exprs.program(spec.Expr)

	out := make([]T, 0, len(records))
	for _, rec := range records {
		if !t.matchesSearch(rec, search) || !t.matchesPredicates(rec, spec.Match) {
			continue
		}
		if spec.Expr != "" && !t.exprs.eval(prg, t.activation(rec)) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func (t *Table[T]) matchesSearch(rec T, search string) bool {
	if search == "" {
		return true
	}
	for _, key := range t.schema.Searchable() {
		if strings.Contains(strings.ToLower(t.schema.Get(rec, key).Text()), search) {
			return true
		}
	}
	return false
}

func (t *Table[T]) matchesPredicates(rec T, preds []Predicate) bool {
	for _, p := range preds {
		if p.Value == "" {
			continue
		}
		if !t.schema.Has(p.Field) {
			return false
		}
		if t.schema.Get(rec, p.Field).Text() != p.Value {
			return false
		}
	}
	return true
}

func (t *Table[T]) activation(rec T) map[string]any {
	vars := make(map[string]any, len(t.schema.Fields()))
	for _, f := range t.schema.Fields() {
		vars[f.Key] = t.schema.Get(rec, f.Key).Native()
	}
	return vars
}

// Sort returns a stably sorted copy of records.
// Descending order reverses the comparison only; ties keep input order.
func (t *Table[T]) Sort(records []T, spec SortSpec) []T {
	out := append([]T(nil), records...)
	if spec.Field == "" || !t.schema.Has(spec.Field) {
		return out
	}

	// Collators keep internal buffers and are not safe to share.
	col := collate.New(language.English)
	keys := make([]record.Value, len(out))
	for i, rec := range out {
		keys[i] = t.schema.Get(rec, spec.Field)
	}

	idx := make([]int, len(out))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		a, b := keys[idx[i]], keys[idx[j]]
		if spec.Desc {
			a, b = b, a
		}
		return compare(col, a, b) < 0
	})

	sorted := make([]T, len(out))
	for i, k := range idx {
		sorted[i] = out[k]
	}
	return sorted
}

// compare orders two values: numbers numerically, times chronologically,
// booleans false first, anything else by collated text with null as "".
func compare(col *collate.Collator, a, b record.Value) int {
	if x, ok := a.Float(); ok {
		if y, ok := b.Float(); ok {
			return cmpOrdered(x, y)
		}
	}
	if a.Kind() == record.KindTime && b.Kind() == record.KindTime {
		x, _ := a.Timestamp()
		y, _ := b.Timestamp()
		return x.Compare(y)
	}
	if x, ok := a.BoolValue(); ok {
		if y, ok := b.BoolValue(); ok {
			return cmpBool(x, y)
		}
	}
	return col.CompareString(a.Text(), b.Text())
}

func cmpOrdered(x, y float64) int {
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	default:
		return 0
	}
}

func cmpBool(x, y bool) int {
	switch {
	case x == y:
		return 0
	case !x:
		return -1
	default:
		return 1
	}
}

// Paginate returns the window spec selects. Out-of-range pages are empty,
// have neither a next nor a previous page, and still report the totals of
// records.
func (t *Table[T]) Paginate(records []T, spec PageSpec) Page[T] {
	return Paginate(records, spec)
}

// Paginate windows any slice; it needs no schema.
func Paginate[T any](records []T, spec PageSpec) Page[T] {
	size := spec.size()
	total := len(records)
	pages := int(math.Ceil(float64(total) / float64(size)))
	inRange := spec.Page >= 1 && spec.Page <= pages

	// Neighbours are only reported from a page that exists.
	p := Page[T]{
		Items:      []T{},
		Page:       spec.Page,
		Size:       size,
		TotalItems: total,
		TotalPages: pages,
		HasNext:    inRange && spec.Page < pages,
		HasPrev:    inRange && spec.Page > 1,
	}
	if !inRange {
		return p
	}

	start := (spec.Page - 1) * size
	end := min(start+size, total)
	p.Items = append(p.Items, records[start:end]...)
	return p
}

// Query runs filter, then sort, then paginate.
func (t *Table[T]) Query(records []T, q Query) Page[T] {
	return t.Paginate(t.Sort(t.Filter(records, q.Filter), q.Sort), q.Page)
}

// Validate checks field references and the filter expression of a request.
// The pure operations tolerate bad input; outer layers call Validate to
// report it instead.
func (t *Table[T]) Validate(filter FilterSpec, sortSpec SortSpec) error {
	var unknown []string
	for _, p := range filter.Match {
		if !t.schema.Has(p.Field) {
			unknown = append(unknown, p.Field)
		}
	}
	if sortSpec.Field != "" && !t.schema.Has(sortSpec.Field) {
		unknown = append(unknown, sortSpec.Field)
	}
	if len(unknown) > 0 {
		return apperror.NewValidation("unknown fields").WithDetail("fields", unknown)
	}

	if filter.Expr != "" {
		if err := t.exprs.check(filter.Expr); err != nil {
			return apperror.NewValidation("invalid filter expression").
				WithDetail("expr", filter.Expr).
				WithCause(err)
		}
	}
	return nil
}
