package postgres

import (
	"reflect"
	"sync"
)

// columnCache maps a struct type to its db-tagged field indexes.
var columnCache sync.Map // map[reflect.Type][]column

type column struct {
	name  string
	index []int
}

// Columns returns the "db" tag names of T in declaration order, descending
// into embedded structs. Fields tagged "-" or untagged are skipped.
func Columns[T any]() []string {
	cols := columnsOf(reflect.TypeOf((*T)(nil)).Elem())
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.name
	}
	return names
}

// Values returns the db-tagged field values of v in Columns order.
func Values[T any](v T) []any {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	cols := columnsOf(rv.Type())
	out := make([]any, len(cols))
	for i, c := range cols {
		out[i] = rv.FieldByIndex(c.index).Interface()
	}
	return out
}

// Omit returns cols without the named columns.
func Omit(cols []string, drop ...string) []string {
	out := make([]string, 0, len(cols))
outer:
	for _, c := range cols {
		for _, d := range drop {
			if c == d {
				continue outer
			}
		}
		out = append(out, c)
	}
	return out
}

func columnsOf(t reflect.Type) []column {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if cached, ok := columnCache.Load(t); ok {
		return cached.([]column)
	}

	var cols []column
	if t.Kind() == reflect.Struct {
		cols = collect(t, nil)
	}
	columnCache.Store(t, cols)
	return cols
}

func collect(t reflect.Type, prefix []int) []column {
	var cols []column
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		index := append(append([]int(nil), prefix...), i)

		if f.Anonymous && f.Type.Kind() == reflect.Struct {
			cols = append(cols, collect(f.Type, index)...)
			continue
		}

		tag := f.Tag.Get("db")
		if tag == "" || tag == "-" {
			continue
		}
		cols = append(cols, column{name: tag, index: index})
	}
	return cols
}
