// Package export renders record projections as CSV and JSON payloads.
package export

import (
	"strings"
	"time"
	"unicode"

	"adminsuite/internal/core/record"
)

// DefaultTimeLayout renders dates like "1/15/2024, 2:30:00 PM".
const DefaultTimeLayout = "1/2/2006, 3:04:05 PM"

// Options controls one export.
type Options struct {
	// Fields is the ordered column list; empty means the schema default.
	Fields []string

	IncludeHeaders bool

	// Filename is a suggested download name; empty means DefaultFilename.
	Filename string

	// TimeLayout formats date cells; empty means DefaultTimeLayout.
	TimeLayout string

	// Location converts date cells before formatting; nil means UTC.
	Location *time.Location
}

func (o Options) layout() string {
	if o.TimeLayout == "" {
		return DefaultTimeLayout
	}
	return o.TimeLayout
}

func (o Options) location() *time.Location {
	if o.Location == nil {
		return time.UTC
	}
	return o.Location
}

// Columns returns the field keys an export selects.
func Columns[T any](schema *record.Schema[T], opts Options) []string {
	if len(opts.Fields) > 0 {
		return opts.Fields
	}
	return schema.DefaultExport()
}

// ToCSV renders records as CSV text. Rows are separated by "\n" with no
// trailing newline. Empty input yields the header row alone, or "" when
// headers are off.
func ToCSV[T any](records []T, schema *record.Schema[T], opts Options) string {
	cols := Columns(schema, opts)

	rows := make([]string, 0, len(records)+1)
	if opts.IncludeHeaders {
		rows = append(rows, headerRow(cols))
	}

	fields := make([]record.Field[T], len(cols))
	for i, key := range cols {
		// Undeclared keys keep the zero Field and render empty.
		fields[i], _ = schema.Field(key)
	}

	cells := make([]string, len(cols))
	for _, rec := range records {
		for i, f := range fields {
			cells[i] = formatCell(f, value(f, rec), opts)
		}
		rows = append(rows, strings.Join(cells, ","))
	}
	return strings.Join(rows, "\n")
}

func value[T any](f record.Field[T], rec T) record.Value {
	if f.Get == nil {
		return record.Null()
	}
	return f.Get(rec)
}

func headerRow(cols []string) string {
	titles := make([]string, len(cols))
	for i, c := range cols {
		titles[i] = escape(Title(c))
	}
	return strings.Join(titles, ",")
}

// Title converts a camelCase key to a header: a space goes before each
// uppercase letter after the first character, then the first character is
// upper-cased. "lastLogin" becomes "Last Login".
func Title(key string) string {
	var b strings.Builder
	b.Grow(len(key) + 4)
	for i, r := range key {
		if i == 0 {
			b.WriteRune(unicode.ToUpper(r))
			continue
		}
		if unicode.IsUpper(r) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// formatCell applies the cell rules in order: null, bool, date, multi-value,
// then plain text.
func formatCell[T any](f record.Field[T], v record.Value, opts Options) string {
	if v.IsNull() {
		return f.NullText
	}
	if b, ok := v.BoolValue(); ok {
		if b {
			return "Yes"
		}
		return "No"
	}
	if f.Kind == record.KindTime || v.Kind() == record.KindTime {
		if t, ok := v.Timestamp(); ok {
			return escape(t.In(opts.location()).Format(opts.layout()))
		}
	}
	if f.Kind == record.KindList || v.Kind() == record.KindList {
		return quote(v.Text())
	}
	return escape(v.Text())
}

// escape quotes s when it holds a separator, a quote or a line break.
func escape(s string) string {
	if strings.ContainsAny(s, ",\"\n\r") {
		return quote(s)
	}
	return s
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
