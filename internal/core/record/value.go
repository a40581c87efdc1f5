// Package record provides typed field access over flat entity records.
//
// Entities do not expose map-style lookups. Each entity package declares a
// Schema of Field accessors; tables, aggregators and exporters address a
// record only through those accessors.
package record

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Kind is the scalar kind carried by a Value or declared by a Field.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindTime
	KindList
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindTime:
		return "time"
	case KindList:
		return "list"
	default:
		return "null"
	}
}

// Value is a tagged scalar read from a record field.
// The zero Value is null.
type Value struct {
	kind Kind
	s    string
	n    float64
	b    bool
	t    time.Time
	l    []string
}

// Null returns the null value.
func Null() Value { return Value{} }

// String wraps a string.
func String(s string) Value { return Value{kind: KindString, s: s} }

// StringPtr wraps an optional string; nil is null.
func StringPtr(s *string) Value {
	if s == nil {
		return Null()
	}
	return String(*s)
}

// Number wraps a float.
func Number(n float64) Value { return Value{kind: KindNumber, n: n} }

// Int wraps an integer.
func Int(n int) Value { return Number(float64(n)) }

// Money wraps a decimal as a number; the text form keeps the exact digits.
func Money(d decimal.Decimal) Value {
	return Value{kind: KindNumber, n: d.InexactFloat64(), s: d.String()}
}

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Time wraps a timestamp. A zero time is null.
func Time(t time.Time) Value {
	if t.IsZero() {
		return Null()
	}
	return Value{kind: KindTime, t: t}
}

// TimePtr wraps an optional timestamp; nil is null.
func TimePtr(t *time.Time) Value {
	if t == nil {
		return Null()
	}
	return Time(*t)
}

// List wraps a multi-value field. A nil slice is null.
func List(items []string) Value {
	if items == nil {
		return Null()
	}
	return Value{kind: KindList, l: items}
}

// Kind returns the carried kind.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Float returns the numeric value.
func (v Value) Float() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.n, true
}

// BoolValue returns the boolean value.
func (v Value) BoolValue() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// Items returns the list items.
func (v Value) Items() []string {
	if v.kind != KindList {
		return nil
	}
	return v.l
}

// Date layouts accepted when a string value is read as a timestamp.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Timestamp returns the value as a time. Strings in ISO date or RFC3339 form
// are parsed; anything else reports false.
func (v Value) Timestamp() (time.Time, bool) {
	switch v.kind {
	case KindTime:
		return v.t, true
	case KindString:
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, v.s); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

// Text returns the string form used for search, exact matching and
// string ordering. Null is the empty string.
func (v Value) Text() string {
	switch v.kind {
	case KindString:
		return v.s
	case KindNumber:
		if v.s != "" {
			return v.s
		}
		return strconv.FormatFloat(v.n, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindTime:
		return v.t.UTC().Format(time.RFC3339)
	case KindList:
		return strings.Join(v.l, "; ")
	default:
		return ""
	}
}

// Native returns the Go value for expression evaluation.
func (v Value) Native() any {
	switch v.kind {
	case KindString:
		return v.s
	case KindNumber:
		return v.n
	case KindBool:
		return v.b
	case KindTime:
		return v.t
	case KindList:
		return v.l
	default:
		return nil
	}
}
