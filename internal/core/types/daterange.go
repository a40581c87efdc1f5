package types

import "time"

// DateRange is an inclusive time window. A zero bound is open.
type DateRange struct {
	From time.Time
	To   time.Time
}

// IsZero reports whether both bounds are open.
func (r DateRange) IsZero() bool {
	return r.From.IsZero() && r.To.IsZero()
}

// Contains reports whether t lies within the range.
func (r DateRange) Contains(t time.Time) bool {
	if !r.From.IsZero() && t.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && t.After(r.To) {
		return false
	}
	return true
}

// Previous returns the window of equal length that ends just before r starts.
// The two windows never share an instant.
func (r DateRange) Previous() DateRange {
	d := r.To.Sub(r.From)
	return DateRange{From: r.From.Add(-d), To: r.From.Add(-time.Nanosecond)}
}
