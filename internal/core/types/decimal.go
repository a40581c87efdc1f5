// Package types provides common value types.
package types

import (
	"github.com/shopspring/decimal"
)

// Money represents a monetary value with full precision.
// Revenue, prices and costs are stored as NUMERIC and scanned into Money.
type Money = decimal.Decimal

// NewMoney creates a Money value from a float.
// WARNING: Use NewMoneyFromString for precise values.
func NewMoney(f float64) Money {
	return decimal.NewFromFloat(f)
}

// NewMoneyFromString creates a Money value from a string.
func NewMoneyFromString(s string) (Money, error) {
	return decimal.NewFromString(s)
}

// MustMoney creates a Money value from a string, panics on error.
// Use only for constants, seeds and tests.
func MustMoney(s string) Money {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Zero returns zero Money value.
func Zero() Money {
	return decimal.Zero
}

// SumMoney adds values without going through float64.
func SumMoney(values ...Money) Money {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// MulInt multiplies a price by an integer quantity.
func MulInt(m Money, n int) Money {
	return m.Mul(decimal.NewFromInt(int64(n)))
}

// DivInt divides by n, returning zero when n is zero.
func DivInt(m Money, n int) Money {
	if n == 0 {
		return decimal.Zero
	}
	return m.DivRound(decimal.NewFromInt(int64(n)), 2)
}
