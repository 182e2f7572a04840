// Package types provides common type aliases and numeric utilities.
package types

import (
	"github.com/shopspring/decimal"
)

// Money represents a monetary or quantity value with full precision.
// Uses decimal.Decimal to avoid floating-point drift across ledger folds.
type Money = decimal.Decimal

// Zero returns zero Money value.
func Zero() Money {
	return decimal.Zero
}

// NewMoney creates a Money value from a float.
// WARNING: Use MoneyFromString for precise values.
func NewMoney(f float64) Money {
	return decimal.NewFromFloat(f)
}

// MoneyFromString creates a Money value from a string.
// This is the preferred method for monetary values.
func MoneyFromString(s string) (Money, error) {
	return decimal.NewFromString(s)
}

// MustMoney creates a Money value from a string, panics on error.
// Use only for constants and tests.
func MustMoney(s string) Money {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// ToNumber coerces a raw string to Money, returning fallback when the
// value is empty or not a valid number. It never fails: untrusted input
// (CSV cells, legacy documents) is coerced at the boundary so the engine
// below only ever sees well-formed decimals.
func ToNumber(raw string, fallback Money) Money {
	if raw == "" {
		return fallback
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return fallback
	}
	return d
}

// Totals carries the four derived monetary figures of a transaction.
type Totals struct {
	Base  Money `json:"base"`
	GST   Money `json:"gst"`
	Gross Money `json:"gross"`
	Due   Money `json:"due"`
}

var hundred = decimal.NewFromInt(100)

// ComputeTotals is the single source of truth for monetary derivation:
//
//	base  = qty * unitAmount
//	gst   = base * gstRate / 100
//	gross = base + gst
//	due   = max(gross - paidAmount, 0)
//
// Every balance, stock valuation, bill line and report must call through
// here rather than recompute inline.
func ComputeTotals(qty, unitAmount, gstRate, paidAmount Money) Totals {
	base := qty.Mul(unitAmount)
	gst := base.Mul(gstRate).Div(hundred)
	gross := base.Add(gst)
	due := gross.Sub(paidAmount)
	if due.IsNegative() {
		due = decimal.Zero
	}
	return Totals{Base: base, GST: gst, Gross: gross, Due: due}
}
