// Package core provides the domain values shared by storage, services and
// the HTTP layer: money in integer cents, calendar months and dates, and the
// dashboard result document.
package core

import "math"

// CentsFromAmount converts a decimal amount (as received in JSON) to integer
// cents, rounding half away from zero. 18.5 becomes 1850; 0.005 becomes 1.
func CentsFromAmount(amount float64) Money {
	return Money{Cents: int64(math.Round(amount * 100))}
}

// Amount returns the decimal value for display purposes. Calculations must
// stay in cents.
func (m Money) Amount() float64 {
	return float64(m.Cents) / 100.0
}
