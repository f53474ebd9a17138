// Package money holds monetary amounts as integer FJD cents so that
// price arithmetic stays exact until a value crosses a display or
// persistence boundary.
package money

import "fmt"

// Currency is the only currency the fleet is priced in.
const Currency = "FJD"

// Cents is a monetary amount in hundredths of a Fijian dollar.
type Cents int64

// FromFloat converts a decimal dollar amount to cents, rounding
// half-up to the nearest cent.
func FromFloat(v float64) Cents {
	if v < 0 {
		return -FromFloat(-v)
	}
	return Cents(v*100 + 0.5)
}

// Float64 returns the amount in dollars.
func (c Cents) Float64() float64 {
	return float64(c) / 100
}

// Mul scales the amount by a whole factor, e.g. a daily rate by a
// number of days.
func (c Cents) Mul(n int64) Cents {
	return c * Cents(n)
}

// Percent applies a whole percentage, rounding half-up to the cent.
func (c Cents) Percent(pct int64) Cents {
	if c < 0 {
		return -(-c).Percent(pct)
	}
	return (c*Cents(pct) + 50) / 100
}

// String formats the amount as a plain decimal, e.g. "90.00".
func (c Cents) String() string {
	sign := ""
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%s%d.%02d", sign, c/100, c%100)
}

// Format appends the currency code for user-facing text.
func (c Cents) Format() string {
	return c.String() + " " + Currency
}
