// Package format holds the fixed Swiss presentation formatting used by the
// list endpoints and the invoice renderer. Amounts are always CHF with two
// decimals; quantities keep whatever precision they were entered with.
package format

import "strconv"

// CHF renders a money amount as "CHF 123.45".
func CHF(v float64) string {
	return "CHF " + strconv.FormatFloat(v, 'f', 2, 64)
}

// Quantity renders a quantity as entered: whole numbers without a decimal
// point, fractional values (e.g. hours) with their natural precision.
func Quantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}
