// Package money holds the rounding rules shared by the cart, checkout and
// order views. All amounts travel as decimal numbers in the base currency
// unit; every user-visible figure is rounded to two decimal places.
package money

import "github.com/shopspring/decimal"

// Precision is the number of decimal places carried by displayed amounts.
const Precision = 2

// Epsilon is half a minor currency unit. Two totals closer than this are
// considered reconciled; anything further apart is a real mismatch.
var Epsilon = decimal.RequireFromString("0.005")

func init() {
	// Amounts cross the wire as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Round normalizes an amount to money precision.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(Precision)
}

// Extend computes a line extension (unit price times quantity), rounded to
// money precision. Rounding happens per line, before extensions are summed,
// so group subtotals cannot drift from what each line displays.
func Extend(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return Round(unitPrice.Mul(decimal.NewFromInt(int64(quantity))))
}

// Commission returns the platform's cut of a vendor subtotal for the given
// percentage.
func Commission(subtotal decimal.Decimal, percentage decimal.Decimal) decimal.Decimal {
	return Round(subtotal.Mul(percentage).Div(decimal.NewFromInt(100)))
}

// WithinEpsilon reports whether two amounts agree to within Epsilon.
func WithinEpsilon(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(Epsilon)
}

// Sum adds the given amounts without further rounding.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}
