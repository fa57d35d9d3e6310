// Package currencypkg provides common money related functionality for apps.
package currencypkg

import "github.com/shopspring/decimal"

// Symbol is printed in front of every amount shown to users.
const Symbol = "$"

// Places is the number of decimal places shown to users.
const Places = 2

// Bounds of a single amount. Exponents are checked first so that absurd
// inputs like 1e30000000 are rejected before any big number arithmetic.
const (
	minExponent = -8
	maxExponent = 15
)

// MaxAmount is the exclusive upper bound of a single amount.
var MaxAmount = decimal.New(1, maxExponent)

// IsValidAmount reports whether the amount is a whole number of cents below MaxAmount.
func IsValidAmount(amount decimal.Decimal) bool {
	exp := amount.Exponent()
	if exp < minExponent || exp > maxExponent {
		return false
	}

	if !amount.Equal(amount.Truncate(Places)) {
		return false
	}

	return amount.Abs().LessThan(MaxAmount)
}

// Fixed returns the amount with two decimal places.
//
// Half-even rounding is used, so displayed amounts match what a decimal
// library with default context would print for "%.2f".
func Fixed(amount decimal.Decimal) string {
	return amount.StringFixedBank(Places)
}

// Format returns the amount as a dollar string, e.g. "$100.00".
func Format(amount decimal.Decimal) string {
	return Symbol + Fixed(amount)
}

// FormatSigned returns the amount prefixed with "+" for credits and "-" for debits.
func FormatSigned(amount decimal.Decimal, credit bool) string {
	if credit {
		return "+" + Format(amount)
	}

	return "-" + Format(amount)
}
