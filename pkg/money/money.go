// Package money provides INR formatting and rounding helpers shared by the
// reporting endpoints.
package money

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Round2 rounds an amount to two decimal places, half away from zero.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// FormatINR renders an amount as an Indian Rupee display string, e.g.
// "₹1,299.00".
func FormatINR(d decimal.Decimal) string {
	minor := d.Shift(2).Round(0).IntPart()
	return money.New(minor, money.INR).Display()
}

// ParseAmount parses a numeric string into a decimal amount.
func ParseAmount(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}
