package utils

import "github.com/shopspring/decimal"

// Round2 rounds a monetary amount to 2 decimal places, half-up.
// decimal.Round rounds half away from zero, which is half-up for the
// non-negative amounts billing produces.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// FormatAmount renders an amount with exactly two decimals for display.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// DecimalOrZero parses s into a decimal, returning zero on empty or invalid
// input. Used when scanning nullable DECIMAL columns.
func DecimalOrZero(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
