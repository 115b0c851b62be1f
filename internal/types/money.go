package types

import "github.com/shopspring/decimal"

// MoneyPrecision is the number of decimal places every monetary output
// carries. All stored and displayed amounts are rounded to this precision.
const MoneyPrecision int32 = 2

// RoundMoney rounds an amount to MoneyPrecision using half-up rounding.
// Each derived monetary field is rounded independently at the point it is
// produced, not only at display time.
func RoundMoney(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(MoneyPrecision)
}

// FormatMoney renders an amount with exactly MoneyPrecision decimal places
func FormatMoney(amount decimal.Decimal) string {
	return amount.StringFixed(MoneyPrecision)
}
