package utils

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// FormatAmount renders a major-unit amount with exactly two decimals ("64.97").
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

// FromMinorUnits converts vendor cents (e.g. shipping first_item.cost) to major units.
func FromMinorUnits(cents int64) decimal.Decimal {
	return decimal.NewFromInt(cents).Div(hundred)
}

// ToMinorUnits rounds to the nearest cent.
func ToMinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(hundred).Round(0).IntPart()
}

// RoundAmount rounds half away from zero to two places.
func RoundAmount(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}
