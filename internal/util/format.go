// Package util holds number formatting and small numeric helpers.
package util

import (
	"math"

	"github.com/shopspring/decimal"
)

// FormatCurrency renders a dollar amount compactly: $1.2B, $3.4M, $560K, $42.
// Non-finite values render as "$0".
func FormatCurrency(value float64) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return "$0"
	}
	sign := ""
	if value < 0 {
		sign = "-"
	}
	abs := decimal.NewFromFloat(math.Abs(value))

	switch {
	case abs.GreaterThanOrEqual(billion):
		return sign + "$" + abs.Div(billion).StringFixed(1) + "B"
	case abs.GreaterThanOrEqual(million):
		return sign + "$" + abs.Div(million).StringFixed(1) + "M"
	case abs.GreaterThanOrEqual(thousand):
		return sign + "$" + abs.Div(thousand).StringFixed(0) + "K"
	default:
		return sign + "$" + abs.StringFixed(0)
	}
}

var (
	thousand = decimal.NewFromInt(1_000)
	million  = decimal.NewFromInt(1_000_000)
	billion  = decimal.NewFromInt(1_000_000_000)
)

// FormatPercent renders a fraction as a percentage, e.g. 0.167 -> "16.7%"
func FormatPercent(fraction float64, decimals int32) string {
	return FormatPercentPoints(fraction*100, decimals)
}

// FormatPercentPoints renders a value already in percentage points
func FormatPercentPoints(points float64, decimals int32) string {
	if math.IsNaN(points) || math.IsInf(points, 0) {
		return "0%"
	}
	return decimal.NewFromFloat(points).StringFixed(decimals) + "%"
}

// FormatFixed renders v with a fixed number of decimals
func FormatFixed(v float64, decimals int32) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	return decimal.NewFromFloat(v).StringFixed(decimals)
}

// FormatMultiple renders a multiple with the shortest exact form: 15 -> "15x", 12.5 -> "12.5x"
func FormatMultiple(m float64) string {
	if math.IsNaN(m) || math.IsInf(m, 0) {
		return "0x"
	}
	return decimal.NewFromFloat(m).String() + "x"
}
