package util

import (
	"math"

	"github.com/shopspring/decimal"
)

// RoundToSignificantFigures rounds v to sig significant digits
func RoundToSignificantFigures(v float64, sig int) float64 {
	if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	d := int(math.Ceil(math.Log10(math.Abs(v))))
	places := int32(sig - d)
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}

// RoundDollars rounds to the nearest whole dollar
func RoundDollars(v float64) float64 {
	return decimal.NewFromFloat(v).Round(0).InexactFloat64()
}

// Finite returns v, or 0 when v is NaN or infinite
func Finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
