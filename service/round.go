package service

import (
	"math"

	"github.com/shopspring/decimal"
)

// roundTo2Decimals rounds half away from zero to cents.
func roundTo2Decimals(value float64) float64 {
	return roundTo(value, 2)
}

func roundTo(value float64, places int32) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return value
	}
	return decimal.NewFromFloat(value).Round(places).InexactFloat64()
}

// sumCents adds money values exactly and returns the cent-rounded total.
func sumCents(values ...float64) float64 {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(decimal.NewFromFloat(v))
	}
	return total.Round(2).InexactFloat64()
}
