package engine

import "math"

// roundMoney rounds currency-bearing values to 2 decimal places so
// aggregated sums stay reproducible across runs.
func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}

// ceilUnits rounds a fractional unit count up to whole units, never
// below zero.
func ceilUnits(v float64) int {
	if v <= 0 {
		return 0
	}
	return int(math.Ceil(v))
}
