package utils

import "math"

// Round2 rounds a dollar amount to cents, half away from zero.
// Pricing rounds at every intermediate step, not just the final total.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Cents converts a dollar amount to an integer cent amount for the gateway.
func Cents(v float64) int64 {
	return int64(math.Round(v * 100))
}
