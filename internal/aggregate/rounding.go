// Package aggregate derives bounded, normalized metrics from raw activity,
// interruption, plan and review records. Every function is pure: it consumes
// an in-memory snapshot and recomputes from scratch, so derived values can
// never go stale relative to their inputs.
package aggregate

import "math"

// Rounding policy shared by every derived view. Minutes and percentages
// round to the nearest integer; hours round to one decimal place.

// RoundHours rounds a value in hours to one decimal place.
func RoundHours(h float64) float64 {
	return math.Round(h*10) / 10
}

// Round1 rounds to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// RoundPercent rounds a percentage to the nearest whole number.
func RoundPercent(v float64) int {
	return int(math.Round(v))
}

// RoundMinutes rounds a value in minutes to the nearest whole number.
func RoundMinutes(v float64) float64 {
	return math.Round(v)
}
