package util

import "math"

// RoundTo rounds v to the given number of decimal places.
func RoundTo(v float64, places int) float64 {
	if places < 0 {
		return v
	}
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
