// Package blynk talks to the Blynk HTTP API: one GET per read or write,
// with per-device pin value inversion for active-low wiring.
package blynk

import "math"

// ProcessPin applies the inversion convention to a pin value. Whole
// numbers are XORed with the device's inversion flag; fractional values
// are not invertible booleans and pass through unchanged. Applying the
// function twice with the same flag restores the original value.
func ProcessPin(value float64, defaultState int) float64 {
	if t := math.Trunc(value); t == value && !math.IsInf(value, 0) {
		return float64(int64(t) ^ int64(defaultState))
	}
	return value
}
