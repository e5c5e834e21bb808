// Package utils contains small numeric helpers shared by the autopilot packages.
package utils

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

// TwoPi is one full turn in radians.
const TwoPi = 2 * math.Pi

// DegToRad converts degrees to radians.
func DegToRad(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(radians float64) float64 {
	return radians * 180 / math.Pi
}

// Float64AlmostEqual compares two float64s and returns if the difference between them is less
// than epsilon.
func Float64AlmostEqual(a, b, epsilon float64) bool {
	return scalar.EqualWithinAbs(a, b, epsilon)
}

// IsFinite reports whether f is neither NaN nor an infinity.
func IsFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Square returns n*n.
func Square(n float64) float64 {
	return n * n
}

// Cube returns n*n*n.
func Cube(n float64) float64 {
	return n * n * n
}
