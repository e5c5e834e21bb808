package utils

import (
	"math"
	"testing"

	"go.viam.com/test"
)

func TestAngleConversion(t *testing.T) {
	test.That(t, DegToRad(180), test.ShouldAlmostEqual, math.Pi)
	test.That(t, RadToDeg(math.Pi/2), test.ShouldAlmostEqual, 90)
	test.That(t, RadToDeg(DegToRad(37.5)), test.ShouldAlmostEqual, 37.5)
}

func TestFloat64AlmostEqual(t *testing.T) {
	test.That(t, Float64AlmostEqual(1, 1.00001, 1e-4), test.ShouldBeTrue)
	test.That(t, Float64AlmostEqual(1, 1.001, 1e-4), test.ShouldBeFalse)
}

func TestIsFinite(t *testing.T) {
	test.That(t, IsFinite(0), test.ShouldBeTrue)
	test.That(t, IsFinite(-1e300), test.ShouldBeTrue)
	test.That(t, IsFinite(math.NaN()), test.ShouldBeFalse)
	test.That(t, IsFinite(math.Inf(-1)), test.ShouldBeFalse)
}

func TestPowers(t *testing.T) {
	test.That(t, Square(-3), test.ShouldEqual, 9.)
	test.That(t, Cube(-3), test.ShouldEqual, -27.)
	test.That(t, Cube(TwoPi), test.ShouldAlmostEqual, math.Pow(2*math.Pi, 3))
}
