package trajectory

import (
	"math"
	"sync"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"go.viam.com/autopilot/spatialmath"
)

const circleTol = 1e-9

var (
	sampleGammas  = []float64{-1.3, -0.5, 0, 0.1, 0.25, 0.333, 0.5, 0.75, 0.9, 1, 2.7}
	sampleCircles = []*Circle{
		NewCircle(r3.Vector{X: 0, Y: 0, Z: 0}, r3.Vector{X: 0, Y: 0, Z: 1}, 5, 2),
		NewCircle(r3.Vector{X: 1, Y: 2, Z: 3}, r3.Vector{X: 0, Y: 0, Z: -1}, 1, 1),
		NewCircle(r3.Vector{X: -4, Y: 0.5, Z: 10}, r3.Vector{X: 1, Y: 0, Z: 0}, 3, 1.5),
		NewCircle(r3.Vector{X: 0, Y: 0, Z: 0}, r3.Vector{X: 0, Y: 2, Z: 0}, 0.5, -1),
		NewCircle(r3.Vector{X: 7, Y: -1, Z: 2}, r3.Vector{X: 1, Y: 1, Z: 1}, 2.5, 4),
		NewCircle(r3.Vector{X: 0, Y: 0, Z: 100}, r3.Vector{X: -2, Y: 0.5, Z: 4}, 12, 10),
	}
)

func TestCircleImplementsParametric(t *testing.T) {
	var traj Parametric = NewCircle(r3.Vector{}, r3.Vector{X: 0, Y: 0, Z: 1}, 1, 1)
	test.That(t, traj.Domain(), test.ShouldResemble, Domain{Start: 0, End: 1})
}

func TestCircleAccessors(t *testing.T) {
	c := NewCircle(r3.Vector{X: 1, Y: 2, Z: 3}, r3.Vector{X: 0, Y: 3, Z: 0}, 4, 5)
	test.That(t, c.Center(), test.ShouldResemble, r3.Vector{X: 1, Y: 2, Z: 3})
	// the normal is kept as given, not normalized
	test.That(t, c.Normal(), test.ShouldResemble, r3.Vector{X: 0, Y: 3, Z: 0})
	test.That(t, c.Radius(), test.ShouldEqual, 4.)
	test.That(t, c.VehicleSpeed(0.7), test.ShouldEqual, 5.)
	test.That(t, c.Kind(), test.ShouldEqual, CircleKind)
	test.That(t, c.String(), test.ShouldContainSubstring, "radius: 4")
}

func TestCircleStaysOnRadius(t *testing.T) {
	for _, c := range sampleCircles {
		for _, gamma := range sampleGammas {
			dist := c.Position(gamma).Sub(c.Center()).Norm()
			test.That(t, dist, test.ShouldAlmostEqual, c.Radius(), circleTol)
		}
	}
}

func TestCircleIsClosed(t *testing.T) {
	for _, c := range sampleCircles {
		test.That(t, spatialmath.R3VectorAlmostEqual(c.Position(0), c.Position(1), circleTol), test.ShouldBeTrue)
		test.That(t, spatialmath.R3VectorAlmostEqual(c.Velocity(0), c.Velocity(1), circleTol), test.ShouldBeTrue)
		// gamma is not clamped, the curve just repeats
		test.That(t, spatialmath.R3VectorAlmostEqual(c.Position(0.3), c.Position(2.3), circleTol), test.ShouldBeTrue)
	}
}

func TestCircleLiesInNormalPlane(t *testing.T) {
	for _, c := range sampleCircles {
		unit := c.Normal().Normalize()
		for _, gamma := range sampleGammas {
			test.That(t, c.Position(gamma).Sub(c.Center()).Dot(unit), test.ShouldAlmostEqual, 0, circleTol)
			test.That(t, c.Velocity(gamma).Dot(unit), test.ShouldAlmostEqual, 0, circleTol)
		}
	}

	t.Run("x normal", func(t *testing.T) {
		c := NewCircle(r3.Vector{}, r3.Vector{X: 1, Y: 0, Z: 0}, 2, 1)
		for _, gamma := range sampleGammas {
			test.That(t, c.Position(gamma).X, test.ShouldAlmostEqual, 0, circleTol)
		}
	})
}

func TestCircleVelocityIsTangent(t *testing.T) {
	for _, c := range sampleCircles {
		for _, gamma := range sampleGammas {
			radial := spatialmath.ProjectOntoPlane(c.Position(gamma).Sub(c.Center()), c.Normal())
			test.That(t, c.Velocity(gamma).Dot(radial), test.ShouldAlmostEqual, 0, 1e-7)
			test.That(t, c.Velocity(gamma).Norm(), test.ShouldAlmostEqual, 2*math.Pi*c.Radius(), circleTol)
		}
	}
}

func TestCircleDerivatives(t *testing.T) {
	const h = 1e-6
	for _, c := range sampleCircles {
		for _, gamma := range sampleGammas {
			// central differences against the analytic derivatives
			dp := c.Position(gamma + h).Sub(c.Position(gamma - h)).Mul(1 / (2 * h))
			dv := c.Velocity(gamma + h).Sub(c.Velocity(gamma - h)).Mul(1 / (2 * h))
			da := c.Acceleration(gamma + h).Sub(c.Acceleration(gamma - h)).Mul(1 / (2 * h))

			test.That(t, dp.Sub(c.Velocity(gamma)).Norm()/c.Velocity(gamma).Norm(), test.ShouldBeLessThan, 1e-6)
			test.That(t, dv.Sub(c.Acceleration(gamma)).Norm()/c.Acceleration(gamma).Norm(), test.ShouldBeLessThan, 1e-6)
			test.That(t, da.Sub(c.Jerk(gamma)).Norm()/c.Jerk(gamma).Norm(), test.ShouldBeLessThan, 1e-6)
		}

		// centripetal: acceleration points back at the center with magnitude (2pi)^2 r
		radial := c.Position(0.4).Sub(c.Center())
		expected := radial.Mul(-math.Pow(2*math.Pi, 2))
		test.That(t, spatialmath.R3VectorAlmostEqual(c.Acceleration(0.4), expected, 1e-7), test.ShouldBeTrue)
		test.That(t, c.Jerk(0.4).Norm(), test.ShouldAlmostEqual, math.Pow(2*math.Pi, 3)*c.Radius(), 1e-7)
	}
}

func TestCircleCanonicalScenario(t *testing.T) {
	c := NewCircle(r3.Vector{X: 0, Y: 0, Z: 0}, r3.Vector{X: 0, Y: 0, Z: 1}, 5, 2)

	test.That(t, c.Rotation().AlmostEqual(spatialmath.NewIdentityRotationMatrix(), 0), test.ShouldBeTrue)
	test.That(t, c.Position(0), test.ShouldResemble, r3.Vector{X: 5, Y: 0, Z: 0})
	test.That(t, spatialmath.R3VectorAlmostEqual(c.Position(0.25), r3.Vector{X: 0, Y: 5, Z: 0}, circleTol), test.ShouldBeTrue)
	test.That(t, spatialmath.R3VectorAlmostEqual(c.Position(0.5), r3.Vector{X: -5, Y: 0, Z: 0}, circleTol), test.ShouldBeTrue)
	test.That(t, c.Yaw(0), test.ShouldEqual, math.Pi)
	test.That(t, c.Yaw(0.25), test.ShouldAlmostEqual, -math.Pi/2)
	test.That(t, c.Yaw(0.5), test.ShouldAlmostEqual, 0)
	test.That(t, c.PathSpeed(0), test.ShouldAlmostEqual, 2/(2*math.Pi*5))
}

func TestCircleFlippedNormalScenario(t *testing.T) {
	up := NewCircle(r3.Vector{X: 1, Y: 2, Z: 3}, r3.Vector{X: 0, Y: 0, Z: 1}, 1, 1)
	down := NewCircle(r3.Vector{X: 1, Y: 2, Z: 3}, r3.Vector{X: 0, Y: 0, Z: -1}, 1, 1)

	test.That(t, down.Rotation().AlmostEqual(spatialmath.NewIdentityRotationMatrix(), 0), test.ShouldBeTrue)
	test.That(t, down.Position(0), test.ShouldResemble, r3.Vector{X: 2, Y: 2, Z: 3})
	for _, gamma := range sampleGammas {
		test.That(t, down.Position(gamma), test.ShouldResemble, up.Position(gamma))
		test.That(t, down.Velocity(gamma), test.ShouldResemble, up.Velocity(gamma))
	}
}

func TestCircleYaw(t *testing.T) {
	for _, c := range sampleCircles {
		for _, gamma := range sampleGammas {
			yaw := c.Yaw(gamma)
			toCenter := c.Center().Sub(c.Position(gamma))
			test.That(t, yaw, test.ShouldAlmostEqual, math.Atan2(toCenter.Y, toCenter.X))
			test.That(t, yaw, test.ShouldBeBetweenOrEqual, -math.Pi, math.Pi)
			test.That(t, c.YawRate(gamma), test.ShouldEqual, 0.)
		}
	}
}

func TestCirclePathSpeed(t *testing.T) {
	t.Run("regular circles", func(t *testing.T) {
		for _, c := range sampleCircles {
			for _, gamma := range sampleGammas {
				expected := c.VehicleSpeed(gamma) / c.Velocity(gamma).Norm()
				test.That(t, c.PathSpeed(gamma), test.ShouldAlmostEqual, expected)
			}
		}
	})

	t.Run("signed speed", func(t *testing.T) {
		c := NewCircle(r3.Vector{}, r3.Vector{X: 0, Y: 0, Z: 1}, 1, -3)
		test.That(t, c.PathSpeed(0.2), test.ShouldAlmostEqual, -3/(2*math.Pi))
	})

	t.Run("zero speed", func(t *testing.T) {
		c := NewCircle(r3.Vector{}, r3.Vector{X: 0, Y: 0, Z: 1}, 1, 0)
		test.That(t, c.PathSpeed(0.2), test.ShouldEqual, 0.)
	})

	t.Run("zero radius", func(t *testing.T) {
		for _, speed := range []float64{2, 0, -2} {
			c := NewCircle(r3.Vector{X: 1, Y: 2, Z: 3}, r3.Vector{X: 0, Y: 1, Z: 1}, 0, speed)
			for _, gamma := range sampleGammas {
				test.That(t, c.Position(gamma), test.ShouldResemble, r3.Vector{X: 1, Y: 2, Z: 3})
				test.That(t, c.Velocity(gamma).Norm(), test.ShouldEqual, 0.)
				test.That(t, c.PathSpeed(gamma), test.ShouldEqual, 0.)
			}
		}
	})

	t.Run("zero radius stands still", func(t *testing.T) {
		c := NewCircle(r3.Vector{}, r3.Vector{X: 0, Y: 0, Z: 1}, 0, 2)
		test.That(t, c.PathSpeed(0.3), test.ShouldEqual, 0.)
	})

	t.Run("overflow", func(t *testing.T) {
		c := NewCircle(r3.Vector{}, r3.Vector{X: 0, Y: 0, Z: 1}, 1e-300, 1e300)
		test.That(t, c.PathSpeed(0.1), test.ShouldEqual, pathSpeedEpsilon)
	})
}

func TestCircleZeroNormal(t *testing.T) {
	c := NewCircle(r3.Vector{X: 1, Y: 2, Z: 3}, r3.Vector{}, 2, 1)
	for _, gamma := range sampleGammas {
		p := c.Position(gamma)
		test.That(t, math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsNaN(p.Z), test.ShouldBeFalse)
		test.That(t, p, test.ShouldResemble, r3.Vector{X: 1, Y: 2, Z: 3})
		test.That(t, c.PathSpeed(gamma), test.ShouldEqual, 0.)
	}
}

func TestCircleConcurrentEvaluation(t *testing.T) {
	c := NewCircle(r3.Vector{X: 7, Y: -1, Z: 2}, r3.Vector{X: 1, Y: 1, Z: 1}, 2.5, 4)
	expected := make([]r3.Vector, len(sampleGammas))
	for i, gamma := range sampleGammas {
		expected[i] = c.Position(gamma)
	}

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i, gamma := range sampleGammas {
				if c.Position(gamma) != expected[i] {
					t.Errorf("position at %v changed between calls", gamma)
				}
			}
		}()
	}
	wg.Wait()
}
