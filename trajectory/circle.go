package trajectory

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"

	"go.viam.com/autopilot/spatialmath"
	"go.viam.com/autopilot/utils"
)

// CircleKind names the circle trajectory family.
const CircleKind = "circle"

// pathSpeedEpsilon replaces a non-finite path speed.
const pathSpeedEpsilon = 1e-8

// Circle is a circular path of a given radius around center, lying in the plane orthogonal to
// normal, travelled once as gamma goes from 0 to 1.
type Circle struct {
	center       r3.Vector
	normal       r3.Vector
	radius       float64
	vehicleSpeed float64

	// rotation carries the canonical XY circle into the plane of normal.
	rotation spatialmath.RotationMatrix
}

// NewCircle returns a circle trajectory. It never fails: normal does not have to be unit length,
// but a zero normal or a negative radius produce a meaningless (though finite) curve.
func NewCircle(center, normal r3.Vector, radius, vehicleSpeed float64) *Circle {
	return &Circle{
		center:       center,
		normal:       normal,
		radius:       radius,
		vehicleSpeed: vehicleSpeed,
		rotation:     spatialmath.PlaneRotation(normal),
	}
}

// Kind returns CircleKind.
func (c *Circle) Kind() string {
	return CircleKind
}

// Center returns the center of the circle.
func (c *Circle) Center() r3.Vector {
	return c.center
}

// Normal returns the plane normal exactly as given at construction.
func (c *Circle) Normal() r3.Vector {
	return c.normal
}

// Radius returns the radius of the circle.
func (c *Circle) Radius() float64 {
	return c.radius
}

// Rotation returns the frame built from the normal.
func (c *Circle) Rotation() spatialmath.RotationMatrix {
	return c.rotation
}

// Domain returns [0, 1].
func (c *Circle) Domain() Domain {
	return UnitDomain()
}

// Position returns the point on the circle at gamma. gamma is not clamped; the curve repeats
// every unit of gamma.
func (c *Circle) Position(gamma float64) r3.Vector {
	sin, cos := math.Sincos(gamma * utils.TwoPi)
	pd := r3.Vector{X: c.radius * cos, Y: c.radius * sin, Z: 0}

	// the offset goes on after rotating, otherwise it would be rotated too
	return c.rotation.Mul(pd).Add(c.center)
}

// Velocity returns dPosition/dgamma.
func (c *Circle) Velocity(gamma float64) r3.Vector {
	sin, cos := math.Sincos(gamma * utils.TwoPi)
	k := c.radius * utils.TwoPi
	return c.rotation.Mul(r3.Vector{X: -k * sin, Y: k * cos, Z: 0})
}

// Acceleration returns d2Position/dgamma2.
func (c *Circle) Acceleration(gamma float64) r3.Vector {
	sin, cos := math.Sincos(gamma * utils.TwoPi)
	k := c.radius * utils.Square(utils.TwoPi)
	return c.rotation.Mul(r3.Vector{X: -k * cos, Y: -k * sin, Z: 0})
}

// Jerk returns d3Position/dgamma3.
func (c *Circle) Jerk(gamma float64) r3.Vector {
	sin, cos := math.Sincos(gamma * utils.TwoPi)
	k := c.radius * utils.Cube(utils.TwoPi)
	return c.rotation.Mul(r3.Vector{X: k * sin, Y: -k * cos, Z: 0})
}

// Yaw returns the heading that points from the position at gamma towards the center.
func (c *Circle) Yaw(gamma float64) float64 {
	toCenter := c.center.Sub(c.Position(gamma))
	return math.Atan2(toCenter.Y, toCenter.X)
}

// YawRate is always zero: the heading to the center is treated as quasi-static, not
// differentiated.
func (c *Circle) YawRate(gamma float64) float64 {
	return 0
}

// VehicleSpeed returns the constant speed the vehicle should travel at.
func (c *Circle) VehicleSpeed(gamma float64) float64 {
	return c.vehicleSpeed
}

// PathSpeed converts the vehicle speed into a rate of change of gamma. A circle with no extent
// (zero radius or zero normal) has no path to advance along and yields 0. Any other non-finite
// quotient (overflow) is replaced by a tiny positive rate.
func (c *Circle) PathSpeed(gamma float64) float64 {
	norm := c.Velocity(gamma).Norm()
	if norm == 0 {
		return 0
	}
	vd := c.vehicleSpeed / norm
	if !utils.IsFinite(vd) {
		return pathSpeedEpsilon
	}
	return vd
}

func (c *Circle) String() string {
	return fmt.Sprintf("circle{center: %v, normal: %v, radius: %v, speed: %v}",
		c.center, c.normal, c.radius, c.vehicleSpeed)
}
