// Package trajectory defines trajectories parameterized by a normalized progress scalar, gamma,
// instead of time. Controllers advance gamma at the rate given by PathSpeed.
package trajectory

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"go.viam.com/autopilot/utils"
)

// Parametric is a spatial path that is a function of a progress parameter gamma over a fixed
// domain. Implementations are immutable and safe for concurrent use.
type Parametric interface {
	// Domain returns the range gamma is expected to span.
	Domain() Domain

	// Position returns the desired position at gamma.
	Position(gamma float64) r3.Vector
	// Velocity returns the first derivative of Position with respect to gamma.
	Velocity(gamma float64) r3.Vector
	// Acceleration returns the second derivative of Position with respect to gamma.
	Acceleration(gamma float64) r3.Vector
	// Jerk returns the third derivative of Position with respect to gamma.
	Jerk(gamma float64) r3.Vector

	// Yaw returns the desired heading in radians at gamma.
	Yaw(gamma float64) float64
	// YawRate returns the derivative of Yaw with respect to gamma.
	YawRate(gamma float64) float64

	// VehicleSpeed returns the desired speed of the vehicle along the path at gamma.
	VehicleSpeed(gamma float64) float64
	// PathSpeed returns the rate of change of gamma that realizes VehicleSpeed at gamma.
	PathSpeed(gamma float64) float64
}

// Domain is the closed range of the progress parameter.
type Domain struct {
	Start float64
	End   float64
}

// NewDomain returns the domain [start, end]. start must be strictly less than end.
func NewDomain(start, end float64) (Domain, error) {
	if !utils.IsFinite(start) || !utils.IsFinite(end) {
		return Domain{}, errors.Errorf("domain bounds must be finite, got [%v, %v]", start, end)
	}
	if start >= end {
		return Domain{}, errors.Errorf("domain start %v must be less than end %v", start, end)
	}
	return Domain{Start: start, End: end}, nil
}

// UnitDomain returns [0, 1].
func UnitDomain() Domain {
	return Domain{Start: 0, End: 1}
}

// Length returns End - Start.
func (d Domain) Length() float64 {
	return d.End - d.Start
}

// Contains reports whether gamma lies within the domain, bounds included.
func (d Domain) Contains(gamma float64) bool {
	return gamma >= d.Start && gamma <= d.End
}

// Clamp limits gamma to the domain.
func (d Domain) Clamp(gamma float64) float64 {
	return math.Max(d.Start, math.Min(d.End, gamma))
}
