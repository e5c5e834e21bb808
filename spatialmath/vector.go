package spatialmath

import (
	"github.com/golang/geo/r3"

	"go.viam.com/autopilot/utils"
)

// R3VectorAlmostEqual compares two r3.Vector objects and returns if the all elementwise differences are less than epsilon.
func R3VectorAlmostEqual(a, b r3.Vector, epsilon float64) bool {
	return utils.Float64AlmostEqual(a.X, b.X, epsilon) &&
		utils.Float64AlmostEqual(a.Y, b.Y, epsilon) &&
		utils.Float64AlmostEqual(a.Z, b.Z, epsilon)
}

// ProjectOntoPlane removes the component of v along the plane normal n. n need not be unit length;
// a zero n leaves v unchanged.
func ProjectOntoPlane(v, n r3.Vector) r3.Vector {
	unit := n.Normalize()
	return v.Sub(unit.Mul(v.Dot(unit)))
}
