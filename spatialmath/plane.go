package spatialmath

import (
	"github.com/golang/geo/r3"
)

// PlaneDegeneracyTolerance is how close the absolute unit normal may be to +Z before the plane
// is treated as the canonical XY plane.
const PlaneDegeneracyTolerance = 1e-4

// canonicalUp is the normal of the canonical XY plane.
var canonicalUp = r3.Vector{X: 0, Y: 0, Z: 1}

// PlaneRotation returns the rotation that carries the canonical XY plane onto the plane
// orthogonal to normal. The columns of the result are the frame vectors u1, u2 and u3 where
// u3 is the unit normal, so R*(0,0,1) = u3 and anything in the XY plane stays orthogonal to it.
//
// A normal parallel to +Z or -Z (within PlaneDegeneracyTolerance) yields the identity, since the
// cross product below would be close to zero and badly conditioned. A zero normal is a caller
// error; it yields the zero matrix, collapsing everything it rotates onto the origin.
func PlaneRotation(normal r3.Vector) RotationMatrix {
	u3 := normal.Normalize()
	if u3.Abs().Sub(canonicalUp).Norm() <= PlaneDegeneracyTolerance {
		return NewIdentityRotationMatrix()
	}

	u1 := u3.Cross(canonicalUp).Normalize()
	u2 := u3.Cross(u1).Normalize()
	return NewRotationMatrixFromColumns(u1, u2, u3)
}
