// Package spatialmath defines the rotation frames used to place canonical 2D curves in 3D.
package spatialmath

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"

	"go.viam.com/autopilot/utils"
)

// RotationMatrix is a 3x3 matrix representing a 3D orientation.
// The zero value is the zero matrix, not the identity; use NewIdentityRotationMatrix.
type RotationMatrix struct {
	mat mgl64.Mat3
}

// NewIdentityRotationMatrix returns the matrix that leaves every vector unchanged.
func NewIdentityRotationMatrix() RotationMatrix {
	return RotationMatrix{mgl64.Ident3()}
}

// NewRotationMatrixFromColumns builds a matrix whose columns are the given frame vectors, i.e. the
// matrix maps the canonical x, y and z axes onto c0, c1 and c2.
func NewRotationMatrixFromColumns(c0, c1, c2 r3.Vector) RotationMatrix {
	return RotationMatrix{mgl64.Mat3FromCols(toVec3(c0), toVec3(c1), toVec3(c2))}
}

// At returns the element at the given row and column.
func (rm RotationMatrix) At(row, col int) float64 {
	return rm.mat.At(row, col)
}

// Row returns the row at the given index.
func (rm RotationMatrix) Row(row int) r3.Vector {
	return fromVec3(rm.mat.Row(row))
}

// Column returns the column at the given index.
func (rm RotationMatrix) Column(col int) r3.Vector {
	return fromVec3(rm.mat.Col(col))
}

// Mul applies the rotation to v.
func (rm RotationMatrix) Mul(v r3.Vector) r3.Vector {
	return fromVec3(rm.mat.Mul3x1(toVec3(v)))
}

// Transpose returns the transposed matrix, which is the inverse rotation for orthonormal matrices.
func (rm RotationMatrix) Transpose() RotationMatrix {
	return RotationMatrix{rm.mat.Transpose()}
}

// Determinant returns the determinant, +1 for proper rotations.
func (rm RotationMatrix) Determinant() float64 {
	return rm.mat.Det()
}

// IsOrthonormal reports whether R * R^T is the identity within tol.
func (rm RotationMatrix) IsOrthonormal(tol float64) bool {
	return RotationMatrix{rm.mat.Mul3(rm.mat.Transpose())}.AlmostEqual(NewIdentityRotationMatrix(), tol)
}

// AlmostEqual reports whether every element of the two matrices differs by at most tol.
// mgl64's ApproxEqualThreshold is relative, which is useless for elements that should be zero.
func (rm RotationMatrix) AlmostEqual(other RotationMatrix, tol float64) bool {
	for i := range rm.mat {
		if !utils.Float64AlmostEqual(rm.mat[i], other.mat[i], tol) {
			return false
		}
	}
	return true
}

// Quaternion returns the unit quaternion describing the same rotation. Only meaningful for
// orthonormal matrices.
func (rm RotationMatrix) Quaternion() quat.Number {
	q := mgl64.Mat4ToQuat(rm.mat.Mat4())
	return quat.Number{Real: q.W, Imag: q.V[0], Jmag: q.V[1], Kmag: q.V[2]}
}

func (rm RotationMatrix) String() string {
	return fmt.Sprintf("[%.4f %.4f %.4f; %.4f %.4f %.4f; %.4f %.4f %.4f]",
		rm.At(0, 0), rm.At(0, 1), rm.At(0, 2),
		rm.At(1, 0), rm.At(1, 1), rm.At(1, 2),
		rm.At(2, 0), rm.At(2, 1), rm.At(2, 2),
	)
}

func toVec3(v r3.Vector) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

func fromVec3(v mgl64.Vec3) r3.Vector {
	return r3.Vector{X: v[0], Y: v[1], Z: v[2]}
}
