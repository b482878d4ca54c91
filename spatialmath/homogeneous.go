package spatialmath

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/num/quat"
)

// ErrSingularTransform is returned when a homogeneous matrix has no inverse.
var ErrSingularTransform = errors.New("homogeneous transform is singular")

// HomogeneousFromRotationTranslation builds the 4x4 matrix that rotates a point by q and then
// translates it by t. The rotation block is computed from the raw components of q, so a non-unit
// q produces a scaled, non-rigid matrix rather than being normalized.
func HomogeneousFromRotationTranslation(q Quaternion, t r3.Vector) mgl64.Mat4 {
	x2 := q.X + q.X
	y2 := q.Y + q.Y
	z2 := q.Z + q.Z

	xx := q.X * x2
	xy := q.X * y2
	xz := q.X * z2
	yy := q.Y * y2
	yz := q.Y * z2
	zz := q.Z * z2
	wx := q.W * x2
	wy := q.W * y2
	wz := q.W * z2

	// mgl64 matrices are column major.
	return mgl64.Mat4{
		1 - (yy + zz), xy + wz, xz - wy, 0,
		xy - wz, 1 - (xx + zz), yz + wx, 0,
		xz + wy, yz - wx, 1 - (xx + yy), 0,
		t.X, t.Y, t.Z, 1,
	}
}

// InvertHomogeneous returns the general inverse of m. It does not assume m is rigid.
func InvertHomogeneous(m mgl64.Mat4) (mgl64.Mat4, error) {
	// mgl64 returns the zero matrix under the same condition, check first so callers get an error.
	if det := m.Det(); mgl64.FloatEqual(det, 0) {
		return mgl64.Mat4{}, errors.Wrapf(ErrSingularTransform, "determinant %v", det)
	}
	return m.Inv(), nil
}

// TransformPoint applies m to p as a homogeneous point with w=1 and divides by the resulting w.
func TransformPoint(m mgl64.Mat4, p r3.Vector) r3.Vector {
	v := mgl64.TransformCoordinate(mgl64.Vec3{p.X, p.Y, p.Z}, m)
	return r3.Vector{X: v[0], Y: v[1], Z: v[2]}
}

// Translation returns the translation column of m.
func Translation(m mgl64.Mat4) r3.Vector {
	c := m.Col(3)
	return r3.Vector{X: c[0], Y: c[1], Z: c[2]}
}

// RotateVector rotates v by the unit quaternion q, computing q * v * conj(q).
func RotateVector(q Quaternion, v r3.Vector) r3.Vector {
	qn := q.Number()
	rotated := quat.Mul(quat.Mul(qn, quat.Number{Imag: v.X, Jmag: v.Y, Kmag: v.Z}), quat.Conj(qn))
	return r3.Vector{X: rotated.Imag, Y: rotated.Jmag, Z: rotated.Kmag}
}

// RigidInverseTransformPoint maps p into the frame whose pose in the parent is rotation q followed
// by translation t, without forming a matrix: conj(q) * (p - t) * q. It is only exact for unit q.
func RigidInverseTransformPoint(q Quaternion, t r3.Vector, p r3.Vector) r3.Vector {
	conj := QuaternionFromNumber(quat.Conj(q.Number()))
	return RotateVector(conj, p.Sub(t))
}
