// Package spatialmath defines the rigid-body math used to move points between a camera frame
// and the world frame.
package spatialmath

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
)

// Quaternion is a rotation quaternion stored in (x, y, z, w) order, which is the order camera
// extrinsics are usually published in. It is a plain value: nothing in this package normalizes it.
type Quaternion struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
	W float64 `json:"w"`
}

// NewQuaternion returns a Quaternion from its vector part and its scalar part.
func NewQuaternion(x, y, z, w float64) Quaternion {
	return Quaternion{X: x, Y: y, Z: z, W: w}
}

// NewZeroRotation returns the identity rotation.
func NewZeroRotation() Quaternion {
	return Quaternion{W: 1}
}

// QuaternionFromNumber converts a gonum quaternion, whose Real part is the scalar, to a Quaternion.
func QuaternionFromNumber(q quat.Number) Quaternion {
	return Quaternion{X: q.Imag, Y: q.Jmag, Z: q.Kmag, W: q.Real}
}

// Number returns q as a gonum quaternion.
func (q Quaternion) Number() quat.Number {
	return quat.Number{Real: q.W, Imag: q.X, Jmag: q.Y, Kmag: q.Z}
}

// Norm returns the Euclidean length of q.
func (q Quaternion) Norm() float64 {
	return quat.Abs(q.Number())
}

// IsUnit reports whether the length of q is within tol of 1.
func (q Quaternion) IsUnit(tol float64) bool {
	return math.Abs(1-q.Norm()) <= tol
}

// IsZero reports whether every component of q is zero.
func (q Quaternion) IsZero() bool {
	return q.X == 0 && q.Y == 0 && q.Z == 0 && q.W == 0
}

// IsFinite reports whether every component of q is a finite number.
func (q Quaternion) IsFinite() bool {
	return !quat.IsNaN(q.Number()) && !quat.IsInf(q.Number())
}

// QuaternionAlmostEqual returns whether two quaternions are component-wise equal within tol.
func QuaternionAlmostEqual(a, b Quaternion, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol &&
		math.Abs(a.Y-b.Y) <= tol &&
		math.Abs(a.Z-b.Z) <= tol &&
		math.Abs(a.W-b.W) <= tol
}
