package spatialmath

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/pkg/errors"
	"go.viam.com/test"
)

var (
	rot90z    = NewQuaternion(0, 0, math.Sin(math.Pi/4), math.Cos(math.Pi/4))
	camRot    = NewQuaternion(0.495045, -0.498663, 0.503363, -0.502882)
	camOrigin = r3.Vector{X: 2.1311, Y: -0.001381, Z: 1.5161}
)

func vectorsAlmostEqual(t *testing.T, actual, expected r3.Vector, tol float64) {
	t.Helper()
	if diff := cmp.Diff(expected, actual, cmpopts.EquateApprox(0, tol)); diff != "" {
		t.Errorf("vector mismatch (-want +got):\n%s", diff)
	}
}

// mgl64's ApproxEqualThreshold squares the threshold near zero, compare entries absolutely instead.
func matricesAlmostEqual(t *testing.T, actual, expected mgl64.Mat4, tol float64) {
	t.Helper()
	for i := range actual {
		test.That(t, actual[i], test.ShouldAlmostEqual, expected[i], tol)
	}
}

func TestHomogeneousFromRotationTranslation(t *testing.T) {
	t.Run("identity rotation is a pure translation", func(t *testing.T) {
		m := HomogeneousFromRotationTranslation(NewZeroRotation(), r3.Vector{X: 1, Y: -2, Z: 3})
		test.That(t, m, test.ShouldResemble, mgl64.Translate3D(1, -2, 3))
		test.That(t, Translation(m), test.ShouldResemble, r3.Vector{X: 1, Y: -2, Z: 3})
	})

	t.Run("rotation is applied before translation", func(t *testing.T) {
		m := HomogeneousFromRotationTranslation(rot90z, r3.Vector{X: 1, Y: 2, Z: 3})
		vectorsAlmostEqual(t, TransformPoint(m, r3.Vector{X: 1}), r3.Vector{X: 1, Y: 3, Z: 3}, 1e-12)
		vectorsAlmostEqual(t, TransformPoint(m, r3.Vector{}), r3.Vector{X: 1, Y: 2, Z: 3}, 1e-12)
	})

	t.Run("agrees with mgl64 quaternion matrix", func(t *testing.T) {
		q := mgl64.Quat{W: camRot.W, V: mgl64.Vec3{camRot.X, camRot.Y, camRot.Z}}
		expected := mgl64.Translate3D(camOrigin.X, camOrigin.Y, camOrigin.Z).Mul4(q.Mat4())
		actual := HomogeneousFromRotationTranslation(camRot, camOrigin)
		matricesAlmostEqual(t, actual, expected, 1e-14)
	})

	t.Run("non unit quaternion is not normalized", func(t *testing.T) {
		scaled := NewQuaternion(0, 0, 0, 2)
		m := HomogeneousFromRotationTranslation(scaled, r3.Vector{})
		// raw formula: 1-(yy+zz) with zero vector part stays 1, the matrix is the identity
		test.That(t, m, test.ShouldResemble, mgl64.Ident4())

		skewed := NewQuaternion(1, 0, 0, 1)
		m = HomogeneousFromRotationTranslation(skewed, r3.Vector{})
		test.That(t, m.At(1, 1), test.ShouldEqual, -1.)
		test.That(t, m.At(2, 1), test.ShouldEqual, 2.)
	})
}

func TestInvertHomogeneous(t *testing.T) {
	m := HomogeneousFromRotationTranslation(camRot, camOrigin)
	inv, err := InvertHomogeneous(m)
	test.That(t, err, test.ShouldBeNil)
	matricesAlmostEqual(t, inv.Mul4(m), mgl64.Ident4(), 1e-12)

	vectorsAlmostEqual(t, TransformPoint(inv, camOrigin), r3.Vector{}, 1e-12)

	_, err = InvertHomogeneous(mgl64.Mat4{})
	test.That(t, errors.Is(err, ErrSingularTransform), test.ShouldBeTrue)

	flat := mgl64.Scale3D(1, 1, 0)
	_, err = InvertHomogeneous(flat)
	test.That(t, errors.Is(err, ErrSingularTransform), test.ShouldBeTrue)
}

func TestTransformPointDividesByW(t *testing.T) {
	m := mgl64.Ident4()
	m.Set(3, 3, 2)
	vectorsAlmostEqual(t, TransformPoint(m, r3.Vector{X: 2, Y: 4, Z: 6}), r3.Vector{X: 1, Y: 2, Z: 3}, 0)
}

func TestRigidInverseMatchesGeneralInverse(t *testing.T) {
	unit := NewQuaternion(camRot.X, camRot.Y, camRot.Z, camRot.W)
	n := unit.Norm()
	unit = NewQuaternion(unit.X/n, unit.Y/n, unit.Z/n, unit.W/n)
	test.That(t, unit.IsUnit(1e-12), test.ShouldBeTrue)

	inv, err := InvertHomogeneous(HomogeneousFromRotationTranslation(unit, camOrigin))
	test.That(t, err, test.ShouldBeNil)

	for _, p := range []r3.Vector{
		{X: 0, Y: 0, Z: 0},
		{X: 3.1311, Y: -0.001381, Z: 1.5161},
		{X: 12.1311, Y: 2, Z: 3},
		{X: -40, Y: 17.5, Z: 0.25},
	} {
		vectorsAlmostEqual(t, RigidInverseTransformPoint(unit, camOrigin, p), TransformPoint(inv, p), 1e-12)
	}
}

func TestRotateVector(t *testing.T) {
	vectorsAlmostEqual(t, RotateVector(rot90z, r3.Vector{X: 1}), r3.Vector{Y: 1}, 1e-15)
	vectorsAlmostEqual(t, RotateVector(NewZeroRotation(), r3.Vector{X: 1, Y: 2, Z: 3}), r3.Vector{X: 1, Y: 2, Z: 3}, 0)
}
