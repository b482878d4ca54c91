package transform

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"go.viam.com/pinhole/spatialmath"
)

// ErrInvalidExtrinsics is when a camera pose cannot describe any placement in the world.
var ErrInvalidExtrinsics = errors.New("invalid camera extrinsic parameters")

// CameraExtrinsics is the pose of a camera in the world frame: where it sits and which way it faces.
// Rotation is expected to be a unit quaternion; it is used as given.
type CameraExtrinsics struct {
	Translation r3.Vector              `json:"translation"`
	Rotation    spatialmath.Quaternion `json:"rotation"`
}

// CheckValid checks that every component is finite and that the rotation is not the zero
// quaternion. A rotation that is merely not unit length passes; see Rotation.IsUnit.
func (ext *CameraExtrinsics) CheckValid() error {
	if ext == nil {
		return errors.Wrap(ErrInvalidExtrinsics, "extrinsics do not exist")
	}
	t := ext.Translation
	for _, v := range []float64{t.X, t.Y, t.Z} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.Wrapf(ErrInvalidExtrinsics, "non-finite translation (%v, %v, %v)", t.X, t.Y, t.Z)
		}
	}
	if !ext.Rotation.IsFinite() {
		return errors.Wrapf(ErrInvalidExtrinsics, "non-finite rotation %+v", ext.Rotation)
	}
	if ext.Rotation.IsZero() {
		return errors.Wrap(ErrInvalidExtrinsics, "rotation quaternion is zero")
	}
	return nil
}

// CamWorldMatrix returns the homogeneous matrix taking camera-frame points to the world frame.
// ext must not be nil.
func (ext *CameraExtrinsics) CamWorldMatrix() mgl64.Mat4 {
	return spatialmath.HomogeneousFromRotationTranslation(ext.Rotation, ext.Translation)
}

// WorldToCameraMatrix returns the general inverse of CamWorldMatrix.
func (ext *CameraExtrinsics) WorldToCameraMatrix() (mgl64.Mat4, error) {
	return spatialmath.InvertHomogeneous(ext.CamWorldMatrix())
}
