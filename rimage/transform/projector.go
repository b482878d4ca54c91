package transform

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"go.viam.com/pinhole/logging"
	"go.viam.com/pinhole/spatialmath"
)

// UnitQuaternionTolerance is how far the rotation's length may stray from 1 before
// NewPinholeProjector warns that the pose is not rigid.
const UnitQuaternionTolerance = 1e-5

// ProjectPoint projects worldPoint onto the image plane of the camera described by intrinsics and
// extrinsics. The camera pose matrix is built and inverted on every call. Lens distortion is ignored.
// A nil parameter set is an error. Otherwise the values are used as given, without CheckValid.
func ProjectPoint(
	worldPoint r3.Vector,
	intrinsics *PinholeCameraIntrinsics,
	extrinsics *CameraExtrinsics,
) (Projection, error) {
	if intrinsics == nil {
		return Projection{}, NewNoIntrinsicsError("Intrinsics do not exist")
	}
	if extrinsics == nil {
		return Projection{}, errors.Wrap(ErrInvalidExtrinsics, "extrinsics do not exist")
	}
	worldToCam, err := extrinsics.WorldToCameraMatrix()
	if err != nil {
		return Projection{}, err
	}
	return projectWithMatrix(worldPoint, intrinsics, worldToCam)
}

func projectWithMatrix(worldPoint r3.Vector, intrinsics *PinholeCameraIntrinsics, worldToCam mgl64.Mat4) (Projection, error) {
	camPoint := spatialmath.TransformPoint(worldToCam, worldPoint)
	proj := Projection{CameraPoint: camPoint, BehindCamera: camPoint.Z < 0}
	px, err := intrinsics.PointToPixel(camPoint)
	if err != nil {
		return proj, err
	}
	proj.Pixel = px
	return proj, nil
}

// PinholeProjector projects world points for one fixed camera. The world-to-camera matrix is
// computed once; it is never written afterwards, so Project is safe for concurrent use.
type PinholeProjector struct {
	intrinsics PinholeCameraIntrinsics
	extrinsics CameraExtrinsics
	worldToCam mgl64.Mat4
	logger     logging.Logger
}

// NewPinholeProjector returns a projector for the given camera. The parameters are copied.
// A rotation that is not unit length is used as given and only logged.
func NewPinholeProjector(
	intrinsics *PinholeCameraIntrinsics,
	extrinsics *CameraExtrinsics,
	logger logging.Logger,
) (*PinholeProjector, error) {
	if err := intrinsics.CheckValid(); err != nil {
		return nil, err
	}
	if err := extrinsics.CheckValid(); err != nil {
		return nil, err
	}
	if !extrinsics.Rotation.IsUnit(UnitQuaternionTolerance) {
		logger.Warnw("camera rotation is not a unit quaternion, projections will not be rigid",
			"rotation", extrinsics.Rotation, "norm", extrinsics.Rotation.Norm())
	}
	worldToCam, err := extrinsics.WorldToCameraMatrix()
	if err != nil {
		return nil, err
	}
	logger.Debugw("pinhole projector ready",
		"fx", intrinsics.Fx, "fy", intrinsics.Fy, "ppx", intrinsics.Ppx, "ppy", intrinsics.Ppy,
		"translation", extrinsics.Translation, "rotation", extrinsics.Rotation)
	return &PinholeProjector{
		intrinsics: *intrinsics,
		extrinsics: *extrinsics,
		worldToCam: worldToCam,
		logger:     logger,
	}, nil
}

// Project returns the pixel worldPoint projects to. Points on the focal plane return
// ErrDegenerateProjection along with their camera-frame coordinates.
func (pp *PinholeProjector) Project(worldPoint r3.Vector) (Projection, error) {
	return projectWithMatrix(worldPoint, &pp.intrinsics, pp.worldToCam)
}

// Intrinsics returns a copy of the camera intrinsics.
func (pp *PinholeProjector) Intrinsics() PinholeCameraIntrinsics {
	return pp.intrinsics
}

// Extrinsics returns a copy of the camera extrinsics.
func (pp *PinholeProjector) Extrinsics() CameraExtrinsics {
	return pp.extrinsics
}

// WorldToCameraMatrix returns the cached inverse of the camera pose.
func (pp *PinholeProjector) WorldToCameraMatrix() mgl64.Mat4 {
	return pp.worldToCam
}

// ProjectionMatrix returns the 3x4 matrix K * [R|t] of the world-to-camera transform. Multiplying
// a homogeneous world point by it and dividing by the third row gives the projected pixel.
func (pp *PinholeProjector) ProjectionMatrix() *mat.Dense {
	extrinsic := mat.NewDense(3, 4, nil)
	for r := 0; r < 3; r++ {
		for c := 0; c < 4; c++ {
			extrinsic.Set(r, c, pp.worldToCam.At(r, c))
		}
	}
	var p mat.Dense
	p.Mul(pp.intrinsics.GetCameraMatrix(), extrinsic)
	return &p
}
