package transform

import (
	"fmt"
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// DegenerateDepthEpsilon is the largest camera-space depth magnitude treated as lying on the
// focal plane. It is absolute, in the units of the world frame (metres for the default camera),
// and does not scale with the point: anything within 1e-9 of the plane z=0 is rejected,
// including scenes modelled at nanometre scale.
const DegenerateDepthEpsilon = 1e-9

var (
	// ErrNoIntrinsics is when a camera does not have intrinsics parameters or other parameters.
	ErrNoIntrinsics = errors.New("camera intrinsic parameters are not available")
	// ErrDegenerateProjection is when a point lies on the camera's focal plane.
	ErrDegenerateProjection = errors.New("point lies on the focal plane, projection is undefined")
)

// NewNoIntrinsicsError is used when the intriniscs are not defined.
func NewNoIntrinsicsError(msg string) error {
	return errors.Wrap(ErrNoIntrinsics, msg)
}

// NewDegenerateProjectionError is used when a camera-space point has (near) zero depth.
func NewDegenerateProjectionError(pt r3.Vector) error {
	return errors.Wrapf(ErrDegenerateProjection, "camera space point (%v, %v, %v)", pt.X, pt.Y, pt.Z)
}

// PinholeCameraIntrinsics holds the parameters necessary to do a perspective projection of a 3D scene to the 2D plane.
type PinholeCameraIntrinsics struct {
	Width  int     `json:"width_px"`
	Height int     `json:"height_px"`
	Fx     float64 `json:"fx"`
	Fy     float64 `json:"fy"`
	Ppx    float64 `json:"ppx"`
	Ppy    float64 `json:"ppy"`
}

// CheckValid checks if the fields for PinholeCameraIntrinsics have valid inputs.
func (params *PinholeCameraIntrinsics) CheckValid() error {
	if params == nil {
		return NewNoIntrinsicsError("Intrinsics do not exist")
	}
	if params.Width <= 0 || params.Height <= 0 {
		return NewNoIntrinsicsError(fmt.Sprintf("Invalid size (%#v, %#v)", params.Width, params.Height))
	}
	if !(params.Fx > 0) || math.IsInf(params.Fx, 0) {
		return NewNoIntrinsicsError(fmt.Sprintf("Invalid focal length Fx = %#v", params.Fx))
	}
	if !(params.Fy > 0) || math.IsInf(params.Fy, 0) {
		return NewNoIntrinsicsError(fmt.Sprintf("Invalid focal length Fy = %#v", params.Fy))
	}
	if !(params.Ppx >= 0) || math.IsInf(params.Ppx, 0) {
		return NewNoIntrinsicsError(fmt.Sprintf("Invalid principal X point Ppx = %#v", params.Ppx))
	}
	if !(params.Ppy >= 0) || math.IsInf(params.Ppy, 0) {
		return NewNoIntrinsicsError(fmt.Sprintf("Invalid principal Y point Ppy = %#v", params.Ppy))
	}
	return nil
}

// PointToPixel projects a 3D point in the camera frame to the image plane, ignoring lens distortion.
// The result is not rounded. Points with |z| <= DegenerateDepthEpsilon return ErrDegenerateProjection.
func (params *PinholeCameraIntrinsics) PointToPixel(pt r3.Vector) (r2.Point, error) {
	if math.Abs(pt.Z) <= DegenerateDepthEpsilon {
		return r2.Point{}, NewDegenerateProjectionError(pt)
	}
	u := params.Fx*pt.X/pt.Z + params.Ppx
	v := params.Fy*pt.Y/pt.Z + params.Ppy
	return r2.Point{X: u, Y: v}, nil
}

// PixelToPoint transforms a pixel to the 3D point in the camera frame at the given depth.
// The intrinsics parameters should be the ones of the sensor used to obtain the image that
// contains the pixel.
func (params *PinholeCameraIntrinsics) PixelToPoint(px r2.Point, depth float64) r3.Vector {
	xOverZ := (px.X - params.Ppx) / params.Fx
	yOverZ := (px.Y - params.Ppy) / params.Fy
	return r3.Vector{X: xOverZ * depth, Y: yOverZ * depth, Z: depth}
}

// InImage returns whether the pixel falls inside the image bounds.
func (params *PinholeCameraIntrinsics) InImage(px r2.Point) bool {
	return px.X >= 0 && px.X < float64(params.Width) && px.Y >= 0 && px.Y < float64(params.Height)
}

// GetCameraMatrix creates a new camera matrix and returns it.
// Camera matrix:
// [[fx 0 ppx],
//
//	[0 fy ppy],
//	[0 0  1]]
func (params *PinholeCameraIntrinsics) GetCameraMatrix() *mat.Dense {
	if params == nil {
		return nil
	}
	cameraMatrix := mat.NewDense(3, 3, nil)
	cameraMatrix.Set(0, 0, params.Fx)
	cameraMatrix.Set(1, 1, params.Fy)
	cameraMatrix.Set(0, 2, params.Ppx)
	cameraMatrix.Set(1, 2, params.Ppy)
	cameraMatrix.Set(2, 2, 1)
	return cameraMatrix
}
