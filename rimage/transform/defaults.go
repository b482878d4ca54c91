package transform

import (
	"github.com/golang/geo/r3"

	"go.viam.com/pinhole/spatialmath"
)

// DefaultIntrinsics returns the intrinsics of the 3840x2160 camera the module ships calibrated for.
func DefaultIntrinsics() *PinholeCameraIntrinsics {
	return &PinholeCameraIntrinsics{
		Width:  3840,
		Height: 2160,
		Fx:     1905.97,
		Fy:     1905.79,
		Ppx:    1930.25,
		Ppy:    1082.45,
	}
}

// DefaultExtrinsics returns the world pose of the camera described by DefaultIntrinsics.
func DefaultExtrinsics() *CameraExtrinsics {
	return &CameraExtrinsics{
		Translation: r3.Vector{X: 2.1311, Y: -0.001381, Z: 1.5161},
		Rotation:    spatialmath.NewQuaternion(0.495045, -0.498663, 0.503363, -0.502882),
	}
}
