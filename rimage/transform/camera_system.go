package transform

import (
	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
)

// Projection is where a world point lands on the image plane.
type Projection struct {
	// Pixel is the unrounded image coordinate. It may fall outside the image bounds.
	Pixel r2.Point
	// CameraPoint is the world point expressed in the camera frame.
	CameraPoint r3.Vector
	// BehindCamera is set when the point has negative depth. Pixel is still the
	// mathematical projection, mirrored through the optical center.
	BehindCamera bool
}

// Projector maps a 3D world point to a pixel of a camera's image plane.
type Projector interface {
	Project(worldPoint r3.Vector) (Projection, error)
}
