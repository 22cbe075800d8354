package scene

import (
	"math"

	"github.com/df07/go-wavefront-tracer/pkg/core"
)

// CameraConfig contains the user-facing camera parameters
type CameraConfig struct {
	Center        core.Vec3 // Camera position
	LookAt        core.Vec3 // Point the camera looks at
	Up            core.Vec3 // Up direction (usually 0,1,0)
	Width         int       // Image width in pixels
	Height        int       // Image height in pixels
	VFov          float64   // Vertical field of view in degrees
	Aperture      float64   // Lens diameter, 0 disables depth of field
	FocusDistance float64   // Distance to the focal plane, 0 = auto (distance to LookAt)
}

// Camera holds the precomputed basis used by primary ray generation
type Camera struct {
	Position      core.Vec3
	View          core.Vec3 // Unit forward
	Right         core.Vec3 // Unit right
	Up            core.Vec3 // Unit up, orthogonal to View and Right
	Width         int
	Height        int
	PixelLength   core.Vec2 // Per-pixel angular footprint on the unit image plane
	LensRadius    float64
	FocalDistance float64
}

// NewCamera creates a camera from a configuration
func NewCamera(config CameraConfig) Camera {
	view := config.LookAt.Subtract(config.Center).Normalize()
	right := view.Cross(config.Up).Normalize()
	up := right.Cross(view)

	aspect := float64(config.Width) / float64(max(1, config.Height))
	yScaled := math.Tan(config.VFov * math.Pi / 360.0)
	xScaled := yScaled * aspect

	focus := config.FocusDistance
	if focus <= 0 {
		focus = config.LookAt.Subtract(config.Center).Length()
	}

	return Camera{
		Position:      config.Center,
		View:          view,
		Right:         right,
		Up:            up,
		Width:         config.Width,
		Height:        config.Height,
		PixelLength:   core.NewVec2(2*xScaled/float64(max(1, config.Width)), 2*yScaled/float64(max(1, config.Height))),
		LensRadius:    config.Aperture / 2,
		FocalDistance: focus,
	}
}

// PixelCount returns Width * Height
func (c Camera) PixelCount() int {
	return c.Width * c.Height
}

// PixelIndex flattens pixel coordinates, row-major from the top-left
func (c Camera) PixelIndex(x, y int) int {
	return y*c.Width + x
}

// GetRayDirection returns the unit direction through image-plane position (px, py)
// measured in pixels; (x+0.5, y+0.5) is the center of pixel (x, y)
func (c Camera) GetRayDirection(px, py float64) core.Vec3 {
	return c.View.
		Add(c.Right.Multiply(c.PixelLength.X * (px - float64(c.Width)*0.5))).
		Subtract(c.Up.Multiply(c.PixelLength.Y * (py - float64(c.Height)*0.5))).
		Normalize()
}
