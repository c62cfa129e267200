package camera

import (
	"math"

	"gridcaster/internal/mathutil"
)

// FirstPersonCamera is the viewer: a position in tile units, a heading and a
// field of view. Angle zero looks along +X and angles grow towards +Y
// (screen-down in the map), so the right-hand vector is the heading turned
// by +π/2.
type FirstPersonCamera struct {
	X, Y  float64 // Position in world, tile units
	Angle float64 // Viewing angle in radians, kept in [0, 2π)
	FOV   float64 // Field of view in radians, fixed for the session
}

// NewFirstPersonCamera places a camera and normalizes its heading.
func NewFirstPersonCamera(x, y, angle, fov float64) *FirstPersonCamera {
	return &FirstPersonCamera{X: x, Y: y, Angle: mathutil.NormalizeAngle(angle), FOV: fov}
}

// GetForward returns the unit forward direction.
func (c *FirstPersonCamera) GetForward() (float64, float64) {
	return math.Cos(c.Angle), math.Sin(c.Angle)
}

// GetRight returns the unit right direction.
func (c *FirstPersonCamera) GetRight() (float64, float64) {
	return -math.Sin(c.Angle), math.Cos(c.Angle)
}

// GetPosition returns the camera's current position
func (c *FirstPersonCamera) GetPosition() (float64, float64) {
	return c.X, c.Y
}

// SetPosition sets the camera's position
func (c *FirstPersonCamera) SetPosition(x, y float64) {
	c.X = x
	c.Y = y
}

// Rotate turns the camera and renormalizes the heading.
func (c *FirstPersonCamera) Rotate(angle float64) {
	c.Angle = mathutil.NormalizeAngle(c.Angle + angle)
}

// SetAngle sets the heading, normalized into [0, 2π).
func (c *FirstPersonCamera) SetAngle(angle float64) {
	c.Angle = mathutil.NormalizeAngle(angle)
}

// RayAngle returns the absolute angle of a ray at the given offset from the heading.
func (c *FirstPersonCamera) RayAngle(offset float64) float64 {
	return mathutil.NormalizeAngle(c.Angle + offset)
}
