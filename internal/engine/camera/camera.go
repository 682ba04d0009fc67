// Package camera provides a camera orbiting a planet.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// PlanetCamera orbits the centre of a sphere at a given altitude above its
// surface. Latitude and longitude place the camera, tilt lifts the view from
// straight down towards the horizon.
type PlanetCamera struct {
	Radius float32 // planet radius

	// Placement
	Altitude  float32 // height above the surface
	Latitude  float32 // radians, rotation about X
	Longitude float32 // radians, rotation about Y
	Tilt      float32 // radians, 0 looks at the planet centre

	// Projection
	FOV    float32 // vertical, radians
	Aspect float32
	Near   float32
	Far    float32

	// Constraints
	MinAltitude float32
	MaxAltitude float32
	MaxLatitude float32
	MaxTilt     float32

	// Sensitivity
	DragSensitivity float32 // radians per pixel at one radius altitude
	ZoomSensitivity float32
	TiltSensitivity float32
}

// NewPlanetCamera creates a camera above a planet of the given radius.
func NewPlanetCamera(radius, altitude float32) *PlanetCamera {
	return &PlanetCamera{
		Radius:          radius,
		Altitude:        altitude,
		FOV:             mgl32.DegToRad(60),
		Aspect:          16.0 / 9.0,
		Near:            1,
		Far:             radius * 20,
		MinAltitude:     radius * 1e-4,
		MaxAltitude:     radius * 8,
		MaxLatitude:     1.5,
		MaxTilt:         1.45,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
		TiltSensitivity: 0.005,
	}
}

// Up returns the unit direction from the planet centre to the camera.
func (c *PlanetCamera) Up() mgl32.Vec3 {
	sinLat, cosLat := math.Sincos(float64(c.Latitude))
	sinLon, cosLon := math.Sincos(float64(c.Longitude))
	return mgl32.Vec3{
		float32(cosLat * sinLon),
		float32(sinLat),
		float32(cosLat * cosLon),
	}
}

// north returns the unit surface tangent pointing towards increasing latitude.
func (c *PlanetCamera) north() mgl32.Vec3 {
	sinLat, cosLat := math.Sincos(float64(c.Latitude))
	sinLon, cosLon := math.Sincos(float64(c.Longitude))
	return mgl32.Vec3{
		float32(-sinLat * sinLon),
		float32(cosLat),
		float32(-sinLat * cosLon),
	}
}

// Position returns the camera position in world space.
func (c *PlanetCamera) Position() mgl32.Vec3 {
	return c.Up().Mul(c.Radius + c.Altitude)
}

// Forward returns the unit view direction.
func (c *PlanetCamera) Forward() mgl32.Vec3 {
	sinT, cosT := math.Sincos(float64(c.Tilt))
	return c.Up().Mul(-float32(cosT)).Add(c.north().Mul(float32(sinT)))
}

// ViewMatrix returns the view matrix for this camera.
func (c *PlanetCamera) ViewMatrix() mgl32.Mat4 {
	sinT, cosT := math.Sincos(float64(c.Tilt))
	eye := c.Position()
	up := c.north().Mul(float32(cosT)).Add(c.Up().Mul(float32(sinT)))
	return mgl32.LookAtV(eye, eye.Add(c.Forward()), up)
}

// ProjectionMatrix returns the perspective projection.
func (c *PlanetCamera) ProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(c.FOV, c.Aspect, c.Near, c.Far)
}

// SetViewport updates the aspect ratio from the window size.
func (c *PlanetCamera) SetViewport(width, height int) {
	if width > 0 && height > 0 {
		c.Aspect = float32(width) / float32(height)
	}
}

// HandleDrag orbits the camera. Movement slows down near the surface.
func (c *PlanetCamera) HandleDrag(deltaX, deltaY float32) {
	scale := c.DragSensitivity * min(c.Altitude/c.Radius, 1)
	c.Longitude -= deltaX * scale
	c.Latitude = mgl32.Clamp(c.Latitude+deltaY*scale, -c.MaxLatitude, c.MaxLatitude)
}

// HandleZoom changes the altitude proportionally to its current value.
func (c *PlanetCamera) HandleZoom(delta float32) {
	c.Altitude -= delta * c.Altitude * c.ZoomSensitivity
	c.Altitude = mgl32.Clamp(c.Altitude, c.MinAltitude, c.MaxAltitude)
}

// HandleTilt raises or lowers the view towards the horizon.
func (c *PlanetCamera) HandleTilt(delta float32) {
	c.Tilt = mgl32.Clamp(c.Tilt+delta*c.TiltSensitivity, 0, c.MaxTilt)
}
