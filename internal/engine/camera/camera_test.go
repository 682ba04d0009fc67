package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

const eps = 1e-3

func TestPosition(t *testing.T) {
	c := NewPlanetCamera(100, 50)

	tests := []struct {
		name     string
		lat, lon float32
		want     mgl32.Vec3
	}{
		{"front", 0, 0, mgl32.Vec3{0, 0, 150}},
		{"north pole", mgl32.DegToRad(90), 0, mgl32.Vec3{0, 150, 0}},
		{"east", 0, mgl32.DegToRad(90), mgl32.Vec3{150, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c.Latitude, c.Longitude = tt.lat, tt.lon
			assert.True(t, c.Position().ApproxEqualThreshold(tt.want, eps), "got %v", c.Position())
		})
	}
}

func TestViewMatrixLooksAtCentre(t *testing.T) {
	c := NewPlanetCamera(100, 50)
	c.Latitude, c.Longitude = 0.4, -1.2

	view := c.ViewMatrix()

	eye := view.Mul4x1(c.Position().Vec4(1)).Vec3()
	assert.InDelta(t, 0, eye.Len(), eps, "camera must sit at the view origin")

	centre := view.Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3()
	assert.True(t, centre.ApproxEqualThreshold(mgl32.Vec3{0, 0, -150}, eps), "centre at %v", centre)
}

func TestTiltKeepsFrameOrthogonal(t *testing.T) {
	c := NewPlanetCamera(100, 1)
	c.Latitude = 0.3
	c.Tilt = 1.2

	fwd := c.Forward()
	assert.InDelta(t, 1, fwd.Len(), eps)
	assert.Less(t, fwd.Dot(c.Up()), float32(0), "tilted view still points below the horizon")

	view := c.ViewMatrix()
	ahead := view.Mul4x1(c.Position().Add(fwd).Vec4(1)).Vec3()
	assert.True(t, ahead.ApproxEqualThreshold(mgl32.Vec3{0, 0, -1}, eps), "forward maps to -Z, got %v", ahead)
}

func TestHandleZoomClamps(t *testing.T) {
	c := NewPlanetCamera(100, 50)

	c.HandleZoom(1)
	assert.InDelta(t, 45, c.Altitude, eps)

	for range 1000 {
		c.HandleZoom(5)
	}
	assert.Equal(t, c.MinAltitude, c.Altitude)

	for range 1000 {
		c.HandleZoom(-5)
	}
	assert.Equal(t, c.MaxAltitude, c.Altitude)
}

func TestHandleDrag(t *testing.T) {
	c := NewPlanetCamera(100, 200)

	c.HandleDrag(10, 0)
	assert.InDelta(t, -10*c.DragSensitivity, c.Longitude, eps)

	c.HandleDrag(0, 1e6)
	assert.Equal(t, c.MaxLatitude, c.Latitude)
	c.HandleDrag(0, -1e6)
	assert.Equal(t, -c.MaxLatitude, c.Latitude)

	// Close to the ground the same drag turns less.
	low := NewPlanetCamera(100, 1)
	low.HandleDrag(10, 0)
	assert.Less(t, -low.Longitude, -c.Longitude)
}

func TestHandleTilt(t *testing.T) {
	c := NewPlanetCamera(100, 50)

	c.HandleTilt(-100)
	assert.Equal(t, float32(0), c.Tilt)
	c.HandleTilt(1e6)
	assert.Equal(t, c.MaxTilt, c.Tilt)
}

func TestSetViewport(t *testing.T) {
	c := NewPlanetCamera(100, 50)
	c.SetViewport(800, 400)
	assert.Equal(t, float32(2), c.Aspect)

	c.SetViewport(0, 400)
	assert.Equal(t, float32(2), c.Aspect, "zero size keeps the previous aspect")
}
