// Package lighting provides lighting utilities for 3D rendering.
package lighting

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// SunDirection converts angles in degrees to a unit vector pointing towards
// the sun. Longitude rotates about Y starting at +Z, latitude is the
// elevation above the XZ plane.
func SunDirection(longitude, latitude float32) mgl32.Vec3 {
	sinLat, cosLat := math.Sincos(float64(mgl32.DegToRad(latitude)))
	sinLon, cosLon := math.Sincos(float64(mgl32.DegToRad(longitude)))
	return mgl32.Vec3{
		float32(cosLat * sinLon),
		float32(sinLat),
		float32(cosLat * cosLon),
	}
}

// LightDirection returns the direction sunlight travels, the negated
// SunDirection, as shaders expect it.
func LightDirection(longitude, latitude float32) mgl32.Vec3 {
	return SunDirection(longitude, latitude).Mul(-1)
}
