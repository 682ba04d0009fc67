package lighting

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestSunDirection(t *testing.T) {
	tests := []struct {
		name     string
		lon, lat float32
		want     mgl32.Vec3
	}{
		{"front", 0, 0, mgl32.Vec3{0, 0, 1}},
		{"east", 90, 0, mgl32.Vec3{1, 0, 0}},
		{"zenith", 0, 90, mgl32.Vec3{0, 1, 0}},
		{"behind", 180, 0, mgl32.Vec3{0, 0, -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SunDirection(tt.lon, tt.lat)
			if !got.ApproxEqualThreshold(tt.want, 1e-5) {
				t.Errorf("SunDirection(%v, %v) = %v, want %v", tt.lon, tt.lat, got, tt.want)
			}
		})
	}
}

func TestLightDirection(t *testing.T) {
	sun := SunDirection(30, 45)
	light := LightDirection(30, 45)
	if !light.Add(sun).ApproxEqualThreshold(mgl32.Vec3{}, 1e-6) {
		t.Errorf("light %v is not the opposite of sun %v", light, sun)
	}
	if l := sun.Len(); l < 0.9999 || l > 1.0001 {
		t.Errorf("sun direction not normalized: %v", l)
	}
}
