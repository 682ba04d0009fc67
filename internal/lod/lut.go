package lod

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// distanceLUTPadding extends the distance table past MaxLevel so the shader
// can look one level deeper without running off the end.
const distanceLUTPadding = 5

// precalculateCulling fills the dot and height multiplier tables. Both only
// depend on the planet, so they are stable across camera changes.
//
// Level l is represented by the corner triangle reached by l subdivisions of
// the first base face. Its centre-to-corner angle approximates the angular
// extent of every triangle at that level.
func (t *Triangulator) precalculateCulling() {
	r := float64(t.planet.Radius)
	h := float64(t.planet.MaxHeight)

	heightAngle := math.Acos(r / (r + h))
	elevation := 1 + h/r

	t.dotLUT = t.dotLUT[:0]
	t.heightMultLUT = t.heightMultLUT[:0]

	// Deep levels span angles below float32 resolution, hence float64.
	tri := t.base[0]
	a, b, c := vec64(tri.a), vec64(tri.b), vec64(tri.c)
	for level := 0; level <= t.planet.MaxLevel; level++ {
		center := a.Add(b).Add(c).Normalize()
		cosAngle := mgl64.Clamp(center.Dot(a.Normalize()), -1, 1)

		t.heightMultLUT = append(t.heightMultLUT, float32(elevation/cosAngle))

		cull := math.Min(math.Acos(cosAngle)+heightAngle, math.Pi/2)
		t.dotLUT = append(t.dotLUT, float32(math.Sin(cull)))

		ab, ac := a.Add(b), a.Add(c)
		b, c = ab.Mul(r/ab.Len()), ac.Mul(r/ac.Len())
	}
}

func vec64(v mgl32.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{float64(v[0]), float64(v[1]), float64(v[2])}
}

// precalculateDistance fills the split distance table for the given vertical
// field of view (radians) and viewport width (pixels). A triangle at its
// level's distance spans AllowedTriPx pixels under a perspective projection.
// A non-positive width (minimized window) reuses the last real width.
func (t *Triangulator) precalculateDistance(fov float32, viewportWidth int) {
	if viewportWidth > 0 {
		t.lutWidth = viewportWidth
	}
	// Before any real viewport, one allowed triangle covers the whole view.
	pixels := float64(t.opts.AllowedTriPx)
	if t.lutWidth > 0 {
		pixels = float64(t.lutWidth)
	}

	tri := t.base[0]
	size := tri.a.Sub(tri.b).Len()
	frac := float32(2 * math.Tan(float64(fov)/2) * float64(t.opts.AllowedTriPx) / pixels)

	n := t.planet.MaxLevel + distanceLUTPadding
	t.distanceLUT = t.distanceLUT[:0]
	for level := 0; level < n; level++ {
		t.distanceLUT = append(t.distanceLUT, size/frac)
		size *= 0.5
	}
}

// Precalculate recomputes all three lookup tables.
func (t *Triangulator) Precalculate(fov float32, viewportWidth int) {
	t.precalculateCulling()
	t.precalculateDistance(fov, viewportWidth)
}

// DotLUT returns the backface threshold per level.
func (t *Triangulator) DotLUT() []float32 { return t.dotLUT }

// HeightMultLUT returns the frustum volume extrusion factor per level.
func (t *Triangulator) HeightMultLUT() []float32 { return t.heightMultLUT }

// DistanceLUT returns the split distance per level.
func (t *Triangulator) DistanceLUT() []float32 { return t.distanceLUT }
