// Package lod provides adaptive geodesic level-of-detail triangulation for
// planet-scale spheres.
//
// A Triangulator starts from the 20 faces of an icosahedron and subdivides
// them on the CPU, driven by frustum visibility, camera distance and planet
// curvature. The output is a flat list of PatchInstance records, each one a
// leaf triangle that is drawn with a shared template grid.
package lod

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxLevelLimit is the deepest subdivision level a planet may request.
const MaxLevelLimit = 22

// VolumeCheck is the result of a frustum volume test.
type VolumeCheck int

const (
	Outside VolumeCheck = iota
	Intersect
	Contains
)

func (v VolumeCheck) String() string {
	switch v {
	case Outside:
		return "outside"
	case Intersect:
		return "intersect"
	case Contains:
		return "contains"
	default:
		return "unknown"
	}
}

// Decision is the outcome of SplitHeuristic for one triangle.
type Decision int

const (
	Cull      Decision = iota // emit nothing
	Leaf                      // emit one instance
	Split                     // subdivide, children skip the frustum test
	SplitCull                 // subdivide, children keep testing the frustum
)

func (d Decision) String() string {
	switch d {
	case Cull:
		return "cull"
	case Leaf:
		return "leaf"
	case Split:
		return "split"
	case SplitCull:
		return "splitcull"
	default:
		return "unknown"
	}
}

// Culler answers visibility questions in the object space of the planet.
type Culler interface {
	// SetCullTransform sets the object-to-world matrix of the tested geometry.
	SetCullTransform(world mgl32.Mat4)
	// Update recomputes the frustum planes from the live camera.
	Update()
	// ContainsTriVolume classifies the triangle abc extruded outward by heightMult.
	ContainsTriVolume(a, b, c mgl32.Vec3, heightMult float32) VolumeCheck
	// PositionObjectSpace returns the camera position in object space.
	PositionObjectSpace() mgl32.Vec3
	// FOV returns the vertical field of view in radians.
	FOV() float32
}

// PlanetParams describes the sphere being triangulated.
type PlanetParams struct {
	Radius    float32
	MaxHeight float32    // highest terrain elevation above Radius
	MaxLevel  int        // deepest subdivision level
	World     mgl32.Mat4 // object-to-world transform
}

// DefaultPlanet returns an earth-like planet in kilometres.
func DefaultPlanet() PlanetParams {
	return PlanetParams{
		Radius:    6371,
		MaxHeight: 10.5,
		MaxLevel:  15,
		World:     mgl32.Ident4(),
	}
}

// ViewContext carries the per-update camera state.
type ViewContext struct {
	Culler        Culler
	ViewportWidth int
	Locked        bool // reuse the previous frustum planes
}

// Options tunes triangulation.
type Options struct {
	// AllowedTriPx is the on-screen edge length, in pixels, a leaf may have.
	AllowedTriPx float32
	// Workers > 1 fans the base faces out over that many goroutines.
	Workers int
	// RegenThreshold is the object-space camera movement below which Update
	// reports no regeneration. Zero regenerates on every update.
	RegenThreshold float32
}

// DefaultOptions returns the options used by the viewer.
func DefaultOptions() Options {
	return Options{
		AllowedTriPx: 300,
		Workers:      1,
	}
}

// PatchInstance is one leaf triangle expressed as an affine frame.
// A patch-local (u, v) maps to A + u*R + v*S.
type PatchInstance struct {
	Level uint8
	A     mgl32.Vec3
	R     mgl32.Vec3 // b - a
	S     mgl32.Vec3 // c - a
}

// Corners returns the three corners of the instance.
func (p PatchInstance) Corners() (a, b, c mgl32.Vec3) {
	return p.A, p.A.Add(p.R), p.A.Add(p.S)
}

// Stats summarises the last generation pass.
type Stats struct {
	Instances    int
	Culled       int
	Splits       int
	FrustumTests int
	DeepestLevel int
	Duration     time.Duration
}

func (s *Stats) merge(o Stats) {
	s.Instances += o.Instances
	s.Culled += o.Culled
	s.Splits += o.Splits
	s.FrustumTests += o.FrustumTests
	if o.DeepestLevel > s.DeepestLevel {
		s.DeepestLevel = o.DeepestLevel
	}
}
