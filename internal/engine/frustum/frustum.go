// Package frustum provides view frustum culling against geometry that lives in
// its own object space.
package frustum

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/geosphere/internal/lod"
)

// Plane is a plane in Hessian normal form. Points with a positive distance are
// on the inner side.
type Plane struct {
	Normal mgl32.Vec3
	D      float32
}

// Distance returns the signed distance from p to the plane.
func (pl Plane) Distance(p mgl32.Vec3) float32 {
	return pl.Normal.Dot(p) + pl.D
}

// Plane indices in Frustum.Planes.
const (
	Left = iota
	Right
	Bottom
	Top
	Near
	Far
)

// Frustum tests geometry against the camera frustum. The planes are expressed
// in the space set by SetCullTransform so callers can test object-space
// coordinates directly.
type Frustum struct {
	view       mgl32.Mat4
	projection mgl32.Mat4
	position   mgl32.Vec3 // camera, world space
	fov        float32

	cull mgl32.Mat4 // object to world

	planes    [6]Plane
	objectPos mgl32.Vec3
}

var _ lod.Culler = (*Frustum)(nil)

// New returns a frustum with identity matrices. Call SetCamera and Update
// before testing anything.
func New() *Frustum {
	return &Frustum{
		view:       mgl32.Ident4(),
		projection: mgl32.Ident4(),
		cull:       mgl32.Ident4(),
	}
}

// SetCamera feeds the live camera. It takes effect on the next Update.
func (f *Frustum) SetCamera(view, projection mgl32.Mat4, position mgl32.Vec3, fov float32) {
	f.view = view
	f.projection = projection
	f.position = position
	f.fov = fov
}

// SetCullTransform sets the object-to-world matrix of the tested geometry.
func (f *Frustum) SetCullTransform(world mgl32.Mat4) {
	f.cull = world
}

// Update extracts the planes from the current camera and cull transform.
func (f *Frustum) Update() {
	clip := f.projection.Mul4(f.view).Mul4(f.cull)
	f.planes = extractPlanes(clip)
	f.objectPos = f.cull.Inv().Mul4x1(f.position.Vec4(1)).Vec3()
}

// extractPlanes returns the six normalized planes of a clip matrix in the
// order Left, Right, Bottom, Top, Near, Far (OpenGL depth range).
func extractPlanes(m mgl32.Mat4) [6]Plane {
	row := func(i int) mgl32.Vec4 {
		return mgl32.Vec4{m.At(i, 0), m.At(i, 1), m.At(i, 2), m.At(i, 3)}
	}
	r0, r1, r2, r3 := row(0), row(1), row(2), row(3)

	raw := [6]mgl32.Vec4{
		r3.Add(r0),
		r3.Sub(r0),
		r3.Add(r1),
		r3.Sub(r1),
		r3.Add(r2),
		r3.Sub(r2),
	}

	var planes [6]Plane
	for i, p := range raw {
		n := p.Vec3()
		l := n.Len()
		if l == 0 {
			continue
		}
		planes[i] = Plane{Normal: n.Mul(1 / l), D: p.W() / l}
	}
	return planes
}

// Planes returns the planes computed by the last Update.
func (f *Frustum) Planes() [6]Plane { return f.planes }

// PositionObjectSpace returns the camera position in the cull space.
func (f *Frustum) PositionObjectSpace() mgl32.Vec3 { return f.objectPos }

// FOV returns the vertical field of view in radians.
func (f *Frustum) FOV() float32 { return f.fov }

// ContainsPoint reports whether p is inside every plane.
func (f *Frustum) ContainsPoint(p mgl32.Vec3) bool {
	for _, pl := range f.planes {
		if pl.Distance(p) < 0 {
			return false
		}
	}
	return true
}

// ContainsSphere classifies a bounding sphere.
func (f *Frustum) ContainsSphere(center mgl32.Vec3, radius float32) lod.VolumeCheck {
	result := lod.Contains
	for _, pl := range f.planes {
		d := pl.Distance(center)
		if d < -radius {
			return lod.Outside
		}
		if d < radius {
			result = lod.Intersect
		}
	}
	return result
}

// ContainsTriVolume classifies the volume spanned by triangle abc and the same
// triangle scaled away from the origin by heightMult.
func (f *Frustum) ContainsTriVolume(a, b, c mgl32.Vec3, heightMult float32) lod.VolumeCheck {
	corners := [6]mgl32.Vec3{
		a, b, c,
		a.Mul(heightMult), b.Mul(heightMult), c.Mul(heightMult),
	}

	result := lod.Contains
	for _, pl := range f.planes {
		inside := 0
		for _, p := range corners {
			if pl.Distance(p) >= 0 {
				inside++
			}
		}
		if inside == 0 {
			return lod.Outside
		}
		if inside < len(corners) {
			result = lod.Intersect
		}
	}
	return result
}
