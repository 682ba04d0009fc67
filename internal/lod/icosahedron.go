package lod

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// triangle is a face of the base icosahedron.
type triangle struct {
	a, b, c mgl32.Vec3
}

// icosahedronFaces indexes icosahedronVertices counter-clockwise as seen
// from outside the sphere.
var icosahedronFaces = [20][3]int{
	{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
	{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
	{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
	{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
}

func icosahedronVertices() [12]mgl32.Vec3 {
	t := float32((1 + math.Sqrt(5)) / 2)
	return [12]mgl32.Vec3{
		{-1, t, 0}, {1, t, 0}, {-1, -t, 0}, {1, -t, 0},
		{0, -1, t}, {0, 1, t}, {0, -1, -t}, {0, 1, -t},
		{t, 0, -1}, {t, 0, 1}, {-t, 0, -1}, {-t, 0, 1},
	}
}

// baseTriangles returns the 20 icosahedron faces with corners on a sphere of
// the given radius.
func baseTriangles(radius float32) [20]triangle {
	verts := icosahedronVertices()
	for i := range verts {
		verts[i] = verts[i].Normalize().Mul(radius)
	}

	var tris [20]triangle
	for i, f := range icosahedronFaces {
		tris[i] = triangle{a: verts[f[0]], b: verts[f[1]], c: verts[f[2]]}
	}
	return tris
}

// sphereMid returns the midpoint of pq pushed out onto the sphere.
func sphereMid(p, q mgl32.Vec3, radius float32) mgl32.Vec3 {
	m := p.Add(q)
	return m.Mul(radius / m.Len())
}
