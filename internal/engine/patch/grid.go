package patch

import "github.com/go-gl/mathgl/mgl32"

// Vertex is one template grid vertex. Pos is the patch-local (u, v); Morph
// moves the vertex onto its position in the next coarser grid.
type Vertex struct {
	Pos   mgl32.Vec2
	Morph mgl32.Vec2
}

// RowCount returns the number of vertices along the longest row of a template
// with the given subdivision level.
func RowCount(levels int) int {
	return 1 + 1<<levels
}

// GenerateGeometry builds the triangular template grid. Row i holds RC-i
// vertices with v = i/(RC-1); triangles are wound counter-clockwise in (u, v).
func GenerateGeometry(levels int) ([]Vertex, []uint32) {
	rc := RowCount(levels)
	delta := 1 / float32(rc-1)

	vertices := make([]Vertex, 0, rc*(rc+1)/2)
	indices := make([]uint32, 0, 3*(rc-1)*(rc-1))

	rowIdx := uint32(0)
	for row := 0; row < rc; row++ {
		numCols := rc - row
		nextIdx := rowIdx + uint32(numCols)

		for col := 0; col < numCols; col++ {
			vertices = append(vertices, Vertex{
				Pos:   mgl32.Vec2{float32(col) * delta, float32(row) * delta},
				Morph: morphVector(row, col, numCols, rc, delta),
			})

			if row == rc-1 || col == numCols-1 {
				continue
			}
			c := uint32(col)
			indices = append(indices, rowIdx+c, rowIdx+c+1, nextIdx+c)
			if col < numCols-2 {
				indices = append(indices, rowIdx+c+1, nextIdx+c+1, nextIdx+c)
			}
		}
		rowIdx = nextIdx
	}
	return vertices, indices
}

// morphVector returns the morph offset for the vertex at row, col. Vertices on
// the patch boundary never move, so neighbouring patches agree on their
// shared edges whatever their level.
func morphVector(row, col, numCols, rc int, delta float32) mgl32.Vec2 {
	if row == 0 || row == rc-1 || col == 0 || col == numCols-1 {
		return mgl32.Vec2{}
	}
	if row%2 == 0 {
		if col%2 == 1 {
			return mgl32.Vec2{-delta, 0}
		}
		return mgl32.Vec2{}
	}
	if col%2 == 0 {
		return mgl32.Vec2{0, delta}
	}
	return mgl32.Vec2{delta, -delta}
}
