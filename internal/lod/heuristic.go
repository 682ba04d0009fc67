package lod

import "github.com/go-gl/mathgl/mgl32"

// task is one pending triangle on the work stack.
type task struct {
	a, b, c     mgl32.Vec3
	level       int
	frustumCull bool
}

// walker subdivides base faces with an explicit stack. A walker only reads
// the triangulator, so several walkers may run concurrently on distinct faces.
type walker struct {
	t      *Triangulator
	culler Culler
	cam    mgl32.Vec3
	stack  []task
	out    []PatchInstance
	stats  Stats
}

func newWalker(t *Triangulator) *walker {
	return &walker{
		t:     t,
		stack: make([]task, 0, 3*(t.planet.MaxLevel+1)+1),
	}
}

func (w *walker) reset(culler Culler, cam mgl32.Vec3) {
	w.culler = culler
	w.cam = cam
	w.stack = w.stack[:0]
	w.stats = Stats{}
}

// splitHeuristic decides what to do with triangle abc at the given level.
func (w *walker) splitHeuristic(a, b, c mgl32.Vec3, level int, frustumCull bool) Decision {
	center := a.Add(b).Add(c).Mul(1.0 / 3.0)
	if center.Normalize().Dot(center.Sub(w.cam).Normalize()) >= w.t.dotLUT[level] {
		return Cull
	}

	if !frustumCull {
		return w.distanceTest(a, b, c, level, Split)
	}

	w.stats.FrustumTests++
	switch w.culler.ContainsTriVolume(a, b, c, w.t.heightMultLUT[level]) {
	case Outside:
		return Cull
	case Contains:
		// Every descendant is inside as well.
		return w.distanceTest(a, b, c, level, Split)
	default:
		return w.distanceTest(a, b, c, level, SplitCull)
	}
}

// distanceTest returns split when the closest corner is nearer than the
// level's split distance, Leaf otherwise.
func (w *walker) distanceTest(a, b, c mgl32.Vec3, level int, split Decision) Decision {
	if level >= w.t.planet.MaxLevel {
		return Leaf
	}

	dist := a.Sub(w.cam).Len()
	dist = min(dist, b.Sub(w.cam).Len())
	dist = min(dist, c.Sub(w.cam).Len())
	if dist < w.t.distanceLUT[level] {
		return split
	}
	return Leaf
}

// triangulate emits the leaves of one base face into w.out.
func (w *walker) triangulate(root triangle) {
	radius := w.t.planet.Radius

	w.stack = append(w.stack[:0], task{a: root.a, b: root.b, c: root.c, frustumCull: true})
	for len(w.stack) > 0 {
		n := len(w.stack) - 1
		tk := w.stack[n]
		w.stack = w.stack[:n]

		decision := w.splitHeuristic(tk.a, tk.b, tk.c, tk.level, tk.frustumCull)
		switch decision {
		case Cull:
			w.stats.Culled++

		case Leaf:
			w.out = append(w.out, PatchInstance{
				Level: uint8(tk.level),
				A:     tk.a,
				R:     tk.b.Sub(tk.a),
				S:     tk.c.Sub(tk.a),
			})
			w.stats.Instances++
			if tk.level > w.stats.DeepestLevel {
				w.stats.DeepestLevel = tk.level
			}

		case Split, SplitCull:
			w.stats.Splits++

			// Midpoints opposite a, b and c, pulled onto the sphere.
			am := sphereMid(tk.b, tk.c, radius)
			bm := sphereMid(tk.c, tk.a, radius)
			cm := sphereMid(tk.a, tk.b, radius)

			level := tk.level + 1
			cull := decision == SplitCull

			// Pushed in reverse so they pop as corner a, b, c, then centre.
			// All four keep the winding of the parent.
			w.stack = append(w.stack,
				task{a: am, b: bm, c: cm, level: level, frustumCull: cull},
				task{a: bm, b: am, c: tk.c, level: level, frustumCull: cull},
				task{a: cm, b: tk.b, c: am, level: level, frustumCull: cull},
				task{a: tk.a, b: cm, c: bm, level: level, frustumCull: cull},
			)
		}
	}
}
