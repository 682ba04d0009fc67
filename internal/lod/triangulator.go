package lod

import (
	"fmt"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Triangulator turns camera state and a planet description into a set of
// frustum-culled, distance-refined leaf triangles.
type Triangulator struct {
	planet PlanetParams
	opts   Options
	log    *zap.Logger

	base [20]triangle

	dotLUT        []float32
	heightMultLUT []float32
	distanceLUT   []float32
	lutWidth      int // last positive viewport width

	view      ViewContext
	walkers   []*walker
	faceOut   [20][]PatchInstance
	instances []PatchInstance
	stats     Stats

	// State of the last generation, used by the regeneration threshold.
	generated bool
	dirty     bool
	lastCam   mgl32.Vec3
	lastFOV   float32
	lastWidth int
}

// New creates a triangulator for the given planet. The instance list stays
// empty until Init or Update followed by GenerateGeometry.
func New(planet PlanetParams, opts Options, log *zap.Logger) (*Triangulator, error) {
	if err := planet.Validate(); err != nil {
		return nil, err
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	if planet.World == (mgl32.Mat4{}) {
		planet.World = mgl32.Ident4()
	}

	t := &Triangulator{
		planet: planet,
		opts:   opts,
		log:    log,
		base:   baseTriangles(planet.Radius),
	}
	t.precalculateCulling()

	log.Debug("triangulator created",
		zap.Float32("radius", planet.Radius),
		zap.Float32("maxHeight", planet.MaxHeight),
		zap.Int("maxLevel", planet.MaxLevel),
		zap.Int("workers", opts.Workers),
	)
	return t, nil
}

// Init runs the first update and generates the initial instance list.
func (t *Triangulator) Init(view ViewContext) {
	t.Update(view)
	t.GenerateGeometry()
}

// Update refreshes the lookup tables and the culler for the given view and
// reports whether GenerateGeometry should run.
func (t *Triangulator) Update(view ViewContext) bool {
	if view.Culler == nil {
		return false
	}
	t.view = view

	t.Precalculate(view.Culler.FOV(), view.ViewportWidth)

	view.Culler.SetCullTransform(t.planet.World)
	if !view.Locked {
		view.Culler.Update()
	}

	return t.needsRegeneration()
}

func (t *Triangulator) needsRegeneration() bool {
	if t.opts.RegenThreshold == 0 || !t.generated || t.dirty {
		return true
	}
	if t.view.Culler.FOV() != t.lastFOV || t.view.ViewportWidth != t.lastWidth {
		return true
	}
	moved := t.view.Culler.PositionObjectSpace().Sub(t.lastCam).Len()
	return moved > t.opts.RegenThreshold
}

// GenerateGeometry rebuilds the instance list from the 20 base faces using
// the view passed to the last Update.
func (t *Triangulator) GenerateGeometry() {
	if t.view.Culler == nil {
		t.log.Warn("generate geometry called before update")
		return
	}

	start := time.Now()
	fov := t.view.Culler.FOV()
	cam := t.view.Culler.PositionObjectSpace()
	t.precalculateDistance(fov, t.view.ViewportWidth)

	workers := min(max(t.opts.Workers, 1), len(t.base))
	for len(t.walkers) < workers {
		t.walkers = append(t.walkers, newWalker(t))
	}

	var stats Stats
	if workers == 1 {
		w := t.walkers[0]
		w.reset(t.view.Culler, cam)
		w.out = t.instances[:0]
		for _, tri := range t.base {
			w.triangulate(tri)
		}
		t.instances = w.out
		w.out = nil
		stats = w.stats
	} else {
		t.generateParallel(workers, cam)
		t.instances = t.instances[:0]
		for i := range t.faceOut {
			t.instances = append(t.instances, t.faceOut[i]...)
		}
		for _, w := range t.walkers[:workers] {
			stats.merge(w.stats)
		}
	}

	stats.Duration = time.Since(start)
	t.stats = stats

	t.generated = true
	t.dirty = false
	t.lastCam = cam
	t.lastFOV = fov
	t.lastWidth = t.view.ViewportWidth

	t.log.Debug("geometry generated",
		zap.Int("instances", stats.Instances),
		zap.Int("culled", stats.Culled),
		zap.Int("splits", stats.Splits),
		zap.Int("frustumTests", stats.FrustumTests),
		zap.Int("deepest", stats.DeepestLevel),
		zap.Duration("took", stats.Duration),
	)
}

// generateParallel fans the base faces out over the walkers. Each face has
// its own output slot, so the merged list keeps base-face order.
func (t *Triangulator) generateParallel(workers int, cam mgl32.Vec3) {
	faces := make(chan int, len(t.base))
	for i := range t.base {
		faces <- i
	}
	close(faces)

	var wg sync.WaitGroup
	for _, w := range t.walkers[:workers] {
		w.reset(t.view.Culler, cam)
		wg.Add(1)
		go func(w *walker) {
			defer wg.Done()
			for f := range faces {
				w.out = t.faceOut[f][:0]
				w.triangulate(t.base[f])
				t.faceOut[f] = w.out
			}
			w.out = nil
		}(w)
	}
	wg.Wait()
}

// SplitHeuristic classifies triangle abc at the given level against the view
// of the last Update.
// Without a view every triangle is culled.
func (t *Triangulator) SplitHeuristic(a, b, c mgl32.Vec3, level int, frustumCull bool) Decision {
	if t.view.Culler == nil {
		return Cull
	}
	w := walker{t: t, culler: t.view.Culler, cam: t.view.Culler.PositionObjectSpace()}
	return w.splitHeuristic(a, b, c, level, frustumCull)
}

// SetWorld sets the object-to-world transform of the planet.
func (t *Triangulator) SetWorld(world mgl32.Mat4) {
	t.planet.World = world
}

// SetMaxLevel changes the deepest subdivision level.
func (t *Triangulator) SetMaxLevel(level int) error {
	planet := t.planet
	planet.MaxLevel = level
	if err := planet.Validate(); err != nil {
		return fmt.Errorf("set max level: %w", err)
	}
	t.planet = planet
	t.walkers = nil
	t.dirty = true
	t.precalculateCulling()
	return nil
}

// Instances returns the leaves of the last generation. The slice is reused by
// the next GenerateGeometry call.
func (t *Triangulator) Instances() []PatchInstance { return t.instances }

// Stats returns counters from the last generation.
func (t *Triangulator) Stats() Stats { return t.stats }

// Planet returns the current planet parameters.
func (t *Triangulator) Planet() PlanetParams { return t.planet }
