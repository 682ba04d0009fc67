package lod

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// stubCuller is a Culler with a scripted volume test that records every call.
type stubCuller struct {
	pos   mgl32.Vec3
	fov   float32
	check func(a, b, c mgl32.Vec3, heightMult float32) VolumeCheck

	mu          sync.Mutex
	world       mgl32.Mat4
	updates     int
	heightMults []float32
}

func newStubCuller(pos mgl32.Vec3, result VolumeCheck) *stubCuller {
	return &stubCuller{
		pos: pos,
		fov: 1,
		check: func(_, _, _ mgl32.Vec3, _ float32) VolumeCheck {
			return result
		},
	}
}

func (s *stubCuller) SetCullTransform(world mgl32.Mat4) {
	s.mu.Lock()
	s.world = world
	s.mu.Unlock()
}

func (s *stubCuller) Update() {
	s.mu.Lock()
	s.updates++
	s.mu.Unlock()
}

func (s *stubCuller) ContainsTriVolume(a, b, c mgl32.Vec3, heightMult float32) VolumeCheck {
	s.mu.Lock()
	s.heightMults = append(s.heightMults, heightMult)
	s.mu.Unlock()
	return s.check(a, b, c, heightMult)
}

func (s *stubCuller) PositionObjectSpace() mgl32.Vec3 { return s.pos }

func (s *stubCuller) FOV() float32 { return s.fov }

// testsPerLevel maps recorded height multipliers back to subdivision levels.
func (s *stubCuller) testsPerLevel(lut []float32) map[int]int {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := make(map[int]int)
	for _, h := range s.heightMults {
		counts[levelOf(lut, h)]++
	}
	return counts
}

func levelOf(lut []float32, heightMult float32) int {
	for level, h := range lut {
		if h == heightMult {
			return level
		}
	}
	return -1
}

// tallPlanet has terrain tall enough to push the horizon margin to 90 degrees
// for every level used in tests, which disables backface culling for any
// camera outside the sphere.
func tallPlanet(maxLevel int) PlanetParams {
	return PlanetParams{
		Radius:    1,
		MaxHeight: 1e4,
		MaxLevel:  maxLevel,
		World:     mgl32.Ident4(),
	}
}

// splitAll makes every split distance effectively infinite.
func splitAll() Options {
	return Options{AllowedTriPx: 0.001, Workers: 1}
}
