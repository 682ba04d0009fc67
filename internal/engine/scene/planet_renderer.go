// Package scene draws the planet.
package scene

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/geosphere/internal/engine/gldevice"
	"github.com/Faultbox/geosphere/internal/engine/patch"
	"github.com/Faultbox/geosphere/internal/engine/shader"
	"github.com/Faultbox/geosphere/internal/engine/shaders"
	"github.com/Faultbox/geosphere/internal/lod"
)

// PlanetRenderer draws triangulator output through one instanced patch.
type PlanetRenderer struct {
	program *shader.Program
	device  *gldevice.Device
	patch   *patch.Patch
	log     *zap.Logger

	// Uniform locations
	locViewProj   int32
	locWorld      int32
	locCamPos     int32
	locRadius     int32
	locMorphRange int32
	locLightDir   int32
	locShowLevels int32

	MorphRange float32
	LightDir   mgl32.Vec3
	ShowLevels bool
}

// NewPlanetRenderer compiles the planet shader and builds a patch template
// with the given subdivision level.
func NewPlanetRenderer(levels int, log *zap.Logger) (*PlanetRenderer, error) {
	if log == nil {
		log = zap.NewNop()
	}

	program, err := shader.Compile(shaders.PlanetVertexShader, shaders.PlanetFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("planet shader: %w", err)
	}

	device := gldevice.New(program, log.Named("gldevice"))
	r := &PlanetRenderer{
		program:    program,
		device:     device,
		patch:      patch.New(device, log.Named("patch")),
		log:        log,
		MorphRange: 0.3,
		LightDir:   mgl32.Vec3{-0.4, -0.3, -1}.Normalize(),
	}

	r.locViewProj = program.Uniform("uViewProj")
	r.locWorld = program.Uniform("uWorld")
	r.locCamPos = program.Uniform("uCamPos")
	r.locRadius = program.Uniform("uRadius")
	r.locMorphRange = program.Uniform("uMorphRange")
	r.locLightDir = program.Uniform("uLightDir")
	r.locShowLevels = program.Uniform("uShowLevels")

	if err := r.patch.Init(levels); err != nil {
		r.Close()
		return nil, err
	}
	return r, nil
}

// SetPatchLevels rebuilds the template when the level changes.
func (r *PlanetRenderer) SetPatchLevels(levels int) error {
	return r.patch.Init(levels)
}

// Upload replaces the instances and the morph distances.
func (r *PlanetRenderer) Upload(instances []lod.PatchInstance, distances []float32) error {
	if err := r.patch.BindInstances(instances); err != nil {
		return err
	}
	return r.patch.UploadDistanceLUT(distances)
}

// Render draws the planet. camPos is the camera in planet object space.
func (r *PlanetRenderer) Render(viewProj, world mgl32.Mat4, camPos mgl32.Vec3, radius float32) {
	r.program.Use()

	gl.UniformMatrix4fv(r.locViewProj, 1, false, &viewProj[0])
	gl.UniformMatrix4fv(r.locWorld, 1, false, &world[0])
	gl.Uniform3f(r.locCamPos, camPos[0], camPos[1], camPos[2])
	gl.Uniform1f(r.locRadius, radius)
	gl.Uniform1f(r.locMorphRange, r.MorphRange)
	gl.Uniform3f(r.locLightDir, r.LightDir[0], r.LightDir[1], r.LightDir[2])
	showLevels := int32(0)
	if r.ShowLevels {
		showLevels = 1
	}
	gl.Uniform1i(r.locShowLevels, showLevels)

	r.patch.Draw()
}

// Patch returns the underlying patch.
func (r *PlanetRenderer) Patch() *patch.Patch {
	return r.patch
}

// Close releases GPU resources.
func (r *PlanetRenderer) Close() {
	r.patch.Close()
	r.device.Close()
	r.program.Delete()
}
