// Package patch draws leaf triangles from the triangulator with one shared,
// instanced template grid.
package patch

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/geosphere/internal/lod"
)

// MaxTemplateLevels caps the template subdivision; 8 levels is 65536
// triangles per instance.
const MaxTemplateLevels = 8

// DistanceLUTUniform is the shader array receiving the split distances.
const DistanceLUTUniform = "uDistanceLUT"

var (
	ErrInvalidLevels = errors.New("invalid template levels")
	ErrNoTemplate    = errors.New("template not generated")
)

// Handle identifies template geometry owned by a Device.
type Handle uint32

// Device is the GPU capability the patch renders through.
type Device interface {
	CreateTemplate(vertices []Vertex, indices []uint32) (Handle, error)
	DeleteTemplate(h Handle)
	// UploadInstances replaces the instance buffer attached to h.
	UploadInstances(h Handle, instances []lod.PatchInstance) error
	UploadFloatArray(name string, values []float32) error
	DrawInstanced(h Handle, indexCount, instanceCount int)
}

// Patch owns the template grid and the instance buffer.
type Patch struct {
	dev Device
	log *zap.Logger

	levels    int
	generated bool
	handle    Handle
	vertices  []Vertex
	indices   []uint32

	instanceCount int
	bound         []lod.PatchInstance // copy of the last instance list
}

// New creates a patch drawing through dev.
func New(dev Device, log *zap.Logger) *Patch {
	if log == nil {
		log = zap.NewNop()
	}
	return &Patch{dev: dev, log: log}
}

// Init generates the template grid for the given level. Calling it again
// with the same level keeps the existing template. A new level replaces the
// template and re-binds the last instance list to it.
func (p *Patch) Init(levels int) error {
	if levels < 0 || levels > MaxTemplateLevels {
		return fmt.Errorf("%w: %d not in [0, %d]", ErrInvalidLevels, levels, MaxTemplateLevels)
	}
	if p.generated && levels == p.levels {
		return nil
	}

	vertices, indices := GenerateGeometry(levels)
	handle, err := p.dev.CreateTemplate(vertices, indices)
	if err != nil {
		return fmt.Errorf("create template: %w", err)
	}

	if p.generated {
		p.dev.DeleteTemplate(p.handle)
	}
	p.handle = handle
	p.levels = levels
	p.vertices = vertices
	p.indices = indices
	p.generated = true
	p.instanceCount = 0

	p.log.Info("patch template generated",
		zap.Int("levels", levels),
		zap.Int("vertices", len(vertices)),
		zap.Int("triangles", len(indices)/3),
	)

	if len(p.bound) > 0 {
		if err := p.dev.UploadInstances(p.handle, p.bound); err != nil {
			return fmt.Errorf("rebind instances: %w", err)
		}
		p.instanceCount = len(p.bound)
	}
	return nil
}

// BindInstances uploads the full instance list, replacing the previous one.
func (p *Patch) BindInstances(instances []lod.PatchInstance) error {
	if !p.generated {
		return ErrNoTemplate
	}
	if err := p.dev.UploadInstances(p.handle, instances); err != nil {
		return fmt.Errorf("upload instances: %w", err)
	}
	p.instanceCount = len(instances)
	p.bound = append(p.bound[:0], instances...)
	return nil
}

// UploadDistanceLUT hands the split distances to the shader.
func (p *Patch) UploadDistanceLUT(distances []float32) error {
	if err := p.dev.UploadFloatArray(DistanceLUTUniform, distances); err != nil {
		return fmt.Errorf("upload distance lut: %w", err)
	}
	return nil
}

// Draw issues one instanced draw call. Nothing is drawn without a template
// or without instances.
func (p *Patch) Draw() {
	if !p.generated || p.instanceCount == 0 {
		return
	}
	p.dev.DrawInstanced(p.handle, len(p.indices), p.instanceCount)
}

// Close releases the template.
func (p *Patch) Close() {
	if p.generated {
		p.dev.DeleteTemplate(p.handle)
		p.generated = false
		p.instanceCount = 0
		p.bound = p.bound[:0]
	}
}

func (p *Patch) Generated() bool    { return p.generated }
func (p *Patch) Levels() int        { return p.levels }
func (p *Patch) InstanceCount() int { return p.instanceCount }
func (p *Patch) Vertices() []Vertex { return p.vertices }
func (p *Patch) Indices() []uint32  { return p.indices }
