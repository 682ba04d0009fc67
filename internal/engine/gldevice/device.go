// Package gldevice implements patch.Device on top of OpenGL 4.1.
package gldevice

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/geosphere/internal/engine/patch"
	"github.com/Faultbox/geosphere/internal/engine/shader"
	"github.com/Faultbox/geosphere/internal/engine/shaders"
	"github.com/Faultbox/geosphere/internal/lod"
)

// Vertex attribute locations shared with the planet shader.
const (
	attribPos = iota
	attribMorph
	attribLevel
	attribA
	attribR
	attribS
)

// instanceData is the GPU layout of one lod.PatchInstance.
type instanceData struct {
	Level float32
	A     [3]float32
	R     [3]float32
	S     [3]float32
}

const (
	vertexSize   = int(unsafe.Sizeof(patch.Vertex{}))
	instanceSize = int(unsafe.Sizeof(instanceData{}))
)

type template struct {
	vao         uint32
	vbo         uint32
	ebo         uint32
	instanceVBO uint32
	capacity    int // instances the instance buffer can hold
}

// Device owns the template buffers and uploads uniforms to one program.
// All methods must be called from the thread owning the GL context.
type Device struct {
	program *shader.Program
	log     *zap.Logger

	next      patch.Handle
	templates map[patch.Handle]*template
	scratch   []instanceData
}

// New creates a device that uploads uniforms to program.
func New(program *shader.Program, log *zap.Logger) *Device {
	if log == nil {
		log = zap.NewNop()
	}
	return &Device{
		program:   program,
		log:       log,
		templates: make(map[patch.Handle]*template),
	}
}

var _ patch.Device = (*Device)(nil)

// CreateTemplate uploads the template grid into a new VAO with an empty
// per-instance buffer attached.
func (d *Device) CreateTemplate(vertices []patch.Vertex, indices []uint32) (patch.Handle, error) {
	if len(vertices) == 0 || len(indices) == 0 {
		return 0, fmt.Errorf("empty template: %d vertices, %d indices", len(vertices), len(indices))
	}

	t := &template{}
	gl.GenVertexArrays(1, &t.vao)
	gl.BindVertexArray(t.vao)

	gl.GenBuffers(1, &t.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, t.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*vertexSize, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	gl.VertexAttribPointerWithOffset(attribPos, 2, gl.FLOAT, false, int32(vertexSize), 0)
	gl.EnableVertexAttribArray(attribPos)
	gl.VertexAttribPointerWithOffset(attribMorph, 2, gl.FLOAT, false, int32(vertexSize), 2*4)
	gl.EnableVertexAttribArray(attribMorph)

	gl.GenBuffers(1, &t.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, t.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, unsafe.Pointer(&indices[0]), gl.STATIC_DRAW)

	gl.GenBuffers(1, &t.instanceVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, t.instanceVBO)
	instanceAttribs := []struct {
		index  uint32
		size   int32
		offset uintptr
	}{
		{attribLevel, 1, 0},
		{attribA, 3, 1 * 4},
		{attribR, 3, 4 * 4},
		{attribS, 3, 7 * 4},
	}
	for _, a := range instanceAttribs {
		gl.VertexAttribPointerWithOffset(a.index, a.size, gl.FLOAT, false, int32(instanceSize), a.offset)
		gl.EnableVertexAttribArray(a.index)
		gl.VertexAttribDivisor(a.index, 1)
	}

	gl.BindVertexArray(0)

	d.next++
	d.templates[d.next] = t
	d.log.Debug("template created",
		zap.Uint32("handle", uint32(d.next)),
		zap.Uint32("vao", t.vao),
		zap.Int("vertices", len(vertices)),
	)
	return d.next, nil
}

// DeleteTemplate frees the buffers of h. Unknown handles are ignored.
func (d *Device) DeleteTemplate(h patch.Handle) {
	t, ok := d.templates[h]
	if !ok {
		return
	}
	buffers := []uint32{t.vbo, t.ebo, t.instanceVBO}
	gl.DeleteBuffers(int32(len(buffers)), &buffers[0])
	gl.DeleteVertexArrays(1, &t.vao)
	delete(d.templates, h)
}

// UploadInstances replaces the instance buffer of h. The buffer grows to the
// next power of two and is orphaned on every upload.
func (d *Device) UploadInstances(h patch.Handle, instances []lod.PatchInstance) error {
	t, ok := d.templates[h]
	if !ok {
		return fmt.Errorf("unknown template handle %d", h)
	}
	d.scratch = packInstances(d.scratch[:0], instances)

	gl.BindBuffer(gl.ARRAY_BUFFER, t.instanceVBO)
	if len(d.scratch) > t.capacity {
		t.capacity = growCapacity(len(d.scratch))
	}
	gl.BufferData(gl.ARRAY_BUFFER, t.capacity*instanceSize, nil, gl.STREAM_DRAW)
	if len(d.scratch) > 0 {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(d.scratch)*instanceSize, unsafe.Pointer(&d.scratch[0]))
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return nil
}

// UploadFloatArray sets a float array uniform on the device program. Values
// past the shader array length are dropped.
func (d *Device) UploadFloatArray(name string, values []float32) error {
	if d.program == nil {
		return fmt.Errorf("no program to set %q on", name)
	}
	loc := d.program.Uniform(name)
	if loc < 0 {
		return fmt.Errorf("uniform %q not found in program %d", name, d.program.ID)
	}
	n := min(len(values), shaders.DistanceLUTSize)
	if n == 0 {
		return nil
	}
	d.program.Use()
	gl.Uniform1fv(loc, int32(n), &values[0])
	return nil
}

// DrawInstanced draws indexCount indices of h once per instance.
func (d *Device) DrawInstanced(h patch.Handle, indexCount, instanceCount int) {
	t, ok := d.templates[h]
	if !ok {
		return
	}
	gl.BindVertexArray(t.vao)
	gl.DrawElementsInstanced(gl.TRIANGLES, int32(indexCount), gl.UNSIGNED_INT, nil, int32(instanceCount))
	gl.BindVertexArray(0)
}

// Close deletes every template still owned by the device.
func (d *Device) Close() {
	for h := range d.templates {
		d.DeleteTemplate(h)
	}
}

func packInstances(dst []instanceData, src []lod.PatchInstance) []instanceData {
	for _, p := range src {
		dst = append(dst, instanceData{
			Level: float32(p.Level),
			A:     p.A,
			R:     p.R,
			S:     p.S,
		})
	}
	return dst
}

func growCapacity(n int) int {
	c := 256
	for c < n {
		c <<= 1
	}
	return c
}
