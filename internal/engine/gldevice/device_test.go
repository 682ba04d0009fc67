package gldevice

import (
	"testing"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/geosphere/internal/engine/patch"
	"github.com/Faultbox/geosphere/internal/lod"
)

func TestLayout(t *testing.T) {
	if vertexSize != 16 {
		t.Errorf("vertex size = %d, want 16", vertexSize)
	}
	if instanceSize != 40 {
		t.Errorf("instance size = %d, want 40", instanceSize)
	}
	var v patch.Vertex
	if off := unsafe.Offsetof(v.Morph); off != 8 {
		t.Errorf("morph offset = %d, want 8", off)
	}
	var in instanceData
	offsets := map[string]uintptr{
		"A": unsafe.Offsetof(in.A),
		"R": unsafe.Offsetof(in.R),
		"S": unsafe.Offsetof(in.S),
	}
	want := map[string]uintptr{"A": 4, "R": 16, "S": 28}
	for k, off := range offsets {
		if off != want[k] {
			t.Errorf("%s offset = %d, want %d", k, off, want[k])
		}
	}
}

func TestPackInstances(t *testing.T) {
	src := []lod.PatchInstance{
		{Level: 0, A: mgl32.Vec3{1, 2, 3}, R: mgl32.Vec3{4, 5, 6}, S: mgl32.Vec3{7, 8, 9}},
		{Level: 12, A: mgl32.Vec3{-1, 0, 1}},
	}

	scratch := make([]instanceData, 5)
	got := packInstances(scratch[:0], src)

	if len(got) != 2 {
		t.Fatalf("packed %d instances, want 2", len(got))
	}
	if got[0].Level != 0 || got[0].A != [3]float32{1, 2, 3} || got[0].R != [3]float32{4, 5, 6} || got[0].S != [3]float32{7, 8, 9} {
		t.Errorf("unexpected first instance %+v", got[0])
	}
	if got[1].Level != 12 || got[1].A != [3]float32{-1, 0, 1} {
		t.Errorf("unexpected second instance %+v", got[1])
	}
	if &got[0] != &scratch[0] {
		t.Error("scratch buffer not reused")
	}
}

func TestGrowCapacity(t *testing.T) {
	tests := []struct{ n, want int }{
		{0, 256},
		{1, 256},
		{256, 256},
		{257, 512},
		{5000, 8192},
	}
	for _, tt := range tests {
		if got := growCapacity(tt.n); got != tt.want {
			t.Errorf("growCapacity(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

func TestDeviceWithoutTemplates(t *testing.T) {
	d := New(nil, nil)

	if err := d.UploadInstances(3, nil); err == nil {
		t.Error("expected error for unknown handle")
	}
	if err := d.UploadFloatArray("uDistanceLUT", []float32{1}); err == nil {
		t.Error("expected error without a program")
	}
	// Unknown handles are no-ops and must not touch GL.
	d.DeleteTemplate(3)
	d.DrawInstanced(3, 6, 1)
	d.Close()
}
