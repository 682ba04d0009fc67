package debug

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func fixedClock() time.Time {
	return time.Date(2024, 3, 1, 12, 30, 45, 0, time.UTC)
}

func TestCaptureFromPixelsFlips(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	sc := NewScreenshotCapture(dir, "planet")
	sc.now = fixedClock

	// 1x2 image: bottom row red, top row blue in GL order.
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	name, err := sc.CaptureFromPixels(pixels, 1, 2)
	if err != nil {
		t.Fatalf("capture failed: %v", err)
	}
	if want := filepath.Join(dir, "planet_2024-03-01_12-30-45_000.png"); name != want {
		t.Errorf("filename = %s, want %s", name, want)
	}

	f, err := os.Open(name)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if r, _, b, _ := img.At(0, 0).RGBA(); b == 0 || r != 0 {
		t.Error("top row should be blue after the flip")
	}
	if r, _, b, _ := img.At(0, 1).RGBA(); r == 0 || b != 0 {
		t.Error("bottom row should be red after the flip")
	}
}

func TestCaptureSequence(t *testing.T) {
	sc := NewScreenshotCapture(t.TempDir(), "planet")
	sc.now = fixedClock
	pixels := make([]byte, 4)

	first, err := sc.CaptureFromPixels(pixels, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	second, err := sc.CaptureFromPixels(pixels, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Errorf("captures in the same second overwrite each other: %s", first)
	}
}

func TestCaptureSizeMismatch(t *testing.T) {
	sc := NewScreenshotCapture(t.TempDir(), "planet")
	if _, err := sc.CaptureFromPixels(make([]byte, 7), 1, 2); err == nil {
		t.Error("expected size mismatch error")
	}
	if _, err := sc.CaptureGL(0, 10); err == nil {
		t.Error("expected error for empty framebuffer")
	}
}

func TestCaptureFormats(t *testing.T) {
	pixels := []byte{
		10, 20, 30, 255, 40, 50, 60, 255,
		70, 80, 90, 255, 100, 110, 120, 255,
	}

	for _, format := range []string{FormatPNG, FormatTIFF, FormatBMP} {
		t.Run(format, func(t *testing.T) {
			sc := NewScreenshotCapture(t.TempDir(), "planet")
			if err := sc.SetFormat(format); err != nil {
				t.Fatal(err)
			}

			name, err := sc.CaptureFromPixels(pixels, 2, 2)
			if err != nil {
				t.Fatalf("capture failed: %v", err)
			}
			if filepath.Ext(name) != "."+format {
				t.Errorf("unexpected extension in %s", name)
			}

			f, err := os.Open(name)
			if err != nil {
				t.Fatal(err)
			}
			defer f.Close()
			img, _, err := image.Decode(f)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			// Top-left after the flip is the first pixel of the GL top row.
			r, g, b, _ := img.At(0, 0).RGBA()
			if r>>8 != 70 || g>>8 != 80 || b>>8 != 90 {
				t.Errorf("top-left = %d,%d,%d, want 70,80,90", r>>8, g>>8, b>>8)
			}
		})
	}
}

func TestSetFormatInvalid(t *testing.T) {
	sc := NewScreenshotCapture(t.TempDir(), "planet")
	if err := sc.SetFormat("gif"); err == nil {
		t.Error("expected error for unsupported format")
	}
	if got := filepath.Ext(sc.NextFilename()); got != ".png" {
		t.Errorf("format changed after a rejected SetFormat: %s", got)
	}
}
