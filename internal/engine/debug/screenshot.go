// Package debug provides viewer debugging utilities.
package debug

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Supported screenshot formats.
const (
	FormatPNG  = "png"
	FormatTIFF = "tiff"
	FormatBMP  = "bmp"
)

// ScreenshotCapture writes framebuffer contents to numbered image files.
type ScreenshotCapture struct {
	outputDir string
	prefix    string
	format    string
	seq       int
	now       func() time.Time
}

// NewScreenshotCapture creates a PNG capture writing to outputDir.
func NewScreenshotCapture(outputDir, prefix string) *ScreenshotCapture {
	return &ScreenshotCapture{
		outputDir: outputDir,
		prefix:    prefix,
		format:    FormatPNG,
		now:       time.Now,
	}
}

// SetFormat selects the file format of later captures.
func (sc *ScreenshotCapture) SetFormat(format string) error {
	switch format {
	case FormatPNG, FormatTIFF, FormatBMP:
		sc.format = format
		return nil
	default:
		return fmt.Errorf("unsupported screenshot format %q", format)
	}
}

func (sc *ScreenshotCapture) encode(w io.Writer, img image.Image) error {
	switch sc.format {
	case FormatTIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	case FormatBMP:
		return bmp.Encode(w, img)
	default:
		return png.Encode(w, img)
	}
}

// CaptureGL reads the current framebuffer and saves it.
// Must run on the GL thread after the frame was drawn.
func (sc *ScreenshotCapture) CaptureGL(width, height int) (string, error) {
	if width <= 0 || height <= 0 {
		return "", fmt.Errorf("invalid framebuffer size %dx%d", width, height)
	}
	pixels := make([]byte, width*height*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(&pixels[0]))
	return sc.CaptureFromPixels(pixels, width, height)
}

// CaptureFromPixels saves RGBA pixels with a bottom-left origin, as OpenGL
// returns them.
func (sc *ScreenshotCapture) CaptureFromPixels(pixels []byte, width, height int) (string, error) {
	if len(pixels) != width*height*4 {
		return "", fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * rowSize
		copy(img.Pix[y*img.Stride:y*img.Stride+rowSize], pixels[src:src+rowSize])
	}

	return sc.save(img)
}

func (sc *ScreenshotCapture) save(img image.Image) (string, error) {
	if sc.outputDir != "" {
		if err := os.MkdirAll(sc.outputDir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	filename := sc.NextFilename()
	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := sc.encode(file, img); err != nil {
		return "", fmt.Errorf("encoding %s: %w", sc.format, err)
	}
	sc.seq++
	return filename, nil
}

// NextFilename returns the path the next capture is written to.
func (sc *ScreenshotCapture) NextFilename() string {
	timestamp := sc.now().Format("2006-01-02_15-04-05")
	return filepath.Join(sc.outputDir, fmt.Sprintf("%s_%s_%03d.%s", sc.prefix, timestamp, sc.seq, sc.format))
}
