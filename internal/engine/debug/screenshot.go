// Package debug writes frame captures and sky snapshots to disk.
package debug

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/image/bmp"
)

// Format is an image file encoding.
type Format string

const (
	FormatPNG Format = "png"
	FormatBMP Format = "bmp"
)

// ParseFormat accepts "png" or "bmp", case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatPNG, FormatBMP:
		return f, nil
	}
	return "", fmt.Errorf("unknown image format %q", s)
}

// Encode writes img to w in format f.
func Encode(w io.Writer, img image.Image, f Format) error {
	if f == FormatBMP {
		return bmp.Encode(w, img)
	}
	return png.Encode(w, img)
}

// ScreenshotCapture handles screenshot capture functionality.
type ScreenshotCapture struct {
	outputDir string
	prefix    string
	format    Format
	now       func() time.Time
}

// NewScreenshotCapture creates a new screenshot capture handler.
func NewScreenshotCapture(outputDir, prefix string, format Format) *ScreenshotCapture {
	if format == "" {
		format = FormatPNG
	}
	return &ScreenshotCapture{
		outputDir: outputDir,
		prefix:    prefix,
		format:    format,
		now:       time.Now,
	}
}

// SetOutputDir sets the output directory for screenshots.
func (sc *ScreenshotCapture) SetOutputDir(dir string) {
	sc.outputDir = dir
}

// CaptureFromPixels captures a screenshot from raw pixel data.
// pixels should be in RGBA format with width*height*4 bytes.
// The image is flipped vertically since OpenGL has origin at bottom-left.
func (sc *ScreenshotCapture) CaptureFromPixels(pixels []byte, width, height int) (string, error) {
	if len(pixels) != width*height*4 {
		return "", fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		srcOffset := (height - 1 - y) * rowSize
		dstOffset := y * img.Stride
		copy(img.Pix[dstOffset:dstOffset+rowSize], pixels[srcOffset:srcOffset+rowSize])
	}

	return sc.CaptureFromImage(img)
}

// CaptureFromImage saves img under a timestamped name.
func (sc *ScreenshotCapture) CaptureFromImage(img image.Image) (string, error) {
	return sc.Save(img, sc.GenerateFilename())
}

// CaptureNamed saves img as <prefix>_<tag>.<format>.
func (sc *ScreenshotCapture) CaptureNamed(img image.Image, tag string) (string, error) {
	return sc.Save(img, sc.path(tag))
}

// Save writes img to filename, creating the output directory if needed.
func (sc *ScreenshotCapture) Save(img image.Image, filename string) (string, error) {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := Encode(file, img, sc.format); err != nil {
		return "", fmt.Errorf("encoding %s: %w", strings.ToUpper(string(sc.format)), err)
	}
	return filename, file.Close()
}

// GenerateFilename generates a screenshot filename without saving.
func (sc *ScreenshotCapture) GenerateFilename() string {
	return sc.path(sc.now().Format("2006-01-02_15-04-05"))
}

func (sc *ScreenshotCapture) path(tag string) string {
	filename := fmt.Sprintf("%s_%s.%s", sc.prefix, tag, sc.format)
	if sc.outputDir != "" {
		filename = filepath.Join(sc.outputDir, filename)
	}
	return filename
}
