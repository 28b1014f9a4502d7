// Package debug saves screenshots of the rendered scene.
package debug

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"
)

// Screenshots writes PNG files named <prefix>_<timestamp>.png into a
// directory, creating it on first use.
type Screenshots struct {
	dir    string
	prefix string
	now    func() time.Time
}

// NewScreenshots returns a writer for dir. An empty dir means the working
// directory.
func NewScreenshots(dir, prefix string) *Screenshots {
	return &Screenshots{dir: dir, prefix: prefix, now: time.Now}
}

// Dir returns the output directory.
func (s *Screenshots) Dir() string { return s.dir }

// CaptureFromPixels saves bottom-up RGBA rows, as returned by glReadPixels,
// flipped upright. It returns the written path.
func (s *Screenshots) CaptureFromPixels(pixels []byte, width, height int) (string, error) {
	if width <= 0 || height <= 0 {
		return "", fmt.Errorf("invalid size %dx%d", width, height)
	}
	if len(pixels) != width*height*4 {
		return "", fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}
	return s.CaptureFromImage(FlipRGBA(pixels, width, height))
}

// CaptureFromImage saves img and returns the written path.
func (s *Screenshots) CaptureFromImage(img image.Image) (string, error) {
	if s.dir != "" {
		if err := os.MkdirAll(s.dir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	filename := s.nextName()
	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return "", fmt.Errorf("encoding PNG: %w", err)
	}
	return filename, nil
}

// nextName returns a timestamped path that does not exist yet. Several
// captures within one second get a numeric suffix.
func (s *Screenshots) nextName() string {
	base := fmt.Sprintf("%s_%s", s.prefix, s.now().Format("2006-01-02_15-04-05"))
	name := filepath.Join(s.dir, base+".png")
	for i := 1; ; i++ {
		if _, err := os.Stat(name); os.IsNotExist(err) {
			return name
		}
		name = filepath.Join(s.dir, fmt.Sprintf("%s_%d.png", base, i))
	}
}

// FlipRGBA copies bottom-up rows into a top-down image.
func FlipRGBA(pixels []byte, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * rowSize
		dst := y * img.Stride
		copy(img.Pix[dst:dst+rowSize], pixels[src:src+rowSize])
	}
	return img
}
