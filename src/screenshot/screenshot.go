package screenshot

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/kbinani/screenshot"
)

// ErrNoDisplay is returned when no active display can be captured.
var ErrNoDisplay = errors.New("no active displays found")

const filenameLayout = "screenshot_2006-01-02_15-04-05.png"

// Seams for tests.
var (
	primaryBounds = PrimaryBounds
	captureRect   = screenshot.CaptureRect
)

// PrimaryBounds returns the bounds of the primary display.
func PrimaryBounds() (image.Rectangle, error) {
	if screenshot.NumActiveDisplays() == 0 {
		return image.Rectangle{}, ErrNoDisplay
	}
	return screenshot.GetDisplayBounds(0), nil
}

// Capture grabs the primary display, the one the full-screen overlay
// covers. The returned image keeps the display's screen coordinates in its
// bounds.
func Capture() (*image.RGBA, error) {
	b, err := primaryBounds()
	if err != nil {
		return nil, err
	}
	img, err := captureRect(b)
	if err != nil {
		return nil, fmt.Errorf("failed to capture screen: %w", err)
	}
	return img, nil
}

// Crop copies r out of img into a new image anchored at the origin. r is
// clipped to the image; an empty result has zero size.
func Crop(img image.Image, r image.Rectangle) *image.RGBA {
	r = r.Intersect(img.Bounds())
	out := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	if r.Empty() {
		return out
	}
	draw.Draw(out, out.Bounds(), img, r.Min, draw.Src)
	return out
}

// Load decodes a PNG or JPEG file into an RGBA image at the origin.
func Load(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba, nil
	}
	return Crop(img, img.Bounds()), nil
}

// PicturesDir returns the user's pictures folder, falling back to the home
// directory when it does not exist.
func PicturesDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	pictures := filepath.Join(home, "Pictures")
	if info, err := os.Stat(pictures); err == nil && info.IsDir() {
		return pictures
	}
	return home
}

// DefaultFilename is the suggested save path for a capture taken at t.
func DefaultFilename(dir string, t time.Time) string {
	return filepath.Join(dir, t.Format(filenameLayout))
}
