package screenshot

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCapture(t *testing.T) {
	// Needs a display; only check it doesn't panic.
	img, err := Capture()
	if err != nil {
		t.Logf("Failed to capture screenshot (expected in headless environment): %v", err)
		return
	}
	if img.Bounds().Empty() {
		t.Error("expected non-empty capture")
	}
}

func TestCaptureUsesPrimaryDisplay(t *testing.T) {
	primary := image.Rect(0, 0, 1920, 1080)
	var asked image.Rectangle
	stubDisplays(t, func() (image.Rectangle, error) { return primary, nil }, func(r image.Rectangle) (*image.RGBA, error) {
		asked = r
		return image.NewRGBA(r), nil
	})

	img, err := Capture()
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if asked != primary {
		t.Errorf("captured %v, want primary %v", asked, primary)
	}
	if img.Bounds() != primary {
		t.Errorf("image bounds = %v", img.Bounds())
	}
}

func TestCaptureWithoutDisplay(t *testing.T) {
	called := false
	stubDisplays(t, func() (image.Rectangle, error) { return image.Rectangle{}, ErrNoDisplay }, func(r image.Rectangle) (*image.RGBA, error) {
		called = true
		return nil, nil
	})

	if _, err := Capture(); !errors.Is(err, ErrNoDisplay) {
		t.Fatalf("err = %v, want ErrNoDisplay", err)
	}
	if called {
		t.Error("capture attempted without a display")
	}
}

func stubDisplays(t *testing.T, bounds func() (image.Rectangle, error), grab func(image.Rectangle) (*image.RGBA, error)) {
	t.Helper()
	oldBounds, oldGrab := primaryBounds, captureRect
	primaryBounds, captureRect = bounds, grab
	t.Cleanup(func() { primaryBounds, captureRect = oldBounds, oldGrab })
}

func TestPrimaryBounds(t *testing.T) {
	_, err := PrimaryBounds()
	if err != nil {
		t.Logf("Failed to get display bounds (expected in headless environment): %v", err)
	}
}

func TestCropExactSize(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 200, 200))
	img.SetRGBA(10, 10, color.RGBA{R: 255, A: 255})
	img.SetRGBA(109, 59, color.RGBA{G: 255, A: 255})

	out := Crop(img, image.Rect(10, 10, 110, 60))
	if got := out.Bounds(); got != image.Rect(0, 0, 100, 50) {
		t.Fatalf("bounds = %v, want 100x50 at origin", got)
	}
	if got := out.RGBAAt(0, 0); got.R != 255 {
		t.Fatalf("top-left pixel = %v", got)
	}
	if got := out.RGBAAt(99, 49); got.G != 255 {
		t.Fatalf("bottom-right pixel = %v", got)
	}
}

func TestCropOffsetImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(-100, 0, 100, 100))
	img.SetRGBA(-90, 10, color.RGBA{B: 255, A: 255})

	out := Crop(img, image.Rect(-90, 10, -70, 40))
	if got := out.Bounds().Size(); got != image.Pt(20, 30) {
		t.Fatalf("size = %v", got)
	}
	if got := out.RGBAAt(0, 0); got.B != 255 {
		t.Fatalf("origin pixel = %v", got)
	}
}

func TestCropClipsAndEmpty(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 50, 50))

	if got := Crop(img, image.Rect(40, 40, 80, 80)).Bounds(); got != image.Rect(0, 0, 10, 10) {
		t.Fatalf("clipped bounds = %v", got)
	}
	if got := Crop(img, image.Rect(60, 60, 80, 80)).Bounds(); !got.Empty() {
		t.Fatalf("expected empty crop, got %v", got)
	}
}

func TestDefaultFilename(t *testing.T) {
	ts := time.Date(2024, 3, 9, 14, 5, 7, 0, time.Local)
	got := DefaultFilename("/tmp/shots", ts)
	want := filepath.Join("/tmp/shots", "screenshot_2024-03-09_14-05-07.png")
	if got != want {
		t.Fatalf("DefaultFilename = %q, want %q", got, want)
	}
}

func TestPicturesDirFallsBackToHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	if got := PicturesDir(); got != home {
		t.Fatalf("PicturesDir = %q, want %q", got, home)
	}

	pictures := filepath.Join(home, "Pictures")
	if err := os.Mkdir(pictures, 0o755); err != nil {
		t.Fatal(err)
	}
	if got := PicturesDir(); got != pictures {
		t.Fatalf("PicturesDir = %q, want %q", got, pictures)
	}
}

func TestLoad(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 3))
	src.Set(1, 1, color.NRGBA{R: 200, A: 255})
	path := filepath.Join(t.TempDir(), "in.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, src); err != nil {
		t.Fatal(err)
	}
	f.Close()

	img, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if img.Bounds() != image.Rect(0, 0, 4, 3) {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	if got := img.RGBAAt(1, 1); got.R != 200 {
		t.Fatalf("pixel = %v", got)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
