// Package storage writes captures to disk and describes the save prompt.
package storage

import (
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cordshot/src/screenshot"
)

const jpegQuality = 95

// Filter is one entry of the save dialog's type list. A nil Extensions
// slice matches every file.
type Filter struct {
	Name       string
	Extensions []string
}

// Filters are offered by every save prompt, in order.
var Filters = []Filter{
	{Name: "PNG Image", Extensions: []string{".png"}},
	{Name: "JPEG Image", Extensions: []string{".jpg", ".jpeg"}},
	{Name: "All Files"},
}

// Prompter asks the user where to save. ok is false when the user dismissed
// the prompt.
type Prompter interface {
	PromptForPath(ctx context.Context, defaultPath string, filters []Filter) (path string, ok bool, err error)
}

// Format is an output encoding.
type Format int

const (
	FormatPNG Format = iota
	FormatJPEG
)

func (f Format) String() string {
	if f == FormatJPEG {
		return "jpeg"
	}
	return "png"
}

// FormatFor picks the encoder from the file extension. Unknown extensions
// are written as PNG.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return FormatJPEG
	default:
		return FormatPNG
	}
}

// DefaultPath is the suggested save location for a capture taken at now.
// An empty dir falls back to the pictures folder.
func DefaultPath(dir string, now time.Time) string {
	if dir == "" {
		dir = screenshot.PicturesDir()
	}
	return screenshot.DefaultFilename(dir, now)
}

// WriteImage encodes img to path, creating the parent directory when needed.
// A partially written file is removed on failure.
func WriteImage(img image.Image, path string) error {
	if path == "" {
		return fmt.Errorf("empty save path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	switch FormatFor(path) {
	case FormatJPEG:
		err = jpeg.Encode(file, img, &jpeg.Options{Quality: jpegQuality})
	default:
		err = png.Encode(file, img)
	}
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}
