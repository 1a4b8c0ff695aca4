// Package picker records clicked points on a still image and formats them
// for the clipboard.
package picker

import (
	"fmt"
	"image"
	"strings"

	"cordshot/src/input"
)

const (
	emptyText    = "No points selected"
	pointsSep    = "  |  "
	copiedPrefix = "\n\n✓ Copied: "
	copiedAll    = "\n\n✓ Copied all: "
)

// Clipboard receives coordinate text.
type Clipboard interface {
	WriteText(text string)
}

// Picker is the coordinate picker model. Points are kept in click order and
// numbered from 1.
type Picker struct {
	bounds image.Rectangle
	points []image.Point
	cursor image.Point
	hover  bool
	clip   Clipboard
	status string
}

// New creates a picker over an image of the given size. clip may be nil.
func New(size image.Point, clip Clipboard) *Picker {
	return &Picker{
		bounds: image.Rectangle{Max: size},
		clip:   clip,
		status: emptyText,
	}
}

// Points returns a copy of the recorded points.
func (p *Picker) Points() []image.Point {
	return append([]image.Point(nil), p.points...)
}

func (p *Picker) Len() int { return len(p.points) }

// Bounds is the image area clicks are accepted in.
func (p *Picker) Bounds() image.Rectangle { return p.bounds }

// Cursor returns the last pointer position and whether it is over the image.
func (p *Picker) Cursor() (image.Point, bool) { return p.cursor, p.hover }

// HasPoints reports whether copy and clear actions are available.
func (p *Picker) HasPoints() bool { return len(p.points) > 0 }

// Status is the text shown under the image.
func (p *Picker) Status() string { return p.status }

// HandleMouse applies a pointer event and reports whether a redraw is needed.
func (p *Picker) HandleMouse(ev input.MouseEvent) bool {
	switch ev.Action {
	case input.MouseMove:
		p.cursor = ev.Pos
		p.hover = ev.Pos.In(p.bounds)
		return true
	case input.MousePress:
		if ev.Button != input.ButtonPrimary {
			return false
		}
		return p.Add(ev.Pos)
	}
	return false
}

// Leave hides the crosshair once the pointer exits the image.
func (p *Picker) Leave() {
	p.hover = false
}

// Add appends pt when it lies inside the image. The new coordinate is copied
// to the clipboard straight away.
func (p *Picker) Add(pt image.Point) bool {
	if !pt.In(p.bounds) {
		return false
	}
	p.points = append(p.points, pt)
	last := FormatPoint(pt)
	p.write(last)
	p.status = p.listText() + copiedPrefix + last
	return true
}

// Clear removes every point.
func (p *Picker) Clear() {
	p.points = nil
	p.status = emptyText
}

// CopyLast copies the most recent point. It returns false when there is
// nothing to copy.
func (p *Picker) CopyLast() (string, bool) {
	if len(p.points) == 0 {
		return "", false
	}
	text := FormatPoint(p.points[len(p.points)-1])
	p.write(text)
	p.status = p.listText() + copiedPrefix + text
	return text, true
}

// CopyAll copies every point in click order.
func (p *Picker) CopyAll() (string, bool) {
	if len(p.points) == 0 {
		return "", false
	}
	text := FormatPoints(p.points)
	p.write(text)
	p.status = p.listText() + copiedAll + text
	return text, true
}

func (p *Picker) write(text string) {
	if p.clip != nil {
		p.clip.WriteText(text)
	}
}

func (p *Picker) listText() string {
	lines := make([]string, len(p.points))
	for i, pt := range p.points {
		lines[i] = fmt.Sprintf("Point %d: %s", i+1, FormatPoint(pt))
	}
	return strings.Join(lines, pointsSep)
}

// FormatPoint renders pt as "(x, y)".
func FormatPoint(pt image.Point) string {
	return fmt.Sprintf("(%d, %d)", pt.X, pt.Y)
}

// FormatPoints renders pts as "(x1, y1), (x2, y2), ...".
func FormatPoints(pts []image.Point) string {
	parts := make([]string, len(pts))
	for i, pt := range pts {
		parts[i] = FormatPoint(pt)
	}
	return strings.Join(parts, ", ")
}

// WindowSize is the initial picker window size for an image of the given
// size, before the toolkit applies its minimum.
func WindowSize(img image.Point) image.Point {
	return image.Pt(min(img.X+40, 1200), min(img.Y+180, 800))
}
