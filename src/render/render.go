// Package render paints overlay and picker frames into an *image.RGBA. The
// windowing layer only uploads the finished frame, so everything visible is
// produced here and can be checked pixel by pixel in tests.
package render

import (
	"image"
	"image/color"
	"image/draw"
)

var (
	// Accent is the selection border, handle and crosshair colour.
	Accent = color.RGBA{R: 0, G: 174, B: 255, A: 255}
	// Scrim darkens everything outside the active selection.
	Scrim = color.RGBA{A: 100}
	// LabelBackground sits behind the dimension label and point numbers.
	LabelBackground = color.RGBA{A: 180}
	// BannerBackground sits behind the instruction banner.
	BannerBackground = color.RGBA{A: 200}
	White            = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	// Marker fills recorded picker points.
	Marker = color.RGBA{R: 255, G: 100, B: 100, A: 255}
)

// Copy draws src onto dst at the origin, replacing what was there.
func Copy(dst *image.RGBA, src image.Image) {
	draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Src)
}

// CopyRegion restores r of src onto dst at the same coordinates.
func CopyRegion(dst *image.RGBA, src image.Image, r image.Rectangle) {
	r = r.Intersect(dst.Bounds()).Intersect(src.Bounds())
	if r.Empty() {
		return
	}
	draw.Draw(dst, r, src, r.Min, draw.Src)
}

// Fill composites c over r. c is alpha-premultiplied.
func Fill(dst *image.RGBA, r image.Rectangle, c color.RGBA) {
	r = r.Intersect(dst.Bounds())
	if r.Empty() {
		return
	}
	op := draw.Over
	if c.A == 0xff {
		op = draw.Src
	}
	draw.Draw(dst, r, image.NewUniform(c), image.Point{}, op)
}

// StrokeRect draws a border of the given thickness centred on the edges of r.
func StrokeRect(dst *image.RGBA, r image.Rectangle, thickness int, c color.RGBA) {
	if thickness <= 0 {
		return
	}
	lo := thickness / 2
	hi := thickness - lo
	Fill(dst, image.Rect(r.Min.X-lo, r.Min.Y-lo, r.Max.X+hi, r.Min.Y+hi), c)
	Fill(dst, image.Rect(r.Min.X-lo, r.Max.Y-lo, r.Max.X+hi, r.Max.Y+hi), c)
	Fill(dst, image.Rect(r.Min.X-lo, r.Min.Y+hi, r.Min.X+hi, r.Max.Y-lo), c)
	Fill(dst, image.Rect(r.Max.X-lo, r.Min.Y+hi, r.Max.X+hi, r.Max.Y-lo), c)
}

// Handles returns the square corner handles for r, each size units wide and
// centred on a corner.
func Handles(r image.Rectangle, size int) [4]image.Rectangle {
	h := size / 2
	sq := func(p image.Point) image.Rectangle {
		return image.Rect(p.X-h, p.Y-h, p.X-h+size, p.Y-h+size)
	}
	return [4]image.Rectangle{
		sq(r.Min),
		sq(image.Pt(r.Max.X, r.Min.Y)),
		sq(image.Pt(r.Min.X, r.Max.Y)),
		sq(r.Max),
	}
}

// FillRoundedRect composites c over r with corners of the given radius.
func FillRoundedRect(dst *image.RGBA, r image.Rectangle, radius int, c color.RGBA) {
	if r.Empty() {
		return
	}
	mask := image.NewAlpha(image.Rect(0, 0, r.Dx(), r.Dy()))
	w, h := r.Dx(), r.Dy()
	if radius*2 > w {
		radius = w / 2
	}
	if radius*2 > h {
		radius = h / 2
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if insideRounded(x, y, w, h, radius) {
				mask.Pix[y*mask.Stride+x] = 0xff
			}
		}
	}
	draw.DrawMask(dst, r, image.NewUniform(c), image.Point{}, mask, image.Point{}, draw.Over)
}

func insideRounded(x, y, w, h, radius int) bool {
	if radius <= 0 {
		return true
	}
	cx, cy := -1, -1
	switch {
	case x < radius && y < radius:
		cx, cy = radius, radius
	case x >= w-radius && y < radius:
		cx, cy = w-radius-1, radius
	case x < radius && y >= h-radius:
		cx, cy = radius, h-radius-1
	case x >= w-radius && y >= h-radius:
		cx, cy = w-radius-1, h-radius-1
	default:
		return true
	}
	dx, dy := x-cx, y-cy
	return dx*dx+dy*dy <= radius*radius
}

// Blend composites a single premultiplied pixel over dst, ignoring points
// outside the frame.
func Blend(dst *image.RGBA, x, y int, c color.RGBA) {
	if !image.Pt(x, y).In(dst.Bounds()) {
		return
	}
	i := dst.PixOffset(x, y)
	p := dst.Pix[i : i+4 : i+4]
	inv := 0xff - uint32(c.A)
	p[0] = uint8(uint32(c.R) + uint32(p[0])*inv/0xff)
	p[1] = uint8(uint32(c.G) + uint32(p[1])*inv/0xff)
	p[2] = uint8(uint32(c.B) + uint32(p[2])*inv/0xff)
	p[3] = uint8(uint32(c.A) + uint32(p[3])*inv/0xff)
}

// DashedHLine draws a horizontal dashed line across [x0, x1) at row y.
func DashedHLine(dst *image.RGBA, x0, x1, y, dash int, c color.RGBA) {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	for x := x0; x < x1; x++ {
		if ((x-x0)/dash)%2 == 0 {
			Blend(dst, x, y, c)
		}
	}
}

// DashedVLine draws a vertical dashed line across [y0, y1) at column x.
func DashedVLine(dst *image.RGBA, x, y0, y1, dash int, c color.RGBA) {
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	for y := y0; y < y1; y++ {
		if ((y-y0)/dash)%2 == 0 {
			Blend(dst, x, y, c)
		}
	}
}

// FillCircle fills a disc of radius r centred on p.
func FillCircle(dst *image.RGBA, p image.Point, r int, c color.RGBA) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				Blend(dst, p.X+dx, p.Y+dy, c)
			}
		}
	}
}

// StrokeCircle draws a ring of the given thickness centred on radius r.
func StrokeCircle(dst *image.RGBA, p image.Point, r, thickness int, c color.RGBA) {
	inner := r - thickness/2
	outer := inner + thickness
	for dy := -outer; dy <= outer; dy++ {
		for dx := -outer; dx <= outer; dx++ {
			d2 := dx*dx + dy*dy
			if d2 >= inner*inner && d2 <= outer*outer {
				Blend(dst, p.X+dx, p.Y+dy, c)
			}
		}
	}
}
