package picker

import (
	"image"
	"image/color"
	"strconv"

	"cordshot/src/render"
)

const (
	markerRadius   = 6
	markerOutline  = 2
	crosshairDash  = 4
	numberOffsetX  = 10
	numberOffsetY  = -10
	numberBoxW     = 30
	numberBoxH     = 20
	numberBoxRound = 4
)

// Accent at alpha 150, premultiplied.
var crosshairColor = color.RGBA{R: 0, G: 102, B: 150, A: 150}

// Paint draws img with the crosshair and numbered markers into dst. dst must
// be at least as large as img.
func (p *Picker) Paint(dst *image.RGBA, img image.Image) {
	render.Copy(dst, img)
	b := dst.Bounds()

	if p.hover {
		c := p.cursor
		render.DashedHLine(dst, b.Min.X, b.Max.X, c.Y, crosshairDash, crosshairColor)
		render.DashedVLine(dst, c.X, b.Min.Y, b.Max.Y, crosshairDash, crosshairColor)
	}

	for i, pt := range p.points {
		render.FillCircle(dst, pt, markerRadius, render.Marker)
		render.StrokeCircle(dst, pt, markerRadius, markerOutline, render.White)

		box := NumberBox(pt)
		render.FillRoundedRect(dst, box, numberBoxRound, render.LabelBackground)
		render.DrawCentered(dst, box, strconv.Itoa(i+1), render.White)
	}
}

// NumberBox is where the 1-based index label of a marker at pt is drawn.
func NumberBox(pt image.Point) image.Rectangle {
	at := pt.Add(image.Pt(numberOffsetX, numberOffsetY))
	return image.Rectangle{Min: at, Max: at.Add(image.Pt(numberBoxW, numberBoxH))}
}
