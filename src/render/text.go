package render

import (
	"image"
	"image/color"
	"log"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const textSize = 14

// Face is the single face used for banners and labels. It covers the
// typographic symbols the overlay prints ("×", "•").
var Face font.Face = newFace()

// faceMu serialises use of Face; opentype faces keep per-face scratch
// buffers.
var faceMu sync.Mutex

func newFace() font.Face {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		log.Printf("render: parse font: %v", err)
		return basicfont.Face7x13
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: textSize, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		log.Printf("render: font face: %v", err)
		return basicfont.Face7x13
	}
	return face
}

// TextSize returns the advance width and line height of s in Face.
func TextSize(s string) image.Point {
	faceMu.Lock()
	defer faceMu.Unlock()
	w := font.MeasureString(Face, s).Ceil()
	m := Face.Metrics()
	return image.Pt(w, (m.Ascent + m.Descent).Ceil())
}

// Ascent is the distance from the top of a line box to the baseline.
func Ascent() int {
	faceMu.Lock()
	defer faceMu.Unlock()
	return Face.Metrics().Ascent.Ceil()
}

// DrawText draws s with its baseline starting at dot.
func DrawText(dst *image.RGBA, dot image.Point, s string, c color.RGBA) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: Face,
		Dot:  fixed.P(dot.X, dot.Y),
	}
	faceMu.Lock()
	d.DrawString(s)
	faceMu.Unlock()
}

// Label is a padded rounded box with a line of text inside it.
type Label struct {
	Text    string
	PadX    int
	PadY    int
	Radius  int
	Fill    color.RGBA
	TextCol color.RGBA
}

// Size is the outer size of the label box.
func (l Label) Size() image.Point {
	ts := TextSize(l.Text)
	return image.Pt(ts.X+2*l.PadX, ts.Y+2*l.PadY)
}

// Draw paints the label with its top-left corner at at.
func (l Label) Draw(dst *image.RGBA, at image.Point) image.Rectangle {
	box := image.Rectangle{Min: at, Max: at.Add(l.Size())}
	FillRoundedRect(dst, box, l.Radius, l.Fill)
	DrawText(dst, image.Pt(at.X+l.PadX, at.Y+l.PadY+Ascent()), l.Text, l.TextCol)
	return box
}

// DrawCentered paints s centred inside box without a background.
func DrawCentered(dst *image.RGBA, box image.Rectangle, s string, c color.RGBA) {
	ts := TextSize(s)
	x := box.Min.X + (box.Dx()-ts.X)/2
	y := box.Min.Y + (box.Dy()-ts.Y)/2 + Ascent()
	DrawText(dst, image.Pt(x, y), s, c)
}
