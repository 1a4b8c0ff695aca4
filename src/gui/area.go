package gui

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"cordshot/src/input"
)

// pixelArea shows an RGBA frame and reports pointer input in frame pixel
// coordinates, whatever size the widget is laid out at.
type pixelArea struct {
	widget.BaseWidget

	img     *canvas.Image
	px      image.Point
	minSize fyne.Size
	last    image.Point

	onMouse func(input.MouseEvent)
	onLeave func()
}

var (
	_ desktop.Mouseable = (*pixelArea)(nil)
	_ desktop.Hoverable = (*pixelArea)(nil)
	_ fyne.Draggable    = (*pixelArea)(nil)
)

func newPixelArea(frame *image.RGBA, onMouse func(input.MouseEvent)) *pixelArea {
	img := canvas.NewImageFromImage(frame)
	img.FillMode = canvas.ImageFillStretch
	img.ScaleMode = canvas.ImageScalePixels
	a := &pixelArea{
		img:     img,
		px:      frame.Bounds().Size(),
		onMouse: onMouse,
	}
	a.ExtendBaseWidget(a)
	return a
}

func (a *pixelArea) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(a.img)
}

func (a *pixelArea) MinSize() fyne.Size {
	return a.minSize
}

// show swaps in a new frame. UI thread only.
func (a *pixelArea) show(frame *image.RGBA) {
	a.img.Image = frame
	a.img.Refresh()
}

func (a *pixelArea) MouseDown(ev *desktop.MouseEvent) {
	a.emit(input.MousePress, buttonOf(ev.Button), ev.Position)
}

func (a *pixelArea) MouseUp(ev *desktop.MouseEvent) {
	a.emit(input.MouseRelease, buttonOf(ev.Button), ev.Position)
}

func (a *pixelArea) MouseIn(ev *desktop.MouseEvent) {
	a.emit(input.MouseMove, input.ButtonNone, ev.Position)
}

func (a *pixelArea) MouseMoved(ev *desktop.MouseEvent) {
	a.emit(input.MouseMove, input.ButtonNone, ev.Position)
}

func (a *pixelArea) MouseOut() {
	if a.onLeave != nil {
		a.onLeave()
	}
}

func (a *pixelArea) Dragged(ev *fyne.DragEvent) {
	a.emit(input.MouseMove, input.ButtonNone, ev.Position)
}

// DragEnd repeats the release at the last position. Some drivers deliver
// MouseUp as well; a second release is ignored by the models.
func (a *pixelArea) DragEnd() {
	if a.onMouse != nil {
		a.onMouse(input.MouseEvent{Action: input.MouseRelease, Button: input.ButtonPrimary, Pos: a.last})
	}
}

func (a *pixelArea) emit(action input.MouseAction, b input.Button, pos fyne.Position) {
	a.last = scalePoint(pos, a.Size(), a.px)
	if a.onMouse != nil {
		a.onMouse(input.MouseEvent{Action: action, Button: b, Pos: a.last})
	}
}

func buttonOf(b desktop.MouseButton) input.Button {
	switch b {
	case desktop.MouseButtonPrimary:
		return input.ButtonPrimary
	case desktop.MouseButtonSecondary:
		return input.ButtonSecondary
	case desktop.MouseButtonTertiary:
		return input.ButtonMiddle
	}
	return input.ButtonNone
}

// scalePoint maps a position inside a widget of size s onto a frame of px
// pixels.
func scalePoint(pos fyne.Position, s fyne.Size, px image.Point) image.Point {
	if s.Width <= 0 || s.Height <= 0 {
		return image.Pt(int(pos.X), int(pos.Y))
	}
	return image.Pt(
		int(pos.X*float32(px.X)/s.Width),
		int(pos.Y*float32(px.Y)/s.Height),
	)
}

func keyOf(k fyne.KeyName) input.Key {
	switch k {
	case fyne.KeyEscape:
		return input.KeyEscape
	case fyne.KeyReturn, fyne.KeyEnter:
		return input.KeyEnter
	}
	return input.KeyOther
}
