package gui

import (
	"image"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"cordshot/src/input"
	"cordshot/src/picker"
)

const (
	pickerTitle     = "Coordinate Picker - Click to get coordinates"
	pickerMinWidth  = 600
	pickerMinHeight = 500
)

type pickerWindow struct {
	win    fyne.Window
	model  *picker.Picker
	img    *image.RGBA
	frame  *image.RGBA
	area   *pixelArea
	status *widget.Label

	copyLast *widget.Button
	copyAll  *widget.Button
	clear    *widget.Button
}

// newPickerWindow must run on the UI thread.
func newPickerWindow(app fyne.App, img *image.RGBA, clip picker.Clipboard) *pickerWindow {
	size := img.Bounds().Size()
	p := &pickerWindow{
		model: picker.New(size, clip),
		img:   img,
		frame: image.NewRGBA(image.Rect(0, 0, size.X, size.Y)),
	}
	p.area = newPixelArea(p.frame, p.handleMouse)
	p.area.minSize = fyne.NewSize(float32(size.X), float32(size.Y))
	p.area.onLeave = func() {
		p.model.Leave()
		p.repaint()
	}

	p.status = widget.NewLabel("")
	p.status.Wrapping = fyne.TextWrapWord
	p.copyLast = widget.NewButton("Copy Last", func() {
		if text, ok := p.model.CopyLast(); ok {
			log.Printf("PICKER: copied %s", text)
		}
		p.update()
	})
	p.copyAll = widget.NewButton("Copy All", func() {
		if _, ok := p.model.CopyAll(); ok {
			log.Printf("PICKER: copied %d points", p.model.Len())
		}
		p.update()
	})
	p.clear = widget.NewButton("Clear", func() {
		p.model.Clear()
		p.repaint()
		p.update()
	})

	p.win = app.NewWindow(pickerTitle)
	closeBtn := widget.NewButton("Close", func() { p.win.Close() })

	buttons := container.NewHBox(p.copyLast, p.copyAll, p.clear, closeBtn)
	// Centred at its own size so small images are not stretched.
	scroll := container.NewScroll(container.NewCenter(p.area))
	p.win.SetContent(container.NewBorder(nil, container.NewVBox(p.status, buttons), nil, nil, scroll))

	ws := picker.WindowSize(size)
	p.win.Resize(fyne.NewSize(float32(max(ws.X, pickerMinWidth)), float32(max(ws.Y, pickerMinHeight))))
	p.win.CenterOnScreen()

	p.repaint()
	p.update()
	return p
}

func (p *pickerWindow) handleMouse(ev input.MouseEvent) {
	before := p.model.Len()
	if !p.model.HandleMouse(ev) {
		return
	}
	p.repaint()
	if p.model.Len() != before {
		log.Printf("PICKER: point %d at %v", p.model.Len(), ev.Pos)
		p.update()
	}
}

func (p *pickerWindow) repaint() {
	p.model.Paint(p.frame, p.img)
	p.area.show(p.frame)
}

func (p *pickerWindow) update() {
	p.status.SetText(p.model.Status())
	for _, b := range []*widget.Button{p.copyLast, p.copyAll, p.clear} {
		if p.model.HasPoints() {
			b.Enable()
		} else {
			b.Disable()
		}
	}
}
