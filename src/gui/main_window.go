package gui

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// Actions are the main window's buttons. Callbacks run on the UI thread and
// should hand work off rather than block.
type Actions struct {
	OnCapture      func()
	OnPick         func()
	OnChooseFolder func()
	OnClearFolder  func()
}

// MainWindow shows the last capture and the result of the last action.
// Closing it only hides it. Methods may be called from any goroutine.
type MainWindow struct {
	win     fyne.Window
	preview *canvas.Image
	status  *widget.Label
	saveDir *widget.Label
	clear   *widget.Button
	visible bool // UI thread only
}

func newMainWindow(app fyne.App, title string, actions Actions) *MainWindow {
	m := &MainWindow{}
	m.preview = &canvas.Image{FillMode: canvas.ImageFillContain}
	m.preview.SetMinSize(fyne.NewSize(480, 300))
	m.status = widget.NewLabel("Ready")
	m.status.Wrapping = fyne.TextWrapWord
	m.saveDir = widget.NewLabel("")
	m.clear = widget.NewButton("Clear Save Folder", orNop(actions.OnClearFolder))

	controls := container.NewHBox(
		widget.NewButton("Capture Region", orNop(actions.OnCapture)),
		widget.NewButton("Pick Coordinates", orNop(actions.OnPick)),
		widget.NewButton("Choose Save Folder…", orNop(actions.OnChooseFolder)),
		m.clear,
	)

	m.win = app.NewWindow(title)
	m.win.SetContent(container.NewBorder(controls, container.NewVBox(m.saveDir, m.status), nil, nil, m.preview))
	m.win.Resize(fyne.NewSize(640, 480))
	m.win.SetCloseIntercept(func() {
		m.visible = false
		m.win.Hide()
	})
	m.applySaveDir("")
	return m
}

func (m *MainWindow) Show() {
	fyne.Do(func() {
		m.visible = true
		m.win.Show()
		m.win.RequestFocus()
	})
}

// Hide hides the window and reports whether it was showing. It waits for
// the UI thread, so it must not be called from it.
func (m *MainWindow) Hide() bool {
	var was bool
	fyne.DoAndWait(func() {
		was = m.visible
		m.visible = false
		m.win.Hide()
	})
	return was
}

// ShowMessage pops a modal message over the window, showing it first.
func (m *MainWindow) ShowMessage(title, message string) {
	fyne.Do(func() {
		m.visible = true
		m.win.Show()
		dialog.ShowInformation(title, message, m.win)
	})
}

func (m *MainWindow) SetStatus(text string) {
	fyne.Do(func() { m.status.SetText(text) })
}

// SetPreview shows img, or clears the preview when img is nil.
func (m *MainWindow) SetPreview(img image.Image) {
	fyne.Do(func() {
		m.preview.Image = img
		m.preview.Refresh()
	})
}

func (m *MainWindow) SetSaveDir(dir string) {
	fyne.Do(func() { m.applySaveDir(dir) })
}

func (m *MainWindow) applySaveDir(dir string) {
	if dir == "" {
		m.saveDir.SetText("Save folder: ask every time")
		m.clear.Disable()
		return
	}
	m.saveDir.SetText("Save folder: " + dir)
	m.clear.Enable()
}

func orNop(fn func()) func() {
	if fn == nil {
		return func() {}
	}
	return fn
}
