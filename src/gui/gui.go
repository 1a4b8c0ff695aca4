// Package gui implements the windows on top of fyne: the full-screen
// selection overlay, the coordinate picker, save and folder dialogs and the
// main window. fyne owns the main goroutine; everything here that is not
// documented as UI-thread-only marshals onto it.
package gui

import (
	"context"
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"cordshot/src/overlay"
	"cordshot/src/picker"
	"cordshot/src/storage"
)

const appID = "io.github.cordshot"

type UI struct {
	app  fyne.App
	Main *MainWindow
}

// New creates the fyne application and the hidden main window. Call it on
// the main goroutine.
func New(title string, actions Actions) *UI {
	a := app.NewWithID(appID)
	return &UI{app: a, Main: newMainWindow(a, title, actions)}
}

// Run blocks the main goroutine until Quit.
func (u *UI) Run() {
	u.app.Run()
}

func (u *UI) Quit() {
	fyne.Do(u.app.Quit)
}

// Selector returns the overlay selector. Its Select blocks and must be
// called off the UI thread.
func (u *UI) Selector() overlay.Selector {
	return overlaySelector{app: u.app}
}

// Prompter returns the save prompt. Blocks like Selector.
func (u *UI) Prompter() storage.Prompter {
	return savePrompter{app: u.app}
}

// ChooseFolder asks for a directory. Blocks like Selector.
func (u *UI) ChooseFolder(ctx context.Context, start string) (string, bool, error) {
	return chooseFolder(ctx, u.app, start)
}

// OpenPicker shows a coordinate picker over img. It does not block.
func (u *UI) OpenPicker(img *image.RGBA, clip picker.Clipboard) {
	fyne.Do(func() {
		p := newPickerWindow(u.app, img, clip)
		p.win.Show()
	})
}

// OpenPickerStandalone shows a picker and quits the application when it is
// closed.
func (u *UI) OpenPickerStandalone(img *image.RGBA, clip picker.Clipboard) {
	fyne.Do(func() {
		p := newPickerWindow(u.app, img, clip)
		p.win.SetOnClosed(u.app.Quit)
		p.win.Show()
	})
}

func (u *UI) ShowMain()                  { u.Main.Show() }
func (u *UI) HideMain() bool             { return u.Main.Hide() }
func (u *UI) SetStatus(text string)      { u.Main.SetStatus(text) }
func (u *UI) SetPreview(img image.Image) { u.Main.SetPreview(img) }
func (u *UI) SetSaveDir(dir string)      { u.Main.SetSaveDir(dir) }

// Status posts a desktop notification through the toolkit.
func (u *UI) Status(title, message string) {
	u.app.SendNotification(fyne.NewNotification(title, message))
}

// Error shows message in a dialog over the main window.
func (u *UI) Error(title, message string) {
	u.Main.ShowMessage(title, message)
}
