package gui

import (
	"context"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	fynestorage "fyne.io/fyne/v2/storage"

	"cordshot/src/storage"
)

const dialogHostSize = 820

type dialogResult struct {
	path string
	ok   bool
	err  error
}

// runHosted shows a dialog inside a throwaway window and blocks until the
// user answers, the window is closed, or ctx ends. build runs on the UI
// thread and must call finish exactly once per answer; extra calls are
// ignored.
func runHosted(ctx context.Context, app fyne.App, title string, build func(win fyne.Window, finish func(dialogResult))) (string, bool, error) {
	res := make(chan dialogResult, 1)
	var win fyne.Window
	fyne.Do(func() {
		win = app.NewWindow(title)
		answered := false
		finish := func(r dialogResult) {
			if answered {
				return
			}
			answered = true
			res <- r
			win.Close()
		}
		win.SetOnClosed(func() { finish(dialogResult{}) })
		win.Resize(fyne.NewSize(dialogHostSize, dialogHostSize*3/4))
		win.CenterOnScreen()
		win.Show()
		build(win, finish)
	})

	select {
	case r := <-res:
		return r.path, r.ok, r.err
	case <-ctx.Done():
		fyne.Do(func() { win.Close() })
		return "", false, ctx.Err()
	}
}

type savePrompter struct {
	app fyne.App
}

func (p savePrompter) PromptForPath(ctx context.Context, defaultPath string, filters []storage.Filter) (string, bool, error) {
	return runHosted(ctx, p.app, "Save Capture", func(win fyne.Window, finish func(dialogResult)) {
		d := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
			if err != nil {
				finish(dialogResult{err: err})
				return
			}
			if w == nil {
				finish(dialogResult{})
				return
			}
			path := w.URI().Path()
			_ = w.Close()
			finish(dialogResult{path: path, ok: true})
		}, win)
		d.SetFileName(filepath.Base(defaultPath))
		if exts := extensions(filters); len(exts) > 0 {
			d.SetFilter(fynestorage.NewExtensionFileFilter(exts))
		}
		if l, err := fynestorage.ListerForURI(fynestorage.NewFileURI(filepath.Dir(defaultPath))); err == nil {
			d.SetLocation(l)
		}
		d.Resize(win.Canvas().Size())
		d.Show()
	})
}

func chooseFolder(ctx context.Context, app fyne.App, start string) (string, bool, error) {
	return runHosted(ctx, app, "Choose Save Folder", func(win fyne.Window, finish func(dialogResult)) {
		d := dialog.NewFolderOpen(func(uri fyne.ListableURI, err error) {
			if err != nil {
				finish(dialogResult{err: err})
				return
			}
			if uri == nil {
				finish(dialogResult{})
				return
			}
			finish(dialogResult{path: uri.Path(), ok: true})
		}, win)
		if start != "" {
			if l, err := fynestorage.ListerForURI(fynestorage.NewFileURI(start)); err == nil {
				d.SetLocation(l)
			}
		}
		d.Resize(win.Canvas().Size())
		d.Show()
	})
}

// extensions merges the typed filters into the single filter the fyne
// dialog accepts. Catch-all entries are skipped; any typed name can still
// be entered.
func extensions(filters []storage.Filter) []string {
	var out []string
	for _, f := range filters {
		for _, e := range f.Extensions {
			out = append(out, strings.ToLower(e))
		}
	}
	return out
}
