package gui

import (
	"context"
	"image"
	"sync"

	"fyne.io/fyne/v2"

	"cordshot/src/input"
	"cordshot/src/overlay"
)

// overlaySelector shows the frozen screen full-screen and runs the
// selection machine over it.
type overlaySelector struct {
	app fyne.App
}

// Select blocks the caller while the user selects. It must not be called
// from the UI thread.
func (s overlaySelector) Select(ctx context.Context, background *image.RGBA) (image.Rectangle, bool, error) {
	var surf *overlaySurface
	fyne.DoAndWait(func() {
		surf = newOverlaySurface(s.app, background.Bounds().Size())
	})
	return overlay.Drive(ctx, surf, background)
}

type overlaySurface struct {
	win    fyne.Window
	area   *pixelArea
	events chan any
	done   chan struct{}
	closed bool // UI thread only

	mu      sync.Mutex
	pending *image.RGBA
	shown   *image.RGBA
	dirty   bool

	closeOnce sync.Once
}

// newOverlaySurface must run on the UI thread.
func newOverlaySurface(app fyne.App, size image.Point) *overlaySurface {
	r := image.Rect(0, 0, size.X, size.Y)
	s := &overlaySurface{
		events:  make(chan any, 64),
		done:    make(chan struct{}),
		pending: image.NewRGBA(r),
		shown:   image.NewRGBA(r),
	}
	s.area = newPixelArea(s.shown, func(ev input.MouseEvent) { s.send(ev) })

	w := app.NewWindow("cordshot")
	w.SetPadded(false)
	w.SetContent(s.area)
	w.Canvas().SetOnTypedKey(func(k *fyne.KeyEvent) {
		s.send(input.KeyEvent{Key: keyOf(k.Name)})
	})
	w.SetOnClosed(func() {
		if !s.closed {
			s.closed = true
			close(s.events)
		}
	})
	w.SetFullScreen(true)
	w.Show()
	w.RequestFocus()
	s.win = w
	return s
}

func (s *overlaySurface) Events() <-chan any { return s.events }

// send runs on the UI thread. It gives up once the driver has stopped
// reading.
func (s *overlaySurface) send(ev any) {
	if s.closed {
		return
	}
	select {
	case s.events <- ev:
	case <-s.done:
	}
}

func (s *overlaySurface) Present(frame *image.RGBA) {
	s.mu.Lock()
	copy(s.pending.Pix, frame.Pix)
	s.dirty = true
	s.mu.Unlock()

	fyne.Do(func() {
		s.mu.Lock()
		if !s.dirty {
			s.mu.Unlock()
			return
		}
		s.pending, s.shown = s.shown, s.pending
		s.dirty = false
		shown := s.shown
		s.mu.Unlock()
		s.area.show(shown)
	})
}

func (s *overlaySurface) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		fyne.Do(func() { s.win.Close() })
	})
}
