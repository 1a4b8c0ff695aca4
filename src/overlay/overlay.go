package overlay

import (
	"context"
	"image"
	"log"

	"cordshot/src/input"
)

// Selector defines a synchronous region-selection API owned by the event loop.
// The call is blocking and MUST be invoked only from the single event-loop goroutine.
// background is the still image shown under the overlay. Returns
// (rect, cancelled, error); rect is in background coordinates and is only
// meaningful when cancelled is false and err is nil.
type Selector interface {
	Select(ctx context.Context, background *image.RGBA) (image.Rectangle, bool, error)
}

// Surface is a full-screen window that can show frames and deliver input.
// Events carries input.MouseEvent and input.KeyEvent values and is closed
// when the window goes away underneath the overlay. The frame passed to
// Present is reused once Present returns.
type Surface interface {
	Events() <-chan any
	Present(frame *image.RGBA)
	Close()
}

// Overlay pairs a Machine with the frozen screen image it selects from.
type Overlay struct {
	machine    *Machine
	background *image.RGBA
	dimmed     *image.RGBA
	frame      *image.RGBA
}

func New(background *image.RGBA) *Overlay {
	b := background.Bounds()
	return &Overlay{
		machine:    NewMachine(),
		background: background,
		dimmed:     Dim(background),
		frame:      image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy())),
	}
}

func (o *Overlay) Machine() *Machine { return o.machine }

// Handle routes an input event to the machine. Unknown values are ignored.
func (o *Overlay) Handle(ev any) bool {
	switch e := ev.(type) {
	case input.MouseEvent:
		return o.machine.HandleMouse(e)
	case input.KeyEvent:
		return o.machine.HandleKey(e)
	}
	return false
}

// Frame paints the current state and returns the overlay's frame buffer.
// The buffer is reused between calls.
func (o *Overlay) Frame() *image.RGBA {
	paintSelection(o.frame, o.background, o.dimmed, o.machine.Selection())
	return o.frame
}

// Drive shows the overlay on surface and feeds it events until the
// selection completes or is cancelled. The surface is closed before
// returning. A closed event channel counts as cancellation.
func Drive(ctx context.Context, surface Surface, background *image.RGBA) (image.Rectangle, bool, error) {
	defer surface.Close()

	o := New(background)
	surface.Present(o.Frame())

	events := surface.Events()
	for {
		select {
		case <-ctx.Done():
			o.machine.Cancel()
			return image.Rectangle{}, true, ctx.Err()
		case ev, ok := <-events:
			if !ok {
				log.Printf("OVERLAY: surface closed before selection finished")
				o.machine.Cancel()
				return image.Rectangle{}, true, nil
			}
			if !o.Handle(ev) {
				continue
			}
			switch o.machine.State() {
			case Completed:
				r := o.machine.Rect().Add(background.Bounds().Min)
				log.Printf("OVERLAY: selection completed: %v", r)
				return r, false, nil
			case Cancelled:
				log.Printf("OVERLAY: selection cancelled")
				return image.Rectangle{}, true, nil
			}
			surface.Present(o.Frame())
		}
	}
}
