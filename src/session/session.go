package session

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"time"

	"cordshot/src/notification"
	"cordshot/src/overlay"
	"cordshot/src/screenshot"
	"cordshot/src/singleinstance"
	"cordshot/src/storage"
)

var (
	ErrCaptureUnavailable = errors.New("screen capture unavailable")
	ErrSaveFailed         = errors.New("failed to save capture")
	ErrInvalidSelection   = errors.New("selection has zero area")
	ErrSelectionCancelled = errors.New("selection cancelled")
)

// Event is the outcome of one capture session: Completed or Cancelled.
type Event interface {
	isEvent()
}

// Completed carries the cropped image and, when the user saved it, the
// destination path. SaveErr is set when the chosen file could not be
// written; the capture is still on the clipboard.
type Completed struct {
	Image     *image.RGBA
	SavedPath string
	SaveErr   error
}

// Cancelled carries the reason the session ended without a capture.
type Cancelled struct {
	Reason error
}

func (Completed) isEvent() {}
func (Cancelled) isEvent() {}

type CaptureFunc func() (*image.RGBA, error)

type CropFunc func(img image.Image, r image.Rectangle) *image.RGBA

type WriteFunc func(img image.Image, path string) error

// Clipboard receives the cropped image. Writes are fire-and-forget.
type Clipboard interface {
	WriteImage(img image.Image)
}

// ResultTarget is told how the session ended.
type ResultTarget interface {
	OnCompleted(ev Completed) error
	OnCancelled(ev Cancelled) error
}

type Options struct {
	// Delay lets menus and the tray popup disappear before the screen is
	// grabbed.
	Delay     time.Duration
	Capture   CaptureFunc
	Selector  overlay.Selector
	Crop      CropFunc
	Clipboard Clipboard
	// Prompter is optional; without it nothing is saved.
	Prompter storage.Prompter
	Write    WriteFunc
	// SaveDir is the preferred save directory, "" for the pictures folder.
	SaveDir  string
	Now      func() time.Time
	Notifier notification.Notifier
	Target   ResultTarget
}

// Execute runs one capture session. The returned error is nil for a clean
// completion; a save failure returns Completed together with ErrSaveFailed.
func Execute(ctx context.Context, opts Options) (Event, error) {
	if opts.Capture == nil {
		return nil, errors.New("Capture is required")
	}
	if opts.Selector == nil {
		return nil, errors.New("Selector is required")
	}
	crop := opts.Crop
	if crop == nil {
		crop = screenshot.Crop
	}
	write := opts.Write
	if write == nil {
		write = storage.WriteImage
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	if opts.Delay > 0 {
		select {
		case <-time.After(opts.Delay):
		case <-ctx.Done():
			return cancel(opts, ctx.Err())
		}
	}

	background, err := opts.Capture()
	if err != nil {
		log.Printf("session: capture failed: %v", err)
		return cancel(opts, fmt.Errorf("%w: %v", ErrCaptureUnavailable, err))
	}

	rect, cancelled, err := opts.Selector.Select(ctx, background)
	if err != nil {
		return cancel(opts, err)
	}
	if cancelled {
		return cancel(opts, ErrSelectionCancelled)
	}

	img := crop(background, rect)
	if img.Bounds().Empty() {
		log.Printf("session: empty selection %v", rect)
		return cancel(opts, ErrInvalidSelection)
	}
	log.Printf("session: captured %dx%d at %v", img.Bounds().Dx(), img.Bounds().Dy(), rect.Min)

	if opts.Clipboard != nil {
		opts.Clipboard.WriteImage(img)
	}

	ev := Completed{Image: img}
	var saveErr error
	if opts.Prompter != nil {
		ev.SavedPath, ev.SaveErr = save(ctx, opts, write, img, storage.DefaultPath(opts.SaveDir, now()))
		if ev.SaveErr != nil {
			saveErr = fmt.Errorf("%w: %v", ErrSaveFailed, ev.SaveErr)
		}
	}

	if opts.Target != nil {
		_ = opts.Target.OnCompleted(ev)
	}
	return ev, saveErr
}

func save(ctx context.Context, opts Options, write WriteFunc, img image.Image, defaultPath string) (string, error) {
	path, ok, err := opts.Prompter.PromptForPath(ctx, defaultPath, storage.Filters)
	if err != nil {
		log.Printf("session: save prompt failed: %v", err)
		return "", nil
	}
	if !ok {
		return "", nil
	}
	if err := write(img, path); err != nil {
		log.Printf("session: save to %s failed: %v", path, err)
		if opts.Notifier != nil {
			opts.Notifier.Error("Save failed", fmt.Sprintf("Could not save the capture to %s:\n%v", path, err))
		}
		return "", err
	}
	log.Printf("session: saved %s", path)
	return path, nil
}

func cancel(opts Options, reason error) (Event, error) {
	ev := Cancelled{Reason: reason}
	if opts.Target != nil {
		_ = opts.Target.OnCancelled(ev)
	}
	return ev, reason
}

// StatusText is the one-line summary shown after a session.
func StatusText(ev Event) string {
	switch e := ev.(type) {
	case Completed:
		b := e.Image.Bounds()
		s := fmt.Sprintf("✓ Captured %dx%d • Copied to clipboard", b.Dx(), b.Dy())
		switch {
		case e.SaveErr != nil:
			s += " • Save failed: " + e.SaveErr.Error()
		case e.SavedPath != "":
			s += " • Saved"
		}
		return s
	case Cancelled:
		if errors.Is(e.Reason, ErrCaptureUnavailable) {
			return "Screen capture unavailable"
		}
		return "Screenshot cancelled"
	}
	return ""
}

// Targets fans one result out to several targets.
type Targets []ResultTarget

func (ts Targets) OnCompleted(ev Completed) error {
	var errs []error
	for _, t := range ts {
		errs = append(errs, t.OnCompleted(ev))
	}
	return errors.Join(errs...)
}

func (ts Targets) OnCancelled(ev Cancelled) error {
	var errs []error
	for _, t := range ts {
		errs = append(errs, t.OnCancelled(ev))
	}
	return errors.Join(errs...)
}

// FuncTarget adapts a single callback to ResultTarget.
type FuncTarget func(Event)

func (f FuncTarget) OnCompleted(ev Completed) error { f(ev); return nil }
func (f FuncTarget) OnCancelled(ev Cancelled) error { f(ev); return nil }

// DelegatedTarget answers a second instance that asked the resident to
// capture. The saved path, if any, is sent back.
type DelegatedTarget struct {
	Conn singleinstance.Conn
}

func (t DelegatedTarget) OnCompleted(ev Completed) error {
	if t.Conn == nil {
		return errors.New("delegated target missing connection")
	}
	if ev.SaveErr != nil {
		return t.Conn.RespondError("captured to clipboard, save failed: " + ev.SaveErr.Error())
	}
	return t.Conn.RespondSuccess(ev.SavedPath)
}

func (t DelegatedTarget) OnCancelled(ev Cancelled) error {
	if t.Conn == nil {
		return nil
	}
	if ev.Reason == nil {
		return t.Conn.RespondError("unknown session error")
	}
	return t.Conn.RespondError(ev.Reason.Error())
}
