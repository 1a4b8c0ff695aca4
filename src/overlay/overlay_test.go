package overlay

import (
	"context"
	"errors"
	"image"
	"testing"

	"cordshot/src/input"
)

type fakeSurface struct {
	events chan any
	frames int
	closed bool
}

func newFakeSurface(events ...any) *fakeSurface {
	ch := make(chan any, len(events))
	for _, ev := range events {
		ch <- ev
	}
	return &fakeSurface{events: ch}
}

func (s *fakeSurface) Events() <-chan any { return s.events }

func (s *fakeSurface) Present(frame *image.RGBA) { s.frames++ }

func (s *fakeSurface) Close() { s.closed = true }

func TestDriveCompletesDrag(t *testing.T) {
	surf := newFakeSurface(
		input.Press(input.ButtonPrimary, 10, 10),
		input.Move(50, 30),
		input.Release(input.ButtonPrimary, 110, 60),
	)

	r, cancelled, err := Drive(context.Background(), surf, gradient(200, 200))
	if err != nil {
		t.Fatalf("Drive: %v", err)
	}
	if cancelled {
		t.Fatal("expected completion")
	}
	if r != image.Rect(10, 10, 110, 60) {
		t.Fatalf("unexpected rect %v", r)
	}
	if !surf.closed {
		t.Fatal("expected surface to be closed")
	}
	// initial frame, press, move
	if surf.frames != 3 {
		t.Fatalf("expected 3 frames, got %d", surf.frames)
	}
}

func TestDriveOffsetsByBackgroundOrigin(t *testing.T) {
	bg := image.NewRGBA(image.Rect(-100, 0, 100, 100))
	surf := newFakeSurface(
		input.Press(input.ButtonPrimary, 10, 10),
		input.Release(input.ButtonPrimary, 30, 40),
	)

	r, cancelled, err := Drive(context.Background(), surf, bg)
	if err != nil || cancelled {
		t.Fatalf("unexpected result cancelled=%v err=%v", cancelled, err)
	}
	if r != image.Rect(-90, 10, -70, 40) {
		t.Fatalf("expected rect in background coordinates, got %v", r)
	}
}

func TestDriveEscapeCancels(t *testing.T) {
	surf := newFakeSurface(
		input.Press(input.ButtonPrimary, 10, 10),
		input.KeyEvent{Key: input.KeyEscape},
	)
	_, cancelled, err := Drive(context.Background(), surf, gradient(50, 50))
	if err != nil {
		t.Fatalf("Drive: %v", err)
	}
	if !cancelled {
		t.Fatal("expected cancellation")
	}
	if !surf.closed {
		t.Fatal("expected surface to be closed")
	}
}

func TestDriveClosedSurfaceCancels(t *testing.T) {
	surf := newFakeSurface(input.Press(input.ButtonPrimary, 10, 10))
	close(surf.events)

	_, cancelled, err := Drive(context.Background(), surf, gradient(50, 50))
	if err != nil || !cancelled {
		t.Fatalf("expected quiet cancellation, got cancelled=%v err=%v", cancelled, err)
	}
}

func TestDriveContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	surf := &fakeSurface{events: make(chan any)}

	_, cancelled, err := Drive(ctx, surf, gradient(50, 50))
	if !cancelled {
		t.Fatal("expected cancellation")
	}
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
