package gui

import (
	"image"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"

	"cordshot/src/input"
	"cordshot/src/storage"
)

func TestScalePoint(t *testing.T) {
	tests := []struct {
		name string
		pos  fyne.Position
		size fyne.Size
		px   image.Point
		want image.Point
	}{
		{"identity", fyne.NewPos(10, 20), fyne.NewSize(100, 100), image.Pt(100, 100), image.Pt(10, 20)},
		{"hidpi", fyne.NewPos(10, 20), fyne.NewSize(960, 540), image.Pt(1920, 1080), image.Pt(20, 40)},
		{"unsized", fyne.NewPos(7, 9), fyne.NewSize(0, 0), image.Pt(100, 100), image.Pt(7, 9)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scalePoint(tt.pos, tt.size, tt.px); got != tt.want {
				t.Fatalf("scalePoint = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestButtonAndKeyMapping(t *testing.T) {
	if buttonOf(desktop.MouseButtonPrimary) != input.ButtonPrimary ||
		buttonOf(desktop.MouseButtonSecondary) != input.ButtonSecondary ||
		buttonOf(desktop.MouseButtonTertiary) != input.ButtonMiddle {
		t.Fatal("unexpected button mapping")
	}
	if keyOf(fyne.KeyEscape) != input.KeyEscape || keyOf(fyne.KeyReturn) != input.KeyEnter ||
		keyOf(fyne.KeyEnter) != input.KeyEnter || keyOf(fyne.KeyA) != input.KeyOther {
		t.Fatal("unexpected key mapping")
	}
}

func TestExtensions(t *testing.T) {
	got := extensions(storage.Filters)
	want := []string{".png", ".jpg", ".jpeg"}
	if len(got) != len(want) {
		t.Fatalf("extensions = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("extensions = %v, want %v", got, want)
		}
	}
}

func TestPixelAreaReportsFramePixels(t *testing.T) {
	test.NewTempApp(t)

	var got []input.MouseEvent
	frame := image.NewRGBA(image.Rect(0, 0, 200, 100))
	a := newPixelArea(frame, func(ev input.MouseEvent) { got = append(got, ev) })
	a.Resize(fyne.NewSize(100, 50))

	a.MouseDown(&desktop.MouseEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(10, 5)}, Button: desktop.MouseButtonPrimary})
	a.Dragged(&fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(30, 20)}})
	a.DragEnd()

	if len(got) != 3 {
		t.Fatalf("events = %d, want 3", len(got))
	}
	if got[0] != input.Press(input.ButtonPrimary, 20, 10) {
		t.Fatalf("press = %+v", got[0])
	}
	if got[1] != input.Move(60, 40) {
		t.Fatalf("move = %+v", got[1])
	}
	if got[2] != input.Release(input.ButtonPrimary, 60, 40) {
		t.Fatalf("release = %+v", got[2])
	}
}

func TestPickerWindowRecordsClicks(t *testing.T) {
	a := test.NewTempApp(t)

	img := image.NewRGBA(image.Rect(0, 0, 100, 100))
	var copied []string
	p := newPickerWindow(a, img, textSink(func(s string) { copied = append(copied, s) }))
	p.area.Resize(fyne.NewSize(100, 100))

	if !p.copyAll.Disabled() {
		t.Fatal("copy buttons should start disabled")
	}
	p.handleMouse(input.Press(input.ButtonPrimary, 5, 5))
	p.handleMouse(input.Press(input.ButtonPrimary, 150, 5))

	if p.model.Len() != 1 {
		t.Fatalf("points = %d, want 1", p.model.Len())
	}
	if p.copyAll.Disabled() {
		t.Fatal("copy buttons should be enabled after a click")
	}
	if len(copied) != 1 || copied[0] != "(5, 5)" {
		t.Fatalf("copied = %v", copied)
	}

	test.Tap(p.clear)
	if p.model.HasPoints() || !p.clear.Disabled() {
		t.Fatal("clear should empty the list and disable itself")
	}
}

type textSink func(string)

func (f textSink) WriteText(s string) { f(s) }

func TestOverlaySurfaceForwardsInput(t *testing.T) {
	a := test.NewTempApp(t)

	s := newOverlaySurface(a, image.Pt(40, 30))
	s.area.Resize(fyne.NewSize(40, 30))

	s.area.MouseDown(&desktop.MouseEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(4, 3)}, Button: desktop.MouseButtonSecondary})
	select {
	case ev := <-s.Events():
		if ev != input.Press(input.ButtonSecondary, 4, 3) {
			t.Fatalf("event = %+v", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("no event forwarded")
	}

	frame := image.NewRGBA(image.Rect(0, 0, 40, 30))
	frame.Pix[0] = 0xaa
	s.Present(frame)
	frame.Pix[0] = 0 // reused by the caller after Present
	waitFor(t, func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		return !s.dirty && s.shown.Pix[0] == 0xaa
	})

	s.Close()
	waitFor(t, func() bool {
		select {
		case _, ok := <-s.Events():
			return !ok
		default:
			return false
		}
	})
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met in time")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestPickerWindowKeepsSmallImageAtNativeSize(t *testing.T) {
	a := test.NewTempApp(t)

	img := image.NewRGBA(image.Rect(0, 0, 100, 80))
	p := newPickerWindow(a, img, textSink(func(string) {}))
	p.win.Resize(fyne.NewSize(pickerMinWidth, pickerMinHeight))

	if got := p.area.Size(); got != fyne.NewSize(100, 80) {
		t.Fatalf("area size = %v, want 100x80", got)
	}
}

func TestMainWindowHideReportsVisibility(t *testing.T) {
	a := test.NewTempApp(t)
	m := newMainWindow(a, "cordshot", Actions{})

	if m.Hide() {
		t.Fatal("new window should report hidden")
	}
	m.Show()
	if !m.Hide() {
		t.Fatal("Hide after Show should report it was showing")
	}
	if m.Hide() {
		t.Fatal("second Hide should report hidden")
	}
}
