package overlay

import (
	"image"

	"cordshot/src/input"
)

// State is the phase of one region selection.
type State int

const (
	// Idle: no anchor recorded yet.
	Idle State = iota
	// Dragging: anchor set, primary button held.
	Dragging
	// Static: anchor set, button released before the selection got large
	// enough; waiting for a second click or Enter.
	Static
	Completed
	Cancelled
)

// MinSelectionSpan is the size a drag must exceed in both dimensions to
// commit on release.
const MinSelectionSpan = 5

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case Static:
		return "static"
	case Completed:
		return "completed"
	case Cancelled:
		return "cancelled"
	}
	return "unknown"
}

// Terminal reports whether no further transitions are possible.
func (s State) Terminal() bool { return s == Completed || s == Cancelled }

// Selection is the anchor/current pair the overlay tracks. Dragging implies
// HasAnchor.
type Selection struct {
	Anchor    image.Point
	Current   image.Point
	HasAnchor bool
	Dragging  bool
}

// Rect is the normalised selection rectangle, or the zero rectangle when no
// anchor exists.
func (s Selection) Rect() image.Rectangle {
	if !s.HasAnchor {
		return image.Rectangle{}
	}
	return Normalize(s.Anchor, s.Current)
}

// Normalize orders two corners into a rectangle with non-negative size.
func Normalize(a, b image.Point) image.Rectangle {
	return image.Rect(a.X, a.Y, b.X, b.Y)
}

// Machine is the region selection state machine. It is not safe for
// concurrent use; one goroutine owns it for the lifetime of the overlay.
type Machine struct {
	state State
	sel   Selection
}

func NewMachine() *Machine {
	return &Machine{state: Idle}
}

func (m *Machine) State() State { return m.state }

func (m *Machine) Selection() Selection { return m.sel }

// Rect returns the rectangle the overlay currently shows.
func (m *Machine) Rect() image.Rectangle { return m.sel.Rect() }

// HandleMouse applies a pointer event and reports whether the frame needs
// repainting.
func (m *Machine) HandleMouse(ev input.MouseEvent) bool {
	if m.state.Terminal() {
		return false
	}
	switch ev.Action {
	case input.MousePress:
		return m.press(ev)
	case input.MouseMove:
		if m.state != Dragging {
			return false
		}
		m.sel.Current = ev.Pos
		return true
	case input.MouseRelease:
		if m.state != Dragging || ev.Button != input.ButtonPrimary {
			return false
		}
		m.sel.Current = ev.Pos
		m.sel.Dragging = false
		r := m.sel.Rect()
		if r.Dx() > MinSelectionSpan && r.Dy() > MinSelectionSpan {
			m.state = Completed
		} else {
			m.state = Static
		}
		return true
	}
	return false
}

func (m *Machine) press(ev input.MouseEvent) bool {
	switch ev.Button {
	case input.ButtonSecondary:
		m.state = Cancelled
		return true
	case input.ButtonPrimary:
	default:
		return false
	}
	switch m.state {
	case Idle:
		m.sel = Selection{Anchor: ev.Pos, Current: ev.Pos, HasAnchor: true, Dragging: true}
		m.state = Dragging
		return true
	case Static:
		m.sel.Current = ev.Pos
		m.state = Completed
		return true
	}
	return false
}

// HandleKey applies a key press and reports whether the frame needs
// repainting.
func (m *Machine) HandleKey(ev input.KeyEvent) bool {
	if m.state.Terminal() {
		return false
	}
	switch ev.Key {
	case input.KeyEscape:
		m.state = Cancelled
		return true
	case input.KeyEnter:
		if !m.sel.HasAnchor {
			return false
		}
		m.sel.Dragging = false
		m.state = Completed
		return true
	}
	return false
}

// Cancel forces the machine into Cancelled unless it already finished.
func (m *Machine) Cancel() {
	if !m.state.Terminal() {
		m.state = Cancelled
	}
}
