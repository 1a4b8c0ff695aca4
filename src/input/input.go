// Package input defines toolkit-neutral pointer and keyboard events. Window
// implementations translate their native events into these before handing
// them to the overlay and picker models.
package input

import "image"

type Button int

const (
	ButtonNone Button = iota
	ButtonPrimary
	ButtonSecondary
	ButtonMiddle
)

type MouseAction int

const (
	MousePress MouseAction = iota
	MouseRelease
	MouseMove
)

// MouseEvent is a pointer event in surface coordinates.
type MouseEvent struct {
	Action MouseAction
	Button Button
	Pos    image.Point
}

type Key int

const (
	KeyOther Key = iota
	KeyEscape
	KeyEnter
)

// KeyEvent is a key press. Releases are not delivered.
type KeyEvent struct {
	Key Key
}

func Press(b Button, x, y int) MouseEvent {
	return MouseEvent{Action: MousePress, Button: b, Pos: image.Pt(x, y)}
}

func Release(b Button, x, y int) MouseEvent {
	return MouseEvent{Action: MouseRelease, Button: b, Pos: image.Pt(x, y)}
}

func Move(x, y int) MouseEvent {
	return MouseEvent{Action: MouseMove, Pos: image.Pt(x, y)}
}

func (a MouseAction) String() string {
	switch a {
	case MousePress:
		return "press"
	case MouseRelease:
		return "release"
	case MouseMove:
		return "move"
	}
	return "unknown"
}
