// Package input turns raw terminal bytes into abstract navigation
// events. Malformed or unrecognized sequences are dropped, never
// surfaced as errors.
package input

// Key identifies a decoded keyboard event.
type Key int

const (
	KeyRune Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyPageUp
	KeyPageDown
	KeyEnter
	KeyEscape
	KeyBackspace
	// KeyCtrl carries the lowercase letter in Rune (Ctrl-C => 'c').
	KeyCtrl
)

// MouseKind classifies a decoded mouse report.
type MouseKind int

const (
	MousePress MouseKind = iota
	MouseRelease
	MouseScrollUp
	MouseScrollDown
	MouseMove
)

// Mouse button codes after the +32 wire offset is removed.
const (
	ButtonLeft  = 0
	ButtonRight = 3
)

type Event interface{ isEvent() }

type KeyEvent struct {
	Key  Key
	Rune rune
}

type MouseEvent struct {
	Kind   MouseKind
	Button int
	// X and Y are terminal cell coordinates as reported, 1-based.
	X, Y int
}

func (KeyEvent) isEvent()   {}
func (MouseEvent) isEvent() {}
