// Package input implements the async input pipeline (C7): a pre-allocated
// stdin reader paired with an ANSI input parser that recognizes keyboard,
// mouse, focus, and bracketed-paste sequences.
package input

// KeyCode identifies a recognized key, independent of the rune it produced
// (most keys carry no rune at all).
type KeyCode int

const (
	KeyChar KeyCode = iota
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyInsert
	KeyDelete
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

// Modifiers is a bitmask of held modifier keys, decoded from the xterm CSI
// modifier parameter (value-1 split into Shift/Alt/Ctrl bits).
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModAlt
	ModCtrl
)

// modsFromXtermParam converts an xterm modifier parameter (1 = none, 2 =
// shift, ... 8 = ctrl+alt+shift) into a Modifiers bitmask.
func modsFromXtermParam(p int) Modifiers {
	if p <= 1 {
		return 0
	}
	return Modifiers(p - 1)
}

// Key is a single recognized keypress.
type Key struct {
	Code KeyCode
	Rune rune
	Mods Modifiers
}

// MouseButton identifies which button (or wheel direction) a MouseEvent
// reports.
type MouseButton int

const (
	MouseNone MouseButton = iota
	MouseLeft
	MouseMiddle
	MouseRight
	MouseWheelUp
	MouseWheelDown
	MouseMove
)

// MouseEvent is a decoded xterm 1000/1006 (SGR) mouse report.
type MouseEvent struct {
	Button  MouseButton
	Col     int
	Row     int
	Pressed bool
	Mods    Modifiers
}

// EventKind tags which field of Event is populated.
type EventKind int

const (
	EventKey EventKind = iota
	EventMouse
	EventFocusIn
	EventFocusOut
	EventBracketedPaste
	EventResize
)

// Event is the unified input event the reader emits.
type Event struct {
	Kind   EventKind
	Key    Key
	Mouse  MouseEvent
	Paste  string
	Width  int
	Height int
}
