// Package readline implements the async line editor (C10): a readline()
// call driven by keyboard events, with a background monitor task that
// serializes concurrent writer output against the user's in-progress line.
package readline

// ControlKind tags which field of Control is populated.
type ControlKind int

const (
	CtrlLine ControlKind = iota
	CtrlFlush
	CtrlPause
	CtrlResume
	CtrlSpinnerActive
	CtrlSpinnerInactive
)

// Control is sent by concurrent writers on the control channel returned by
// Readline.Control().
type Control struct {
	Kind ControlKind
	Line []byte

	// SpinnerShutdown is set on CtrlSpinnerActive: while a spinner is
	// active, Ctrl-C/Ctrl-D are redirected here instead of producing
	// Interrupted/Eof.
	SpinnerShutdown chan<- struct{}
}
