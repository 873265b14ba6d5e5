package vterm

import "github.com/r3bl-org/tuicore/internal/vt"

// DefaultWidth/DefaultHeight match common terminal defaults (80x24).
const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// ParseBytes feeds data through a fresh vt.Processor driving a new VTerm of
// the given dimensions, returning the resulting VTerm.
func ParseBytes(data []byte, width, height int) *VTerm {
	term := New(width, height)
	proc := vt.NewProcessor(term)
	proc.Advance(term, data)
	return term
}

// RenderString parses data against an 80x24 VTerm and returns the resulting
// display text.
func RenderString(data []byte) string {
	return ParseBytes(data, DefaultWidth, DefaultHeight).Grid().Render()
}
