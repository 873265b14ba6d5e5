package vt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// DEC special graphics, the table a terminal must honor once G0 is
// designated via ESC ( 0 (spec 4.2.1).
func TestSpecialLineDrawingMapsBoxDrawingCharacters(t *testing.T) {
	cases := map[rune]rune{
		'q': '─',
		'x': '│',
		'l': '┌',
		'k': '┐',
		'm': '└',
		'j': '┘',
		'n': '┼',
		't': '├',
		'u': '┤',
		'v': '┴',
		'w': '┬',
	}
	for in, want := range cases {
		require.Equal(t, want, StandardCharsetSpecialLineDrawing.Map(in), "mapping %q", in)
	}
}

func TestSpecialLineDrawingPassesThroughUnmappedRunes(t *testing.T) {
	require.Equal(t, 'Z', StandardCharsetSpecialLineDrawing.Map('Z'))
}

func TestAsciiCharsetIsIdentity(t *testing.T) {
	for _, r := range []rune{'a', 'Z', '0', '{'} {
		require.Equal(t, r, StandardCharsetAscii.Map(r))
	}
}

func TestCharsetIndexString(t *testing.T) {
	require.Equal(t, "G0", G0.String())
	require.Equal(t, "G1", G1.String())
	require.Equal(t, "G2", G2.String())
	require.Equal(t, "G3", G3.String())
}

// ESC ( and ESC ) designate G0/G1; Processor routes them through
// configureCharset, which the scanner/dispatcher exercise end to end here.
func TestProcessorConfiguresCharsetOnEscapeIntermediate(t *testing.T) {
	p, h := newProc()
	p.Advance(h, []byte("\x1b(0"))
	require.Equal(t, []string{"ConfigureCharset(G0, SpecialCharacterAndLineDrawing)"}, h.calls)
}

func TestProcessorConfiguresG1Charset(t *testing.T) {
	p, h := newProc()
	p.Advance(h, []byte("\x1b)B"))
	require.Equal(t, []string{"ConfigureCharset(G1, Ascii)"}, h.calls)
}

// Shift Out / Shift In (C0 0x0E/0x0F) swap the active charset between G1
// and G0 without any escape sequence.
func TestProcessorShiftOutAndShiftIn(t *testing.T) {
	p, h := newProc()
	p.Advance(h, []byte{0x0E, 0x0F})
	require.Equal(t, []string{"SetActiveCharset(G1)", "SetActiveCharset(G0)"}, h.calls)
}
