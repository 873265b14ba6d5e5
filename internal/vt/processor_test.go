package vt

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// capturingHandler is a minimal Handler that logs every call as a single
// line, so assertions read like the scenario they encode rather than
// inspecting a dozen typed counters.
type capturingHandler struct {
	NoopHandler
	calls []string
}

func (h *capturingHandler) log(format string, args ...any) {
	h.calls = append(h.calls, fmt.Sprintf(format, args...))
}

func (h *capturingHandler) Input(c rune)           { h.log("Input(%q)", c) }
func (h *capturingHandler) Bell()                   { h.log("Bell()") }
func (h *capturingHandler) LineFeed()                { h.log("LineFeed()") }
func (h *capturingHandler) Tab()                    { h.log("Tab()") }
func (h *capturingHandler) SetTabStop()             { h.log("SetTabStop()") }
func (h *capturingHandler) Goto(line, col int)      { h.log("Goto(%d,%d)", line, col) }
func (h *capturingHandler) GotoLine(line int)        { h.log("GotoLine(%d)", line) }
func (h *capturingHandler) GotoCol(col int)          { h.log("GotoCol(%d)", col) }
func (h *capturingHandler) MoveUp(n int)             { h.log("MoveUp(%d)", n) }
func (h *capturingHandler) MoveDown(n int)           { h.log("MoveDown(%d)", n) }
func (h *capturingHandler) MoveForward(n int)        { h.log("MoveForward(%d)", n) }
func (h *capturingHandler) MoveBackward(n int)       { h.log("MoveBackward(%d)", n) }
func (h *capturingHandler) MoveDownAndCR(n int)      { h.log("MoveDownAndCR(%d)", n) }
func (h *capturingHandler) MoveUpAndCR(n int)        { h.log("MoveUpAndCR(%d)", n) }
func (h *capturingHandler) SaveCursorPosition()      { h.log("SaveCursorPosition()") }
func (h *capturingHandler) RestoreCursorPosition()   { h.log("RestoreCursorPosition()") }
func (h *capturingHandler) InsertBlank(n int)        { h.log("InsertBlank(%d)", n) }
func (h *capturingHandler) DeleteChars(n int)        { h.log("DeleteChars(%d)", n) }
func (h *capturingHandler) EraseChars(n int)         { h.log("EraseChars(%d)", n) }
func (h *capturingHandler) InsertLines(n int)        { h.log("InsertLines(%d)", n) }
func (h *capturingHandler) DeleteLines(n int)        { h.log("DeleteLines(%d)", n) }
func (h *capturingHandler) ScrollUp(n int)           { h.log("ScrollUp(%d)", n) }
func (h *capturingHandler) ScrollDown(n int)         { h.log("ScrollDown(%d)", n) }
func (h *capturingHandler) SetScrollingRegion(t, b int) { h.log("SetScrollingRegion(%d,%d)", t, b) }
func (h *capturingHandler) SetAttribute(a Attr)      { h.log("SetAttribute(%d)", a) }
func (h *capturingHandler) ResetAttributes()         { h.log("ResetAttributes()") }
func (h *capturingHandler) SetForeground(c Color)    { h.log("SetForeground(%+v)", c) }
func (h *capturingHandler) SetBackground(c Color)    { h.log("SetBackground(%+v)", c) }
func (h *capturingHandler) ResetColors()             { h.log("ResetColors()") }
func (h *capturingHandler) SetMode(m Mode)           { h.log("SetMode(%d)", m) }
func (h *capturingHandler) ResetMode(m Mode)         { h.log("ResetMode(%d)", m) }
func (h *capturingHandler) DeviceStatus(kind int)    { h.log("DeviceStatus(%d)", kind) }
func (h *capturingHandler) SetTitle(title string)    { h.log("SetTitle(%q)", title) }
func (h *capturingHandler) Hyperlink(p, uri string)  { h.log("Hyperlink(%q,%q)", p, uri) }
func (h *capturingHandler) ClearTabStop(m TabulationClearMode) { h.log("ClearTabStop(%v)", m) }
func (h *capturingHandler) TabForward(n int)         { h.log("TabForward(%d)", n) }
func (h *capturingHandler) TabBackward(n int)        { h.log("TabBackward(%d)", n) }
func (h *capturingHandler) ConfigureCharset(index CharsetIndex, charset StandardCharset) {
	h.log("ConfigureCharset(%v, %v)", index, charset)
}
func (h *capturingHandler) SetActiveCharset(index CharsetIndex) { h.log("SetActiveCharset(%v)", index) }

func newProc() (*Processor, *capturingHandler) {
	h := &capturingHandler{}
	return NewProcessor(h), h
}

// Spec 8 scenario: CUP with absolute row/col.
func TestProcessorCursorPosition(t *testing.T) {
	p, h := newProc()
	p.Advance(h, []byte("\x1b[10;20H"))
	require.Equal(t, []string{"Goto(10,20)"}, h.calls)
}

// Spec 8 scenario 3: ESC 7 saves, ESC 8 restores.
func TestProcessorSaveRestoreCursor(t *testing.T) {
	p, h := newProc()
	p.Advance(h, []byte("\x1b7\x1b8"))
	require.Equal(t, []string{"SaveCursorPosition()", "RestoreCursorPosition()"}, h.calls)
}

// Spec 8 scenario 4: DECSTBM sets the scrolling region.
func TestProcessorDECSTBM(t *testing.T) {
	p, h := newProc()
	p.Advance(h, []byte("\x1b[2;5r"))
	require.Equal(t, []string{"SetScrollingRegion(2,5)"}, h.calls)
}

// DECSTBM with missing/zero params resets to full screen, represented here
// as bottom=0 for the handler to resolve against grid height.
func TestProcessorDECSTBMDefaultsToFullScreen(t *testing.T) {
	p, h := newProc()
	p.Advance(h, []byte("\x1b[r"))
	require.Equal(t, []string{"SetScrollingRegion(1,0)"}, h.calls)
}

// DSR parameter 6 requests a cursor position report.
func TestProcessorDeviceStatusReport(t *testing.T) {
	p, h := newProc()
	p.Advance(h, []byte("\x1b[6n"))
	require.Equal(t, []string{"DeviceStatus(6)"}, h.calls)
}

// Spec 4.2.3: ICH/DCH/ECH delegate straight to Handler with their count.
func TestProcessorInsertDeleteErase(t *testing.T) {
	p, h := newProc()
	p.Advance(h, []byte("\x1b[2@\x1b[3P\x1b[4X"))
	require.Equal(t, []string{"InsertBlank(2)", "DeleteChars(3)", "EraseChars(4)"}, h.calls)
}

// Spec 4.2.3: J and K (ED/EL) are explicitly ignored by this core.
func TestProcessorEraseDisplayAndLineAreIgnored(t *testing.T) {
	p, h := newProc()
	p.Advance(h, []byte("\x1b[2J\x1b[K"))
	require.Empty(t, h.calls)
}

// Spec 4.2.3 SGR table: standard colors, extended truecolor, and reset.
func TestProcessorSGRColors(t *testing.T) {
	p, h := newProc()
	p.Advance(h, []byte("\x1b[31;48:2:10:20:30m"))
	require.Equal(t, []string{
		"SetForeground({Type:1 Named:1 Index:0 Rgb:{R:0 G:0 B:0}})",
		"SetBackground({Type:3 Named:0 Index:0 Rgb:{R:10 G:20 B:30}})",
	}, h.calls)
}

func TestProcessorSGRResetWithNoParams(t *testing.T) {
	p, h := newProc()
	p.Advance(h, []byte("\x1b[m"))
	require.Equal(t, []string{"ResetAttributes()", "ResetColors()"}, h.calls)
}

// Spec 4.2.3: private-mode markers (CSI ? ... h/l) offset the mode space.
func TestProcessorPrivateModeSetReset(t *testing.T) {
	p, h := newProc()
	p.Advance(h, []byte("\x1b[?25h\x1b[?25l"))
	require.Equal(t, []string{"SetMode(537)", "ResetMode(537)"}, h.calls)
}

// Malformed-sequence policy: a CSI that overflowed caps is discarded, not
// partially acted on.
func TestProcessorDiscardsTruncatedCSI(t *testing.T) {
	p, h := newProc()
	seq := "\x1b["
	for i := 0; i < maxFields+2; i++ {
		seq += "1;"
	}
	seq += "H"
	p.Advance(h, []byte(seq))
	require.Empty(t, h.calls)
}

// OSC 0/1/2 set the title; OSC 8 enqueues a hyperlink via the handler.
func TestProcessorOSCTitleAndHyperlink(t *testing.T) {
	p, h := newProc()
	p.Advance(h, []byte("\x1b]0;my session\x07\x1b]8;id=1;http://example\x1b\\"))
	require.Equal(t, []string{
		`SetTitle("my session")`,
		`Hyperlink("id=1","http://example")`,
	}, h.calls)
}

func TestProcessorIndexAndReverseIndex(t *testing.T) {
	p, h := newProc()
	p.Advance(h, []byte("\x1bD\x1bM"))
	require.Equal(t, []string{"MoveDown(1)", "MoveUp(1)"}, h.calls)
}

func TestProcessorSynchronizedUpdateBuffersOutput(t *testing.T) {
	h := &capturingHandler{}
	p := NewProcessor(h)
	p.BeginSynchronizedUpdate()
	require.True(t, p.IsInSynchronizedUpdate())
	p.Advance(h, []byte("A"))
	require.Empty(t, h.calls, "synchronized update must buffer, not dispatch, while enabled")
	p.EndSynchronizedUpdate()
	require.False(t, p.IsInSynchronizedUpdate())
}
