// Package vterm is the VT Emulator (C2): it owns cursor position, pending
// style, active charset, scrolling region, DEC private modes, and saved
// cursor/style state, and mutates a grid.Grid through its bounds-checked
// primitives. It implements vt.Handler so a vt.Processor can drive it
// directly from a byte stream via its vt.Scanner.
package vterm

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/r3bl-org/tuicore/internal/grid"
	"github.com/r3bl-org/tuicore/internal/vt"
)

// HyperlinkEvent is emitted when an OSC 8 sequence opens or closes a link.
// Spec's open question on OSC/grid ordering is resolved as: the event is
// appended to the hyperlink queue (see DrainHyperlinks) only after all prior
// print/CSI effects for the same
// parse pass have already mutated the grid.
type HyperlinkEvent struct {
	Params string
	URI    string
}

type savedState struct {
	row, col int
	style    grid.Style
	valid    bool
}

// VTerm is the C2 VT Emulator.
type VTerm struct {
	g *grid.Grid

	width, height int
	row, col      int
	style         grid.Style

	saved savedState

	scrollTop, scrollBottom int // 0-based, inclusive

	modes map[vt.Mode]bool

	cursorVisible bool
	cursorStyle   vt.CursorStyle

	charsets      [4]vt.StandardCharset
	activeCharset vt.CharsetIndex

	title string
	// hyperlinks accumulates OSC 8 hyperlink events observed since the last
	// DrainHyperlinks call; title changes are kept in title instead.
	hyperlinks []HyperlinkEvent
	// replies accumulates host-bound responses synthesized by device status
	// queries (DSR) since the last DrainReplies call.
	replies [][]byte

	tabStops map[int]bool

	log *zap.SugaredLogger
}

var _ vt.Handler = (*VTerm)(nil)

// New creates a VTerm backed by a fresh width x height Grid.
func New(width, height int) *VTerm {
	t := &VTerm{
		g:             grid.NewGrid(width, height),
		width:         width,
		height:        height,
		style:         grid.DefaultStyle,
		scrollTop:     0,
		scrollBottom:  height - 1,
		modes:         make(map[vt.Mode]bool),
		cursorVisible: true,
		tabStops:      make(map[int]bool),
		log:           zap.NewNop().Sugar(),
	}
	t.resetTabStops()
	return t
}

// SetLogger installs the logger used to report ignored Grid errors.
func (t *VTerm) SetLogger(log *zap.SugaredLogger) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	t.log = log
}

// Grid returns the underlying Grid for rendering.
func (t *VTerm) Grid() *grid.Grid { return t.g }

// CursorPosition returns the 0-based (row, col).
func (t *VTerm) CursorPosition() (int, int) { return t.row, t.col }

// Title returns the last title set via OSC 0/1/2.
func (t *VTerm) Title() string { return t.title }

// DrainHyperlinks returns and clears pending hyperlink events.
func (t *VTerm) DrainHyperlinks() []HyperlinkEvent {
	ev := t.hyperlinks
	t.hyperlinks = nil
	return ev
}

// DrainReplies returns and clears byte sequences a host must write back to
// the pty master on the emulated program's behalf (device status reports,
// cursor position reports) since the last DrainReplies call.
func (t *VTerm) DrainReplies() [][]byte {
	r := t.replies
	t.replies = nil
	return r
}

func (t *VTerm) resetTabStops() {
	t.tabStops = make(map[int]bool)
	for c := 8; c < t.width; c += 8 {
		t.tabStops[c] = true
	}
}

func (t *VTerm) clampCursor() {
	if t.row < 0 {
		t.row = 0
	}
	if t.row >= t.height {
		t.row = t.height - 1
	}
	if t.col < 0 {
		t.col = 0
	}
	if t.col >= t.width {
		t.col = t.width - 1
	}
}

func (t *VTerm) logErr(err error, op string) {
	if err != nil {
		t.log.Warnw("grid operation failed", "op", op, "error", err)
	}
}

// scrollUpWithinRegion scrolls the active scrolling region up n rows,
// blanking the vacated rows with the current background.
func (t *VTerm) scrollUpWithinRegion(n int) {
	t.logErr(t.g.ScrollRegionUp(grid.Region{Top: t.scrollTop, Bottom: t.scrollBottom}, n, t.style), "scroll_up")
}

func (t *VTerm) scrollDownWithinRegion(n int) {
	t.logErr(t.g.ScrollRegionDown(grid.Region{Top: t.scrollTop, Bottom: t.scrollBottom}, n, t.style), "scroll_down")
}

// lineFeed advances the cursor to the next line, scrolling the region if the
// cursor sits on the bottom margin.
func (t *VTerm) lineFeed() {
	if t.row == t.scrollBottom {
		t.scrollUpWithinRegion(1)
		return
	}
	t.row++
	t.clampCursor()
}

func (t *VTerm) reverseIndex() {
	if t.row == t.scrollTop {
		t.scrollDownWithinRegion(1)
		return
	}
	t.row--
	t.clampCursor()
}

// === vt.Handler: text and display ===

// Input prints a character at the cursor, advancing the cursor and wrapping
// at the right margin.
func (t *VTerm) Input(c rune) {
	c = t.charsets[t.activeCharset].Map(c)

	cell := grid.NewPlainTextCell(c, t.style)
	t.logErr(t.g.Set(t.row, t.col, cell), "print")
	width := cell.Width
	if width < 1 {
		width = 1
	}
	if width == 2 && t.col+1 < t.width {
		t.logErr(t.g.Set(t.row, t.col+1, grid.VoidCell), "print_spacer")
	}
	t.col += width

	if t.col >= t.width {
		t.col = 0
		t.lineFeed()
	}
}

func (t *VTerm) Bell() {}

func (t *VTerm) LineFeed() { t.lineFeed() }

func (t *VTerm) CarriageReturn() { t.col = 0 }

func (t *VTerm) Backspace() {
	if t.col > 0 {
		t.col--
	}
}

func (t *VTerm) Tab() {
	for c := t.col + 1; c < t.width; c++ {
		if t.tabStops[c] {
			t.col = c
			return
		}
	}
	t.col = t.width - 1
}

func (t *VTerm) SetTabStop() { t.tabStops[t.col] = true }

func (t *VTerm) ClearTabStop(mode vt.TabulationClearMode) {
	switch mode {
	case vt.TabClearCurrent:
		delete(t.tabStops, t.col)
	case vt.TabClearAll:
		t.tabStops = make(map[int]bool)
	}
}

func (t *VTerm) TabForward(count int) {
	for i := 0; i < count; i++ {
		t.Tab()
	}
}

func (t *VTerm) TabBackward(count int) {
	for i := 0; i < count; i++ {
		moved := false
		for c := t.col - 1; c >= 0; c-- {
			if t.tabStops[c] {
				t.col = c
				moved = true
				break
			}
		}
		if !moved {
			t.col = 0
		}
	}
}

func (t *VTerm) SetTitle(title string) { t.title = title }

func (t *VTerm) Hyperlink(params, uri string) {
	t.hyperlinks = append(t.hyperlinks, HyperlinkEvent{Params: params, URI: uri})
}

// === Cursor movement ===

func (t *VTerm) Goto(line, col int) {
	t.row = line - 1
	t.col = col - 1
	t.clampCursor()
}

func (t *VTerm) GotoLine(line int) {
	t.row = line - 1
	t.clampCursor()
}

func (t *VTerm) GotoCol(col int) {
	t.col = col - 1
	t.clampCursor()
}

func (t *VTerm) MoveUp(lines int) {
	t.row -= lines
	t.clampCursor()
}

func (t *VTerm) MoveDown(lines int) {
	t.row += lines
	t.clampCursor()
}

func (t *VTerm) MoveForward(cols int) {
	t.col += cols
	t.clampCursor()
}

func (t *VTerm) MoveBackward(cols int) {
	t.col -= cols
	t.clampCursor()
}

func (t *VTerm) MoveDownAndCR(lines int) {
	t.row += lines
	t.col = 0
	t.clampCursor()
}

func (t *VTerm) MoveUpAndCR(lines int) {
	t.row -= lines
	t.col = 0
	t.clampCursor()
}

func (t *VTerm) SaveCursorPosition() {
	t.saved = savedState{row: t.row, col: t.col, style: t.style, valid: true}
}

func (t *VTerm) RestoreCursorPosition() {
	if !t.saved.valid {
		return
	}
	t.row, t.col, t.style = t.saved.row, t.saved.col, t.saved.style
	t.clampCursor()
}

// === Text modification ===

func (t *VTerm) InsertBlank(count int) {
	t.logErr(t.g.InsertBlanksShiftRight(t.row, t.col, count), "ich")
}

func (t *VTerm) DeleteChars(count int) {
	t.logErr(t.g.DeleteShiftLeft(t.row, t.col, count), "dch")
}

func (t *VTerm) EraseChars(count int) {
	t.logErr(t.g.EraseInPlace(t.row, t.col, count), "ech")
}

func (t *VTerm) InsertLines(count int) {
	if t.row < t.scrollTop || t.row > t.scrollBottom {
		return
	}
	t.logErr(t.g.ScrollRegionDown(grid.Region{Top: t.row, Bottom: t.scrollBottom}, count, t.style), "il")
}

func (t *VTerm) DeleteLines(count int) {
	if t.row < t.scrollTop || t.row > t.scrollBottom {
		return
	}
	t.logErr(t.g.ScrollRegionUp(grid.Region{Top: t.row, Bottom: t.scrollBottom}, count, t.style), "dl")
}

// === Screen operations ===
//
// ClearLine/ClearScreen (ED/EL) are intentionally never invoked by
// vt.Processor's CSI dispatch: clearing is owned by upstream repainting.
// They remain here so a host that wants that behavior can call them
// directly against a VTerm.

func (t *VTerm) ClearLine(mode vt.LineClearMode) {
	switch mode {
	case vt.LineClearRight:
		t.logErr(t.g.FillRange(t.row, t.col, t.width, grid.EmptyCell), "el_right")
	case vt.LineClearLeft:
		t.logErr(t.g.FillRange(t.row, 0, t.col+1, grid.EmptyCell), "el_left")
	case vt.LineClearAll:
		t.logErr(t.g.FillRange(t.row, 0, t.width, grid.EmptyCell), "el_all")
	}
}

func (t *VTerm) ClearScreen(mode vt.ClearMode) {
	switch mode {
	case vt.ClearBelow:
		t.logErr(t.g.FillRange(t.row, t.col, t.width, grid.EmptyCell), "ed_below")
		for y := t.row + 1; y < t.height; y++ {
			t.logErr(t.g.FillRange(y, 0, t.width, grid.EmptyCell), "ed_below")
		}
	case vt.ClearAbove:
		for y := 0; y < t.row; y++ {
			t.logErr(t.g.FillRange(y, 0, t.width, grid.EmptyCell), "ed_above")
		}
		t.logErr(t.g.FillRange(t.row, 0, t.col+1, grid.EmptyCell), "ed_above")
	case vt.ClearAll, vt.ClearSaved:
		t.g.ClearAll()
	}
}

func (t *VTerm) ScrollUp(lines int) { t.scrollUpWithinRegion(lines) }

func (t *VTerm) ScrollDown(lines int) { t.scrollDownWithinRegion(lines) }

// SetScrollingRegion sets the margins (1-based, inclusive). bottom==0 means
// "reset to full screen height" — the caller (Processor) no longer assumes
// a fixed height.
func (t *VTerm) SetScrollingRegion(top, bottom int) {
	if bottom == 0 {
		bottom = t.height
	}
	top--
	bottom--
	if top < 0 {
		top = 0
	}
	if bottom >= t.height {
		bottom = t.height - 1
	}
	if top >= bottom {
		t.scrollTop, t.scrollBottom = 0, t.height-1
		return
	}
	t.scrollTop, t.scrollBottom = top, bottom
}

// === Text attributes ===

func (t *VTerm) SetAttribute(attr vt.Attr) { t.style.Attrs = t.style.Attrs.Add(attr) }

func (t *VTerm) ResetAttributes() { t.style = grid.DefaultStyle }

func (t *VTerm) SetForeground(color vt.Color) { t.style.FG = color }

func (t *VTerm) SetBackground(color vt.Color) { t.style.BG = color }

func (t *VTerm) ResetColors() {
	t.style.FG = vt.DefaultColor
	t.style.BG = vt.DefaultColor
}

// === Cursor appearance ===

func (t *VTerm) SetCursorStyle(style vt.CursorStyle) { t.cursorStyle = style }

func (t *VTerm) SetCursorVisible(visible bool) { t.cursorVisible = visible }

// === Terminal modes ===

func (t *VTerm) SetMode(mode vt.Mode) {
	t.modes[mode] = true
	if mode == vt.ModeShowCursor {
		t.cursorVisible = true
	}
}

func (t *VTerm) ResetMode(mode vt.Mode) {
	delete(t.modes, mode)
	if mode == vt.ModeShowCursor {
		t.cursorVisible = false
	}
}

// ModeSet reports whether mode is currently enabled.
func (t *VTerm) ModeSet(mode vt.Mode) bool { return t.modes[mode] }

// === Device operations ===

// dsrCursorPosition is the DSR parameter that requests a Cursor Position
// Report (CPR) reply.
const dsrCursorPosition = 6

// DeviceStatus handles a Device Status Report request. Only parameter 6
// (cursor position) gets a reply; other DSR kinds (e.g. 5, "are you OK") are
// not meaningful for an in-memory emulator with no real device to report on.
func (t *VTerm) DeviceStatus(kind int) {
	if kind != dsrCursorPosition {
		return
	}
	reply := fmt.Appendf(nil, "\x1b[%d;%dR", t.row+1, t.col+1)
	t.replies = append(t.replies, reply)
}

func (t *VTerm) IdentifyTerminal() {}

// Reset performs a soft reset: cursor, style, margins, modes — content kept.
func (t *VTerm) Reset() {
	t.row, t.col = 0, 0
	t.style = grid.DefaultStyle
	t.saved = savedState{}
	t.scrollTop, t.scrollBottom = 0, t.height-1
	t.modes = make(map[vt.Mode]bool)
	t.cursorVisible = true
	t.activeCharset = vt.G0
	t.charsets = [4]vt.StandardCharset{}
}

// HardReset performs RIS: soft reset plus clearing the grid and title.
func (t *VTerm) HardReset() {
	t.Reset()
	t.g.ClearAll()
	t.title = ""
	t.hyperlinks = nil
	t.replies = nil
	t.resetTabStops()
}

// === DCS (unsupported; no-op) ===

func (t *VTerm) Hook(params [][]uint16, intermediates []byte, ignore bool, action rune) {}

func (t *VTerm) Put(data []byte) {}

func (t *VTerm) Unhook() {}

// === Charset support ===

func (t *VTerm) ConfigureCharset(index vt.CharsetIndex, charset vt.StandardCharset) {
	t.charsets[index] = charset
}

func (t *VTerm) SetActiveCharset(index vt.CharsetIndex) { t.activeCharset = index }
