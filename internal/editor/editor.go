// Package editor implements the Editor Buffer (C6): caret, scroll offset,
// selection, and undo/redo layered over a gapbuffer.GapBuffer.
package editor

import (
	"github.com/r3bl-org/tuicore/internal/gapbuffer"
)

// Caret is a grapheme-index position: Row is a line index, Col is a
// grapheme-cluster index within that line (not a byte offset).
type Caret struct {
	Row int
	Col int
}

// SelectionRange is a half-open grapheme-column range selected on one row.
type SelectionRange struct {
	Start int
	End   int
}

// Direction records the caret's last movement axis, used to decide how a
// new selection extension merges with the existing one.
type Direction int

const (
	DirNone Direction = iota
	DirLeft
	DirRight
	DirUp
	DirDown
)

// Buffer is the Editor Buffer: a gap buffer plus caret/scroll/selection/undo
// state. Mutations that must keep derived state consistent acquire a
// MutationHandle and call Release when done, rather than relying on an
// automatic destructor.
type Buffer struct {
	lines *gapbuffer.GapBuffer

	caret  Caret
	scroll Caret // ScrollRow/ScrollCol reuse Caret's shape

	selActive bool
	selAnchor Caret
	selRanges map[int]SelectionRange
	lastDir   Direction

	viewportWidth  int
	viewportHeight int

	undoStack []snapshot
	redoStack []snapshot

	renderCacheValid bool
	renderCache      string
}

type snapshot struct {
	lines  []string
	caret  Caret
	scroll Caret
	sel    map[int]SelectionRange
}

// New creates a Buffer over lines with the given viewport dimensions.
func New(lines []string, viewportWidth, viewportHeight int) *Buffer {
	return &Buffer{
		lines:          gapbuffer.FromLines(lines),
		selRanges:      make(map[int]SelectionRange),
		viewportWidth:  viewportWidth,
		viewportHeight: viewportHeight,
	}
}

// Caret returns the current caret position (raw grapheme index).
func (b *Buffer) Caret() Caret { return b.caret }

// ScreenCaret returns the caret with Col translated to a display column
// (summing grapheme widths up to the raw index).
func (b *Buffer) ScreenCaret() Caret {
	line, ok := b.lines.GetLine(b.caret.Row)
	if !ok {
		return Caret{Row: b.caret.Row, Col: 0}
	}
	col := 0
	graphemes := line.Graphemes()
	for i := 0; i < b.caret.Col && i < len(graphemes); i++ {
		col += graphemeWidth(graphemes[i])
	}
	return Caret{Row: b.caret.Row, Col: col}
}

// ScrollOffset returns the current viewport scroll offset.
func (b *Buffer) ScrollOffset() Caret { return b.scroll }

// Lines returns the current content as plain strings.
func (b *Buffer) Lines() []string {
	ls := b.lines.IterLines()
	out := make([]string, len(ls))
	for i, l := range ls {
		out[i] = l.Content()
	}
	return out
}

// SelectionRanges returns a copy of the per-row selection ranges.
func (b *Buffer) SelectionRanges() map[int]SelectionRange {
	out := make(map[int]SelectionRange, len(b.selRanges))
	for k, v := range b.selRanges {
		out[k] = v
	}
	return out
}

func (b *Buffer) invalidateCache() {
	b.renderCacheValid = false
}

func (b *Buffer) lineGraphemeCount(row int) int {
	line, ok := b.lines.GetLine(row)
	if !ok {
		return 0
	}
	return line.GraphemeCount()
}

func (b *Buffer) clampCaretToLine() {
	max := b.lineGraphemeCount(b.caret.Row)
	if b.caret.Col > max {
		b.caret.Col = max
	}
	if b.caret.Col < 0 {
		b.caret.Col = 0
	}
}

func (b *Buffer) adjustScroll() {
	if b.caret.Row < b.scroll.Row {
		b.scroll.Row = b.caret.Row
	} else if b.viewportHeight > 0 && b.caret.Row >= b.scroll.Row+b.viewportHeight {
		b.scroll.Row = b.caret.Row - b.viewportHeight + 1
	}
	screenCol := b.ScreenCaret().Col
	if screenCol < b.scroll.Col {
		b.scroll.Col = screenCol
	} else if b.viewportWidth > 0 && screenCol >= b.scroll.Col+b.viewportWidth {
		b.scroll.Col = screenCol - b.viewportWidth + 1
	}
}

func (b *Buffer) extendSelection(dir Direction, from Caret) {
	if !b.selActive {
		return
	}
	b.lastDir = dir
	row := b.caret.Row
	r, ok := b.selRanges[row]
	if !ok {
		r = SelectionRange{Start: from.Col, End: from.Col}
	}
	if b.caret.Col < r.Start {
		r.Start = b.caret.Col
	}
	if b.caret.Col > r.End {
		r.End = b.caret.Col
	}
	b.selRanges[row] = r
}

// BeginSelection marks the caret's current position as the selection
// anchor and activates selection extension for subsequent movement calls.
func (b *Buffer) BeginSelection() {
	b.selActive = true
	b.selAnchor = b.caret
}

// ClearSelection deactivates selection and discards ranges.
func (b *Buffer) ClearSelection() {
	b.selActive = false
	b.selRanges = make(map[int]SelectionRange)
}

// SelectAll selects every row from (0,0) to the end of the last line.
func (b *Buffer) SelectAll() {
	b.selActive = true
	b.selRanges = make(map[int]SelectionRange)
	for row := 0; row < b.lines.Len(); row++ {
		b.selRanges[row] = SelectionRange{Start: 0, End: b.lineGraphemeCount(row)}
	}
	if b.lines.Len() > 0 {
		b.caret = Caret{Row: b.lines.Len() - 1, Col: b.lineGraphemeCount(b.lines.Len() - 1)}
	}
	b.invalidateCache()
}

func graphemeWidth(cluster string) int {
	w := runeVisualWidth(cluster)
	if w < 1 {
		return 1
	}
	return w
}
