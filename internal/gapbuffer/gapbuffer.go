// Package gapbuffer holds the editor's logical lines (C4): an ordered,
// zero-copy-sliceable sequence of lines with cached display width and
// grapheme segmentation. Despite the name (kept for continuity with the
// original design), this is not the classic single-array gap-buffer data
// structure — see the package-level note on lineGapBytes for the one place
// that idea survives.
package gapbuffer

import (
	"strings"

	"github.com/rivo/uniseg"
)

// lineGapBytes is the NUL padding appended after every line's content
// before the '\n' separator in AsStr's materialized view. Downstream
// parsers that scan the concatenated view must treat a run of NUL bytes as
// a line-end equivalent, not just '\n' — this is the one surviving trace of
// "gap buffer" in the literal sense.
const lineGapBytes = 4

// Line is a single logical line with cached metadata.
type Line struct {
	content      string
	displayWidth int
	graphemes    []string
}

// Content returns the line's text (no NUL padding, no newline).
func (l Line) Content() string { return l.content }

// DisplayWidth returns the sum of grapheme-cluster display widths.
func (l Line) DisplayWidth() int { return l.displayWidth }

// Graphemes returns the line's grapheme-cluster segments in order.
func (l Line) Graphemes() []string { return l.graphemes }

// GraphemeCount returns the number of grapheme clusters in the line.
func (l Line) GraphemeCount() int { return len(l.graphemes) }

func newLine(content string) Line {
	graphemes := segmentGraphemes(content)
	return Line{
		content:      content,
		displayWidth: uniseg.StringWidth(content),
		graphemes:    graphemes,
	}
}

func segmentGraphemes(s string) []string {
	var out []string
	state := -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		out = append(out, cluster)
	}
	return out
}

// GapBuffer is an ordered sequence of Lines.
type GapBuffer struct {
	lines []Line
}

// New creates an empty GapBuffer.
func New() *GapBuffer {
	return &GapBuffer{}
}

// PushLine appends a new line.
func (g *GapBuffer) PushLine(content string) {
	g.lines = append(g.lines, newLine(content))
}

// Len returns the number of lines.
func (g *GapBuffer) Len() int { return len(g.lines) }

// IsEmpty reports whether the buffer has no lines.
func (g *GapBuffer) IsEmpty() bool { return len(g.lines) == 0 }

// Clear removes all lines.
func (g *GapBuffer) Clear() { g.lines = nil }

// GetLine returns the Line at row and whether it exists.
func (g *GapBuffer) GetLine(row int) (Line, bool) {
	if row < 0 || row >= len(g.lines) {
		return Line{}, false
	}
	return g.lines[row], true
}

// GetLineContent returns the text at row and whether it exists.
func (g *GapBuffer) GetLineContent(row int) (string, bool) {
	l, ok := g.GetLine(row)
	if !ok {
		return "", false
	}
	return l.content, true
}

// GetLineDisplayWidth returns the display width at row and whether it exists.
func (g *GapBuffer) GetLineDisplayWidth(row int) (int, bool) {
	l, ok := g.GetLine(row)
	if !ok {
		return 0, false
	}
	return l.displayWidth, true
}

// IterLines returns a copy of every line, in order.
func (g *GapBuffer) IterLines() []Line {
	out := make([]Line, len(g.lines))
	copy(out, g.lines)
	return out
}

// runeIndexToByteOffset converts a rune-index column into a byte offset
// within s, clamped to [0, len(s)].
func runeIndexToByteOffset(s string, col int) int {
	if col <= 0 {
		return 0
	}
	i := 0
	for byteOff, r := range s {
		if i == col {
			return byteOff
		}
		i++
		_ = r
	}
	return len(s)
}

// InsertCharAt inserts ch at the rune-index col of row's content.
func (g *GapBuffer) InsertCharAt(row, col int, ch rune) bool {
	if row < 0 || row >= len(g.lines) {
		return false
	}
	content := g.lines[row].content
	off := runeIndexToByteOffset(content, col)
	var b strings.Builder
	b.WriteString(content[:off])
	b.WriteRune(ch)
	b.WriteString(content[off:])
	g.lines[row] = newLine(b.String())
	return true
}

// DeleteCharAt deletes the rune at rune-index col of row's content.
func (g *GapBuffer) DeleteCharAt(row, col int) bool {
	if row < 0 || row >= len(g.lines) {
		return false
	}
	runes := []rune(g.lines[row].content)
	if col < 0 || col >= len(runes) {
		return false
	}
	runes = append(runes[:col], runes[col+1:]...)
	g.lines[row] = newLine(string(runes))
	return true
}

// SplitLineAt splits row into two lines at rune-index col: row keeps
// [0, col), a new line holding [col, end) is inserted immediately after.
func (g *GapBuffer) SplitLineAt(row, col int) bool {
	if row < 0 || row >= len(g.lines) {
		return false
	}
	content := g.lines[row].content
	off := runeIndexToByteOffset(content, col)
	head, tail := content[:off], content[off:]

	g.lines[row] = newLine(head)
	rest := make([]Line, 0, len(g.lines)+1)
	rest = append(rest, g.lines[:row+1]...)
	rest = append(rest, newLine(tail))
	rest = append(rest, g.lines[row+1:]...)
	g.lines = rest
	return true
}

// JoinLineWithNext appends row+1's content to row and removes row+1.
func (g *GapBuffer) JoinLineWithNext(row int) bool {
	if row < 0 || row+1 >= len(g.lines) {
		return false
	}
	joined := g.lines[row].content + g.lines[row+1].content
	g.lines[row] = newLine(joined)
	g.lines = append(g.lines[:row+1], g.lines[row+2:]...)
	return true
}

// AsStr returns the concatenated view: every line's content, padded with
// lineGapBytes NUL bytes, joined by '\n'. The NUL run therefore comes before
// each newline, not after it, and the last line has no trailing newline.
func (g *GapBuffer) AsStr() string {
	var b strings.Builder
	pad := strings.Repeat("\x00", lineGapBytes)
	for i, l := range g.lines {
		b.WriteString(l.content)
		b.WriteString(pad)
		if i < len(g.lines)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// FromLines builds a GapBuffer from plain strings, e.g. content a caller
// loaded itself — this package does no file I/O of its own.
func FromLines(lines []string) *GapBuffer {
	g := New()
	for _, l := range lines {
		g.PushLine(l)
	}
	return g
}
