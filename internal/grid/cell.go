// Package grid implements the bounds-checked Cell array (C1): pure storage
// and shift/scroll primitives with no cursor, mode, or style-stack state of
// its own.
package grid

import (
	"strings"

	"github.com/rivo/uniseg"

	"github.com/r3bl-org/tuicore/internal/vt"
)

// CellKind tags the Cell union.
type CellKind uint8

const (
	// CellEmpty is an unwritten cell (default grid fill).
	CellEmpty CellKind = iota
	// CellSpacer is a blank written by the insert/delete/erase-character
	// operations; it renders as a space.
	CellSpacer
	// CellPlainText holds a single styled rune.
	CellPlainText
	// CellAnsiText holds a pre-rendered ANSI byte run (e.g. passthrough content).
	CellAnsiText
	// CellVoid marks a cell explicitly punched out (never rendered, never matched).
	CellVoid
)

// Style is the value-type visual style attached to a cell.
type Style struct {
	FG    vt.Color
	BG    vt.Color
	Attrs vt.Attr
}

// DefaultStyle is the zero style: default colors, no attributes.
var DefaultStyle = Style{FG: vt.DefaultColor, BG: vt.DefaultColor}

// Equal reports whether two styles render identically.
func (s Style) Equal(o Style) bool {
	return s.FG == o.FG && s.BG == o.BG && s.Attrs == o.Attrs
}

// Cell is the tagged union stored in every Grid slot.
type Cell struct {
	Kind  CellKind
	Char  rune   // valid for CellPlainText
	Width int    // display width in columns; 0 for Spacer/Void
	Bytes []byte // valid for CellAnsiText
	Style Style
}

// EmptyCell is the canonical empty cell (single-column blank).
var EmptyCell = Cell{Kind: CellEmpty, Char: ' ', Width: 1, Style: DefaultStyle}

// VoidCell marks the trailing half of a wide character's shadow, or any
// position that must never be read back as content.
var VoidCell = Cell{Kind: CellVoid}

// NewPlainTextCell builds a PlainText cell, measuring its grapheme display
// width with uniseg rather than assuming 1 column per rune.
func NewPlainTextCell(r rune, style Style) Cell {
	w := uniseg.StringWidth(string(r))
	if w < 1 {
		w = 1
	}
	return Cell{Kind: CellPlainText, Char: r, Width: w, Style: style}
}

// NewSpacerCell builds the blank cell that InsertBlanksShiftRight,
// DeleteShiftLeft and EraseInPlace write.
func NewSpacerCell(style Style) Cell {
	return Cell{Kind: CellSpacer, Width: 0, Style: style}
}

// NewAnsiTextCell builds a cell carrying a raw ANSI byte run.
func NewAnsiTextCell(b []byte, style Style) Cell {
	return Cell{Kind: CellAnsiText, Bytes: b, Width: 1, Style: style}
}

// Rune returns the displayable rune for the cell (space for anything that
// isn't PlainText/AnsiText).
func (c Cell) Rune() rune {
	switch c.Kind {
	case CellPlainText:
		return c.Char
	case CellAnsiText:
		if len(c.Bytes) > 0 {
			return rune(c.Bytes[0])
		}
		return ' '
	default:
		return ' '
	}
}

// measureWidth returns the grapheme-aware display width of a single
// character, clamped to at least 1 for any printable rune.
func measureWidth(r rune) int {
	w := uniseg.StringWidth(string(r))
	if w < 1 {
		return 1
	}
	return w
}

// renderRow writes a row's visible text (PlainText/AnsiText runes; Empty and
// Spacer as space; Void contributes nothing) into b.
func renderRow(row []Cell, b *strings.Builder) {
	for _, c := range row {
		switch c.Kind {
		case CellVoid:
			continue
		case CellAnsiText:
			b.Write(c.Bytes)
		default:
			b.WriteRune(c.Rune())
		}
	}
}
