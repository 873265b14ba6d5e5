package grid

import (
	"errors"
	"strings"
)

// ErrOutOfBounds is returned by any Grid operation given a row/col outside
// the current dimensions. Grid never panics on bad coordinates.
var ErrOutOfBounds = errors.New("grid: coordinate out of bounds")

// Region is a row range [Top, Bottom] used by the scroll operations
// (inclusive on both ends, matching DECSTBM's 1-based margins
// converted to 0-based row indices by the caller).
type Region struct {
	Top    int
	Bottom int
}

// Grid is the bounds-checked Cell array (C1). It holds no cursor, no
// style-stack, and no mode state — those belong to the VT Emulator (C2)
// that mutates a Grid through these primitives.
type Grid struct {
	width  int
	height int
	rows   []Row
}

// NewGrid creates a width x height grid, every cell EmptyCell.
func NewGrid(width, height int) *Grid {
	rows := make([]Row, height)
	for i := range rows {
		rows[i] = NewRowWithWidth(width)
	}
	return &Grid{width: width, height: height, rows: rows}
}

// Dimensions returns (width, height).
func (g *Grid) Dimensions() (int, int) { return g.width, g.height }

func (g *Grid) inBounds(row, col int) bool {
	return row >= 0 && row < g.height && col >= 0 && col < g.width
}

// Get returns the cell at (row, col).
func (g *Grid) Get(row, col int) (Cell, error) {
	if !g.inBounds(row, col) {
		return Cell{}, ErrOutOfBounds
	}
	return g.rows[row].Cells[col], nil
}

// Set writes a cell at (row, col).
func (g *Grid) Set(row, col int, cell Cell) error {
	if !g.inBounds(row, col) {
		return ErrOutOfBounds
	}
	g.rows[row].Cells[col] = cell
	return nil
}

// FillRange fills columns [colStart, colEnd) of row with cell. The range is
// clamped to the row's width; out-of-range rows return an error.
func (g *Grid) FillRange(row, colStart, colEnd int, cell Cell) error {
	if row < 0 || row >= g.height {
		return ErrOutOfBounds
	}
	if colStart < 0 {
		colStart = 0
	}
	if colEnd > g.width {
		colEnd = g.width
	}
	for c := colStart; c < colEnd; c++ {
		g.rows[row].Cells[c] = cell
	}
	return nil
}

// CopyWithinLine copies cells [srcStart, srcEnd) of row to destCol,
// clamped so the copy never runs past the row's width.
func (g *Grid) CopyWithinLine(row, srcStart, srcEnd, destCol int) error {
	if row < 0 || row >= g.height {
		return ErrOutOfBounds
	}
	if srcStart < 0 {
		srcStart = 0
	}
	if srcEnd > g.width {
		srcEnd = g.width
	}
	if srcStart >= srcEnd {
		return nil
	}
	n := srcEnd - srcStart
	if destCol+n > g.width {
		n = g.width - destCol
	}
	if n <= 0 {
		return nil
	}
	cells := g.rows[row].Cells
	src := make([]Cell, n)
	copy(src, cells[srcStart:srcStart+n])
	copy(cells[destCol:destCol+n], src)
	return nil
}

// InsertBlanksShiftRight copies [col, W-n) to [col+n, W), overwrites
// [col, col+n) with Spacer. Cells pushed past W-1 are lost.
func (g *Grid) InsertBlanksShiftRight(row, col, n int) error {
	if row < 0 || row >= g.height || col < 0 || col > g.width {
		return ErrOutOfBounds
	}
	if n <= 0 {
		return nil
	}
	if n > g.width-col {
		n = g.width - col
	}
	cells := g.rows[row].Cells
	srcEnd := g.width - n
	if srcEnd > col {
		copy(cells[col+n:g.width], cells[col:srcEnd])
	}
	for c := col; c < col+n && c < g.width; c++ {
		cells[c] = NewSpacerCell(DefaultStyle)
	}
	return nil
}

// DeleteShiftLeft copies [col+n, W) over [col, W-n); fills [W-n, W) with
// Spacer.
func (g *Grid) DeleteShiftLeft(row, col, n int) error {
	if row < 0 || row >= g.height || col < 0 || col > g.width {
		return ErrOutOfBounds
	}
	if n <= 0 {
		return nil
	}
	if n > g.width-col {
		n = g.width - col
	}
	cells := g.rows[row].Cells
	if col+n < g.width {
		copy(cells[col:g.width-n], cells[col+n:g.width])
	}
	for c := g.width - n; c < g.width; c++ {
		cells[c] = NewSpacerCell(DefaultStyle)
	}
	return nil
}

// EraseInPlace writes Spacer over [col, col+n) with no shifting.
func (g *Grid) EraseInPlace(row, col, n int) error {
	if row < 0 || row >= g.height || col < 0 {
		return ErrOutOfBounds
	}
	end := col + n
	if end > g.width {
		end = g.width
	}
	for c := col; c < end; c++ {
		g.rows[row].Cells[c] = NewSpacerCell(DefaultStyle)
	}
	return nil
}

// ScrollRegionUp scrolls rows [region.Top, region.Bottom] up by n: rows
// [top+n, bottom] overwrite [top, bottom-n]; the trailing n rows blank with
// bgStyle.
func (g *Grid) ScrollRegionUp(region Region, n int, bgStyle Style) error {
	top, bottom := region.Top, region.Bottom
	if top < 0 || bottom >= g.height || top > bottom {
		return ErrOutOfBounds
	}
	if n <= 0 {
		return nil
	}
	span := bottom - top + 1
	if n > span {
		n = span
	}
	for y := top; y <= bottom-n; y++ {
		g.rows[y] = g.rows[y+n]
	}
	blank := blankRow(g.width, bgStyle)
	for y := bottom - n + 1; y <= bottom; y++ {
		g.rows[y] = blank.Clone()
	}
	return nil
}

// ScrollRegionDown is the symmetric inverse of ScrollRegionUp.
func (g *Grid) ScrollRegionDown(region Region, n int, bgStyle Style) error {
	top, bottom := region.Top, region.Bottom
	if top < 0 || bottom >= g.height || top > bottom {
		return ErrOutOfBounds
	}
	if n <= 0 {
		return nil
	}
	span := bottom - top + 1
	if n > span {
		n = span
	}
	for y := bottom; y >= top+n; y-- {
		g.rows[y] = g.rows[y-n]
	}
	blank := blankRow(g.width, bgStyle)
	for y := top; y < top+n; y++ {
		g.rows[y] = blank.Clone()
	}
	return nil
}

// Resize changes the grid's dimensions in place, preserving existing
// content up to the new bounds and padding/truncating rows and columns.
func (g *Grid) Resize(width, height int) {
	for i := range g.rows {
		g.rows[i].EnsureWidth(width)
		g.rows[i].Truncate(width)
	}
	if height > len(g.rows) {
		for len(g.rows) < height {
			g.rows = append(g.rows, NewRowWithWidth(width))
		}
	} else if height < len(g.rows) {
		g.rows = g.rows[:height]
	}
	g.width = width
	g.height = height
}

// ClearAll resets every cell in the grid to EmptyCell.
func (g *Grid) ClearAll() {
	for i := range g.rows {
		g.rows[i].Clear()
	}
}

// RowText renders a single row's visible text. Trailing Empty cells are
// omitted, so an unwritten or blanked row renders as "".
func (g *Grid) RowText(row int) string {
	if row < 0 || row >= g.height {
		return ""
	}
	cells := g.rows[row].Cells
	end := len(cells)
	for end > 0 && cells[end-1].Kind == CellEmpty {
		end--
	}
	var b strings.Builder
	renderRow(cells[:end], &b)
	return b.String()
}

// Render returns every row's text, newline-joined, with trailing blank
// rows/whitespace trimmed for display convenience.
func (g *Grid) Render() string {
	var b strings.Builder
	for i := range g.rows {
		renderRow(g.rows[i].Cells, &b)
		if i < len(g.rows)-1 {
			b.WriteByte('\n')
		}
	}
	return strings.TrimRight(b.String(), " \t\n")
}

func blankRow(width int, style Style) Row {
	cells := make([]Cell, width)
	blank := Cell{Kind: CellEmpty, Char: ' ', Width: 1, Style: style}
	for i := range cells {
		cells[i] = blank
	}
	return Row{Cells: cells, IsCanonical: true}
}
