package grid

// Row is a fixed-width slice of Cells. Rows never resize themselves; Grid
// owns width changes so every row in a Grid stays the same length.
type Row struct {
	Cells       []Cell
	IsCanonical bool // false marks a soft-wrapped continuation of the line above
}

// NewRowWithWidth creates a row of width columns, all EmptyCell.
func NewRowWithWidth(width int) Row {
	cells := make([]Cell, width)
	for i := range cells {
		cells[i] = EmptyCell
	}
	return Row{Cells: cells, IsCanonical: true}
}

// Clear resets every cell in the row to EmptyCell.
func (r *Row) Clear() {
	for i := range r.Cells {
		r.Cells[i] = EmptyCell
	}
}

// EnsureWidth grows the row to width columns, padding with EmptyCell.
func (r *Row) EnsureWidth(width int) {
	for len(r.Cells) < width {
		r.Cells = append(r.Cells, EmptyCell)
	}
}

// Truncate shrinks the row to length columns if it is currently longer.
func (r *Row) Truncate(length int) {
	if length < len(r.Cells) {
		r.Cells = r.Cells[:length]
	}
}

// Clone returns a deep copy of the row.
func (r Row) Clone() Row {
	cells := make([]Cell, len(r.Cells))
	copy(cells, r.Cells)
	return Row{Cells: cells, IsCanonical: r.IsCanonical}
}
