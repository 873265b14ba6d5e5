package editor

import "github.com/rivo/uniseg"

func runeVisualWidth(s string) int {
	return uniseg.StringWidth(s)
}

func (b *Buffer) move(dir Direction, selecting bool, fn func()) {
	from := b.caret
	if selecting && !b.selActive {
		b.BeginSelection()
	}
	fn()
	b.clampCaretToLine()
	if selecting {
		b.extendSelection(dir, from)
	} else {
		b.selActive = false
	}
	b.adjustScroll()
	b.invalidateCache()
}

// MoveRight moves one grapheme right. At end-of-line it wraps to column 0
// of the next line, if any.
func (b *Buffer) MoveRight(selecting bool) {
	b.move(DirRight, selecting, func() {
		max := b.lineGraphemeCount(b.caret.Row)
		if b.caret.Col < max {
			b.caret.Col++
			return
		}
		if b.caret.Row+1 < b.lines.Len() {
			b.caret.Row++
			b.caret.Col = 0
		}
	})
}

// MoveLeft moves one grapheme left. At column 0 it wraps to end-of-line of
// the previous line, if any.
func (b *Buffer) MoveLeft(selecting bool) {
	b.move(DirLeft, selecting, func() {
		if b.caret.Col > 0 {
			b.caret.Col--
			return
		}
		if b.caret.Row > 0 {
			b.caret.Row--
			b.caret.Col = b.lineGraphemeCount(b.caret.Row)
		}
	})
}

// MoveUp moves one row up. At the top row, the column resets to 0.
func (b *Buffer) MoveUp(selecting bool) {
	b.move(DirUp, selecting, func() {
		if b.caret.Row == 0 {
			b.caret.Col = 0
			return
		}
		b.caret.Row--
	})
}

// MoveDown moves one row down. Past the last line, the column moves to
// end-of-line instead.
func (b *Buffer) MoveDown(selecting bool) {
	b.move(DirDown, selecting, func() {
		if b.caret.Row+1 >= b.lines.Len() {
			b.caret.Col = b.lineGraphemeCount(b.caret.Row)
			return
		}
		b.caret.Row++
	})
}

// PageUp moves up by the viewport height (or to row 0).
func (b *Buffer) PageUp(selecting bool) {
	b.move(DirUp, selecting, func() {
		n := b.viewportHeight
		if n <= 0 {
			n = 1
		}
		b.caret.Row -= n
		if b.caret.Row < 0 {
			b.caret.Row = 0
		}
	})
}

// PageDown moves down by the viewport height (or to the last row).
func (b *Buffer) PageDown(selecting bool) {
	b.move(DirDown, selecting, func() {
		n := b.viewportHeight
		if n <= 0 {
			n = 1
		}
		b.caret.Row += n
		if last := b.lines.Len() - 1; b.caret.Row > last {
			b.caret.Row = last
		}
	})
}

// Home moves the caret to column 0 of the current line.
func (b *Buffer) Home(selecting bool) {
	b.move(DirLeft, selecting, func() {
		b.caret.Col = 0
	})
}

// End moves the caret to the end of the current line.
func (b *Buffer) End(selecting bool) {
	b.move(DirRight, selecting, func() {
		b.caret.Col = b.lineGraphemeCount(b.caret.Row)
	})
}
