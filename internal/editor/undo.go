package editor

import "github.com/r3bl-org/tuicore/internal/gapbuffer"

// snapshotNow captures the buffer's current lines/caret/scroll/selection.
func (b *Buffer) snapshotNow() snapshot {
	sel := make(map[int]SelectionRange, len(b.selRanges))
	for k, v := range b.selRanges {
		sel[k] = v
	}
	return snapshot{
		lines:  b.Lines(),
		caret:  b.caret,
		scroll: b.scroll,
		sel:    sel,
	}
}

func (b *Buffer) restore(s snapshot) {
	b.lines = gapbuffer.FromLines(s.lines)
	b.caret = s.caret
	b.scroll = s.scroll
	b.selRanges = s.sel
	b.invalidateCache()
}

// Add pushes a snapshot of the current content onto the undo ring and
// clears the redo ring (a fresh edit invalidates forward history).
func (b *Buffer) Add() {
	b.undoStack = append(b.undoStack, b.snapshotNow())
	b.redoStack = nil
}

// Undo pops the most recent snapshot and restores it. Returns false if
// there was nothing to undo.
func (b *Buffer) Undo() bool {
	if len(b.undoStack) == 0 {
		return false
	}
	n := len(b.undoStack) - 1
	prev := b.undoStack[n]
	b.undoStack = b.undoStack[:n]
	b.redoStack = append(b.redoStack, b.snapshotNow())
	b.restore(prev)
	return true
}

// Redo reverses the most recent Undo. Returns false if there was nothing
// to redo.
func (b *Buffer) Redo() bool {
	if len(b.redoStack) == 0 {
		return false
	}
	n := len(b.redoStack) - 1
	next := b.redoStack[n]
	b.redoStack = b.redoStack[:n]
	b.undoStack = append(b.undoStack, b.snapshotNow())
	b.restore(next)
	return true
}

// MutationHandle is returned by AcquireMutation; it re-establishes the
// buffer's derived-state invariants when Release is called. No destructor
// runs this automatically — the caller must call Release explicitly.
type MutationHandle struct {
	buf       *Buffer
	validates bool
}

// AcquireMutation returns a handle for a single logical mutation. validate
// controls whether Release re-clamps the caret and invalidates caches —
// pass false for bulk operations (e.g. a viewport resize) that manage
// invariants themselves; Release on such a handle does nothing.
func (b *Buffer) AcquireMutation(validate bool) *MutationHandle {
	return &MutationHandle{buf: b, validates: validate}
}

// Release re-establishes invariants (caret clamped, caches invalidated) if
// the handle was acquired with validate=true.
func (h *MutationHandle) Release() {
	if !h.validates {
		return
	}
	h.buf.clampCaretToLine()
	h.buf.adjustScroll()
	h.buf.invalidateCache()
}
