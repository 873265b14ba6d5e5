package input

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/creack/pty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/term"
)

// pipeSrc is an io.Reader fed manually from a test via a channel, so we
// control exactly when bytes "arrive" without a real stdin.
type pipeSrc struct {
	data    chan []byte
	pending []byte // rest of a pushed slice that did not fit the last Read
	eof     bool
}

func newPipeSrc() *pipeSrc { return &pipeSrc{data: make(chan []byte, 16)} }

func (p *pipeSrc) push(b []byte) { p.data <- b }

func (p *pipeSrc) Read(buf []byte) (int, error) {
	if len(p.pending) == 0 {
		b, ok := <-p.data
		if !ok {
			return 0, io.EOF
		}
		p.pending = b
	}
	n := copy(buf, p.pending)
	p.pending = p.pending[n:]
	return n, nil
}

func newTestReader(src *pipeSrc) *Reader {
	return New(src, 0)
}

func next(t *testing.T, r *Reader) Event {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	ev, err := r.NextEvent(ctx)
	require.NoError(t, err)
	return ev
}

func TestPlainCharEvent(t *testing.T) {
	src := newPipeSrc()
	r := newTestReader(src)
	src.push([]byte("a"))
	ev := next(t, r)
	assert.Equal(t, EventKey, ev.Kind)
	assert.Equal(t, KeyChar, ev.Key.Code)
	assert.Equal(t, 'a', ev.Key.Rune)
}

func TestLoneEscIsZeroLatency(t *testing.T) {
	src := newPipeSrc()
	r := newTestReader(src)
	src.push([]byte{0x1B})
	ev := next(t, r)
	assert.Equal(t, KeyEscape, ev.Key.Code)
}

func TestCursorKeyWithModifier(t *testing.T) {
	src := newPipeSrc()
	r := newTestReader(src)
	src.push([]byte("\x1b[1;5C")) // ctrl+right
	ev := next(t, r)
	assert.Equal(t, KeyRight, ev.Key.Code)
	assert.Equal(t, ModCtrl, ev.Key.Mods)
}

func TestSGRMouseClick(t *testing.T) {
	src := newPipeSrc()
	r := newTestReader(src)
	src.push([]byte("\x1b[<0;10;5M"))
	ev := next(t, r)
	require.Equal(t, EventMouse, ev.Kind)
	assert.Equal(t, MouseLeft, ev.Mouse.Button)
	assert.True(t, ev.Mouse.Pressed)
	assert.Equal(t, 10, ev.Mouse.Col)
	assert.Equal(t, 5, ev.Mouse.Row)
}

func TestFocusInOut(t *testing.T) {
	src := newPipeSrc()
	r := newTestReader(src)
	src.push([]byte("\x1b[I\x1b[O"))
	assert.Equal(t, EventFocusIn, next(t, r).Kind)
	assert.Equal(t, EventFocusOut, next(t, r).Kind)
}

func TestBracketedPasteAccumulatesAndEmitsOnEnd(t *testing.T) {
	src := newPipeSrc()
	r := newTestReader(src)
	src.push([]byte("\x1b[200~hello\x1b[201~"))
	ev := next(t, r)
	require.Equal(t, EventBracketedPaste, ev.Kind)
	assert.Equal(t, "hello", ev.Paste)
}

func TestOrphanedPasteEndEmitsEmptyPaste(t *testing.T) {
	src := newPipeSrc()
	r := newTestReader(src)
	src.push([]byte("\x1b[201~"))
	ev := next(t, r)
	require.Equal(t, EventBracketedPaste, ev.Kind)
	assert.Equal(t, "", ev.Paste)
}

func TestNonCharEventDroppedWhileAccumulatingPaste(t *testing.T) {
	src := newPipeSrc()
	r := newTestReader(src)
	src.push([]byte("\x1b[200~ab\x1b[5~cd\x1b[201~"))
	ev := next(t, r)
	require.Equal(t, EventBracketedPaste, ev.Kind)
	assert.Equal(t, "abcd", ev.Paste)
}

func TestEOFReturnsIOEOF(t *testing.T) {
	src := newPipeSrc()
	r := newTestReader(src)
	close(src.data)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := r.NextEvent(ctx)
	assert.ErrorIs(t, err, io.EOF)
}

// TestReaderOverRealPTY drives the Reader from an actual kernel pseudo
// terminal instead of the in-process pipeSrc, so the chunked-read path in
// readLoop is exercised against the same fd semantics a real stdin would
// give (short reads, byte-at-a-time scheduling).
func TestReaderOverRealPTY(t *testing.T) {
	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skipf("pty unavailable in this environment: %v", err)
	}
	defer ptmx.Close()
	defer tty.Close()
	// Raw mode disables echo/canonical buffering so tty.Write reaches
	// ptmx.Read unmodified, the same guarantee a real terminal app relies on.
	if _, err := term.MakeRaw(int(tty.Fd())); err != nil {
		t.Skipf("cannot set pty raw mode in this environment: %v", err)
	}

	r := New(ptmx, int(ptmx.Fd()))
	defer r.Close()

	_, err = tty.Write([]byte("q"))
	require.NoError(t, err)

	ev := next(t, r)
	assert.Equal(t, EventKey, ev.Kind)
	assert.Equal(t, KeyChar, ev.Key.Code)
	assert.Equal(t, 'q', ev.Key.Rune)
}

// TestReaderOverRealPTYDecodesEscapeSequence confirms a multi-byte CSI
// sequence written through a real pty's slave side round-trips to the same
// decoded event the synthetic pipeSrc tests assert on.
func TestReaderOverRealPTYDecodesEscapeSequence(t *testing.T) {
	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skipf("pty unavailable in this environment: %v", err)
	}
	defer ptmx.Close()
	defer tty.Close()
	if _, err := term.MakeRaw(int(tty.Fd())); err != nil {
		t.Skipf("cannot set pty raw mode in this environment: %v", err)
	}

	r := New(ptmx, int(ptmx.Fd()))
	defer r.Close()

	_, err = tty.Write([]byte("\x1b[1;5C")) // ctrl+right
	require.NoError(t, err)

	ev := next(t, r)
	assert.Equal(t, KeyRight, ev.Key.Code)
	assert.Equal(t, ModCtrl, ev.Key.Mods)
}

func TestBufferCompactsAfterHalfCapacityConsumed(t *testing.T) {
	src := newPipeSrc()
	r := newTestReader(src)
	big := make([]byte, bufferCapacity/2+10)
	for i := range big {
		big[i] = 'x'
	}
	src.push(big)
	for i := 0; i < len(big); i++ {
		next(t, r)
	}
	assert.Equal(t, 0, r.start)
}
