package input

import (
	"context"
	"io"
	"os"
	"os/signal"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/term"
)

// bufferCapacity is P: the pre-allocated unconsumed-byte buffer size.
const bufferCapacity = 4096

// readGranularity is R: the chunk size each background read attempts.
const readGranularity = 256

type pasteState int

const (
	pasteInactive pasteState = iota
	pasteAccumulating
)

type chunk struct {
	data []byte
	err  error
}

// Reader is the async stdin reader (C7). Create with New, then call
// NextEvent in a loop; it blocks until an event is available, a resize
// signal arrives, or the context is canceled.
type Reader struct {
	src     io.Reader
	fd      int
	sigwinc chan os.Signal
	chunks  chan chunk

	buf        []byte
	start, end int

	paste    pasteState
	pasteBuf []byte

	log *zap.SugaredLogger
}

// New creates a Reader over src (typically os.Stdin) and fd (typically
// int(os.Stdin.Fd())), used for terminal-size queries on resize.
func New(src io.Reader, fd int) *Reader {
	r := &Reader{
		src:     src,
		fd:      fd,
		sigwinc: make(chan os.Signal, 1),
		chunks:  make(chan chunk, 1),
		buf:     make([]byte, bufferCapacity),
		log:     zap.NewNop().Sugar(),
	}
	notifyWinch(r.sigwinc)
	go r.readLoop()
	return r
}

// SetLogger installs the logger used for diagnostics.
func (r *Reader) SetLogger(log *zap.SugaredLogger) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	r.log = log
}

// Close stops listening for SIGWINCH. The background read goroutine exits
// naturally on the next EOF or error from src.
func (r *Reader) Close() {
	signal.Stop(r.sigwinc)
}

func (r *Reader) readLoop() {
	tmp := make([]byte, readGranularity)
	for {
		n, err := r.src.Read(tmp)
		if n > 0 {
			cp := make([]byte, n)
			copy(cp, tmp[:n])
			r.chunks <- chunk{data: cp}
		}
		if err != nil {
			r.chunks <- chunk{err: err}
			return
		}
	}
}

// NextEvent returns the next decoded input event, blocking as needed. It
// returns io.EOF when stdin is closed.
func (r *Reader) NextEvent(ctx context.Context) (Event, error) {
	for {
		if ev, ok := r.tryParseOne(); ok {
			r.compact()
			return ev, nil
		}

		select {
		case <-ctx.Done():
			return Event{}, ctx.Err()
		case c := <-r.chunks:
			if c.err != nil {
				return Event{}, c.err
			}
			r.append(c.data)
		case <-r.sigwinc:
			w, h, err := queryTerminalSize(r.fd)
			if err != nil {
				r.log.Warnw("input: resize query failed", "err", err)
				continue
			}
			return Event{Kind: EventResize, Width: w, Height: h}, nil
		}
	}
}

func (r *Reader) append(data []byte) {
	if r.end+len(data) > len(r.buf) {
		r.compact()
	}
	if r.end+len(data) > len(r.buf) {
		// Unconsumed region plus new data exceeds capacity: grow rather
		// than drop bytes (pathological burst, e.g. a huge paste).
		grown := make([]byte, r.end+len(data))
		copy(grown, r.buf[:r.end])
		r.buf = grown
	}
	copy(r.buf[r.end:], data)
	r.end += len(data)
}

func (r *Reader) compact() {
	if r.start > len(r.buf)/2 || r.start == r.end {
		copy(r.buf, r.buf[r.start:r.end])
		r.end -= r.start
		r.start = 0
	}
}

// tryParseOne attempts to parse and consume one emittable event from the
// unconsumed buffer region. Bytes absorbed into the paste buffer, or
// recognized-but-not-surfaced sequences (a PasteStart marker), are
// consumed silently and the loop continues without returning to the
// caller's select.
func (r *Reader) tryParseOne() (Event, bool) {
	for {
		r.compact()
		data := r.buf[r.start:r.end]
		if len(data) == 0 {
			return Event{}, false
		}

		if data[0] == 0x1B {
			if len(data) == 1 {
				r.start++
				return Event{Kind: EventKey, Key: Key{Code: KeyEscape}}, true
			}
			rec := parseEscapeSequence(data)
			if !rec.ok {
				return Event{}, false
			}
			r.start += rec.consumed
			if rec.garbage {
				continue
			}
			if rec.isPaste {
				if rec.pasteEnd {
					text := string(r.pasteBuf)
					r.pasteBuf = nil
					r.paste = pasteInactive
					return Event{Kind: EventBracketedPaste, Paste: text}, true
				}
				r.paste = pasteAccumulating
				r.pasteBuf = r.pasteBuf[:0]
				continue
			}
			if r.paste == pasteAccumulating {
				// Non-character events while accumulating are dropped.
				continue
			}
			return rec.event, true
		}

		rn, size := utf8.DecodeRune(data)
		if rn == utf8.RuneError && size <= 1 {
			if len(data) < utf8.UTFMax && r.end-r.start < bufferCapacity {
				return Event{}, false // maybe a truncated multi-byte rune
			}
			size = 1
		}
		r.start += size

		if r.paste == pasteAccumulating {
			r.pasteBuf = append(r.pasteBuf, data[:size]...)
			continue
		}

		key := charKey(rn)
		return Event{Kind: EventKey, Key: key}, true
	}
}

func charKey(rn rune) Key {
	switch rn {
	case '\r', '\n':
		return Key{Code: KeyEnter, Rune: rn}
	case '\t':
		return Key{Code: KeyTab, Rune: rn}
	case 0x7F, 0x08:
		return Key{Code: KeyBackspace, Rune: rn}
	}
	if rn < 0x20 {
		return Key{Code: KeyChar, Rune: rn + 'a' - 1, Mods: ModCtrl}
	}
	return Key{Code: KeyChar, Rune: rn}
}

func queryTerminalSize(fd int) (int, int, error) {
	return term.GetSize(fd)
}
