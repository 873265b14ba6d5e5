package readline

import (
	"context"
	"io"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/r3bl-org/tuicore/internal/input"
)

// EventKind tags which field of Event is populated.
type EventKind int

const (
	EventLine EventKind = iota
	EventInterrupted
	EventEof
	EventResized
)

// Event is returned by ReadLine.
type Event struct {
	Kind EventKind
	Line string
}

// Readline is the async line editor. The monitor goroutine is the sole
// consumer of the control channel (single-threaded, per the line-state
// control channel's serialization requirement); ReadLine is the sole
// consumer of keys and must be called from one goroutine at a time.
type Readline struct {
	out     io.Writer
	keys    <-chan input.Event
	control chan Control

	mu              sync.Mutex
	paused          bool
	pauseBuf        [][]byte
	spinnerActive   bool
	spinnerShutdown chan<- struct{}

	lineBuf []rune
	cursor  int

	log   *zap.SugaredLogger
	group errgroup.Group
}

// New creates a Readline reading decoded key events from keys and writing
// concurrent-writer output to out. The monitor goroutine runs under an
// errgroup so Close can wait for it to actually drain rather than just
// signaling it to stop.
func New(keys <-chan input.Event, out io.Writer) *Readline {
	r := &Readline{
		out:     out,
		keys:    keys,
		control: make(chan Control, 64),
		log:     zap.NewNop().Sugar(),
	}
	r.group.Go(func() error {
		r.monitorControl()
		return nil
	})
	return r
}

// SetLogger installs the logger used for diagnostics.
func (r *Readline) SetLogger(log *zap.SugaredLogger) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	r.log = log
}

// Control returns the send side of the control channel concurrent writers
// use to interleave output, pause/resume, and announce spinner ownership.
func (r *Readline) Control() chan<- Control { return r.control }

// Close stops the monitor goroutine and waits for it to finish draining the
// control channel. Close closes that channel, so a later send on Control()
// panics; callers must stop writing before calling Close.
func (r *Readline) Close() {
	close(r.control)
	_ = r.group.Wait()
}

func (r *Readline) monitorControl() {
	for c := range r.control {
		switch c.Kind {
		case CtrlLine:
			r.mu.Lock()
			if r.paused {
				r.pauseBuf = append(r.pauseBuf, c.Line)
				r.mu.Unlock()
				continue
			}
			r.mu.Unlock()
			if _, err := r.out.Write(c.Line); err != nil {
				r.log.Warnw("readline: writer output failed", "err", err)
			}

		case CtrlFlush:
			r.mu.Lock()
			pending := r.pauseBuf
			paused := r.paused
			if !paused {
				r.pauseBuf = nil
			}
			r.mu.Unlock()
			if !paused {
				r.writeAll(pending)
			}

		case CtrlPause:
			r.mu.Lock()
			r.paused = true
			r.mu.Unlock()

		case CtrlResume:
			r.mu.Lock()
			pending := r.pauseBuf
			r.pauseBuf = nil
			r.paused = false
			r.mu.Unlock()
			r.writeAll(pending)

		case CtrlSpinnerActive:
			r.mu.Lock()
			r.spinnerActive = true
			r.spinnerShutdown = c.SpinnerShutdown
			r.mu.Unlock()

		case CtrlSpinnerInactive:
			r.mu.Lock()
			r.spinnerActive = false
			r.spinnerShutdown = nil
			r.mu.Unlock()
		}
	}
}

func (r *Readline) writeAll(lines [][]byte) {
	for _, b := range lines {
		if _, err := r.out.Write(b); err != nil {
			r.log.Warnw("readline: writer output failed", "err", err)
			return
		}
	}
}

// ReadLine blocks until a full line, an interrupt, EOF, or a resize is
// observed, or ctx is canceled.
func (r *Readline) ReadLine(ctx context.Context) (Event, error) {
	for {
		select {
		case <-ctx.Done():
			return Event{}, ctx.Err()
		case ev, ok := <-r.keys:
			if !ok {
				return Event{Kind: EventEof}, nil
			}
			switch ev.Kind {
			case input.EventResize:
				return Event{Kind: EventResized}, nil
			case input.EventKey:
				if out, emit := r.handleKey(ev.Key); emit {
					return out, nil
				}
			}
		}
	}
}

func (r *Readline) handleKey(k input.Key) (Event, bool) {
	r.mu.Lock()
	spinnerActive := r.spinnerActive
	spinnerShutdown := r.spinnerShutdown
	paused := r.paused
	r.mu.Unlock()

	isCtrlC := k.Code == input.KeyChar && k.Mods&input.ModCtrl != 0 && k.Rune == 'c'
	isCtrlD := k.Code == input.KeyChar && k.Mods&input.ModCtrl != 0 && k.Rune == 'd'

	if isCtrlC || isCtrlD {
		if spinnerActive && spinnerShutdown != nil {
			select {
			case spinnerShutdown <- struct{}{}:
			default:
			}
			return Event{}, false
		}
		if isCtrlC {
			return Event{Kind: EventInterrupted}, true
		}
		if len(r.lineBuf) == 0 {
			return Event{Kind: EventEof}, true
		}
		return Event{}, false
	}

	// Paused: user input is rejected except Ctrl-C/Ctrl-D, already handled
	// above.
	if paused {
		return Event{}, false
	}

	switch k.Code {
	case input.KeyEnter:
		line := string(r.lineBuf)
		r.lineBuf = r.lineBuf[:0]
		r.cursor = 0
		return Event{Kind: EventLine, Line: line}, true

	case input.KeyBackspace:
		if r.cursor > 0 {
			r.lineBuf = append(r.lineBuf[:r.cursor-1], r.lineBuf[r.cursor:]...)
			r.cursor--
		}
		return Event{}, false

	case input.KeyLeft:
		if r.cursor > 0 {
			r.cursor--
		}
		return Event{}, false

	case input.KeyRight:
		if r.cursor < len(r.lineBuf) {
			r.cursor++
		}
		return Event{}, false

	case input.KeyChar:
		tail := append([]rune{}, r.lineBuf[r.cursor:]...)
		r.lineBuf = append(r.lineBuf[:r.cursor], append([]rune{k.Rune}, tail...)...)
		r.cursor++
		return Event{}, false
	}

	return Event{}, false
}

// CurrentLine returns the in-progress line buffer (for redraw by a host
// renderer).
func (r *Readline) CurrentLine() (string, int) {
	return string(r.lineBuf), r.cursor
}
