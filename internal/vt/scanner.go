package vt

import "unicode/utf8"

const (
	maxIntermediates = 2
	maxOSCBytes      = 1024
	maxOSCFields     = 16
)

// Scanner walks a raw byte stream and drives an Actions implementation,
// tracking ECMA-48/ANSI X3.64 escape-sequence state across calls to Feed.
// Intermediates, fields and the OSC scratch buffer are reused in place
// rather than reallocated per sequence; finishOSC allocates only the field
// slice it passes to Actions.OSC.
type Scanner struct {
	mode mode

	intermediates []byte

	fields     *Fields
	field      uint16
	haveField  bool
	inSubfield bool

	osc       []byte
	oscBounds []int

	dropped bool // current sequence exceeded a capacity limit

	pendingST bool // DCS passthrough saw ESC, awaiting '\' to confirm ST

	trailing    [utf8.UTFMax]byte // bytes of an incomplete UTF-8 rune, held across calls
	trailingLen int
}

// NewScanner returns a Scanner starting in the ground state.
func NewScanner() *Scanner {
	return &Scanner{
		fields:        newFields(),
		intermediates: make([]byte, 0, maxIntermediates),
		osc:           make([]byte, 0, maxOSCBytes),
		oscBounds:     make([]int, 0, maxOSCFields),
	}
}

// Mode reports the scanner's current state, mainly for tests and debugging.
func (s *Scanner) Mode() mode { return s.mode }

// Feed advances the state machine over bytes, invoking actions as control
// functions and characters are recognized. A multi-byte UTF-8 rune split
// across two Feed calls is reassembled transparently.
func (s *Scanner) Feed(actions Actions, bytes []byte) {
	i := 0
	if s.trailingLen > 0 {
		n := s.resumeRune(actions, bytes)
		i += n
		if i >= len(bytes) {
			return
		}
	}

	for i < len(bytes) {
		switch s.mode {
		case modeGround:
			i += s.stepGround(actions, bytes[i:])
		default:
			s.dispatchByte(actions, bytes[i])
			i++
		}
	}
}

// dispatchByte routes a single byte to the handler for the scanner's
// current (non-ground) mode.
func (s *Scanner) dispatchByte(actions Actions, b byte) {
	switch s.mode {
	case modeEscape:
		s.stepEscape(actions, b)
	case modeEscapeIntermediate:
		s.stepEscapeIntermediate(actions, b)
	case modeCSIEntry:
		s.stepCSIEntry(actions, b)
	case modeCSIParam:
		s.stepCSIParam(actions, b)
	case modeCSIIntermediate:
		s.stepCSIIntermediate(actions, b)
	case modeCSIIgnore:
		s.stepCSIIgnore(actions, b)
	case modeOSCString:
		s.stepOSCString(actions, b)
	case modeDCSEntry:
		s.stepDCSEntry(actions, b)
	case modeDCSParam:
		s.stepDCSParam(actions, b)
	case modeDCSIntermediate:
		s.stepDCSIntermediate(actions, b)
	case modeDCSPassthrough:
		s.stepDCSPassthrough(actions, b)
	case modeDCSIgnore:
		s.stepDCSIgnore(actions, b)
	case modeSOSPMApcString:
		s.stepSOSPMApcString(b)
	}
}

// stepGround consumes a run of ground-state bytes at once: it only returns
// early when an escape introducer or the start of a multi-byte rune is
// found, so long printable runs cost one pass rather than one switch per
// byte.
func (s *Scanner) stepGround(actions Actions, bytes []byte) int {
	for i, b := range bytes {
		switch {
		case b == 0x1B:
			s.enter(modeEscape)
			return i + 1
		case b < 0x20:
			actions.Control(b)
		case b >= 0x20 && b < 0x7F:
			actions.Char(rune(b))
		case b == 0x7F:
			// DEL: ignored
		case b == 0x90: // DCS (C1)
			s.enter(modeDCSEntry)
			return i + 1
		case b == 0x9B: // CSI (C1)
			s.enter(modeCSIEntry)
			return i + 1
		case b == 0x9D: // OSC (C1)
			s.enter(modeOSCString)
			return i + 1
		case b >= 0xC0:
			return i + s.startRune(actions, bytes[i:])
		case b >= 0x80:
			// Stray C1/continuation byte with no lead byte.
			actions.Char(utf8.RuneError)
		}
	}
	return len(bytes)
}

func (s *Scanner) stepEscape(actions Actions, b byte) {
	switch {
	case b < 0x20:
		actions.Control(b)
	case b >= 0x20 && b <= 0x2F:
		s.collectIntermediate(b)
		s.mode = modeEscapeIntermediate
	case b == '[':
		s.mode = modeCSIEntry
	case b == ']':
		s.mode = modeOSCString
	case b == 'P':
		s.mode = modeDCSEntry
	case b == 'X' || b == '^' || b == '_':
		s.mode = modeSOSPMApcString
	case b >= 0x30 && b <= 0x7E:
		actions.ESC(s.intermediates, s.dropped, b)
		s.mode = modeGround
	}
	// 0x7F (DEL) is ignored.
}

func (s *Scanner) stepEscapeIntermediate(actions Actions, b byte) {
	switch {
	case b < 0x20:
		actions.Control(b)
	case b >= 0x20 && b <= 0x2F:
		s.collectIntermediate(b)
	case b >= 0x30 && b <= 0x7E:
		actions.ESC(s.intermediates, s.dropped, b)
		s.mode = modeGround
	}
}

func (s *Scanner) stepCSIEntry(actions Actions, b byte) {
	switch {
	case b < 0x20:
		actions.Control(b)
	case b >= 0x20 && b <= 0x2F:
		s.collectIntermediate(b)
		s.mode = modeCSIIntermediate
	case b >= '0' && b <= '9':
		s.collectDigit(b)
		s.mode = modeCSIParam
	case b == ':':
		s.collectColon()
		s.mode = modeCSIParam
	case b == ';':
		s.collectSemicolon()
		s.mode = modeCSIParam
	case b >= 0x3C && b <= 0x3F:
		s.collectIntermediate(b)
		s.mode = modeCSIParam
	case b >= 0x40 && b <= 0x7E:
		s.finishCSI(actions, b)
	}
}

func (s *Scanner) stepCSIParam(actions Actions, b byte) {
	switch {
	case b < 0x20:
		actions.Control(b)
	case b >= 0x20 && b <= 0x2F:
		s.collectIntermediate(b)
		s.mode = modeCSIIntermediate
	case b >= '0' && b <= '9':
		s.collectDigit(b)
	case b == ':':
		s.collectColon()
	case b == ';':
		s.collectSemicolon()
	case b >= 0x3C && b <= 0x3F:
		s.mode = modeCSIIgnore
	case b >= 0x40 && b <= 0x7E:
		s.finishCSI(actions, b)
	}
}

func (s *Scanner) stepCSIIntermediate(actions Actions, b byte) {
	switch {
	case b < 0x20:
		actions.Control(b)
	case b >= 0x20 && b <= 0x2F:
		s.collectIntermediate(b)
	case b >= 0x30 && b <= 0x3F:
		s.mode = modeCSIIgnore
	case b >= 0x40 && b <= 0x7E:
		s.finishCSI(actions, b)
	}
}

func (s *Scanner) stepCSIIgnore(actions Actions, b byte) {
	switch {
	case b < 0x20:
		actions.Control(b)
	case b >= 0x40 && b <= 0x7E:
		s.mode = modeGround
	}
	// 0x20-0x3F and 0x7F are swallowed silently.
}

func (s *Scanner) stepOSCString(actions Actions, b byte) {
	switch {
	case b == 0x07:
		s.finishOSC(actions, true)
		s.mode = modeGround
	case b == '\\' && len(s.osc) > 0 && s.osc[len(s.osc)-1] == 0x1B:
		s.osc = s.osc[:len(s.osc)-1]
		s.finishOSC(actions, false)
		s.mode = modeGround
	default:
		// ESC is buffered speculatively (it may turn out to be the start
		// of a String Terminator, checked above on the next byte); every
		// other byte including C0/C1/high bytes is collected verbatim.
		s.oscPut(b)
	}
}

func (s *Scanner) stepDCSEntry(actions Actions, b byte) {
	switch {
	case b < 0x20:
		// Ignored: unlike CSI, DCS entry does not execute C0 controls.
	case b >= 0x20 && b <= 0x2F:
		s.collectIntermediate(b)
		s.mode = modeDCSIntermediate
	case b >= '0' && b <= '9':
		s.collectDigit(b)
		s.mode = modeDCSParam
	case b == ':':
		s.collectColon()
		s.mode = modeDCSParam
	case b == ';':
		s.collectSemicolon()
		s.mode = modeDCSParam
	case b >= 0x3C && b <= 0x3F:
		s.collectIntermediate(b)
		s.mode = modeDCSParam
	case b >= 0x40 && b <= 0x7E:
		s.finishDCSHook(actions, b)
	}
}

func (s *Scanner) stepDCSParam(actions Actions, b byte) {
	switch {
	case b < 0x20:
	case b >= 0x20 && b <= 0x2F:
		s.collectIntermediate(b)
		s.mode = modeDCSIntermediate
	case b >= '0' && b <= '9':
		s.collectDigit(b)
	case b == ':':
		s.collectColon()
	case b == ';':
		s.collectSemicolon()
	case b >= 0x3C && b <= 0x3F:
		s.mode = modeDCSIgnore
	case b >= 0x40 && b <= 0x7E:
		s.finishDCSHook(actions, b)
	}
}

func (s *Scanner) stepDCSIntermediate(actions Actions, b byte) {
	switch {
	case b < 0x20:
	case b >= 0x20 && b <= 0x2F:
		s.collectIntermediate(b)
	case b >= 0x30 && b <= 0x3F:
		s.mode = modeDCSIgnore
	case b >= 0x40 && b <= 0x7E:
		s.finishDCSHook(actions, b)
	}
}

func (s *Scanner) stepDCSPassthrough(actions Actions, b byte) {
	switch {
	case b == 0x1B:
		s.pendingST = true
	case b == '\\' && s.pendingST:
		s.pendingST = false
		actions.EndHook()
		s.mode = modeGround
	case b == 0x07:
		actions.EndHook()
		s.mode = modeGround
	case b == 0x18 || b == 0x1A:
		// CAN/SUB cancels the string: close it out, then execute the byte.
		actions.EndHook()
		actions.Control(b)
		s.mode = modeGround
	default:
		s.flushPassthroughByte(actions, b)
	}
}

func (s *Scanner) stepDCSIgnore(actions Actions, b byte) {
	if b == 0x18 || b == 0x1A {
		s.mode = modeGround
	}
	// ESC is observed but not acted on here; any byte keeps ignoring until
	// CAN/SUB. Matches DCS-passthrough's cancel behavior without emitting.
}

func (s *Scanner) stepSOSPMApcString(b byte) {
	if b == '\\' {
		s.mode = modeGround
	}
	// Everything else, including a bare ESC, is discarded; SOS/PM/APC
	// payloads have no consumer in this implementation.
}

// enter transitions to mode and clears per-sequence accumulators.
func (s *Scanner) enter(m mode) {
	s.mode = m
	s.fields.Reset()
	s.intermediates = s.intermediates[:0]
	s.dropped = false
	s.osc = s.osc[:0]
	s.oscBounds = s.oscBounds[:0]
	s.field = 0
	s.haveField = false
	s.inSubfield = false
}

func (s *Scanner) collectIntermediate(b byte) {
	if len(s.intermediates) < maxIntermediates {
		s.intermediates = append(s.intermediates, b)
	} else {
		s.dropped = true
	}
}

func (s *Scanner) collectDigit(b byte) {
	d := uint16(b - '0')
	if !s.haveField {
		s.field = d
		s.haveField = true
		return
	}
	if s.field > 999 {
		s.field = 9999 // saturate rather than overflow uint16 math
		return
	}
	s.field = s.field*10 + d
}

// commitField pushes the in-progress scalar (if any) onto fields, as either
// a new group (Start) or a continuation of one (Append), depending on
// whether a ':' has opened a subparameter run.
func (s *Scanner) commitField() {
	if !s.haveField {
		return
	}
	if s.fields.IsFull() {
		s.dropped = true
	} else if s.inSubfield {
		s.fields.Append(s.field)
	} else {
		s.fields.Start(s.field)
	}
	s.field = 0
	s.haveField = false
}

func (s *Scanner) collectSemicolon() {
	if s.haveField {
		s.commitField()
	} else if !s.inSubfield {
		if s.fields.IsFull() {
			s.dropped = true
		} else {
			s.fields.Start(0)
		}
	}
	s.field = 0
	s.haveField = false
	s.inSubfield = false
}

func (s *Scanner) collectColon() {
	if s.haveField {
		if s.fields.IsFull() {
			s.dropped = true
		} else if !s.inSubfield {
			s.fields.Start(s.field)
			s.inSubfield = true
		} else {
			s.fields.Append(s.field)
		}
		s.field = 0
		s.haveField = false
		return
	}
	// Empty position before or within a subparameter run, e.g. ":5" or
	// "38::128".
	if s.fields.IsFull() {
		s.dropped = true
		return
	}
	if !s.inSubfield {
		s.fields.Start(0)
		s.inSubfield = true
	} else {
		s.fields.Append(0)
	}
}

func (s *Scanner) finishCSI(actions Actions, final byte) {
	s.commitField()
	actions.CSI(s.fields, s.intermediates, s.dropped, rune(final))
	s.enter(modeGround)
}

func (s *Scanner) finishDCSHook(actions Actions, final byte) {
	s.commitField()
	actions.BeginHook(s.fields, s.intermediates, s.dropped, rune(final))
	s.mode = modeDCSPassthrough
}

func (s *Scanner) flushPassthroughByte(actions Actions, b byte) {
	if s.pendingST {
		actions.Feed(0x1B)
		s.pendingST = false
	}
	actions.Feed(b)
}

func (s *Scanner) oscPut(b byte) {
	if len(s.osc) >= maxOSCBytes {
		return
	}
	if b == ';' && len(s.oscBounds) < maxOSCFields*2 {
		s.oscBounds = append(s.oscBounds, len(s.osc))
		return
	}
	s.osc = append(s.osc, b)
}

func (s *Scanner) finishOSC(actions Actions, bell bool) {
	// Every ';' is a field boundary, even when it produces an empty field —
	// "8;;http://host" (an unnamed hyperlink) must yield three fields, not
	// two, or the handler misreads the URI as the link's id.
	var fields [][]byte
	if len(s.osc) > 0 || len(s.oscBounds) > 0 {
		fields = make([][]byte, 0, len(s.oscBounds)+1)
		start := 0
		for _, end := range s.oscBounds {
			fields = append(fields, s.osc[start:end])
			start = end
		}
		fields = append(fields, s.osc[start:])
	}
	actions.OSC(fields, bell)
	s.enter(modeGround)
}

// startRune begins decoding a multi-byte UTF-8 rune at the start of bytes,
// which must begin with a lead byte (0xC0-0xFF).
func (s *Scanner) startRune(actions Actions, bytes []byte) int {
	r, size := utf8.DecodeRune(bytes)
	if r != utf8.RuneError {
		actions.Char(r)
		return size
	}
	if size == 1 && !utf8.FullRune(bytes) {
		s.trailingLen = copy(s.trailing[:], bytes)
		return len(bytes)
	}
	actions.Char(utf8.RuneError)
	return 1
}

// resumeRune tries to complete a rune left partially decoded by a previous
// Feed call. It returns how many bytes of the new call it consumed.
func (s *Scanner) resumeRune(actions Actions, bytes []byte) int {
	if len(bytes) == 0 {
		return 0
	}
	if bytes[0] < 0x20 || bytes[0] == 0x7F || bytes[0] == 0x1B {
		// A control byte can never continue a UTF-8 sequence; the partial
		// rune is abandoned without consuming this byte.
		actions.Char(utf8.RuneError)
		s.trailingLen = 0
		return 0
	}

	need := utf8.UTFMax - s.trailingLen
	n := need
	if len(bytes) < n {
		n = len(bytes)
	}
	copy(s.trailing[s.trailingLen:], bytes[:n])

	r, size := utf8.DecodeRune(s.trailing[:s.trailingLen+n])
	if r != utf8.RuneError {
		consumed := size - s.trailingLen
		s.trailingLen = 0
		actions.Char(r)
		return consumed
	}
	if size == 1 && !utf8.FullRune(s.trailing[:s.trailingLen+n]) {
		s.trailingLen += n
		return n
	}
	actions.Char(utf8.RuneError)
	s.trailingLen = 0
	return n
}
