package input

import "strconv"

// recognized is the result of attempting to parse one escape sequence from
// the head of an unconsumed buffer.
type recognized struct {
	event    Event
	isPaste  bool // PasteStart/PasteEnd marker, not surfaced directly as Event
	pasteEnd bool // true for the end marker, false for start
	consumed int
	ok       bool // false means "not enough bytes yet, wait for more"
	garbage  bool // true means "unrecognized, consume 1 byte and move on"
}

// maxSeqScan bounds how many bytes we'll scan looking for a CSI final byte
// before giving up and treating the sequence as garbage. Well-formed CSI
// sequences are always short; this guards against never resyncing on
// noise.
const maxSeqScan = 32

// parseEscapeSequence attempts to parse data[0] == ESC plus whatever
// follows. data[0] is always 0x1B and len(data) >= 2 (the lone-ESC case is
// handled by the caller before this is reached).
func parseEscapeSequence(data []byte) recognized {
	switch data[1] {
	case '[':
		return parseCSI(data)
	case 'O':
		if len(data) < 3 {
			return recognized{ok: false}
		}
		if code, ok := ss3KeyCode(data[2]); ok {
			return recognized{event: Event{Kind: EventKey, Key: Key{Code: code}}, consumed: 3, ok: true}
		}
		return recognized{consumed: 2, ok: true, garbage: true}
	default:
		// Unrecognized ESC-prefixed sequence: treat as Alt+<char> if the
		// next byte is printable, otherwise drop the ESC alone.
		if data[1] >= 0x20 && data[1] < 0x7F {
			return recognized{event: Event{Kind: EventKey, Key: Key{Code: KeyChar, Rune: rune(data[1]), Mods: ModAlt}}, consumed: 2, ok: true}
		}
		return recognized{consumed: 1, ok: true, garbage: true}
	}
}

func ss3KeyCode(b byte) (KeyCode, bool) {
	switch b {
	case 'P':
		return KeyF1, true
	case 'Q':
		return KeyF2, true
	case 'R':
		return KeyF3, true
	case 'S':
		return KeyF4, true
	case 'A':
		return KeyUp, true
	case 'B':
		return KeyDown, true
	case 'C':
		return KeyRight, true
	case 'D':
		return KeyLeft, true
	}
	return 0, false
}

// parseCSI scans "ESC [ ... final" where final is in 0x40-0x7E. Supports a
// leading '<' (SGR mouse) and ';'-separated decimal parameters.
func parseCSI(data []byte) recognized {
	i := 2
	private := byte(0)
	if i < len(data) && (data[i] == '<' || data[i] == '?') {
		private = data[i]
		i++
	}
	paramStart := i
	for i < len(data) {
		b := data[i]
		if b >= 0x40 && b <= 0x7E {
			params := parseParams(data[paramStart:i])
			final := b
			consumed := i + 1
			return dispatchCSI(private, params, final, consumed)
		}
		i++
		if i-2 > maxSeqScan {
			return recognized{consumed: 1, ok: true, garbage: true}
		}
	}
	if len(data) > maxSeqScan {
		return recognized{consumed: 1, ok: true, garbage: true}
	}
	return recognized{ok: false}
}

func parseParams(raw []byte) []int {
	if len(raw) == 0 {
		return nil
	}
	var params []int
	start := 0
	for i := 0; i <= len(raw); i++ {
		if i == len(raw) || raw[i] == ';' {
			if i > start {
				if n, err := strconv.Atoi(string(raw[start:i])); err == nil {
					params = append(params, n)
				} else {
					params = append(params, 0)
				}
			} else {
				params = append(params, 0)
			}
			start = i + 1
		}
	}
	return params
}

func param(params []int, idx, def int) int {
	if idx < len(params) {
		return params[idx]
	}
	return def
}

func dispatchCSI(private byte, params []int, final byte, consumed int) recognized {
	if private == '<' && (final == 'M' || final == 'm') {
		return recognized{event: decodeSGRMouse(params, final == 'M'), consumed: consumed, ok: true, isPaste: false}
	}

	switch final {
	case 'A':
		return keyEvent(KeyUp, params, consumed)
	case 'B':
		return keyEvent(KeyDown, params, consumed)
	case 'C':
		return keyEvent(KeyRight, params, consumed)
	case 'D':
		return keyEvent(KeyLeft, params, consumed)
	case 'H':
		return keyEvent(KeyHome, params, consumed)
	case 'F':
		return keyEvent(KeyEnd, params, consumed)
	case 'I':
		return recognized{event: Event{Kind: EventFocusIn}, consumed: consumed, ok: true}
	case 'O':
		return recognized{event: Event{Kind: EventFocusOut}, consumed: consumed, ok: true}
	case '~':
		return tildeKeyEvent(params, consumed)
	}
	return recognized{consumed: consumed, ok: true, garbage: true}
}

func keyEvent(code KeyCode, params []int, consumed int) recognized {
	mods := modsFromXtermParam(param(params, 1, 1))
	return recognized{event: Event{Kind: EventKey, Key: Key{Code: code, Mods: mods}}, consumed: consumed, ok: true}
}

// tildeKeyEvent handles "ESC [ n ~" function/navigation keys, plus the
// bracketed-paste markers 200~/201~.
func tildeKeyEvent(params []int, consumed int) recognized {
	n := param(params, 0, 0)
	mods := modsFromXtermParam(param(params, 1, 1))
	switch n {
	case 200:
		return recognized{isPaste: true, pasteEnd: false, consumed: consumed, ok: true}
	case 201:
		return recognized{isPaste: true, pasteEnd: true, consumed: consumed, ok: true}
	case 2:
		return recognized{event: Event{Kind: EventKey, Key: Key{Code: KeyInsert, Mods: mods}}, consumed: consumed, ok: true}
	case 3:
		return recognized{event: Event{Kind: EventKey, Key: Key{Code: KeyDelete, Mods: mods}}, consumed: consumed, ok: true}
	case 5:
		return recognized{event: Event{Kind: EventKey, Key: Key{Code: KeyPageUp, Mods: mods}}, consumed: consumed, ok: true}
	case 6:
		return recognized{event: Event{Kind: EventKey, Key: Key{Code: KeyPageDown, Mods: mods}}, consumed: consumed, ok: true}
	case 15:
		return recognized{event: Event{Kind: EventKey, Key: Key{Code: KeyF5, Mods: mods}}, consumed: consumed, ok: true}
	case 17:
		return recognized{event: Event{Kind: EventKey, Key: Key{Code: KeyF6, Mods: mods}}, consumed: consumed, ok: true}
	case 18:
		return recognized{event: Event{Kind: EventKey, Key: Key{Code: KeyF7, Mods: mods}}, consumed: consumed, ok: true}
	case 19:
		return recognized{event: Event{Kind: EventKey, Key: Key{Code: KeyF8, Mods: mods}}, consumed: consumed, ok: true}
	case 20:
		return recognized{event: Event{Kind: EventKey, Key: Key{Code: KeyF9, Mods: mods}}, consumed: consumed, ok: true}
	case 21:
		return recognized{event: Event{Kind: EventKey, Key: Key{Code: KeyF10, Mods: mods}}, consumed: consumed, ok: true}
	case 23:
		return recognized{event: Event{Kind: EventKey, Key: Key{Code: KeyF11, Mods: mods}}, consumed: consumed, ok: true}
	case 24:
		return recognized{event: Event{Kind: EventKey, Key: Key{Code: KeyF12, Mods: mods}}, consumed: consumed, ok: true}
	}
	return recognized{consumed: consumed, ok: true, garbage: true}
}

func decodeSGRMouse(params []int, pressed bool) Event {
	b := param(params, 0, 0)
	col := param(params, 1, 1)
	row := param(params, 2, 1)
	mods := Modifiers(0)
	if b&4 != 0 {
		mods |= ModShift
	}
	if b&8 != 0 {
		mods |= ModAlt
	}
	if b&16 != 0 {
		mods |= ModCtrl
	}
	var button MouseButton
	switch {
	case b&64 != 0 && b&1 == 0:
		button = MouseWheelUp
	case b&64 != 0:
		button = MouseWheelDown
	case b&32 != 0:
		button = MouseMove
	default:
		switch b & 3 {
		case 0:
			button = MouseLeft
		case 1:
			button = MouseMiddle
		case 2:
			button = MouseRight
		default:
			button = MouseNone
		}
	}
	return Event{Kind: EventMouse, Mouse: MouseEvent{Button: button, Col: col, Row: row, Pressed: pressed, Mods: mods}}
}
