package input

import "unicode/utf8"

const esc = 0x1b

// Decoder is a stateful byte-prefix automaton over a terminal input
// stream. Feed it chunks as they arrive from the tty; it holds back a
// trailing partial escape sequence until the rest shows up.
type Decoder struct {
	pending []byte
}

// Feed appends a chunk and drains every complete event from the
// buffer. A lone ESC at the end of a chunk is the escape key: a real
// sequence arrives in one read, so nothing following it in the same
// chunk means the user pressed the key itself.
func (d *Decoder) Feed(p []byte) []Event {
	d.pending = append(d.pending, p...)
	var evs []Event
	for len(d.pending) > 0 {
		ev, n := decodeOne(d.pending)
		if n == 0 {
			if len(d.pending) == 1 && d.pending[0] == esc {
				evs = append(evs, KeyEvent{Key: KeyEscape})
				d.pending = d.pending[:0]
			}
			break
		}
		d.pending = d.pending[n:]
		if ev != nil {
			evs = append(evs, ev)
		}
	}
	return evs
}

// decodeOne decodes the first event in b. It returns the consumed
// byte count, 0 when b holds only the start of a sequence, and a nil
// event with n > 0 for well-formed sequences we ignore.
func decodeOne(b []byte) (Event, int) {
	switch b[0] {
	case esc:
		return decodeEscape(b)
	case '\r', '\n':
		return KeyEvent{Key: KeyEnter}, 1
	case '\b', 0x7f:
		return KeyEvent{Key: KeyBackspace}, 1
	}
	if b[0] < 0x20 {
		return KeyEvent{Key: KeyCtrl, Rune: rune(b[0] + 0x60)}, 1
	}
	r, size := utf8.DecodeRune(b)
	if r == utf8.RuneError && size == 1 {
		if !utf8.FullRune(b) && len(b) < utf8.UTFMax {
			return nil, 0
		}
		return nil, 1
	}
	return KeyEvent{Key: KeyRune, Rune: r}, size
}

func decodeEscape(b []byte) (Event, int) {
	if len(b) < 2 {
		return nil, 0
	}
	switch b[1] {
	case '[':
		return decodeCSI(b)
	case 'P':
		return decodeDCS(b)
	case 'O':
		// SS3 arrows, sent in application cursor-key mode.
		if len(b) < 3 {
			return nil, 0
		}
		if k, ok := arrowKeys[b[2]]; ok {
			return KeyEvent{Key: k}, 3
		}
		return nil, 3
	default:
		// Alt-modified key or an escape variant we don't know. The
		// escape itself is reported; the trailing byte is dropped.
		return KeyEvent{Key: KeyEscape}, 2
	}
}

// decodeDCS consumes a device control string (ESC P ... ESC \) as one
// ignored unit. Terminals send these in reply to capability queries;
// letting the payload decode as keystrokes would feed garbage into
// navigation.
func decodeDCS(b []byte) (Event, int) {
	for i := 2; i+1 < len(b); i++ {
		if b[i] == esc && b[i+1] == '\\' {
			return nil, i + 2
		}
	}
	if len(b) > maxSequence {
		return nil, len(b)
	}
	return nil, 0
}

var arrowKeys = map[byte]Key{
	'A': KeyUp,
	'B': KeyDown,
	'C': KeyRight,
	'D': KeyLeft,
}

func decodeCSI(b []byte) (Event, int) {
	if len(b) < 3 {
		return nil, 0
	}
	switch {
	case b[2] == 'M':
		return decodeMouseX10(b)
	case b[2] == '<':
		return decodeMouseSGR(b)
	}
	// Generic CSI: parameter and intermediate bytes (0x20..0x3f), then
	// one final byte in 0x40..0x7e. Unknown sequences are consumed
	// whole and dropped so their tail can't leak out as key events.
	param := 0
	haveParam := false
	unknown := false
	for i := 2; i < len(b); i++ {
		c := b[i]
		switch {
		case c >= '0' && c <= '9':
			param = param*10 + int(c-'0')
			haveParam = true
		case c == ';':
			// Later params don't matter for the keys we map.
		case c >= 0x20 && c <= 0x3f:
			unknown = true
		case c >= 0x40 && c <= 0x7e:
			if unknown {
				return nil, i + 1
			}
			return decodeCSIFinal(c, param, haveParam), i + 1
		default:
			return nil, i + 1
		}
	}
	if len(b) > maxSequence {
		return nil, len(b)
	}
	return nil, 0
}

// maxSequence bounds how long an unterminated escape sequence can
// hold the buffer before it is discarded.
const maxSequence = 64

func decodeCSIFinal(final byte, param int, haveParam bool) Event {
	if k, ok := arrowKeys[final]; ok {
		return KeyEvent{Key: k}
	}
	if final == '~' && haveParam {
		switch param {
		case 5:
			return KeyEvent{Key: KeyPageUp}
		case 6:
			return KeyEvent{Key: KeyPageDown}
		}
	}
	return nil
}

// decodeMouseX10 handles the fixed 6-byte form: ESC [ M, then button,
// x, y, each offset by +32.
func decodeMouseX10(b []byte) (Event, int) {
	if len(b) < 6 {
		return nil, 0
	}
	btn := int(b[3]) - 32
	x := int(b[4]) - 32
	y := int(b[5]) - 32
	return mouseEvent(btn, x, y, false), 6
}

// decodeMouseSGR handles the variable form: ESC [ < params M|m with
// semicolon-separated values, each offset by +32 like the fixed form.
// Malformed reports consume through their terminator and decode to
// nothing.
func decodeMouseSGR(b []byte) (Event, int) {
	end := -1
	bad := false
	for i := 3; i < len(b); i++ {
		if b[i] == 'M' || b[i] == 'm' {
			end = i
			break
		}
		if b[i] != ';' && (b[i] < '0' || b[i] > '9') {
			bad = true
		}
	}
	if end < 0 {
		if len(b) > maxSequence {
			return nil, len(b)
		}
		return nil, 0
	}
	if bad {
		return nil, end + 1
	}
	vals := make([]int, 0, 3)
	cur, haveCur := 0, false
	for _, c := range b[3:end] {
		if c == ';' {
			if !haveCur {
				return nil, end + 1
			}
			vals = append(vals, cur)
			cur, haveCur = 0, false
			continue
		}
		cur = cur*10 + int(c-'0')
		haveCur = true
	}
	if !haveCur {
		return nil, end + 1
	}
	vals = append(vals, cur)
	if len(vals) != 3 {
		return nil, end + 1
	}
	return mouseEvent(vals[0]-32, vals[1]-32, vals[2]-32, b[end] == 'm'), end + 1
}

func mouseEvent(btn, x, y int, release bool) Event {
	if x < 0 || y < 0 {
		return nil
	}
	switch btn {
	case 64, 96:
		return MouseEvent{Kind: MouseScrollUp, Button: btn, X: x, Y: y}
	case 65, 97:
		return MouseEvent{Kind: MouseScrollDown, Button: btn, X: x, Y: y}
	}
	if btn < 0 {
		return nil
	}
	kind := MousePress
	switch {
	case release:
		kind = MouseRelease
	case btn&32 != 0:
		kind = MouseMove
		btn &^= 32
	}
	return MouseEvent{Kind: kind, Button: btn, X: x, Y: y}
}
