package cells

import "fmt"

// Palette selects how RGB values are encoded into SGR sequences.
type Palette int

const (
	// Truecolor emits 24-bit 38;2/48;2 sequences.
	Truecolor Palette = iota
	// ANSI256 quantizes into the xterm 256-color cube.
	ANSI256
)

const Reset = "\x1b[0m"

func (p Palette) fg(r, g, b byte) string {
	if p == ANSI256 {
		return fmt.Sprintf("\x1b[38;5;%dm", xterm256(r, g, b))
	}
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm", r, g, b)
}

func (p Palette) bg(r, g, b byte) string {
	if p == ANSI256 {
		return fmt.Sprintf("\x1b[48;5;%dm", xterm256(r, g, b))
	}
	return fmt.Sprintf("\x1b[48;2;%d;%d;%dm", r, g, b)
}

// xterm256 maps RGB onto the 6x6x6 cube (16..231) or the grayscale
// ramp (232..255) when the channels are close enough to equal.
func xterm256(r, g, b byte) int {
	if near(r, g) && near(g, b) {
		avg := (int(r) + int(g) + int(b)) / 3
		if avg < 8 {
			return 16
		}
		if avg > 238 {
			return 231
		}
		return 232 + (avg-8)/10
	}
	return 16 + 36*cube(r) + 6*cube(g) + cube(b)
}

func cube(v byte) int {
	if v < 48 {
		return 0
	}
	if v < 115 {
		return 1
	}
	return int(v-35) / 40
}

func near(a, b byte) bool {
	d := int(a) - int(b)
	return d > -10 && d < 10
}
