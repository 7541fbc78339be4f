// Package term owns process-global terminal state: raw mode, mouse
// reporting, cursor visibility, and capability detection. Everything
// mutable is acquired through a Handle so it gets restored on every
// exit path.
package term

import (
	"fmt"
	"io"
	"os"

	xt "golang.org/x/term"
)

const (
	enableMouse  = "\x1b[?1000h\x1b[?1002h\x1b[?1006h"
	disableMouse = "\x1b[?1006l\x1b[?1002l\x1b[?1000l"
	hideCursor   = "\x1b[?25l"
	showCursor   = "\x1b[?25h"
	altScreenOn  = "\x1b[?1049h"
	altScreenOff = "\x1b[?1049l"
)

// Handle is a scoped acquisition of raw+mouse mode. Restore is safe to
// call more than once.
type Handle struct {
	fd       int
	out      io.Writer
	prev     *xt.State
	restored bool
}

// Enter switches stdin to raw mode, turns on mouse reporting and the
// alternate screen, and hides the cursor.
func Enter(in *os.File, out io.Writer) (*Handle, error) {
	fd := int(in.Fd())
	prev, err := xt.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("raw mode: %w", err)
	}
	fmt.Fprint(out, altScreenOn+enableMouse+hideCursor)
	return &Handle{fd: fd, out: out, prev: prev}, nil
}

// Restore puts the terminal back the way Enter found it.
func (h *Handle) Restore() {
	if h == nil || h.restored {
		return
	}
	h.restored = true
	fmt.Fprint(h.out, showCursor+disableMouse+altScreenOff)
	_ = xt.Restore(h.fd, h.prev)
}

func IsTerminal(fd uintptr) bool { return xt.IsTerminal(int(fd)) }

// Size reports the terminal dimensions with the usual 80x24 fallback
// when the query fails.
func Size(out *os.File) (w, h int) {
	w, h, _ = xt.GetSize(int(out.Fd()))
	if w <= 0 {
		w = 80
	}
	if h <= 0 {
		h = 24
	}
	return
}
