//go:build !windows

package term

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/sys/unix"
	xt "golang.org/x/term"
)

// Truecolor reports whether the terminal accepts 24-bit SGR colors.
// COLORTERM is authoritative when set; otherwise a DECRQSS query for
// an RGB SGR is sent and the terminal gets a short window to answer.
func Truecolor(timeout time.Duration) bool {
	switch strings.ToLower(os.Getenv("COLORTERM")) {
	case "truecolor", "24bit":
		return true
	}
	switch os.Getenv("TERM") {
	case "xterm-direct", "iterm", "wezterm", "xterm-kitty", "xterm-ghostty":
		return true
	}
	return respondsToQuery("\x1b[38;2;1;2;3m\x1bP$qm\x1b\\\x1b[0m", "\x1bP", timeout)
}

// respondsToQuery writes a query sequence and polls stdin without
// blocking for a reply prefix. Anything else on stdin is left for the
// input decoder; callers run this before entering the main loop.
func respondsToQuery(query, wantPrefix string, timeout time.Duration) bool {
	if timeout <= 0 {
		timeout = 50 * time.Millisecond
	}
	stdin, stdout := os.Stdin, os.Stdout
	fdIn := int(stdin.Fd())
	if !xt.IsTerminal(fdIn) || !xt.IsTerminal(int(stdout.Fd())) {
		return false
	}
	if _, err := fmt.Fprint(stdout, query); err != nil {
		return false
	}
	_ = stdout.Sync()
	oldFlags, err := unix.FcntlInt(uintptr(fdIn), unix.F_GETFL, 0)
	if err != nil {
		return false
	}
	defer func() {
		_, _ = unix.FcntlInt(uintptr(fdIn), unix.F_SETFL, oldFlags)
	}()
	if err := unix.SetNonblock(fdIn, true); err != nil {
		return false
	}
	deadline := time.Now().Add(timeout)
	buf := make([]byte, 512)
	var acc bytes.Buffer
	for time.Now().Before(deadline) {
		remaining := int(time.Until(deadline) / time.Millisecond)
		if remaining <= 0 {
			remaining = 1
		}
		fds := []unix.PollFd{{Fd: int32(fdIn), Events: unix.POLLIN}}
		if _, err := unix.Poll(fds, remaining); err != nil {
			return false
		}
		if fds[0].Revents&unix.POLLIN == 0 {
			continue
		}
		n, err := unix.Read(fdIn, buf)
		if n > 0 {
			acc.Write(buf[:n])
			if bytes.Contains(acc.Bytes(), []byte(wantPrefix)) {
				return true
			}
		}
		if err != nil && err != unix.EAGAIN {
			return false
		}
	}
	return false
}
