package render

import (
	"fmt"
	"strings"

	runewidth "github.com/mattn/go-runewidth"
)

// sanitizePrintable blanks control characters so a hostile filename
// cannot inject escape sequences into the frame.
func sanitizePrintable(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return ' '
		}
		return r
	}, s)
}

func dispWidth(s string) int { return runewidth.StringWidth(s) }

// truncateMiddle keeps the head and tail of an over-wide name with an
// ellipsis between, by display width.
func truncateMiddle(s string, width int) string {
	s = sanitizePrintable(s)
	if width <= 0 {
		return ""
	}
	sw := dispWidth(s)
	if sw <= width {
		return s
	}
	if width <= 3 {
		return runewidth.Truncate(s, width, "")
	}
	keep := width - 3
	head := runewidth.Truncate(s, keep/2, "")
	tail := runewidth.TruncateLeft(s, sw-(keep-keep/2), "")
	out := head + "..." + tail
	if dispWidth(out) > width {
		out = runewidth.Truncate(out, width, "")
	}
	return out
}

func padRight(s string, w int) string {
	if sw := dispWidth(s); sw < w {
		return s + strings.Repeat(" ", w-sw)
	}
	return runewidth.Truncate(s, w, "")
}

func humanSize(n int64) string {
	const units = "KMG"
	v := float64(n)
	i := -1
	for v >= 1024 && i < len(units)-1 {
		v /= 1024
		i++
	}
	if i < 0 {
		return fmt.Sprintf("%dB", n)
	}
	return fmt.Sprintf("%.1f%c", v, units[i])
}

// wrapLines splits text into display-width-bounded lines, at most n of
// them, for the multi-line tile label.
func wrapLines(s string, width, n int) []string {
	s = sanitizePrintable(s)
	var out []string
	rs := []rune(s)
	for len(rs) > 0 && len(out) < n {
		w := 0
		i := 0
		for ; i < len(rs); i++ {
			rw := runewidth.RuneWidth(rs[i])
			if w+rw > width {
				break
			}
			w += rw
		}
		out = append(out, string(rs[:i]))
		rs = rs[i:]
	}
	if len(rs) > 0 && len(out) > 0 {
		out[len(out)-1] = truncateMiddle(out[len(out)-1]+string(rs), width)
	}
	return out
}
