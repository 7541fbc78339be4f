// Package render paints machine state into the terminal. It is a thin
// consumer: all geometry comes from the layout metrics and all cells
// from the compositor; this package only positions them.
package render

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/every-moment-special/pixel-perfect/internal/cells"
	"github.com/every-moment-special/pixel-perfect/internal/fsx"
	"github.com/every-moment-special/pixel-perfect/internal/nav"
	"github.com/every-moment-special/pixel-perfect/internal/thumbs"
)

// ReservedLines is the chrome height: one header line and one footer
// line around the content area.
const ReservedLines = 2

const (
	clearScreen = "\x1b[2J\x1b[H"
	reset       = "\x1b[0m"
	inverse     = "\x1b[7m"
	dim         = "\x1b[2m"
)

type Renderer struct {
	out    *bufio.Writer
	cache  *thumbs.Cache
	decode thumbs.DecodeFunc
}

func New(out io.Writer, cache *thumbs.Cache, decode thumbs.DecodeFunc) *Renderer {
	return &Renderer{out: bufio.NewWriterSize(out, 1<<16), cache: cache, decode: decode}
}

// Frame paints one complete frame for the current machine state and
// flushes it as a single write.
func (r *Renderer) Frame(m *nav.Machine, w, h int) {
	fmt.Fprint(r.out, clearScreen)
	if m.Mode() == nav.ModeGallery {
		r.gallery(m, w, h)
	} else {
		r.browse(m, w, h)
	}
	r.out.Flush()
}

func (r *Renderer) browse(m *nav.Machine, w, h int) {
	header := m.Dir()
	if n := m.Notice(); n != "" {
		header += "  !  " + n
	}
	fmt.Fprintf(r.out, "\x1b[1;1H%s%s%s", dim, padRight(truncateMiddle(header, w), w), reset)

	entries := m.Entries()
	if len(entries) == 0 {
		msg := "(empty)"
		fmt.Fprintf(r.out, "\x1b[3;3H%s%s%s", dim, msg, reset)
		r.footer(m, w, h)
		return
	}
	if m.View() == nav.ViewGrid {
		r.grid(m, entries, h)
	} else {
		r.list(m, entries, w)
	}
	r.footer(m, w, h)
}

func (r *Renderer) grid(m *nav.Machine, entries []fsx.Entry, h int) {
	met := m.Metrics()
	first := m.Scroll()
	firstRow := first / met.Columns
	for row := 0; row < met.MaxVisibleRows; row++ {
		for col := 0; col < met.Columns; col++ {
			idx := (firstRow+row)*met.Columns + col
			if idx >= len(entries) {
				return
			}
			px := 2 + col*(met.TileWidth+met.Gap)
			py := 2 + row*met.TileHeight
			r.tile(m, entries[idx], idx == m.Selected(), px, py, met.TileWidth, met.TileHeight, met.LabelLines)
		}
	}
}

func (r *Renderer) tile(m *nav.Machine, e fsx.Entry, selected bool, px, py, tileW, tileH, labelLines int) {
	imgRows := tileH - labelLines
	drewImage := false
	if e.IsMedia() {
		grid, err := r.cache.GetOrCompose(e.Path, r.decode)
		if err == nil && !grid.Empty() {
			offX := 0
			if grid.Width < tileW {
				offX = (tileW - grid.Width) / 2
			}
			r.paintCells(grid, px+offX, py, tileW, imgRows, 0)
			drewImage = true
		}
	}
	if !drewImage {
		icon := fallbackIcon(e)
		ix := px + (tileW-dispWidth(icon))/2
		iy := py + imgRows/2
		fmt.Fprintf(r.out, "\x1b[%d;%dH%s%s%s", iy, ix, dim, icon, reset)
	}

	style, unstyle := "", ""
	if selected {
		style, unstyle = inverse, reset
	}
	lines := wrapLines(e.Name, tileW, labelLines)
	for i := 0; i < labelLines; i++ {
		text := ""
		if i < len(lines) {
			text = lines[i]
		}
		fmt.Fprintf(r.out, "\x1b[%d;%dH%s%s%s", py+imgRows+i, px, style, padRight(text, tileW), unstyle)
	}
}

func (r *Renderer) list(m *nav.Machine, entries []fsx.Entry, w int) {
	met := m.Metrics()
	first := m.Scroll()
	for row := 0; row < met.MaxVisibleRows; row++ {
		idx := first + row
		if idx >= len(entries) {
			break
		}
		e := entries[idx]
		marker := "  "
		style, unstyle := "", ""
		if idx == m.Selected() {
			marker = "> "
			style, unstyle = inverse, reset
		}
		detail := humanSize(e.Size)
		if e.IsDir() {
			detail = "dir"
		}
		nameW := w - len(marker) - dispWidth(detail) - 3
		if nameW < 4 {
			nameW = 4
		}
		line := marker + padRight(truncateMiddle(e.Name, nameW), nameW) + "   " + detail
		fmt.Fprintf(r.out, "\x1b[%d;1H%s%s%s", 2+row, style, padRight(line, w), unstyle)
	}
}

// paintCells draws the cells of a composed grid clipped to a slot,
// skipping skipRows grid rows from the top (gallery scrolling).
func (r *Renderer) paintCells(g cells.Grid, px, py, maxW, maxH, skipRows int) {
	for _, c := range g.Cells {
		y := c.Y - skipRows
		if y < 0 || y >= maxH || c.X >= maxW {
			continue
		}
		fmt.Fprintf(r.out, "\x1b[%d;%dH%s%s%c%s", py+y, px+c.X, reset, c.Style, c.Glyph, reset)
	}
}

func (r *Renderer) footer(m *nav.Machine, w, h int) {
	entries := m.Entries()
	var status string
	if len(entries) == 0 {
		status = "(no items)"
	} else {
		e := entries[m.Selected()]
		kind := "file"
		if e.IsDir() {
			kind = "dir"
		} else if e.IsMedia() {
			kind = "image"
		}
		mode := "grid"
		if m.View() == nav.ViewList {
			mode = "list"
		}
		if m.ScrollMode() {
			mode += "+scroll"
		}
		status = fmt.Sprintf("%d/%d  %s  [%s]  %s  (%s)",
			m.Selected()+1, len(entries), truncateMiddle(e.Name, max(10, w/3)), kind, humanSize(e.Size), mode)
	}
	fmt.Fprintf(r.out, "\x1b[%d;1H%s%s%s", h, dim, padRight(truncateMiddle(status, w), w), reset)
}

func fallbackIcon(e fsx.Entry) string {
	if e.IsDir() {
		return "[DIR]"
	}
	ext := strings.ToUpper(strings.TrimPrefix(e.Ext, "."))
	if ext == "" {
		return "[FILE]"
	}
	if len(ext) > 4 {
		ext = ext[:4]
	}
	return "[" + ext + "]"
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
