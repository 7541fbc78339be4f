package render

import (
	"fmt"
	"path/filepath"

	"github.com/every-moment-special/pixel-perfect/internal/nav"
)

func (r *Renderer) gallery(m *nav.Machine, w, h int) {
	g := m.Gallery()
	if g == nil {
		return
	}
	rows := h - 1
	if rows < 1 {
		rows = 1
	}
	switch {
	case g.Err() != nil:
		r.galleryPanel(w, rows, []string{
			"cannot display image",
			truncateMiddle(filepath.Base(g.Path()), w-4),
			g.Err().Error(),
			"",
			"left/right: previous/next   esc: back",
		})
	case g.Loaded():
		grid := g.Grid()
		offX := 0
		if grid.Width < w {
			offX = (w - grid.Width) / 2
		}
		r.paintCells(grid, 1+offX, 1, w, rows, g.Scroll())
	default:
		r.galleryPanel(w, rows, []string{"loading..."})
	}

	status := fmt.Sprintf("%d/%d  %s  up/down: scroll  left/right: switch  esc: back",
		g.Index()+1, len(g.Paths()), truncateMiddle(filepath.Base(g.Path()), max(10, w/3)))
	fmt.Fprintf(r.out, "\x1b[%d;1H%s%s%s", h, dim, padRight(truncateMiddle(status, w), w), reset)
}

func (r *Renderer) galleryPanel(w, rows int, lines []string) {
	top := rows/2 - len(lines)/2
	if top < 1 {
		top = 1
	}
	for i, line := range lines {
		line = truncateMiddle(line, w-2)
		x := (w - dispWidth(line)) / 2
		if x < 1 {
			x = 1
		}
		fmt.Fprintf(r.out, "\x1b[%d;%dH%s", top+i, x, line)
	}
}
