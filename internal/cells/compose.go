package cells

// DefaultMaxCells bounds a single composition pass. Pathological
// inputs degrade to a truncated grid instead of unbounded memory.
const DefaultMaxCells = 100000

// Pixels with alpha at or above this render as opaque; everything
// below is fully transparent. No blending.
const alphaOpaque = 128

type ComposeOptions struct {
	Palette  Palette
	MaxCells int // 0 means DefaultMaxCells
}

// Compose converts a pixel buffer into terminal cells using the
// vertical half-block technique: each output row covers two scanlines,
// with the upper pixel painted as the glyph foreground and the lower
// as its background. An odd trailing scanline is dropped.
func Compose(buf *PixelBuffer, opts ComposeOptions) Grid {
	limit := opts.MaxCells
	if limit <= 0 {
		limit = DefaultMaxCells
	}
	g := Grid{Width: buf.W}
	for y := 0; y+1 < buf.H; y += 2 {
		row := y / 2
		for x := 0; x < buf.W; x++ {
			ur, ug, ub, ua := buf.At(x, y)
			lr, lg, lb, la := buf.At(x, y+1)
			upper := ua >= alphaOpaque
			lower := la >= alphaOpaque
			var c Cell
			switch {
			case upper && lower:
				c = Cell{X: x, Y: row, Glyph: UpperHalf, Style: opts.Palette.fg(ur, ug, ub) + opts.Palette.bg(lr, lg, lb)}
			case upper:
				c = Cell{X: x, Y: row, Glyph: UpperHalf, Style: opts.Palette.fg(ur, ug, ub)}
			case lower:
				c = Cell{X: x, Y: row, Glyph: LowerHalf, Style: opts.Palette.fg(lr, lg, lb)}
			default:
				continue
			}
			if len(g.Cells) >= limit {
				g.Truncated = true
				return g
			}
			g.Cells = append(g.Cells, c)
			if row+1 > g.Height {
				g.Height = row + 1
			}
		}
	}
	return g
}
