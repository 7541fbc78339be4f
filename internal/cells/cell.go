package cells

// Glyphs a composed cell may carry. Upper/lower half blocks split one
// terminal cell into two vertically stacked pixels.
const (
	UpperHalf = '▀'
	LowerHalf = '▄'
)

// Cell is one drawn terminal position. Style is a ready-to-emit SGR
// sequence (may be empty). Cells with nothing to draw are omitted from
// the grid entirely, so there is no SPACE glyph in practice.
type Cell struct {
	X, Y  int
	Glyph rune
	Style string
}

// Grid is one fully composed image as a sparse, ordered cell set.
type Grid struct {
	Cells []Cell
	// Height is max(cell.Y)+1, in terminal rows. Zero for an empty grid.
	Height int
	// Width is the source pixel width, which equals the column span.
	Width int
	// Truncated is set when composition hit the cell ceiling and
	// stopped early.
	Truncated bool
}

func (g Grid) Empty() bool { return len(g.Cells) == 0 }
