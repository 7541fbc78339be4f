// Package layout computes grid geometry for the browsing views. All
// scroll bounds are expressed in item-index units so scroll offset and
// selection share one coordinate space.
package layout

// Defaults for the grid view. TileWidth covers the thumbnail plus its
// margin; Gap separates adjacent tiles.
const (
	DefaultTileWidth = 32
	DefaultGap       = 2

	// A tile whose area clears this threshold gets the three-line
	// filename block; cramped terminals fall back to a single line.
	tripleLabelArea = 500
)

type Options struct {
	TileWidth int
	Gap       int
	// ThumbRows is the cell height of the thumbnail block inside a
	// tile (half of the thumbnail pixel height).
	ThumbRows int
	// Reserved is the line count taken by header and footer chrome.
	Reserved int
}

func (o Options) withDefaults() Options {
	if o.TileWidth <= 0 {
		o.TileWidth = DefaultTileWidth
	}
	if o.Gap <= 0 {
		o.Gap = DefaultGap
	}
	if o.ThumbRows <= 0 {
		o.ThumbRows = 16
	}
	if o.Reserved < 0 {
		o.Reserved = 0
	}
	return o
}

// Metrics describes one computed viewport layout.
type Metrics struct {
	Columns          int
	Rows             int
	TileWidth        int
	TileHeight       int
	LabelLines       int
	Gap              int
	MaxVisibleRows   int
	TotalHeight      int // content height in lines, all rows
	MaxScrollOffset  int // item units
	VisibleItemCount int
}

// Grid computes grid-view geometry for the given terminal size and
// item count. Columns is always at least 1, whatever the width.
func Grid(termW, termH, itemCount int, opts Options) Metrics {
	o := opts.withDefaults()
	cols := (termW - 2) / (o.TileWidth + o.Gap)
	if cols < 1 {
		cols = 1
	}
	rows := 0
	if itemCount > 0 {
		rows = (itemCount + cols - 1) / cols
	}
	labelLines := 1
	if o.TileWidth*(o.ThumbRows+3) >= tripleLabelArea {
		labelLines = 3
	}
	tileH := o.ThumbRows + labelLines
	avail := termH - o.Reserved
	if avail < 0 {
		avail = 0
	}
	maxVisible := avail / tileH
	if maxVisible < 1 {
		maxVisible = 1
	}
	maxScroll := 0
	if rows > maxVisible {
		maxScroll = (rows - maxVisible) * cols
	}
	return Metrics{
		Columns:          cols,
		Rows:             rows,
		TileWidth:        o.TileWidth,
		TileHeight:       tileH,
		LabelLines:       labelLines,
		Gap:              o.Gap,
		MaxVisibleRows:   maxVisible,
		TotalHeight:      rows * tileH,
		MaxScrollOffset:  maxScroll,
		VisibleItemCount: maxVisible * cols,
	}
}

// List computes list-view geometry: the degenerate one-column,
// one-line-per-item case of Grid.
func List(termW, termH, itemCount int, opts Options) Metrics {
	o := opts.withDefaults()
	avail := termH - o.Reserved
	if avail < 0 {
		avail = 0
	}
	maxVisible := avail
	if maxVisible < 1 {
		maxVisible = 1
	}
	maxScroll := 0
	if itemCount > maxVisible {
		maxScroll = itemCount - maxVisible
	}
	return Metrics{
		Columns:          1,
		Rows:             itemCount,
		TileWidth:        termW,
		TileHeight:       1,
		LabelLines:       1,
		Gap:              0,
		MaxVisibleRows:   maxVisible,
		TotalHeight:      itemCount,
		MaxScrollOffset:  maxScroll,
		VisibleItemCount: maxVisible,
	}
}
