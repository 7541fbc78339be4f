package nav

import (
	"github.com/every-moment-special/pixel-perfect/internal/cells"
)

// Gallery is the single-image sub-state. It exists only while the
// machine is in ModeGallery and is destroyed on exit; browsing state
// underneath is untouched the whole time.
type Gallery struct {
	paths  []string
	index  int
	scroll int
	grid   cells.Grid
	loaded bool
	failed bool
	err    error
}

func (g *Gallery) Paths() []string  { return g.paths }
func (g *Gallery) Index() int       { return g.index }
func (g *Gallery) Scroll() int      { return g.scroll }
func (g *Gallery) Err() error       { return g.err }
func (g *Gallery) Loaded() bool     { return g.loaded }
func (g *Gallery) Grid() cells.Grid { return g.grid }

func (g *Gallery) Path() string {
	if g.index < 0 || g.index >= len(g.paths) {
		return ""
	}
	return g.paths[g.index]
}

func (g *Gallery) clampScroll(visibleRows int) {
	max := 0
	if g.loaded && g.grid.Height > visibleRows {
		max = g.grid.Height - visibleRows
	}
	if g.scroll > max {
		g.scroll = max
	}
	if g.scroll < 0 {
		g.scroll = 0
	}
}

// Gallery returns the active sub-state, nil while browsing.
func (m *Machine) Gallery() *Gallery { return m.gallery }

// enterGallery seeds the sub-state from the sibling media files of the
// current listing and loads the activated one.
func (m *Machine) enterGallery(path string) {
	var paths []string
	index := 0
	for _, e := range m.entries {
		if !e.IsMedia() {
			continue
		}
		if e.Path == path {
			index = len(paths)
		}
		paths = append(paths, e.Path)
	}
	if len(paths) == 0 {
		return
	}
	m.gallery = &Gallery{paths: paths, index: index}
	m.LoadGalleryImage()
}

// GalleryMove shifts the current image by delta, clamped at both
// ends. It only retargets; the caller follows up with
// LoadGalleryImage once queued moves have settled, so a burst of
// next/previous decodes a single image.
func (m *Machine) GalleryMove(delta int) {
	g := m.gallery
	if g == nil {
		return
	}
	next := g.index + delta
	if next < 0 {
		next = 0
	}
	if next >= len(g.paths) {
		next = len(g.paths) - 1
	}
	if next == g.index {
		return
	}
	g.index = next
	g.scroll = 0
	g.loaded = false
	g.failed = false
	g.err = nil
}

// LoadGalleryImage composes the full-viewport grid for the current
// image. A result for an index that moved on while composing is
// discarded rather than displayed. A failed image is not retried until
// the target changes: the error panel stays up without re-decoding on
// every event.
func (m *Machine) LoadGalleryImage() {
	g := m.gallery
	if g == nil || g.loaded || g.failed {
		return
	}
	idx := g.index
	grid, err := m.compose(g.paths[idx], m.termW)
	if m.gallery != g || g.index != idx {
		return
	}
	if err != nil {
		g.err = err
		g.failed = true
		g.grid = cells.Grid{}
		g.loaded = false
		return
	}
	g.err = nil
	g.grid = grid
	g.loaded = true
	g.clampScroll(m.galleryRows())
}

// GalleryScroll pans the composed image vertically within its height.
func (m *Machine) GalleryScroll(delta int) {
	g := m.gallery
	if g == nil {
		return
	}
	g.scroll += delta
	g.clampScroll(m.galleryRows())
}

// InvalidateGallery forces a recompose on the next LoadGalleryImage,
// used after a terminal resize changes the full-viewport target width.
func (m *Machine) InvalidateGallery() {
	if g := m.gallery; g != nil {
		g.loaded = false
		g.failed = false
		g.err = nil
	}
}

// ExitGallery destroys the sub-state and returns input focus to the
// browsing view.
func (m *Machine) ExitGallery() {
	m.gallery = nil
}

// galleryRows is the image viewport height: the full terminal minus
// the one-line status bar.
func (m *Machine) galleryRows() int {
	rows := m.termH - 1
	if rows < 1 {
		rows = 1
	}
	return rows
}
