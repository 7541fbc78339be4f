// Package nav owns all browsing state: the current listing, selection,
// scroll position, view mode, and the nested gallery sub-state. Every
// mutation re-clamps selection and scroll against current geometry, so
// callers can fire operations in any order without breaking invariants.
package nav

import (
	"time"

	"github.com/every-moment-special/pixel-perfect/internal/cells"
	"github.com/every-moment-special/pixel-perfect/internal/fsx"
	"github.com/every-moment-special/pixel-perfect/internal/layout"
)

type ViewMode int

const (
	ViewList ViewMode = iota
	ViewGrid
)

// Mode is the top-level machine state. Gallery input routing is
// decided by this tag alone, never by probing sub-state pointers.
type Mode int

const (
	ModeBrowsing Mode = iota
	ModeGallery
)

type MoveDir int

const (
	MoveUp MoveDir = iota
	MoveDown
	MoveLeft
	MoveRight
)

// DefaultActivationWindow is how long a first activation stays armed
// waiting for its confirming second activation.
const DefaultActivationWindow = 500 * time.Millisecond

// ComposeFn produces a full-viewport grid for a gallery image at the
// given terminal-width target. Wired to the decoding service by the
// application.
type ComposeFn func(path string, targetW int) (cells.Grid, error)

type Machine struct {
	lister  fsx.Lister
	compose ComposeFn
	now     func() time.Time

	termW, termH int
	layoutOpts   layout.Options

	dir        string
	entries    []fsx.Entry
	selected   int
	scroll     int
	view       ViewMode
	scrollMode bool
	notice     string

	activationWindow time.Duration
	armPath          string
	armAt            time.Time

	gallery *Gallery
}

type Option func(*Machine)

func WithClock(now func() time.Time) Option {
	return func(m *Machine) { m.now = now }
}

func WithActivationWindow(d time.Duration) Option {
	return func(m *Machine) { m.activationWindow = d }
}

func WithLayoutOptions(o layout.Options) Option {
	return func(m *Machine) { m.layoutOpts = o }
}

func WithViewMode(v ViewMode) Option {
	return func(m *Machine) { m.view = v }
}

func New(lister fsx.Lister, compose ComposeFn, opts ...Option) *Machine {
	m := &Machine{
		lister:           lister,
		compose:          compose,
		now:              time.Now,
		view:             ViewGrid,
		termW:            80,
		termH:            24,
		activationWindow: DefaultActivationWindow,
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

func (m *Machine) Mode() Mode {
	if m.gallery != nil {
		return ModeGallery
	}
	return ModeBrowsing
}

func (m *Machine) Dir() string          { return m.dir }
func (m *Machine) Entries() []fsx.Entry { return m.entries }
func (m *Machine) Selected() int        { return m.selected }
func (m *Machine) Scroll() int          { return m.scroll }
func (m *Machine) View() ViewMode       { return m.view }
func (m *Machine) ScrollMode() bool     { return m.scrollMode }
func (m *Machine) Notice() string       { return m.notice }

// Metrics returns the layout for the active browsing view at the
// current terminal size.
func (m *Machine) Metrics() layout.Metrics {
	if m.view == ViewGrid {
		return layout.Grid(m.termW, m.termH, len(m.entries), m.layoutOpts)
	}
	return layout.List(m.termW, m.termH, len(m.entries), m.layoutOpts)
}

// Resize records new terminal dimensions and re-clamps everything that
// depends on them.
func (m *Machine) Resize(w, h int) {
	if w > 0 {
		m.termW = w
	}
	if h > 0 {
		m.termH = h
	}
	m.clampScroll()
	if g := m.gallery; g != nil {
		g.clampScroll(m.galleryRows())
	}
}

// ChangeDirectory replaces the listing wholesale. A listing failure
// leaves an empty directory with a visible notice instead of failing.
func (m *Machine) ChangeDirectory(path string) {
	m.dir = path
	m.selected = 0
	m.scroll = 0
	m.notice = ""
	m.disarm()
	entries, err := m.lister.List(path)
	if err != nil {
		m.entries = nil
		m.notice = "cannot read directory: " + err.Error()
		return
	}
	fsx.SortEntries(entries)
	m.entries = entries
}

// Refresh re-lists the current directory, keeping selection where it
// can.
func (m *Machine) Refresh() {
	sel := m.selected
	m.ChangeDirectory(m.dir)
	if sel < len(m.entries) {
		m.selected = sel
	}
	m.ensureVisible()
}

// MoveSelection steps the selection one slot in the given direction.
// Grid mode maps up/down to whole rows; list mode only moves
// vertically. Clamped, no wraparound.
func (m *Machine) MoveSelection(dir MoveDir) {
	if len(m.entries) == 0 {
		return
	}
	delta := 0
	cols := m.Metrics().Columns
	switch dir {
	case MoveUp:
		delta = -cols
	case MoveDown:
		delta = cols
	case MoveLeft:
		delta = -1
	case MoveRight:
		delta = 1
	}
	next := m.selected + delta
	if next < 0 {
		if dir == MoveUp || dir == MoveLeft {
			return
		}
		next = 0
	}
	if next >= len(m.entries) {
		if dir == MoveDown || dir == MoveRight {
			return
		}
		next = len(m.entries) - 1
	}
	m.selected = next
	m.ensureVisible()
}

// SelectIndex jumps straight to an entry (mouse click, g/G jumps).
func (m *Machine) SelectIndex(i int) {
	if len(m.entries) == 0 {
		return
	}
	if i < 0 {
		i = 0
	}
	if i >= len(m.entries) {
		i = len(m.entries) - 1
	}
	m.selected = i
	m.ensureVisible()
}

// ScrollBy moves the viewport by whole rows without chasing the
// selection; afterwards the selection is pulled into the visible
// range if it fell outside.
func (m *Machine) ScrollBy(rowDelta int) {
	met := m.Metrics()
	step := rowDelta
	if m.view == ViewGrid {
		step = rowDelta * met.Columns
	}
	m.scroll += step
	m.clampScroll()
	if len(m.entries) == 0 {
		return
	}
	met = m.Metrics()
	last := m.scroll + met.VisibleItemCount - 1
	if last > len(m.entries)-1 {
		last = len(m.entries) - 1
	}
	if m.selected < m.scroll {
		m.selected = m.scroll
	} else if m.selected > last {
		m.selected = last
	}
}

func (m *Machine) SetScrollMode(on bool) { m.scrollMode = on }

// ToggleViewMode flips between list and grid. Selection survives;
// scroll semantics differ between the modes so the offset resets.
func (m *Machine) ToggleViewMode() {
	if m.view == ViewList {
		m.view = ViewGrid
	} else {
		m.view = ViewList
	}
	m.scroll = 0
	m.ensureVisible()
}

// GoBack ascends to the parent directory. No-op at the root, where
// the parent is the directory itself.
func (m *Machine) GoBack() {
	parent := fsx.Parent(m.dir)
	if parent == m.dir {
		return
	}
	m.ChangeDirectory(parent)
}

// Activate implements the two-step open rule shared by Enter and left
// click: the first activation of an entry arms it, and a second one on
// the same entry inside the activation window performs the open.
// Returns true when an open actually happened.
func (m *Machine) Activate() bool {
	if len(m.entries) == 0 {
		return false
	}
	target := m.entries[m.selected]
	now := m.now()
	if m.armPath == target.Path && now.Sub(m.armAt) <= m.activationWindow {
		m.disarm()
		m.open(target)
		return true
	}
	m.armPath = target.Path
	m.armAt = now
	return false
}

func (m *Machine) disarm() {
	m.armPath = ""
	m.armAt = time.Time{}
}

func (m *Machine) open(target fsx.Entry) {
	if target.IsDir() {
		m.ChangeDirectory(target.Path)
		return
	}
	if target.IsMedia() {
		m.enterGallery(target.Path)
	}
}

// ensureVisible scrolls by the minimal amount that brings the
// selection back into the viewport.
func (m *Machine) ensureVisible() {
	met := m.Metrics()
	cols := met.Columns
	selRow := m.selected / cols
	firstRow := m.scroll / cols
	switch {
	case selRow < firstRow:
		m.scroll = selRow * cols
	case selRow >= firstRow+met.MaxVisibleRows:
		m.scroll = (selRow - met.MaxVisibleRows + 1) * cols
	}
	m.clampScroll()
}

func (m *Machine) clampScroll() {
	met := m.Metrics()
	if m.scroll > met.MaxScrollOffset {
		m.scroll = met.MaxScrollOffset
	}
	if m.scroll < 0 {
		m.scroll = 0
	}
}
