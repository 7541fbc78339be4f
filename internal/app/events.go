package app

import (
	"github.com/every-moment-special/pixel-perfect/internal/input"
	"github.com/every-moment-special/pixel-perfect/internal/nav"
)

// handleEvent routes one decoded event by machine mode. The mode tag
// decides the routing; gallery input never leaks into browsing state
// and vice versa.
func (a *App) handleEvent(ev input.Event) {
	if a.machine.Mode() == nav.ModeGallery {
		a.handleGalleryEvent(ev)
		return
	}
	a.handleBrowseEvent(ev)
}

func (a *App) handleBrowseEvent(ev input.Event) {
	switch e := ev.(type) {
	case input.KeyEvent:
		a.handleBrowseKey(e)
	case input.MouseEvent:
		a.handleBrowseMouse(e)
	}
}

func (a *App) handleBrowseKey(e input.KeyEvent) {
	awaitedG := a.awaitG
	a.awaitG = false

	switch e.Key {
	case input.KeyEscape:
		a.quit = true
	case input.KeyCtrl:
		if e.Rune == 'c' {
			a.quit = true
		}
	case input.KeyUp:
		a.moveOrScroll(nav.MoveUp, -1)
	case input.KeyDown:
		a.moveOrScroll(nav.MoveDown, 1)
	case input.KeyLeft:
		a.machine.MoveSelection(nav.MoveLeft)
	case input.KeyRight:
		a.machine.MoveSelection(nav.MoveRight)
	case input.KeyPageUp:
		a.machine.ScrollBy(-a.machine.Metrics().MaxVisibleRows)
	case input.KeyPageDown:
		a.machine.ScrollBy(a.machine.Metrics().MaxVisibleRows)
	case input.KeyEnter:
		a.activate()
	case input.KeyBackspace:
		a.machine.GoBack()
	case input.KeyRune:
		switch e.Rune {
		case 'q':
			a.quit = true
		case 'k':
			a.moveOrScroll(nav.MoveUp, -1)
		case 'j':
			a.moveOrScroll(nav.MoveDown, 1)
		case 'h':
			a.machine.MoveSelection(nav.MoveLeft)
		case 'l':
			a.machine.MoveSelection(nav.MoveRight)
		case 'v':
			a.machine.ToggleViewMode()
		case 's':
			a.machine.SetScrollMode(!a.machine.ScrollMode())
		case 'r':
			a.machine.Refresh()
		case 'G':
			a.machine.SelectIndex(len(a.machine.Entries()) - 1)
		case 'g':
			if awaitedG {
				a.machine.SelectIndex(0)
			} else {
				a.awaitG = true
			}
		}
	}
}

func (a *App) moveOrScroll(dir nav.MoveDir, rowDelta int) {
	if a.machine.ScrollMode() {
		a.machine.ScrollBy(rowDelta)
		return
	}
	a.machine.MoveSelection(dir)
}

// activate runs the debounced open under the reentrancy guard: an
// in-flight activation (which may sit in a decode) swallows further
// activations instead of interleaving them.
func (a *App) activate() {
	if a.activating {
		return
	}
	a.activating = true
	a.machine.Activate()
	a.activating = false
}

func (a *App) handleBrowseMouse(e input.MouseEvent) {
	switch e.Kind {
	case input.MouseScrollUp:
		a.machine.ScrollBy(-1)
	case input.MouseScrollDown:
		a.machine.ScrollBy(1)
	case input.MousePress:
		if e.Button != input.ButtonLeft {
			return
		}
		idx, ok := a.hitTest(e.X, e.Y)
		if !ok {
			return
		}
		a.machine.SelectIndex(idx)
		a.activate()
	}
}

// hitTest maps terminal coordinates to an entry index under the
// current layout, or reports a miss for gaps and chrome.
func (a *App) hitTest(x, y int) (int, bool) {
	entries := a.machine.Entries()
	if len(entries) == 0 {
		return 0, false
	}
	met := a.machine.Metrics()
	contentY := 2 // below the header line
	if y < contentY || y >= contentY+met.MaxVisibleRows*met.TileHeight {
		return 0, false
	}
	row := (y - contentY) / met.TileHeight
	col := 0
	if a.machine.View() == nav.ViewGrid {
		contentX := 2
		if x < contentX {
			return 0, false
		}
		step := met.TileWidth + met.Gap
		col = (x - contentX) / step
		if col >= met.Columns || (x-contentX)%step >= met.TileWidth {
			return 0, false
		}
	}
	firstRow := a.machine.Scroll() / met.Columns
	idx := (firstRow+row)*met.Columns + col
	if idx >= len(entries) {
		return 0, false
	}
	return idx, true
}

func (a *App) handleGalleryEvent(ev input.Event) {
	switch e := ev.(type) {
	case input.KeyEvent:
		switch e.Key {
		case input.KeyEscape:
			a.machine.ExitGallery()
		case input.KeyCtrl:
			if e.Rune == 'c' {
				a.quit = true
			}
		case input.KeyLeft:
			a.machine.GalleryMove(-1)
		case input.KeyRight:
			a.machine.GalleryMove(1)
		case input.KeyUp:
			a.machine.GalleryScroll(-1)
		case input.KeyDown:
			a.machine.GalleryScroll(1)
		case input.KeyPageUp:
			a.machine.GalleryScroll(-(a.h - 2))
		case input.KeyPageDown:
			a.machine.GalleryScroll(a.h - 2)
		case input.KeyRune:
			switch e.Rune {
			case 'q':
				a.machine.ExitGallery()
			case 'h':
				a.machine.GalleryMove(-1)
			case 'l':
				a.machine.GalleryMove(1)
			case 'k':
				a.machine.GalleryScroll(-1)
			case 'j':
				a.machine.GalleryScroll(1)
			}
		}
	case input.MouseEvent:
		switch e.Kind {
		case input.MouseScrollUp:
			a.machine.GalleryScroll(-1)
		case input.MouseScrollDown:
			a.machine.GalleryScroll(1)
		}
	}
}
