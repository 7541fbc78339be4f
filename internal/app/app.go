// Package app runs the event loop: one input, resize, or filesystem
// event at a time, handled to completion before the next is accepted.
// There is no parallel state mutation anywhere above this package.
package app

import (
	"os"
	"os/signal"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sys/unix"

	"github.com/every-moment-special/pixel-perfect/internal/cells"
	"github.com/every-moment-special/pixel-perfect/internal/config"
	"github.com/every-moment-special/pixel-perfect/internal/fsx"
	"github.com/every-moment-special/pixel-perfect/internal/imagedec"
	"github.com/every-moment-special/pixel-perfect/internal/input"
	"github.com/every-moment-special/pixel-perfect/internal/layout"
	"github.com/every-moment-special/pixel-perfect/internal/log"
	"github.com/every-moment-special/pixel-perfect/internal/nav"
	"github.com/every-moment-special/pixel-perfect/internal/render"
	"github.com/every-moment-special/pixel-perfect/internal/term"
	"github.com/every-moment-special/pixel-perfect/internal/thumbs"
)

type App struct {
	cfg      *config.Config
	machine  *nav.Machine
	renderer *render.Renderer
	decoder  input.Decoder

	svc         imagedec.FileService
	composeOpts cells.ComposeOptions

	w, h int

	// Reentrancy guard: activation handling may block on a decode, and
	// no second activation may run while one is in flight.
	activating bool
	awaitG     bool
	quit       bool
}

func New(cfg *config.Config) *App {
	a := &App{cfg: cfg}
	a.machine = nav.New(fsx.DirLister{}, a.composeFull,
		nav.WithActivationWindow(cfg.ActivationWindow()),
		nav.WithLayoutOptions(layout.Options{
			TileWidth: cfg.Grid.TileWidth,
			Gap:       cfg.Grid.Gap,
			ThumbRows: cfg.Grid.ThumbPixels / 2,
			Reserved:  render.ReservedLines,
		}),
	)
	return a
}

// composeFull produces the full-viewport grid for a gallery image.
func (a *App) composeFull(path string, targetW int) (cells.Grid, error) {
	buf, err := a.svc.Decode(path, targetW, 0)
	if err != nil {
		return cells.Grid{}, err
	}
	g := cells.Compose(buf, a.composeOpts)
	if g.Truncated {
		log.Warnf("composition truncated at %d cells: %s", len(g.Cells), path)
	}
	return g, nil
}

func (a *App) thumbDecode(path string) (*cells.PixelBuffer, error) {
	return a.svc.Decode(path, a.cfg.Grid.ThumbPixels, 0)
}

// palette resolves the configured palette. The auto probe writes a
// query and reads the reply off stdin, so it may only run once the
// terminal is in raw mode; under canonical mode the reply would sit
// line-buffered and later leak into the input stream as keystrokes.
func (a *App) palette() cells.Palette {
	switch a.cfg.Render.Palette {
	case "256":
		return cells.ANSI256
	case "truecolor":
		return cells.Truecolor
	}
	if term.Truecolor(75 * time.Millisecond) {
		return cells.Truecolor
	}
	return cells.ANSI256
}

// Run takes over the terminal until the user quits. The raw-mode
// handle is restored on every exit path, panics included.
func (a *App) Run(startDir string) error {
	handle, err := term.Enter(os.Stdin, os.Stdout)
	if err != nil {
		return err
	}
	defer handle.Restore()

	a.composeOpts = cells.ComposeOptions{Palette: a.palette(), MaxCells: a.cfg.Render.MaxCells}
	a.renderer = render.New(os.Stdout, thumbs.NewCache(a.composeOpts), a.thumbDecode)

	a.w, a.h = term.Size(os.Stdout)
	a.machine.Resize(a.w, a.h)
	a.machine.ChangeDirectory(startDir)

	inputCh := make(chan []byte, 8)
	go readInput(os.Stdin, inputCh)

	winch := make(chan os.Signal, 1)
	signal.Notify(winch, unix.SIGWINCH)
	defer signal.Stop(winch)

	// Resize bursts coalesce into one relayout.
	resizeTimer := time.NewTimer(0)
	if !resizeTimer.Stop() {
		<-resizeTimer.C
	}
	refreshTimer := time.NewTimer(0)
	if !refreshTimer.Stop() {
		<-refreshTimer.C
	}

	var watchCh chan fsnotify.Event
	var watcher *fsnotify.Watcher
	watchedDir := ""
	if !a.cfg.Watch.Disabled {
		if w, werr := fsnotify.NewWatcher(); werr == nil {
			watcher = w
			watchCh = make(chan fsnotify.Event, 16)
			go forwardWatch(w, watchCh)
			defer w.Close()
		} else {
			log.Warnf("watcher unavailable: %v", werr)
		}
	}

	a.render()
	for !a.quit {
		if watcher != nil && a.machine.Dir() != watchedDir {
			if watchedDir != "" {
				_ = watcher.Remove(watchedDir)
			}
			watchedDir = a.machine.Dir()
			if err := watcher.Add(watchedDir); err != nil {
				log.Debugf("watch %s: %v", watchedDir, err)
			}
		}

		select {
		case chunk, ok := <-inputCh:
			if !ok {
				a.quit = true
				break
			}
			for _, ev := range a.decoder.Feed(chunk) {
				a.handleEvent(ev)
				if a.quit {
					break
				}
			}
			// Queued gallery moves have settled; decode once for the
			// final index.
			a.settleGallery()
		case <-winch:
			resetTimer(resizeTimer, a.cfg.ResizeDebounce())
			continue
		case <-resizeTimer.C:
			a.w, a.h = term.Size(os.Stdout)
			a.machine.Resize(a.w, a.h)
			a.machine.InvalidateGallery()
			a.settleGallery()
		case <-watchCh:
			resetTimer(refreshTimer, 200*time.Millisecond)
			continue
		case <-refreshTimer.C:
			if a.machine.Mode() == nav.ModeBrowsing {
				a.machine.Refresh()
			}
		}
		a.render()
	}
	return nil
}

func (a *App) render() {
	a.renderer.Frame(a.machine, a.w, a.h)
}

func (a *App) settleGallery() {
	if a.machine.Mode() == nav.ModeGallery {
		a.machine.LoadGalleryImage()
	}
}

func readInput(f *os.File, ch chan<- []byte) {
	buf := make([]byte, 256)
	for {
		n, err := f.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			ch <- chunk
		}
		if err != nil {
			close(ch)
			return
		}
	}
}

func forwardWatch(w *fsnotify.Watcher, ch chan<- fsnotify.Event) {
	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			select {
			case ch <- ev:
			default:
			}
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			log.Debugf("watch error: %v", err)
		}
	}
}

func resetTimer(t *time.Timer, d time.Duration) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
	t.Reset(d)
}
