package nav

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/every-moment-special/pixel-perfect/internal/cells"
	"github.com/every-moment-special/pixel-perfect/internal/fsx"
)

type fakeLister struct {
	dirs  map[string][]fsx.Entry
	err   error
	calls int
}

func (f *fakeLister) List(path string) ([]fsx.Entry, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	entries, ok := f.dirs[path]
	if !ok {
		return nil, &fsx.ListError{Path: path, Err: errors.New("no such directory")}
	}
	out := make([]fsx.Entry, len(entries))
	copy(out, entries)
	return out, nil
}

func file(dir, name string) fsx.Entry {
	return fsx.Entry{
		Name: name,
		Path: filepath.Join(dir, name),
		Kind: fsx.File,
		Ext:  filepath.Ext(name),
	}
}

func subdir(dir, name string) fsx.Entry {
	return fsx.Entry{Name: name, Path: filepath.Join(dir, name), Kind: fsx.Directory}
}

func noCompose(path string, targetW int) (cells.Grid, error) {
	return cells.Grid{}, nil
}

// fakeClock drives the activation debouncer deterministically.
type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func namesOf(entries []fsx.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func TestChangeDirectorySortsDirsFirstThenByName(t *testing.T) {
	lister := &fakeLister{dirs: map[string][]fsx.Entry{
		"/pics": {file("/pics", "b.txt"), file("/pics", "a.png"), subdir("/pics", "Sub")},
	}}
	m := New(lister, noCompose)
	m.ChangeDirectory("/pics")

	assert.Equal(t, []string{"Sub", "a.png", "b.txt"}, namesOf(m.Entries()))
	assert.Equal(t, 0, m.Selected())
	assert.Equal(t, 0, m.Scroll())
	assert.Empty(t, m.Notice())
}

func TestChangeDirectoryFailureYieldsEmptyListWithNotice(t *testing.T) {
	lister := &fakeLister{err: &fsx.ListError{Path: "/denied", Err: errors.New("permission denied")}}
	m := New(lister, noCompose)
	m.ChangeDirectory("/denied")

	assert.Empty(t, m.Entries())
	assert.NotEmpty(t, m.Notice())
	assert.Equal(t, ModeBrowsing, m.Mode())
}

// fourColumns returns a machine resized so the grid lays out exactly
// four columns.
func fourColumns(t *testing.T, n int) *Machine {
	t.Helper()
	entries := make([]fsx.Entry, 0, n)
	for i := 0; i < n; i++ {
		entries = append(entries, file("/d", fmt.Sprintf("item%02d.txt", i)))
	}
	lister := &fakeLister{dirs: map[string][]fsx.Entry{"/d": entries}}
	m := New(lister, noCompose)
	m.Resize(140, 60)
	m.ChangeDirectory("/d")
	require.Equal(t, 4, m.Metrics().Columns)
	return m
}

func TestMoveSelectionGrid(t *testing.T) {
	m := fourColumns(t, 10)

	m.SelectIndex(1)
	m.MoveSelection(MoveDown)
	assert.Equal(t, 5, m.Selected())

	m.SelectIndex(9)
	m.MoveSelection(MoveDown)
	assert.Equal(t, 9, m.Selected(), "clamped, no wraparound")

	m.MoveSelection(MoveRight)
	assert.Equal(t, 9, m.Selected())

	m.SelectIndex(0)
	m.MoveSelection(MoveUp)
	assert.Equal(t, 0, m.Selected())
	m.MoveSelection(MoveLeft)
	assert.Equal(t, 0, m.Selected())
}

func TestSelectionAlwaysInBounds(t *testing.T) {
	m := fourColumns(t, 7)
	moves := []MoveDir{MoveDown, MoveDown, MoveRight, MoveRight, MoveRight,
		MoveDown, MoveUp, MoveLeft, MoveDown, MoveDown, MoveRight}
	for _, mv := range moves {
		m.MoveSelection(mv)
		assert.GreaterOrEqual(t, m.Selected(), 0)
		assert.Less(t, m.Selected(), 7)
	}
}

func TestMoveSelectionEmptyDirectory(t *testing.T) {
	lister := &fakeLister{dirs: map[string][]fsx.Entry{"/empty": {}}}
	m := New(lister, noCompose)
	m.ChangeDirectory("/empty")
	assert.NotPanics(t, func() {
		m.MoveSelection(MoveDown)
		m.MoveSelection(MoveUp)
		m.ScrollBy(3)
		m.SelectIndex(5)
	})
}

func TestMoveSelectionScrollsIntoView(t *testing.T) {
	m := fourColumns(t, 40) // 10 rows, 3 visible
	require.Equal(t, 3, m.Metrics().MaxVisibleRows)

	// Walk down past the window; scroll follows by the minimal amount.
	for i := 0; i < 4; i++ {
		m.MoveSelection(MoveDown)
	}
	assert.Equal(t, 16, m.Selected())
	// Selection is on row 4; a 3-row window starting at row 2 is the
	// smallest adjustment that shows it.
	assert.Equal(t, 8, m.Scroll())

	// Walking back up pulls the window the other way.
	for i := 0; i < 4; i++ {
		m.MoveSelection(MoveUp)
	}
	assert.Equal(t, 0, m.Selected())
	assert.Equal(t, 0, m.Scroll())
}

func TestScrollByMovesWindowAndClampsSelection(t *testing.T) {
	m := fourColumns(t, 40)
	m.ScrollBy(2)
	assert.Equal(t, 8, m.Scroll())
	// Selection 0 fell above the window; pulled to first visible.
	assert.Equal(t, 8, m.Selected())

	m.ScrollBy(-100)
	assert.Equal(t, 0, m.Scroll())

	m.ScrollBy(1000)
	assert.Equal(t, m.Metrics().MaxScrollOffset, m.Scroll())
}

func TestToggleViewModeResetsScrollKeepsSelection(t *testing.T) {
	m := fourColumns(t, 40)
	m.SelectIndex(17)
	require.Equal(t, ViewGrid, m.View())

	m.ToggleViewMode()
	assert.Equal(t, ViewList, m.View())
	assert.Equal(t, 17, m.Selected())

	m.ToggleViewMode()
	assert.Equal(t, ViewGrid, m.View())
	assert.Equal(t, 17, m.Selected())
}

func TestGoBackAtRootIsNoop(t *testing.T) {
	lister := &fakeLister{dirs: map[string][]fsx.Entry{"/": {subdir("/", "home")}}}
	m := New(lister, noCompose)
	m.ChangeDirectory("/")
	calls := lister.calls
	m.GoBack()
	assert.Equal(t, "/", m.Dir())
	assert.Equal(t, calls, lister.calls)
}

func TestGoBackAscends(t *testing.T) {
	lister := &fakeLister{dirs: map[string][]fsx.Entry{
		"/a":   {subdir("/a", "b")},
		"/a/b": {file("/a/b", "x.png")},
	}}
	m := New(lister, noCompose)
	m.ChangeDirectory("/a/b")
	m.GoBack()
	assert.Equal(t, "/a", m.Dir())
}

func TestActivateDebounce(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	lister := &fakeLister{dirs: map[string][]fsx.Entry{
		"/d":     {subdir("/d", "Sub")},
		"/d/Sub": {},
	}}
	m := New(lister, noCompose, WithClock(clock.now))
	m.ChangeDirectory("/d")
	listCalls := lister.calls

	// Two activations inside the window: exactly one directory change.
	assert.False(t, m.Activate(), "first activation only arms")
	assert.Equal(t, "/d", m.Dir())
	clock.advance(400 * time.Millisecond)
	assert.True(t, m.Activate())
	assert.Equal(t, "/d/Sub", m.Dir())
	assert.Equal(t, listCalls+1, lister.calls)
}

func TestActivateWindowExpiry(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	lister := &fakeLister{dirs: map[string][]fsx.Entry{
		"/d":     {subdir("/d", "Sub")},
		"/d/Sub": {},
	}}
	m := New(lister, noCompose, WithClock(clock.now))
	m.ChangeDirectory("/d")

	// 600ms apart: each call independently arms, nothing opens.
	assert.False(t, m.Activate())
	clock.advance(600 * time.Millisecond)
	assert.False(t, m.Activate())
	assert.Equal(t, "/d", m.Dir())

	// The second arming is still live: confirming it now opens.
	clock.advance(100 * time.Millisecond)
	assert.True(t, m.Activate())
	assert.Equal(t, "/d/Sub", m.Dir())
}

func TestActivateDifferentTargetRearms(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	lister := &fakeLister{dirs: map[string][]fsx.Entry{
		"/d":     {subdir("/d", "One"), subdir("/d", "Two")},
		"/d/Two": {},
	}}
	m := New(lister, noCompose, WithClock(clock.now))
	m.ChangeDirectory("/d")

	assert.False(t, m.Activate()) // arms "One"
	m.SelectIndex(1)
	clock.advance(100 * time.Millisecond)
	assert.False(t, m.Activate()) // different target: re-arms
	clock.advance(100 * time.Millisecond)
	assert.True(t, m.Activate())
	assert.Equal(t, "/d/Two", m.Dir())
}

func TestActivateNonMediaFileDoesNothing(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	lister := &fakeLister{dirs: map[string][]fsx.Entry{
		"/d": {file("/d", "notes.txt")},
	}}
	m := New(lister, noCompose, WithClock(clock.now))
	m.ChangeDirectory("/d")

	assert.False(t, m.Activate())
	clock.advance(100 * time.Millisecond)
	assert.True(t, m.Activate())
	assert.Equal(t, ModeBrowsing, m.Mode())
}

func TestRefreshKeepsSelection(t *testing.T) {
	m := fourColumns(t, 10)
	m.SelectIndex(6)
	m.Refresh()
	assert.Equal(t, 6, m.Selected())
}
