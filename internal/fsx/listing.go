package fsx

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// ListError wraps a listing failure. Callers recover by showing an
// empty directory with a notice; it never aborts the program.
type ListError struct {
	Path string
	Err  error
}

func (e *ListError) Error() string { return fmt.Sprintf("list %s: %v", e.Path, e.Err) }
func (e *ListError) Unwrap() error { return e.Err }

// Lister is the directory-listing collaborator seen by the navigation
// state machine.
type Lister interface {
	List(path string) ([]Entry, error)
}

// DirLister lists real directories via the OS.
type DirLister struct{}

func (DirLister) List(path string) ([]Entry, error) {
	dirents, err := os.ReadDir(path)
	if err != nil {
		return nil, &ListError{Path: path, Err: err}
	}
	entries := make([]Entry, 0, len(dirents))
	for _, d := range dirents {
		e := Entry{
			Name: d.Name(),
			Path: filepath.Join(path, d.Name()),
		}
		if d.IsDir() {
			e.Kind = Directory
		} else {
			e.Kind = File
			e.Ext = strings.ToLower(filepath.Ext(d.Name()))
			if info, ierr := d.Info(); ierr == nil {
				e.Size = info.Size()
			}
		}
		entries = append(entries, e)
	}
	return entries, nil
}

var nameCollator = collate.New(localeTag(), collate.Loose)

func localeTag() language.Tag {
	for _, env := range []string{"LC_ALL", "LC_COLLATE", "LANG"} {
		v := os.Getenv(env)
		if v == "" || v == "C" || v == "POSIX" {
			continue
		}
		if i := strings.IndexAny(v, ".@"); i >= 0 {
			v = v[:i]
		}
		if tag, err := language.Parse(v); err == nil {
			return tag
		}
	}
	return language.English
}

// SortEntries orders directories before files, each group by
// locale-aware name comparison.
func SortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Kind != b.Kind {
			return a.Kind == Directory
		}
		return nameCollator.CompareString(a.Name, b.Name) < 0
	})
}
