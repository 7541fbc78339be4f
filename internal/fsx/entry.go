// Package fsx lists directories for the browser. It is the only part
// of the program that touches directory structure; everything above it
// works on Entry values.
package fsx

import (
	"path/filepath"
	"strings"
)

type Kind int

const (
	Directory Kind = iota
	File
)

// Entry is a single directory member. Listings are rebuilt wholesale
// on every change of directory; entries are never mutated in place.
type Entry struct {
	Name string
	Path string
	Kind Kind
	Size int64
	Ext  string // lowercase, with dot, files only
}

func (e Entry) IsDir() bool { return e.Kind == Directory }

// IsMedia reports whether the entry is an image the viewer can open.
func (e Entry) IsMedia() bool { return e.Kind == File && IsMediaExt(e.Ext) }

func IsMediaExt(ext string) bool {
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp", ".bmp", ".tif", ".tiff":
		return true
	default:
		return false
	}
}

// Parent returns the directory above path, or path itself at the
// filesystem root.
func Parent(path string) string {
	return filepath.Dir(path)
}
