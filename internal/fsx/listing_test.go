package fsx

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirListerReadsRealDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "photo.png"), []byte("not a real png"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0o644))

	entries, err := DirLister{}.List(dir)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	byName := make(map[string]Entry, len(entries))
	for _, e := range entries {
		byName[e.Name] = e
	}
	assert.Equal(t, Directory, byName["nested"].Kind)
	assert.Equal(t, ".png", byName["photo.png"].Ext)
	assert.Equal(t, int64(14), byName["photo.png"].Size)
	assert.True(t, byName["photo.png"].IsMedia())
	assert.False(t, byName["notes.txt"].IsMedia())
}

func TestDirListerMissingDirectory(t *testing.T) {
	_, err := DirLister{}.List(filepath.Join(t.TempDir(), "gone"))
	var lerr *ListError
	require.ErrorAs(t, err, &lerr)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSortEntriesDirectoriesFirst(t *testing.T) {
	entries := []Entry{
		{Name: "zebra.png", Kind: File},
		{Name: "Apps", Kind: Directory},
		{Name: "alpha.png", Kind: File},
		{Name: "music", Kind: Directory},
	}
	SortEntries(entries)

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	assert.Equal(t, []string{"Apps", "music", "alpha.png", "zebra.png"}, names)
}

func TestSortEntriesCaseInsensitiveWithinGroup(t *testing.T) {
	entries := []Entry{
		{Name: "Banana.png", Kind: File},
		{Name: "apple.png", Kind: File},
		{Name: "cherry.png", Kind: File},
	}
	SortEntries(entries)
	assert.Equal(t, "apple.png", entries[0].Name)
	assert.Equal(t, "Banana.png", entries[1].Name)
	assert.Equal(t, "cherry.png", entries[2].Name)
}

func TestIsMediaExt(t *testing.T) {
	for _, ext := range []string{".jpg", ".JPG", ".jpeg", ".png", ".gif", ".webp", ".bmp", ".tif", ".tiff"} {
		assert.True(t, IsMediaExt(ext), ext)
	}
	for _, ext := range []string{"", ".txt", ".mp4", ".svg", ".go"} {
		assert.False(t, IsMediaExt(ext), ext)
	}
}

func TestParent(t *testing.T) {
	assert.Equal(t, "/pics", Parent("/pics/raw"))
	assert.Equal(t, "/", Parent("/"))
}
