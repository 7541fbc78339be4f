package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadFileMissingGivesDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 500*time.Millisecond, cfg.ActivationWindow())
	assert.Equal(t, 50*time.Millisecond, cfg.ResizeDebounce())
	assert.False(t, cfg.Watch.Disabled)
}

func TestLoadFileMergesOverDefaults(t *testing.T) {
	path := writeConfig(t, `
grid:
  tile_width: 48
render:
  palette: "256"
watch:
  disabled: true
debug_log: /tmp/pp.log
`)
	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 48, cfg.Grid.TileWidth)
	assert.Equal(t, "256", cfg.Render.Palette)
	assert.True(t, cfg.Watch.Disabled)
	assert.Equal(t, "/tmp/pp.log", cfg.DebugLog)

	// Unset fields keep their defaults.
	assert.Equal(t, 2, cfg.Grid.Gap)
	assert.Equal(t, 32, cfg.Grid.ThumbPixels)
	assert.Equal(t, 100000, cfg.Render.MaxCells)
	assert.Equal(t, 500, cfg.Input.ActivationWindowMS)
}

func TestLoadFileRejectsBadPalette(t *testing.T) {
	path := writeConfig(t, "render:\n  palette: sepia\n")
	_, err := LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "palette")
}

func TestLoadFileRejectsTinyTiles(t *testing.T) {
	path := writeConfig(t, "grid:\n  tile_width: 4\n")
	_, err := LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tile_width")
}

func TestLoadFileRejectsMalformedYAML(t *testing.T) {
	path := writeConfig(t, "grid: [not: a map\n")
	_, err := LoadFile(path)
	require.Error(t, err)
}

func TestValidateDirectly(t *testing.T) {
	cfg := Default()
	cfg.Grid.ThumbPixels = 2
	assert.Error(t, cfg.Validate())

	cfg = Default()
	assert.NoError(t, cfg.Validate())
}
