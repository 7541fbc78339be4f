// Package thumbs memoizes composed thumbnail grids per source path so
// a directory can be redrawn without re-decoding anything.
package thumbs

import (
	"github.com/every-moment-special/pixel-perfect/internal/cells"
	"github.com/every-moment-special/pixel-perfect/internal/log"
)

// DecodeFunc produces the pixel buffer for a path at the thumbnail
// target size. Supplied by the caller so the cache stays decoupled
// from the decoding service.
type DecodeFunc func(path string) (*cells.PixelBuffer, error)

// Cache maps absolute path to its composed grid. Unbounded and never
// invalidated for the life of the process: a file edited behind the
// browser keeps its old thumbnail. Simplicity over freshness.
type Cache struct {
	grids   map[string]cells.Grid
	opts    cells.ComposeOptions
	decodes int
}

func NewCache(opts cells.ComposeOptions) *Cache {
	return &Cache{grids: make(map[string]cells.Grid), opts: opts}
}

// GetOrCompose returns the cached grid for path, composing and storing
// it on first use. Decode failures are not cached; a later call may
// retry and succeed.
func (c *Cache) GetOrCompose(path string, decode DecodeFunc) (cells.Grid, error) {
	if g, ok := c.grids[path]; ok {
		return g, nil
	}
	buf, err := decode(path)
	if err != nil {
		return cells.Grid{}, err
	}
	c.decodes++
	g := cells.Compose(buf, c.opts)
	if g.Truncated {
		log.Warnf("thumbnail composition truncated at %d cells: %s", len(g.Cells), path)
	}
	c.grids[path] = g
	return g, nil
}

// Peek returns the cached grid without composing on a miss.
func (c *Cache) Peek(path string) (cells.Grid, bool) {
	g, ok := c.grids[path]
	return g, ok
}

func (c *Cache) Len() int { return len(c.grids) }

// Decodes counts compose passes actually performed, for tests and the
// debug log.
func (c *Cache) Decodes() int { return c.decodes }
