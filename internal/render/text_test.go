package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateMiddle(t *testing.T) {
	assert.Equal(t, "short.png", truncateMiddle("short.png", 20))
	got := truncateMiddle("a-very-long-photo-name.png", 12)
	assert.LessOrEqual(t, dispWidth(got), 12)
	assert.Contains(t, got, "...")
	assert.Equal(t, "", truncateMiddle("anything", 0))
}

func TestTruncateMiddleSanitizes(t *testing.T) {
	got := truncateMiddle("bad\x1b[31mname", 40)
	assert.NotContains(t, got, "\x1b")
}

func TestPadRight(t *testing.T) {
	assert.Equal(t, "ab   ", padRight("ab", 5))
	assert.Equal(t, "abc", padRight("abcdef", 3))
	assert.Equal(t, "abc", padRight("abc", 3))
}

func TestHumanSize(t *testing.T) {
	assert.Equal(t, "0B", humanSize(0))
	assert.Equal(t, "999B", humanSize(999))
	assert.Equal(t, "2.0K", humanSize(2048))
	assert.Equal(t, "1.5M", humanSize(3<<20/2))
	assert.Equal(t, "1.0G", humanSize(1<<30))
}

func TestWrapLines(t *testing.T) {
	lines := wrapLines("abcdefgh", 3, 2)
	assert.Len(t, lines, 2)
	assert.Equal(t, "abc", lines[0])
	// Leftover collapses into the last line with an ellipsis.
	assert.LessOrEqual(t, dispWidth(lines[1]), 3)

	assert.Equal(t, []string{"ab"}, wrapLines("ab", 10, 3))
	assert.Empty(t, wrapLines("", 10, 3))
}
