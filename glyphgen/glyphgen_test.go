package glyphgen

import (
	"image/color"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByLCY/spritefont/glyphset"
)

func TestGenerateWritesLoadableGlyphs(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "glyphs")

	res, err := Generate(dir, "01,.", Options{Size: 24, Color: color.White})
	require.NoError(t, err)
	assert.Len(t, res.Written, 4)
	assert.Empty(t, res.Skipped)

	set, err := glyphset.Load(dir, "01,.", glyphset.FailOnMissing)
	require.NoError(t, err)
	byChar := map[rune]*glyphset.Glyph{}
	for _, g := range set.Glyphs {
		byChar[g.Char] = g
	}
	assert.Greater(t, byChar['0'].Height(), byChar['.'].Height(), "period is cropped to its ink")
	for _, g := range set.Glyphs {
		assert.Positive(t, g.Width(), "width of %q", g.Char)
	}
}

func TestGenerateSkipsUncoveredAndUnnameable(t *testing.T) {
	res, err := Generate(t.TempDir(), "a/\U0001F600", Options{})
	require.NoError(t, err)
	assert.Len(t, res.Written, 1)
	assert.Equal(t, []rune{'/', '\U0001F600'}, res.Skipped)
}

func TestGenerateUnknownFont(t *testing.T) {
	_, err := Generate(t.TempDir(), "a", Options{Font: "no-such-font-4711.ttf"})
	assert.Error(t, err)
}
