package raster

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByLCY/spritefont/glyphset"
	"github.com/ByLCY/spritefont/glyphset/glyphtest"
	"github.com/ByLCY/spritefont/layout"
)

func scenarioGlyphs() []*glyphset.Glyph {
	var glyphs []*glyphset.Glyph
	for _, s := range glyphtest.Scenario() {
		glyphs = append(glyphs, glyphtest.Solid(s.Char, s.Width, s.Height, glyphtest.ColorFor(s.Char)))
	}
	return glyphs
}

var transparent = color.NRGBA{}

func TestComposeAtlasPlacesGlyphs(t *testing.T) {
	plan, err := layout.Atlas(scenarioGlyphs(), layout.Options{BottomPadding: 2})
	require.NoError(t, err)

	img, err := NewRenderer().Compose(plan)
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 40, 14), img.Bounds())

	// '1' 宽 8，占用单元格 [10,20)，其余两列保持透明。
	assert.Equal(t, glyphtest.ColorFor('1'), img.NRGBAAt(10, 0))
	assert.Equal(t, glyphtest.ColorFor('1'), img.NRGBAAt(17, 11))
	assert.Equal(t, transparent, img.NRGBAAt(18, 0))
	assert.Equal(t, transparent, img.NRGBAAt(10, 12), "padding band under digits stays empty")

	// 逗号贴底：y ∈ [8,14)
	assert.Equal(t, transparent, img.NRGBAAt(20, 7))
	assert.Equal(t, glyphtest.ColorFor(','), img.NRGBAAt(20, 8))
	assert.Equal(t, glyphtest.ColorFor(','), img.NRGBAAt(23, 13))

	// 句号在留白之上：y ∈ [8,12)
	assert.Equal(t, glyphtest.ColorFor('.'), img.NRGBAAt(30, 11))
	assert.Equal(t, transparent, img.NRGBAAt(30, 12))
}

func TestComposePreviewTruncates(t *testing.T) {
	plan, err := layout.Preview(scenarioGlyphs(), layout.Options{Spacing: layout.Spacing{'0': 6}})
	require.NoError(t, err)

	img, err := NewRenderer().Compose(plan)
	require.NoError(t, err)
	require.Equal(t, 6+8+4+4, img.Bounds().Dx())

	assert.Equal(t, glyphtest.ColorFor('0'), img.NRGBAAt(5, 0))
	assert.Equal(t, glyphtest.ColorFor('1'), img.NRGBAAt(6, 0), "next glyph starts right after the narrowed advance")
	assert.Equal(t, glyphtest.ColorFor('.'), img.NRGBAAt(21, 11))
}

func TestComposeWideAdvanceLeavesGap(t *testing.T) {
	plan, err := layout.Preview(scenarioGlyphs(), layout.Options{Spacing: layout.Spacing{'.': 9}})
	require.NoError(t, err)

	img, err := NewRenderer().Compose(plan)
	require.NoError(t, err)
	assert.Equal(t, 10+8+4+9, img.Bounds().Dx())
	assert.Equal(t, glyphtest.ColorFor('.'), img.NRGBAAt(25, 11))
	assert.Equal(t, transparent, img.NRGBAAt(26, 11))
	assert.Equal(t, transparent, img.NRGBAAt(30, 11))
}

func TestBlitOverwritesWithoutBlending(t *testing.T) {
	dst := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	dst.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	dst.SetNRGBA(1, 0, color.NRGBA{R: 255, A: 255})

	faint := color.NRGBA{R: 7, G: 200, B: 250, A: 1}
	g := glyphtest.Solid('a', 2, 1, faint)
	g.Image.SetNRGBA(1, 0, transparent)

	Blit(dst, layout.Placement{Glyph: g, CopyWidth: 2})
	assert.Equal(t, faint, dst.NRGBAAt(0, 0))
	assert.Equal(t, transparent, dst.NRGBAAt(1, 0))
}

func TestBlitClipsToCanvas(t *testing.T) {
	dst := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	g := glyphtest.Solid('A', 3, 6, color.NRGBA{B: 255, A: 255})

	assert.NotPanics(t, func() {
		Blit(dst, layout.Placement{Glyph: g, X: 2, Y: -3, CopyWidth: 3})
		Blit(dst, layout.Placement{Glyph: g, X: 4, Y: 0, CopyWidth: 3})
	})
	assert.Equal(t, color.NRGBA{B: 255, A: 255}, dst.NRGBAAt(3, 0))
	assert.Equal(t, color.NRGBA{B: 255, A: 255}, dst.NRGBAAt(2, 2))
	assert.Equal(t, transparent, dst.NRGBAAt(2, 3))
}

func TestRenderEncodesPNG(t *testing.T) {
	plan, err := layout.Atlas(scenarioGlyphs(), layout.Options{BottomPadding: 2})
	require.NoError(t, err)

	data, err := NewRendererWithOptions(Options{Compression: png.BestCompression}).Render(plan)
	require.NoError(t, err)

	decoded, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 40, decoded.Bounds().Dx())
	assert.Equal(t, 14, decoded.Bounds().Dy())
}

func TestRenderEmptyCanvasFails(t *testing.T) {
	plan, err := layout.Preview(scenarioGlyphs(), layout.Options{Spacing: layout.Spacing{'0': 0, '1': 0, ',': 0, '.': 0}})
	require.NoError(t, err)
	_, err = NewRenderer().Render(plan)
	assert.Error(t, err)
}
