// Package glyphtest builds glyph directories on disk for tests.
package glyphtest

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/ByLCY/spritefont/glyphset"
)

// Fixture describes a solid glyph written to disk.
type Fixture struct {
	Char   rune
	Width  int
	Height int
	Color  color.NRGBA
}

// Solid returns a width×height glyph filled with c.
func Solid(ch rune, w, h int, c color.NRGBA) *glyphset.Glyph {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return &glyphset.Glyph{Char: ch, Image: img}
}

// ColorFor derives a distinct opaque color per character so placements can be told apart.
func ColorFor(ch rune) color.NRGBA {
	return color.NRGBA{R: uint8(ch * 37), G: uint8(ch * 91), B: uint8(ch*13) | 1, A: 255}
}

// WriteDir writes each fixture as "<char>.png" into a fresh temp directory and returns it.
func WriteDir(t testing.TB, fixtures ...Fixture) string {
	t.Helper()
	dir := t.TempDir()
	for _, s := range fixtures {
		c := s.Color
		if c == (color.NRGBA{}) {
			c = ColorFor(s.Char)
		}
		WriteGlyph(t, dir, Solid(s.Char, s.Width, s.Height, c))
	}
	return dir
}

// WriteGlyph encodes g as PNG into dir.
func WriteGlyph(t testing.TB, dir string, g *glyphset.Glyph) {
	t.Helper()
	f, err := os.Create(filepath.Join(dir, glyphset.FileName(g.Char)))
	if err != nil {
		t.Fatalf("create glyph %q: %v", g.Char, err)
	}
	defer f.Close()
	if err := png.Encode(f, g.Image); err != nil {
		t.Fatalf("encode glyph %q: %v", g.Char, err)
	}
}

// Scenario is the four-glyph set used across packages: two digits, a comma and a period.
func Scenario() []Fixture {
	return []Fixture{
		{Char: '0', Width: 10, Height: 12},
		{Char: '1', Width: 8, Height: 12},
		{Char: ',', Width: 4, Height: 6},
		{Char: '.', Width: 4, Height: 4},
	}
}
