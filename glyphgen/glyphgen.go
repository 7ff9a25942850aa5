// Package glyphgen bootstraps a glyph directory by rasterizing characters from a
// TrueType/OpenType font into one "<char>.png" file per character.
//
// Each image is as wide as the glyph's advance and cropped vertically to its ink,
// which is how hand-drawn glyph sets are usually authored.
package glyphgen

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/ByLCY/spritefont/fonts"
	"github.com/ByLCY/spritefont/glyphset"
)

const (
	defaultSize = 32
	defaultDPI  = 72
)

// Options configures rasterization.
type Options struct {
	Font  string  // see fonts.Load; empty means the built-in font
	Size  float64 // points
	DPI   float64
	Color color.Color
}

func (o Options) withDefaults() Options {
	if o.Size <= 0 {
		o.Size = defaultSize
	}
	if o.DPI <= 0 {
		o.DPI = defaultDPI
	}
	if o.Color == nil {
		o.Color = color.Black
	}
	return o
}

// Result lists what Generate wrote and which characters the font could not provide.
type Result struct {
	Written []string
	Skipped []rune
}

// Generate writes "<char>.png" into dir for every character the font covers.
func Generate(dir, chars string, opts Options) (*Result, error) {
	opts = opts.withDefaults()
	data, err := fonts.Load(opts.Font)
	if err != nil {
		return nil, err
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("解析字体失败: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    opts.Size,
		DPI:     opts.DPI,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("创建字体面失败: %w", err)
	}
	defer face.Close()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("创建字形目录失败: %w", err)
	}

	res := &Result{}
	var buf sfnt.Buffer
	for _, ch := range glyphset.Characters(chars) {
		if idx, err := f.GlyphIndex(&buf, ch); err != nil || idx == 0 || !glyphset.Nameable(ch) {
			res.Skipped = append(res.Skipped, ch)
			continue
		}
		img, ok := Rasterize(face, ch, opts.Color)
		if !ok {
			res.Skipped = append(res.Skipped, ch)
			continue
		}
		path := filepath.Join(dir, glyphset.FileName(ch))
		if err := writePNG(path, img); err != nil {
			return nil, err
		}
		res.Written = append(res.Written, path)
	}
	return res, nil
}

// Rasterize draws ch with face into a new image sized to the glyph's advance and ink height.
// Glyphs without ink (such as space) get a single transparent row.
func Rasterize(face font.Face, ch rune, col color.Color) (*image.NRGBA, bool) {
	bounds, advance, ok := face.GlyphBounds(ch)
	if !ok {
		return nil, false
	}
	width := max(advance.Ceil(), (bounds.Max.X - min(bounds.Min.X, 0)).Ceil(), 1)
	top := bounds.Min.Y.Floor()
	height := bounds.Max.Y.Ceil() - top
	if height <= 0 {
		return image.NewNRGBA(image.Rect(0, 0, width, 1)), true
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.Point26_6{X: -min(bounds.Min.X, 0), Y: fixed.I(-top)},
	}
	d.DrawString(string(ch))
	return img, true
}

func writePNG(path string, img image.Image) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("写入字形 %s 失败: %w", path, err)
	}
	if err := png.Encode(file, img); err != nil {
		file.Close()
		return fmt.Errorf("编码字形 %s 失败: %w", path, err)
	}
	return file.Close()
}
