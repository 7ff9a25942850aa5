package glyphset

import (
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"io/fs"
	"os"
	"path/filepath"
	"unicode/utf8"

	"golang.org/x/image/draw"
	"golang.org/x/text/unicode/norm"
)

// 该文件负责按 "<字符>.png" 约定从目录读取字形图片。

// Policy 决定缺失字形时的处理方式：图集模式直接失败，预览模式跳过。
type Policy int

const (
	FailOnMissing Policy = iota
	SkipMissing
)

// Glyph 是单个字符解码后的位图，像素为非预乘 RGBA，原点固定在 (0,0)。
// 创建后不再修改。
type Glyph struct {
	Char  rune
	Image *image.NRGBA
}

func (g *Glyph) Width() int  { return g.Image.Bounds().Dx() }
func (g *Glyph) Height() int { return g.Image.Bounds().Dy() }

// CharacterInfo 是字形的只读描述，JSON 字段与前端约定保持一致。
type CharacterInfo struct {
	Character string `json:"character"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Spacing   int    `json:"spacing"`
	OffsetY   int    `json:"offsetY"`
}

// Info 派生字形的描述信息；默认步进等于字形宽度。
func (g *Glyph) Info() CharacterInfo {
	return CharacterInfo{
		Character: string(g.Char),
		Width:     g.Width(),
		Height:    g.Height(),
		Spacing:   g.Width(),
	}
}

// Set 保存一次加载的结果，Glyphs 按请求顺序排列（跳过的字符不在其中）。
type Set struct {
	Glyphs    []*Glyph
	Missing   []rune
	MaxWidth  int
	MaxHeight int
}

// Infos returns the descriptive records of all loaded glyphs in request order.
func (s *Set) Infos() []CharacterInfo {
	infos := make([]CharacterInfo, 0, len(s.Glyphs))
	for _, g := range s.Glyphs {
		infos = append(infos, g.Info())
	}
	return infos
}

// Empty reports whether no glyph could be resolved.
func (s *Set) Empty() bool { return len(s.Glyphs) == 0 }

// FileName 返回字符对应的文件名，纯函数，不受任何全局配置影响。
func FileName(ch rune) string {
	return string(ch) + ".png"
}

// Characters 将请求的字符串拆分为字符序列。
// 单个码点按原样保留（U+212B 仍查找 "\u212b.png"，不会被替换成 U+00C5），
// 只有带组合符的多码点片段才按 NFC 合成，例如 "e\u0301" 得到 'é'。
func Characters(chars string) []rune {
	out := make([]rune, 0, len(chars))
	for len(chars) > 0 {
		n := norm.NFC.NextBoundaryInString(chars, true)
		if n <= 0 {
			n = len(chars)
		}
		seg := chars[:n]
		chars = chars[n:]
		if utf8.RuneCountInString(seg) == 1 {
			r, _ := utf8.DecodeRuneInString(seg)
			out = append(out, r)
			continue
		}
		out = append(out, []rune(norm.NFC.String(seg))...)
	}
	return out
}

// Character 将步进表的键解析为单个字符，规则与 Characters 相同。
func Character(key string) (rune, bool) {
	runes := Characters(key)
	if len(runes) != 1 {
		return 0, false
	}
	return runes[0], true
}

// Load 读取 dir 下 chars 中每个字符对应的字形图片。
func Load(dir string, chars string, policy Policy) (*Set, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrDirectoryNotFound, dir)
	}

	set := &Set{}
	for _, ch := range Characters(chars) {
		g, err := loadGlyph(dir, ch)
		if errors.Is(err, ErrMissingGlyph) && policy == SkipMissing {
			set.Missing = append(set.Missing, ch)
			continue
		}
		if err != nil {
			return nil, err
		}
		set.Glyphs = append(set.Glyphs, g)
		set.MaxWidth = max(set.MaxWidth, g.Width())
		set.MaxHeight = max(set.MaxHeight, g.Height())
	}
	return set, nil
}

func loadGlyph(dir string, ch rune) (*Glyph, error) {
	if !Nameable(ch) {
		return nil, &MissingGlyphError{Char: ch}
	}
	path := filepath.Join(dir, FileName(ch))
	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &MissingGlyphError{Char: ch}
	}
	if err != nil {
		return nil, &DecodeError{Char: ch, Err: err}
	}
	defer file.Close()

	src, _, err := image.Decode(file)
	if err != nil {
		return nil, &DecodeError{Char: ch, Err: err}
	}
	return &Glyph{Char: ch, Image: toNRGBA(src)}, nil
}

// Nameable 过滤无法作为文件名的字符（路径分隔符、NUL 等）。
func Nameable(ch rune) bool {
	return ch != 0 && ch != '/' && ch != filepath.Separator
}

// toNRGBA 把任意解码结果转换为原点在 (0,0) 的 NRGBA 缓冲。
func toNRGBA(src image.Image) *image.NRGBA {
	b := src.Bounds()
	if n, ok := src.(*image.NRGBA); ok && b.Min == (image.Point{}) {
		return n
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}
