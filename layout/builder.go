package layout

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/ByLCY/spritefont/glyphset"
)

var (
	// ErrNoGlyphs 表示没有任何可布局的字形。
	ErrNoGlyphs = errors.New("layout: no glyphs to lay out")
	// ErrInvalidOptions 表示留白或步进为负数。
	ErrInvalidOptions = errors.New("layout: invalid options")
)

// TallGlyphError is returned under CenterStrict when a glyph is taller than the digit band.
type TallGlyphError struct {
	Char        rune
	Height      int
	DigitHeight int
}

func (e *TallGlyphError) Error() string {
	return fmt.Sprintf("layout: glyph %q is %dpx tall, taller than the digit band (%dpx)", e.Char, e.Height, e.DigitHeight)
}

// Atlas 计算固定单元格图集的布局：每个字符占用一个最宽字形宽度的单元格。
func Atlas(glyphs []*glyphset.Glyph, opts Options) (*Plan, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if len(glyphs) == 0 {
		return nil, ErrNoGlyphs
	}

	cell := 0
	for _, g := range glyphs {
		cell = max(cell, g.Width())
	}
	plan := newPlan(ModeAtlas, glyphs, opts)
	plan.CellWidth = cell
	plan.Width = cell * len(glyphs)

	for i, g := range glyphs {
		y, err := verticalOrigin(g, plan, opts.Center)
		if err != nil {
			return nil, err
		}
		plan.Placements = append(plan.Placements, Placement{
			Char:      g.Char,
			Character: string(g.Char),
			Glyph:     g,
			X:         i * cell,
			Y:         y,
			Width:     g.Width(),
			Height:    g.Height(),
			CopyWidth: g.Width(),
			Advance:   opts.Spacing.Advance(g.Char, g.Width()),
		})
	}
	plan.Groups = groupBySpacing(glyphs, opts.Spacing)
	return plan, nil
}

// Preview 计算紧凑预览布局：按各字符的步进依次排列，步进小于字形宽度时截断右侧像素。
// glyphs 中不应包含缺失的字符，调用方需先以 SkipMissing 加载。
func Preview(glyphs []*glyphset.Glyph, opts Options) (*Plan, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if len(glyphs) == 0 {
		return nil, ErrNoGlyphs
	}

	plan := newPlan(ModePreview, glyphs, opts)
	for _, g := range glyphs {
		plan.Width += opts.Spacing.Advance(g.Char, g.Width())
	}

	cursor := 0
	for _, g := range glyphs {
		advance := opts.Spacing.Advance(g.Char, g.Width())
		y, err := verticalOrigin(g, plan, opts.Center)
		if err != nil {
			return nil, err
		}
		plan.Placements = append(plan.Placements, Placement{
			Char:      g.Char,
			Character: string(g.Char),
			Glyph:     g,
			X:         cursor,
			Y:         y,
			Width:     g.Width(),
			Height:    g.Height(),
			CopyWidth: min(advance, g.Width()),
			Advance:   advance,
		})
		cursor += advance
	}
	plan.Groups = groupBySpacing(glyphs, opts.Spacing)
	return plan, nil
}

func newPlan(mode Mode, glyphs []*glyphset.Glyph, opts Options) *Plan {
	digit := DigitHeight(glyphs)
	return &Plan{
		Mode:          mode,
		Height:        digit + opts.BottomPadding,
		DigitHeight:   digit,
		BottomPadding: opts.BottomPadding,
		Placements:    make([]Placement, 0, len(glyphs)),
	}
}

// DigitHeight 返回 0-9 字形中的最大高度；非数字字形即使更高也不参与计算。
func DigitHeight(glyphs []*glyphset.Glyph) int {
	h := 0
	for _, g := range glyphs {
		if IsDigit(g.Char) {
			h = max(h, g.Height())
		}
	}
	return h
}

// IsDigit reports whether ch is an ASCII decimal digit.
func IsDigit(ch rune) bool { return ch >= '0' && ch <= '9' }

// verticalOrigin 计算字形顶部的 y 坐标：
//   - 逗号贴住画布最底部（自带下伸部分，忽略留白）；
//   - 句号落在留白之上的基线；
//   - 其余字形在数字高度带内垂直居中，再整体抬到留白之上。
func verticalOrigin(g *glyphset.Glyph, plan *Plan, policy CenterPolicy) (int, error) {
	h := g.Height()
	switch g.Char {
	case ',':
		return plan.Height - h, nil
	case '.':
		return plan.Baseline() - h, nil
	}
	offset, err := centerOffset(g, plan.DigitHeight, policy)
	if err != nil {
		return 0, err
	}
	return plan.Baseline() - h - offset, nil
}

func centerOffset(g *glyphset.Glyph, digitHeight int, policy CenterPolicy) (int, error) {
	h := g.Height()
	if h <= digitHeight {
		return (digitHeight - h) / 2, nil
	}
	if policy == CenterStrict {
		return 0, &TallGlyphError{Char: g.Char, Height: h, DigitHeight: digitHeight}
	}
	return 0, nil
}

// groupBySpacing 按最终步进分组字符，组按步进升序，组内按请求顺序，重复字符只记一次。
func groupBySpacing(glyphs []*glyphset.Glyph, spacing Spacing) []SpacingGroup {
	buckets := map[int]*strings.Builder{}
	seen := map[rune]bool{}
	for _, g := range glyphs {
		if seen[g.Char] {
			continue
		}
		seen[g.Char] = true
		advance := spacing.Advance(g.Char, g.Width())
		b, ok := buckets[advance]
		if !ok {
			b = &strings.Builder{}
			buckets[advance] = b
		}
		b.WriteRune(g.Char)
	}

	groups := make([]SpacingGroup, 0, len(buckets))
	for advance, b := range buckets {
		groups = append(groups, SpacingGroup{Advance: advance, Chars: b.String()})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Advance < groups[j].Advance })
	return groups
}

func (o Options) validate() error {
	if o.BottomPadding < 0 {
		return fmt.Errorf("%w: bottom padding %d is negative", ErrInvalidOptions, o.BottomPadding)
	}
	for ch, v := range o.Spacing {
		if v < 0 {
			return fmt.Errorf("%w: spacing for %q is negative (%d)", ErrInvalidOptions, ch, v)
		}
	}
	return nil
}
