package layout

// CenterPolicy 决定字形高于数字高度时居中偏移为负的处理方式。
type CenterPolicy int

const (
	// CenterClamp 将负的居中偏移截断为 0（默认）。
	CenterClamp CenterPolicy = iota
	// CenterStrict 遇到比最高数字还高的非标点字形时返回 TallGlyphError。
	CenterStrict
)

// Options 配置一次布局计算。
type Options struct {
	Spacing       Spacing
	BottomPadding int
	Center        CenterPolicy
}

// Spacing 是按字符覆盖的步进宽度（像素）。
type Spacing map[rune]int

// Lookup returns the override for ch, if any. It never inserts defaults.
func (s Spacing) Lookup(ch rune) (int, bool) {
	v, ok := s[ch]
	return v, ok
}

// Advance 返回字符的最终步进：有覆盖值时取覆盖值，否则取字形自身宽度。
func (s Spacing) Advance(ch rune, intrinsic int) int {
	if v, ok := s.Lookup(ch); ok {
		return v
	}
	return intrinsic
}
