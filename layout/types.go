package layout

import "github.com/ByLCY/spritefont/glyphset"

// 该文件定义布局结果，供合成器、描述文件与调试 JSON 共用。

// Mode 区分固定单元格图集与紧凑预览两种布局。
type Mode string

const (
	ModeAtlas   Mode = "atlas"
	ModePreview Mode = "preview"
)

// Plan 是一次合成所需的全部信息：画布尺寸与每个字形的放置位置。
type Plan struct {
	Mode          Mode           `json:"mode"`
	Width         int            `json:"width"`
	Height        int            `json:"height"`
	CellWidth     int            `json:"cellWidth,omitempty"` // 仅图集模式：最宽字形的宽度
	DigitHeight   int            `json:"digitHeight"`
	BottomPadding int            `json:"bottomPadding"`
	Placements    []Placement    `json:"placements"`
	Groups        []SpacingGroup `json:"groups"`
}

// Placement 记录一个字形在画布上的左上角坐标与需要复制的列数。
type Placement struct {
	Char      rune            `json:"-"`
	Character string          `json:"character"`
	Glyph     *glyphset.Glyph `json:"-"`
	X         int             `json:"x"`
	Y         int             `json:"y"`
	Width     int             `json:"width"`
	Height    int             `json:"height"`
	CopyWidth int             `json:"copyWidth"`
	Advance   int             `json:"advance"`
}

// SpacingGroup 是共享同一步进宽度的字符集合。
type SpacingGroup struct {
	Advance int    `json:"advance"`
	Chars   string `json:"chars"`
}

// Baseline 返回底部留白之上的基线位置。
func (p *Plan) Baseline() int { return p.Height - p.BottomPadding }
