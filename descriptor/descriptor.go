// Package descriptor reads and writes the spacing descriptor (config.txt) that
// accompanies a sprite font strip:
//
//	width: 40
//	height: 14
//	space info: [[4, ",."], [10, "01"]]
//
// 与旧版工具的差异：字符串中的 " 和 \ 写成 \" 和 \\，其余字符原样输出。
// 旧版原样写出这两个字符，读取 config.txt 的外部工具若字符集中包含它们，需要先反转义。
package descriptor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ByLCY/spritefont/layout"
)

// FileName is the descriptor's name, written next to the strip image.
const FileName = "config.txt"

// Descriptor is the in-memory form of a config.txt file.
type Descriptor struct {
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Groups []Group `json:"groups"`
}

// Group lists the characters sharing one advance width.
type Group struct {
	Advance int    `json:"advance"`
	Chars   string `json:"chars"`
}

// FromPlan builds the descriptor of a layout plan. With cellWidth set, the header
// reports the fixed cell width instead of the whole canvas width.
func FromPlan(plan *layout.Plan, cellWidth bool) Descriptor {
	d := Descriptor{Width: plan.Width, Height: plan.Height}
	if cellWidth && plan.CellWidth > 0 {
		d.Width = plan.CellWidth
	}
	for _, g := range plan.Groups {
		d.Groups = append(d.Groups, Group{Advance: g.Advance, Chars: g.Chars})
	}
	return d
}

var charEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// String renders the descriptor in the exact config.txt text format.
func (d Descriptor) String() string {
	parts := make([]string, 0, len(d.Groups))
	for _, g := range d.Groups {
		parts = append(parts, "["+strconv.Itoa(g.Advance)+`, "`+charEscaper.Replace(g.Chars)+`"]`)
	}
	return fmt.Sprintf("width: %d\nheight: %d\nspace info: [%s]", d.Width, d.Height, strings.Join(parts, ", "))
}

// Overrides converts the groups back into a per-character spacing table.
func (d Descriptor) Overrides() layout.Spacing {
	spacing := layout.Spacing{}
	for _, g := range d.Groups {
		for _, ch := range g.Chars {
			spacing[ch] = g.Advance
		}
	}
	return spacing
}
