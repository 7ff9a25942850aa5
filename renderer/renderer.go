package renderer

import "github.com/ByLCY/spritefont/layout"

// Renderer 将布局计划输出为最终文件，例如 PNG 字形条或 PDF 校样。
// Render 返回编码后的二进制数据以及可能的错误。
type Renderer interface {
	Render(plan *layout.Plan) ([]byte, error)
}
