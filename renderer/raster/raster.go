package raster

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/ByLCY/spritefont/layout"
	"github.com/ByLCY/spritefont/renderer"
)

// Renderer 按布局计划逐像素合成字形条并编码为 PNG。
// 像素直接覆盖（不做混合），超出画布的部分被裁掉。
type Renderer struct {
	encoder png.Encoder
}

var _ renderer.Renderer = (*Renderer)(nil)

// Options configures PNG encoding.
type Options struct {
	Compression png.CompressionLevel
}

// NewRenderer creates a PNG renderer with default compression.
func NewRenderer() *Renderer { return NewRendererWithOptions(Options{}) }

// NewRendererWithOptions creates a PNG renderer with the given options.
func NewRendererWithOptions(opts Options) *Renderer {
	return &Renderer{encoder: png.Encoder{CompressionLevel: opts.Compression}}
}

// Compose 分配全透明画布并把每个字形复制到计划给出的位置。
func (r *Renderer) Compose(plan *layout.Plan) (*image.NRGBA, error) {
	if plan == nil {
		return nil, fmt.Errorf("布局计划为空")
	}
	canvas := image.NewNRGBA(image.Rect(0, 0, plan.Width, plan.Height))
	for _, p := range plan.Placements {
		if p.Glyph == nil {
			return nil, fmt.Errorf("字符 %q 缺少字形位图", p.Char)
		}
		Blit(canvas, p)
	}
	return canvas, nil
}

// Blit 按行复制字形左侧 CopyWidth 列的原始像素到 (X, Y)，不做预乘转换。
// 目标区域与画布求交，因此累计位置达到或超过画布宽度时不会写入任何像素。
func Blit(dst *image.NRGBA, p layout.Placement) {
	target := image.Rect(p.X, p.Y, p.X+p.CopyWidth, p.Y+p.Glyph.Height())
	clipped := target.Intersect(dst.Bounds())
	if clipped.Empty() {
		return
	}
	src := p.Glyph.Image
	sp := clipped.Min.Sub(target.Min)
	n := clipped.Dx() * 4
	for y := 0; y < clipped.Dy(); y++ {
		si := src.PixOffset(sp.X, sp.Y+y)
		di := dst.PixOffset(clipped.Min.X, clipped.Min.Y+y)
		copy(dst.Pix[di:di+n], src.Pix[si:si+n])
	}
}

// Render 合成并编码为 PNG 字节。
func (r *Renderer) Render(plan *layout.Plan) ([]byte, error) {
	img, err := r.Compose(plan)
	if err != nil {
		return nil, err
	}
	return r.Encode(img)
}

// Encode encodes a composed canvas as PNG.
func (r *Renderer) Encode(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.encoder.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("PNG 编码失败: %w", err)
	}
	return buf.Bytes(), nil
}
