package canvasrenderer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
	"github.com/tdewolff/canvas/renderers/svg"

	"github.com/ByLCY/spritefont/fonts"
	"github.com/ByLCY/spritefont/layout"
	"github.com/ByLCY/spritefont/renderer"
)

// 校样页：把布局计划按比例画到 PDF/SVG 上，标出单元格、基线与底部留白，便于人工检查对齐。

const (
	guideWidth  = 0.1 // mm
	pageMargin  = 4.0 // mm
	labelBand   = 6.0 // mm
	labelSizePt = 5.0
)

var (
	backgroundColor = canvas.Hex("#f2f2f2")
	cellColor       = canvas.Hex("#9e9e9e")
	baselineColor   = canvas.Hex("#0f62fe")
	paddingColor    = canvas.RGBA(0.85, 0.2, 0.2, 0.25)
	labelColor      = color.RGBA{R: 30, G: 30, B: 30, A: 255}
)

// Format 指定校样输出格式。
type Format string

const (
	FormatPDF Format = "pdf"
	FormatSVG Format = "svg"
)

// FormatForPath 根据扩展名选择输出格式。
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return FormatPDF, nil
	case ".svg":
		return FormatSVG, nil
	}
	return "", fmt.Errorf("不支持的校样格式 %q（仅支持 .pdf/.svg）", filepath.Ext(path))
}

// Renderer draws layout plans via github.com/tdewolff/canvas.
type Renderer struct {
	format Format
	scale  float64 // 每个像素对应的毫米数
	font   string
	labels bool

	fontMu sync.Mutex
	family *canvas.FontFamily
}

var _ renderer.Renderer = (*Renderer)(nil)

// Options configures the proof renderer.
type Options struct {
	Format Format
	Scale  float64 // mm per pixel, defaults to 1
	Font   string  // label font, see fonts.Load
	Labels bool
}

// NewRenderer creates a proof renderer with labels and a 1mm-per-pixel scale.
func NewRenderer(format Format) *Renderer {
	return NewRendererWithOptions(Options{Format: format, Labels: true})
}

// NewRendererWithOptions creates a proof renderer with explicit options.
func NewRendererWithOptions(opts Options) *Renderer {
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	if opts.Format == "" {
		opts.Format = FormatPDF
	}
	return &Renderer{
		format: opts.Format,
		scale:  opts.Scale,
		font:   opts.Font,
		labels: opts.Labels,
	}
}

// Render renders the plan into a single-page PDF or SVG document.
func (r *Renderer) Render(plan *layout.Plan) ([]byte, error) {
	if plan == nil {
		return nil, fmt.Errorf("布局计划为空")
	}
	if plan.Width <= 0 || plan.Height <= 0 {
		return nil, fmt.Errorf("画布尺寸无效: %dx%d", plan.Width, plan.Height)
	}

	width := float64(plan.Width)*r.scale + 2*pageMargin
	height := float64(plan.Height)*r.scale + 2*pageMargin
	if r.labels {
		height += labelBand
	}

	c := canvas.New(width, height)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV) // 与布局一致，左上角为原点
	if err := r.drawPlan(ctx, plan); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	switch r.format {
	case FormatPDF:
		writer := pdf.New(&buf, width, height, nil)
		c.RenderTo(writer)
		if err := writer.Close(); err != nil {
			return nil, fmt.Errorf("写入 PDF 失败: %w", err)
		}
	case FormatSVG:
		writer := svg.New(&buf, width, height, nil)
		c.RenderTo(writer)
		if err := writer.Close(); err != nil {
			return nil, fmt.Errorf("写入 SVG 失败: %w", err)
		}
	default:
		return nil, fmt.Errorf("未知的校样格式 %q", r.format)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) drawPlan(ctx *canvas.Context, plan *layout.Plan) error {
	s := r.scale
	ctx.SetStrokeColor(color.RGBA{0, 0, 0, 0})
	ctx.SetFillColor(backgroundColor)
	ctx.DrawPath(pageMargin, pageMargin, canvas.Rectangle(float64(plan.Width)*s, float64(plan.Height)*s))

	if plan.BottomPadding > 0 {
		ctx.SetFillColor(paddingColor)
		ctx.DrawPath(pageMargin, pageMargin+float64(plan.Baseline())*s, canvas.Rectangle(float64(plan.Width)*s, float64(plan.BottomPadding)*s))
	}

	for _, p := range plan.Placements {
		r.drawCell(ctx, plan, p)
		r.drawGlyph(ctx, p)
	}

	y := pageMargin + float64(plan.Baseline())*s
	r.drawGuide(ctx, pageMargin, y, pageMargin+float64(plan.Width)*s, y, baselineColor)

	if !r.labels {
		return nil
	}
	face, err := r.labelFace()
	if err != nil {
		return err
	}
	top := pageMargin + float64(plan.Height)*s + face.Metrics().Ascent + 1
	for _, p := range plan.Placements {
		cx := pageMargin + (float64(p.X)+float64(cellWidth(plan, p))/2)*s
		label := p.Character + " " + strconv.Itoa(p.Advance)
		ctx.DrawText(cx, top, canvas.NewTextLine(face, label, canvas.Center))
	}
	return nil
}

// cellWidth 图集模式画固定单元格，预览模式画每个字符的步进。
func cellWidth(plan *layout.Plan, p layout.Placement) int {
	if plan.Mode == layout.ModeAtlas {
		return plan.CellWidth
	}
	return p.Advance
}

func (r *Renderer) drawCell(ctx *canvas.Context, plan *layout.Plan, p layout.Placement) {
	w := float64(cellWidth(plan, p)) * r.scale
	if w <= 0 {
		return
	}
	ctx.SetFillColor(color.RGBA{0, 0, 0, 0})
	ctx.SetStrokeColor(cellColor)
	ctx.SetStrokeWidth(guideWidth)
	ctx.DrawPath(pageMargin+float64(p.X)*r.scale, pageMargin, canvas.Rectangle(w, float64(plan.Height)*r.scale))
}

func (r *Renderer) drawGlyph(ctx *canvas.Context, p layout.Placement) {
	if p.Glyph == nil || p.CopyWidth <= 0 {
		return
	}
	var img image.Image = p.Glyph.Image
	if p.CopyWidth < p.Glyph.Width() {
		img = p.Glyph.Image.SubImage(image.Rect(0, 0, p.CopyWidth, p.Glyph.Height()))
	}
	ctx.DrawImage(pageMargin+float64(p.X)*r.scale, pageMargin+float64(p.Y)*r.scale, img, canvas.DPMM(1/r.scale))
}

func (r *Renderer) drawGuide(ctx *canvas.Context, x1, y1, x2, y2 float64, col color.Color) {
	ctx.SetStrokeColor(col)
	ctx.SetStrokeWidth(guideWidth)
	p := &canvas.Path{}
	p.MoveTo(0, 0)
	p.LineTo(x2-x1, y2-y1)
	ctx.DrawPath(x1, y1, p)
}

func (r *Renderer) labelFace() (*canvas.FontFace, error) {
	r.fontMu.Lock()
	defer r.fontMu.Unlock()

	if r.family == nil {
		data, err := fonts.Load(r.font)
		if err != nil {
			return nil, err
		}
		family := canvas.NewFontFamily("spritefont-proof")
		if err := family.LoadFont(data, 0, canvas.FontRegular); err != nil {
			return nil, fmt.Errorf("加载标注字体失败: %w", err)
		}
		r.family = family
	}
	return r.family.Face(labelSizePt, labelColor, canvas.FontRegular, canvas.FontNormal), nil
}
