// Package spritefont 提供字形条生成器对外的三个操作：加载字形集、生成图集（PNG + config.txt）
// 以及生成内存中的预览图。每次调用都独立加载字形、独立构建画布，不保留任何跨调用状态。
package spritefont

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ByLCY/spritefont/binding"
	"github.com/ByLCY/spritefont/descriptor"
	"github.com/ByLCY/spritefont/glyphset"
	"github.com/ByLCY/spritefont/layout"
	"github.com/ByLCY/spritefont/renderer"
	canvasrenderer "github.com/ByLCY/spritefont/renderer/canvas"
	"github.com/ByLCY/spritefont/renderer/raster"
)

// DataURIPrefix 是预览图载荷的前缀。
const DataURIPrefix = "data:image/png;base64,"

// LoadRequest 请求加载目录下的字形图片。
type LoadRequest struct {
	Directory  string `json:"directory"`
	Characters string `json:"characters"`
}

// LoadResponse 返回每个字符的尺寸以及最大宽高。
type LoadResponse struct {
	Characters []glyphset.CharacterInfo `json:"characters"`
	MaxWidth   int                      `json:"maxWidth"`
	MaxHeight  int                      `json:"maxHeight"`
}

// AtlasRequest 请求生成固定单元格字形条。
type AtlasRequest struct {
	Directory     string         `json:"directory"`
	Characters    string         `json:"characters"`
	SpacingConfig map[string]int `json:"spacingConfig"`
	BottomPadding int            `json:"bottomPadding"`
	// OutputPath 可包含 ${width}、${height}、${cell}、${count}、${padding}、${name} 占位符。
	OutputPath string `json:"outputPath"`

	ProofPath       string `json:"proofPath,omitempty"`       // 可选：PDF/SVG 校样
	DebugPath       string `json:"debugPath,omitempty"`       // 可选：布局计划 JSON
	CellWidthHeader bool   `json:"cellWidthHeader,omitempty"` // config.txt 的 width 写单元格宽度
	StrictCenter    bool   `json:"strictCenter,omitempty"`    // 字形高于数字高度时报错而不是截断偏移
}

// AtlasResult 描述生成结果。
type AtlasResult struct {
	Success      bool   `json:"success"`
	OutputPath   string `json:"outputPath"`
	SpriteWidth  int    `json:"spriteWidth"`
	SpriteHeight int    `json:"spriteHeight"`
	ConfigData   string `json:"configData"`
}

// PreviewRequest 请求生成紧凑预览。
type PreviewRequest struct {
	Directory     string         `json:"directory"`
	Characters    string         `json:"characters"`
	SpacingConfig map[string]int `json:"spacingConfig"`
	BottomPadding int            `json:"bottomPadding"`
	StrictCenter  bool           `json:"strictCenter,omitempty"`
}

// PreviewResult 携带 PNG 字节以及可直接嵌入的 data URI。
type PreviewResult struct {
	Success       bool   `json:"success"`
	PreviewBase64 string `json:"previewBase64"`
	PNG           []byte `json:"-"`
	Width         int    `json:"width"`
	Height        int    `json:"height"`
}

// LoadGlyphSet 读取每个字符的字形并返回尺寸信息；任何字符缺失都会失败。
func LoadGlyphSet(req LoadRequest) (*LoadResponse, error) {
	set, err := glyphset.Load(req.Directory, req.Characters, glyphset.FailOnMissing)
	if err != nil {
		return nil, err
	}
	return &LoadResponse{
		Characters: set.Infos(),
		MaxWidth:   set.MaxWidth,
		MaxHeight:  set.MaxHeight,
	}, nil
}

// GenerateAtlas 生成固定单元格字形条，写出 PNG 以及同目录下的 config.txt。
func GenerateAtlas(req AtlasRequest) (*AtlasResult, error) {
	if req.OutputPath == "" {
		return nil, fmt.Errorf("%w: output path is empty", ErrInvalidRequest)
	}
	opts, err := layoutOptions(req.SpacingConfig, req.BottomPadding, req.StrictCenter)
	if err != nil {
		return nil, err
	}

	set, err := glyphset.Load(req.Directory, req.Characters, glyphset.FailOnMissing)
	if err != nil {
		return nil, err
	}
	plan, err := buildPlan(layout.Atlas, set, opts)
	if err != nil {
		return nil, err
	}
	Logger().Debug("atlas layout", "width", plan.Width, "height", plan.Height, "cell", plan.CellWidth, "digitHeight", plan.DigitHeight)

	outputPath, err := resolveOutputPath(req, plan)
	if err != nil {
		return nil, err
	}

	var r renderer.Renderer = raster.NewRenderer()
	data, err := r.Render(plan)
	if err != nil {
		return nil, &PersistError{Path: outputPath, Err: err}
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return nil, &PersistError{Path: filepath.Dir(outputPath), Err: err}
	}
	if err := writeFile(outputPath, data); err != nil {
		return nil, err
	}

	config := descriptor.FromPlan(plan, req.CellWidthHeader).String()
	if err := writeFile(filepath.Join(filepath.Dir(outputPath), descriptor.FileName), []byte(config)); err != nil {
		return nil, err
	}

	if req.ProofPath != "" {
		if err := writeProof(req.ProofPath, plan); err != nil {
			return nil, err
		}
	}
	if req.DebugPath != "" {
		if err := writeDebug(req.DebugPath, plan); err != nil {
			return nil, err
		}
	}

	return &AtlasResult{
		Success:      true,
		OutputPath:   outputPath,
		SpriteWidth:  plan.Width,
		SpriteHeight: plan.Height,
		ConfigData:   config,
	}, nil
}

// GeneratePreview 按各字符步进紧凑排列并返回 PNG，不写任何文件；缺失的字符被跳过。
func GeneratePreview(req PreviewRequest) (*PreviewResult, error) {
	opts, err := layoutOptions(req.SpacingConfig, req.BottomPadding, req.StrictCenter)
	if err != nil {
		return nil, err
	}
	set, err := glyphset.Load(req.Directory, req.Characters, glyphset.SkipMissing)
	if err != nil {
		return nil, err
	}
	if len(set.Missing) > 0 {
		Logger().Debug("preview skipped missing glyphs", "characters", string(set.Missing))
	}
	plan, err := buildPlan(layout.Preview, set, opts)
	if err != nil {
		return nil, err
	}

	data, err := raster.NewRenderer().Render(plan)
	if err != nil {
		return nil, &EncodeError{Err: err}
	}
	return &PreviewResult{
		Success:       true,
		PreviewBase64: DataURIPrefix + base64.StdEncoding.EncodeToString(data),
		PNG:           data,
		Width:         plan.Width,
		Height:        plan.Height,
	}, nil
}

func buildPlan(build func([]*glyphset.Glyph, layout.Options) (*layout.Plan, error), set *glyphset.Set, opts layout.Options) (*layout.Plan, error) {
	plan, err := build(set.Glyphs, opts)
	switch {
	case errors.Is(err, layout.ErrNoGlyphs):
		return nil, fmt.Errorf("%w: %w", ErrNoGlyphsFound, err)
	case errors.Is(err, layout.ErrInvalidOptions):
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	case err != nil:
		return nil, err
	}
	return plan, nil
}

// layoutOptions 把请求中的字符串键步进表转换为按字符查找的表。
// 键按 glyphset.Character 解析；非单字符的键被忽略，两个键解析到同一字符（如 "é" 与 "e\u0301"）、
// 负数步进或留白都视为非法请求。
func layoutOptions(config map[string]int, padding int, strict bool) (layout.Options, error) {
	if padding < 0 {
		return layout.Options{}, fmt.Errorf("%w: bottom padding %d is negative", ErrInvalidRequest, padding)
	}
	spacing := make(layout.Spacing, len(config))
	owner := make(map[rune]string, len(config))
	for key, v := range config {
		ch, ok := glyphset.Character(key)
		if !ok {
			Logger().Debug("ignoring spacing key", "key", key)
			continue
		}
		if v < 0 {
			return layout.Options{}, fmt.Errorf("%w: spacing for %q is negative (%d)", ErrInvalidRequest, key, v)
		}
		if prev, dup := owner[ch]; dup {
			a, b := min(prev, key), max(prev, key)
			return layout.Options{}, fmt.Errorf("%w: spacing keys %q and %q both name %q", ErrInvalidRequest, a, b, ch)
		}
		owner[ch] = key
		spacing[ch] = v
	}
	opts := layout.Options{Spacing: spacing, BottomPadding: padding}
	if strict {
		opts.Center = layout.CenterStrict
	}
	return opts, nil
}

// SpacingConfig converts a per-character spacing table into the request form.
func SpacingConfig(spacing layout.Spacing) map[string]int {
	config := make(map[string]int, len(spacing))
	for ch, v := range spacing {
		config[string(ch)] = v
	}
	return config
}

func resolveOutputPath(req AtlasRequest, plan *layout.Plan) (string, error) {
	if !binding.HasPlaceholders(req.OutputPath) {
		return req.OutputPath, nil
	}
	path, err := binding.Interpolate(req.OutputPath, binding.Vars{
		"width":   plan.Width,
		"height":  plan.Height,
		"cell":    plan.CellWidth,
		"count":   len(plan.Placements),
		"padding": plan.BottomPadding,
		"name":    filepath.Base(filepath.Clean(req.Directory)),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	return path, nil
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &PersistError{Path: path, Err: err}
	}
	Logger().Info("wrote file", "path", path, "bytes", len(data))
	return nil
}

func writeProof(path string, plan *layout.Plan) error {
	format, err := canvasrenderer.FormatForPath(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	var r renderer.Renderer = canvasrenderer.NewRenderer(format)
	data, err := r.Render(plan)
	if err != nil {
		return &PersistError{Path: path, Err: err}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &PersistError{Path: filepath.Dir(path), Err: err}
	}
	return writeFile(path, data)
}

func writeDebug(path string, plan *layout.Plan) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &PersistError{Path: filepath.Dir(path), Err: err}
	}
	if err := layout.WriteDebugJSON(plan, path); err != nil {
		return &PersistError{Path: path, Err: err}
	}
	return nil
}
