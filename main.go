package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ByLCY/spritefont/descriptor"
	"github.com/ByLCY/spritefont/glyphgen"
	"github.com/ByLCY/spritefont/spritefont"
)

// defaultOutputName 与旧版工具保持一致：未指定输出路径时写到字形目录下。
const defaultOutputName = "sprite_font.png"

// options 汇总命令行参数，run 只依赖它而不直接读取 flag。
type options struct {
	mode            string
	dir             string
	chars           string
	spacing         string
	spacingFrom     string
	padding         int
	out             string
	proof           string
	debug           string
	cellWidthHeader bool
	strictCenter    bool
	font            string
	size            float64
}

func main() {
	var opts options
	flag.StringVar(&opts.mode, "mode", "atlas", "运行模式：atlas | preview | load | glyphs")
	flag.StringVar(&opts.dir, "dir", ".", "字形图片目录（每个字符一个 <字符>.png）")
	flag.StringVar(&opts.chars, "chars", "0123456789", "按顺序排列的字符")
	flag.StringVar(&opts.spacing, "spacing", "", "字符步进覆盖，例如 0=10,1=8")
	flag.StringVar(&opts.spacingFrom, "spacing-from", "", "从已有的 config.txt 读取步进覆盖")
	flag.IntVar(&opts.padding, "padding", 0, "底部留白（像素）")
	flag.StringVar(&opts.out, "out", "", "PNG 输出路径，支持 ${name} ${width} ${height} ${cell} ${count} ${padding}；默认 <dir>/sprite_font.png")
	flag.StringVar(&opts.proof, "proof", "", "校样输出路径（.pdf 或 .svg）")
	flag.StringVar(&opts.debug, "debug", "", "布局调试 JSON 输出路径")
	flag.BoolVar(&opts.cellWidthHeader, "cell-width-header", false, "config.txt 的 width 写单元格宽度而不是画布宽度")
	flag.BoolVar(&opts.strictCenter, "strict-center", false, "字形高于数字高度时报错")
	flag.StringVar(&opts.font, "font", "", "glyphs 模式使用的字体（文件路径或系统字体名，默认内置字体）")
	flag.Float64Var(&opts.size, "size", 32, "glyphs 模式的字号（pt）")
	verbose := flag.Bool("v", false, "输出调试日志")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	spritefont.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(opts, os.Stdout); err != nil {
		log.Fatalf("%s 失败: %v", opts.mode, err)
	}
}

// run 按模式分派到对应的操作，结果摘要写到 w。
func run(opts options, w io.Writer) error {
	switch opts.mode {
	case "atlas":
		return runAtlas(opts, w)
	case "preview":
		return runPreview(opts, w)
	case "load":
		return runLoad(opts, w)
	case "glyphs":
		return runGlyphs(opts, w)
	}
	return fmt.Errorf("未知的模式 %q", opts.mode)
}

func runAtlas(opts options, w io.Writer) error {
	spacing, err := spacingConfig(opts)
	if err != nil {
		return err
	}
	out := opts.out
	if out == "" {
		out = filepath.Join(opts.dir, defaultOutputName)
	}
	res, err := spritefont.GenerateAtlas(spritefont.AtlasRequest{
		Directory:       opts.dir,
		Characters:      opts.chars,
		SpacingConfig:   spacing,
		BottomPadding:   opts.padding,
		OutputPath:      out,
		ProofPath:       opts.proof,
		DebugPath:       opts.debug,
		CellWidthHeader: opts.cellWidthHeader,
		StrictCenter:    opts.strictCenter,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "已生成字形条：%s（%dx%d）\n", res.OutputPath, res.SpriteWidth, res.SpriteHeight)
	fmt.Fprintln(w, res.ConfigData)
	return nil
}

// runPreview 把预览 PNG 写到 -out（未指定时只输出 data URI）。
func runPreview(opts options, w io.Writer) error {
	spacing, err := spacingConfig(opts)
	if err != nil {
		return err
	}
	res, err := spritefont.GeneratePreview(spritefont.PreviewRequest{
		Directory:     opts.dir,
		Characters:    opts.chars,
		SpacingConfig: spacing,
		BottomPadding: opts.padding,
		StrictCenter:  opts.strictCenter,
	})
	if err != nil {
		return err
	}
	if opts.out == "" {
		fmt.Fprintln(w, res.PreviewBase64)
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(opts.out), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	if err := os.WriteFile(opts.out, res.PNG, 0o644); err != nil {
		return fmt.Errorf("写入预览文件失败: %w", err)
	}
	fmt.Fprintf(w, "已生成预览：%s（%dx%d）\n", opts.out, res.Width, res.Height)
	return nil
}

func runLoad(opts options, w io.Writer) error {
	res, err := spritefont.LoadGlyphSet(spritefont.LoadRequest{Directory: opts.dir, Characters: opts.chars})
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

func runGlyphs(opts options, w io.Writer) error {
	res, err := glyphgen.Generate(opts.dir, opts.chars, glyphgen.Options{Font: opts.font, Size: opts.size})
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "已写入 %d 个字形到 %s\n", len(res.Written), opts.dir)
	if len(res.Skipped) > 0 {
		fmt.Fprintf(w, "字体缺少以下字符：%s\n", string(res.Skipped))
	}
	return nil
}

// spacingConfig 合并 -spacing-from 与 -spacing，后者优先。
func spacingConfig(opts options) (map[string]int, error) {
	config := map[string]int{}
	if opts.spacingFrom != "" {
		file, err := os.Open(opts.spacingFrom)
		if err != nil {
			return nil, fmt.Errorf("无法打开 %s: %w", opts.spacingFrom, err)
		}
		defer file.Close()
		desc, err := descriptor.Parse(file)
		if err != nil {
			return nil, fmt.Errorf("解析 %s 失败: %w", opts.spacingFrom, err)
		}
		for k, v := range spritefont.SpacingConfig(desc.Overrides()) {
			config[k] = v
		}
	}
	parsed, err := parseSpacing(opts.spacing)
	if err != nil {
		return nil, err
	}
	for k, v := range parsed {
		config[k] = v
	}
	return config, nil
}

// parseSpacing 解析 "0=10,1=8" 形式的步进覆盖。键取最后一个 '=' 前的内容，因此 "==5" 表示 '=' 的步进为 5。
// 逗号本身无法在这里表达，需要通过 -spacing-from 提供。
func parseSpacing(s string) (map[string]int, error) {
	config := map[string]int{}
	if strings.TrimSpace(s) == "" {
		return config, nil
	}
	for _, item := range strings.Split(s, ",") {
		if item == "" {
			continue
		}
		idx := strings.LastIndex(item, "=")
		if idx <= 0 {
			return nil, fmt.Errorf("步进格式错误 %q，应为 字符=宽度", item)
		}
		v, err := strconv.Atoi(strings.TrimSpace(item[idx+1:]))
		if err != nil {
			return nil, fmt.Errorf("步进 %q 不是整数: %w", item, err)
		}
		key := item[:idx]
		if trimmed := strings.TrimSpace(key); trimmed != "" {
			key = trimmed
		}
		config[key] = v
	}
	return config, nil
}
