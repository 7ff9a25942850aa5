package fonts

import (
	"fmt"
	"os"
	"strings"

	"github.com/flopp/go-findfont"
	"golang.org/x/image/font/gofont/goregular"
)

// Builtin 是内置字体（Go Regular）的名称。
const Builtin = "builtin:goregular"

// Load 返回字体的字节数据。name 可写为 "builtin:goregular"（或留空）、字体文件路径，
// 或系统字体文件名（例如 "DejaVuSans.ttf"，通过 go-findfont 查找）。
func Load(name string) ([]byte, error) {
	switch strings.TrimSpace(name) {
	case "", Builtin, "goregular":
		return goregular.TTF, nil
	}
	if info, err := os.Stat(name); err == nil && !info.IsDir() {
		data, err := os.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("读取字体 %s 失败: %w", name, err)
		}
		return data, nil
	}
	path, err := findfont.Find(name)
	if err != nil {
		return nil, fmt.Errorf("找不到字体 %s: %w", name, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取字体 %s 失败: %w", path, err)
	}
	return data, nil
}
