package binding

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var exprPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Vars 是输出路径模板可用的变量。
type Vars map[string]any

// Interpolate 将 template 中的 ${name} 替换为 vars 中的值。
// 引用了未定义变量时返回错误，避免生成带占位符的文件名。
func Interpolate(template string, vars Vars) (string, error) {
	var missing []string
	out := exprPattern.ReplaceAllStringFunc(template, func(match string) string {
		name := strings.TrimSpace(exprPattern.FindStringSubmatch(match)[1])
		val, ok := vars[name]
		if !ok {
			missing = append(missing, name)
			return match
		}
		return fmt.Sprint(val)
	})
	if len(missing) > 0 {
		return "", fmt.Errorf("输出路径引用了未定义的变量: %s（可用: %s）", strings.Join(missing, ", "), strings.Join(vars.names(), ", "))
	}
	return out, nil
}

// HasPlaceholders reports whether template contains any ${...} expression.
func HasPlaceholders(template string) bool {
	return exprPattern.MatchString(template)
}

func (v Vars) names() []string {
	names := make([]string, 0, len(v))
	for k := range v {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
