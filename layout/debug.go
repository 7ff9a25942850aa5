package layout

import (
	"encoding/json"
	"os"
)

// WriteDebugJSON 将布局计划输出为 JSON，便于调试或比对不同留白/步进配置。
func WriteDebugJSON(plan *Plan, path string) error {
	if plan == nil {
		return nil
	}
	data, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
