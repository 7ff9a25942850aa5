package spritefont

import (
	"errors"
	"fmt"

	"github.com/ByLCY/spritefont/glyphset"
)

var (
	ErrDirectoryNotFound = glyphset.ErrDirectoryNotFound
	ErrMissingGlyph      = glyphset.ErrMissingGlyph
	// ErrNoGlyphsFound 表示请求的字符一个都没有找到对应图片。
	ErrNoGlyphsFound = errors.New("no valid character images found")
	// ErrInvalidRequest 表示请求参数不合法（负数留白/步进、缺少输出路径等）。
	ErrInvalidRequest = errors.New("invalid request")
)

// PersistError 表示创建目录或写入文件失败。此时输出文件可能不存在或仍是旧内容。
type PersistError struct {
	Path string
	Err  error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("failed to save %s: %v", e.Path, e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }

// EncodeError 表示预览图编码失败。
type EncodeError struct {
	Err error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("failed to encode preview: %v", e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }
