package glyphset

import (
	"errors"
	"fmt"
)

var (
	// ErrDirectoryNotFound 表示字形目录不存在或不是目录。
	ErrDirectoryNotFound = errors.New("glyph directory does not exist")
	// ErrMissingGlyph 是 MissingGlyphError 的哨兵值，便于 errors.Is 判断。
	ErrMissingGlyph = errors.New("glyph image not found")
)

// MissingGlyphError 记录缺失 "<char>.png" 的字符。
type MissingGlyphError struct {
	Char rune
}

func (e *MissingGlyphError) Error() string {
	return fmt.Sprintf("image not found for character: %q", e.Char)
}

func (e *MissingGlyphError) Is(target error) bool { return target == ErrMissingGlyph }

// DecodeError wraps a failure to decode an existing glyph file.
type DecodeError struct {
	Char rune
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to load image for %q: %v", e.Char, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
