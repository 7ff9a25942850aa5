package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByLCY/spritefont/glyphset/glyphtest"
)

func TestRunAtlasDefaultOutput(t *testing.T) {
	dir := glyphtest.WriteDir(t, glyphtest.Scenario()...)
	var out bytes.Buffer
	err := run(options{mode: "atlas", dir: dir, chars: "01,.", padding: 2}, &out)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, defaultOutputName))
	config, err := os.ReadFile(filepath.Join(dir, "config.txt"))
	require.NoError(t, err)
	assert.Equal(t, "width: 40\nheight: 14\nspace info: [[4, \",.\"], [8, \"1\"], [10, \"0\"]]", string(config))
	assert.Contains(t, out.String(), "40x14")
}

func TestRunAtlasSpacingFromPreviousRun(t *testing.T) {
	dir := glyphtest.WriteDir(t, glyphtest.Scenario()...)
	prev := filepath.Join(t.TempDir(), "config.txt")
	require.NoError(t, os.WriteFile(prev, []byte("width: 40\nheight: 14\nspace info: [[3, \",.\"], [9, \"01\"]]"), 0o644))

	outDir := t.TempDir()
	var out bytes.Buffer
	err := run(options{
		mode:        "atlas",
		dir:         dir,
		chars:       "01,.",
		spacingFrom: prev,
		spacing:     "1=7",
		out:         filepath.Join(outDir, "strip.png"),
	}, &out)
	require.NoError(t, err)

	config, err := os.ReadFile(filepath.Join(outDir, "config.txt"))
	require.NoError(t, err)
	assert.Equal(t, "width: 40\nheight: 12\nspace info: [[3, \",.\"], [7, \"1\"], [9, \"0\"]]", string(config))
}

func TestRunPreview(t *testing.T) {
	dir := glyphtest.WriteDir(t, glyphtest.Scenario()...)

	var out bytes.Buffer
	require.NoError(t, run(options{mode: "preview", dir: dir, chars: "01"}, &out))
	assert.True(t, strings.HasPrefix(out.String(), "data:image/png;base64,"))

	target := filepath.Join(t.TempDir(), "preview", "p.png")
	out.Reset()
	require.NoError(t, run(options{mode: "preview", dir: dir, chars: "01", out: target}, &out))
	assert.FileExists(t, target)
	assert.Contains(t, out.String(), "18x12")
}

func TestRunLoad(t *testing.T) {
	dir := glyphtest.WriteDir(t, glyphtest.Scenario()...)
	var out bytes.Buffer
	require.NoError(t, run(options{mode: "load", dir: dir, chars: "0,"}, &out))

	var decoded struct {
		Characters []map[string]any `json:"characters"`
		MaxWidth   int              `json:"maxWidth"`
		MaxHeight  int              `json:"maxHeight"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, 10, decoded.MaxWidth)
	assert.Equal(t, 12, decoded.MaxHeight)
	assert.Len(t, decoded.Characters, 2)
}

func TestRunGlyphs(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "glyphs")
	var out bytes.Buffer
	require.NoError(t, run(options{mode: "glyphs", dir: dir, chars: "012", size: 20}, &out))
	for _, ch := range "012" {
		assert.FileExists(t, filepath.Join(dir, string(ch)+".png"))
	}

	out.Reset()
	require.NoError(t, run(options{mode: "atlas", dir: dir, chars: "012"}, &out))
	assert.FileExists(t, filepath.Join(dir, defaultOutputName))
}

func TestRunUnknownMode(t *testing.T) {
	assert.Error(t, run(options{mode: "bogus"}, &bytes.Buffer{}))
}

func TestParseSpacing(t *testing.T) {
	got, err := parseSpacing("0=10, 1 = 8,==5")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"0": 10, "1": 8, "=": 5}, got)

	got, err = parseSpacing("  ")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = parseSpacing("0")
	assert.Error(t, err)
	_, err = parseSpacing("0=x")
	assert.Error(t, err)
}
