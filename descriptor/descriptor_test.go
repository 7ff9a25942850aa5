package descriptor_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByLCY/spritefont/descriptor"
	"github.com/ByLCY/spritefont/layout"
)

func TestStringExactFormat(t *testing.T) {
	d := descriptor.Descriptor{
		Width:  40,
		Height: 14,
		Groups: []descriptor.Group{{Advance: 4, Chars: ",."}, {Advance: 10, Chars: "01"}},
	}
	assert.Equal(t, "width: 40\nheight: 14\nspace info: [[4, \",.\"], [10, \"01\"]]", d.String())
}

func TestStringEmptyGroups(t *testing.T) {
	d := descriptor.Descriptor{Width: 1, Height: 2}
	assert.Equal(t, "width: 1\nheight: 2\nspace info: []", d.String())
}

func TestStringEscapesQuoteAndBackslash(t *testing.T) {
	d := descriptor.Descriptor{Width: 3, Height: 3, Groups: []descriptor.Group{{Advance: 3, Chars: `a"\é`}}}
	assert.Equal(t, `width: 3`+"\n"+`height: 3`+"\n"+`space info: [[3, "a\"\\é"]]`, d.String())
}

func TestFromPlanHeaderWidth(t *testing.T) {
	plan := &layout.Plan{
		Width:     40,
		Height:    14,
		CellWidth: 10,
		Groups:    []layout.SpacingGroup{{Advance: 10, Chars: "0"}},
	}
	assert.Equal(t, 40, descriptor.FromPlan(plan, false).Width)
	assert.Equal(t, 10, descriptor.FromPlan(plan, true).Width)

	plan.CellWidth = 0
	assert.Equal(t, 40, descriptor.FromPlan(plan, true).Width, "preview plans have no cell width")
}

func TestParseRoundTrip(t *testing.T) {
	src := descriptor.Descriptor{
		Width:  22,
		Height: 9,
		Groups: []descriptor.Group{
			{Advance: 3, Chars: `,"\`},
			{Advance: 6, Chars: "[]é"},
			{Advance: 11, Chars: "0123456789"},
		},
	}
	got, err := descriptor.ParseString(src.String())
	require.NoError(t, err)
	assert.Equal(t, 22, got.Width)
	assert.Equal(t, 9, got.Height)
	assert.Equal(t, src.Groups, got.Groups)
}

func TestParseToleratesWhitespace(t *testing.T) {
	input := "width:  40\r\nheight:14\n\nspace info: [\n  [10, \"01\"],\n  [4, \",.\"]\n]\n"
	d, err := descriptor.Parse(strings.NewReader(input))
	require.NoError(t, err)

	spacing := d.Overrides()
	for ch, want := range map[rune]int{'0': 10, '1': 10, ',': 4, '.': 4} {
		v, ok := spacing.Lookup(ch)
		assert.True(t, ok, "override for %q", ch)
		assert.Equal(t, want, v, "override for %q", ch)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, input := range []string{
		"",
		"width: x\nheight: 1\nspace info: []",
		"width: 1\nheight: 1\nspace info: [[1 \"a\"]]",
		"height: 1\nwidth: 1\nspace info: []",
	} {
		_, err := descriptor.ParseString(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestParseKeepsWhitespaceCharacters(t *testing.T) {
	src := descriptor.Descriptor{Width: 5, Height: 5, Groups: []descriptor.Group{{Advance: 2, Chars: " \t"}}}
	got, err := descriptor.ParseString(src.String())
	require.NoError(t, err)
	require.Len(t, got.Groups, 1)
	assert.Equal(t, " \t", got.Groups[0].Chars)
}
