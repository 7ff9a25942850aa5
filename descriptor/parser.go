package descriptor

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	descriptorLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
		{Name: "Int", Pattern: `\d+`},
		{Name: "String", Pattern: `"(?:\\.|[^"\\])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
		{Name: "Punct", Pattern: `[][,:]`},
	})

	fileParser = participle.MustBuild[file](
		participle.Lexer(descriptorLexer),
		participle.Elide("Whitespace"),
	)
)

// file is the grammar root of a config.txt document.
type file struct {
	Width   int      `parser:"'width' ':' @Int"`
	Height  int      `parser:"'height' ':' @Int"`
	Entries []*entry `parser:"'space' 'info' ':' '[' ( @@ ( ',' @@ )* )? ']'"`
}

// entry is one `[advance, "chars"]` pair.
type entry struct {
	Advance int           `parser:"'[' @Int ','"`
	Chars   StringLiteral `parser:"@String ']'"`
}

// StringLiteral strips the quotes on capture and undoes the \\ and \" escapes written by String.
// Any other character, tabs and newlines included, is taken literally.
type StringLiteral string

// Capture implements participle.Capture.
func (s *StringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("string literal capture requires value")
	}
	raw := values[0]
	if len(raw) < 2 {
		return fmt.Errorf("malformed string literal %s", raw)
	}
	var b strings.Builder
	escaped := false
	for _, r := range raw[1 : len(raw)-1] {
		if !escaped && r == '\\' {
			escaped = true
			continue
		}
		escaped = false
		b.WriteRune(r)
	}
	*s = StringLiteral(b.String())
	return nil
}

// Parse parses a descriptor from an io.Reader.
func Parse(r io.Reader) (*Descriptor, error) {
	f, err := fileParser.Parse(FileName, r)
	if err != nil {
		return nil, err
	}
	return f.descriptor(), nil
}

// ParseString parses a descriptor from a string.
func ParseString(input string) (*Descriptor, error) {
	f, err := fileParser.ParseString(FileName, input)
	if err != nil {
		return nil, err
	}
	return f.descriptor(), nil
}

func (f *file) descriptor() *Descriptor {
	d := &Descriptor{Width: f.Width, Height: f.Height}
	for _, e := range f.Entries {
		d.Groups = append(d.Groups, Group{Advance: e.Advance, Chars: string(e.Chars)})
	}
	return d
}
