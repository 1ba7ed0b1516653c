package locus

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// ErrInvalidSpan is returned when a locus range cannot be parsed.
var ErrInvalidSpan = errors.New("invalid locus span")

// spanNode is the grammar for ranges like "3.45-3.60" or "3.45-60".
type spanNode struct {
	First []string `parser:"@Unit ( '.' @Unit )*"`
	Last  []string `parser:"( '-' @Unit ( '.' @Unit )* )?"`
}

var spanLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Unit", Pattern: `[\p{L}\p{N}]+`},
	{Name: "Dot", Pattern: `\.`},
	{Name: "Dash", Pattern: `-`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var spanParser = participle.MustBuild[spanNode](
	participle.Lexer(spanLexer),
	participle.Elide("Whitespace"),
)

// Span is a pair of loci. It satisfies domain.Bounded, so it can stand in
// for a speech when checking containment.
type Span struct {
	First string
	Last  string
}

// FirstLine returns the opening locus.
func (s Span) FirstLine() string { return s.First }

// LastLine returns the closing locus.
func (s Span) LastLine() string { return s.Last }

func (s Span) String() string {
	if s.First == s.Last {
		return s.First
	}
	return s.First + "-" + s.Last
}

// ParseSpan parses a locus range.
// Supported formats:
//   - "3.45-3.60" (full range)
//   - "3.45-60" (end inherits the leading units of the start)
//   - "3.45" (single line)
func ParseSpan(input string) (Span, error) {
	node, err := spanParser.ParseString("", strings.TrimSpace(input))
	if err != nil {
		return Span{}, fmt.Errorf("%w %q: %v", ErrInvalidSpan, input, err)
	}

	first, last := node.First, node.Last
	switch {
	case len(last) == 0:
		last = first
	case len(last) > len(first):
		return Span{}, fmt.Errorf("%w %q: end has more units than start", ErrInvalidSpan, input)
	case len(last) < len(first):
		full := make([]string, 0, len(first))
		full = append(full, first[:len(first)-len(last)]...)
		last = append(full, last...)
	}

	return Span{First: strings.Join(first, "."), Last: strings.Join(last, ".")}, nil
}
