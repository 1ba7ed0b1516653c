package linearray

import (
	"math/big"
	"regexp"
	"strings"

	"loci/internal/domain"
)

// Builder turns loosely formatted verse into numbered lines. A line ending
// in whitespace plus digits carries an explicit number; other lines get
// the previous number plus one.
type Builder struct {
	start string
	label *regexp.Regexp
	eol   *strings.Replacer
}

// NewBuilder returns a Builder whose counter starts at start. An empty or
// non-numeric start falls back to "1".
func NewBuilder(start string) *Builder {
	if _, ok := new(big.Int).SetString(start, 10); !ok {
		start = "1"
	}
	return &Builder{
		start: start,
		label: regexp.MustCompile(`\s+(\d+)\s*$`),
		eol:   strings.NewReplacer("\r\n", "\n", "\r", "\n"),
	}
}

// Build returns one line per non-blank line of text, in input order.
// Blank lines are dropped and do not advance the counter. The trailing
// label stays in the line text; callers wanting clean text must strip it
// themselves.
func (b *Builder) Build(text string) domain.LineArray {
	var lines domain.LineArray
	n := b.start
	for _, raw := range strings.Split(b.eol.Replace(text), "\n") {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		if m := b.label.FindStringSubmatch(raw); m != nil {
			n = m[1]
		} else {
			n = next(n)
		}
		lines = append(lines, domain.Line{N: n, Text: trimmed})
	}
	return lines
}

// next increments n without a size limit; labels are unbounded digit runs.
func next(n string) string {
	v, ok := new(big.Int).SetString(n, 10)
	if !ok {
		return n
	}
	return v.Add(v, big.NewInt(1)).String()
}

var defaultBuilder = NewBuilder("1")

// Build builds a line array with the counter starting at "1".
func Build(text string) domain.LineArray {
	return defaultBuilder.Build(text)
}
