package locus

import (
	"regexp"
	"strings"
)

// locPattern is one citation shape. arity is the number of units it yields.
type locPattern struct {
	name  string
	re    *regexp.Regexp
	arity int
}

func (p locPattern) match(s string) ([]string, bool) {
	m := p.re.FindStringSubmatch(s)
	if m == nil || len(m)-1 != p.arity {
		return nil, false
	}
	return m[1:], true
}

// Patterns are tried in order and anchored at the start of the input.
// The first one that matches wins.
var locPatterns = []locPattern{
	{name: "book.line", re: regexp.MustCompile(`^Book (\d+) line (\d+)`), arity: 2},
	{name: "book.poem.line", re: regexp.MustCompile(`^Book (\d+) [\p{L}\p{N}_]+ (\d+) line (\d+)`), arity: 3},
	{name: "poem.line", re: regexp.MustCompile(`^[\p{L}\p{N}_]+ (\d+) line (\d+)`), arity: 2},
	{name: "line", re: regexp.MustCompile(`^Line (\d+)`), arity: 1},
}

var dottedLocus = regexp.MustCompile(`^[\p{L}\p{N}]+(?:\.[\p{L}\p{N}]+)*$`)

// ExtractLoc converts a citation such as "Book 3 line 45" into the dotted
// form "3.45". It reports false when no known pattern matches, which means
// the citation could not be parsed rather than that it is invalid.
func ExtractLoc(s string) (string, bool) {
	for _, p := range locPatterns {
		if groups, ok := p.match(s); ok {
			return strings.Join(groups, "."), true
		}
	}
	return "", false
}

// Normalize returns s unchanged when it is already a dotted locus and
// otherwise falls back to ExtractLoc. A dotted locus needs at least one
// digit, so a bare word such as a title is not taken for one.
func Normalize(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if dottedLocus.MatchString(s) && anyDigit.MatchString(s) {
		return s, true
	}
	return ExtractLoc(s)
}

// Units splits a locus on "." and trims each unit.
func Units(loc string) []string {
	units := strings.Split(loc, ".")
	for i, u := range units {
		units[i] = strings.TrimSpace(u)
	}
	return units
}
