package domain

import "strings"

// Line is a single numbered line of a passage.
type Line struct {
	N    string `json:"n" yaml:"n"`
	Text string `json:"text" yaml:"text"`
}

// LineArray is an ordered sequence of lines in source order.
type LineArray []Line

// Text joins the line texts with single spaces.
func (a LineArray) Text() string {
	parts := make([]string, len(a))
	for i, l := range a {
		parts[i] = l.Text
	}
	return strings.Join(parts, " ")
}

// Bounded is anything with first and last line loci (l_fi, l_la).
type Bounded interface {
	FirstLine() string
	LastLine() string
}

// Speech is a speech-like record. Both DICES export records and the
// synthetic Seneca passages satisfy it.
type Speech interface {
	Bounded
	ID() string
	Speaker() string
	Lang() string
	Tags() []string
	Lines() LineArray
	Text() string
}

// LineBuilder turns a block of raw text into a line array.
type LineBuilder interface {
	Build(text string) LineArray
}

// Lemmatizer maps passage text to the lemmas used for feature extraction.
type Lemmatizer interface {
	Lemmas(text string) []string
}
