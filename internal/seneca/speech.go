// Package seneca adapts freeform Senecan tragedy excerpts into speech
// records that can be compared with DICES speeches.
package seneca

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"loci/internal/domain"
	"loci/internal/linearray"
)

// Tag marks every Seneca passage so it can be told apart from DICES records.
const Tag = "sen"

// Lang is the language of every Seneca passage.
const Lang = "latin"

// ErrEmptyPassage is returned when a passage has no non-blank lines.
var ErrEmptyPassage = errors.New("empty passage")

var (
	speakerLabel = regexp.MustCompile(`^\s*\[(.+)\]`)
	trailingNum  = regexp.MustCompile(`\d+\s*$`)
)

// Speech is a pseudo-speech built from raw text. It implements domain.Speech.
type Speech struct {
	id      string
	speaker string
	lines   domain.LineArray
	text    string
	first   string
	last    string
}

// NewSpeech builds a speech from text such as "[Atreus] ira 12\nfuror".
// A bracketed speaker label at the start is removed, as is a line number
// at the very end of the text.
func NewSpeech(text, id string) (*Speech, error) {
	s := &Speech{id: id}
	text = strings.TrimSpace(text)

	if m := speakerLabel.FindStringSubmatch(text); m != nil {
		s.speaker = m[1]
		text = text[len(m[0]):]
	}
	text = trailingNum.ReplaceAllString(text, "")

	s.lines = linearray.Build(text)
	if len(s.lines) == 0 {
		return nil, fmt.Errorf("seneca speech %q: %w", id, ErrEmptyPassage)
	}
	s.text = s.lines.Text()
	s.first = s.lines[0].N
	s.last = s.lines[len(s.lines)-1].N
	return s, nil
}

func (s *Speech) ID() string              { return s.id }
func (s *Speech) Speaker() string         { return s.speaker }
func (s *Speech) Lang() string            { return Lang }
func (s *Speech) Tags() []string          { return []string{Tag} }
func (s *Speech) Lines() domain.LineArray { return s.lines }
func (s *Speech) Text() string            { return s.text }
func (s *Speech) FirstLine() string       { return s.first }
func (s *Speech) LastLine() string        { return s.last }

func (s *Speech) String() string {
	id := ""
	if s.id != "" {
		id = " " + s.id
	}
	return fmt.Sprintf("<SenecaSpeech%s: %s (%s-%s)>", id, s.speaker, s.first, s.last)
}
