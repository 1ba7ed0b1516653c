package seneca

import (
	"errors"
	"strings"
	"testing"

	"loci/internal/domain"
	"loci/internal/locus"
)

func TestNewSpeech(t *testing.T) {
	s, err := NewSpeech("[Atreus] ira 12\nfuror", "thy-1")
	if err != nil {
		t.Fatalf("NewSpeech: %v", err)
	}
	if s.Speaker() != "Atreus" {
		t.Errorf("Speaker = %q, want Atreus", s.Speaker())
	}
	if s.FirstLine() != "12" || s.LastLine() != "13" {
		t.Errorf("bounds = %s-%s, want 12-13", s.FirstLine(), s.LastLine())
	}
	if s.Text() != "ira 12 furor" {
		t.Errorf("Text = %q", s.Text())
	}
	if s.Lang() != "latin" {
		t.Errorf("Lang = %q", s.Lang())
	}
	if tags := s.Tags(); len(tags) != 1 || tags[0] != Tag {
		t.Errorf("Tags = %v", tags)
	}
	if s.ID() != "thy-1" {
		t.Errorf("ID = %q", s.ID())
	}
}

func TestNewSpeechStripsTrailingNumber(t *testing.T) {
	s, err := NewSpeech("[Thyestes] quid me 920\nrecepto 925", "")
	if err != nil {
		t.Fatalf("NewSpeech: %v", err)
	}
	lines := s.Lines()
	if len(lines) != 2 {
		t.Fatalf("got %d lines", len(lines))
	}
	if lines[1].Text != "recepto" || lines[1].N != "921" {
		t.Errorf("last line = %+v, want recepto/921", lines[1])
	}
	if s.LastLine() != "921" {
		t.Errorf("LastLine = %q", s.LastLine())
	}
}

func TestNewSpeechWithoutSpeaker(t *testing.T) {
	s, err := NewSpeech("  nulla vox 100\nmaior  ", "")
	if err != nil {
		t.Fatalf("NewSpeech: %v", err)
	}
	if s.Speaker() != "" {
		t.Errorf("Speaker = %q, want empty", s.Speaker())
	}
	if s.FirstLine() != "100" || s.LastLine() != "101" {
		t.Errorf("bounds = %s-%s", s.FirstLine(), s.LastLine())
	}
}

func TestNewSpeechEmpty(t *testing.T) {
	for _, text := range []string{"", "   ", "[Chorus]", "[Chorus] 12"} {
		if _, err := NewSpeech(text, "x"); !errors.Is(err, ErrEmptyPassage) {
			t.Errorf("NewSpeech(%q) error = %v, want ErrEmptyPassage", text, err)
		}
	}
}

func TestTextRoundTrip(t *testing.T) {
	inputs := []string{
		"[Atreus] ira 12\nfuror",
		"a 1\n\n  b  \nc 9\n",
		"[Nuntius]   quis hic tumultus\n\tquae domus 3",
	}
	for _, in := range inputs {
		s, err := NewSpeech(in, "")
		if err != nil {
			t.Fatalf("NewSpeech(%q): %v", in, err)
		}
		var parts []string
		for _, l := range s.Lines() {
			parts = append(parts, l.Text)
		}
		if got := strings.Join(parts, " "); got != s.Text() {
			t.Errorf("Text() = %q, joined lines = %q", s.Text(), got)
		}
	}
}

func TestString(t *testing.T) {
	s, err := NewSpeech("[Atreus] ira 12\nfuror", "thy-1")
	if err != nil {
		t.Fatal(err)
	}
	if got := s.String(); got != "<SenecaSpeech thy-1: Atreus (12-13)>" {
		t.Errorf("String() = %q", got)
	}

	s, err = NewSpeech("ira 12", "")
	if err != nil {
		t.Fatal(err)
	}
	if got := s.String(); got != "<SenecaSpeech:  (2-2)>" {
		t.Errorf("String() = %q", got)
	}
}

func TestSpeechWorksWithComparator(t *testing.T) {
	s, err := NewSpeech("[Atreus] a 45\nb\nc\nd 60", "")
	if err != nil {
		t.Fatal(err)
	}
	var sp domain.Speech = s
	// the trailing label on the final line is stripped before numbering
	if sp.LastLine() != "48" {
		t.Fatalf("LastLine = %q, want 48", sp.LastLine())
	}
	if in, ok := locus.InSpeech("46", sp); !ok || !in {
		t.Errorf("InSpeech(46) = %v, %v", in, ok)
	}
	if intro, ok := locus.IsSpeechIntro("1.44", locus.Span{First: "1." + sp.FirstLine(), Last: "1." + sp.LastLine()}, 1); !ok || !intro {
		t.Errorf("IsSpeechIntro = %v, %v", intro, ok)
	}
}
