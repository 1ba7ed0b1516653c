package memory

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	"loci/internal/corpus"
	"loci/internal/domain"
	"loci/internal/locus"
	"loci/internal/logging"
	"loci/internal/seneca"
)

func speech(t *testing.T, text, id string) domain.Speech {
	t.Helper()
	s, err := seneca.NewSpeech(text, id)
	if err != nil {
		t.Fatalf("NewSpeech: %v", err)
	}
	return s
}

func TestAddGetAll(t *testing.T) {
	st := NewStorage()
	a := speech(t, "[Atreus] a 45\nb", "a")
	b := speech(t, "[Thyestes] c 50\nd", "b")
	if err := st.Add(a, b); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if got, ok := st.Get("b"); !ok || got != b {
		t.Errorf("Get(b) = %v, %v", got, ok)
	}
	if _, ok := st.Get("zzz"); ok {
		t.Error("Get(zzz) should miss")
	}
	all := st.All()
	if len(all) != 2 || all[0] != a || all[1] != b {
		t.Errorf("All = %v", all)
	}
}

func TestAddDuplicate(t *testing.T) {
	st := NewStorage()
	if err := st.Add(speech(t, "a 1", "x")); err != nil {
		t.Fatal(err)
	}
	err := st.Add(speech(t, "b 2", "y"), speech(t, "c 3", "x"))
	if !errors.Is(err, corpus.ErrDuplicateSpeech) {
		t.Fatalf("err = %v, want ErrDuplicateSpeech", err)
	}
	if len(st.All()) != 1 {
		t.Error("failed Add should not store anything")
	}
	if err := st.Add(speech(t, "b 2", "z"), speech(t, "c 3", "z")); !errors.Is(err, corpus.ErrDuplicateSpeech) {
		t.Errorf("duplicate within one call: err = %v", err)
	}
}

func TestClear(t *testing.T) {
	st := NewStorage()
	_ = st.Add(speech(t, "a 1", "x"))
	if err := st.Clear(); err != nil {
		t.Fatal(err)
	}
	if len(st.All()) != 0 {
		t.Error("Clear left speeches behind")
	}
	if err := st.Add(speech(t, "a 1", "x")); err != nil {
		t.Errorf("re-adding after Clear: %v", err)
	}
}

func TestContainingAndIntroducing(t *testing.T) {
	var buf bytes.Buffer
	cmp := locus.New(logging.New(&buf, logging.LevelDebug, logging.FormatText))

	st := NewStorage()
	early := speech(t, "a 45\nb\nc 55\nd", "early")
	late := speech(t, "x 61\ny 70", "late")
	if err := st.Add(early, late); err != nil {
		t.Fatal(err)
	}

	in := corpus.Containing(st, cmp, "50")
	if len(in) != 1 || in[0].ID() != "early" {
		t.Errorf("Containing(50) = %v", in)
	}

	// two-unit loci cannot be compared with one-unit bounds
	if got := corpus.Containing(st, cmp, "3.50"); len(got) != 0 {
		t.Errorf("Containing(3.50) = %v, want none", got)
	}
	if buf.Len() == 0 {
		t.Error("expected diagnostics for mismatched loci")
	}
	if got := corpus.Introducing(st, cmp, "60", 1); len(got) != 1 || got[0].ID() != "late" {
		t.Errorf("Introducing(60) = %v, want [late]", got)
	}
	if got := corpus.Introducing(st, cmp, "44", 1); len(got) != 1 || got[0].ID() != "early" {
		t.Errorf("Introducing(44) = %v, want [early]", got)
	}
}

func TestIntroducingTwoUnitLoci(t *testing.T) {
	cmp := locus.New(logging.New(&bytes.Buffer{}, logging.LevelDebug, logging.FormatText))
	st := NewStorage()
	_ = st.Add(
		locusSpeech{id: "s1", first: "3.45", last: "3.60"},
		locusSpeech{id: "s2", first: "3.47", last: "3.50"},
	)
	got := corpus.Introducing(st, cmp, "3.44", 3)
	if len(got) != 2 {
		t.Errorf("Introducing(3.44, 3) = %v", got)
	}
	got = corpus.Introducing(st, cmp, "3.44", 1)
	if len(got) != 1 || got[0].ID() != "s1" {
		t.Errorf("Introducing(3.44, 1) = %v", got)
	}
}

func TestConcurrentAccess(t *testing.T) {
	st := NewStorage()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = st.Add(locusSpeech{id: string(rune('a' + i)), first: "1", last: "2"})
			_ = st.All()
		}(i)
	}
	wg.Wait()
	if len(st.All()) != 8 {
		t.Errorf("got %d speeches, want 8", len(st.All()))
	}
}

type locusSpeech struct {
	id, first, last string
}

func (s locusSpeech) ID() string              { return s.id }
func (s locusSpeech) Speaker() string         { return "" }
func (s locusSpeech) Lang() string            { return "latin" }
func (s locusSpeech) Tags() []string          { return nil }
func (s locusSpeech) Lines() domain.LineArray { return nil }
func (s locusSpeech) Text() string            { return "" }
func (s locusSpeech) FirstLine() string       { return s.first }
func (s locusSpeech) LastLine() string        { return s.last }
