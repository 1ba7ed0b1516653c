package features

import (
	"math"
	"reflect"
	"testing"

	"loci/internal/domain"
	"loci/internal/seneca"
)

func mustSpeech(t *testing.T, text string) domain.Speech {
	t.Helper()
	s, err := seneca.NewSpeech(text, "")
	if err != nil {
		t.Fatalf("NewSpeech(%q): %v", text, err)
	}
	return s
}

func TestTokenLemmatizer(t *testing.T) {
	l := NewTokenLemmatizer("et")
	got := l.Lemmas("Ira et FUROR, ira!")
	want := []string{"ira", "furor", "ira"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Lemmas = %v, want %v", got, want)
	}
	if l.Lemmas("12 34") != nil {
		t.Error("digits should not produce lemmas")
	}
}

func TestBuild(t *testing.T) {
	e := NewExtractor(nil)
	s := mustSpeech(t, "[Atreus] ira ira 10\nfuror dolor")

	raw := e.Build(s, []string{"ira", "furor", "amor"}, false)
	if raw["ira"] != 2 || raw["furor"] != 1 || raw["amor"] != 0 {
		t.Errorf("raw counts = %v", raw)
	}

	norm := e.Build(s, []string{"ira", "dolor"}, true)
	if math.Abs(norm["ira"]-0.5) > 1e-9 || math.Abs(norm["dolor"]-0.25) > 1e-9 {
		t.Errorf("normalized = %v", norm)
	}
}

func TestBuildNilSpeech(t *testing.T) {
	v := NewExtractor(nil).Build(nil, []string{"ira"}, true)
	if v["ira"] != 0 {
		t.Errorf("expected zero vector, got %v", v)
	}
}

func TestSelect(t *testing.T) {
	e := NewExtractor(NewTokenLemmatizer(LatinStopwords...))
	speeches := []domain.Speech{
		mustSpeech(t, "ira et furor\nira"),
		mustSpeech(t, "furor et dolor\nira"),
	}
	got := e.Select(speeches, 2)
	want := []string{"ira", "furor"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Select = %v, want %v", got, want)
	}

	all := e.Select(speeches, -1)
	if !reflect.DeepEqual(all, []string{"ira", "furor", "dolor"}) {
		t.Errorf("Select(all) = %v", all)
	}
}

func TestMatrix(t *testing.T) {
	e := NewExtractor(nil)
	speeches := []domain.Speech{mustSpeech(t, "ira"), mustSpeech(t, "amor amor")}
	rows := e.Matrix(speeches, []string{"ira", "amor"}, false)
	if len(rows) != 2 || rows[0]["ira"] != 1 || rows[1]["amor"] != 2 {
		t.Errorf("Matrix = %v", rows)
	}
}
