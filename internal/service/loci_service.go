package service

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/zeebo/xxh3"
	"gopkg.in/yaml.v3"

	"loci/internal/corpus"
	"loci/internal/dices"
	"loci/internal/domain"
	"loci/internal/locus"
	"loci/internal/logging"
	"loci/internal/seneca"
)

// ErrUnparseableCitation is returned by Locate when a citation matches no
// known locus format.
var ErrUnparseableCitation = errors.New("unparseable citation")

// Result is the answer to a locus query.
type Result struct {
	Locus       string
	Containing  []domain.Speech
	Introducing []domain.Speech
}

// LociService loads speeches and answers locus queries against them.
type LociService struct {
	store  corpus.Storage
	cmp    *locus.Comparator
	window int
}

func NewLociService(store corpus.Storage, cmp *locus.Comparator, window int) *LociService {
	if cmp == nil {
		cmp = &locus.Comparator{}
	}
	if window <= 0 {
		window = locus.DefaultWindow
	}
	return &LociService{store: store, cmp: cmp, window: window}
}

// Window is the default introduction window.
func (s *LociService) Window() int { return s.window }

// Speeches returns every loaded speech.
func (s *LociService) Speeches() []domain.Speech { return s.store.All() }

type senecaFile struct {
	Passages []struct {
		ID   string `yaml:"id"`
		Text string `yaml:"text"`
	} `yaml:"passages"`
}

// IngestSeneca loads Seneca passages from YAML (passages: [{id, text}])
// or plain text files. In text files each passage starts at a line
// beginning with a [Speaker] label. It returns the number of speeches
// added.
func (s *LociService) IngestSeneca(paths []string) (int, error) {
	var speeches []domain.Speech
	for _, m := range expand(paths) {
		data, err := os.ReadFile(m)
		if err != nil {
			return 0, err
		}

		var texts, ids []string
		switch strings.ToLower(filepath.Ext(m)) {
		case ".yaml", ".yml":
			var f senecaFile
			if err := yaml.Unmarshal(data, &f); err != nil {
				return 0, fmt.Errorf("%s: %w", m, err)
			}
			for _, p := range f.Passages {
				texts = append(texts, p.Text)
				ids = append(ids, p.ID)
			}
		case ".txt":
			texts = splitPassages(string(data))
			ids = make([]string, len(texts))
		default:
			logging.Debug("skipping file with unknown extension", "path", m)
			continue
		}

		for i, text := range texts {
			id := ids[i]
			if id == "" {
				id = hashString(m + ":" + strconv.Itoa(i))
			}
			sp, err := seneca.NewSpeech(text, id)
			if errors.Is(err, seneca.ErrEmptyPassage) {
				logging.Warn("skipping empty passage", "path", m, "index", i)
				continue
			}
			if err != nil {
				return 0, err
			}
			speeches = append(speeches, sp)
		}
	}
	if err := s.store.Add(speeches...); err != nil {
		return 0, err
	}
	logging.Info("ingested seneca passages", "count", len(speeches))
	return len(speeches), nil
}

// IngestDices loads DICES speech exports (JSON). It returns the number of
// speeches added.
func (s *LociService) IngestDices(paths []string) (int, error) {
	var speeches []domain.Speech
	for _, m := range expand(paths) {
		if strings.ToLower(filepath.Ext(m)) != ".json" {
			logging.Debug("skipping non-json file", "path", m)
			continue
		}
		recs, err := dices.LoadFile(m)
		if err != nil {
			return 0, err
		}
		for _, r := range recs {
			speeches = append(speeches, r)
		}
	}
	if err := s.store.Add(speeches...); err != nil {
		return 0, err
	}
	logging.Info("ingested dices speeches", "count", len(speeches))
	return len(speeches), nil
}

// Locate finds the speeches that contain the citation and those it
// introduces within window lines. A window of zero or less uses the
// service default.
func (s *LociService) Locate(citation string, window int) (Result, error) {
	loc, ok := locus.Normalize(citation)
	if !ok {
		return Result{}, fmt.Errorf("%w: %q", ErrUnparseableCitation, citation)
	}
	if window <= 0 {
		window = s.window
	}
	return Result{
		Locus:       loc,
		Containing:  corpus.Containing(s.store, s.cmp, loc),
		Introducing: corpus.Introducing(s.store, s.cmp, loc, window),
	}, nil
}

var passageStart = regexp.MustCompile(`(?m)^\s*\[`)

// splitPassages cuts text before every line that opens with a speaker label.
func splitPassages(text string) []string {
	idx := passageStart.FindAllStringIndex(text, -1)
	var out []string
	prev := 0
	for _, loc := range idx {
		if chunk := text[prev:loc[0]]; strings.TrimSpace(chunk) != "" {
			out = append(out, chunk)
		}
		prev = loc[0]
	}
	if chunk := text[prev:]; strings.TrimSpace(chunk) != "" {
		out = append(out, chunk)
	}
	return out
}

func expand(paths []string) []string {
	var out []string
	for _, p := range paths {
		matches, _ := filepath.Glob(p)
		if matches == nil {
			matches = []string{p}
		}
		out = append(out, matches...)
	}
	return out
}

func hashString(s string) string {
	return fmt.Sprintf("%016x", xxh3.HashString(s))
}
