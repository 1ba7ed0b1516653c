// Package features builds lemma-frequency vectors for speeches so Seneca
// passages and DICES records can be compared on the same footing.
package features

import (
	"regexp"
	"sort"
	"strings"

	"loci/internal/domain"
)

// TokenLemmatizer is a stand-in lemmatizer: it lower-cases word tokens and
// drops stopwords. Plug in a real lemmatizer through domain.Lemmatizer.
type TokenLemmatizer struct {
	tokenPattern *regexp.Regexp
	stopwords    map[string]struct{}
}

// NewTokenLemmatizer creates a lemmatizer with the given stop-list.
func NewTokenLemmatizer(stopwords ...string) *TokenLemmatizer {
	m := make(map[string]struct{}, len(stopwords))
	for _, w := range stopwords {
		m[strings.ToLower(w)] = struct{}{}
	}
	return &TokenLemmatizer{
		tokenPattern: regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*`),
		stopwords:    m,
	}
}

// Lemmas returns the tokens of text in order.
func (l *TokenLemmatizer) Lemmas(text string) []string {
	raw := l.tokenPattern.FindAllString(strings.ToLower(text), -1)
	if len(raw) == 0 {
		return nil
	}
	out := raw[:0]
	for _, t := range raw {
		if _, isStop := l.stopwords[t]; isStop {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Extractor counts lemmas in speeches.
type Extractor struct {
	lemmatizer domain.Lemmatizer
}

// NewExtractor returns an Extractor. A nil lemmatizer uses TokenLemmatizer
// with no stopwords.
func NewExtractor(lemmatizer domain.Lemmatizer) *Extractor {
	if lemmatizer == nil {
		lemmatizer = NewTokenLemmatizer()
	}
	return &Extractor{lemmatizer: lemmatizer}
}

func (e *Extractor) counts(s domain.Speech) (map[string]int, int) {
	counts := make(map[string]int)
	total := 0
	if s == nil {
		return counts, 0
	}
	for _, lemma := range e.lemmatizer.Lemmas(s.Text()) {
		counts[lemma]++
		total++
	}
	return counts, total
}

// Build returns the value of every feature in featureset for s. With
// normalize set, counts are divided by the number of lemmas in the speech.
func (e *Extractor) Build(s domain.Speech, featureset []string, normalize bool) map[string]float64 {
	counts, total := e.counts(s)
	denom := 1.0
	if normalize && total > 0 {
		denom = float64(total)
	}
	vector := make(map[string]float64, len(featureset))
	for _, feat := range featureset {
		vector[feat] = float64(counts[feat]) / denom
	}
	return vector
}

// Select returns the n most frequent lemmas across speeches. Ties are
// broken alphabetically so the result is stable.
func (e *Extractor) Select(speeches []domain.Speech, n int) []string {
	freq := make(map[string]int)
	for _, s := range speeches {
		counts, _ := e.counts(s)
		for lemma, c := range counts {
			freq[lemma] += c
		}
	}
	lemmas := make([]string, 0, len(freq))
	for lemma := range freq {
		lemmas = append(lemmas, lemma)
	}
	sort.Slice(lemmas, func(i, j int) bool {
		if freq[lemmas[i]] != freq[lemmas[j]] {
			return freq[lemmas[i]] > freq[lemmas[j]]
		}
		return lemmas[i] < lemmas[j]
	})
	if n >= 0 && n < len(lemmas) {
		lemmas = lemmas[:n]
	}
	return lemmas
}

// Matrix builds one vector per speech over a shared featureset.
func (e *Extractor) Matrix(speeches []domain.Speech, featureset []string, normalize bool) []map[string]float64 {
	rows := make([]map[string]float64, len(speeches))
	for i, s := range speeches {
		rows[i] = e.Build(s, featureset, normalize)
	}
	return rows
}

// LatinStopwords is a short list of Latin function words.
var LatinStopwords = []string{
	"et", "in", "est", "non", "ad", "cum", "ut", "sed", "que", "nec", "neque", "aut", "uel", "vel",
	"si", "quod", "qui", "quae", "iam", "tam", "nunc", "atque", "ac", "per", "ab", "a", "ex", "e", "de",
}
