package corpus

import (
	"errors"

	"loci/internal/domain"
	"loci/internal/locus"
)

// ErrDuplicateSpeech is returned when a speech ID is already stored.
var ErrDuplicateSpeech = errors.New("duplicate speech id")

// Storage holds speeches for locus lookups.
type Storage interface {
	Add(speeches ...domain.Speech) error
	Get(id string) (domain.Speech, bool)
	All() []domain.Speech
	Clear() error
}

// Containing returns the stored speeches whose bounds contain line.
// Speeches whose verdict is unknown are skipped.
func Containing(st Storage, cmp *locus.Comparator, line string) []domain.Speech {
	var out []domain.Speech
	for _, s := range st.All() {
		if in, ok := cmp.InSpeech(line, s); ok && in {
			out = append(out, s)
		}
	}
	return out
}

// Introducing returns the stored speeches that begin within window lines
// after line. Speeches whose verdict is unknown are skipped.
func Introducing(st Storage, cmp *locus.Comparator, line string, window int) []domain.Speech {
	var out []domain.Speech
	for _, s := range st.All() {
		if intro, ok := cmp.IsSpeechIntro(line, s, window); ok && intro {
			out = append(out, s)
		}
	}
	return out
}
