package memory

import (
	"fmt"
	"sync"

	"loci/internal/corpus"
	"loci/internal/domain"
)

// Storage is an in-memory speech store that keeps insertion order.
type Storage struct {
	mu       sync.RWMutex
	speeches []domain.Speech
	byID     map[string]int
}

func NewStorage() *Storage { return &Storage{byID: make(map[string]int)} }

// Add stores speeches. Nothing is stored if any ID is already present.
func (s *Storage) Add(speeches ...domain.Speech) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := make(map[string]struct{}, len(speeches))
	for _, sp := range speeches {
		id := sp.ID()
		if _, ok := s.byID[id]; ok {
			return fmt.Errorf("%w: %s", corpus.ErrDuplicateSpeech, id)
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("%w: %s", corpus.ErrDuplicateSpeech, id)
		}
		seen[id] = struct{}{}
	}
	for _, sp := range speeches {
		s.byID[sp.ID()] = len(s.speeches)
		s.speeches = append(s.speeches, sp)
	}
	return nil
}

func (s *Storage) Get(id string) (domain.Speech, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.byID[id]
	if !ok {
		return nil, false
	}
	return s.speeches[i], true
}

// All returns a snapshot of the stored speeches.
func (s *Storage) All() []domain.Speech {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Speech, len(s.speeches))
	copy(out, s.speeches)
	return out
}

func (s *Storage) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.speeches = nil
	s.byID = make(map[string]int)
	return nil
}
