package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/shikidesk/internal/catalog"
)

// Snapshot represents the search results currently shown by the UI.
type Snapshot struct {
	Key         string
	Cards       []catalog.Card
	Page        int
	Limit       int
	HasMore     bool
	Loading     bool
	LastUpdated time.Time
	LastError   error
}

// IsEmpty reports whether a finished search produced no cards.
func (s Snapshot) IsEmpty() bool {
	return !s.Loading && s.LastError == nil && len(s.Cards) == 0 && !s.LastUpdated.IsZero()
}

// Token identifies one in-flight request. Results carrying a token from a
// superseded search are dropped.
type Token struct {
	seq  uint64
	Page int
}

// Store coordinates search results between request goroutines and the UI.
type Store struct {
	mu       sync.RWMutex
	seq      uint64
	snapshot Snapshot
}

// Begin starts a new search identified by key. Any request still in flight
// becomes stale. The previous cards stay visible until results arrive.
func (s *Store) Begin(key string) Token {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	s.snapshot.Key = key
	s.snapshot.Loading = true
	s.snapshot.LastError = nil
	return Token{seq: s.seq, Page: 1}
}

// BeginMore requests the next page of the current search. It reports false
// while a request is in flight or when the last page was short.
func (s *Store) BeginMore() (Token, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snapshot.Loading || !s.snapshot.HasMore {
		return Token{}, false
	}
	s.snapshot.Loading = true
	s.snapshot.LastError = nil
	return Token{seq: s.seq, Page: s.snapshot.Page + 1}, true
}

// Apply stores the results of tok. Page one replaces the list, later pages
// append to it. It reports false when tok is stale.
func (s *Store) Apply(tok Token, cards []catalog.Card, limit int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if tok.seq != s.seq {
		return false
	}
	if tok.Page <= 1 {
		s.snapshot.Cards = cloneCards(cards)
	} else {
		s.snapshot.Cards = append(cloneCards(s.snapshot.Cards), cards...)
	}
	s.snapshot.Page = tok.Page
	s.snapshot.Limit = limit
	s.snapshot.HasMore = limit > 0 && len(cards) == limit
	s.snapshot.Loading = false
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	return true
}

// Fail records err for tok and keeps the previous cards. It reports false when
// tok is stale.
func (s *Store) Fail(tok Token, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if tok.seq != s.seq {
		return false
	}
	s.snapshot.Loading = false
	s.snapshot.LastError = err
	s.snapshot.LastUpdated = time.Now()
	return true
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Cards = cloneCards(s.snapshot.Cards)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneCards(cards []catalog.Card) []catalog.Card {
	if len(cards) == 0 {
		return nil
	}
	dup := make([]catalog.Card, len(cards))
	copy(dup, cards)
	return dup
}
