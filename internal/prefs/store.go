package prefs

import "sync"

// Store keeps the current settings in memory and writes every change back to
// its file. It is safe for concurrent use.
type Store struct {
	path string

	mu      sync.RWMutex
	current Prefs
}

// NewStore wraps already loaded settings. An empty path saves to the default
// location.
func NewStore(path string, initial Prefs) *Store {
	return &Store{path: path, current: initial.Normalize()}
}

// Get returns a copy of the current settings.
func (s *Store) Get() Prefs {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.current)
}

// AllowAdultContent reports the current adult-content setting.
func (s *Store) AllowAdultContent() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.AllowAdultContent()
}

// Update applies fn to the current settings and persists the result. The
// in-memory value changes only when the save succeeds.
func (s *Store) Update(fn func(Prefs) Prefs) (Prefs, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := fn(clone(s.current)).Normalize()
	if err := Save(s.path, next); err != nil {
		return clone(s.current), err
	}
	s.current = next
	return clone(next), nil
}

func clone(p Prefs) Prefs {
	if p.History != nil {
		p.History = append([]string(nil), p.History...)
	}
	return p
}
