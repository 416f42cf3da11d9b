package store

import (
	"sync"

	"github.com/SluberskiHomeLab/panelcss/internal/buildcfg"
)

// Store provides access to the current build configuration record and its
// resolved theme.
type Store interface {
	Config() (buildcfg.Config, error)
	Theme() (buildcfg.ResolvedTheme, error)
	Matcher() *buildcfg.Matcher
	Replace(cfg buildcfg.Config) error
}

// MemoryStore keeps the current record in-memory and guards access with a
// RWMutex. Records are swapped whole; a stored record is never mutated.
type MemoryStore struct {
	mu      sync.RWMutex
	cfg     buildcfg.Config
	theme   buildcfg.ResolvedTheme
	matcher *buildcfg.Matcher
}

// NewMemoryStore initialises the store with the scaffold record.
func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{}
	if err := s.Replace(buildcfg.Scaffold()); err != nil {
		// the scaffold is valid by construction
		panic(err)
	}
	return s
}

// Config returns a defensive copy of the current record.
func (s *MemoryStore) Config() (buildcfg.Config, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.cfg.Clone(), nil
}

// Theme returns a defensive copy of the resolved theme for the current record.
func (s *MemoryStore) Theme() (buildcfg.ResolvedTheme, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.theme.Clone(), nil
}

// Matcher returns the content-coverage matcher for the current record.
// Matchers are immutable and safe for concurrent use.
func (s *MemoryStore) Matcher() *buildcfg.Matcher {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.matcher
}

// Replace validates the provided record and atomically swaps it in together
// with its resolved theme and matcher. On validation failure the previous
// record stays in place and the error is returned.
func (s *MemoryStore) Replace(cfg buildcfg.Config) error {
	next := cfg.Clone()
	if next.Plugins == nil {
		next.Plugins = []string{}
	}
	if err := next.Validate(); err != nil {
		return err
	}
	matcher, err := buildcfg.NewMatcher(next)
	if err != nil {
		return err
	}
	theme := next.ResolveTheme()

	s.mu.Lock()
	s.cfg = next
	s.theme = theme
	s.matcher = matcher
	s.mu.Unlock()

	return nil
}
