package server

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/dmitrymomot/formkit/pkg/form"
)

// Store holds the form definitions served by the API. Forms are built
// fresh for every request; definitions are never mutated after Put.
type Store struct {
	mu   sync.RWMutex
	kit  *form.Kit
	defs map[string]*form.Definition
}

func NewStore(kit *form.Kit) *Store {
	return &Store{kit: kit, defs: make(map[string]*form.Definition)}
}

// Put adds or replaces a definition after checking that it builds.
func (s *Store) Put(def *form.Definition) error {
	if _, err := s.kit.Build(def); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.defs[def.Name] = def
	return nil
}

// LoadDir puts every definition found in dir and returns how many were
// loaded.
func (s *Store) LoadDir(dir string) (int, error) {
	defs, err := form.LoadDir(dir)
	if err != nil {
		return 0, err
	}
	for _, name := range slices.Sorted(maps.Keys(defs)) {
		if err := s.Put(defs[name]); err != nil {
			return 0, fmt.Errorf("form %q: %w", name, err)
		}
	}
	return len(defs), nil
}

func (s *Store) Get(name string) (*form.Definition, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	def, ok := s.defs[name]
	return def, ok
}

// Names returns the form names in sorted order.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Sorted(maps.Keys(s.defs))
}

// Build creates a new form instance for name.
func (s *Store) Build(name string) (*form.Form, error) {
	def, ok := s.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrFormNotFound, name)
	}
	return s.kit.Build(def)
}
