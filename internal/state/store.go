package state

import "github.com/atomicstack/spiris-tui/internal/entity"

// Store holds one collection per materialized entity kind.
type Store struct {
	collections map[entity.Kind]*Collection
}

func NewStore() *Store {
	return &Store{collections: make(map[entity.Kind]*Collection)}
}

// Get returns the collection for kind, creating it on first use.
func (s *Store) Get(kind entity.Kind) *Collection {
	if c, ok := s.collections[kind]; ok {
		return c
	}
	c := NewCollection(kind)
	s.collections[kind] = c
	return c
}

// Lookup returns the collection for kind only if it has been materialized.
func (s *Store) Lookup(kind entity.Kind) (*Collection, bool) {
	c, ok := s.collections[kind]
	return c, ok
}

// Loading reports whether any collection has an outstanding load.
func (s *Store) Loading() bool {
	for _, c := range s.collections {
		if c.Loading() {
			return true
		}
	}
	return false
}
