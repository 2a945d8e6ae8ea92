package registry

import "sync/atomic"

// Store holds the process-wide registry behind an atomic pointer. Readers
// take a snapshot with Current and keep using it for the whole request;
// runtime updates replace the registry wholesale with Swap. In-flight
// readers never observe a partially updated registry.
type Store struct {
	current atomic.Pointer[Registry]
}

// NewStore creates a store seeded with reg.
func NewStore(reg *Registry) *Store {
	s := &Store{}
	s.current.Store(reg)
	return s
}

// Current returns the registry snapshot for this request.
func (s *Store) Current() *Registry {
	return s.current.Load()
}

// Swap installs a fully built replacement registry. This is the only
// mutation path; registries themselves are never edited in place.
func (s *Store) Swap(reg *Registry) {
	s.current.Store(reg)
}
