package track

import "fmt"

// ConflictError is returned by Scope.Set when a key is declared with a
// usage incompatible with one already recorded in the same scope — the
// generalized form of the barrier-state conflicts §4.5 says are "treated as
// a user error and asserted".
type ConflictError struct {
	Key      any
	Existing Uses
	New      Uses
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("track: usage conflict for %v: existing=%d new=%d", e.Key, e.Existing, e.New)
}

// Scope coalesces resource usage within one dependency level, keyed by
// whatever comparable key the caller uses to identify a resource (the
// render graph uses ResourceHandle). It mirrors BufferUsageScope's
// merge-if-compatible, conflict-if-not behavior.
type Scope[K comparable] struct {
	uses map[K]Uses
}

// NewScope returns an empty Scope.
func NewScope[K comparable]() *Scope[K] {
	return &Scope[K]{uses: make(map[K]Uses)}
}

// Set records usage for key, merging with any usage already present if
// compatible, or returning a *ConflictError if not.
func (s *Scope[K]) Set(key K, usage Uses) error {
	existing, ok := s.uses[key]
	if !ok {
		s.uses[key] = usage
		return nil
	}
	if !existing.IsCompatible(usage) {
		return &ConflictError{Key: key, Existing: existing, New: usage}
	}
	s.uses[key] = existing | usage
	return nil
}

// Get returns the usage recorded for key, or UsesNone if none.
func (s *Scope[K]) Get(key K) Uses { return s.uses[key] }

// Len returns the number of distinct keys recorded.
func (s *Scope[K]) Len() int { return len(s.uses) }
