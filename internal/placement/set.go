package placement

import "sync"

// Set accumulates finalized placements across a session. It is append-only:
// placements are never mutated or removed once added. Appends are
// mutex-serialized so searches finishing on different goroutines can record
// their results safely.
type Set struct {
	mu         sync.Mutex
	placements []ScoredPlacement
}

// Append records a finalized placement.
func (s *Set) Append(p ScoredPlacement) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.placements = append(s.placements, p)
}

// Len returns the number of recorded placements.
func (s *Set) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.placements)
}

// All returns the recorded placements in insertion order. The returned slice
// is a copy.
func (s *Set) All() []ScoredPlacement {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ScoredPlacement, len(s.placements))
	copy(out, s.placements)
	return out
}
