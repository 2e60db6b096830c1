package utils

import "sync"

// SeenSet tracks channel IDs already handled during a run, so a channel
// surfacing under two keywords is only processed once.
type SeenSet struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// NewSeenSet creates an empty SeenSet.
func NewSeenSet() *SeenSet {
	return &SeenSet{seen: make(map[string]struct{})}
}

// Add returns true if the ID was newly added, false if already present.
func (s *SeenSet) Add(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.seen[id]; exists {
		return false
	}
	s.seen[id] = struct{}{}
	return true
}

// Size returns the number of unique IDs tracked.
func (s *SeenSet) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.seen)
}
