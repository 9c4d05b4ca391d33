package offer

import (
	"sync"
	"sync/atomic"
)

// Store is an append-only, insertion-ordered collection of offers.
//
// Writers serialise on a mutex and publish a new slice header after each
// append. Readers load the current header without locking, so a scan only
// ever sees fully written offers.
type Store struct {
	mu     sync.Mutex
	offers atomic.Pointer[[]Offer]
}

// NewStore creates an empty offer store.
func NewStore() *Store {
	s := &Store{}
	empty := make([]Offer, 0, 16)
	s.offers.Store(&empty)
	return s
}

// Insert appends an offer. Duplicates are kept as independent entries.
func (s *Store) Insert(o Offer) {
	o = o.clone()

	s.mu.Lock()
	defer s.mu.Unlock()

	next := append(*s.offers.Load(), o)
	s.offers.Store(&next)
}

// FindFirstMatch returns a copy of the earliest inserted offer satisfying
// match.
func (s *Store) FindFirstMatch(match func(Offer) bool) (Offer, bool) {
	for _, o := range *s.offers.Load() {
		if match(o) {
			return o.clone(), true
		}
	}
	return Offer{}, false
}

// Snapshot returns copies of the offers in insertion order.
func (s *Store) Snapshot() []Offer {
	current := *s.offers.Load()
	out := make([]Offer, len(current))
	for i, o := range current {
		out[i] = o.clone()
	}
	return out
}

// Len returns the number of stored offers.
func (s *Store) Len() int {
	return len(*s.offers.Load())
}
