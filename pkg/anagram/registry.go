package anagram

import (
	"sync"

	"github.com/bastiangx/anagrams/pkg/charset"
)

// Registry indexes registered segments by every rune they still need, so a
// new word only meets segments it could extend or complete.
//
// Buckets are append-only snapshots: a segment is filed once, under the runes
// it needed at registration, and later joins never move it.
type Registry struct {
	mu      sync.RWMutex
	buckets map[rune][]*Segment
	count   int
}

// NewRegistry creates a registry with an empty bucket for each target rune.
func NewRegistry(target charset.Counts) *Registry {
	buckets := make(map[rune][]*Segment, len(target))
	for r := range target {
		buckets[r] = nil
	}
	return &Registry{buckets: buckets}
}

// Register files s under each rune it still needs. Invalid and complete
// segments are ignored and false is returned.
func (r *Registry) Register(s *Segment) bool {
	if !s.Valid() || s.Complete() {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.register(s)
	return true
}

// registerAll files a batch under a single lock and returns how many were filed.
func (r *Registry) registerAll(segments []*Segment) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, s := range segments {
		if !s.Valid() || s.Complete() {
			continue
		}
		r.register(s)
		n++
	}
	return n
}

func (r *Registry) register(s *Segment) {
	for c := range s.remaining {
		r.buckets[c] = append(r.buckets[c], s)
	}
	r.count++
}

// Candidates returns the deduplicated union of the buckets for runes.
// A registered segment can only be extended or completed by a word sharing
// one of its needed runes, so nothing outside these buckets can match.
func (r *Registry) Candidates(runes []rune) []*Segment {
	r.mu.RLock()
	defer r.mu.RUnlock()

	size := 0
	for _, c := range runes {
		size += len(r.buckets[c])
	}
	if size == 0 {
		return nil
	}

	seen := make(map[*Segment]struct{}, size)
	out := make([]*Segment, 0, size)
	for _, c := range runes {
		for _, s := range r.buckets[c] {
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}

// Len is the number of registered segments.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.count
}

// Buckets returns the size of every bucket keyed by rune.
func (r *Registry) Buckets() map[rune]int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[rune]int, len(r.buckets))
	for c, b := range r.buckets {
		out[c] = len(b)
	}
	return out
}
