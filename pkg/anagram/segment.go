package anagram

import (
	"sync/atomic"

	"github.com/bastiangx/anagrams/pkg/charset"
)

// Segment is a partial (or complete) match: the words it is built from and
// the character accounting against the target.
//
// Content is immutable once built; Join creates a new Segment. Only the
// generation mark changes, and only through mark.
type Segment struct {
	words            []string
	used             charset.Counts
	remaining        charset.Counts
	remainingClasses int
	remainingLength  int
	generation       atomic.Uint64
}

// invalidSegment returns the sentinel for text or joins that cannot fit the target.
func invalidSegment() *Segment {
	return &Segment{remainingClasses: -1, remainingLength: -1}
}

// NewSegment builds a single word segment. A word that does not fit the
// target yields an invalid segment.
func NewSegment(target charset.Counts, word string) *Segment {
	used, remaining, err := charset.Analyze(target, word)
	if err != nil {
		return invalidSegment()
	}
	return newSegment([]string{word}, used, remaining)
}

func newSegment(words []string, used, remaining charset.Counts) *Segment {
	return &Segment{
		words:            words,
		used:             used,
		remaining:        remaining,
		remainingClasses: remaining.Classes(),
		remainingLength:  remaining.Len(),
	}
}

// Join appends b's words to a and takes b's runes out of a's remainder.
// The result is invalid if b does not fit into what a still needs.
func Join(a, b *Segment) *Segment {
	if !a.Valid() || !b.Valid() {
		return invalidSegment()
	}
	used, remaining, err := charset.Join(a.used, a.remaining, b.used)
	if err != nil {
		return invalidSegment()
	}

	words := make([]string, 0, len(a.words)+len(b.words))
	words = append(words, a.words...)
	words = append(words, b.words...)
	return newSegment(words, used, remaining)
}

// IsFullCompletion reports whether part uses up exactly everything candidate
// still needs. This is stricter than a successful Join: every remaining slot
// of candidate must be filled.
func IsFullCompletion(candidate, part *Segment) bool {
	if !candidate.Valid() || !part.Valid() {
		return false
	}
	if candidate.remainingClasses != part.used.Classes() {
		return false
	}
	for r, n := range part.used {
		if candidate.remaining[r] != n {
			return false
		}
	}
	return true
}

// Words returns a copy of the contributing words in join order.
func (s *Segment) Words() []string {
	out := make([]string, len(s.words))
	copy(out, s.words)
	return out
}

// Used returns a copy of the consumed rune counts.
func (s *Segment) Used() charset.Counts { return s.used.Clone() }

// Remaining returns a copy of the rune counts still required.
func (s *Segment) Remaining() charset.Counts { return s.remaining.Clone() }

// RemainingClasses is the number of distinct runes still required, -1 when invalid.
func (s *Segment) RemainingClasses() int { return s.remainingClasses }

// RemainingLength is the number of runes still required, -1 when invalid.
func (s *Segment) RemainingLength() int { return s.remainingLength }

// Valid reports whether s is not the invalid sentinel.
func (s *Segment) Valid() bool { return s.remainingClasses >= 0 }

// Complete reports whether s reproduces the whole target.
func (s *Segment) Complete() bool { return s.remainingClasses == 0 }

// mark claims s for round gen. It returns false when s was already claimed
// for gen, so each segment is evaluated at most once per round even when it
// sits in several buckets.
func (s *Segment) mark(gen uint64) bool {
	for {
		old := s.generation.Load()
		if old == gen {
			return false
		}
		if s.generation.CompareAndSwap(old, gen) {
			return true
		}
	}
}

// withWord returns the words of s followed by word.
func (s *Segment) withWord(word string) Combination {
	out := make(Combination, 0, len(s.words)+1)
	out = append(out, s.words...)
	return append(out, word)
}
