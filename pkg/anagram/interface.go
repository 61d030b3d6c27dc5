// Package anagram discovers multi-word anagrams of a fixed phrase in a live
// stream of words.
//
// Every accepted word becomes a Segment that records which runes of the target
// it uses and which are still missing. Segments are filed in a Registry under
// the runes they still need; each new word is only checked against the
// segments that need one of its runes. A word that fills exactly what a
// registered segment is missing completes an anagram, which is published to
// subscribers right away. Words that only fill part of it create a longer
// joined segment that later words can complete.
//
//	p := anagram.New("Aschheim")
//	sub := p.Subscribe(func(c anagram.Combination) {
//		fmt.Println(strings.Join(c, " "))
//	})
//	defer sub.Unsubscribe()
//
//	for _, w := range words {
//		p.ProcessWord(w)
//	}
//
// Permutations of the same word set reached through different join orders
// are all emitted. Wrap a subscriber with Distinct to drop the repeats.
package anagram

// Stream is a word sink that reports discovered anagrams to subscribers.
type Stream interface {
	// ProcessWord feeds one word and returns once every combination it
	// completes has been delivered.
	ProcessWord(word string)

	// Subscribe registers fn for every combination found from now on.
	Subscribe(fn func(Combination)) *Subscription

	// Stats returns the counters accumulated so far.
	Stats() Stats
}

var _ Stream = (*Processor)(nil)

// Stats is a snapshot of processor counters.
type Stats struct {
	WordsSeen           int
	WordsRejected       int
	SingleWordSegments  int // single word segments registered
	JoinedSegments      int // joined segments registered
	Combinations        int
	Rounds              int
	CandidatesEvaluated int
}
