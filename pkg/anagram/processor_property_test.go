package anagram

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// Any arrival order of the Aschheim words finds the same seven pairs.
func TestProperty_OrderIndependentPairs(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		words := rapid.Permutation(aschheimWords).Draw(rt, "words")
		workers := rapid.IntRange(1, 32).Draw(rt, "workers")

		p := New("Aschheim", WithWorkers(workers))
		var keys []string
		sub := p.Subscribe(func(c Combination) { keys = append(keys, CanonicalKey(c)) })
		defer sub.Unsubscribe()

		for _, w := range words {
			p.ProcessWord(w)
		}

		sort.Strings(keys)
		require.Equal(rt, aschheimPairs, keys)
		require.Equal(rt, 11, p.Stats().SingleWordSegments)
		require.Equal(rt, 0, p.Stats().JoinedSegments)
	})
}

// Raising parallelism never changes what is found or registered.
func TestProperty_ParallelismDeterministic(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		letters := rapid.RuneFrom([]rune("bestcrBESTCR"))
		words := rapid.SliceOfN(rapid.StringOfN(letters, 1, 7, -1), 1, 40).Draw(rt, "words")
		workers := rapid.IntRange(2, 64).Draw(rt, "workers")

		collect := func(opts ...Option) ([]string, Stats) {
			p := New("BestSecret", opts...)
			col := &collector{}
			sub := p.Subscribe(col.add)
			defer sub.Unsubscribe()
			for _, w := range words {
				p.ProcessWord(w)
			}
			return col.keys(), p.Stats()
		}

		seqKeys, seqStats := collect(WithWorkers(1))
		parKeys, parStats := collect(WithWorkers(workers))

		require.Equal(rt, seqKeys, parKeys)
		require.Equal(rt, seqStats, parStats)
		require.Equal(rt, seqStats.Combinations, len(seqKeys))
	})
}
