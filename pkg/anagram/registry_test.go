package anagram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryIgnoresInvalidAndComplete(t *testing.T) {
	r := NewRegistry(bestSecret)

	assert.False(t, r.Register(invalidSegment()))
	assert.False(t, r.Register(NewSegment(bestSecret, "BestSecret")))
	assert.Equal(t, 0, r.Len())
}

func TestRegistryBuckets(t *testing.T) {
	r := NewRegistry(bestSecret)
	best := NewSegment(bestSecret, "best")
	require.True(t, r.Register(best))

	// best still needs e, s, c, r, t
	buckets := r.Buckets()
	assert.Equal(t, 0, buckets['b'])
	for _, c := range "escrt" {
		assert.Equal(t, 1, buckets[c], "bucket %q", c)
	}
	assert.Equal(t, 1, r.Len())
}

func TestRegistryCandidatesDeduplicated(t *testing.T) {
	r := NewRegistry(bestSecret)
	best := NewSegment(bestSecret, "best")
	secret := NewSegment(bestSecret, "secret")
	r.Register(best)
	r.Register(secret)

	got := r.Candidates([]rune("escrt"))
	assert.ElementsMatch(t, []*Segment{best, secret}, got)

	assert.Empty(t, r.Candidates([]rune("x")))
	assert.Empty(t, r.Candidates(nil))
}

func TestRegistryEntriesAreSnapshots(t *testing.T) {
	r := NewRegistry(bestSecret)
	best := NewSegment(bestSecret, "best")
	r.Register(best)

	joined := Join(best, NewSegment(bestSecret, "sec"))
	require.True(t, joined.Valid())
	r.Register(joined)

	// best stays filed under c even though the joined segment used it up
	assert.Contains(t, r.Candidates([]rune{'c'}), best)
	assert.NotContains(t, r.Candidates([]rune{'c'}), joined)
	assert.Equal(t, 2, r.Len())
}
