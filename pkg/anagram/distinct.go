package anagram

import (
	"sort"
	"strings"
	"sync"

	"github.com/tchap/go-patricia/v2/patricia"
)

// Distinct wraps fn so that combinations made of the same words, in any
// order and any casing, are delivered only once.
func Distinct(fn func(Combination)) func(Combination) {
	var mu sync.Mutex
	seen := patricia.NewTrie()

	return func(c Combination) {
		key := patricia.Prefix(CanonicalKey(c))

		mu.Lock()
		inserted := seen.Insert(key, struct{}{})
		mu.Unlock()

		if inserted {
			fn(c)
		}
	}
}

// CanonicalKey is the lowercased words of c, sorted and space separated.
func CanonicalKey(c Combination) string {
	words := make([]string, len(c))
	for i, w := range c {
		words[i] = strings.ToLower(w)
	}
	sort.Strings(words)
	return strings.Join(words, " ")
}
