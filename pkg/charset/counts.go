// Package charset does the character accounting for anagram search.
//
// A Counts value maps a lowercased rune to the number of times it occurs.
// The target phrase is canonicalized once with FromText; candidate words are
// checked against it with Analyze and combined with Join.
package charset

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

var (
	// ErrUnknownRune is returned when text holds a rune the target does not have.
	ErrUnknownRune = errors.New("rune not in target")
	// ErrOverused is returned when text needs a rune more often than is left.
	ErrOverused = errors.New("rune count exceeded")
)

// Counts maps a rune to its occurrence count. Counts never holds zero or
// negative entries.
type Counts map[rune]int

// FromText lowercases text, drops every rune that is not a letter or digit and
// counts the rest.
func FromText(text string) Counts {
	c := make(Counts)
	for _, r := range text {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		c[unicode.ToLower(r)]++
	}
	return c
}

// Analyze counts the runes of text against target. It returns the runes used by
// text and what is left of target afterwards. No runes are stripped from text,
// so punctuation the target lacks makes the text invalid.
func Analyze(target Counts, text string) (used, remaining Counts, err error) {
	used = make(Counts)
	remaining = target.Clone()
	for _, r := range text {
		r = unicode.ToLower(r)
		left, ok := remaining[r]
		if !ok {
			if target[r] > 0 {
				return nil, nil, fmt.Errorf("%q: %w", r, ErrOverused)
			}
			return nil, nil, fmt.Errorf("%q: %w", r, ErrUnknownRune)
		}
		if left == 1 {
			delete(remaining, r)
		} else {
			remaining[r] = left - 1
		}
		used[r]++
	}
	return used, remaining, nil
}

// Join takes usedB out of remainingA. It returns the combined used counts and
// the new remainder. It fails when usedB needs a rune remainingA does not hold
// or holds too few of.
func Join(usedA, remainingA, usedB Counts) (used, remaining Counts, err error) {
	remaining = remainingA.Clone()
	for r, n := range usedB {
		left, ok := remaining[r]
		switch {
		case !ok:
			return nil, nil, fmt.Errorf("%q: %w", r, ErrUnknownRune)
		case left < n:
			return nil, nil, fmt.Errorf("%q needs %d, %d left: %w", r, n, left, ErrOverused)
		case left == n:
			delete(remaining, r)
		default:
			remaining[r] = left - n
		}
	}

	used = usedA.Clone()
	for r, n := range usedB {
		used[r] += n
	}
	return used, remaining, nil
}

// Len is the total number of runes counted.
func (c Counts) Len() int {
	n := 0
	for _, v := range c {
		n += v
	}
	return n
}

// Classes is the number of distinct runes.
func (c Counts) Classes() int {
	return len(c)
}

// Runes returns the distinct runes in ascending order.
func (c Counts) Runes() []rune {
	runes := make([]rune, 0, len(c))
	for r := range c {
		runes = append(runes, r)
	}
	sort.Slice(runes, func(i, j int) bool { return runes[i] < runes[j] })
	return runes
}

// Clone returns an independent copy. Cloning nil yields an empty Counts.
func (c Counts) Clone() Counts {
	out := make(Counts, len(c))
	for r, n := range c {
		out[r] = n
	}
	return out
}

// Equal reports whether both hold the same runes with the same counts.
func (c Counts) Equal(other Counts) bool {
	if len(c) != len(other) {
		return false
	}
	for r, n := range c {
		if other[r] != n {
			return false
		}
	}
	return true
}

// String renders the counts sorted by rune, e.g. "b1 c1 e3".
func (c Counts) String() string {
	var sb strings.Builder
	for i, r := range c.Runes() {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteRune(r)
		sb.WriteString(strconv.Itoa(c[r]))
	}
	return sb.String()
}
