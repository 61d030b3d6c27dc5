package anagram

import (
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// collector gathers emitted combinations.
type collector struct {
	mu      sync.Mutex
	results []Combination
}

func (c *collector) add(comb Combination) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results = append(c.results, comb)
}

// keys returns the canonical key of every result, sorted.
func (c *collector) keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	keys := make([]string, len(c.results))
	for i, r := range c.results {
		keys[i] = CanonicalKey(r)
	}
	sort.Strings(keys)
	return keys
}

func run(t *testing.T, phrase string, words []string, opts ...Option) (*Processor, *collector) {
	t.Helper()
	p := New(phrase, opts...)
	col := &collector{}
	sub := p.Subscribe(col.add)
	t.Cleanup(sub.Unsubscribe)
	for _, w := range words {
		p.ProcessWord(w)
	}
	return p, col
}

func TestSingleMatch(t *testing.T) {
	_, col := run(t, "BestSecret", []string{"Bestsecret"})

	require.Len(t, col.results, 1, "one match without case must be found")
	assert.Equal(t, Combination{"Bestsecret"}, col.results[0])
}

func TestDualMatch(t *testing.T) {
	_, col := run(t, "BestSecret", []string{"Best", "nonsense", "secret"})

	require.Len(t, col.results, 1)
	assert.Equal(t, Combination{"Best", "secret"}, col.results[0])
}

func TestTripleMatch(t *testing.T) {
	_, col := run(t, "BestSecret", []string{"Best", "nonsense", "sec", "ret"})

	require.Len(t, col.results, 1)
	assert.Equal(t, Combination{"Best", "sec", "ret"}, col.results[0])
}

func TestMismatchShortWord(t *testing.T) {
	_, col := run(t, "BestSecret", []string{"Best", "nonsense", "secr", "et"})

	assert.Empty(t, col.results, "one word was too short, must not find a match")
}

func TestKeepValidWordsOnly(t *testing.T) {
	p := New("BestSecret")

	steps := []struct {
		word    string
		singles int
		desc    string
	}{
		{"best", 1, "valid word is registered"},
		{"xyz", 1, "must not register unusable characters"},
		{"b", 1, "must not register short words"},
		{"be", 1, "must not register short words"},
		{"secret", 2, "also register words that produce matches"},
		{"bestsecre", 2, "must not register words with too short rest length"},
	}

	assert.Equal(t, 0, p.Stats().SingleWordSegments)
	for _, step := range steps {
		p.ProcessWord(step.word)
		assert.Equal(t, step.singles, p.Stats().SingleWordSegments, step.desc)
	}

	stats := p.Stats()
	assert.Equal(t, 6, stats.WordsSeen)
	assert.Equal(t, 4, stats.WordsRejected)
	assert.Equal(t, 1, stats.Combinations)
	assert.Equal(t, 2, p.Registry().Len())
}

var aschheimWords = []string{
	"aches", "ash", "chase", "chime", "has", "hash", "hic", "him", "mice", "shah", "shame",
}

var aschheimPairs = []string{
	"aches him", "ash chime", "chase him", "chime has", "hash mice", "hic shame", "mice shah",
}

func TestAschheim(t *testing.T) {
	p, col := run(t, "Aschheim", aschheimWords)

	assert.Equal(t, aschheimPairs, col.keys())
	assert.Contains(t, col.results, Combination{"ash", "chime"})
	assert.Contains(t, col.results, Combination{"aches", "him"})

	stats := p.Stats()
	assert.Equal(t, 11, stats.SingleWordSegments)
	assert.Equal(t, 0, stats.JoinedSegments)
	assert.Equal(t, 7, stats.Combinations)
}

func TestJoinedSegmentsRegistered(t *testing.T) {
	p, _ := run(t, "BestSecret", []string{"Best", "sec", "ret"})

	stats := p.Stats()
	assert.Equal(t, 3, stats.SingleWordSegments)
	// Best+sec, then Best+ret and sec+ret
	assert.Equal(t, 3, stats.JoinedSegments)
	assert.Equal(t, 6, p.Registry().Len())
}

func TestPermutationsNotDeduplicated(t *testing.T) {
	words := []string{"cod", "writ", "cord", "wit", "cow", "dirt", "doc", "writ", "tic", "word"}
	_, col := run(t, "IT-Crowd", words)

	assert.Equal(t, []string{
		"cod writ", "cod writ", "cord wit", "cow dirt", "doc writ", "doc writ", "tic word",
	}, col.keys())
	assert.Contains(t, col.results, Combination{"writ", "doc"})
	assert.Contains(t, col.results, Combination{"doc", "writ"})
}

func TestOriginalCasingPreserved(t *testing.T) {
	_, col := run(t, "Aschheim", []string{"ASH", "Chime"})

	require.Len(t, col.results, 1)
	assert.Equal(t, Combination{"ASH", "Chime"}, col.results[0])
}

func TestMinWordSizeOption(t *testing.T) {
	// "et" is admissible once the minimum drops to 1
	_, col := run(t, "BestSecret", []string{"Best", "secr", "et"}, WithMinWordSize(1))

	require.Len(t, col.results, 1)
	assert.Equal(t, Combination{"Best", "secr", "et"}, col.results[0])
}

func TestDegenerateTarget(t *testing.T) {
	p, col := run(t, "--- !!!", []string{"", "abc", "---", "a"})

	assert.True(t, p.Degenerate())
	assert.Empty(t, col.results)
	assert.Equal(t, 4, p.Stats().WordsRejected)
	assert.Equal(t, 0, p.Registry().Len())
}

func TestParallelismDoesNotChangeResults(t *testing.T) {
	words := []string{
		"best", "sec", "ret", "bet", "secret", "tests", "cert", "crest", "beset",
		"set", "tee", "reset", "bets", "stet", "bere", "ste", "cesTe", "rest",
	}

	base, baseCol := run(t, "BestSecret", words, WithWorkers(1))
	for i := 0; i < 20; i++ {
		p, col := run(t, "BestSecret", words, WithWorkers(64))
		assert.Equal(t, baseCol.keys(), col.keys())
		assert.Equal(t, base.Stats(), p.Stats())
	}
}

func TestNoDuplicateEvaluationPerRound(t *testing.T) {
	// every registered segment shares several runes with "secret"
	p, _ := run(t, "BestSecret", []string{"best", "sec", "ret", "secret"}, WithWorkers(8))

	stats := p.Stats()
	// rounds: sec sees best; ret sees best, best+sec, sec; secret sees all six
	assert.Equal(t, 1+3+6, stats.CandidatesEvaluated)
}

func TestProcessorMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	run(t, "BestSecret", []string{"Best", "nonsense", "sec", "ret", "be", "Bestsecret"}, WithMetrics(m))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.found))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.segments.WithLabelValues("single")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.segments.WithLabelValues("joined")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.words.WithLabelValues(outcomeUnknownRune)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.words.WithLabelValues(outcomeShort)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.words.WithLabelValues(outcomeComplete)))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.words.WithLabelValues(outcomeAccepted)))
}

func TestSubscriberReceivesJoinOrder(t *testing.T) {
	p := New("BestSecret")
	var lines []string
	sub := p.Subscribe(func(c Combination) { lines = append(lines, strings.Join(c, " ")) })
	defer sub.Unsubscribe()

	p.ProcessWord("sec")
	p.ProcessWord("Best")
	p.ProcessWord("ret")

	assert.Equal(t, []string{"sec Best ret"}, lines)
}
