package anagram

import (
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
	"unicode/utf8"

	"github.com/bastiangx/anagrams/internal/logger"
	"github.com/bastiangx/anagrams/pkg/charset"
	"github.com/charmbracelet/log"
	"github.com/sourcegraph/conc/pool"
)

// DefaultMinWordSize is the default length a word must exceed to be used.
const DefaultMinWordSize = 2

// Processor finds anagrams of its target in the words fed to ProcessWord.
//
// It accumulates state across calls. Calls are serialized internally, but a
// subscriber callback must not call ProcessWord on the same processor.
type Processor struct {
	target      charset.Counts
	minWordSize int
	workers     int
	registry    *Registry
	output      *Broadcaster
	metrics     *Metrics
	logger      *log.Logger

	roundMu    sync.Mutex
	generation uint64

	pendingMu sync.Mutex
	pending   []*Segment

	wordsSeen     atomic.Int64
	wordsRejected atomic.Int64
	singles       atomic.Int64
	joined        atomic.Int64
	found         atomic.Int64
	rounds        atomic.Int64
	evaluated     atomic.Int64
}

// Option configures a Processor.
type Option func(*Processor)

// WithMinWordSize sets the length a word, and any leftover, must exceed.
func WithMinWordSize(n int) Option {
	return func(p *Processor) {
		if n >= 0 {
			p.minWordSize = n
		}
	}
}

// WithWorkers bounds the goroutines used to evaluate candidates in a round.
// Values below 1 fall back to GOMAXPROCS; 1 evaluates in the caller.
func WithWorkers(n int) Option {
	return func(p *Processor) {
		if n > 0 {
			p.workers = n
		}
	}
}

// WithMetrics records processor activity in m.
func WithMetrics(m *Metrics) Option {
	return func(p *Processor) { p.metrics = m }
}

// WithLogger replaces the default "anagram" logger.
func WithLogger(l *log.Logger) Option {
	return func(p *Processor) {
		if l != nil {
			p.logger = l
		}
	}
}

// New creates a processor for phrase. Only letters and digits of phrase
// count, case-insensitively. New never fails: a phrase without any letters or
// digits gives a processor that accepts nothing (see Degenerate).
func New(phrase string, opts ...Option) *Processor {
	target := charset.FromText(phrase)
	p := &Processor{
		target:      target,
		minWordSize: DefaultMinWordSize,
		workers:     runtime.GOMAXPROCS(0),
		registry:    NewRegistry(target),
		output:      NewBroadcaster(),
		logger:      logger.Default("anagram"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ProcessWord runs one round for word: it emits every combination word
// completes and registers the new partial segments. Words that cannot be
// part of an anagram are dropped silently.
func (p *Processor) ProcessWord(word string) {
	p.roundMu.Lock()
	defer p.roundMu.Unlock()

	p.wordsSeen.Add(1)

	wordLen := utf8.RuneCountInString(word)
	if wordLen <= p.minWordSize {
		p.reject(word, outcomeShort)
		return
	}

	used, remaining, err := charset.Analyze(p.target, word)
	if err != nil {
		if errors.Is(err, charset.ErrOverused) {
			p.reject(word, outcomeOverused)
		} else {
			p.reject(word, outcomeUnknownRune)
		}
		return
	}
	seg := newSegment([]string{word}, used, remaining)

	if seg.Complete() {
		p.metrics.word(outcomeComplete)
		p.emit(seg.Words())
		return
	}

	if seg.remainingLength <= p.minWordSize {
		p.reject(word, outcomeShortRemainder)
		return
	}
	p.metrics.word(outcomeAccepted)

	candidates := p.registry.Candidates(used.Runes())
	p.generation++
	p.rounds.Add(1)
	p.metrics.round(len(candidates))

	p.fanOut(candidates, seg, word, wordLen, p.generation)

	p.pendingMu.Lock()
	joined := p.pending
	p.pending = nil
	p.pendingMu.Unlock()

	n := p.registry.registerAll(append(joined, seg))
	p.singles.Add(1)
	p.joined.Add(int64(n - 1))
	p.metrics.registered(1, n-1)
}

// fanOut evaluates candidates on a bounded pool and waits for all of them.
func (p *Processor) fanOut(candidates []*Segment, seg *Segment, word string, wordLen int, gen uint64) {
	if p.workers <= 1 || len(candidates) < 2 {
		for _, c := range candidates {
			p.evaluate(c, seg, word, wordLen, gen)
		}
		return
	}

	batch := (len(candidates) + p.workers - 1) / p.workers
	wp := pool.New().WithMaxGoroutines(p.workers)
	for start := 0; start < len(candidates); start += batch {
		chunk := candidates[start:min(start+batch, len(candidates))]
		wp.Go(func() {
			for _, c := range chunk {
				p.evaluate(c, seg, word, wordLen, gen)
			}
		})
	}
	wp.Wait()
}

// evaluate checks one registered candidate against the new word segment.
func (p *Processor) evaluate(candidate, seg *Segment, word string, wordLen int, gen uint64) {
	if !candidate.mark(gen) {
		return
	}
	p.evaluated.Add(1)

	switch {
	case candidate.remainingLength == wordLen:
		if IsFullCompletion(candidate, seg) {
			p.emit(candidate.withWord(word))
		}
	case len(candidate.used) > 0 && candidate.remainingLength-wordLen > p.minWordSize:
		joined := Join(candidate, seg)
		if joined.Valid() && !joined.Complete() {
			p.enqueue(joined)
		}
	default:
		// leftover too short for any admissible word
	}
}

// enqueue buffers s until the round ends; the registry is not touched mid-round.
func (p *Processor) enqueue(s *Segment) {
	p.pendingMu.Lock()
	p.pending = append(p.pending, s)
	p.pendingMu.Unlock()
}

func (p *Processor) emit(c Combination) {
	p.found.Add(1)
	p.metrics.combination()
	p.output.Publish(c)
}

func (p *Processor) reject(word, reason string) {
	p.wordsRejected.Add(1)
	p.metrics.word(reason)
	p.logger.Debug("word dropped", "word", word, "reason", reason)
}

// Subscribe registers fn for every combination found from now on.
func (p *Processor) Subscribe(fn func(Combination)) *Subscription {
	return p.output.Subscribe(fn)
}

// Stats returns the counters accumulated so far.
func (p *Processor) Stats() Stats {
	return Stats{
		WordsSeen:           int(p.wordsSeen.Load()),
		WordsRejected:       int(p.wordsRejected.Load()),
		SingleWordSegments:  int(p.singles.Load()),
		JoinedSegments:      int(p.joined.Load()),
		Combinations:        int(p.found.Load()),
		Rounds:              int(p.rounds.Load()),
		CandidatesEvaluated: int(p.evaluated.Load()),
	}
}

// Target returns a copy of the canonical target counts.
func (p *Processor) Target() charset.Counts { return p.target.Clone() }

// MinWordSize is the length words and leftovers must exceed.
func (p *Processor) MinWordSize() int { return p.minWordSize }

// Degenerate reports whether the target has no runes at all. Such a
// processor rejects every word and never emits.
func (p *Processor) Degenerate() bool { return p.target.Classes() == 0 }

// Registry exposes the segment index for diagnostics.
func (p *Processor) Registry() *Registry { return p.registry }

// NewSegment builds a standalone segment for text against the target.
// It does not touch the registry.
func (p *Processor) NewSegment(text string) *Segment {
	return NewSegment(p.target, text)
}
