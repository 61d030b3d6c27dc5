package anagram

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "anagrams"

// Rejection reasons used as the outcome label of words_total.
const (
	outcomeAccepted       = "accepted"
	outcomeComplete       = "complete"
	outcomeShort          = "short"
	outcomeUnknownRune    = "unknown_rune"
	outcomeOverused       = "overused"
	outcomeShortRemainder = "short_remainder"
)

// Metrics holds the Prometheus collectors of a processor. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	words      *prometheus.CounterVec
	segments   *prometheus.CounterVec
	found      prometheus.Counter
	candidates prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg. Pass a fresh
// prometheus.NewRegistry() in tests to keep them isolated.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		words: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "words_total",
			Help:      "Words handed to the processor by outcome",
		}, []string{"outcome"}),
		segments: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "segments_registered_total",
			Help:      "Segments added to the registry by kind (single, joined)",
		}, []string{"kind"}),
		found: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "combinations_total",
			Help:      "Complete anagram combinations emitted",
		}),
		candidates: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "round_candidates",
			Help:      "Registry candidates looked up per round",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		}),
	}
}

func (m *Metrics) word(outcome string) {
	if m == nil {
		return
	}
	m.words.WithLabelValues(outcome).Inc()
}

func (m *Metrics) registered(single, joined int) {
	if m == nil {
		return
	}
	if single > 0 {
		m.segments.WithLabelValues("single").Add(float64(single))
	}
	if joined > 0 {
		m.segments.WithLabelValues("joined").Add(float64(joined))
	}
}

func (m *Metrics) combination() {
	if m == nil {
		return
	}
	m.found.Inc()
}

func (m *Metrics) round(candidates int) {
	if m == nil {
		return
	}
	m.candidates.Observe(float64(candidates))
}
