package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Find outcomes.
const (
	OutcomeMatched  = "matched"
	OutcomeEmpty    = "empty"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// Find command Prometheus metrics.
var (
	FindQueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "contactdex",
			Name:      "find_queries_total",
			Help:      "Total number of find commands by mode and outcome",
		},
		[]string{"mode", "outcome"},
	)

	FindMatches = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "contactdex",
			Name:      "find_matches",
			Help:      "Number of contacts matched per find command",
			Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100, 250, 1000},
		},
	)

	FindDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "contactdex",
			Name:      "find_duration_seconds",
			Help:      "Find command duration in seconds, including contact loading",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"mode"},
	)
)

func init() {
	prometheus.MustRegister(FindQueriesTotal)
	prometheus.MustRegister(FindMatches)
	prometheus.MustRegister(FindDuration)
}

// ObserveFind records one find command. mode is empty when parsing failed.
func ObserveFind(mode, outcome string, matches int, elapsed time.Duration) {
	if mode == "" {
		mode = "unknown"
	}
	FindQueriesTotal.WithLabelValues(mode, outcome).Inc()
	if outcome == OutcomeMatched || outcome == OutcomeEmpty {
		FindMatches.Observe(float64(matches))
	}
	FindDuration.WithLabelValues(mode).Observe(elapsed.Seconds())
}
