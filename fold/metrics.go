package fold

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ChecksTotal counts fold checks.
	// Labels: result (NONE, KINKED, PAPERCLIP, COLLISION, NOCHECK)
	ChecksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "paperfold",
			Subsystem: "fold",
			Name:      "checks_total",
			Help:      "Total number of fold checks by result",
		},
		[]string{"result"},
	)

	// CheckDuration tracks how long a fold check takes.
	CheckDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "paperfold",
			Subsystem: "fold",
			Name:      "check_duration_seconds",
			Help:      "Duration of fold checks in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.00005, 4, 8),
		},
	)
)

func recordCheck(result FailureType, seconds float64) {
	ChecksTotal.WithLabelValues(result.String()).Inc()
	CheckDuration.Observe(seconds)
}
