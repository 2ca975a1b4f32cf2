package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	discoveryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "mcplookup",
			Name:      "discovery_stage_duration_seconds",
			Help:      "Discovery pipeline stage duration in seconds",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"stage"},
	)

	discoveryResults = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "mcplookup",
			Name:      "discovery_results_total",
			Help:      "Post-filter result counts per discovery call",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 500, 1000},
		},
	)
)

// RegisterDiscoveryMetrics registers discovery pipeline collectors (no init()).
func RegisterDiscoveryMetrics() {
	prometheus.MustRegister(discoveryDuration)
	prometheus.MustRegister(discoveryResults)
}

// ObserveDiscovery records per-stage pipeline timings and the result count.
func ObserveDiscovery(selection, scoring, filtering, ranking time.Duration, totalResults int) {
	discoveryDuration.WithLabelValues("selection").Observe(selection.Seconds())
	discoveryDuration.WithLabelValues("scoring").Observe(scoring.Seconds())
	discoveryDuration.WithLabelValues("filtering").Observe(filtering.Seconds())
	discoveryDuration.WithLabelValues("ranking").Observe(ranking.Seconds())
	discoveryResults.Observe(float64(totalResults))
}
