// Package metrics exposes Prometheus counters for the decision engine.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	responses = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sahelper",
		Name:      "responses_total",
		Help:      "Chat responses broken down by the path that produced them.",
	}, []string{"source"})

	generationErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sahelper",
		Name:      "generation_errors_total",
		Help:      "Failed or rejected generation attempts by kind.",
	}, []string{"kind"})

	suggestions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sahelper",
		Name:      "suggestions_total",
		Help:      "Suggestion sets served by source.",
	}, []string{"source"})

	rateLimited = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "sahelper",
		Name:      "rate_limited_total",
		Help:      "Chat requests rejected by the per-IP rate limit.",
	})

	responseLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "sahelper",
		Name:      "response_latency_seconds",
		Help:      "End-to-end decision engine latency.",
		Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 20},
	}, []string{"source"})
)

func RecordResponse(source string, latency time.Duration) {
	labels := prometheus.Labels{"source": source}
	responses.With(labels).Inc()
	responseLatency.With(labels).Observe(latency.Seconds())
}

func RecordGenerationError(kind string) {
	generationErrors.WithLabelValues(kind).Inc()
}

func RecordSuggestions(source string) {
	suggestions.WithLabelValues(source).Inc()
}

func RecordRateLimited() {
	rateLimited.Inc()
}
