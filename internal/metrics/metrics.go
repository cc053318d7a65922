// Package metrics exposes Prometheus instrumentation for the index and the
// HTTP front end.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	IndexRecipes = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "recipe_index_recipes",
		Help: "Number of recipes in the loaded index",
	})

	IndexVocabulary = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "recipe_index_vocabulary_terms",
		Help: "Number of distinct ingredient tokens in the vocabulary",
	})

	IndexAvailable = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "recipe_index_available",
		Help: "1 when a dataset was loaded and the index is serving, 0 in degraded mode",
	})

	QueriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "recipe_queries_total",
		Help: "Total ingredient queries by outcome",
	}, []string{"outcome"}) // "found", "not_found", "unavailable", "error"

	QueryDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "recipe_query_duration_seconds",
		Help:    "Time spent encoding and ranking one query",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	})

	APIRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "api_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "route", "status_code"})

	APIRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "api_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"method", "route"})
)

// RecordIndex publishes the size of a freshly built index.
func RecordIndex(recipes, vocabulary int) {
	IndexRecipes.Set(float64(recipes))
	IndexVocabulary.Set(float64(vocabulary))
	IndexAvailable.Set(1)
}

// RecordUnavailable marks the index as degraded.
func RecordUnavailable() {
	IndexRecipes.Set(0)
	IndexVocabulary.Set(0)
	IndexAvailable.Set(0)
}

// RecordQuery records one query outcome and its latency.
func RecordQuery(outcome string, d time.Duration) {
	QueriesTotal.WithLabelValues(outcome).Inc()
	QueryDuration.Observe(d.Seconds())
}

// RecordAPIRequest records one HTTP request.
func RecordAPIRequest(method, route, status string, d time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, status).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}
