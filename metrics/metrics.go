// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RepositoryOperations counts repository calls by operation and outcome.
	RepositoryOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "inkwell",
		Subsystem: "repository",
		Name:      "operations_total",
		Help:      "Post repository operations by outcome.",
	}, []string{"op", "outcome"})

	// RepositoryDuration observes repository call latency, simulated delay included.
	RepositoryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "inkwell",
		Subsystem: "repository",
		Name:      "operation_duration_seconds",
		Help:      "Post repository operation latency.",
		Buckets:   []float64{.001, .01, .05, .1, .25, .5, 1, 2.5},
	}, []string{"op"})

	// HTTPRequests counts served requests by route template and status.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "inkwell",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})
)
