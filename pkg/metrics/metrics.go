// Package metrics holds the Prometheus collectors shared by the HTTP layer and the services.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Request metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "route"},
	)

	// Business metrics
	registryOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "registry_operations_total",
			Help: "Total number of registry operations per resource",
		},
		[]string{"resource", "operation", "status"},
	)
)

// ObserveRequest records one served HTTP request.
func ObserveRequest(method, route, status string, seconds float64) {
	httpRequestsTotal.WithLabelValues(method, route, status).Inc()
	httpRequestDuration.WithLabelValues(method, route).Observe(seconds)
}

// RecordOperation records the outcome of a service use case.
func RecordOperation(resource, operation string, err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	registryOperationsTotal.WithLabelValues(resource, operation, status).Inc()
}
