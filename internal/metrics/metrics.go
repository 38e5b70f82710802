// Package metrics exposes Prometheus instrumentation for outbound oracle
// calls. Everything is registered on the default registry and served via the
// /metrics route.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	oracleRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "synchromap_oracle_requests_total",
		Help: "Outbound generative-model requests by operation and outcome.",
	}, []string{"operation", "outcome"})

	oracleDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "synchromap_oracle_request_duration_seconds",
		Help:    "Latency of outbound generative-model requests.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
)

// ObserveOracle records one completed oracle call.
func ObserveOracle(operation string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	oracleRequests.WithLabelValues(operation, outcome).Inc()
	oracleDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
