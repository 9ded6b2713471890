// Package metrics holds the Prometheus instruments of the editor and oracle server.
// A nil *Registry is valid and records nothing.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Oracle call outcomes.
const (
	OutcomeOK          = "ok"
	OutcomeError       = "error"
	OutcomeUnavailable = "unavailable"
)

// Registry holds all metrics for the application
type Registry struct {
	// Oracle Metrics
	OracleRequestsTotal   *prometheus.CounterVec
	OracleRequestDuration *prometheus.HistogramVec

	// Graph Metrics
	NodesCreatedTotal       prometheus.Counter
	ConnectionsCreatedTotal prometheus.Counter
	BusyRejectionsTotal     prometheus.Counter
	ResolverExhaustedTotal  prometheus.Counter
	SnapshotsSavedTotal     prometheus.Counter

	registry *prometheus.Registry
}

// NewRegistry creates a registry with every metric registered, plus the Go runtime
// collector.
func NewRegistry() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}
	r.registry.MustRegister(collectors.NewGoCollector())
	factory := promauto.With(r.registry)

	r.OracleRequestsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "oracle_requests_total",
			Help: "Total number of oracle calls",
		},
		[]string{"op", "outcome"},
	)
	r.OracleRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "oracle_request_duration_seconds",
			Help:    "Oracle call duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
		},
		[]string{"op"},
	)

	r.NodesCreatedTotal = factory.NewCounter(prometheus.CounterOpts{
		Name: "nodes_created_total",
		Help: "Total number of nodes added to the graph",
	})
	r.ConnectionsCreatedTotal = factory.NewCounter(prometheus.CounterOpts{
		Name: "connections_created_total",
		Help: "Total number of connections added to the graph",
	})
	r.BusyRejectionsTotal = factory.NewCounter(prometheus.CounterOpts{
		Name: "busy_rejections_total",
		Help: "Oracle commands rejected because another call was outstanding",
	})
	r.ResolverExhaustedTotal = factory.NewCounter(prometheus.CounterOpts{
		Name: "resolver_exhausted_total",
		Help: "Placements accepted without reaching the minimum separation",
	})
	r.SnapshotsSavedTotal = factory.NewCounter(prometheus.CounterOpts{
		Name: "snapshots_saved_total",
		Help: "Snapshots appended to the history log",
	})
	return r
}

// RecordOracleCall records one oracle call
func (r *Registry) RecordOracleCall(op, outcome string, duration time.Duration) {
	if r == nil {
		return
	}
	r.OracleRequestsTotal.WithLabelValues(op, outcome).Inc()
	r.OracleRequestDuration.WithLabelValues(op).Observe(duration.Seconds())
}

// RecordNodesCreated counts new nodes
func (r *Registry) RecordNodesCreated(n int) {
	if r == nil || n <= 0 {
		return
	}
	r.NodesCreatedTotal.Add(float64(n))
}

// RecordConnectionsCreated counts new connections
func (r *Registry) RecordConnectionsCreated(n int) {
	if r == nil || n <= 0 {
		return
	}
	r.ConnectionsCreatedTotal.Add(float64(n))
}

// RecordBusyRejection counts a rejected oracle command
func (r *Registry) RecordBusyRejection() {
	if r == nil {
		return
	}
	r.BusyRejectionsTotal.Inc()
}

// RecordResolverExhausted counts placements that gave up on separation
func (r *Registry) RecordResolverExhausted(n int) {
	if r == nil || n <= 0 {
		return
	}
	r.ResolverExhaustedTotal.Add(float64(n))
}

// RecordSnapshotSaved counts a snapshot append
func (r *Registry) RecordSnapshotSaved() {
	if r == nil {
		return
	}
	r.SnapshotsSavedTotal.Inc()
}

// Handler serves the registry in the Prometheus text format.
func (r *Registry) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Gatherer exposes the underlying registry for tests and embedding.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}
