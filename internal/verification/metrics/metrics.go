package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks verification workflow outcomes.
type Metrics struct {
	RequestsSubmitted *prometheus.CounterVec
	RequestsResolved  *prometheus.CounterVec
	ResolveConflicts  prometheus.Counter
	ResolveRetries    prometheus.Counter
	QueueDepth        prometheus.Gauge
}

func New(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		RequestsSubmitted: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "verification_requests_submitted_total",
			Help: "Verification requests accepted, by target type.",
		}, []string{"target_type"}),
		RequestsResolved: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "verification_requests_resolved_total",
			Help: "Verification requests resolved, by decision.",
		}, []string{"decision"}),
		ResolveConflicts: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "verification_resolve_conflicts_total",
			Help: "Resolutions rejected because another reviewer won the race.",
		}),
		ResolveRetries: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "verification_resolve_retries_total",
			Help: "Resolve transactions retried after a transient store error.",
		}),
		QueueDepth: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "verification_queue_depth",
			Help: "Pending verification requests at last queue read.",
		}),
	}
}
