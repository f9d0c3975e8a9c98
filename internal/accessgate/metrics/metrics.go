package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the access gate.
type Metrics struct {
	AuthorizationsGranted *prometheus.CounterVec
	AuthorizationsDenied  *prometheus.CounterVec
	WhitelistMutations    prometheus.Counter
}

// New creates and registers access gate metrics.
func New() *Metrics {
	return &Metrics{
		AuthorizationsGranted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "inklusi_gate_authorizations_granted_total",
			Help: "Granted authorizations by action",
		}, []string{"action"}),
		AuthorizationsDenied: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "inklusi_gate_authorizations_denied_total",
			Help: "Denied authorizations by action",
		}, []string{"action"}),
		WhitelistMutations: promauto.NewCounter(prometheus.CounterOpts{
			Name: "inklusi_gate_whitelist_mutations_total",
			Help: "Whitelist add/remove operations",
		}),
	}
}

// IncrementGranted records a granted authorization.
func (m *Metrics) IncrementGranted(action string) {
	m.AuthorizationsGranted.WithLabelValues(action).Inc()
}

// IncrementDenied records a denied authorization.
func (m *Metrics) IncrementDenied(action string) {
	m.AuthorizationsDenied.WithLabelValues(action).Inc()
}

// IncrementWhitelistMutation records a whitelist add or remove.
func (m *Metrics) IncrementWhitelistMutation() {
	m.WhitelistMutations.Inc()
}
