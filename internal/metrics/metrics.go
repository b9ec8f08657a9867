// ABOUTME: Prometheus counters for dashboard mutations and logins.
// ABOUTME: Each App owns a private registry exposed by the HTTP server at /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels.
const (
	OutcomeOK        = "ok"
	OutcomeInvalid   = "invalid"
	OutcomeForbidden = "forbidden"
	OutcomeConflict  = "conflict"
	OutcomeNotFound  = "not_found"
	OutcomeError     = "error"
)

// Metrics holds the collectors for one application instance.
type Metrics struct {
	registry  *prometheus.Registry
	mutations *prometheus.CounterVec
	logins    *prometheus.CounterVec
	cascaded  prometheus.Counter
}

// New registers the collectors on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bbg",
			Name:      "mutations_total",
			Help:      "Insert and delete attempts by record kind, action and outcome.",
		}, []string{"kind", "action", "outcome"}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bbg",
			Name:      "logins_total",
			Help:      "Identity selections by role and outcome.",
		}, []string{"role", "outcome"}),
		cascaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bbg",
			Name:      "cascaded_workouts_total",
			Help:      "Workouts removed together with their member.",
		}),
	}
	m.registry.MustRegister(m.mutations, m.logins, m.cascaded)
	return m
}

// Mutation counts one insert or delete attempt. A nil receiver is a no-op.
func (m *Metrics) Mutation(kind, action, outcome string) {
	if m == nil {
		return
	}
	m.mutations.WithLabelValues(kind, action, outcome).Inc()
}

// Login counts one login attempt.
func (m *Metrics) Login(role, outcome string) {
	if m == nil {
		return
	}
	m.logins.WithLabelValues(role, outcome).Inc()
}

// Cascaded counts workouts removed by a member delete.
func (m *Metrics) Cascaded(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.cascaded.Add(float64(n))
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
