package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Gate decisions recorded by the request gate.
const (
	DecisionAllowed    = "allowed"
	DecisionRejected   = "rejected"
	DecisionAnonymous  = "anonymous"
	DecisionStoreError = "store_error"
)

// Metrics owns a private registry so tests can build as many as they like.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	revocations   prometheus.Counter
	unrevocations prometheus.Counter
	gateDecisions *prometheus.CounterVec
	storeErrors   *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		revocations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "token_revocations_total",
			Help: "Tokens added to the revocation ledger.",
		}),
		unrevocations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "token_unrevocations_total",
			Help: "Tokens removed from the revocation ledger by an administrator.",
		}),
		gateDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "token_gate_decisions_total",
			Help: "Request gate outcomes by decision.",
		}, []string{"decision"}),
		storeErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "token_store_errors_total",
			Help: "Revocation store failures by operation.",
		}, []string{"op"}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.revocations,
		m.unrevocations,
		m.gateDecisions,
		m.storeErrors,
	)
	return m
}

func (m *Metrics) Revoked() {
	if m == nil {
		return
	}
	m.revocations.Inc()
}

func (m *Metrics) Unrevoked() {
	if m == nil {
		return
	}
	m.unrevocations.Inc()
}

func (m *Metrics) GateDecision(decision string) {
	if m == nil {
		return
	}
	m.gateDecisions.WithLabelValues(decision).Inc()
}

func (m *Metrics) StoreError(op string) {
	if m == nil {
		return
	}
	m.storeErrors.WithLabelValues(op).Inc()
}

// Handler serves the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
