package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dgnsrekt/fc-pro-number/internal/api"
)

// Metrics counts lookups and share redirects on a private registry.
type Metrics struct {
	registry *prometheus.Registry
	lookups  *prometheus.CounterVec
	shares   *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fcpro",
			Name:      "lookups_total",
			Help:      "Position lookups by outcome.",
		}, []string{"outcome"}),
		shares: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fcpro",
			Name:      "shares_total",
			Help:      "Share requests by provider that handled them.",
		}, []string{"provider"}),
	}
	m.registry.MustRegister(m.lookups, m.shares)
	return m
}

func (m *Metrics) ObserveLookup(outcome api.Outcome) {
	m.lookups.WithLabelValues(string(outcome)).Inc()
}

func (m *Metrics) ObserveShare(provider string) {
	if provider == "" {
		provider = "none"
	}
	m.shares.WithLabelValues(provider).Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
