// Package metrics registers the Prometheus metrics exported at /metrics.
// Each Metrics value carries its own registry so tests can construct
// isolated instances.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	cacheHits        *prometheus.CounterVec
	cacheMisses      *prometheus.CounterVec
	upstreamRequests *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		cacheHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "marketd_cache_hits_total",
				Help: "Cache hits by category.",
			},
			[]string{"category"},
		),
		cacheMisses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "marketd_cache_misses_total",
				Help: "Cache misses by category.",
			},
			[]string{"category"},
		),
		upstreamRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "marketd_upstream_requests_total",
				Help: "Upstream CoinGecko requests by endpoint and outcome.",
			},
			[]string{"endpoint", "outcome"},
		),
	}
}

// CacheHit and CacheMiss satisfy the cache wrapper's Observer interface.
func (m *Metrics) CacheHit(category string)  { m.cacheHits.WithLabelValues(category).Inc() }
func (m *Metrics) CacheMiss(category string) { m.cacheMisses.WithLabelValues(category).Inc() }

// UpstreamRequest records one upstream call outcome ("success" or "error").
func (m *Metrics) UpstreamRequest(endpoint, outcome string) {
	m.upstreamRequests.WithLabelValues(endpoint, outcome).Inc()
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
