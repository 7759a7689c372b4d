// Package metrics exposes the service's Prometheus collectors.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds every collector the service registers.
type Metrics struct {
	registry *prometheus.Registry

	RendersTotal   *prometheus.CounterVec
	RenderDuration *prometheus.HistogramVec
	RenderErrors   *prometheus.CounterVec

	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// New creates and registers all collectors on a private registry.
func New() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.RendersTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "qrforge_renders_total",
		Help: "Completed renders by qr type and output mode.",
	}, []string{"qr_type", "mode"})

	m.RenderDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "qrforge_render_duration_seconds",
		Help:    "Render latency by qr type.",
		Buckets: prometheus.DefBuckets,
	}, []string{"qr_type"})

	m.RenderErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "qrforge_render_errors_total",
		Help: "Render failures by error kind.",
	}, []string{"kind"})

	m.CacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "qrforge_cache_hits_total",
		Help: "Image cache hits.",
	})
	m.CacheMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "qrforge_cache_misses_total",
		Help: "Image cache misses.",
	})

	m.HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "qrforge_http_requests_total",
		Help: "HTTP requests by method, route and status code.",
	}, []string{"method", "route", "code"})

	m.HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "qrforge_http_request_duration_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	m.registry.MustRegister(
		m.RendersTotal,
		m.RenderDuration,
		m.RenderErrors,
		m.CacheHits,
		m.CacheMisses,
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
	)
	return m
}

// Handler serves the registry in Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
