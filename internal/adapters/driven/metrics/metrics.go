// Package metrics records HTTP and upstream activity as Prometheus series.
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/custodia-labs/gproxy/internal/core/domain"
	"github.com/custodia-labs/gproxy/internal/core/ports/driven"
)

// Ensure Metrics implements the interface.
var _ driven.ProxyObserver = (*Metrics)(nil)

const namespace = "gproxy"

// Metrics owns a registry with the service's collectors.
type Metrics struct {
	registry *prometheus.Registry

	inflight prometheus.Gauge
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	upstream *prometheus.CounterVec
	inits    *prometheus.CounterVec
}

// New creates and registers the collectors, plus the Go and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		inflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		}, []string{"method", "route"}),
		upstream: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_calls_total",
			Help:      "Total number of Google API calls by surface, operation and outcome.",
		}, []string{"surface", "op", "outcome"}),
		inits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "client_initialisations_total",
			Help:      "Total number of Google client construction attempts.",
		}, []string{"surface", "outcome"}),
	}

	m.registry.MustRegister(
		m.inflight,
		m.requests,
		m.duration,
		m.upstream,
		m.inits,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one served HTTP request.
// route should be the route template, not the raw path.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	method = strings.ToUpper(method)
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// InFlight adjusts the in-flight request gauge by delta.
func (m *Metrics) InFlight(delta float64) {
	m.inflight.Add(delta)
}

// ObserveCall records one forwarded API call.
func (m *Metrics) ObserveCall(surface domain.Surface, op string, outcome driven.CallOutcome) {
	m.upstream.WithLabelValues(surface.String(), op, string(outcome)).Inc()
}

// ObserveClientInit records one client construction attempt.
func (m *Metrics) ObserveClientInit(surface domain.Surface, outcome driven.CallOutcome) {
	m.inits.WithLabelValues(surface.String(), string(outcome)).Inc()
}
