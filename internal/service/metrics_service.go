package service

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService owns the Prometheus registry for the portal: HTTP traffic,
// flat-file persistence timings, and generated report counts.
type MetricsService struct {
	registry *prometheus.Registry

	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
	persistDuration  *prometheus.HistogramVec
	reportsGenerated *prometheus.CounterVec
}

// NewMetricsService builds the registry with all collectors registered.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	m := &MetricsService{
		registry: registry,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "portal",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "portal",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		persistDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "portal",
			Name:      "store_persist_duration_seconds",
			Help:      "Flat-file collection rewrite latency.",
			Buckets:   []float64{.001, .005, .01, .05, .1, .5, 1},
		}, []string{"collection"}),
		reportsGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "portal",
			Name:      "reports_generated_total",
			Help:      "Report documents rendered, by format.",
		}, []string{"format"}),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpDuration,
		m.persistDuration,
		m.reportsGenerated,
	)

	return m
}

// Handler exposes the registry for the /metrics endpoint.
func (m *MetricsService) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one completed HTTP request.
func (m *MetricsService) ObserveRequest(method, route string, status int, d time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// ObservePersist records one collection rewrite; satisfies store.PersistObserver.
func (m *MetricsService) ObservePersist(collection string, d time.Duration) {
	m.persistDuration.WithLabelValues(collection).Observe(d.Seconds())
}

// ObserveReport counts one rendered report document.
func (m *MetricsService) ObserveReport(format string) {
	m.reportsGenerated.WithLabelValues(format).Inc()
}
