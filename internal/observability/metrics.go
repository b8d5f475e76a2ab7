package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles the gateway's prometheus collectors.
type Metrics struct {
	requestCount    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	errorCount      *prometheus.CounterVec
	backendCalls    *prometheus.CounterVec
	reconcileTotal  *prometheus.CounterVec
}

// NewMetrics registers collectors on the given registry.
func NewMetrics(serviceName string, reg prometheus.Registerer) *Metrics {
	labels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		requestCount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Number of HTTP requests handled.",
			ConstLabels: labels,
		}, []string{"path", "method", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency.",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"path", "method"}),
		errorCount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_request_errors_total",
			Help:        "Number of HTTP requests ending in an application error.",
			ConstLabels: labels,
		}, []string{"path", "method", "code"}),
		backendCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "backend_calls_total",
			Help:        "Calls issued to the platform backend by outcome kind.",
			ConstLabels: labels,
		}, []string{"resource", "kind"}),
		reconcileTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "staff_reconcile_total",
			Help:        "Staff submission reconciliation outcomes.",
			ConstLabels: labels,
		}, []string{"phase"}),
	}

	reg.MustRegister(m.requestCount, m.requestDuration, m.errorCount, m.backendCalls, m.reconcileTotal)
	return m
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requestCount.WithLabelValues(path, method, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(path, method).Observe(duration.Seconds())
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	m.errorCount.WithLabelValues(path, method, code).Inc()
}

// RecordBackendCall counts a platform backend call by taxonomy kind.
func (m *Metrics) RecordBackendCall(resource, kind string) {
	if m == nil {
		return
	}
	m.backendCalls.WithLabelValues(resource, kind).Inc()
}

// RecordReconcileOutcome counts a terminal reconciliation phase.
func (m *Metrics) RecordReconcileOutcome(phase string) {
	if m == nil {
		return
	}
	m.reconcileTotal.WithLabelValues(phase).Inc()
}
