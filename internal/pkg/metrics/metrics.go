// Package metrics holds the prometheus collectors of the fulfillment service.
// Every recorder is nil-safe so tests and optional wiring can pass nil.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "fulfillment"

// LifecycleMetrics counts order transitions and courier traffic.
type LifecycleMetrics struct {
	transitions     *prometheus.CounterVec
	dispatches      *prometheus.CounterVec
	courierRequests *prometheus.CounterVec
	courierLatency  *prometheus.HistogramVec
}

// NewLifecycleMetrics registers the lifecycle collectors on reg. A nil reg
// yields a recorder that drops every observation.
func NewLifecycleMetrics(reg prometheus.Registerer) *LifecycleMetrics {
	if reg == nil {
		return &LifecycleMetrics{}
	}

	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_transitions_total",
		Help:      "Order lifecycle events by result.",
	}, []string{"event", "result"})
	dispatches := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "courier_dispatches_total",
		Help:      "Courier shipment requests by outcome.",
	}, []string{"outcome"})
	courierRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "courier_requests_total",
		Help:      "Outbound courier API calls by endpoint and HTTP status.",
	}, []string{"endpoint", "code"})
	courierLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "courier_request_duration_seconds",
		Help:      "Outbound courier API latency.",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	}, []string{"endpoint"})

	reg.MustRegister(transitions, dispatches, courierRequests, courierLatency)
	return &LifecycleMetrics{
		transitions:     transitions,
		dispatches:      dispatches,
		courierRequests: courierRequests,
		courierLatency:  courierLatency,
	}
}

// ObserveTransition records one lifecycle event. result is "ok" or an error
// class such as "invalid_transition".
func (m *LifecycleMetrics) ObserveTransition(event, result string) {
	if m == nil || m.transitions == nil {
		return
	}
	m.transitions.WithLabelValues(normalizeLabel(event), normalizeLabel(result)).Inc()
}

// ObserveDispatch records a shipment request outcome.
func (m *LifecycleMetrics) ObserveDispatch(outcome string) {
	if m == nil || m.dispatches == nil {
		return
	}
	m.dispatches.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// ObserveCourierRequest records one courier API call. code is "error" when
// no response arrived.
func (m *LifecycleMetrics) ObserveCourierRequest(endpoint, code string, duration time.Duration) {
	if m == nil || m.courierRequests == nil {
		return
	}
	m.courierRequests.WithLabelValues(normalizeLabel(endpoint), normalizeLabel(code)).Inc()
	m.courierLatency.WithLabelValues(normalizeLabel(endpoint)).Observe(duration.Seconds())
}

// JobMetrics records scheduled job runs.
type JobMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
}

// NewJobMetrics registers the job collectors on reg.
func NewJobMetrics(reg prometheus.Registerer) *JobMetrics {
	if reg == nil {
		return &JobMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "job_duration_seconds",
		Help:      "Duration of scheduled jobs in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"job"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "job_success_total",
		Help:      "Successful scheduled job runs.",
	}, []string{"job"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "job_failure_total",
		Help:      "Failed scheduled job runs.",
	}, []string{"job"})
	reg.MustRegister(duration, success, failure)
	return &JobMetrics{duration: duration, success: success, failure: failure}
}

func (m *JobMetrics) ObserveDuration(job string, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(job)).Observe(duration.Seconds())
}

func (m *JobMetrics) IncSuccess(job string) {
	if m == nil || m.success == nil {
		return
	}
	m.success.WithLabelValues(normalizeLabel(job)).Inc()
}

func (m *JobMetrics) IncFailure(job string) {
	if m == nil || m.failure == nil {
		return
	}
	m.failure.WithLabelValues(normalizeLabel(job)).Inc()
}

// HTTPMetrics counts inbound requests.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

// NewHTTPMetrics registers the inbound HTTP collectors on reg.
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	if reg == nil {
		return &HTTPMetrics{}
	}
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"route", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"route"})
	reg.MustRegister(requests, latency)
	return &HTTPMetrics{requests: requests, latency: latency}
}

// ObserveRequest records one served request.
func (m *HTTPMetrics) ObserveRequest(route, status string, duration time.Duration) {
	if m == nil || m.requests == nil {
		return
	}
	m.requests.WithLabelValues(normalizeLabel(route), normalizeLabel(status)).Inc()
	m.latency.WithLabelValues(normalizeLabel(route)).Observe(float64(duration.Milliseconds()))
}

// Handler exposes everything registered on g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
