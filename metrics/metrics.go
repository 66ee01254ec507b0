// Package metrics provides Prometheus metrics for bcrypt operations.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Operation names used as the "operation" label.
const (
	OpGenerateSalt = "generate_salt"
	OpHash         = "hash"
	OpCompare      = "compare"
)

// Result label values.
const (
	ResultOK       = "ok"
	ResultError    = "error"
	ResultMismatch = "mismatch"
)

// Metrics holds all Prometheus metrics for the hashing engine.
type Metrics struct {
	OperationsTotal   *prometheus.CounterVec
	OperationDuration *prometheus.HistogramVec
	QueueDepth        prometheus.Gauge
	WorkersBusy       prometheus.Gauge

	registry *prometheus.Registry
}

// New creates a new Metrics instance with all metrics registered on a
// private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
	}

	m.OperationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bcrypt_operations_total",
			Help: "Total number of bcrypt operations",
		},
		[]string{"operation", "result"},
	)

	// A cost 4 hash takes about a millisecond; cost 16 several seconds.
	m.OperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bcrypt_operation_duration_seconds",
			Help:    "Duration of bcrypt operations",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 16),
		},
		[]string{"operation", "cost"},
	)

	m.QueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "bcrypt_queue_depth",
			Help: "Number of jobs waiting for a worker",
		},
	)

	m.WorkersBusy = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "bcrypt_workers_busy",
			Help: "Number of workers currently computing a hash",
		},
	)

	m.registry.MustRegister(
		m.OperationsTotal,
		m.OperationDuration,
		m.QueueDepth,
		m.WorkersBusy,
	)

	m.registry.MustRegister(prometheus.NewGoCollector())
	m.registry.MustRegister(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))

	return m
}

// Observe records one finished operation. A nil Metrics is a no-op, so
// callers can leave instrumentation unconfigured.
func (m *Metrics) Observe(op string, cost int, err error, d time.Duration) {
	if m == nil {
		return
	}
	result := ResultOK
	if err != nil {
		result = ResultError
	}
	m.OperationsTotal.WithLabelValues(op, result).Inc()
	m.OperationDuration.WithLabelValues(op, strconv.Itoa(cost)).Observe(d.Seconds())
}

// ObserveCompare records a comparison, separating mismatches from errors.
func (m *Metrics) ObserveCompare(cost int, match bool, d time.Duration) {
	if m == nil {
		return
	}
	result := ResultOK
	if !match {
		result = ResultMismatch
	}
	m.OperationsTotal.WithLabelValues(OpCompare, result).Inc()
	m.OperationDuration.WithLabelValues(OpCompare, strconv.Itoa(cost)).Observe(d.Seconds())
}

// SetQueueDepth records the number of queued jobs.
func (m *Metrics) SetQueueDepth(n int) {
	if m == nil {
		return
	}
	m.QueueDepth.Set(float64(n))
}

// WorkerStarted marks a worker busy.
func (m *Metrics) WorkerStarted() {
	if m == nil {
		return
	}
	m.WorkersBusy.Inc()
}

// WorkerDone marks a worker idle again.
func (m *Metrics) WorkerDone() {
	if m == nil {
		return
	}
	m.WorkersBusy.Dec()
}

// Handler returns an HTTP handler for the metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
