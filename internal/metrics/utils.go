package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Admission outcome labels.
const (
	AdmissionPermitted = "permitted"
	AdmissionBlocked   = "blocked"
	AdmissionErrored   = "errored"
)

// IncrementAdmissions counts one admission gate decision.
// Example: metrics.IncrementAdmissions(metrics.AdmissionBlocked)
func (m *Metrics) IncrementAdmissions(outcome string) {
	m.admissionsTotal.WithLabelValues(outcome).Inc()
}

// IncrementStoreCommands counts one schema store command result.
// Example: metrics.IncrementStoreCommands("create_schema", "success")
func (m *Metrics) IncrementStoreCommands(operation, result string) {
	m.storeCommandsTotal.WithLabelValues(operation, result).Inc()
}

// MessageOutcome counts one lifecycle queue message outcome. The method
// satisfies the consumer's Recorder interface.
func (m *Metrics) MessageOutcome(outcome string) {
	m.messagesTotal.WithLabelValues(outcome).Inc()
}

// RecordRequestDuration records the duration (in seconds) for an endpoint.
// Example: defer metrics.RecordRequestDuration(time.Now(), "/api/schemas")
func (m *Metrics) RecordRequestDuration(start time.Time, endpoint string) {
	m.requestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}

// CreateCounter creates a new CounterVec metric and registers it.
func (m *Metrics) CreateCounter(name, help string, labels []string) *prometheus.CounterVec {
	counter := createCounterVec(name, help, labels)
	m.Registry.MustRegister(counter)
	return counter
}

// createCounterVec defines a new CounterVec with standard options.
func createCounterVec(name, help string, labels []string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: name,
			Help: help,
		},
		labels,
	)
}

// createHistogramVec defines a new HistogramVec with configurable buckets.
func createHistogramVec(name, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	return prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    name,
			Help:    help,
			Buckets: buckets,
		},
		labels,
	)
}
