package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics encapsulates the Prometheus registry and the HTTP server exposing
// it. Each service keeps its own isolated registry to prevent metric name
// collisions.
type Metrics struct {
	// Server is the HTTP server exposing the /metrics endpoint.
	Server *http.Server

	// Registry is the Prometheus registry where all metrics are registered.
	Registry *prometheus.Registry

	admissionsTotal    *prometheus.CounterVec
	storeCommandsTotal *prometheus.CounterVec
	messagesTotal      *prometheus.CounterVec
	requestDuration    *prometheus.HistogramVec
}

// NewMetrics sets up a dedicated Prometheus registry, registers the service
// collectors, wraps everything with a constant service label and creates the
// HTTP server exposing the /metrics endpoint.
func NewMetrics(cfg Config) *Metrics {
	registry := prometheus.NewRegistry()

	wrappedRegistry := prometheus.WrapRegistererWith(
		prometheus.Labels{"service": cfg.ServiceName},
		registry,
	)

	m := &Metrics{
		Registry: registry,
	}

	m.admissionsTotal = createCounterVec("admissions_total",
		"Admission gate decisions by outcome", []string{"outcome"})
	m.storeCommandsTotal = createCounterVec("store_commands_total",
		"Schema store commands by operation and result", []string{"operation", "result"})
	m.messagesTotal = createCounterVec("lifecycle_messages_total",
		"Lifecycle queue messages by outcome", []string{"outcome"})
	m.requestDuration = createHistogramVec("request_duration_seconds",
		"Duration of HTTP requests in seconds", []string{"endpoint"}, prometheus.DefBuckets)

	wrappedRegistry.MustRegister(
		m.admissionsTotal,
		m.storeCommandsTotal,
		m.messagesTotal,
		m.requestDuration,
	)

	if cfg.EnableDefaultCollectors {
		wrappedRegistry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewBuildInfoCollector(),
		)
	}

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	m.Server = &http.Server{
		Addr:    cfg.Address,
		Handler: handler,
	}
	return m
}
