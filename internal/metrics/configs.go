package metrics

// Config defines the configuration for the Prometheus metrics server.
type Config struct {
	// Address is the listen address of the metrics HTTP server
	// Example: ":9090"
	Address string

	// ServiceName is attached as a constant "service" label to every
	// metric, so several services can share one Prometheus
	ServiceName string

	// EnableDefaultCollectors registers the Go, process and build info
	// collectors alongside the application metrics
	EnableDefaultCollectors bool
}
