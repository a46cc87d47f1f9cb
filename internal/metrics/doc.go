// Package metrics exposes the service's Prometheus metrics.
//
// The package keeps an isolated registry per service instance, wraps every
// metric with a constant service label and serves the registry over its own
// HTTP server so the API listener stays free of scrape traffic.
//
// The built-in metrics cover the three hot paths of the service: admission
// gate decisions, schema store commands and lifecycle queue message
// outcomes. Components record through small typed helpers instead of
// touching the collectors directly.
package metrics
