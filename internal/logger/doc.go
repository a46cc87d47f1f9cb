// Package logger provides the structured Zap logger shared by all service
// components. Correlation identifiers (request IDs, batch IDs) are passed
// explicitly as fields by callers; the package holds no request-scoped state.
package logger
