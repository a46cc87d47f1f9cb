package schemastore

import "time"

// Config holds configuration for the schema store client.
type Config struct {
	// BaseURL is the store's command endpoint, e.g. "https://registry.internal:8443".
	BaseURL string

	// RegistryName keys every command to one registry at the store.
	RegistryName string

	// Username for basic auth (optional).
	Username string

	// Password for basic auth (optional).
	Password string

	// Timeout bounds each remote call. A call that exceeds it resolves to
	// an UNKNOWN_ERROR failure instead of hanging. Defaults to 10s.
	Timeout time.Duration
}

// DefaultTimeout bounds remote calls when the config does not set one.
const DefaultTimeout = 10 * time.Second
