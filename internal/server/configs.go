package server

import "time"

// Default values applied by Config.withDefaults.
const (
	DefaultAddress      = ":8080"
	DefaultReadTimeout  = 15 * time.Second
	DefaultWriteTimeout = 15 * time.Second
	DefaultIdleTimeout  = 60 * time.Second
)

// Config defines the configuration for the HTTP API server.
type Config struct {
	// Address is the listen address
	// Default: ":8080"
	Address string

	// ReadTimeout bounds reading the request including the body
	// Default: 15 seconds
	ReadTimeout time.Duration

	// WriteTimeout bounds writing the response
	// Default: 15 seconds
	WriteTimeout time.Duration

	// IdleTimeout bounds keep-alive connections between requests
	// Default: 60 seconds
	IdleTimeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.Address == "" {
		c.Address = DefaultAddress
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = DefaultReadTimeout
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = DefaultWriteTimeout
	}
	if c.IdleTimeout == 0 {
		c.IdleTimeout = DefaultIdleTimeout
	}
	return c
}
