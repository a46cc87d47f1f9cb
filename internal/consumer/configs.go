package consumer

import "time"

// Default values applied by Config.withDefaults.
const (
	DefaultBatchSize = 10
	DefaultLinger    = time.Second
)

// Config defines the configuration for the lifecycle queue consumer.
type Config struct {
	// BatchSize is how many deliveries are drained before a batch is
	// processed
	// Default: 10
	BatchSize int

	// Linger is how long a partially filled batch waits for more
	// deliveries before being processed anyway
	// Default: 1 second
	Linger time.Duration
}

func (c Config) withDefaults() Config {
	if c.BatchSize == 0 {
		c.BatchSize = DefaultBatchSize
	}
	if c.Linger == 0 {
		c.Linger = DefaultLinger
	}
	return c
}
