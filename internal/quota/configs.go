package quota

import "time"

// Default values applied by Config.withDefaults.
const (
	DefaultHost        = "localhost"
	DefaultPort        = 6379
	DefaultDialTimeout = 5 * time.Second
	DefaultReadTimeout = 3 * time.Second

	// DefaultLimit is the number of admissions allowed per window.
	DefaultLimit = 10

	// DefaultWindow is the length of the fixed counting window.
	DefaultWindow = 10 * time.Second

	// DefaultKeyPrefix namespaces the counter keys in the shared store.
	DefaultKeyPrefix = "mw_"
)

// Config defines the configuration for the admission gate and its backing
// counter store.
type Config struct {
	// Host is the Redis server hostname or IP address
	// Default: "localhost"
	Host string

	// Port is the Redis server port
	// Default: 6379
	Port int

	// Username is the Redis username for ACL authentication (Redis 6.0+)
	// Leave empty for no username-based authentication
	Username string

	// Password is the Redis password for authentication
	// Leave empty for no authentication
	Password string

	// DB is the Redis database number to use
	// Default: 0
	DB int

	// DialTimeout is the timeout for establishing new connections
	// Default: 5 seconds
	DialTimeout time.Duration

	// ReadTimeout is the timeout for socket reads
	// Default: 3 seconds
	ReadTimeout time.Duration

	// Limit is the number of requests one client may make per window
	// Default: 10
	Limit int

	// Window is the length of the fixed counting window
	// Default: 10 seconds
	Window time.Duration

	// KeyPrefix namespaces counter keys so several services can share one
	// store without colliding
	// Default: "mw_"
	KeyPrefix string
}

func (c Config) withDefaults() Config {
	if c.Host == "" {
		c.Host = DefaultHost
	}
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.DialTimeout == 0 {
		c.DialTimeout = DefaultDialTimeout
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = DefaultReadTimeout
	}
	if c.Limit == 0 {
		c.Limit = DefaultLimit
	}
	if c.Window == 0 {
		c.Window = DefaultWindow
	}
	if c.KeyPrefix == "" {
		c.KeyPrefix = DefaultKeyPrefix
	}
	return c
}
