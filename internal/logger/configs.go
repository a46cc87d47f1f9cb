package logger

// Level controls the minimum severity emitted by the logger.
type Level string

const (
	Debug   Level = "debug"
	Info    Level = "info"
	Warning Level = "warn"
	Error   Level = "error"
)

// Config defines the configuration for the service logger.
type Config struct {
	// Level is the minimum severity emitted. Defaults to Info.
	Level Level

	// ServiceName is attached to every record as the "service" field.
	ServiceName string
}
