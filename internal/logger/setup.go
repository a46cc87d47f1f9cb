package logger

import (
	"log"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a thin wrapper around Uber's Zap logger. It fixes the record
// shape used across the service: a message, an optional error, and optional
// structured fields.
type Logger struct {
	// Zap is the underlying zap.Logger instance, exposed for the rare case
	// where a component needs Zap-specific functionality directly.
	Zap *zap.Logger
}

// NewLoggerClient initializes a JSON-encoded Zap logger per the provided
// configuration.
//
// The logger is configured with:
//   - JSON encoding for structured logging
//   - ISO8601 timestamps under the "timestamp" key
//   - Capital level encoding (INFO, ERROR, ...)
//   - Process ID and service name as initial fields
//   - Output directed to stderr
//
// If initialization fails, the function calls log.Fatal: a service without
// a logger cannot run.
func NewLoggerClient(cfg Config) *Logger {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderCfg.EncodeDuration = zapcore.MillisDurationEncoder

	logLevel := zap.InfoLevel
	switch cfg.Level {
	case Debug:
		logLevel = zap.DebugLevel
	case Info:
		logLevel = zap.InfoLevel
	case Warning:
		logLevel = zap.WarnLevel
	case Error:
		logLevel = zap.ErrorLevel
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(logLevel),
		Encoding:         "json",
		EncoderConfig:    encoderCfg,
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		InitialFields: map[string]interface{}{
			"pid":     os.Getpid(),
			"service": cfg.ServiceName,
		},
	}

	zl, err := config.Build(zap.AddCaller(), zap.AddCallerSkip(1))
	if err != nil {
		log.Fatal(err)
	}

	return &Logger{Zap: zl}
}

// Debug logs a debug-level record.
func (l *Logger) Debug(msg string, err error, fields ...map[string]interface{}) {
	l.Zap.Debug(msg, toZapFields(err, fields)...)
}

// Info logs an info-level record.
func (l *Logger) Info(msg string, err error, fields ...map[string]interface{}) {
	l.Zap.Info(msg, toZapFields(err, fields)...)
}

// Warn logs a warning-level record.
func (l *Logger) Warn(msg string, err error, fields ...map[string]interface{}) {
	l.Zap.Warn(msg, toZapFields(err, fields)...)
}

// Error logs an error-level record.
func (l *Logger) Error(msg string, err error, fields ...map[string]interface{}) {
	l.Zap.Error(msg, toZapFields(err, fields)...)
}

// toZapFields flattens the optional error and field maps into zap fields.
func toZapFields(err error, fieldMaps []map[string]interface{}) []zap.Field {
	out := make([]zap.Field, 0, 8)
	if err != nil {
		out = append(out, zap.Error(err))
	}
	for _, m := range fieldMaps {
		for k, v := range m {
			out = append(out, zap.Any(k, v))
		}
	}
	return out
}
