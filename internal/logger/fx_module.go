package logger

import (
	"context"

	"go.uber.org/fx"
)

// FXModule integrates the logger into an Fx-based application. It provides
// the logger factory and registers a shutdown hook that flushes buffered
// records.
//
// Dependencies required by this module:
//   - A logger.Config instance must be available in the container.
var FXModule = fx.Module("logger",
	fx.Provide(
		NewLoggerClient,
	),
	fx.Invoke(RegisterLoggerLifecycle),
)

// RegisterLoggerLifecycle flushes the Zap logger on application shutdown so
// no buffered entries are lost.
func RegisterLoggerLifecycle(lc fx.Lifecycle, client *Logger) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Zap.Sync()
		},
	})
}
