package metrics

import (
	"context"
	"net/http"

	"go.uber.org/fx"

	"github.com/schemaworks/registrar/internal/consumer"
	"github.com/schemaworks/registrar/internal/logger"
)

// FXModule integrates the Prometheus metrics server into an fx application.
//
// The module:
//  1. Provides the *Metrics instance to the dependency injection container,
//     also exposed as the consumer's outcome Recorder.
//  2. Invokes RegisterMetricsLifecycle to manage startup and graceful
//     shutdown of the metrics HTTP server.
var FXModule = fx.Module("metrics",
	fx.Provide(
		NewMetrics,
		fx.Annotate(
			func(m *Metrics) consumer.Recorder { return m },
			fx.As(new(consumer.Recorder)),
		),
	),
	fx.Invoke(RegisterMetricsLifecycle),
)

// RegisterMetricsLifecycle manages the startup and shutdown lifecycle of the
// Prometheus metrics HTTP server.
//
// The lifecycle hook:
//   - OnStart: Launches the HTTP server in a background goroutine.
//   - OnStop: Gracefully shuts down the metrics server.
func RegisterMetricsLifecycle(lc fx.Lifecycle, m *Metrics, log *logger.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("Starting Prometheus metrics server", nil, map[string]interface{}{
					"address": m.Server.Addr,
				})

				if err := m.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Error("Error starting Prometheus metrics server", err, nil)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down Prometheus metrics server", nil, nil)
			return m.Server.Shutdown(ctx)
		},
	})
}
