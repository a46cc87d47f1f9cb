package rabbit

import (
	"context"

	"go.uber.org/fx"
)

// FXModule is an fx.Module that provides and configures the broker client.
// It registers the client with the Fx dependency injection framework, making
// it available to other components in the application.
//
// The module provides:
// 1. *AMQPClient (concrete type) for direct use
// 2. Client interface for dependency injection
// 3. Lifecycle management for graceful shutdown
//
// Usage:
//
//	app := fx.New(
//	    rabbit.FXModule,
//	    // other modules...
//	)
var FXModule = fx.Module("rabbit",
	fx.Provide(
		NewClientWithDI,
		fx.Annotate(
			func(c *AMQPClient) Client { return c },
			fx.As(new(Client)),
		),
	),
	fx.Invoke(RegisterRabbitLifecycle),
)

// RabbitParams groups the dependencies needed to create a broker client.
type RabbitParams struct {
	fx.In

	Config Config
}

// NewClientWithDI creates a broker client using dependency injection. This
// function is designed to be used with Uber's fx framework, where the Config
// is automatically provided via the RabbitParams struct.
func NewClientWithDI(params RabbitParams) (*AMQPClient, error) {
	return NewClient(params.Config)
}

// RabbitLifecycleParams groups the dependencies needed for lifecycle management.
type RabbitLifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Client    *AMQPClient
}

// RegisterRabbitLifecycle registers the broker client with the fx lifecycle
// system so that the connection and channel are closed cleanly on shutdown.
func RegisterRabbitLifecycle(params RabbitLifecycleParams) {
	params.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return params.Client.Close()
		},
	})
}
