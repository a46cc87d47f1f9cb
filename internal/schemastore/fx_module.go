package schemastore

import (
	"context"
	"log"

	"go.uber.org/fx"
)

// FXModule provides the schema store client to the Fx container. The client
// is constructed once and shared: handlers and the lifecycle consumer both
// receive the same Store instance.
var FXModule = fx.Module("schemastore",
	fx.Provide(
		NewClientWithDI,
	),
	fx.Invoke(RegisterStoreLifecycle),
)

// StoreParams groups the dependencies needed to create the client.
type StoreParams struct {
	fx.In

	Config Config
}

// NewClientWithDI creates the schema store client for dependency injection,
// returning it as the Store interface.
func NewClientWithDI(params StoreParams) (Store, error) {
	return NewClient(params.Config)
}

// RegisterStoreLifecycle records startup and shutdown of the client. The
// HTTP client itself needs no teardown; the hooks exist so the store's
// availability shows up in the service lifecycle log.
func RegisterStoreLifecycle(lc fx.Lifecycle) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Println("INFO: schema store client initialized")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return nil
		},
	})
}
