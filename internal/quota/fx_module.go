package quota

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

// FXModule is an fx.Module that provides the admission gate.
//
// The module provides:
// 1. *redis.Client for the counter store
// 2. *FixedWindowLimiter (concrete type) for direct use
// 3. Limiter interface for dependency injection
// 4. Lifecycle management for the store connection
var FXModule = fx.Module("quota",
	fx.Provide(
		NewRedisClient,
		NewLimiterWithDI,
		fx.Annotate(
			func(l *FixedWindowLimiter) Limiter { return l },
			fx.As(new(Limiter)),
		),
	),
	fx.Invoke(RegisterQuotaLifecycle),
)

// LimiterParams groups the dependencies needed to create a limiter.
type LimiterParams struct {
	fx.In

	Store  *redis.Client
	Config Config
}

// NewLimiterWithDI creates a limiter using dependency injection.
func NewLimiterWithDI(params LimiterParams) *FixedWindowLimiter {
	return NewLimiter(params.Store, params.Config)
}

// QuotaLifecycleParams groups the dependencies needed for lifecycle management.
type QuotaLifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Store     *redis.Client
}

// RegisterQuotaLifecycle verifies the counter store on startup and closes
// the connection pool on shutdown.
func RegisterQuotaLifecycle(params QuotaLifecycleParams) {
	params.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return params.Store.Ping(ctx).Err()
		},
		OnStop: func(ctx context.Context) error {
			return params.Store.Close()
		},
	})
}
