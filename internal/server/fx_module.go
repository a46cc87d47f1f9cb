package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/schemaworks/registrar/internal/logger"
	"github.com/schemaworks/registrar/internal/metrics"
	"github.com/schemaworks/registrar/internal/notifier"
	"github.com/schemaworks/registrar/internal/quota"
	"github.com/schemaworks/registrar/internal/schemastore"
)

// FXModule is an fx.Module that provides the HTTP API server.
//
// The module provides:
// 1. *Handlers with the API endpoints
// 2. *gin.Engine assembled by NewRouter
// 3. *http.Server with the configured timeouts
// 4. Lifecycle management for startup and graceful shutdown
var FXModule = fx.Module("server",
	fx.Provide(
		NewHandlersWithDI,
		NewRouterWithDI,
		NewHTTPServer,
	),
	fx.Invoke(RegisterServerLifecycle),
)

// HandlersParams groups the dependencies needed to create the handlers.
type HandlersParams struct {
	fx.In

	Store    schemastore.Store
	Notifier notifier.Notifier
	Logger   *logger.Logger
	Metrics  *metrics.Metrics `optional:"true"`
}

// NewHandlersWithDI creates the handlers using dependency injection.
func NewHandlersWithDI(params HandlersParams) *Handlers {
	return NewHandlers(params.Store, params.Notifier, params.Logger, params.Metrics)
}

// RouterParams groups the dependencies needed to assemble the router.
type RouterParams struct {
	fx.In

	Handlers *Handlers
	Limiter  quota.Limiter
	Logger   *logger.Logger
	Metrics  *metrics.Metrics `optional:"true"`
}

// NewRouterWithDI assembles the router using dependency injection.
func NewRouterWithDI(params RouterParams) *gin.Engine {
	return NewRouter(params.Handlers, params.Limiter, params.Logger, params.Metrics)
}

// ServerLifecycleParams groups the dependencies for lifecycle management.
type ServerLifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Server    *http.Server
	Logger    *logger.Logger
}

// RegisterServerLifecycle starts the HTTP server on application start and
// shuts it down gracefully on stop.
func RegisterServerLifecycle(params ServerLifecycleParams) {
	params.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				params.Logger.Info("Starting HTTP API server", nil, map[string]interface{}{
					"address": params.Server.Addr,
				})
				if err := params.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					params.Logger.Error("HTTP API server failed", err, nil)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			params.Logger.Info("Shutting down HTTP API server", nil, nil)
			return params.Server.Shutdown(ctx)
		},
	})
}
