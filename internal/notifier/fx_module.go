package notifier

import (
	"go.uber.org/fx"

	"github.com/schemaworks/registrar/internal/logger"
	"github.com/schemaworks/registrar/internal/rabbit"
)

// FXModule is an fx.Module that provides the queue notifier.
//
// The module provides:
// 1. *QueueNotifier (concrete type) for direct use
// 2. Notifier interface for dependency injection
var FXModule = fx.Module("notifier",
	fx.Provide(
		NewNotifierWithDI,
		fx.Annotate(
			func(n *QueueNotifier) Notifier { return n },
			fx.As(new(Notifier)),
		),
	),
)

// NotifierParams groups the dependencies needed to create a notifier.
type NotifierParams struct {
	fx.In

	Broker rabbit.Client
	Logger *logger.Logger
}

// NewNotifierWithDI creates a notifier using dependency injection.
func NewNotifierWithDI(params NotifierParams) *QueueNotifier {
	return NewNotifier(params.Broker, params.Logger)
}
