package consumer

import (
	"context"
	"sync"

	"go.uber.org/fx"

	"github.com/schemaworks/registrar/internal/logger"
	"github.com/schemaworks/registrar/internal/rabbit"
	"github.com/schemaworks/registrar/internal/schemastore"
)

// FXModule is an fx.Module that provides the lifecycle queue consumer.
//
// The module provides:
// 1. *Processor for batch processing
// 2. *Runner for queue draining
// 3. Lifecycle management so the runner starts and stops with the app
var FXModule = fx.Module("consumer",
	fx.Provide(
		NewProcessorWithDI,
		NewRunnerWithDI,
	),
	fx.Invoke(RegisterRunnerLifecycle),
)

// ProcessorParams groups the dependencies needed to create a processor.
type ProcessorParams struct {
	fx.In

	Store    schemastore.Store
	Logger   *logger.Logger
	Recorder Recorder `optional:"true"`
}

// NewProcessorWithDI creates a processor using dependency injection.
func NewProcessorWithDI(params ProcessorParams) *Processor {
	return NewProcessor(params.Store, params.Logger).WithRecorder(params.Recorder)
}

// RunnerParams groups the dependencies needed to create a runner.
type RunnerParams struct {
	fx.In

	Broker    rabbit.Client
	Processor *Processor
	Config    Config
	Logger    *logger.Logger
}

// NewRunnerWithDI creates a runner using dependency injection.
func NewRunnerWithDI(params RunnerParams) *Runner {
	return NewRunner(params.Broker, params.Processor, params.Config, params.Logger)
}

// RunnerLifecycleParams groups the dependencies for lifecycle management.
type RunnerLifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Runner    *Runner
}

// RegisterRunnerLifecycle starts the runner in the background on application
// start and waits for it to drain on stop.
func RegisterRunnerLifecycle(params RunnerLifecycleParams) {
	runCtx, cancel := context.WithCancel(context.Background())
	wg := &sync.WaitGroup{}

	params.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			wg.Add(1)
			go func() {
				defer wg.Done()
				params.Runner.Run(runCtx)
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			cancel()
			wg.Wait()
			return nil
		},
	})
}
