package consumer

import (
	"context"
	"time"

	"github.com/schemaworks/registrar/internal/logger"
	"github.com/schemaworks/registrar/internal/rabbit"
)

// Runner drains the lifecycle queue into batches and hands them to the
// processor. A batch is processed when it is full or when the linger
// interval elapses with messages waiting.
type Runner struct {
	broker    rabbit.Client
	processor *Processor
	cfg       Config
	log       *logger.Logger
}

// NewRunner creates a runner over the given broker and processor.
func NewRunner(broker rabbit.Client, processor *Processor, cfg Config, log *logger.Logger) *Runner {
	return &Runner{
		broker:    broker,
		processor: processor,
		cfg:       cfg.withDefaults(),
		log:       log,
	}
}

// Run consumes until the context is canceled or the delivery stream ends.
// The pending batch is flushed before returning so accepted deliveries are
// never abandoned unacked longer than necessary.
func (r *Runner) Run(ctx context.Context) {
	r.log.Info("Lifecycle consumer started", nil, map[string]interface{}{
		"batchSize": r.cfg.BatchSize,
		"linger":    r.cfg.Linger.String(),
	})

	deliveries := r.broker.Consume(ctx)
	batch := make([]Delivery, 0, r.cfg.BatchSize)
	ticker := time.NewTicker(r.cfg.Linger)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}
		r.processor.ProcessBatch(ctx, batch)
		batch = batch[:0]
	}

	for {
		select {
		case <-ctx.Done():
			flush()
			r.log.Info("Lifecycle consumer stopped", nil, nil)
			return
		case d, ok := <-deliveries:
			if !ok {
				flush()
				r.log.Info("Delivery stream closed, lifecycle consumer stopped", nil, nil)
				return
			}
			batch = append(batch, d)
			if len(batch) >= r.cfg.BatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		}
	}
}
