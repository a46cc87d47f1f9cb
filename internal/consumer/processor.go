package consumer

import (
	"context"
	"fmt"

	"github.com/schemaworks/registrar/internal/faults"
	"github.com/schemaworks/registrar/internal/logger"
	"github.com/schemaworks/registrar/internal/notifier"
)

// maxPayloadExcerpt caps how much of a bad payload the failure report keeps.
const maxPayloadExcerpt = 256

// Recorder counts message outcomes. Implementations must be safe for
// concurrent use.
type Recorder interface {
	MessageOutcome(outcome string)
}

// Outcome labels used with the Recorder.
const (
	OutcomeDeleted      = "deleted"
	OutcomeInvalid      = "invalid"
	OutcomeDeleteFailed = "delete_failed"
)

// Failure captures one message of a batch that could not be processed.
type Failure struct {
	// Code is VALIDATION_ERROR for undecodable payloads and UNKNOWN_ERROR
	// for anything that went wrong past validation.
	Code faults.Code

	// Payload is an excerpt of the raw body, kept for validation failures
	// where no decoded message exists.
	Payload string

	// Message is the decoded payload, zero when decoding failed.
	Message notifier.DeletionMessage

	// Fields carries per-field diagnostics for validation failures.
	Fields []faults.FieldError

	Err error
}

// BatchReport summarizes one processed batch.
type BatchReport struct {
	Processed int
	Deleted   int
	Failures  []Failure
}

// Processor applies deletion messages against the schema store. Each message
// in a batch is handled independently: one bad message never stops the rest,
// and a batch always runs to completion.
type Processor struct {
	store    Deleter
	log      *logger.Logger
	recorder Recorder
}

// NewProcessor creates a processor over the given store.
func NewProcessor(store Deleter, log *logger.Logger) *Processor {
	return &Processor{
		store: store,
		log:   log,
	}
}

// WithRecorder attaches an outcome recorder. Nil is allowed.
func (p *Processor) WithRecorder(r Recorder) *Processor {
	p.recorder = r
	return p
}

// ProcessBatch handles every delivery in the batch. Successes are silent;
// failures are collected and reported once, after the whole batch finished.
func (p *Processor) ProcessBatch(ctx context.Context, batch []Delivery) BatchReport {
	report := BatchReport{Processed: len(batch)}

	for _, d := range batch {
		if failure := p.processOne(ctx, d); failure != nil {
			report.Failures = append(report.Failures, *failure)
		} else {
			report.Deleted++
			p.record(OutcomeDeleted)
		}
	}

	p.report(report)
	return report
}

// processOne validates and applies a single delivery. A panic anywhere in
// the message path is converted into an UNKNOWN_ERROR failure so the batch
// keeps going.
func (p *Processor) processOne(ctx context.Context, d Delivery) (failure *Failure) {
	defer func() {
		if r := recover(); r != nil {
			_ = d.Nack(false)
			p.record(OutcomeDeleteFailed)
			failure = &Failure{
				Code:    faults.CodeUnknown,
				Payload: excerpt(d.Body()),
				Err:     fmt.Errorf("panic while processing message: %v", r),
			}
		}
	}()

	msg, err := parseDeletionMessage(ctx, d.Body())
	if err != nil {
		// Malformed payloads never become valid on redelivery.
		_ = d.Ack()
		p.record(OutcomeInvalid)
		fields, _ := faults.FieldErrors(err)
		return &Failure{
			Code:    faults.CodeValidation,
			Payload: excerpt(d.Body()),
			Fields:  fields,
			Err:     err,
		}
	}

	if err := p.store.DeleteSchema(ctx, msg.SchemaName); err != nil {
		// Reject without requeue: redelivery policy belongs to the
		// broker's dead-letter setup.
		_ = d.Nack(false)
		p.record(OutcomeDeleteFailed)
		return &Failure{
			Code:    faults.CodeUnknown,
			Message: msg,
			Err:     err,
		}
	}

	_ = d.Ack()
	return nil
}

// report emits one aggregated log entry for all failures of a batch.
func (p *Processor) report(r BatchReport) {
	if len(r.Failures) == 0 {
		return
	}

	entries := make([]map[string]interface{}, 0, len(r.Failures))
	for _, f := range r.Failures {
		entry := map[string]interface{}{
			"code": string(f.Code),
		}
		if f.Message.SchemaName != "" {
			entry["schemaName"] = f.Message.SchemaName
			entry["versionId"] = f.Message.VersionID
			entry["versionNumber"] = f.Message.VersionNumber
		}
		if f.Payload != "" {
			entry["payload"] = f.Payload
		}
		if len(f.Fields) > 0 {
			entry["fields"] = f.Fields
		}
		if f.Err != nil {
			entry["error"] = f.Err.Error()
		}
		entries = append(entries, entry)
	}

	p.log.Error("Batch processed with failures", nil, map[string]interface{}{
		"processed": r.Processed,
		"deleted":   r.Deleted,
		"failed":    len(r.Failures),
		"failures":  entries,
	})
}

func (p *Processor) record(outcome string) {
	if p.recorder != nil {
		p.recorder.MessageOutcome(outcome)
	}
}

func excerpt(body []byte) string {
	if len(body) > maxPayloadExcerpt {
		body = body[:maxPayloadExcerpt]
	}
	return string(body)
}
