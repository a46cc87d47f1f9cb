package consumer

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schemaworks/registrar/internal/faults"
	"github.com/schemaworks/registrar/internal/logger"
)

// fakeDelivery records the acknowledgment decision made for it.
type fakeDelivery struct {
	body        []byte
	acked       bool
	nacked      bool
	nackRequeue bool
}

func (f *fakeDelivery) Body() []byte { return f.body }

func (f *fakeDelivery) Ack() error {
	f.acked = true
	return nil
}

func (f *fakeDelivery) Nack(requeue bool) error {
	f.nacked = true
	f.nackRequeue = requeue
	return nil
}

// fakeDeleter fails or panics for configured schema names.
type fakeDeleter struct {
	deleted  []string
	failing  map[string]error
	panicing map[string]bool
}

func (f *fakeDeleter) DeleteSchema(ctx context.Context, schemaName string) error {
	if f.panicing[schemaName] {
		panic("store client lost its connection state")
	}
	if err, ok := f.failing[schemaName]; ok {
		return err
	}
	f.deleted = append(f.deleted, schemaName)
	return nil
}

func testLogger() *logger.Logger {
	return logger.NewLoggerClient(logger.Config{Level: "error", ServiceName: "consumer-test"})
}

func validBody(name string, version int) []byte {
	return []byte(fmt.Sprintf(`{"schemaName":%q,"versionId":"v-%s","versionNumber":%d}`, name, name, version))
}

func TestProcessBatchAllValid(t *testing.T) {
	store := &fakeDeleter{}
	p := NewProcessor(store, testLogger())

	batch := []Delivery{
		&fakeDelivery{body: validBody("mw_a", 1)},
		&fakeDelivery{body: validBody("mw_b", 2)},
	}

	report := p.ProcessBatch(context.Background(), batch)

	assert.Equal(t, 2, report.Processed)
	assert.Equal(t, 2, report.Deleted)
	assert.Empty(t, report.Failures)
	assert.Equal(t, []string{"mw_a", "mw_b"}, store.deleted)
	for _, d := range batch {
		assert.True(t, d.(*fakeDelivery).acked)
	}
}

func TestProcessBatchMalformedPayload(t *testing.T) {
	store := &fakeDeleter{}
	p := NewProcessor(store, testLogger())

	bad := &fakeDelivery{body: []byte(`{"schemaName":`)}
	good := &fakeDelivery{body: validBody("mw_after", 1)}

	report := p.ProcessBatch(context.Background(), []Delivery{bad, good})

	require.Len(t, report.Failures, 1)
	f := report.Failures[0]
	assert.Equal(t, faults.CodeValidation, f.Code)
	assert.NotEmpty(t, f.Payload)

	// The malformed message never blocks the rest of the batch.
	assert.Equal(t, []string{"mw_after"}, store.deleted)
	assert.True(t, bad.acked, "malformed payloads are acked, redelivery cannot fix them")
	assert.True(t, good.acked)
}

func TestProcessBatchEmptySchemaName(t *testing.T) {
	store := &fakeDeleter{}
	p := NewProcessor(store, testLogger())

	bad := &fakeDelivery{body: []byte(`{"schemaName":"","versionId":"v-1","versionNumber":1}`)}

	report := p.ProcessBatch(context.Background(), []Delivery{bad})

	require.Len(t, report.Failures, 1)
	f := report.Failures[0]
	assert.Equal(t, faults.CodeValidation, f.Code)

	require.NotEmpty(t, f.Fields)
	paths := make([]string, 0, len(f.Fields))
	for _, fe := range f.Fields {
		paths = append(paths, fe.Path)
		assert.NotEmpty(t, fe.Message)
	}
	assert.Contains(t, paths, "/schemaName")
	assert.Empty(t, store.deleted)
}

func TestProcessBatchMissingFields(t *testing.T) {
	store := &fakeDeleter{}
	p := NewProcessor(store, testLogger())

	bad := &fakeDelivery{body: []byte(`{"versionNumber":2}`)}

	report := p.ProcessBatch(context.Background(), []Delivery{bad})

	require.Len(t, report.Failures, 1)
	paths := make([]string, 0)
	for _, fe := range report.Failures[0].Fields {
		paths = append(paths, fe.Path)
	}
	assert.Contains(t, paths, "/schemaName")
	assert.Contains(t, paths, "/versionId")
}

func TestProcessBatchDeleteFault(t *testing.T) {
	store := &fakeDeleter{failing: map[string]error{
		"mw_broken": faults.Unknown("schemastore.delete_schema", errors.New("status 500")),
	}}
	p := NewProcessor(store, testLogger())

	failing := &fakeDelivery{body: validBody("mw_broken", 1)}
	ok := &fakeDelivery{body: validBody("mw_fine", 2)}

	report := p.ProcessBatch(context.Background(), []Delivery{failing, ok})

	require.Len(t, report.Failures, 1)
	f := report.Failures[0]
	assert.Equal(t, faults.CodeUnknown, f.Code)
	assert.Equal(t, "mw_broken", f.Message.SchemaName)
	assert.Equal(t, "v-mw_broken", f.Message.VersionID)

	assert.True(t, failing.nacked)
	assert.False(t, failing.nackRequeue, "redelivery is the dead-letter exchange's call")
	assert.True(t, ok.acked)
	assert.Equal(t, []string{"mw_fine"}, store.deleted)
}

func TestProcessBatchPanicIsolation(t *testing.T) {
	store := &fakeDeleter{panicing: map[string]bool{"mw_boom": true}}
	p := NewProcessor(store, testLogger())

	before := &fakeDelivery{body: validBody("mw_before", 1)}
	boom := &fakeDelivery{body: validBody("mw_boom", 2)}
	after := &fakeDelivery{body: validBody("mw_after", 3)}

	report := p.ProcessBatch(context.Background(), []Delivery{before, boom, after})

	assert.Equal(t, 3, report.Processed)
	assert.Equal(t, 2, report.Deleted)
	require.Len(t, report.Failures, 1)
	assert.Equal(t, faults.CodeUnknown, report.Failures[0].Code)
	require.Error(t, report.Failures[0].Err)
	assert.Contains(t, report.Failures[0].Err.Error(), "panic")

	assert.True(t, boom.nacked)
	assert.Equal(t, []string{"mw_before", "mw_after"}, store.deleted)
}

func TestProcessBatchMixedFailures(t *testing.T) {
	store := &fakeDeleter{failing: map[string]error{
		"mw_fault": errors.New("store unavailable"),
	}}
	p := NewProcessor(store, testLogger())

	batch := []Delivery{
		&fakeDelivery{body: validBody("abc123", 1)},
		&fakeDelivery{body: []byte(`{"schemaName":"","versionId":"v-2","versionNumber":2}`)},
		&fakeDelivery{body: validBody("mw_fault", 3)},
		&fakeDelivery{body: validBody("mw_tail", 4)},
	}

	report := p.ProcessBatch(context.Background(), batch)

	assert.Equal(t, 4, report.Processed)
	assert.Equal(t, 2, report.Deleted)
	require.Len(t, report.Failures, 2)

	assert.Equal(t, faults.CodeValidation, report.Failures[0].Code)
	assert.Equal(t, faults.CodeUnknown, report.Failures[1].Code)
	assert.Equal(t, "mw_fault", report.Failures[1].Message.SchemaName)

	assert.Equal(t, []string{"abc123", "mw_tail"}, store.deleted)
}

type countingRecorder struct {
	outcomes map[string]int
}

func (c *countingRecorder) MessageOutcome(outcome string) {
	if c.outcomes == nil {
		c.outcomes = map[string]int{}
	}
	c.outcomes[outcome]++
}

func TestProcessBatchRecordsOutcomes(t *testing.T) {
	store := &fakeDeleter{failing: map[string]error{"mw_fault": errors.New("boom")}}
	rec := &countingRecorder{}
	p := NewProcessor(store, testLogger()).WithRecorder(rec)

	batch := []Delivery{
		&fakeDelivery{body: validBody("mw_ok", 1)},
		&fakeDelivery{body: []byte(`not json`)},
		&fakeDelivery{body: validBody("mw_fault", 2)},
	}

	p.ProcessBatch(context.Background(), batch)

	assert.Equal(t, 1, rec.outcomes[OutcomeDeleted])
	assert.Equal(t, 1, rec.outcomes[OutcomeInvalid])
	assert.Equal(t, 1, rec.outcomes[OutcomeDeleteFailed])
}

func TestProcessBatchEmpty(t *testing.T) {
	p := NewProcessor(&fakeDeleter{}, testLogger())

	report := p.ProcessBatch(context.Background(), nil)

	assert.Equal(t, 0, report.Processed)
	assert.Empty(t, report.Failures)
}
