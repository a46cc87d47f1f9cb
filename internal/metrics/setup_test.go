package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMetrics() *Metrics {
	return NewMetrics(Config{
		Address:     ":0",
		ServiceName: "registrar-test",
	})
}

func gatherNames(t *testing.T, m *Metrics) map[string]bool {
	t.Helper()
	families, err := m.Registry.Gather()
	require.NoError(t, err)
	names := make(map[string]bool, len(families))
	for _, mf := range families {
		names[mf.GetName()] = true
	}
	return names
}

func TestNewMetricsRegistersFamilies(t *testing.T) {
	m := newTestMetrics()

	m.IncrementAdmissions(AdmissionPermitted)
	m.IncrementStoreCommands("create_schema", "success")
	m.MessageOutcome("deleted")
	m.RecordRequestDuration(time.Now(), "/api/schemas")

	names := gatherNames(t, m)
	assert.True(t, names["admissions_total"])
	assert.True(t, names["store_commands_total"])
	assert.True(t, names["lifecycle_messages_total"])
	assert.True(t, names["request_duration_seconds"])
}

func TestServiceLabelApplied(t *testing.T) {
	m := newTestMetrics()
	m.IncrementAdmissions(AdmissionBlocked)

	families, err := m.Registry.Gather()
	require.NoError(t, err)

	for _, mf := range families {
		if mf.GetName() != "admissions_total" {
			continue
		}
		require.NotEmpty(t, mf.GetMetric())
		labels := map[string]string{}
		for _, lp := range mf.GetMetric()[0].GetLabel() {
			labels[lp.GetName()] = lp.GetValue()
		}
		assert.Equal(t, "registrar-test", labels["service"])
		assert.Equal(t, AdmissionBlocked, labels["outcome"])
		return
	}
	t.Fatal("admissions_total family not found")
}

func TestCreateCounterRegisters(t *testing.T) {
	m := newTestMetrics()

	c := m.CreateCounter("custom_events_total", "Custom events", []string{"kind"})
	c.WithLabelValues("test").Inc()

	names := gatherNames(t, m)
	assert.True(t, names["custom_events_total"])
}
