package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRecord(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.RecordFlush()
	m.RecordFlush()
	m.RecordPromotion(1)
	m.RecordRunWritten(10)
	m.RecordRunWritten(5)
	m.RecordLookup(ResultFound, 2)
	m.RecordLookup(ResultAbsent, 3)
	m.RecordLookup(ResultAbsent, 0)
	m.SetMemTableEntries(7)
	m.SetLevelRuns(0, 3)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.flushes))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.promotions.WithLabelValues("1")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.runsWritten))
	assert.Equal(t, 15.0, testutil.ToFloat64(m.recordsWritten))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.lookups.WithLabelValues(ResultFound)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.lookups.WithLabelValues(ResultAbsent)))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.runsProbed))
	assert.Equal(t, 7.0, testutil.ToFloat64(m.memtableEntries))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.levelRuns.WithLabelValues("0")))

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordFlush()
		m.RecordPromotion(2)
		m.RecordRunWritten(1)
		m.RecordLookup(ResultDeleted, 1)
		m.SetMemTableEntries(1)
		m.SetLevelRuns(1, 1)
	})
}

func TestDoubleRegisterPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	assert.Panics(t, func() { New(reg) })
}
