package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Lookup outcomes used as the result label.
const (
	ResultFound   = "found"
	ResultDeleted = "deleted"
	ResultAbsent  = "absent"
)

// Metrics holds the engine collectors. A nil *Metrics records nothing, so the
// tree and run store can run without a registry.
type Metrics struct {
	flushes         prometheus.Counter
	promotions      *prometheus.CounterVec
	runsWritten     prometheus.Counter
	recordsWritten  prometheus.Counter
	lookups         *prometheus.CounterVec
	runsProbed      prometheus.Counter
	memtableEntries prometheus.Gauge
	levelRuns       *prometheus.GaugeVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		flushes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lsmkv_flushes_total",
			Help: "Memtable flushes into level 0",
		}),
		promotions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lsmkv_promotions_total",
			Help: "Level merges, labelled by destination level",
		}, []string{"level"}),
		runsWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lsmkv_runs_written_total",
			Help: "Runs persisted by the run store",
		}),
		recordsWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lsmkv_records_written_total",
			Help: "Records persisted across all runs",
		}),
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lsmkv_lookups_total",
			Help: "Point lookups by outcome",
		}, []string{"result"}),
		runsProbed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lsmkv_runs_probed_total",
			Help: "Runs consulted by point lookups, bloom filter rejections included",
		}),
		memtableEntries: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "lsmkv_memtable_entries",
			Help: "Entries currently buffered in the memtable",
		}),
		levelRuns: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "lsmkv_level_runs",
			Help: "Runs currently linked into each level",
		}, []string{"level"}),
	}
	reg.MustRegister(
		m.flushes,
		m.promotions,
		m.runsWritten,
		m.recordsWritten,
		m.lookups,
		m.runsProbed,
		m.memtableEntries,
		m.levelRuns,
	)
	return m
}

func (m *Metrics) RecordFlush() {
	if m == nil {
		return
	}
	m.flushes.Inc()
}

func (m *Metrics) RecordPromotion(level int) {
	if m == nil {
		return
	}
	m.promotions.WithLabelValues(strconv.Itoa(level)).Inc()
}

func (m *Metrics) RecordRunWritten(records int) {
	if m == nil {
		return
	}
	m.runsWritten.Inc()
	m.recordsWritten.Add(float64(records))
}

func (m *Metrics) RecordLookup(result string, probed int) {
	if m == nil {
		return
	}
	m.lookups.WithLabelValues(result).Inc()
	m.runsProbed.Add(float64(probed))
}

func (m *Metrics) SetMemTableEntries(n int) {
	if m == nil {
		return
	}
	m.memtableEntries.Set(float64(n))
}

func (m *Metrics) SetLevelRuns(level, runs int) {
	if m == nil {
		return
	}
	m.levelRuns.WithLabelValues(strconv.Itoa(level)).Set(float64(runs))
}
