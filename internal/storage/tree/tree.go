package tree

import (
	"fmt"

	"lsmkv/internal/config"
	"lsmkv/internal/metrics"
	"lsmkv/internal/storage/memtable"
	"lsmkv/internal/storage/run"
	"lsmkv/pkg/logger"
)

type Status int

const (
	Absent Status = iota
	Found
	Deleted
)

func (s Status) String() string {
	switch s {
	case Found:
		return "found"
	case Deleted:
		return "deleted"
	default:
		return "absent"
	}
}

// Result of a point lookup. Value is meaningful only when Status is Found.
type Result struct {
	Status Status
	Value  int64
}

// LSM Tree Engine
//
// LSMTree is single threaded: it holds no locks and every call runs to
// completion, including any flush and promotion cascade it triggers. Callers
// that share a tree across goroutines must serialise access themselves.
type LSMTree struct {
	conf     *config.Config
	memTable memtable.MemTable // absorbs every mutation
	runs     *run.Store        // run files and the run-length table
	levels   [][]int           // run ids per level, oldest first
	metrics  *metrics.Metrics
}

func NewLSMTree(conf *config.Config, m *metrics.Metrics) (*LSMTree, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	runs, err := run.NewStore(conf, m)
	if err != nil {
		return nil, err
	}
	return &LSMTree{
		conf:     conf,
		memTable: conf.MemTableConstructor(),
		runs:     runs,
		metrics:  m,
	}, nil
}

// Put inserts or overwrites key. The returned error comes from a flush the
// write triggered; the write itself is already in the memtable.
func (t *LSMTree) Put(key, value int64) error {
	t.memTable.Put(key, value)
	return t.maybeFlush()
}

// Delete writes a tombstone for key.
func (t *LSMTree) Delete(key int64) error {
	t.memTable.Delete(key)
	return t.maybeFlush()
}

func (t *LSMTree) maybeFlush() error {
	defer func() {
		t.metrics.SetMemTableEntries(t.memTable.Len())
	}()
	if t.memTable.Len() <= t.conf.Threshold0 {
		return nil
	}
	return t.compact()
}

// Get finds the freshest version of key: memtable, then level 0 upward, and
// within a level the newest run first. The first hit wins.
func (t *LSMTree) Get(key int64) (Result, error) {
	if rec, ok := t.memTable.Get(key); ok {
		res := toResult(rec.Tombstone, rec.Value)
		t.recordLookup(res, 0)
		return res, nil
	}

	probed := 0
	for level := 0; level < len(t.levels); level++ {
		for i := len(t.levels[level]) - 1; i >= 0; i-- {
			id := t.levels[level][i]
			rec, ok, err := t.runs.Search(id, key)
			if err != nil {
				return Result{}, fmt.Errorf("lookup %d in level %d run %d: %w", key, level, id, err)
			}
			probed++
			if ok {
				res := toResult(rec.Tombstone, rec.Value)
				t.recordLookup(res, probed)
				return res, nil
			}
		}
	}
	t.recordLookup(Result{Status: Absent}, probed)
	return Result{Status: Absent}, nil
}

func toResult(tombstone bool, value int64) Result {
	if tombstone {
		return Result{Status: Deleted}
	}
	return Result{Status: Found, Value: value}
}

func (t *LSMTree) recordLookup(res Result, probed int) {
	t.metrics.RecordLookup(res.Status.String(), probed)
}

// LevelStats describes one level of the hierarchy.
type LevelStats struct {
	Level   int   `json:"level"`
	RunIDs  []int `json:"run_ids"`
	Records []int `json:"records"`
}

// Stats is a point-in-time copy of the tree layout.
type Stats struct {
	MemTableEntries int          `json:"memtable_entries"`
	RunsAllocated   int          `json:"runs_allocated"`
	Levels          []LevelStats `json:"levels"`
}

func (t *LSMTree) Stats() Stats {
	stats := Stats{
		MemTableEntries: t.memTable.Len(),
		RunsAllocated:   t.runs.Count(),
		Levels:          make([]LevelStats, 0, len(t.levels)),
	}
	for level, ids := range t.levels {
		ls := LevelStats{
			Level:   level,
			RunIDs:  append([]int{}, ids...),
			Records: make([]int, 0, len(ids)),
		}
		for _, id := range ids {
			n, _ := t.runs.Len(id) // ids in levels always come from the store
			ls.Records = append(ls.Records, n)
		}
		stats.Levels = append(stats.Levels, ls)
	}
	return stats
}

// Levels returns a copy of the run ids held by each level.
func (t *LSMTree) Levels() [][]int {
	levels := make([][]int, len(t.levels))
	for i, ids := range t.levels {
		levels[i] = append([]int{}, ids...)
	}
	return levels
}

func (t *LSMTree) Stop() {
	logger.Debug("lsm tree stopped", "runs", t.runs.Count(), "memtable_entries", t.memTable.Len())
}
