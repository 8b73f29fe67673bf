package tree

import (
	"fmt"

	"lsmkv/internal/storage/record"
	"lsmkv/pkg/logger"
)

// compact writes the memtable as a new run in level 0, then walks upward: while
// level n-1 holds at least MaxBin runs, all of them are merged into one run
// appended to level n and level n-1 is emptied. It stops at the first level
// below capacity. The memtable is reset as soon as its run is linked into
// level 0.
//
// Nothing is rolled back on error: a failed write leaves the levels as they
// were after the last successful step. If the level 0 write itself fails the
// memtable is kept; a failed promotion returns with the memtable already empty.
func (t *LSMTree) compact() error {
	for n := 0; ; n++ {
		if n > 0 && len(t.levels[n-1]) < t.conf.MaxBin {
			return nil
		}

		var (
			records  []record.Record
			consumed []int
		)
		if n == 0 {
			records = t.memTable.All()
		} else {
			consumed = t.levels[n-1]
			inputs := make([][]record.Record, 0, len(consumed))
			for _, id := range consumed {
				recs, err := t.runs.ReadRun(id)
				if err != nil {
					logger.Error("compaction read failed", "level", n-1, "run", id, "err", err)
					return fmt.Errorf("compact level %d: %w", n-1, err)
				}
				inputs = append(inputs, recs)
			}
			records = mergeRuns(inputs)
		}

		id, err := t.runs.WriteRun(records)
		if err != nil {
			logger.Error("compaction write failed", "level", n, "err", err)
			return fmt.Errorf("compact into level %d: %w", n, err)
		}
		if n > 0 {
			t.levels[n-1] = nil
			t.metrics.SetLevelRuns(n-1, 0)
		}
		if len(t.levels) < n+1 {
			t.levels = append(t.levels, nil)
		}
		t.levels[n] = append(t.levels[n], id)
		t.metrics.SetLevelRuns(n, len(t.levels[n]))

		if n == 0 {
			t.memTable.Reset()
			t.metrics.RecordFlush()
			logger.Debug("memtable flushed", "run", id, "records", len(records))
			continue
		}

		// consumed runs stay on disk, unlinked
		t.metrics.RecordPromotion(n)
		logger.Debug("level promoted", "from", n-1, "to", n, "inputs", consumed, "run", id, "records", len(records))
	}
}
