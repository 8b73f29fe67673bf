package tree

import "lsmkv/internal/storage/record"

// mergeRuns merges sorted runs given oldest first into one sorted run with one
// record per key, keeping the version from the newest run that holds it.
//
// The output is built from the largest key down. Each step takes the largest
// key among the cursors, preferring the later run on a tie, and keeps it only
// if it is smaller than the last kept key; anything else is a stale copy of a
// key a newer run already decided. Tombstones are kept like any other record.
func mergeRuns(runs [][]record.Record) []record.Record {
	total := 0
	cursors := make([]int, len(runs))
	for i, r := range runs {
		cursors[i] = len(r) - 1
		total += len(r)
	}

	out := make([]record.Record, 0, total)
	for {
		u := -1
		for i := len(runs) - 1; i >= 0; i-- {
			if cursors[i] < 0 {
				continue
			}
			// strict comparison keeps the later run on equal keys
			if u < 0 || runs[i][cursors[i]].Key > runs[u][cursors[u]].Key {
				u = i
			}
		}
		if u < 0 {
			break
		}

		rec := runs[u][cursors[u]]
		if len(out) == 0 || rec.Key < out[len(out)-1].Key {
			out = append(out, rec)
		}
		cursors[u]--
	}

	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}
