package tree

import (
	"math/rand"
	"sort"
	"testing"

	"lsmkv/internal/storage/record"

	"github.com/stretchr/testify/assert"
)

func TestMergeRuns_FreshestWins(t *testing.T) {
	older := []record.Record{{Key: 1, Value: 10}, {Key: 5, Value: 50}}
	newer := []record.Record{{Key: 5, Value: 55}, {Key: 9, Value: 90}}

	got := mergeRuns([][]record.Record{older, newer})
	assert.Equal(t, []record.Record{
		{Key: 1, Value: 10},
		{Key: 5, Value: 55},
		{Key: 9, Value: 90},
	}, got)
}

func TestMergeRuns_TombstoneShadows(t *testing.T) {
	older := []record.Record{{Key: 3, Value: 30}, {Key: 4, Value: 40}}
	newer := []record.Record{{Key: 3, Tombstone: true}}
	newest := []record.Record{{Key: 4, Value: 41}}

	got := mergeRuns([][]record.Record{older, newer, newest})
	assert.Equal(t, []record.Record{
		{Key: 3, Tombstone: true},
		{Key: 4, Value: 41},
	}, got)
}

func TestMergeRuns_SameKeyEverywhere(t *testing.T) {
	runs := make([][]record.Record, 5)
	for i := range runs {
		runs[i] = []record.Record{{Key: 7, Value: int64(i)}}
	}
	got := mergeRuns(runs)
	assert.Equal(t, []record.Record{{Key: 7, Value: 4}}, got)
}

func TestMergeRuns_EmptyInputs(t *testing.T) {
	assert.Empty(t, mergeRuns(nil))
	assert.Empty(t, mergeRuns([][]record.Record{nil, {}}))

	got := mergeRuns([][]record.Record{nil, {{Key: -1, Value: 1}}, nil})
	assert.Equal(t, []record.Record{{Key: -1, Value: 1}}, got)
}

// TestMergeRuns_MatchesOverwriteModel checks the merge against replaying the
// runs oldest to newest into a map.
func TestMergeRuns_MatchesOverwriteModel(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for round := 0; round < 50; round++ {
		numRuns := 1 + rng.Intn(6)
		runs := make([][]record.Record, numRuns)
		model := make(map[int64]record.Record)

		for i := range runs {
			keys := make(map[int64]struct{})
			for j := rng.Intn(40); j > 0; j-- {
				keys[int64(rng.Intn(60)-30)] = struct{}{}
			}
			for k := range keys {
				rec := record.Record{Key: k, Value: rng.Int63(), Tombstone: rng.Intn(4) == 0}
				runs[i] = append(runs[i], rec)
				model[k] = rec
			}
			sort.Slice(runs[i], func(a, b int) bool { return runs[i][a].Key < runs[i][b].Key })
		}

		want := make([]record.Record, 0, len(model))
		for _, rec := range model {
			want = append(want, rec)
		}
		sort.Slice(want, func(a, b int) bool { return want[a].Key < want[b].Key })

		got := mergeRuns(runs)
		if len(want) == 0 {
			assert.Empty(t, got, "round %d", round)
			continue
		}
		assert.Equal(t, want, got, "round %d", round)
	}
}
