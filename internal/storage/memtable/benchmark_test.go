package memtable_test

import (
	"math/rand"
	"testing"

	"lsmkv/internal/storage/memtable"
)

func generateTestKeys(n int) []int64 {
	keys := make([]int64, n)
	for i := range keys {
		keys[i] = rand.Int63()
	}
	return keys
}

func BenchmarkSkipList_Put(b *testing.B) {
	sl := memtable.NewSkipList()
	keys := generateTestKeys(b.N)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sl.Put(keys[i], int64(i))
	}
}

func BenchmarkSkipList_Get(b *testing.B) {
	sl := memtable.NewSkipList()
	keys := generateTestKeys(1024)
	for i, k := range keys {
		sl.Put(k, int64(i))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sl.Get(keys[i%len(keys)])
	}
}

func BenchmarkSkipList_All(b *testing.B) {
	sl := memtable.NewSkipList()
	for i, k := range generateTestKeys(1024) {
		sl.Put(k, int64(i))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = sl.All()
	}
}
