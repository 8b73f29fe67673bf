package memtable

import "lsmkv/internal/storage/record"

type MemTableConstructor func() MemTable

// MemTable buffers mutations in key order. It does not bound itself; the tree
// flushes it once Len exceeds the configured threshold.
type MemTable interface {
	Put(key, value int64)                // insert or overwrite a live value
	Delete(key int64)                    // insert or overwrite a tombstone
	Get(key int64) (record.Record, bool) // entry for key, tombstones included
	All() []record.Record                // all entries in ascending key order
	Len() int                            // num of entries
	Reset()                              // drop every entry
}
