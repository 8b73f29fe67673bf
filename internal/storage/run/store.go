// Package run persists immutable sorted runs of records as flat binary files.
package run

import (
	"bufio"
	"fmt"
	"os"
	"path"
	"sort"

	"lsmkv/internal/cache"
	"lsmkv/internal/config"
	"lsmkv/internal/metrics"
	"lsmkv/internal/storage/filter"
	"lsmkv/internal/storage/record"
	"lsmkv/pkg/errors"
	"lsmkv/pkg/logger"
)

// FileName is the file a run is stored under, derived only from its id.
func FileName(id int) string {
	return fmt.Sprintf("level-%d.bin", id)
}

// Store allocates run ids and owns the run-length table. Ids are dense and
// increasing, so a larger id always means a more recently written run.
// The length table is process-local; nothing about it reaches disk.
type Store struct {
	conf    *config.Config
	lengths []int           // run id -> record count
	filters []filter.Filter // run id -> bloom filter
	cache   *cache.LRUCache[int, []record.Record]
	metrics *metrics.Metrics
}

func NewStore(conf *config.Config, m *metrics.Metrics) (*Store, error) {
	if err := os.MkdirAll(conf.Dir, 0755); err != nil {
		return nil, fmt.Errorf("%w: create dir %s: %v", errors.ErrStorageIO, conf.Dir, err)
	}
	logger.Info("run store opened", "dir", conf.Dir, "cache_size", conf.RunCacheSize)
	return &Store{
		conf:    conf,
		cache:   cache.NewLRUCache[int, []record.Record](conf.RunCacheSize),
		metrics: m,
	}, nil
}

func (s *Store) file(id int) string {
	return path.Join(s.conf.Dir, FileName(id))
}

// WriteRun persists records, which must already be sorted by key without
// duplicates, and returns the new run id. The id is only committed once the
// file is fully written.
func (s *Store) WriteRun(records []record.Record) (int, error) {
	id := len(s.lengths)
	file := s.file(id)

	dest, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return 0, fmt.Errorf("%w: create run %d: %v", errors.ErrStorageIO, id, err)
	}
	writer := bufio.NewWriter(dest)
	if _, err := writer.Write(record.EncodeAll(records)); err != nil {
		_ = dest.Close()
		return 0, fmt.Errorf("%w: write run %d: %v", errors.ErrStorageIO, id, err)
	}
	if err := writer.Flush(); err != nil {
		_ = dest.Close()
		return 0, fmt.Errorf("%w: flush run %d: %v", errors.ErrStorageIO, id, err)
	}
	if err := dest.Close(); err != nil {
		return 0, fmt.Errorf("%w: close run %d: %v", errors.ErrStorageIO, id, err)
	}

	var bf filter.Filter = filter.NewBloomFilter(s.conf.FilterBitsPerKey)
	for _, r := range records {
		bf.Add(r.Key)
	}
	bf.Build()

	s.lengths = append(s.lengths, len(records))
	s.filters = append(s.filters, bf)
	s.metrics.RecordRunWritten(len(records))
	logger.Debug("run written", "run", id, "records", len(records), "filter_keys", bf.KeyLen(), "file", file)
	return id, nil
}

// ReadRun returns every record of run id in key order. The returned slice may
// be shared with the cache and must not be modified.
func (s *Store) ReadRun(id int) ([]record.Record, error) {
	n, err := s.Len(id)
	if err != nil {
		return nil, err
	}
	if records, ok := s.cache.Get(id); ok {
		return records, nil
	}

	data, err := os.ReadFile(s.file(id))
	if err != nil {
		return nil, fmt.Errorf("%w: read run %d: %v", errors.ErrStorageIO, id, err)
	}
	if len(data) != n*record.Size {
		return nil, fmt.Errorf("%w: run %d holds %d bytes, want %d records of %d bytes",
			errors.ErrCorruption, id, len(data), n, record.Size)
	}
	records, err := record.DecodeAll(data)
	if err != nil {
		return nil, fmt.Errorf("run %d: %w", id, err)
	}
	for i := 1; i < len(records); i++ {
		if records[i-1].Key >= records[i].Key {
			return nil, fmt.Errorf("%w: run %d is not strictly ordered at record %d",
				errors.ErrCorruption, id, i)
		}
	}

	s.cache.Set(id, records)
	return records, nil
}

// Search looks key up in run id with the bloom filter first, then a binary search.
func (s *Store) Search(id int, key int64) (record.Record, bool, error) {
	if _, err := s.Len(id); err != nil {
		return record.Record{}, false, err
	}
	if !s.filters[id].MayContain(key) {
		return record.Record{}, false, nil
	}

	records, err := s.ReadRun(id)
	if err != nil {
		return record.Record{}, false, err
	}
	i := sort.Search(len(records), func(i int) bool { return records[i].Key >= key })
	if i < len(records) && records[i].Key == key {
		return records[i], true, nil
	}
	return record.Record{}, false, nil
}

// Len returns the recorded length of run id.
func (s *Store) Len(id int) (int, error) {
	if id < 0 || id >= len(s.lengths) {
		return 0, fmt.Errorf("%w: unknown run %d", errors.ErrCorruption, id)
	}
	return s.lengths[id], nil
}

// Count returns how many run ids have been allocated.
func (s *Store) Count() int {
	return len(s.lengths)
}
