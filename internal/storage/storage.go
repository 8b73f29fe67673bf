package storage

import (
	"sync"

	"lsmkv/internal/config"
	"lsmkv/internal/metrics"
	"lsmkv/internal/storage/tree"
	"lsmkv/pkg/logger"
)

type KVStorage interface {
	Insert(key, value int64) error
	Update(key, value int64) error
	Delete(key int64) error
	Get(key int64) (tree.Result, error)
	Stats() tree.Stats
	Close()
}

// Storage wraps the tree with one exclusive lock, so a mutation and any
// cascade it triggers never overlap a lookup. The tree itself stays lock free.
type Storage struct {
	mu      sync.Mutex
	lsmTree *tree.LSMTree
}

func NewStorage(conf *config.Config, m *metrics.Metrics) (*Storage, error) {
	lsmTree, err := tree.NewLSMTree(conf, m)
	if err != nil {
		return nil, err
	}
	return &Storage{lsmTree: lsmTree}, nil
}

// Insert is an alias for Update.
func (s *Storage) Insert(key, value int64) error {
	return s.Update(key, value)
}

func (s *Storage) Update(key, value int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lsmTree.Put(key, value)
}

func (s *Storage) Delete(key int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lsmTree.Delete(key)
}

func (s *Storage) Get(key int64) (tree.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lsmTree.Get(key)
}

func (s *Storage) Stats() tree.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lsmTree.Stats()
}

// Close releases the tree and flushes the logger. Buffered memtable entries
// are not persisted.
func (s *Storage) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lsmTree.Stop()
	_ = logger.Sync()
}
