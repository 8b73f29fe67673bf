package memtable

import (
	"lsmkv/internal/storage/record"

	"github.com/huandu/skiplist"
)

type entry struct {
	value     int64
	tombstone bool
}

// SkipList is the default MemTable, ordered on int64 keys. Not safe for
// concurrent use; the tree owns it exclusively.
type SkipList struct {
	list *skiplist.SkipList
}

func NewSkipList() *SkipList {
	return &SkipList{
		list: skiplist.New(skiplist.Int64),
	}
}

// NewMemTable adapts NewSkipList to MemTableConstructor.
func NewMemTable() MemTable {
	return NewSkipList()
}

func (s *SkipList) Put(key, value int64) {
	s.list.Set(key, entry{value: value})
}

func (s *SkipList) Delete(key int64) {
	s.list.Set(key, entry{tombstone: true})
}

func (s *SkipList) Get(key int64) (record.Record, bool) {
	elem := s.list.Get(key)
	if elem == nil {
		return record.Record{}, false
	}
	e := elem.Value.(entry)
	return record.Record{Key: key, Value: e.value, Tombstone: e.tombstone}, true
}

func (s *SkipList) All() []record.Record {
	if s.list.Len() == 0 {
		return nil
	}
	records := make([]record.Record, 0, s.list.Len())
	for elem := s.list.Front(); elem != nil; elem = elem.Next() {
		e := elem.Value.(entry)
		records = append(records, record.Record{
			Key:       elem.Key().(int64),
			Value:     e.value,
			Tombstone: e.tombstone,
		})
	}
	return records
}

func (s *SkipList) Len() int {
	return s.list.Len()
}

func (s *SkipList) Reset() {
	s.list.Init()
}
