// Package record defines the fixed-width record stored in the memtable and in runs.
//
// On disk a record is 20 bytes, little-endian, with no padding:
//
//	[0:8)   key        int64
//	[8:16)  value      int64
//	[16:20) tombstone  uint32, 0 or 1
//
// A run file is a bare concatenation of records; the record count lives only in
// the run store's in-memory length table.
package record

import (
	"encoding/binary"
	"fmt"

	"lsmkv/pkg/errors"
)

const (
	keyOffset       = 0
	valueOffset     = 8
	tombstoneOffset = 16

	// Size is the encoded width of one record.
	Size = 20
)

// Record is the unit stored everywhere. Records order by Key only.
type Record struct {
	Key       int64
	Value     int64
	Tombstone bool
}

// Encode writes r into buf, which must hold at least Size bytes.
func Encode(buf []byte, r Record) {
	binary.LittleEndian.PutUint64(buf[keyOffset:], uint64(r.Key))
	binary.LittleEndian.PutUint64(buf[valueOffset:], uint64(r.Value))
	var flag uint32
	if r.Tombstone {
		flag = 1
	}
	binary.LittleEndian.PutUint32(buf[tombstoneOffset:], flag)
}

// Decode reads one record from buf.
func Decode(buf []byte) (Record, error) {
	if len(buf) < Size {
		return Record{}, fmt.Errorf("%w: short record of %d bytes", errors.ErrCorruption, len(buf))
	}
	flag := binary.LittleEndian.Uint32(buf[tombstoneOffset:])
	if flag > 1 {
		return Record{}, fmt.Errorf("%w: tombstone flag %d", errors.ErrCorruption, flag)
	}
	return Record{
		Key:       int64(binary.LittleEndian.Uint64(buf[keyOffset:])),
		Value:     int64(binary.LittleEndian.Uint64(buf[valueOffset:])),
		Tombstone: flag == 1,
	}, nil
}

// EncodeAll packs records back to back.
func EncodeAll(records []Record) []byte {
	buf := make([]byte, len(records)*Size)
	for i, r := range records {
		Encode(buf[i*Size:], r)
	}
	return buf
}

// DecodeAll unpacks a buffer that must hold a whole number of records.
func DecodeAll(buf []byte) ([]Record, error) {
	if len(buf)%Size != 0 {
		return nil, fmt.Errorf("%w: %d bytes is not a multiple of %d", errors.ErrCorruption, len(buf), Size)
	}
	records := make([]Record, len(buf)/Size)
	for i := range records {
		r, err := Decode(buf[i*Size:])
		if err != nil {
			return nil, err
		}
		records[i] = r
	}
	return records, nil
}
