package filter

import (
	"encoding/binary"

	"github.com/bits-and-blooms/bitset"
	"github.com/twmb/murmur3"
)

const (
	DefaultBitsPerKey = 10

	minBits = 64
	maxK    = 30
)

var _ Filter = (*BloomFilter)(nil)

// BloomFilter collects key hashes with Add and materialises the bitmap on Build,
// so the bitmap can be sized from the final key count.
type BloomFilter struct {
	bitsPerKey int
	hashKeys   []uint32
	bits       *bitset.BitSet
	k          int
}

func NewBloomFilter(bitsPerKey int) *BloomFilter {
	if bitsPerKey <= 0 {
		bitsPerKey = DefaultBitsPerKey
	}
	return &BloomFilter{
		bitsPerKey: bitsPerKey,
	}
}

func hashKey(key int64) uint32 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(key))
	return murmur3.Sum32(buf[:])
}

func (b *BloomFilter) Add(key int64) {
	b.hashKeys = append(b.hashKeys, hashKey(key))
}

// GetBestK returns bitsPerKey * ln2, clamped to [1, 30].
func (b *BloomFilter) GetBestK() int {
	k := b.bitsPerKey * 69 / 100
	if k < 1 {
		k = 1
	}
	if k > maxK {
		k = maxK
	}
	return k
}

func (b *BloomFilter) Build() {
	m := len(b.hashKeys) * b.bitsPerKey
	if m < minBits {
		m = minBits
	}
	b.k = b.GetBestK()
	b.bits = bitset.New(uint(m))
	for _, h := range b.hashKeys {
		// double hashing, as in leveldb
		delta := h>>17 | h<<15
		for j := 0; j < b.k; j++ {
			b.bits.Set(uint(h % uint32(m)))
			h += delta
		}
	}
}

// MayContain reports false only when key was definitely not added before Build.
// An unbuilt filter cannot exclude anything.
func (b *BloomFilter) MayContain(key int64) bool {
	if b.bits == nil {
		return true
	}
	m := uint32(b.bits.Len())
	h := hashKey(key)
	delta := h>>17 | h<<15
	for j := 0; j < b.k; j++ {
		if !b.bits.Test(uint(h % m)) {
			return false
		}
		h += delta
	}
	return true
}

func (b *BloomFilter) KeyLen() int {
	return len(b.hashKeys)
}
