package lrucache

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Uint64Key encodes v into a fixed 8-byte little-endian key, suitable for
// use directly as the key slice passed to LookupOrInsert when the cache
// was initialized with roundedKeyBytes == 8 (or an AlignKeySize of 8).
func Uint64Key(v uint64) [8]byte {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	return b
}

// StringKey copies s into a width-byte buffer, zero-padding on the right.
// It returns ErrOverflow if s is longer than width. Short fixed-width
// string keys (usernames, symbols, short IDs) are the intended use; keys
// that need their full length preserved should carry an explicit length
// prefix instead.
func StringKey(s string, width uint32) ([]byte, error) {
	if uint32(len(s)) > width {
		return nil, ErrOverflow
	}
	b := make([]byte, width)
	copy(b, s)
	return b, nil
}

// FNV1a64Step folds one more byte into an in-progress 64-bit FNV-1a hash.
// Call it once per key byte, starting from fnv1a64Offset, then reduce the
// accumulator mod capacity to get a HashFunc result.
//
// Ported from cm_fnv1a64_step.
func FNV1a64Step(h uint64, b byte) uint64 {
	h ^= uint64(b)
	h *= 0x100000001b3
	return h
}

// fnv1a64Offset is the FNV-1a 64-bit offset basis, the correct starting
// accumulator for FNV1a64Step.
const fnv1a64Offset uint64 = 0xcbf29ce484222325

// DJB2Step folds one more byte into an in-progress DJB2 hash, starting
// from djb2Offset.
//
// Ported from cm_djb2_step.
func DJB2Step(h uint32, b byte) uint32 {
	return h*33 + uint32(b)
}

// djb2Offset is DJB2Step's initial accumulator.
const djb2Offset uint32 = 5381

// FNV1a64 returns the full 64-bit FNV-1a digest of key.
func FNV1a64(key []byte) uint64 {
	h := fnv1a64Offset
	for _, b := range key {
		h = FNV1a64Step(h, b)
	}
	return h
}

// DJB2 returns the full 32-bit DJB2 digest of key.
func DJB2(key []byte) uint32 {
	h := djb2Offset
	for _, b := range key {
		h = DJB2Step(h, b)
	}
	return h
}

// XXHashFunc is a HashFunc backed by xxhash, for callers who would rather
// depend on a maintained SIMD-friendly hash than the portable FNV-1a/DJB2
// steppers above. capacity is assumed to be the bucket count; the digest
// is reduced with Go's modulo, not a mask, so capacity need not be a power
// of two.
func XXHashFunc(key []byte, capacity uint32) uint32 {
	if capacity == 0 {
		return 0
	}
	return uint32(xxhash.Sum64(key) % uint64(capacity))
}
