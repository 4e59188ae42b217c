package lrucache

import (
	"encoding/binary"
	"math"
)

// NIL is the sentinel slot index meaning "no link". It is the maximum
// value representable by a uint32. A freshly zeroed index buffer decodes
// as slot 0, not NIL, so SetBuffers fills a new index buffer with 0xFF
// bytes before using it.
const NIL uint32 = math.MaxUint32

// linkHeaderBytes is the byte size of the four uint32 link fields
// (prevGlobal, nextGlobal, prevChain, nextChain) stored at the head of
// every slot, encoded little-endian.
const linkHeaderBytes = 16

// maxAlignment bounds the alignment a caller may request for a slot's key
// bytes: it cannot exceed the natural alignment of the link header itself.
const maxAlignment = 16

// AlignKeySize rounds requested up to the smallest multiple of alignment
// that is >= requested. alignment must be one of 1, 2, 4, 8, 16.
//
// It returns ErrInvalidArgument for a zero size/alignment or an alignment
// outside the supported set, and ErrOverflow if rounding would wrap past
// math.MaxUint32.
func AlignKeySize(requested, alignment uint32) (uint32, error) {
	switch alignment {
	case 1, 2, 4, 8, 16:
	default:
		return 0, ErrInvalidArgument
	}
	if requested == 0 || alignment > maxAlignment {
		return 0, ErrInvalidArgument
	}

	rounded := (requested + alignment - 1) &^ (alignment - 1)
	if rounded < requested {
		return 0, ErrOverflow
	}
	return rounded, nil
}

// RequiredBytes computes the exact byte length of the index buffer and the
// slot buffer for a cache holding capacity slots of roundedKeyBytes each.
//
// It returns ErrInvalidArgument if capacity is zero, and ErrOverflow if
// capacity*perSlotBytes would overflow a 64-bit byte count.
func RequiredBytes(roundedKeyBytes, capacity uint32) (indexBytes, slotBytes uint64, err error) {
	if capacity == 0 || roundedKeyBytes == 0 {
		return 0, 0, ErrInvalidArgument
	}

	perSlot := uint64(linkHeaderBytes) + uint64(roundedKeyBytes)
	cap64 := uint64(capacity)

	maxSlots := math.MaxUint64 / perSlot
	if cap64 > maxSlots {
		return 0, 0, ErrOverflow
	}

	return cap64 * 4, cap64 * perSlot, nil
}

// slotView is a thin accessor over one slot's bytes within the arena
// buffer. A nil *slotView (returned by Cache.slot for index NIL) acts as
// the loop terminator for chain traversal.
type slotView struct {
	b []byte // linkHeaderBytes + keyBytes, sliced from the arena buffer
}

func (s *slotView) prevGlobal() uint32     { return binary.LittleEndian.Uint32(s.b[0:4]) }
func (s *slotView) setPrevGlobal(v uint32) { binary.LittleEndian.PutUint32(s.b[0:4], v) }

func (s *slotView) nextGlobal() uint32     { return binary.LittleEndian.Uint32(s.b[4:8]) }
func (s *slotView) setNextGlobal(v uint32) { binary.LittleEndian.PutUint32(s.b[4:8], v) }

func (s *slotView) prevChain() uint32     { return binary.LittleEndian.Uint32(s.b[8:12]) }
func (s *slotView) setPrevChain(v uint32) { binary.LittleEndian.PutUint32(s.b[8:12], v) }

func (s *slotView) nextChain() uint32     { return binary.LittleEndian.Uint32(s.b[12:16]) }
func (s *slotView) setNextChain(v uint32) { binary.LittleEndian.PutUint32(s.b[12:16], v) }

func (s *slotView) key() []byte { return s.b[linkHeaderBytes:] }

// slot returns an accessor for slot i, or nil if i is NIL.
func (c *Cache) slot(i uint32) *slotView {
	if i == NIL {
		return nil
	}
	perSlot := uint64(linkHeaderBytes) + uint64(c.keyBytes)
	off := uint64(i) * perSlot
	return &slotView{b: c.slots[off : off+perSlot]}
}

// indexHead returns the MRU-end slot of bucket b's collision chain, or NIL
// if the bucket is empty.
func (c *Cache) indexHead(b uint32) uint32 {
	return binary.LittleEndian.Uint32(c.index[b*4 : b*4+4])
}

// setIndexHead sets bucket b's collision-chain head to slot.
func (c *Cache) setIndexHead(b, slot uint32) {
	binary.LittleEndian.PutUint32(c.index[b*4:b*4+4], slot)
}
