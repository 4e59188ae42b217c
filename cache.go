// Package lrucache implements a fixed-capacity, in-place LRU cache over
// caller-provided memory.
//
// The cache is a bucketed hash index combined with two interleaved
// doubly-linked lists threaded through a single slot array: a global
// recency list (LRU<->MRU) covering every slot, and a per-bucket collision
// list (local-LRU<->local-MRU) covering only the slots currently mapped to
// that bucket. Both lists live in the same arena, addressed by uint32
// index rather than pointer, so the whole structure can be grown and
// shrunk without ever touching the Go heap from inside the core: the
// caller owns both backing buffers.
//
// The core is single-task cooperative: a *Cache is not safe for concurrent
// use from more than one goroutine without external synchronization. See
// Guarded for an opt-in, mutex-protected facade.
package lrucache

// HashFunc computes the bucket index in [0, capacity) for key. Modulus by
// capacity is the hash function's own responsibility, not the core's.
// hash must be deterministic and must not mutate the cache.
type HashFunc func(key []byte, capacity uint32) uint32

// CompareFunc reports whether a and b (both roundedKeyBytes long) denote
// the same key: zero for equal, any other value for not-equal. A full
// total order is not required, only an equivalence relation.
type CompareFunc func(a, b []byte) int

// DestroyFunc is invoked exactly once, synchronously, on the key bytes of
// a slot that is about to lose its residency (eviction, flush, shrink),
// before those bytes are overwritten or the slot index disappears. destroy
// must not call back into the Cache it was invoked from.
type DestroyFunc func(key []byte, slot uint32)

// Cache is the fixed-capacity LRU index. The zero value is not usable;
// construct one with Init.
type Cache struct {
	index []byte // capacity uint32 bucket heads, little-endian
	slots []byte // capacity slots of (linkHeaderBytes + keyBytes)

	keyBytes uint32
	capacity uint32
	pending  uint32 // staged capacity between SetCapacity and SetBuffers

	globalLRU uint32
	globalMRU uint32

	hash    HashFunc
	compare CompareFunc
	destroy DestroyFunc

	log Logger
}

// Init constructs an empty Cache with zero capacity and no buffers. Call
// SetCapacity then SetBuffers before using LookupOrInsert.
//
// roundedKeyBytes must be the output of AlignKeySize (or otherwise already
// a valid aligned size); hash and compare must not be nil. destroy may be
// nil, in which case evicted keys are simply overwritten.
func Init(roundedKeyBytes uint32, hash HashFunc, compare CompareFunc, destroy DestroyFunc) (*Cache, error) {
	if roundedKeyBytes == 0 {
		return nil, ErrInvalidArgument
	}
	if hash == nil || compare == nil {
		return nil, ErrInvalidArgument
	}

	return &Cache{
		keyBytes:  roundedKeyBytes,
		capacity:  0,
		pending:   0,
		globalLRU: NIL,
		globalMRU: NIL,
		hash:      hash,
		compare:   compare,
		destroy:   destroy,
		log:       nopLogger{},
	}, nil
}

// Capacity returns the cache's current (committed) capacity.
func (c *Cache) Capacity() uint32 { return c.capacity }

// KeySize returns the rounded per-slot key byte size the cache was
// initialized with.
func (c *Cache) KeySize() uint32 { return c.keyBytes }

// IsFull reports whether the global-LRU slot is used, i.e. there are no
// unused slots left to satisfy an insertion without eviction.
func (c *Cache) IsFull() bool {
	e := c.slot(c.globalLRU)
	return e == nil || e.prevChain() != c.globalLRU
}

// SlotKey returns a stable slice into slot i's key bytes, valid until the
// next mutation of that slot. It returns nil for i == NIL.
func (c *Cache) SlotKey(i uint32) []byte {
	e := c.slot(i)
	if e == nil {
		return nil
	}
	return e.key()
}

// SetLogger installs a structured diagnostics sink for resize and flush
// events. Passing nil disables logging (the default). LookupOrInsert never
// logs, by design: it must stay bounded to short constant work.
func (c *Cache) SetLogger(l Logger) {
	if l == nil {
		l = nopLogger{}
	}
	c.log = l
}

// used reports whether slot i currently participates in a bucket chain.
func (c *Cache) used(i uint32) bool {
	e := c.slot(i)
	return e != nil && e.prevChain() != i
}
