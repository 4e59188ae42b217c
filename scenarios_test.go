package lrucache

import (
	"reflect"
	"testing"
)

// TestCollisionCoexistence covers scenario 1: capacity=2, hash≡0. Two
// distinct keys must coexist in the same bucket chain without evicting
// each other.
func TestCollisionCoexistence(t *testing.T) {
	rec := &recorder{}
	c := newTestCache(t, 2, constZeroHash, rec)

	if _, inserted := c.LookupOrInsert([]byte("a"), true); !inserted {
		t.Fatalf("insert a: expected insertion")
	}
	if _, inserted := c.LookupOrInsert([]byte("b"), true); !inserted {
		t.Fatalf("insert b: expected insertion")
	}
	if len(rec.evicted) != 0 {
		t.Fatalf("expected no destroy, got %v", rec.strings())
	}

	if slot, _ := c.LookupOrInsert([]byte("a"), false); slot == NIL {
		t.Fatalf("lookup a: expected hit")
	}
	if slot, _ := c.LookupOrInsert([]byte("b"), false); slot == NIL {
		t.Fatalf("lookup b: expected hit")
	}
	if len(rec.evicted) != 0 {
		t.Fatalf("lookup must not destroy, got %v", rec.strings())
	}
}

// TestCollisionEviction covers scenario 2: a third key inserted into the
// same collapsed bucket evicts the global-LRU of the first two.
func TestCollisionEviction(t *testing.T) {
	rec := &recorder{}
	c := newTestCache(t, 2, constZeroHash, rec)

	c.LookupOrInsert([]byte("a"), true)
	c.LookupOrInsert([]byte("b"), true)

	if _, inserted := c.LookupOrInsert([]byte("c"), true); !inserted {
		t.Fatalf("insert c: expected insertion")
	}
	if got := rec.strings(); !reflect.DeepEqual(got, []string{"a"}) {
		t.Fatalf("destroy sequence = %v, want [a]", got)
	}

	if slot, _ := c.LookupOrInsert([]byte("c"), false); slot == NIL {
		t.Fatalf("lookup c: expected hit")
	}
}

// TestSingleEntryChurn covers scenario 3: capacity=1, identity hash,
// repeated insertion of two distinct single-byte keys destroys each
// previous occupant in order.
func TestSingleEntryChurn(t *testing.T) {
	rec := &recorder{}
	c := newTestCache(t, 1, identityHash, rec)

	for _, k := range []string{"a", "b", "a", "b", "a"} {
		c.LookupOrInsert([]byte(k), true)
	}

	want := []string{"a", "b", "a", "b"}
	if got := rec.strings(); !reflect.DeepEqual(got, want) {
		t.Fatalf("destroy sequence = %v, want %v", got, want)
	}
}

// TestShrinkWithEviction covers scenario 4: shrinking an 8-capacity cache
// with per-letter buckets to capacity 4 destroys the four slots falling
// outside the new range, in ascending slot-index order, and the surviving
// four keys remain reachable.
func TestShrinkWithEviction(t *testing.T) {
	rec := &recorder{}
	c := newTestCache(t, 8, letterHash, rec)

	for _, k := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		c.LookupOrInsert([]byte(k), true)
	}

	indexBytes, slotBytes, err := c.SetCapacity(4)
	if err != nil {
		t.Fatalf("SetCapacity(4): %v", err)
	}
	if err := c.SetBuffers(make([]byte, indexBytes), make([]byte, slotBytes)); err != nil {
		t.Fatalf("SetBuffers: %v", err)
	}

	want := []string{"e", "f", "g", "h"}
	if got := rec.strings(); !reflect.DeepEqual(got, want) {
		t.Fatalf("destroy sequence = %v, want %v", got, want)
	}

	for _, k := range []string{"a", "b", "c", "d"} {
		if slot, _ := c.LookupOrInsert([]byte(k), false); slot == NIL {
			t.Fatalf("lookup %q: expected hit after shrink", k)
		}
	}
}

// TestGrowPreservesState covers scenario 5: growing a full 4-capacity
// cache to 8 keeps all four original keys reachable and allows four more
// insertions without any eviction.
func TestGrowPreservesState(t *testing.T) {
	rec := &recorder{}
	c := newTestCache(t, 4, letterHash, rec)

	for _, k := range []string{"a", "b", "c", "d"} {
		c.LookupOrInsert([]byte(k), true)
	}

	indexBytes, slotBytes, err := c.SetCapacity(8)
	if err != nil {
		t.Fatalf("SetCapacity(8): %v", err)
	}
	if err := c.SetBuffers(make([]byte, indexBytes), make([]byte, slotBytes)); err != nil {
		t.Fatalf("SetBuffers: %v", err)
	}

	for _, k := range []string{"a", "b", "c", "d"} {
		if slot, _ := c.LookupOrInsert([]byte(k), false); slot == NIL {
			t.Fatalf("lookup %q: expected hit after grow", k)
		}
	}

	for _, k := range []string{"e", "f", "g", "h"} {
		if _, inserted := c.LookupOrInsert([]byte(k), true); !inserted {
			t.Fatalf("insert %q: expected insertion", k)
		}
	}
	if len(rec.evicted) != 0 {
		t.Fatalf("grow-then-fill must not evict, got %v", rec.strings())
	}
}

// TestFlushOrder covers scenario 6: flush destroys used slots from
// global-MRU to global-LRU.
func TestFlushOrder(t *testing.T) {
	rec := &recorder{}
	c := newTestCache(t, 16, identityHash, rec)

	c.LookupOrInsert([]byte("a"), true)
	c.LookupOrInsert([]byte("b"), true)

	// Access a then b so b becomes the global-MRU.
	c.LookupOrInsert([]byte("a"), false)
	c.LookupOrInsert([]byte("b"), false)

	c.Flush()

	want := []string{"b", "a"}
	if got := rec.strings(); !reflect.DeepEqual(got, want) {
		t.Fatalf("flush destroy sequence = %v, want %v", got, want)
	}
}
