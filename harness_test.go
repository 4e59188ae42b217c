package lrucache

import "bytes"

// byteCompare is the compare func used throughout the tests: plain
// byte-equality, mirroring the spec's "compare = byte-equality" scenario
// convention.
func byteCompare(a, b []byte) int { return bytes.Compare(a, b) }

// constZeroHash collapses every key into bucket 0, used by the scenarios
// that are phrased as "hash = constant-0".
func constZeroHash(_ []byte, _ uint32) uint32 { return 0 }

// identityHash treats the key's first byte as its own bucket index,
// reduced mod capacity, used by the scenarios phrased as "hash identity".
func identityHash(key []byte, capacity uint32) uint32 {
	if capacity == 0 {
		return 0
	}
	return uint32(key[0]) % capacity
}

// letterHash maps a single ASCII lowercase letter to (letter - 'a') mod
// capacity, used by the shrink/grow scenarios.
func letterHash(key []byte, capacity uint32) uint32 {
	if capacity == 0 {
		return 0
	}
	return uint32(key[0]-'a') % capacity
}

// recorder accumulates the keys passed to DestroyFunc, in invocation
// order, for scenarios that assert an exact destroy sequence.
type recorder struct {
	evicted [][]byte
}

func (r *recorder) destroy(key []byte, _ uint32) {
	cp := make([]byte, len(key))
	copy(cp, key)
	r.evicted = append(r.evicted, cp)
}

func (r *recorder) strings() []string {
	out := make([]string, len(r.evicted))
	for i, k := range r.evicted {
		out[i] = string(k)
	}
	return out
}

// newTestCache builds a 1-byte-key cache of the given capacity with hash
// and an optional recorder wired as destroy, failing the test immediately
// on any setup error — setup is not itself under test.
func newTestCache(t testingT, capacity uint32, hash HashFunc, rec *recorder) *Cache {
	t.Helper()

	var destroy DestroyFunc
	if rec != nil {
		destroy = rec.destroy
	}

	c, err := Init(1, hash, byteCompare, destroy)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}

	indexBytes, slotBytes, err := c.SetCapacity(capacity)
	if err != nil {
		t.Fatalf("SetCapacity(%d): %v", capacity, err)
	}
	if err := c.SetBuffers(make([]byte, indexBytes), make([]byte, slotBytes)); err != nil {
		t.Fatalf("SetBuffers: %v", err)
	}

	return c
}

// testingT is the subset of *testing.T this harness needs, so it can be
// called from table-driven subtests without importing testing here.
type testingT interface {
	Helper()
	Fatalf(format string, args ...interface{})
}
