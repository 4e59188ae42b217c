package lrucache

// LookupOrInsert probes the bucket chain for key (which must be exactly
// c.KeySize() bytes long). On a hit it promotes the slot to the MRU end of
// both the global list and its bucket chain and returns (slot, false). On
// a miss:
//
//   - if wantPut is false, it returns (NIL, false) without modifying the
//     cache;
//   - if wantPut is true, it evicts the global-LRU slot (invoking destroy
//     on its previous key if that slot was used), copies key into it, and
//     returns (slot, true).
//
// LookupOrInsert returns (NIL, false) immediately if the cache has zero
// capacity, regardless of wantPut — this resolves the open question in
// the original design in favour of the sentinel over an error.
//
// Ported from cm_get_or_put_key/cm_put_key, with the hit path additionally
// promoting the bucket-chain position (see DESIGN.md: the cachemap.c draft
// omits this, the earlier lru_cache_get_or_put draft includes it, and this
// spec's own §4.4 invariant requires it).
func (c *Cache) LookupOrInsert(key []byte, wantPut bool) (slot uint32, inserted bool) {
	if c.capacity == 0 {
		return NIL, false
	}

	h := c.hash(key, c.capacity)
	i := c.indexHead(h)

	for i != NIL {
		e := c.slot(i)
		if c.compare(e.key(), key) == 0 {
			c.promoteGlobalMRU(i)
			c.moveChain(i, h, h)
			return i, false
		}
		i = e.prevChain()
	}

	if !wantPut {
		return NIL, false
	}

	v := c.globalLRU
	e := c.slot(v)

	hOld := h
	if e.prevChain() != v {
		if c.destroy != nil {
			c.destroy(e.key(), v)
		}
		hOld = c.hash(e.key(), c.capacity)
	}

	copy(e.key(), key)

	c.promoteGlobalMRU(v)
	c.moveChain(v, hOld, h)

	return v, true
}
