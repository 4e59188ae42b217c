package lrucache

// promoteGlobalMRU moves slot i to the MRU end of the global recency
// list. It is a no-op if i is already the global MRU. Ported from the
// splice block in the non-bucketed draft of the original lru_cache_get_or_put
// (prevGlobal/nextGlobal here are that draft's e->lru/e->mru).
//
// Precondition: the global list is non-empty (capacity > 0), so
// c.globalMRU is always a valid slot index when this is called.
func (c *Cache) promoteGlobalMRU(i uint32) {
	if c.globalMRU == i {
		return
	}

	e := c.slot(i)

	if e.prevGlobal() != NIL {
		c.slot(e.prevGlobal()).setNextGlobal(e.nextGlobal())
	} else {
		// i was the global LRU; its more-recent neighbour becomes the
		// new LRU head.
		c.globalLRU = c.slot(c.globalLRU).nextGlobal()
	}

	if e.nextGlobal() != NIL {
		c.slot(e.nextGlobal()).setPrevGlobal(e.prevGlobal())
	}

	c.slot(c.globalMRU).setNextGlobal(i)
	e.setPrevGlobal(c.globalMRU)
	e.setNextGlobal(NIL)
	c.globalMRU = i
}

// unlinkGlobal removes slot i from the global list entirely, fixing up
// the head/tail sentinels and i's neighbours, without re-inserting it
// anywhere. Used only by the resize engine to drop slots that fall
// outside a shrunk capacity; promoteGlobalMRU never needs it because it
// always re-splices at the MRU end in the same call.
//
// Ported from the unlink() helper in the original C cachemap.
func (c *Cache) unlinkGlobal(i uint32) {
	e := c.slot(i)

	if c.globalLRU != i {
		c.slot(e.prevGlobal()).setNextGlobal(e.nextGlobal())
	} else if c.globalMRU != i {
		c.globalLRU = e.nextGlobal()
	} else {
		c.globalLRU = NIL
	}

	if c.globalMRU != i {
		c.slot(e.nextGlobal()).setPrevGlobal(e.prevGlobal())
	} else if e.prevGlobal() != NIL {
		c.globalMRU = e.prevGlobal()
	} else {
		c.globalMRU = e.nextGlobal()
	}

	e.setNextGlobal(NIL)
	e.setPrevGlobal(NIL)
}
