package lrucache

// Flush evicts every used slot, invoking destroy (if registered) once per
// slot in MRU-to-LRU order, and returns all slots to the unused state. The
// global list order is preserved. Flush on an already-empty cache,
// including one with zero capacity, is a no-op.
//
// Ported from cm_flush / CM_ITER_VALID_ENTRIES.
func (c *Cache) Flush() {
	i := c.globalMRU
	n := 0

	for i != NIL {
		e := c.slot(i)
		if e.prevChain() == i {
			// Reached the used/unused frontier: everything from here
			// toward the global LRU is already unused.
			break
		}

		next := e.prevGlobal()

		h := c.hash(e.key(), c.capacity)
		if c.destroy != nil {
			c.destroy(e.key(), i)
		}
		c.moveChain(i, h, NIL)

		n++
		i = next
	}

	if n > 0 {
		c.log.Infow("lrucache: flush", "evicted", n, "capacity", c.capacity)
	}
}
