package lrucache

// SetCapacity stages a transition to newCapacity and performs all work
// that can be carried out against the currently installed buffers.
//
// For a shrink (newCapacity < current capacity):
//  1. Every slot with index >= newCapacity is destroyed (if used), removed
//     from its bucket chain, and unlinked from the global list — using the
//     buffers still installed.
//  2. Every surviving slot (walking the now-reduced global list from LRU
//     to MRU, so recency order is preserved) is rehashed from its old
//     bucket to its bucket under newCapacity. This is safe to do against
//     the still-installed index buffer because it is at least as large as
//     the newCapacity buckets being written into.
//  3. The capacity is committed immediately — a shrunk cache is already
//     fully consistent before SetBuffers is ever called; SetBuffers for a
//     shrink is a pure byte copy into rightsized memory.
//
// For a grow, nothing observable happens yet: the new slots do not exist
// until SetBuffers supplies memory for them, and rehashing under the
// larger bucket count is deferred to SetBuffers too, since it depends on
// the new index buffer's full size.
//
// It returns the exact byte lengths the caller must allocate and pass to
// SetBuffers to complete the transition (see RequiredBytes, Provisioner).
//
// Ported from cm_set_size.
func (c *Cache) SetCapacity(newCapacity uint32) (indexBytes, slotBytes uint64, err error) {
	if newCapacity > 0 {
		indexBytes, slotBytes, err = RequiredBytes(c.keyBytes, newCapacity)
		if err != nil {
			return 0, 0, err
		}
	}

	if newCapacity < c.capacity {
		oldCapacity := c.capacity

		for i := newCapacity; i < oldCapacity; i++ {
			e := c.slot(i)
			if e.prevChain() != i {
				h := c.hash(e.key(), oldCapacity)
				if c.destroy != nil {
					c.destroy(e.key(), i)
				}
				c.moveChain(i, h, NIL)
			}
			c.unlinkGlobal(i)
		}

		i := c.globalLRU
		for i != NIL {
			e := c.slot(i)
			next := e.nextGlobal()
			if e.prevChain() != i {
				hOld := c.hash(e.key(), oldCapacity)
				hNew := c.hash(e.key(), newCapacity)
				c.moveChain(i, hOld, hNew)
			}
			i = next
		}

		c.capacity = newCapacity
		c.log.Infow("lrucache: shrink committed", "from", oldCapacity, "to", newCapacity)
	}

	c.pending = newCapacity
	return indexBytes, slotBytes, nil
}

// SetBuffers installs newIndex and newSlots as the cache's buffers,
// completing the capacity transition staged by the preceding SetCapacity
// call. Their lengths must exactly match the values SetCapacity returned.
//
// If SetCapacity already committed a shrink (c.capacity == c.pending),
// this is a pure copy: the surviving slots and their bucket chains are
// already correct, just sized for the old, larger buffers. Otherwise
// (a grow), the newly available slots are threaded onto the global list
// as unused and the whole bucket index is rebuilt by walking the global
// list from LRU to MRU and re-inserting every used slot at its new
// bucket's MRU end, so per-bucket chain order keeps tracking global
// recency.
//
// Ported from cm_set_data.
func (c *Cache) SetBuffers(newIndex, newSlots []byte) error {
	pending := c.pending
	oldCapacity := c.capacity

	if pending > 0 {
		wantIndex, wantSlots, err := RequiredBytes(c.keyBytes, pending)
		if err != nil {
			return err
		}
		if uint64(len(newIndex)) != wantIndex || uint64(len(newSlots)) != wantSlots {
			return ErrInvalidArgument
		}
	} else if len(newIndex) != 0 || len(newSlots) != 0 {
		return ErrInvalidArgument
	}

	perSlot := uint64(linkHeaderBytes) + uint64(c.keyBytes)

	if pending <= oldCapacity {
		// Shrink already committed in SetCapacity: surviving slots and
		// their bucket chains are already correct, just copy them across.
		if pending > 0 {
			copy(newIndex[:uint64(pending)*4], c.index[:uint64(pending)*4])
			copy(newSlots[:uint64(pending)*perSlot], c.slots[:uint64(pending)*perSlot])
		}
		c.index = newIndex
		c.slots = newSlots
		c.log.Infow("lrucache: buffers installed", "capacity", c.capacity)
		return nil
	}

	// Grow: copy existing slots across at the same indices, then rehash
	// everything from scratch under the new bucket count.
	if oldCapacity > 0 {
		copy(newSlots[:uint64(oldCapacity)*perSlot], c.slots[:uint64(oldCapacity)*perSlot])
	}
	for i := range newIndex {
		newIndex[i] = 0xFF
	}

	c.index = newIndex
	c.slots = newSlots
	c.capacity = pending

	// Prepend the new slots in descending index order so the resulting
	// free-list segment reads oldCapacity, oldCapacity+1, ..., pending-1
	// from LRU to MRU: the first slot a subsequent insert claims is the
	// lowest-indexed new slot, not the highest.
	for i := pending; i > oldCapacity; i-- {
		idx := i - 1
		e := c.slot(idx)
		e.setPrevChain(idx)
		e.setNextChain(NIL)
		e.setPrevGlobal(NIL)
		e.setNextGlobal(c.globalLRU)
		if c.globalLRU != NIL {
			c.slot(c.globalLRU).setPrevGlobal(idx)
		}
		c.globalLRU = idx
		if c.globalMRU == NIL {
			c.globalMRU = idx
		}
	}

	c.rebuildIndex()

	c.log.Infow("lrucache: buffers installed", "capacity", c.capacity)
	return nil
}

// rebuildIndex recomputes every bucket chain for the current capacity and
// buffers by walking the global list from LRU to MRU and inserting each
// used slot at its bucket's MRU end. Unused slots (including ones just
// appended by a grow) are skipped. Used only by the grow path of
// SetBuffers, where rehashing cannot happen until the larger index buffer
// is available.
func (c *Cache) rebuildIndex() {
	i := c.globalLRU
	for i != NIL {
		e := c.slot(i)
		next := e.nextGlobal()

		if e.prevChain() != i {
			h := c.hash(e.key(), c.capacity)
			head := c.indexHead(h)

			e.setPrevChain(head)
			e.setNextChain(NIL)
			if head != NIL {
				c.slot(head).setNextChain(i)
			}
			c.setIndexHead(h, i)
		}

		i = next
	}
}
