package lrucache

// moveChain re-threads slot's collision-chain membership. It has two
// modes selected by newHash:
//
//   - newHash == NIL: remove slot from chain oldHash and mark it unused
//     (prevChain[slot] = slot), leaving it on the global list for reuse.
//   - otherwise: remove slot from chain oldHash (a no-op if it was not a
//     member) and splice it onto the MRU end of chain newHash.
//
// moveChain is a pure structural primitive: it does not invoke destroy.
// Callers (the access engine, flush, the resize engine) invoke destroy
// themselves before calling moveChain in removal mode, since destroy must
// see the key bytes before any link-field surgery begins.
//
// Ported from cm_move_chain in the original C cachemap, with the
// destroy call factored out to the call sites per this package's access
// engine (see access.go, flush.go, resize.go).
func (c *Cache) moveChain(slot, oldHash, newHash uint32) {
	e := c.slot(slot)

	if newHash != NIL && c.indexHead(newHash) == slot {
		// Already the head of the destination chain: nothing to do.
		return
	}

	if e.prevChain() != NIL {
		c.slot(e.prevChain()).setNextChain(e.nextChain())
	}

	if e.nextChain() != NIL {
		c.slot(e.nextChain()).setPrevChain(e.prevChain())
	} else if e.prevChain() != slot {
		// slot was the bucket head of oldHash.
		c.setIndexHead(oldHash, e.prevChain())
	}

	var head uint32
	if newHash == NIL {
		head = slot // tri-state marker: unused
	} else {
		head = c.indexHead(newHash)
	}

	e.setPrevChain(head)
	if head != NIL {
		c.slot(head).setNextChain(slot)
	}
	e.setNextChain(NIL)

	if newHash != NIL {
		c.setIndexHead(newHash, slot)
	}
}
