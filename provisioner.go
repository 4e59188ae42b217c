package lrucache

// Provisioner is a convenience wrapper around RequiredBytes for callers
// who want plain Go-heap buffers instead of managing their own arena
// (mmap'd regions, pooled slabs, shared memory). It is not involved in
// any cache invariant; SetBuffers accepts any []byte of the right length
// regardless of how it was obtained.
type Provisioner struct {
	RoundedKeyBytes uint32
}

// Grow allocates fresh index and slot buffers sized for capacity slots of
// p.RoundedKeyBytes each.
func (p Provisioner) Grow(capacity uint32) (index, slots []byte, err error) {
	indexBytes, slotBytes, err := RequiredBytes(p.RoundedKeyBytes, capacity)
	if err != nil {
		return nil, nil, err
	}
	return make([]byte, indexBytes), make([]byte, slotBytes), nil
}

// Resize runs SetCapacity followed immediately by freshly allocated
// buffers and SetBuffers, for callers that do not need to interleave any
// work between the two phases (e.g. to release the old buffers to a pool
// first).
func (p Provisioner) Resize(c *Cache, newCapacity uint32) error {
	indexBytes, slotBytes, err := c.SetCapacity(newCapacity)
	if err != nil {
		return err
	}
	return c.SetBuffers(make([]byte, indexBytes), make([]byte, slotBytes))
}
