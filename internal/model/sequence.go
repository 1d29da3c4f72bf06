package model

import "sync/atomic"

// SequenceCounter is a single process-wide monotonic counter shared by every
// normalizer. It is the only source of Order.Sequence values: treat it as an
// unsynchronized-but-atomic primitive, never persist it.
type SequenceCounter struct {
	n atomic.Uint64
}

// Next returns the next sequence value. Safe for concurrent use by multiple
// normalizers.
func (c *SequenceCounter) Next() uint64 {
	return c.n.Add(1)
}
