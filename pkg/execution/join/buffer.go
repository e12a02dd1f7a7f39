package join

import "chunkdb/pkg/row"

// matchBuffer holds the joined rows produced for one inner row against the
// current outer block, so they can be handed out across multiple Next()
// calls.
type matchBuffer struct {
	buffer []*row.Row
	index  int
}

func newMatchBuffer() *matchBuffer {
	return &matchBuffer{index: -1}
}

// HasNext reports whether buffered results remain.
func (mb *matchBuffer) HasNext() bool {
	return mb.index >= 0 && mb.index < len(mb.buffer)
}

// Next returns the next buffered row and advances. Callers check HasNext
// first.
func (mb *matchBuffer) Next() *row.Row {
	if !mb.HasNext() {
		return nil
	}
	r := mb.buffer[mb.index]
	mb.index++
	return r
}

// StartNew begins accumulating a fresh batch of matches.
func (mb *matchBuffer) StartNew() {
	mb.buffer = mb.buffer[:0]
	mb.index = 0
}

// Add appends one joined row to the batch.
func (mb *matchBuffer) Add(r *row.Row) {
	mb.buffer = append(mb.buffer, r)
}

// Len returns how many rows the current batch holds.
func (mb *matchBuffer) Len() int {
	return len(mb.buffer)
}

// Reset discards all buffered state.
func (mb *matchBuffer) Reset() {
	mb.buffer = nil
	mb.index = -1
}
