package row

// Chunk is an ordered batch of at most cap rows plus the offset of its first
// row in the source table. The offset feeds external-sort bookkeeping and
// keeps rewrites aligned with on-disk order.
type Chunk struct {
	StartOffset int
	rows        []*Row
}

// NewChunk creates an empty chunk whose first row sits at startOffset in the
// source table.
func NewChunk(startOffset, capHint int) *Chunk {
	return &Chunk{
		StartOffset: startOffset,
		rows:        make([]*Row, 0, capHint),
	}
}

func (c *Chunk) Append(r *Row) {
	c.rows = append(c.rows, r)
}

// NumRows returns how many rows the chunk currently holds.
func (c *Chunk) NumRows() int {
	return len(c.rows)
}

// Row returns the ith row of the chunk.
func (c *Chunk) Row(i int) *Row {
	return c.rows[i]
}

// Rows returns the backing slice, not a copy. An owner that is done
// appending may reorder it in place.
func (c *Chunk) Rows() []*Row {
	return c.rows
}

// Last returns the final row of the chunk, or nil when empty. Group boundary
// detection keeps only this row between chunks.
func (c *Chunk) Last() *Row {
	if len(c.rows) == 0 {
		return nil
	}
	return c.rows[len(c.rows)-1]
}
