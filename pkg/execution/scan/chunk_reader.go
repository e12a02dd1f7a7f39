package scan

import (
	"fmt"

	"chunkdb/pkg/iterator"
	"chunkdb/pkg/row"
)

// ChunkReader drains a row source in fixed-size chunks. Operators that need
// batches rather than single rows (external sort, block join) sit on top of
// it; the chunk capacity is the engine's memory ceiling, so a reader never
// holds more than cap rows at once.
type ChunkReader struct {
	source   iterator.RowSource
	chunkCap int
	offset   int
}

// NewChunkReader wraps a row source with chunked draining at the given
// capacity. The capacity must be at least one row.
func NewChunkReader(source iterator.RowSource, chunkCap int) (*ChunkReader, error) {
	if source == nil {
		return nil, fmt.Errorf("row source cannot be nil")
	}
	if chunkCap < 1 {
		return nil, fmt.Errorf("chunk capacity must be at least 1, got %d", chunkCap)
	}

	return &ChunkReader{
		source:   source,
		chunkCap: chunkCap,
	}, nil
}

// ChunkCap returns the configured per-chunk row limit.
func (cr *ChunkReader) ChunkCap() int {
	return cr.chunkCap
}

// NextChunk reads up to chunkCap rows from the source. It returns nil when
// the source is already exhausted, and a short final chunk otherwise.
func (cr *ChunkReader) NextChunk() (*row.Chunk, error) {
	hasNext, err := cr.source.HasNext()
	if err != nil {
		return nil, err
	}
	if !hasNext {
		return nil, nil
	}

	chunk := row.NewChunk(cr.offset, cr.chunkCap)
	for chunk.NumRows() < cr.chunkCap {
		hasNext, err := cr.source.HasNext()
		if err != nil {
			return nil, err
		}
		if !hasNext {
			break
		}

		r, err := cr.source.Next()
		if err != nil {
			return nil, err
		}
		chunk.Append(r)
	}

	cr.offset += chunk.NumRows()
	return chunk, nil
}

// Reset makes the reader start numbering offsets from zero again. Callers
// rewind the underlying source themselves.
func (cr *ChunkReader) Reset() {
	cr.offset = 0
}
