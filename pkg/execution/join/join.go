package join

import (
	"fmt"

	"chunkdb/pkg/execution/scan"
	"chunkdb/pkg/iterator"
	"chunkdb/pkg/row"
)

// Join implements a block nested-loop join. The left (outer) input is read
// one chunk at a time; for each outer chunk the right (inner) input is
// rescanned in full, which its Rewind makes cheap. Memory never exceeds one
// outer chunk plus the matches of a single inner row.
//
// Cost is one pass over the outer side plus ceil(|L|/cap) full scans of the
// inner side. Output columns are the left schema then the right schema, each
// column prefixed with its table name.
type Join struct {
	*iterator.BinaryOperator
	predicate *JoinPredicate
	schema    *row.Schema
	blocks    *scan.ChunkReader
	outer     []*row.Row
	matches   *matchBuffer
}

// NewJoin creates a block nested-loop join of the two children. chunkCap
// bounds the outer block size.
func NewJoin(left, right iterator.RowIterator, predicate *JoinPredicate, chunkCap int) (*Join, error) {
	if predicate == nil {
		return nil, fmt.Errorf("join predicate cannot be nil")
	}
	if left == nil || right == nil {
		return nil, fmt.Errorf("join children cannot be nil")
	}

	combined, err := row.Combine(left.GetSchema(), right.GetSchema())
	if err != nil {
		return nil, fmt.Errorf("failed to build join schema: %w", err)
	}

	blocks, err := scan.NewChunkReader(left, chunkCap)
	if err != nil {
		return nil, err
	}

	j := &Join{
		predicate: predicate,
		schema:    combined,
		blocks:    blocks,
		matches:   newMatchBuffer(),
	}
	base, err := iterator.NewBinaryOperator(left, right, j.readNext)
	if err != nil {
		return nil, err
	}
	j.BinaryOperator = base
	return j, nil
}

// GetSchema returns the combined left-then-right layout.
func (j *Join) GetSchema() *row.Schema {
	return j.schema
}

// Rewind restarts the join from the first outer block.
func (j *Join) Rewind() error {
	if err := j.BinaryOperator.Rewind(); err != nil {
		return err
	}
	j.blocks.Reset()
	j.outer = nil
	j.matches.Reset()
	return nil
}

// readNext produces the next joined row. Buffered matches go out first;
// then the inner scan advances one row, matching it against the whole outer
// block. When the inner input is exhausted the next outer block is loaded
// and the inner side rewound.
func (j *Join) readNext() (*row.Row, error) {
	if j.matches.HasNext() {
		return j.matches.Next(), nil
	}

	for {
		if j.outer == nil {
			chunk, err := j.blocks.NextChunk()
			if err != nil {
				return nil, err
			}
			if chunk == nil {
				return nil, nil
			}
			j.outer = chunk.Rows()

			if err := j.RewindRight(); err != nil {
				return nil, fmt.Errorf("failed to rewind inner side: %w", err)
			}
		}

		inner, err := j.FetchRight()
		if err != nil {
			return nil, err
		}
		if inner == nil {
			j.outer = nil
			continue
		}

		j.matches.StartNew()
		for _, outer := range j.outer {
			ok, err := j.predicate.Filter(outer, inner)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}

			combined, err := row.CombineRows(j.schema, outer, inner)
			if err != nil {
				return nil, err
			}
			j.matches.Add(combined)
		}

		if j.matches.Len() > 0 {
			return j.matches.Next(), nil
		}
	}
}
