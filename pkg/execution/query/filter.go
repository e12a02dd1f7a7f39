package query

import (
	"fmt"

	"chunkdb/pkg/iterator"
	"chunkdb/pkg/row"
)

// Filter applies a predicate to each row from its child, passing through
// only the rows that satisfy the condition. It never buffers more than the
// single row in flight.
type Filter struct {
	*iterator.UnaryOperator
	predicate *Predicate
}

// NewFilter creates a filter over the child's output.
func NewFilter(predicate *Predicate, child iterator.RowIterator) (*Filter, error) {
	if predicate == nil {
		return nil, fmt.Errorf("predicate cannot be nil")
	}

	f := &Filter{predicate: predicate}
	base, err := iterator.NewUnaryOperator(child, f.readNext)
	if err != nil {
		return nil, err
	}
	f.UnaryOperator = base
	return f, nil
}

// readNext reads rows from the child until one passes the predicate or the
// stream ends.
func (f *Filter) readNext() (*row.Row, error) {
	for {
		r, err := f.FetchNext()
		if err != nil || r == nil {
			return r, err
		}

		passes, err := f.predicate.Filter(r)
		if err != nil {
			return nil, fmt.Errorf("predicate evaluation failed: %w", err)
		}
		if passes {
			return r, nil
		}
	}
}
