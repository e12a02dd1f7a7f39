package aggregation

import (
	"fmt"
	"strconv"

	"chunkdb/pkg/dberr"
	"chunkdb/pkg/iterator"
	"chunkdb/pkg/row"
	"chunkdb/pkg/value"
)

// Aggregate reduces one column of its child's stream to a single value. The
// reduction is streaming: rows are consumed one at a time and only the
// running accumulator is retained, so memory stays constant regardless of
// input size. Numeric operations reject the first non-numeric value they
// encounter with a type mismatch error.
type Aggregate struct {
	*iterator.UnaryOperator
	column string
	index  int
	op     AggregateOp
	schema *row.Schema
	done   bool
}

// NewAggregate creates an aggregation of the given column over the child's
// output. The column is resolved against the child schema before any row is
// read.
func NewAggregate(child iterator.RowIterator, column string, op AggregateOp) (*Aggregate, error) {
	if child == nil {
		return nil, fmt.Errorf("aggregate child iterator cannot be nil")
	}

	childSchema := child.GetSchema()
	index, err := childSchema.ColumnIndex(column)
	if err != nil {
		return nil, err
	}

	schema, err := row.NewSchema(childSchema.Table, []string{fmt.Sprintf("%s_%s", op, column)})
	if err != nil {
		return nil, err
	}

	a := &Aggregate{
		column: column,
		index:  index,
		op:     op,
		schema: schema,
	}
	base, err := iterator.NewUnaryOperator(child, a.readNext)
	if err != nil {
		return nil, err
	}
	a.UnaryOperator = base
	return a, nil
}

// GetSchema returns the single-column result schema.
func (a *Aggregate) GetSchema() *row.Schema {
	return a.schema
}

// Rewind resets the operator so the reduction can run again.
func (a *Aggregate) Rewind() error {
	if err := a.UnaryOperator.Rewind(); err != nil {
		return err
	}
	a.done = false
	return nil
}

// readNext consumes the entire child stream and produces the one result row.
func (a *Aggregate) readNext() (*row.Row, error) {
	if a.done {
		return nil, nil
	}

	result, err := a.reduce()
	if err != nil {
		return nil, err
	}
	a.done = true

	out := row.NewRow(a.schema)
	if err := out.SetValue(0, value.Value(result)); err != nil {
		return nil, err
	}
	return out, nil
}

// reduce runs the accumulation over the child stream.
func (a *Aggregate) reduce() (string, error) {
	var (
		count int
		sum   float64
		best  value.Value
		bestN float64
	)

	for {
		r, err := a.FetchNext()
		if err != nil {
			return "", err
		}
		if r == nil {
			break
		}

		v, err := r.GetValue(a.index)
		if err != nil {
			return "", err
		}
		count++

		if !a.op.Numeric() {
			continue
		}

		n, ok := v.Numeric()
		if !ok {
			return "", dberr.NewTypeMismatch(a.column, v.String(), a.op.String())
		}

		switch a.op {
		case Sum, Avg:
			sum += n
		case Min:
			if count == 1 || n < bestN {
				best, bestN = v, n
			}
		case Max:
			if count == 1 || n > bestN {
				best, bestN = v, n
			}
		}
	}

	return a.format(count, sum, best)
}

// format renders the accumulated state as the result value. Min and max
// return the stored representation of the chosen value, not a reformatted
// number.
func (a *Aggregate) format(count int, sum float64, best value.Value) (string, error) {
	switch a.op {
	case Count:
		return strconv.Itoa(count), nil
	case Sum:
		return strconv.FormatFloat(sum, 'f', -1, 64), nil
	case Avg:
		if count == 0 {
			return "", fmt.Errorf("avg of %s: no rows to aggregate", a.column)
		}
		return strconv.FormatFloat(sum/float64(count), 'f', -1, 64), nil
	case Min, Max:
		if count == 0 {
			return "", fmt.Errorf("%s of %s: no rows to aggregate", a.op, a.column)
		}
		return best.String(), nil
	default:
		return "", fmt.Errorf("unsupported aggregate operation: %d", a.op)
	}
}
