package query

import (
	"fmt"

	"chunkdb/pkg/row"
	"chunkdb/pkg/value"
)

// Predicate compares one column of a row to a constant using a comparison
// operation. Column resolution happens at construction time, so an unknown
// column is reported before any row is read.
type Predicate struct {
	column  string          // Column name as given by the caller
	index   int             // Resolved position within the schema
	op      value.Predicate // The comparison operation to perform
	operand value.Value     // The constant to compare against
}

// NewPredicate builds a predicate over the given schema. It fails with a
// COLUMN_NOT_FOUND error when the column does not exist in the schema.
func NewPredicate(schema *row.Schema, column string, op value.Predicate, operand value.Value) (*Predicate, error) {
	if schema == nil {
		return nil, fmt.Errorf("schema cannot be nil")
	}

	index, err := schema.ColumnIndex(column)
	if err != nil {
		return nil, err
	}

	return &Predicate{
		column:  column,
		index:   index,
		op:      op,
		operand: operand,
	}, nil
}

// Filter evaluates the predicate against a single row.
func (p *Predicate) Filter(r *row.Row) (bool, error) {
	v, err := r.GetValue(p.index)
	if err != nil {
		return false, err
	}
	return v.Matches(p.op, p.operand)
}

// Column returns the column name this predicate tests.
func (p *Predicate) Column() string {
	return p.column
}

// Operation returns the comparison operation.
func (p *Predicate) Operation() value.Predicate {
	return p.op
}

// Operand returns the constant the column is compared against.
func (p *Predicate) Operand() value.Value {
	return p.operand
}

func (p *Predicate) String() string {
	return fmt.Sprintf("%s %s %s", p.column, p.op, p.operand)
}
