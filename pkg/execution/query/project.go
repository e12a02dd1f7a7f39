package query

import (
	"fmt"

	"chunkdb/pkg/iterator"
	"chunkdb/pkg/row"
)

// Project narrows each row to a chosen subset of columns, in the order the
// caller listed them. Unknown columns are rejected at construction time,
// before the child produces a single row.
type Project struct {
	*iterator.UnaryOperator
	indices []int       // Source positions of the projected columns
	schema  *row.Schema // Output layout
}

// NewProject creates a projection of the child's output onto the named
// columns.
func NewProject(columns []string, child iterator.RowIterator) (*Project, error) {
	if child == nil {
		return nil, fmt.Errorf("child operator cannot be nil")
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("must project at least one column")
	}

	childSchema := child.GetSchema()
	if childSchema == nil {
		return nil, fmt.Errorf("child operator has nil schema")
	}

	indices := make([]int, len(columns))
	for i, col := range columns {
		idx, err := childSchema.ColumnIndex(col)
		if err != nil {
			return nil, err
		}
		indices[i] = idx
	}

	schema, err := childSchema.Select(columns)
	if err != nil {
		return nil, err
	}

	p := &Project{
		indices: indices,
		schema:  schema,
	}
	base, err := iterator.NewUnaryOperator(child, p.readNext)
	if err != nil {
		return nil, err
	}
	p.UnaryOperator = base
	return p, nil
}

// GetSchema returns the projected layout, not the child's.
func (p *Project) GetSchema() *row.Schema {
	return p.schema
}

// readNext builds the narrowed row from the child's next row.
func (p *Project) readNext() (*row.Row, error) {
	r, err := p.FetchNext()
	if err != nil || r == nil {
		return nil, err
	}

	out := row.NewRow(p.schema)
	for i, srcIdx := range p.indices {
		v, err := r.GetValue(srcIdx)
		if err != nil {
			return nil, fmt.Errorf("failed to get column %d from source row: %w", srcIdx, err)
		}
		if err := out.SetValue(i, v); err != nil {
			return nil, fmt.Errorf("failed to set column %d in projected row: %w", i, err)
		}
	}
	return out, nil
}
