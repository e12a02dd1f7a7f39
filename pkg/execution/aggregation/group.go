package aggregation

import (
	"fmt"
	"strconv"

	"chunkdb/pkg/iterator"
	"chunkdb/pkg/row"
	"chunkdb/pkg/value"
)

// Group scans a stream that is already ordered by the grouping column and
// emits one row per distinct key, carrying the key and the number of member
// rows. A group closes when the key changes between adjacent rows, so only
// the previous key and a counter are retained; the operator never looks
// further back than one row, which keeps boundary detection correct across
// chunk edges.
type Group struct {
	*iterator.UnaryOperator
	column string
	index  int
	schema *row.Schema

	prevKey  value.Value
	havePrev bool
	count    int
}

// NewGroup creates a grouping over the child's output. The child must
// produce rows ordered by the grouping column; callers compose it on top of
// a sort.
func NewGroup(child iterator.RowIterator, column string) (*Group, error) {
	if child == nil {
		return nil, fmt.Errorf("group child iterator cannot be nil")
	}

	childSchema := child.GetSchema()
	index, err := childSchema.ColumnIndex(column)
	if err != nil {
		return nil, err
	}

	countColumn := "count"
	if column == countColumn {
		countColumn = "group_count"
	}
	schema, err := row.NewSchema(childSchema.Table, []string{column, countColumn})
	if err != nil {
		return nil, err
	}

	g := &Group{
		column: column,
		index:  index,
		schema: schema,
	}
	base, err := iterator.NewUnaryOperator(child, g.readNext)
	if err != nil {
		return nil, err
	}
	g.UnaryOperator = base
	return g, nil
}

// GetSchema returns the key-and-count result schema.
func (g *Group) GetSchema() *row.Schema {
	return g.schema
}

// Rewind resets the operator so the grouping can run again.
func (g *Group) Rewind() error {
	if err := g.UnaryOperator.Rewind(); err != nil {
		return err
	}
	g.prevKey = ""
	g.havePrev = false
	g.count = 0
	return nil
}

// readNext advances through the child until a group boundary closes and
// returns the finished group. The emitted key is the first representation
// seen for the group.
func (g *Group) readNext() (*row.Row, error) {
	for {
		r, err := g.FetchNext()
		if err != nil {
			return nil, err
		}
		if r == nil {
			if !g.havePrev {
				return nil, nil
			}
			out, err := g.emit()
			if err != nil {
				return nil, err
			}
			g.havePrev = false
			return out, nil
		}

		key, err := r.GetValue(g.index)
		if err != nil {
			return nil, err
		}

		if !g.havePrev {
			g.prevKey = key
			g.havePrev = true
			g.count = 1
			continue
		}

		if value.Compare(g.prevKey, key) == 0 {
			g.count++
			continue
		}

		out, err := g.emit()
		if err != nil {
			return nil, err
		}
		g.prevKey = key
		g.count = 1
		return out, nil
	}
}

// emit builds the result row for the group that just closed.
func (g *Group) emit() (*row.Row, error) {
	out := row.NewRow(g.schema)
	if err := out.SetValue(0, g.prevKey); err != nil {
		return nil, err
	}
	if err := out.SetValue(1, value.Value(strconv.Itoa(g.count))); err != nil {
		return nil, err
	}
	return out, nil
}
