package mutation

import (
	"fmt"

	"chunkdb/pkg/iterator"
	"chunkdb/pkg/row"
	"chunkdb/pkg/storage/tablefile"
	"chunkdb/pkg/value"
)

// DeletePlan rewrites a table omitting every row whose column equals the
// match value, with the same temp-then-swap discipline as UpdatePlan.
type DeletePlan struct {
	tf     *tablefile.TableFile
	column string
	match  string
}

// NewDeletePlan creates a delete of rows where column equals match.
func NewDeletePlan(tf *tablefile.TableFile, column, match string) (*DeletePlan, error) {
	if tf == nil {
		return nil, fmt.Errorf("delete requires a table file")
	}
	return &DeletePlan{tf: tf, column: column, match: match}, nil
}

// Execute resolves the column before streaming, then writes the surviving
// rows as the table's new version.
func (p *DeletePlan) Execute() (*DMLResult, error) {
	idx, err := p.tf.Schema().ColumnIndex(p.column)
	if err != nil {
		return nil, err
	}

	removed, err := p.rewrite(idx)
	if err != nil {
		return nil, err
	}

	return &DMLResult{
		RowsAffected: removed,
		Message:      fmt.Sprintf("%d row(s) deleted", removed),
	}, nil
}

func (p *DeletePlan) rewrite(idx int) (int, error) {
	cursor, err := p.tf.OpenCursor()
	if err != nil {
		return 0, err
	}
	defer cursor.Close()

	w, err := p.tf.BeginRewrite()
	if err != nil {
		return 0, err
	}
	defer w.Abort()

	match := value.Value(p.match)
	removed := 0

	err = iterator.Iterate(cursor, func(r *row.Row) (bool, error) {
		v, err := r.GetValue(idx)
		if err != nil {
			return false, err
		}
		if value.Compare(v, match) == 0 {
			removed++
			return true, nil
		}
		return true, w.WriteRow(r)
	})
	if err != nil {
		return 0, err
	}

	if err := w.Commit(); err != nil {
		return 0, err
	}
	return removed, nil
}
