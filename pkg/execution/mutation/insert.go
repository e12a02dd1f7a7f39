package mutation

import (
	"fmt"

	"chunkdb/pkg/dberr"
	"chunkdb/pkg/iterator"
	"chunkdb/pkg/row"
	"chunkdb/pkg/storage/tablefile"
	"chunkdb/pkg/value"
)

// DMLResult reports the outcome of a mutation against a table.
type DMLResult struct {
	RowsAffected int
	Message      string
}

// InsertPlan appends one row to a table after verifying that its key does
// not collide with an existing row. The duplicate check is a streaming scan
// of the key column holding one row at a time, so an insert never loads the
// table into memory. That makes each insert a full pass over the table,
// which is the accepted cost of staying within the row budget.
type InsertPlan struct {
	tf     *tablefile.TableFile
	values []string
}

// NewInsertPlan creates an insert of the given values, positional in the
// table's column order.
func NewInsertPlan(tf *tablefile.TableFile, values []string) (*InsertPlan, error) {
	if tf == nil {
		return nil, fmt.Errorf("insert requires a table file")
	}
	return &InsertPlan{tf: tf, values: values}, nil
}

// Execute validates the row, runs the duplicate-key scan, and appends. On
// any failure the table is left exactly as it was.
func (p *InsertPlan) Execute() (*DMLResult, error) {
	r, err := row.FromStrings(p.tf.Schema(), p.values)
	if err != nil {
		return nil, err
	}

	if err := p.checkDuplicateKey(); err != nil {
		return nil, err
	}

	if err := p.tf.AppendRow(r); err != nil {
		return nil, err
	}

	return &DMLResult{
		RowsAffected: 1,
		Message:      "1 row(s) inserted",
	}, nil
}

// checkDuplicateKey scans the key column for a value equal to the incoming
// row's key.
func (p *InsertPlan) checkDuplicateKey() error {
	key := value.Value(p.values[0])

	cursor, err := p.tf.OpenCursor()
	if err != nil {
		return err
	}
	defer cursor.Close()

	var duplicate bool
	err = iterator.Iterate(cursor, func(r *row.Row) (bool, error) {
		existing, err := r.GetValue(0)
		if err != nil {
			return false, err
		}
		if value.Compare(existing, key) == 0 {
			duplicate = true
			return false, nil
		}
		return true, nil
	})
	if err != nil {
		return err
	}

	if duplicate {
		return dberr.NewDuplicateKey(p.tf.Table(), p.tf.Schema().KeyColumn(), key.String())
	}
	return nil
}
