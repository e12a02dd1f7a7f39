package mutation

import (
	"fmt"

	"chunkdb/pkg/dberr"
	"chunkdb/pkg/iterator"
	"chunkdb/pkg/row"
	"chunkdb/pkg/storage/tablefile"
	"chunkdb/pkg/value"
)

// UpdatePlan rewrites a table, replacing the target column's value in every
// row whose match column equals the match value. The result streams through
// a temp file that is swapped in only after the whole pass succeeds, so a
// failure mid-rewrite leaves the previous version intact.
type UpdatePlan struct {
	tf          *tablefile.TableFile
	matchColumn string
	matchValue  string
	target      string
	newValue    string
}

// NewUpdatePlan creates an update of target to newValue for rows where
// matchColumn equals matchValue.
func NewUpdatePlan(tf *tablefile.TableFile, matchColumn, matchValue, target, newValue string) (*UpdatePlan, error) {
	if tf == nil {
		return nil, fmt.Errorf("update requires a table file")
	}
	return &UpdatePlan{
		tf:          tf,
		matchColumn: matchColumn,
		matchValue:  matchValue,
		target:      target,
		newValue:    newValue,
	}, nil
}

// Execute resolves both columns before streaming, guards key-column updates
// against collisions, then runs the rewrite pass.
func (p *UpdatePlan) Execute() (*DMLResult, error) {
	schema := p.tf.Schema()
	matchIdx, err := schema.ColumnIndex(p.matchColumn)
	if err != nil {
		return nil, err
	}
	targetIdx, err := schema.ColumnIndex(p.target)
	if err != nil {
		return nil, err
	}

	if targetIdx == 0 {
		if err := p.checkKeyConflicts(matchIdx); err != nil {
			return nil, err
		}
	}

	updated, err := p.rewrite(matchIdx, targetIdx)
	if err != nil {
		return nil, err
	}

	return &DMLResult{
		RowsAffected: updated,
		Message:      fmt.Sprintf("%d row(s) updated", updated),
	}, nil
}

// checkKeyConflicts guards updates that write the key column: the new key
// must not already exist outside the matched rows, and at most one row may
// match, since two matched rows would end up sharing the new key.
func (p *UpdatePlan) checkKeyConflicts(matchIdx int) error {
	cursor, err := p.tf.OpenCursor()
	if err != nil {
		return err
	}
	defer cursor.Close()

	match := value.Value(p.matchValue)
	newKey := value.Value(p.newValue)
	matches := 0

	var conflict bool
	err = iterator.Iterate(cursor, func(r *row.Row) (bool, error) {
		cond, err := r.GetValue(matchIdx)
		if err != nil {
			return false, err
		}
		if value.Compare(cond, match) == 0 {
			matches++
			if matches > 1 {
				conflict = true
				return false, nil
			}
			return true, nil
		}

		key, err := r.GetValue(0)
		if err != nil {
			return false, err
		}
		if value.Compare(key, newKey) == 0 {
			conflict = true
			return false, nil
		}
		return true, nil
	})
	if err != nil {
		return err
	}

	if conflict {
		return dberr.NewDuplicateKey(p.tf.Table(), p.tf.Schema().KeyColumn(), p.newValue)
	}
	return nil
}

// rewrite streams every row into the replacement version, substituting the
// target value in matching rows.
func (p *UpdatePlan) rewrite(matchIdx, targetIdx int) (int, error) {
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

	match := value.Value(p.matchValue)
	updated := 0

	err = iterator.Iterate(cursor, func(r *row.Row) (bool, error) {
		cond, err := r.GetValue(matchIdx)
		if err != nil {
			return false, err
		}

		out := r
		if value.Compare(cond, match) == 0 {
			out, err = r.WithValue(targetIdx, value.Value(p.newValue))
			if err != nil {
				return false, err
			}
			updated++
		}
		return true, w.WriteRow(out)
	})
	if err != nil {
		return 0, err
	}

	if err := w.Commit(); err != nil {
		return 0, err
	}
	return updated, nil
}
