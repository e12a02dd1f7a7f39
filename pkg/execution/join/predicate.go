package join

import (
	"fmt"

	"chunkdb/pkg/row"
	"chunkdb/pkg/value"
)

// JoinPredicate compares one column of a left-side row with one column of a
// right-side row. Column names are resolved against both schemas up front,
// so a bad join column fails before either input is read.
type JoinPredicate struct {
	leftColumn  string
	rightColumn string
	leftIndex   int
	rightIndex  int
	op          value.Predicate
}

// NewJoinPredicate resolves the join columns against the two input schemas.
// Unknown columns yield a COLUMN_NOT_FOUND error naming the offending side.
func NewJoinPredicate(left, right *row.Schema, leftColumn, rightColumn string, op value.Predicate) (*JoinPredicate, error) {
	if left == nil || right == nil {
		return nil, fmt.Errorf("join schemas cannot be nil")
	}

	leftIndex, err := left.ColumnIndex(leftColumn)
	if err != nil {
		return nil, err
	}
	rightIndex, err := right.ColumnIndex(rightColumn)
	if err != nil {
		return nil, err
	}

	return &JoinPredicate{
		leftColumn:  leftColumn,
		rightColumn: rightColumn,
		leftIndex:   leftIndex,
		rightIndex:  rightIndex,
		op:          op,
	}, nil
}

// Filter evaluates the join condition against one pair of rows.
func (jp *JoinPredicate) Filter(left, right *row.Row) (bool, error) {
	if left == nil || right == nil {
		return false, fmt.Errorf("join rows cannot be nil")
	}

	lv, err := left.GetValue(jp.leftIndex)
	if err != nil {
		return false, fmt.Errorf("failed to get join column from left row: %w", err)
	}
	rv, err := right.GetValue(jp.rightIndex)
	if err != nil {
		return false, fmt.Errorf("failed to get join column from right row: %w", err)
	}

	return lv.Matches(jp.op, rv)
}

func (jp *JoinPredicate) String() string {
	return fmt.Sprintf("%s %s %s", jp.leftColumn, jp.op, jp.rightColumn)
}
