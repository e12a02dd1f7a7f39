package commands

import "chunkdb/pkg/execution/aggregation"

// AggregateStatement represents an aggregate command reducing one column to
// a single value.
type AggregateStatement struct {
	TableStatement
	Column string
	Op     aggregation.AggregateOp
}

func NewAggregateStatement(tableName, column string, op aggregation.AggregateOp) *AggregateStatement {
	return &AggregateStatement{
		TableStatement: NewTableStatement(Aggregate, tableName),
		Column:         column,
		Op:             op,
	}
}

func (a *AggregateStatement) Validate() error {
	if err := a.requireNonEmpty("TableName", a.TableName, "table name cannot be empty"); err != nil {
		return err
	}
	return a.requireNonEmpty("Column", a.Column, "aggregate column cannot be empty")
}

func (a *AggregateStatement) String() string {
	return joinFields(a.GetType().String(), a.TableName, a.Column, a.Op.String())
}
