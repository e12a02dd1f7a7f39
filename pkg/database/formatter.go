package database

import (
	"fmt"

	"chunkdb/pkg/execution/mutation"
	"chunkdb/pkg/iterator"
	"chunkdb/pkg/row"
)

// ResultFormatter turns executor output into the standard QueryResult
// shape the shells render.
type ResultFormatter struct{}

// NewResultFormatter creates a new instance of ResultFormatter.
func NewResultFormatter() *ResultFormatter {
	return &ResultFormatter{}
}

// FormatRows drains an operator pipeline into a QueryResult. The engine
// streams chunk by chunk; rows are only materialized here, at the
// presentation boundary.
func (f *ResultFormatter) FormatRows(it iterator.RowIterator) (QueryResult, error) {
	if err := it.Open(); err != nil {
		return QueryResult{}, err
	}
	defer it.Close()

	schema := it.GetSchema()
	columns := make([]string, len(schema.Columns))
	copy(columns, schema.Columns)

	rows := make([][]string, 0)
	err := iterator.Iterate(it, func(r *row.Row) (bool, error) {
		rows = append(rows, r.Strings())
		return true, nil
	})
	if err != nil {
		return QueryResult{}, err
	}

	return QueryResult{
		Success: true,
		Columns: columns,
		Rows:    rows,
		Message: fmt.Sprintf("%d row(s) returned", len(rows)),
	}, nil
}

// FormatDML converts a mutation result to the standard format.
func (f *ResultFormatter) FormatDML(res *mutation.DMLResult) QueryResult {
	return QueryResult{
		Success:      true,
		RowsAffected: res.RowsAffected,
		Message:      res.Message,
	}
}
