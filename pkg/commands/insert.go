package commands

import "strings"

// InsertStatement represents an addToTable command. Values are positional in
// the table's declared column order.
type InsertStatement struct {
	TableStatement
	Values []string
}

func NewInsertStatement(tableName string, values []string) *InsertStatement {
	return &InsertStatement{
		TableStatement: NewTableStatement(Insert, tableName),
		Values:         values,
	}
}

// Validate checks the table name and that at least one value was given. The
// arity against the table's column count is checked at execution, where the
// schema is known.
func (i *InsertStatement) Validate() error {
	if err := i.requireNonEmpty("TableName", i.TableName, "table name cannot be empty"); err != nil {
		return err
	}
	if len(i.Values) == 0 {
		return NewValidationError(Insert, "Values", "at least one value is required")
	}
	return nil
}

// String returns the canonical pipe-delimited form.
func (i *InsertStatement) String() string {
	return joinFields(i.GetType().String(), i.TableName, strings.Join(i.Values, ","))
}
