package commands

import (
	"fmt"

	"chunkdb/pkg/value"
)

// FilterStatement represents a filter command keeping rows whose column
// satisfies the condition against the literal value.
type FilterStatement struct {
	TableStatement
	Column    string
	Value     string
	Condition value.Predicate
}

func NewFilterStatement(tableName, column, literal string, condition value.Predicate) *FilterStatement {
	return &FilterStatement{
		TableStatement: NewTableStatement(Filter, tableName),
		Column:         column,
		Value:          literal,
		Condition:      condition,
	}
}

func (f *FilterStatement) Validate() error {
	if err := f.requireNonEmpty("TableName", f.TableName, "table name cannot be empty"); err != nil {
		return err
	}
	return f.requireNonEmpty("Column", f.Column, "filter column cannot be empty")
}

func (f *FilterStatement) String() string {
	return joinFields(f.GetType().String(), f.TableName, f.Column, f.Value, conditionToken(f.Condition))
}

// parseCondition maps a condition token from the command surface to its
// predicate.
func parseCondition(token string) (value.Predicate, error) {
	switch token {
	case "smallerThan":
		return value.LessThan, nil
	case "biggerThan":
		return value.GreaterThan, nil
	case "equalTo":
		return value.Equals, nil
	default:
		return 0, fmt.Errorf("unknown filter condition %q", token)
	}
}

// conditionToken is the inverse of parseCondition.
func conditionToken(p value.Predicate) string {
	switch p {
	case value.LessThan:
		return "smallerThan"
	case value.GreaterThan:
		return "biggerThan"
	default:
		return "equalTo"
	}
}
