package commands

import "strings"

// ShowColumnsStatement represents a showColumns command. The literal column
// list "all" selects every column in declared order.
type ShowColumnsStatement struct {
	TableStatement
	Columns []string
	All     bool
}

func NewShowColumnsStatement(tableName string, columns []string) *ShowColumnsStatement {
	all := len(columns) == 1 && columns[0] == "all"
	if all {
		columns = nil
	}
	return &ShowColumnsStatement{
		TableStatement: NewTableStatement(ShowColumns, tableName),
		Columns:        columns,
		All:            all,
	}
}

// Validate checks the table name and, unless every column was requested,
// the column list.
func (s *ShowColumnsStatement) Validate() error {
	if err := s.requireNonEmpty("TableName", s.TableName, "table name cannot be empty"); err != nil {
		return err
	}
	if s.All {
		return nil
	}
	if len(s.Columns) == 0 {
		return NewValidationError(ShowColumns, "Columns", "at least one column is required")
	}
	for _, col := range s.Columns {
		if col == "" {
			return NewValidationError(ShowColumns, "Columns", "column names cannot be empty")
		}
	}
	return nil
}

// String returns the canonical pipe-delimited form.
func (s *ShowColumnsStatement) String() string {
	columns := "all"
	if !s.All {
		columns = strings.Join(s.Columns, ",")
	}
	return joinFields(s.GetType().String(), s.TableName, columns)
}
