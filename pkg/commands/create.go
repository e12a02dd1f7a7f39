package commands

import "strings"

// CreateTableStatement represents a newTable command.
type CreateTableStatement struct {
	TableStatement
	Columns []string
}

func NewCreateTableStatement(tableName string, columns []string) *CreateTableStatement {
	return &CreateTableStatement{
		TableStatement: NewTableStatement(CreateTable, tableName),
		Columns:        columns,
	}
}

// Validate checks the table name and column list.
func (c *CreateTableStatement) Validate() error {
	if err := c.requireNonEmpty("TableName", c.TableName, "table name cannot be empty"); err != nil {
		return err
	}
	if len(c.Columns) == 0 {
		return NewValidationError(CreateTable, "Columns", "at least one column is required")
	}
	for _, col := range c.Columns {
		if col == "" {
			return NewValidationError(CreateTable, "Columns", "column names cannot be empty")
		}
	}
	return nil
}

// String returns the canonical pipe-delimited form.
func (c *CreateTableStatement) String() string {
	return joinFields(c.GetType().String(), c.TableName, strings.Join(c.Columns, ","))
}
