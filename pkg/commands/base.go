package commands

import "strings"

// BaseStatement provides the type tag shared by all statement types.
type BaseStatement struct {
	stmtType StatementType
}

func NewBaseStatement(stmtType StatementType) BaseStatement {
	return BaseStatement{stmtType: stmtType}
}

func (bs *BaseStatement) GetType() StatementType {
	return bs.stmtType
}

// requireNonEmpty returns a ValidationError when value is empty.
func (bs *BaseStatement) requireNonEmpty(field, value, msg string) error {
	if value == "" {
		return NewValidationError(bs.stmtType, field, msg)
	}
	return nil
}

// TableStatement provides common functionality for statements that operate
// on a single table.
type TableStatement struct {
	BaseStatement
	TableName string
}

func NewTableStatement(stmtType StatementType, tableName string) TableStatement {
	return TableStatement{
		BaseStatement: NewBaseStatement(stmtType),
		TableName:     tableName,
	}
}

// GetTableName returns the table name.
func (ts *TableStatement) GetTableName() string {
	return ts.TableName
}

// joinFields renders fields in the wire form.
func joinFields(fields ...string) string {
	return strings.Join(fields, "|")
}
