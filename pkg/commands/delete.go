package commands

// DeleteStatement represents a remove command deleting rows whose column
// equals the value.
type DeleteStatement struct {
	TableStatement
	Column string
	Value  string
}

func NewDeleteStatement(tableName, column, value string) *DeleteStatement {
	return &DeleteStatement{
		TableStatement: NewTableStatement(Delete, tableName),
		Column:         column,
		Value:          value,
	}
}

func (d *DeleteStatement) Validate() error {
	if err := d.requireNonEmpty("TableName", d.TableName, "table name cannot be empty"); err != nil {
		return err
	}
	return d.requireNonEmpty("Column", d.Column, "match column cannot be empty")
}

func (d *DeleteStatement) String() string {
	return joinFields(d.GetType().String(), d.TableName, d.Column, d.Value)
}
