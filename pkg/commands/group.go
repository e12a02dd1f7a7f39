package commands

// GroupStatement represents a formGroups command grouping a table by one
// column.
type GroupStatement struct {
	TableStatement
	Column string
}

func NewGroupStatement(tableName, column string) *GroupStatement {
	return &GroupStatement{
		TableStatement: NewTableStatement(Group, tableName),
		Column:         column,
	}
}

func (g *GroupStatement) Validate() error {
	if err := g.requireNonEmpty("TableName", g.TableName, "table name cannot be empty"); err != nil {
		return err
	}
	return g.requireNonEmpty("Column", g.Column, "grouping column cannot be empty")
}

func (g *GroupStatement) String() string {
	return joinFields(g.GetType().String(), g.TableName, g.Column)
}
