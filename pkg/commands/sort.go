package commands

// SortStatement represents a sort command ordering a table by one column.
type SortStatement struct {
	TableStatement
	Column string
}

func NewSortStatement(tableName, column string) *SortStatement {
	return &SortStatement{
		TableStatement: NewTableStatement(Sort, tableName),
		Column:         column,
	}
}

func (s *SortStatement) Validate() error {
	if err := s.requireNonEmpty("TableName", s.TableName, "table name cannot be empty"); err != nil {
		return err
	}
	return s.requireNonEmpty("Column", s.Column, "sort column cannot be empty")
}

func (s *SortStatement) String() string {
	return joinFields(s.GetType().String(), s.TableName, s.Column)
}
