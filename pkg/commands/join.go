package commands

// JoinStatement represents a getCommon command joining two tables on
// equality of one column from each.
type JoinStatement struct {
	BaseStatement
	LeftTable   string
	RightTable  string
	LeftColumn  string
	RightColumn string
}

func NewJoinStatement(leftTable, rightTable, leftColumn, rightColumn string) *JoinStatement {
	return &JoinStatement{
		BaseStatement: NewBaseStatement(Join),
		LeftTable:     leftTable,
		RightTable:    rightTable,
		LeftColumn:    leftColumn,
		RightColumn:   rightColumn,
	}
}

func (j *JoinStatement) Validate() error {
	if err := j.requireNonEmpty("LeftTable", j.LeftTable, "table name cannot be empty"); err != nil {
		return err
	}
	if err := j.requireNonEmpty("RightTable", j.RightTable, "table name cannot be empty"); err != nil {
		return err
	}
	if err := j.requireNonEmpty("LeftColumn", j.LeftColumn, "join column cannot be empty"); err != nil {
		return err
	}
	return j.requireNonEmpty("RightColumn", j.RightColumn, "join column cannot be empty")
}

func (j *JoinStatement) String() string {
	return joinFields(j.GetType().String(), j.LeftTable, j.RightTable, j.LeftColumn, j.RightColumn)
}
