package commands

// UpdateStatement represents a set command: rows whose match column equals
// the match value get the target column replaced with the new value. Values
// may legitimately be empty strings, so only the identifiers are validated.
type UpdateStatement struct {
	TableStatement
	MatchColumn string
	MatchValue  string
	Target      string
	NewValue    string
}

func NewUpdateStatement(tableName, matchColumn, matchValue, target, newValue string) *UpdateStatement {
	return &UpdateStatement{
		TableStatement: NewTableStatement(Update, tableName),
		MatchColumn:    matchColumn,
		MatchValue:     matchValue,
		Target:         target,
		NewValue:       newValue,
	}
}

func (u *UpdateStatement) Validate() error {
	if err := u.requireNonEmpty("TableName", u.TableName, "table name cannot be empty"); err != nil {
		return err
	}
	if err := u.requireNonEmpty("MatchColumn", u.MatchColumn, "match column cannot be empty"); err != nil {
		return err
	}
	return u.requireNonEmpty("Target", u.Target, "target column cannot be empty")
}

func (u *UpdateStatement) String() string {
	return joinFields(u.GetType().String(), u.TableName, u.MatchColumn, u.MatchValue, u.Target, u.NewValue)
}
