package commands

// StatementType identifies which command a parsed statement represents.
type StatementType int

const (
	CreateTable StatementType = iota
	Insert
	ShowColumns
	Sort
	Update
	Delete
	Group
	Filter
	Join
	Aggregate
)

// String returns the command keyword as typed on the wire.
func (st StatementType) String() string {
	switch st {
	case CreateTable:
		return "newTable"
	case Insert:
		return "addToTable"
	case ShowColumns:
		return "showColumns"
	case Sort:
		return "sort"
	case Update:
		return "set"
	case Delete:
		return "remove"
	case Group:
		return "formGroups"
	case Filter:
		return "filter"
	case Join:
		return "getCommon"
	case Aggregate:
		return "aggregate"
	default:
		return "unknown"
	}
}

// IsMutation reports whether the statement rewrites stored state. Sort
// counts: its merged output is persisted as the table's new content.
func (st StatementType) IsMutation() bool {
	return st == Insert || st == Update || st == Delete || st == Sort
}

// Statement is the interface all parsed commands implement.
type Statement interface {
	// GetType returns the type of the statement.
	GetType() StatementType
	// String returns the canonical pipe-delimited form.
	String() string
	// Validate checks the statement's fields before execution.
	Validate() error
}
