package value

// Predicate identifies a row-level comparison operation.
type Predicate int

const (
	Equals Predicate = iota
	LessThan
	GreaterThan
)

func (p Predicate) String() string {
	switch p {
	case Equals:
		return "="

	case LessThan:
		return "<"

	case GreaterThan:
		return ">"

	default:
		return "UNKNOWN"
	}
}
