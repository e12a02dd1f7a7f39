package value

import (
	"fmt"
	"strconv"
	"strings"
)

// Value is a single stored cell. Storage is always textual; behavior is
// dynamically typed: a comparison is numeric when both operands parse as
// numbers and lexical otherwise, so a column of digits sorts as numbers
// while everything else sorts as text.
type Value string

// Numeric returns the value parsed as a float64 and whether parsing
// succeeded.
func (v Value) Numeric() (float64, bool) {
	f, err := strconv.ParseFloat(string(v), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// IsNumeric reports whether the value parses as a number.
func (v Value) IsNumeric() bool {
	_, ok := v.Numeric()
	return ok
}

func (v Value) String() string {
	return string(v)
}

// Compare returns -1, 0, or 1 ordering a before, equal to, or after b.
// Numeric ordering applies only when both sides parse as numbers.
func Compare(a, b Value) int {
	af, aok := a.Numeric()
	bf, bok := b.Numeric()

	if aok && bok {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}

	return strings.Compare(string(a), string(b))
}

// Matches evaluates the predicate between this value and other, following
// the same numeric-when-possible comparison rule as Compare.
func (v Value) Matches(op Predicate, other Value) (bool, error) {
	cmp := Compare(v, other)

	switch op {
	case Equals:
		return cmp == 0, nil

	case LessThan:
		return cmp < 0, nil

	case GreaterThan:
		return cmp > 0, nil

	default:
		return false, fmt.Errorf("unsupported predicate: %v", op)
	}
}
