package aggregation

import (
	"fmt"
	"strings"
)

// AggregateOp identifies a streaming reduction applied to one column.
type AggregateOp int

const (
	Min AggregateOp = iota
	Max
	Sum
	Avg
	Count
)

// String returns the operation name as it appears on the command surface.
func (op AggregateOp) String() string {
	switch op {
	case Min:
		return "min"
	case Max:
		return "max"
	case Sum:
		return "sum"
	case Avg:
		return "avg"
	case Count:
		return "count"
	default:
		return "unknown"
	}
}

// ParseAggregateOp converts an operation name to its AggregateOp value.
// Matching is case-insensitive.
func ParseAggregateOp(opStr string) (AggregateOp, error) {
	switch strings.ToLower(opStr) {
	case "min":
		return Min, nil
	case "max":
		return Max, nil
	case "sum":
		return Sum, nil
	case "avg":
		return Avg, nil
	case "count":
		return Count, nil
	default:
		return 0, fmt.Errorf("unsupported aggregate operation: %s", opStr)
	}
}

// Numeric reports whether the operation requires every input value to parse
// as a number.
func (op AggregateOp) Numeric() bool {
	return op != Count
}
