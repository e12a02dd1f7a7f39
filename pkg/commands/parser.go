package commands

import (
	"fmt"
	"strings"

	"chunkdb/pkg/execution/aggregation"
)

// Parse turns one pipe-delimited command line into a typed statement. Field
// counts are exact per command; missing or surplus fields are parse errors
// naming the command. Identifier lists are trimmed, values keep their
// spacing.
func Parse(input string) (Statement, error) {
	line := strings.TrimSpace(input)
	if line == "" {
		return nil, fmt.Errorf("empty command")
	}

	parts := strings.Split(line, "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	keyword, args := parts[0], parts[1:]
	switch keyword {
	case "newTable":
		if err := expectFields(keyword, args, 2); err != nil {
			return nil, err
		}
		return NewCreateTableStatement(args[0], splitList(args[1])), nil

	case "addToTable":
		if err := expectFields(keyword, args, 2); err != nil {
			return nil, err
		}
		return NewInsertStatement(args[0], strings.Split(args[1], ",")), nil

	case "showColumns":
		if err := expectFields(keyword, args, 2); err != nil {
			return nil, err
		}
		return NewShowColumnsStatement(args[0], splitList(args[1])), nil

	case "sort":
		if err := expectFields(keyword, args, 2); err != nil {
			return nil, err
		}
		return NewSortStatement(args[0], args[1]), nil

	case "set":
		if err := expectFields(keyword, args, 5); err != nil {
			return nil, err
		}
		return NewUpdateStatement(args[0], args[1], args[2], args[3], args[4]), nil

	case "remove":
		if err := expectFields(keyword, args, 3); err != nil {
			return nil, err
		}
		return NewDeleteStatement(args[0], args[1], args[2]), nil

	case "formGroups":
		if err := expectFields(keyword, args, 2); err != nil {
			return nil, err
		}
		return NewGroupStatement(args[0], args[1]), nil

	case "filter":
		if err := expectFields(keyword, args, 4); err != nil {
			return nil, err
		}
		condition, err := parseCondition(args[3])
		if err != nil {
			return nil, err
		}
		return NewFilterStatement(args[0], args[1], args[2], condition), nil

	case "getCommon":
		if err := expectFields(keyword, args, 4); err != nil {
			return nil, err
		}
		return NewJoinStatement(args[0], args[1], args[2], args[3]), nil

	case "aggregate":
		if err := expectFields(keyword, args, 3); err != nil {
			return nil, err
		}
		op, err := aggregation.ParseAggregateOp(args[2])
		if err != nil {
			return nil, err
		}
		return NewAggregateStatement(args[0], args[1], op), nil

	default:
		return nil, fmt.Errorf("unknown command %q", keyword)
	}
}

// expectFields enforces the exact field count of a command.
func expectFields(keyword string, args []string, want int) error {
	if len(args) != want {
		return fmt.Errorf("%s expects %d fields, got %d", keyword, want, len(args))
	}
	return nil
}

// splitList splits a comma-separated identifier list, trimming surrounding
// space from each name.
func splitList(field string) []string {
	parts := strings.Split(field, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
