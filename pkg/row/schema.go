package row

import (
	"fmt"
	"strings"

	"chunkdb/pkg/dberr"
)

// Schema describes the ordered column list of a table. Column names are
// unique within a schema; the first column is the table's primary key.
type Schema struct {
	Table   string
	Columns []string
}

// NewSchema creates a schema for the given table and column names.
//
// Parameters:
//   - table: owning table name (used in error reporting)
//   - columns: ordered column names (at least one, no duplicates, no blanks)
//
// Returns:
//   - *Schema: newly created schema
//   - error: if the column list is empty, contains a blank name, or repeats a name
func NewSchema(table string, columns []string) (*Schema, error) {
	if len(columns) < 1 {
		return nil, fmt.Errorf("table %q must declare at least one column", table)
	}

	seen := make(map[string]bool, len(columns))
	for _, col := range columns {
		if col == "" {
			return nil, fmt.Errorf("table %q declares a blank column name", table)
		}
		if seen[col] {
			return nil, fmt.Errorf("table %q declares column %q twice", table, col)
		}
		seen[col] = true
	}

	colsCopy := make([]string, len(columns))
	copy(colsCopy, columns)

	return &Schema{Table: table, Columns: colsCopy}, nil
}

// NumColumns returns the number of columns in this schema.
func (s *Schema) NumColumns() int {
	return len(s.Columns)
}

// ColumnName returns the name of the ith column.
func (s *Schema) ColumnName(i int) (string, error) {
	if i < 0 || i >= len(s.Columns) {
		return "", fmt.Errorf("column index %d out of bounds [0, %d)", i, len(s.Columns))
	}
	return s.Columns[i], nil
}

// ColumnIndex resolves a column name to its position. Operators call this
// before streaming so an unknown column fails fast.
func (s *Schema) ColumnIndex(name string) (int, error) {
	for i, col := range s.Columns {
		if col == name {
			return i, nil
		}
	}
	return 0, dberr.NewColumnNotFound(s.Table, name)
}

// KeyColumn returns the name of the primary key column (always column 0).
func (s *Schema) KeyColumn() string {
	return s.Columns[0]
}

// Equals checks whether two schemas declare the same columns in the same
// order. Table names are not compared.
func (s *Schema) Equals(other *Schema) bool {
	if other == nil || len(s.Columns) != len(other.Columns) {
		return false
	}
	for i, col := range s.Columns {
		if other.Columns[i] != col {
			return false
		}
	}
	return true
}

// Select builds a schema containing only the named columns, in the requested
// order. Every name must resolve; the first unknown one is reported.
func (s *Schema) Select(columns []string) (*Schema, error) {
	for _, col := range columns {
		if _, err := s.ColumnIndex(col); err != nil {
			return nil, err
		}
	}
	return NewSchema(s.Table, columns)
}

// Combine builds the output schema of a join: left's columns then right's,
// each prefixed with its table name so duplicates stay distinguishable.
func Combine(left, right *Schema) (*Schema, error) {
	combined := make([]string, 0, len(left.Columns)+len(right.Columns))
	for _, col := range left.Columns {
		combined = append(combined, left.Table+"_"+col)
	}
	for _, col := range right.Columns {
		combined = append(combined, right.Table+"_"+col)
	}
	return NewSchema(left.Table+"_"+right.Table, combined)
}

func (s *Schema) String() string {
	return fmt.Sprintf("%s(%s)", s.Table, strings.Join(s.Columns, ", "))
}
