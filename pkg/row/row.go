package row

import (
	"fmt"
	"strings"

	"chunkdb/pkg/value"
)

// Row represents one record of a table. Rows are treated as immutable once
// produced by a scan; mutation goes through WithValue, which copies.
type Row struct {
	Schema *Schema
	values []value.Value
}

// NewRow creates an empty row matching the given schema.
func NewRow(schema *Schema) *Row {
	return &Row{
		Schema: schema,
		values: make([]value.Value, schema.NumColumns()),
	}
}

// FromStrings builds a row from raw string values, enforcing that the value
// count matches the schema's column count.
func FromStrings(schema *Schema, values []string) (*Row, error) {
	if len(values) != schema.NumColumns() {
		return nil, fmt.Errorf("expected %d values, got %d", schema.NumColumns(), len(values))
	}

	r := NewRow(schema)
	for i, v := range values {
		r.values[i] = value.Value(v)
	}
	return r, nil
}

func (r *Row) SetValue(i int, v value.Value) error {
	if i < 0 || i >= len(r.values) {
		return fmt.Errorf("column index %d out of bounds [0, %d)", i, len(r.values))
	}
	r.values[i] = v
	return nil
}

// GetValue returns the value of the ith column.
func (r *Row) GetValue(i int) (value.Value, error) {
	if i < 0 || i >= len(r.values) {
		return "", fmt.Errorf("column index %d out of bounds [0, %d)", i, len(r.values))
	}
	return r.values[i], nil
}

// NumValues returns how many columns this row carries.
func (r *Row) NumValues() int {
	return len(r.values)
}

// Strings returns the row's values as a fresh string slice, the shape the
// storage codec and result formatting consume.
func (r *Row) Strings() []string {
	out := make([]string, len(r.values))
	for i, v := range r.values {
		out[i] = string(v)
	}
	return out
}

// Clone returns a deep copy sharing only the schema.
func (r *Row) Clone() *Row {
	c := NewRow(r.Schema)
	copy(c.values, r.values)
	return c
}

// WithValue returns a copy of the row with column i replaced by v. The
// receiver is left untouched.
func (r *Row) WithValue(i int, v value.Value) (*Row, error) {
	c := r.Clone()
	if err := c.SetValue(i, v); err != nil {
		return nil, err
	}
	return c, nil
}

// CombineRows concatenates an outer and inner row under the combined schema,
// outer's values first. Used by the join to emit matched pairs.
func CombineRows(combined *Schema, left, right *Row) (*Row, error) {
	if left.NumValues()+right.NumValues() != combined.NumColumns() {
		return nil, fmt.Errorf("combined schema wants %d values, rows carry %d",
			combined.NumColumns(), left.NumValues()+right.NumValues())
	}

	out := NewRow(combined)
	copy(out.values, left.values)
	copy(out.values[left.NumValues():], right.values)
	return out, nil
}

// String returns a tab separated rendering, handy in logs and tests.
func (r *Row) String() string {
	parts := make([]string, len(r.values))
	for i, v := range r.values {
		parts[i] = string(v)
	}
	return strings.Join(parts, "\t")
}
