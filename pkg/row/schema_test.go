package row

import (
	"testing"

	"chunkdb/pkg/dberr"
)

func TestNewSchema_Valid(t *testing.T) {
	s, err := NewSchema("emp", []string{"id", "name", "salary"})
	if err != nil {
		t.Fatalf("NewSchema returned error: %v", err)
	}

	if s.NumColumns() != 3 {
		t.Errorf("Expected 3 columns, got %d", s.NumColumns())
	}
	if s.KeyColumn() != "id" {
		t.Errorf("Expected key column id, got %s", s.KeyColumn())
	}
}

func TestNewSchema_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		columns []string
	}{
		{"empty", []string{}},
		{"blank name", []string{"id", ""}},
		{"duplicate", []string{"id", "name", "id"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewSchema("emp", tt.columns); err == nil {
				t.Error("Expected error")
			}
		})
	}
}

func TestNewSchema_CopiesInput(t *testing.T) {
	columns := []string{"id", "name"}
	s, err := NewSchema("emp", columns)
	if err != nil {
		t.Fatalf("NewSchema failed: %v", err)
	}

	columns[0] = "mutated"
	if s.Columns[0] != "id" {
		t.Error("Schema should not alias the caller's slice")
	}
}

func TestColumnIndex(t *testing.T) {
	s := mustSchema(t, "emp", "id", "name", "salary")

	idx, err := s.ColumnIndex("salary")
	if err != nil {
		t.Fatalf("ColumnIndex returned error: %v", err)
	}
	if idx != 2 {
		t.Errorf("Expected index 2, got %d", idx)
	}
}

func TestColumnIndex_Unknown(t *testing.T) {
	s := mustSchema(t, "emp", "id", "name")

	_, err := s.ColumnIndex("age")
	if err == nil {
		t.Fatal("Expected error for unknown column")
	}
	if !dberr.HasCode(err, dberr.CodeColumnNotFound) {
		t.Errorf("Expected COLUMN_NOT_FOUND, got %v", err)
	}
}

func TestSelect(t *testing.T) {
	s := mustSchema(t, "emp", "id", "name", "salary")

	projected, err := s.Select([]string{"salary", "id"})
	if err != nil {
		t.Fatalf("Select returned error: %v", err)
	}

	if projected.NumColumns() != 2 {
		t.Fatalf("Expected 2 columns, got %d", projected.NumColumns())
	}
	if projected.Columns[0] != "salary" || projected.Columns[1] != "id" {
		t.Errorf("Unexpected column order: %v", projected.Columns)
	}
}

func TestSelect_UnknownColumn(t *testing.T) {
	s := mustSchema(t, "emp", "id", "name")

	_, err := s.Select([]string{"id", "age"})
	if !dberr.HasCode(err, dberr.CodeColumnNotFound) {
		t.Errorf("Expected COLUMN_NOT_FOUND, got %v", err)
	}
}

func TestCombine(t *testing.T) {
	left := mustSchema(t, "emp", "id", "dept")
	right := mustSchema(t, "dept", "id", "name")

	combined, err := Combine(left, right)
	if err != nil {
		t.Fatalf("Combine returned error: %v", err)
	}

	want := []string{"emp_id", "emp_dept", "dept_id", "dept_name"}
	if combined.NumColumns() != len(want) {
		t.Fatalf("Expected %d columns, got %d", len(want), combined.NumColumns())
	}
	for i, col := range want {
		if combined.Columns[i] != col {
			t.Errorf("Column %d = %s, want %s", i, combined.Columns[i], col)
		}
	}
}

func TestEquals(t *testing.T) {
	a := mustSchema(t, "emp", "id", "name")
	b := mustSchema(t, "other", "id", "name")
	c := mustSchema(t, "emp", "id", "salary")

	if !a.Equals(b) {
		t.Error("Schemas with same columns should be equal regardless of table")
	}
	if a.Equals(c) {
		t.Error("Schemas with different columns should not be equal")
	}
	if a.Equals(nil) {
		t.Error("Schema should not equal nil")
	}
}

func mustSchema(t *testing.T, table string, columns ...string) *Schema {
	t.Helper()
	s, err := NewSchema(table, columns)
	if err != nil {
		t.Fatalf("NewSchema(%s) failed: %v", table, err)
	}
	return s
}
