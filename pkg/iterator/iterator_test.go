package iterator

import (
	"fmt"
	"testing"

	"chunkdb/pkg/row"
)

// sliceSource is a minimal RowIterator over a fixed row slice, used to drive
// the base/unary/binary machinery in tests.
type sliceSource struct {
	rows     []*row.Row
	index    int
	isOpen   bool
	hasError bool
	schema   *row.Schema
}

func newSliceSource(rows []*row.Row, schema *row.Schema) *sliceSource {
	return &sliceSource{rows: rows, index: -1, schema: schema}
}

func (s *sliceSource) Open() error {
	if s.hasError {
		return fmt.Errorf("mock open error")
	}
	s.isOpen = true
	s.index = -1
	return nil
}

func (s *sliceSource) Close() error {
	s.isOpen = false
	return nil
}

func (s *sliceSource) HasNext() (bool, error) {
	if !s.isOpen {
		return false, fmt.Errorf("iterator not open")
	}
	if s.hasError {
		return false, fmt.Errorf("mock has next error")
	}
	return s.index+1 < len(s.rows), nil
}

func (s *sliceSource) Next() (*row.Row, error) {
	if !s.isOpen {
		return nil, fmt.Errorf("iterator not open")
	}
	s.index++
	if s.index >= len(s.rows) {
		return nil, fmt.Errorf("no more rows")
	}
	return s.rows[s.index], nil
}

func (s *sliceSource) Rewind() error {
	if !s.isOpen {
		return fmt.Errorf("iterator not open")
	}
	s.index = -1
	return nil
}

func (s *sliceSource) GetSchema() *row.Schema {
	return s.schema
}

func testSchema(t *testing.T) *row.Schema {
	t.Helper()
	s, err := row.NewSchema("emp", []string{"id", "name"})
	if err != nil {
		panic(fmt.Sprintf("failed to create schema: %v", err))
	}
	return s
}

func testRows(t *testing.T, s *row.Schema, n int) []*row.Row {
	t.Helper()
	rows := make([]*row.Row, 0, n)
	for i := 0; i < n; i++ {
		r, err := row.FromStrings(s, []string{fmt.Sprintf("%d", i+1), fmt.Sprintf("name%d", i+1)})
		if err != nil {
			panic(fmt.Sprintf("failed to create row: %v", err))
		}
		rows = append(rows, r)
	}
	return rows
}

// ============================================================================
// BASE ITERATOR TESTS
// ============================================================================

func TestBaseIterator_NotOpened(t *testing.T) {
	base := NewBaseIterator(func() (*row.Row, error) { return nil, nil })

	if _, err := base.HasNext(); err == nil {
		t.Error("Expected error from HasNext before open")
	}
	if _, err := base.Next(); err == nil {
		t.Error("Expected error from Next before open")
	}
}

func TestBaseIterator_CachesLookahead(t *testing.T) {
	s := testSchema(t)
	rows := testRows(t, s, 1)
	calls := 0
	base := NewBaseIterator(func() (*row.Row, error) {
		calls++
		if calls == 1 {
			return rows[0], nil
		}
		return nil, nil
	})
	base.MarkOpened()

	for i := 0; i < 3; i++ {
		hasNext, err := base.HasNext()
		if err != nil {
			t.Fatalf("HasNext failed: %v", err)
		}
		if !hasNext {
			t.Fatal("Expected a row")
		}
	}
	if calls != 1 {
		t.Errorf("Expected exactly 1 read for repeated HasNext, got %d", calls)
	}

	if _, err := base.Next(); err != nil {
		t.Fatalf("Next failed: %v", err)
	}

	hasNext, err := base.HasNext()
	if err != nil {
		t.Fatalf("HasNext failed: %v", err)
	}
	if hasNext {
		t.Error("Expected exhaustion after single row")
	}
}

func TestBaseIterator_NextPastEnd(t *testing.T) {
	base := NewBaseIterator(func() (*row.Row, error) { return nil, nil })
	base.MarkOpened()

	if _, err := base.Next(); err == nil {
		t.Error("Expected error from Next on exhausted source")
	}
}

// ============================================================================
// UNARY OPERATOR TESTS
// ============================================================================

func TestNewUnaryOperator_NilChild(t *testing.T) {
	if _, err := NewUnaryOperator(nil, func() (*row.Row, error) { return nil, nil }); err == nil {
		t.Error("Expected error for nil child")
	}
}

func TestUnaryOperator_PassThrough(t *testing.T) {
	s := testSchema(t)
	child := newSliceSource(testRows(t, s, 3), s)

	var op *UnaryOperator
	op, err := NewUnaryOperator(child, func() (*row.Row, error) {
		return op.FetchNext()
	})
	if err != nil {
		t.Fatalf("NewUnaryOperator failed: %v", err)
	}

	if err := op.Open(); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer op.Close()

	collected, err := Collect(op)
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if len(collected) != 3 {
		t.Errorf("Expected 3 rows, got %d", len(collected))
	}

	if op.GetSchema() != s {
		t.Error("Expected child schema to be forwarded")
	}
}

func TestUnaryOperator_Rewind(t *testing.T) {
	s := testSchema(t)
	child := newSliceSource(testRows(t, s, 2), s)

	var op *UnaryOperator
	op, err := NewUnaryOperator(child, func() (*row.Row, error) {
		return op.FetchNext()
	})
	if err != nil {
		t.Fatalf("NewUnaryOperator failed: %v", err)
	}

	if err := op.Open(); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer op.Close()

	first, err := Collect(op)
	if err != nil {
		t.Fatalf("first Collect failed: %v", err)
	}

	if err := op.Rewind(); err != nil {
		t.Fatalf("Rewind failed: %v", err)
	}

	second, err := Collect(op)
	if err != nil {
		t.Fatalf("second Collect failed: %v", err)
	}

	if len(first) != len(second) {
		t.Errorf("Rewind changed row count: %d vs %d", len(first), len(second))
	}
}

// ============================================================================
// BINARY OPERATOR TESTS
// ============================================================================

func TestNewBinaryOperator_NilChildren(t *testing.T) {
	s := testSchema(t)
	child := newSliceSource(nil, s)
	readNext := func() (*row.Row, error) { return nil, nil }

	if _, err := NewBinaryOperator(nil, child, readNext); err == nil {
		t.Error("Expected error for nil left child")
	}
	if _, err := NewBinaryOperator(child, nil, readNext); err == nil {
		t.Error("Expected error for nil right child")
	}
}

func TestBinaryOperator_FetchBothSides(t *testing.T) {
	s := testSchema(t)
	left := newSliceSource(testRows(t, s, 2), s)
	right := newSliceSource(testRows(t, s, 1), s)

	op, err := NewBinaryOperator(left, right, func() (*row.Row, error) { return nil, nil })
	if err != nil {
		t.Fatalf("NewBinaryOperator failed: %v", err)
	}

	if err := op.Open(); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer op.Close()

	l, err := op.FetchLeft()
	if err != nil || l == nil {
		t.Fatalf("FetchLeft = %v, %v", l, err)
	}

	r, err := op.FetchRight()
	if err != nil || r == nil {
		t.Fatalf("FetchRight = %v, %v", r, err)
	}

	r2, err := op.FetchRight()
	if err != nil {
		t.Fatalf("FetchRight after exhaustion errored: %v", err)
	}
	if r2 != nil {
		t.Error("Expected nil after right child exhausted")
	}

	if err := op.RewindRight(); err != nil {
		t.Fatalf("RewindRight failed: %v", err)
	}
	r3, err := op.FetchRight()
	if err != nil || r3 == nil {
		t.Fatalf("FetchRight after rewind = %v, %v", r3, err)
	}
}

// ============================================================================
// HELPER TESTS
// ============================================================================

func TestCollectAndCount(t *testing.T) {
	s := testSchema(t)
	src := newSliceSource(testRows(t, s, 4), s)
	if err := src.Open(); err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	rows, err := Collect(src)
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if len(rows) != 4 {
		t.Errorf("Expected 4 rows, got %d", len(rows))
	}

	if err := src.Rewind(); err != nil {
		t.Fatalf("Rewind failed: %v", err)
	}
	n, err := Count(src)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 4 {
		t.Errorf("Expected count 4, got %d", n)
	}
}

func TestForEach_StopsOnError(t *testing.T) {
	s := testSchema(t)
	src := newSliceSource(testRows(t, s, 5), s)
	if err := src.Open(); err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	seen := 0
	err := ForEach(src, func(*row.Row) error {
		seen++
		if seen == 2 {
			return fmt.Errorf("boom")
		}
		return nil
	})

	if err == nil {
		t.Error("Expected error to propagate")
	}
	if seen != 2 {
		t.Errorf("Expected processing to stop at 2, saw %d", seen)
	}
}

func TestReduce(t *testing.T) {
	s := testSchema(t)
	src := newSliceSource(testRows(t, s, 3), s)
	if err := src.Open(); err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	total, err := Reduce(src, 0, func(acc int, r *row.Row) (int, error) {
		return acc + 1, nil
	})
	if err != nil {
		t.Fatalf("Reduce failed: %v", err)
	}
	if total != 3 {
		t.Errorf("Expected 3, got %d", total)
	}
}

func TestSliceIterator(t *testing.T) {
	it := NewSliceIterator([]int{10, 20, 30})

	if it.Len() != 3 || it.Remaining() != 3 {
		t.Errorf("Len/Remaining = %d/%d, want 3/3", it.Len(), it.Remaining())
	}

	peeked, err := it.Peek()
	if err != nil || peeked != 10 {
		t.Fatalf("Peek = %d, %v", peeked, err)
	}

	var got []int
	for it.HasNext() {
		v, err := it.Next()
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		got = append(got, v)
	}
	if len(got) != 3 || got[2] != 30 {
		t.Errorf("Unexpected elements: %v", got)
	}

	if _, err := it.Next(); err == nil {
		t.Error("Expected error past end")
	}

	if err := it.Rewind(); err != nil {
		t.Fatalf("Rewind failed: %v", err)
	}
	if it.Remaining() != 3 {
		t.Errorf("Expected 3 remaining after rewind, got %d", it.Remaining())
	}
}
