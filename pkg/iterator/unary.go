package iterator

import (
	"fmt"

	"chunkdb/pkg/row"
)

// UnaryOperator provides a base implementation for operators with a single
// child. It combines BaseIterator's caching logic with child lifecycle
// management, so Filter, Project, and similar operators only implement their
// readNext logic.
type UnaryOperator struct {
	base  *BaseIterator
	child RowIterator
}

// NewUnaryOperator creates a new unary operator base with the given child and
// read function. The readNextFunc implements the operator's transformation.
func NewUnaryOperator(child RowIterator, readNextFunc ReadNextFunc) (*UnaryOperator, error) {
	if child == nil {
		return nil, fmt.Errorf("child operator cannot be nil")
	}

	u := &UnaryOperator{
		child: child,
	}
	u.base = NewBaseIterator(readNextFunc)
	return u, nil
}

// FetchNext retrieves the next row from the child operator. It returns the
// row if available, nil when the child is exhausted, and handles the
// HasNext/Next ceremony internally.
func (u *UnaryOperator) FetchNext() (*row.Row, error) {
	hasNext, err := u.child.HasNext()
	if err != nil {
		return nil, fmt.Errorf("error checking if child has next: %w", err)
	}

	if !hasNext {
		return nil, nil
	}

	childRow, err := u.child.Next()
	if err != nil {
		return nil, fmt.Errorf("error getting next row from child: %w", err)
	}

	return childRow, nil
}

// Open opens the child operator and marks this operator as ready.
func (u *UnaryOperator) Open() error {
	if err := u.child.Open(); err != nil {
		return fmt.Errorf("failed to open child operator: %w", err)
	}
	u.base.MarkOpened()
	return nil
}

// Close closes the child operator and releases resources.
func (u *UnaryOperator) Close() error {
	if u.child != nil {
		if err := u.child.Close(); err != nil {
			return err
		}
	}
	return u.base.Close()
}

// Rewind resets both the child operator and the base iterator cache.
func (u *UnaryOperator) Rewind() error {
	if err := u.child.Rewind(); err != nil {
		return fmt.Errorf("failed to rewind child operator: %w", err)
	}
	return u.base.Rewind()
}

// GetSchema returns the child's schema. Operators that transform the schema
// override this method.
func (u *UnaryOperator) GetSchema() *row.Schema {
	return u.child.GetSchema()
}

// HasNext checks if there are more rows available.
func (u *UnaryOperator) HasNext() (bool, error) {
	return u.base.HasNext()
}

// Next returns the next row from the operator.
func (u *UnaryOperator) Next() (*row.Row, error) {
	return u.base.Next()
}

// GetChild returns the child operator (useful for inspection/testing).
func (u *UnaryOperator) GetChild() RowIterator {
	return u.child
}
