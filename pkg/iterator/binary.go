package iterator

import (
	"errors"
	"fmt"

	"chunkdb/pkg/row"
)

// BinaryOperator provides a base implementation for operators with two
// children, combining BaseIterator's caching logic with dual-child lifecycle
// management for the join.
type BinaryOperator struct {
	base       *BaseIterator
	leftChild  RowIterator
	rightChild RowIterator
}

// NewBinaryOperator creates a new binary operator base with the given
// children and read function.
func NewBinaryOperator(leftChild, rightChild RowIterator, readNextFunc ReadNextFunc) (*BinaryOperator, error) {
	if leftChild == nil {
		return nil, fmt.Errorf("left child operator cannot be nil")
	}
	if rightChild == nil {
		return nil, fmt.Errorf("right child operator cannot be nil")
	}

	b := &BinaryOperator{
		leftChild:  leftChild,
		rightChild: rightChild,
	}
	b.base = NewBaseIterator(readNextFunc)
	return b, nil
}

// FetchLeft retrieves the next row from the left child, or nil when it is
// exhausted.
func (b *BinaryOperator) FetchLeft() (*row.Row, error) {
	r, err := b.fetchChild(b.leftChild)
	if err != nil {
		return nil, fmt.Errorf("error fetching left child row: %w", err)
	}
	return r, nil
}

// FetchRight retrieves the next row from the right child, or nil when it is
// exhausted.
func (b *BinaryOperator) FetchRight() (*row.Row, error) {
	r, err := b.fetchChild(b.rightChild)
	if err != nil {
		return nil, fmt.Errorf("error fetching right child row: %w", err)
	}
	return r, nil
}

func (b *BinaryOperator) fetchChild(child RowIterator) (*row.Row, error) {
	hasNext, err := child.HasNext()
	if err != nil {
		return nil, fmt.Errorf("error checking if child has next: %w", err)
	}

	if !hasNext {
		return nil, nil
	}

	r, err := child.Next()
	if err != nil {
		return nil, fmt.Errorf("error getting next row from child: %w", err)
	}

	return r, nil
}

// Open opens both child operators and marks this operator as ready.
func (b *BinaryOperator) Open() error {
	if err := b.leftChild.Open(); err != nil {
		return fmt.Errorf("failed to open left child: %w", err)
	}

	if err := b.rightChild.Open(); err != nil {
		return fmt.Errorf("failed to open right child: %w", err)
	}

	b.base.MarkOpened()
	return nil
}

// Close closes both child operators and releases resources, collecting
// errors from both children with errors.Join.
func (b *BinaryOperator) Close() error {
	var errs []error

	if err := b.leftChild.Close(); err != nil {
		errs = append(errs, fmt.Errorf("left child close: %w", err))
	}

	if err := b.rightChild.Close(); err != nil {
		errs = append(errs, fmt.Errorf("right child close: %w", err))
	}

	if err := b.base.Close(); err != nil {
		errs = append(errs, fmt.Errorf("base iterator close: %w", err))
	}

	return errors.Join(errs...)
}

// Rewind resets both child operators and the base iterator cache.
func (b *BinaryOperator) Rewind() error {
	if err := b.leftChild.Rewind(); err != nil {
		return fmt.Errorf("failed to rewind left child: %w", err)
	}

	if err := b.rightChild.Rewind(); err != nil {
		return fmt.Errorf("failed to rewind right child: %w", err)
	}

	return b.base.Rewind()
}

// RewindRight resets only the right child, the move the nested-loop join
// makes once per outer block.
func (b *BinaryOperator) RewindRight() error {
	return b.rightChild.Rewind()
}

// HasNext checks if there are more rows available.
func (b *BinaryOperator) HasNext() (bool, error) {
	return b.base.HasNext()
}

// Next returns the next row from the operator.
func (b *BinaryOperator) Next() (*row.Row, error) {
	return b.base.Next()
}

// GetLeftChild returns the left child operator (useful for inspection/testing).
func (b *BinaryOperator) GetLeftChild() RowIterator {
	return b.leftChild
}

// GetRightChild returns the right child operator (useful for inspection/testing).
func (b *BinaryOperator) GetRightChild() RowIterator {
	return b.rightChild
}
