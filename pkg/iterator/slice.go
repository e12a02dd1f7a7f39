package iterator

import "fmt"

// SliceIterator provides a generic iterator over a slice of any type T,
// encapsulating the slice+index pattern operators use after materializing a
// bounded batch (a sorted chunk, a join match buffer).
//
// It has no lifecycle: it is ready to use after construction and cheap
// enough to recreate instead of resetting. Not thread-safe.
type SliceIterator[T any] struct {
	data         []T // The underlying slice to iterate over
	currentIndex int // Current position in the slice
}

// NewSliceIterator creates a new iterator over the given slice, positioned at
// the beginning.
func NewSliceIterator[T any](data []T) *SliceIterator[T] {
	return &SliceIterator[T]{
		data:         data,
		currentIndex: 0,
	}
}

// HasNext checks if there is at least one more element to consume.
func (it *SliceIterator[T]) HasNext() bool {
	return it.currentIndex < len(it.data)
}

// Next returns the next element and advances the position.
func (it *SliceIterator[T]) Next() (T, error) {
	var zero T

	if it.currentIndex >= len(it.data) {
		return zero, fmt.Errorf("no more elements in slice iterator")
	}

	element := it.data[it.currentIndex]
	it.currentIndex++
	return element, nil
}

// Peek returns the next element without advancing the position.
func (it *SliceIterator[T]) Peek() (T, error) {
	var zero T

	if it.currentIndex >= len(it.data) {
		return zero, fmt.Errorf("no more elements in slice iterator")
	}

	return it.data[it.currentIndex], nil
}

// Rewind resets the read position to the beginning of the slice.
func (it *SliceIterator[T]) Rewind() error {
	it.currentIndex = 0
	return nil
}

// Len returns the total number of elements in the slice.
func (it *SliceIterator[T]) Len() int {
	return len(it.data)
}

// Remaining returns the number of elements left to iterate.
func (it *SliceIterator[T]) Remaining() int {
	if it.currentIndex >= len(it.data) {
		return 0
	}
	return len(it.data) - it.currentIndex
}
