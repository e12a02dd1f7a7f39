package iterator

import (
	"fmt"

	"chunkdb/pkg/row"
)

// ReadNextFunc is the function signature for reading the next row from an
// iterator's underlying source. It returns nil with no error when the source
// is exhausted.
type ReadNextFunc func() (*row.Row, error)

// BaseIterator implements the caching logic and state management shared by
// every iterator in the engine. It handles row lookahead, open/close state,
// and delegation to an operator-specific read function.
type BaseIterator struct {
	nextRow      *row.Row     // Cached next row for lookahead operations
	opened       bool         // Flag indicating if the iterator has been opened
	readNextFunc ReadNextFunc // Function to read the next row from the underlying source
}

// NewBaseIterator creates a new base iterator with the given readNext
// function. The iterator starts closed and must be opened before use.
func NewBaseIterator(readNextFunc ReadNextFunc) *BaseIterator {
	return &BaseIterator{
		readNextFunc: readNextFunc,
	}
}

// HasNext checks if there is a next row available without consuming it,
// caching the row read ahead so repeated calls are free.
func (it *BaseIterator) HasNext() (bool, error) {
	if !it.opened {
		return false, fmt.Errorf("iterator not opened")
	}

	if it.nextRow == nil {
		var err error
		it.nextRow, err = it.readNextFunc()
		if err != nil {
			return false, err
		}
	}
	return it.nextRow != nil, nil
}

// Next returns the next row and advances the position. A row cached by
// HasNext() is returned and the cache cleared; otherwise the source is read
// directly.
func (it *BaseIterator) Next() (*row.Row, error) {
	if !it.opened {
		return nil, fmt.Errorf("iterator not opened")
	}

	if it.nextRow == nil {
		var err error
		it.nextRow, err = it.readNextFunc()
		if err != nil {
			return nil, err
		}
		if it.nextRow == nil {
			return nil, fmt.Errorf("no more rows")
		}
	}

	result := it.nextRow
	it.nextRow = nil
	return result, nil
}

// Rewind clears the lookahead cache. Owning operators reset their own source
// position before calling this.
func (it *BaseIterator) Rewind() error {
	if !it.opened {
		return fmt.Errorf("iterator not opened")
	}
	it.nextRow = nil
	return nil
}

// Close clears cached state and marks the iterator closed.
func (it *BaseIterator) Close() error {
	it.nextRow = nil
	it.opened = false
	return nil
}

// MarkOpened marks the iterator as opened and ready for use.
func (it *BaseIterator) MarkOpened() {
	it.opened = true
	it.nextRow = nil
}

// IsOpened reports whether MarkOpened has been called without a later Close.
func (it *BaseIterator) IsOpened() bool {
	return it.opened
}
