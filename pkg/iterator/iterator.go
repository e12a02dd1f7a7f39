package iterator

import "chunkdb/pkg/row"

// RowIterator defines the contract for all row iterators in the execution
// engine. Every operator (scan, filter, project, sort, join, aggregate)
// implements it, so pipelines compose freely.
type RowIterator interface {
	RowSource // Embeds HasNext() and Next()

	// Open initializes the iterator and prepares it for row retrieval.
	// This method must be called before any other iterator operations.
	Open() error

	// Rewind resets the iterator position to the beginning of the sequence.
	// After rewinding, the next call to Next() returns the first row again.
	// The iterator must be opened before calling this method.
	Rewind() error

	// Close releases all resources associated with the iterator and marks it
	// as closed. Calling Close() on an already closed iterator is safe.
	Close() error

	// GetSchema returns the schema of rows produced by this iterator. It can
	// be called regardless of iterator state.
	GetSchema() *row.Schema
}

// RowSource is the minimal interface shared by everything that yields rows.
// It exists so generic helpers work with both full iterators and lighter
// sources such as spill-file readers.
type RowSource interface {
	// HasNext checks if there are more rows available without consuming them.
	HasNext() (bool, error)

	// Next retrieves and returns the next row, advancing the position.
	Next() (*row.Row, error)
}
