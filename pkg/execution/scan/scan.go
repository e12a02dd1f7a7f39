package scan

import (
	"fmt"

	"chunkdb/pkg/iterator"
	"chunkdb/pkg/row"
	"chunkdb/pkg/storage/tablefile"
)

// TableScan reads every row of a table in on-disk order. It is the leaf of
// every query pipeline and the only operator that touches storage directly.
//
// TableScan holds a single open cursor, so memory stays constant no matter
// how large the table is. Rewind seeks the cursor back to the start of the
// data file, which is what makes repeated inner-side scans in joins cheap.
type TableScan struct {
	base   *iterator.BaseIterator
	tf     *tablefile.TableFile
	cursor *tablefile.Cursor
}

// NewTableScan creates a scan over the given table file.
func NewTableScan(tf *tablefile.TableFile) (*TableScan, error) {
	if tf == nil {
		return nil, fmt.Errorf("table file cannot be nil")
	}

	ts := &TableScan{tf: tf}
	ts.base = iterator.NewBaseIterator(ts.readNext)
	return ts, nil
}

// Open positions a cursor at the first row of the data file.
func (ts *TableScan) Open() error {
	cursor, err := ts.tf.OpenCursor()
	if err != nil {
		return fmt.Errorf("failed to open cursor for table %q: %w", ts.tf.Table(), err)
	}
	ts.cursor = cursor
	ts.base.MarkOpened()
	return nil
}

// Close releases the underlying cursor.
func (ts *TableScan) Close() error {
	if ts.cursor != nil {
		if err := ts.cursor.Close(); err != nil {
			return err
		}
		ts.cursor = nil
	}
	return ts.base.Close()
}

// GetSchema returns the scanned table's column layout.
func (ts *TableScan) GetSchema() *row.Schema {
	return ts.tf.Schema()
}

// HasNext checks if there are more rows available in the scan.
func (ts *TableScan) HasNext() (bool, error) {
	return ts.base.HasNext()
}

// Next retrieves the next row from the scan.
func (ts *TableScan) Next() (*row.Row, error) {
	return ts.base.Next()
}

// Rewind seeks back to the first row of the data file.
func (ts *TableScan) Rewind() error {
	if ts.cursor == nil {
		return fmt.Errorf("scan not opened")
	}
	if err := ts.cursor.Rewind(); err != nil {
		return fmt.Errorf("failed to rewind table %q: %w", ts.tf.Table(), err)
	}
	return ts.base.Rewind()
}

func (ts *TableScan) readNext() (*row.Row, error) {
	if ts.cursor == nil {
		return nil, fmt.Errorf("scan not opened")
	}

	hasNext, err := ts.cursor.HasNext()
	if err != nil {
		return nil, err
	}
	if !hasNext {
		return nil, nil
	}
	return ts.cursor.Next()
}
