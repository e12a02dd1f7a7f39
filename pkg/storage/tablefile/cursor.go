package tablefile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"chunkdb/pkg/dberr"
	"chunkdb/pkg/row"
)

// Cursor streams one table's rows in on-disk order. It enforces that every
// stored record matches the schema's column count, reporting the offending
// row number otherwise. Rewind seeks back to the start of the file, so a
// restart costs nothing compared to a full pass.
type Cursor struct {
	tf      *TableFile
	file    *os.File
	reader  *csv.Reader
	nextRow *row.Row // Lookahead cache for HasNext
	offset  int      // Number of rows consumed so far
	isOpen  bool
}

// NewCursor creates a closed cursor over the table. Open must be called
// before use; TableFile.OpenCursor does both.
func NewCursor(tf *TableFile) *Cursor {
	return &Cursor{tf: tf}
}

// Open opens the data file and positions the cursor before the first row.
func (c *Cursor) Open() error {
	if c.isOpen {
		return nil
	}

	f, err := os.Open(c.tf.DataPath())
	if err != nil {
		if os.IsNotExist(err) {
			return dberr.NewNotFound(c.tf.table)
		}
		return fmt.Errorf("failed to open data file for table %q: %w", c.tf.table, err)
	}

	c.file = f
	c.reader = newRecordReader(f)
	c.nextRow = nil
	c.offset = 0
	c.isOpen = true
	return nil
}

// HasNext checks whether another row is available without consuming it.
func (c *Cursor) HasNext() (bool, error) {
	if !c.isOpen {
		return false, fmt.Errorf("cursor not opened")
	}

	if c.nextRow == nil {
		r, err := c.readRow()
		if err != nil {
			return false, err
		}
		c.nextRow = r
	}
	return c.nextRow != nil, nil
}

// Next returns the next row and advances the cursor.
func (c *Cursor) Next() (*row.Row, error) {
	if !c.isOpen {
		return nil, fmt.Errorf("cursor not opened")
	}

	if c.nextRow == nil {
		r, err := c.readRow()
		if err != nil {
			return nil, err
		}
		if r == nil {
			return nil, fmt.Errorf("no more rows in table %q", c.tf.table)
		}
		c.nextRow = r
	}

	r := c.nextRow
	c.nextRow = nil
	return r, nil
}

// Offset returns how many rows have been consumed, which is the position of
// the next unread row in the table.
func (c *Cursor) Offset() int {
	return c.offset
}

// Rewind repositions the cursor before the first row.
func (c *Cursor) Rewind() error {
	if !c.isOpen {
		return fmt.Errorf("cursor not opened")
	}

	if _, err := c.file.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("failed to rewind table %q: %w", c.tf.table, err)
	}

	c.reader = newRecordReader(c.file)
	c.nextRow = nil
	c.offset = 0
	return nil
}

// Close releases the underlying file. It is safe to call more than once.
func (c *Cursor) Close() error {
	if !c.isOpen {
		return nil
	}
	c.isOpen = false
	c.nextRow = nil
	c.reader = nil

	f := c.file
	c.file = nil
	return f.Close()
}

// readRow pulls one record off the file, returning nil at end of data.
func (c *Cursor) readRow() (*row.Row, error) {
	record, err := c.reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read row %d of table %q: %w", c.offset, c.tf.table, err)
	}

	want := c.tf.schema.NumColumns()
	if len(record) != want {
		return nil, dberr.NewCorruptRow(c.tf.table, c.offset, len(record), want)
	}

	r, err := row.FromStrings(c.tf.schema, record)
	if err != nil {
		return nil, err
	}

	c.offset++
	return r, nil
}

// newRecordReader builds a CSV reader that leaves arity checking to the
// cursor, so a short or long record surfaces as a corrupt-row error with the
// row number instead of a generic parse failure.
func newRecordReader(f *os.File) *csv.Reader {
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	return r
}
