package tablefile

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"chunkdb/pkg/dberr"
	"chunkdb/pkg/row"
)

// File extensions for the two files that make up a table on disk.
const (
	DataExt   = ".csv"
	SchemaExt = ".schema"

	tmpSuffix = ".tmp"
)

// DataPath returns where a table's row data lives under dir.
func DataPath(dir, table string) string {
	return filepath.Join(dir, table+DataExt)
}

// SchemaPath returns where a table's schema sidecar lives under dir.
func SchemaPath(dir, table string) string {
	return filepath.Join(dir, table+SchemaExt)
}

// TableFile represents one table's persisted state: a row-oriented CSV data
// file plus a schema sidecar holding the ordered column list. It exposes the
// three primitives the engine consumes: stream rows in order (OpenCursor),
// append a row, and rewrite the whole table through a temp file.
type TableFile struct {
	table  string
	dir    string
	schema *row.Schema
}

// Create materializes a brand new table: it writes the schema sidecar and an
// empty data file. It fails if the table already exists on disk.
func Create(dir, table string, columns []string) (*TableFile, error) {
	schema, err := row.NewSchema(table, columns)
	if err != nil {
		return nil, err
	}

	tf := &TableFile{table: table, dir: dir, schema: schema}
	if _, err := os.Stat(tf.SchemaPath()); err == nil {
		return nil, fmt.Errorf("table %q already exists", table)
	}

	if err := writeSchemaFile(tf.SchemaPath(), columns); err != nil {
		return nil, fmt.Errorf("failed to write schema for table %q: %w", table, err)
	}

	f, err := os.OpenFile(tf.DataPath(), os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to create data file for table %q: %w", table, err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close data file for table %q: %w", table, err)
	}

	return tf, nil
}

// Open loads an existing table's schema sidecar. A table without a sidecar
// does not exist as far as the engine is concerned.
func Open(dir, table string) (*TableFile, error) {
	tf := &TableFile{table: table, dir: dir}

	columns, err := readSchemaFile(tf.SchemaPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, dberr.NewNotFound(table)
		}
		return nil, fmt.Errorf("failed to read schema for table %q: %w", table, err)
	}

	schema, err := row.NewSchema(table, columns)
	if err != nil {
		return nil, fmt.Errorf("invalid schema on disk for table %q: %w", table, err)
	}

	tf.schema = schema
	return tf, nil
}

// Table returns the table name.
func (tf *TableFile) Table() string {
	return tf.table
}

// Schema returns the table's column layout.
func (tf *TableFile) Schema() *row.Schema {
	return tf.schema
}

// DataPath returns the location of the row data file.
func (tf *TableFile) DataPath() string {
	return DataPath(tf.dir, tf.table)
}

// SchemaPath returns the location of the schema sidecar.
func (tf *TableFile) SchemaPath() string {
	return SchemaPath(tf.dir, tf.table)
}

// Remove deletes both files of the table from disk.
func (tf *TableFile) Remove() error {
	if err := os.Remove(tf.DataPath()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove data file for table %q: %w", tf.table, err)
	}
	if err := os.Remove(tf.SchemaPath()); err != nil {
		return fmt.Errorf("failed to remove schema for table %q: %w", tf.table, err)
	}
	return nil
}

// AppendRow adds one row to the end of the data file.
func (tf *TableFile) AppendRow(r *row.Row) error {
	if r.NumValues() != tf.schema.NumColumns() {
		return fmt.Errorf("row has %d values, table %q declares %d columns",
			r.NumValues(), tf.table, tf.schema.NumColumns())
	}

	f, err := os.OpenFile(tf.DataPath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open data file for append: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(r.Strings()); err != nil {
		f.Close()
		return fmt.Errorf("failed to append row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("failed to flush appended row: %w", err)
	}

	return f.Close()
}

// OpenCursor starts a streaming read over the data file in on-disk order.
// Multiple cursors over the same table may coexist; none mutates storage.
func (tf *TableFile) OpenCursor() (*Cursor, error) {
	c := NewCursor(tf)
	if err := c.Open(); err != nil {
		return nil, err
	}
	return c, nil
}

func writeSchemaFile(path string, columns []string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if err := w.Write(columns); err != nil {
		f.Close()
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

func readSchemaFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	columns, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("schema sidecar %s is unreadable: %w", path, err)
	}
	return columns, nil
}
