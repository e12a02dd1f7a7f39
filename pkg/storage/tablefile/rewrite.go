package tablefile

import (
	"encoding/csv"
	"fmt"
	"os"

	"chunkdb/pkg/row"
)

// Rewriter replaces a table's content through a temp file. Rows stream into
// <table>.csv.tmp; Commit renames it over the data file in one step, so a
// failure at any earlier point leaves the previous version fully intact.
//
// The intended shape is:
//
//	w, err := tf.BeginRewrite()
//	if err != nil { ... }
//	defer w.Abort()
//	... w.WriteRow(r) ...
//	return w.Commit()
//
// Abort after a successful Commit is a no-op, which makes the deferred call
// the guaranteed-release path for every early return.
type Rewriter struct {
	tf      *TableFile
	tmpPath string
	file    *os.File
	writer  *csv.Writer
	rows    int
	done    bool
}

// BeginRewrite opens a temp file next to the data file and returns a writer
// for the table's replacement content.
func (tf *TableFile) BeginRewrite() (*Rewriter, error) {
	tmpPath := tf.DataPath() + tmpSuffix

	f, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file for table %q: %w", tf.table, err)
	}

	return &Rewriter{
		tf:      tf,
		tmpPath: tmpPath,
		file:    f,
		writer:  csv.NewWriter(f),
	}, nil
}

// WriteRow appends one row to the replacement content.
func (w *Rewriter) WriteRow(r *row.Row) error {
	if w.done {
		return fmt.Errorf("rewrite of table %q already finished", w.tf.table)
	}
	if r.NumValues() != w.tf.schema.NumColumns() {
		return fmt.Errorf("row has %d values, table %q declares %d columns",
			r.NumValues(), w.tf.table, w.tf.schema.NumColumns())
	}

	if err := w.writer.Write(r.Strings()); err != nil {
		return fmt.Errorf("failed to write row to temp file: %w", err)
	}
	w.rows++
	return nil
}

// Rows returns how many rows have been written so far.
func (w *Rewriter) Rows() int {
	return w.rows
}

// Commit flushes the temp file and atomically swaps it in as the table's new
// content. After Commit the rewriter is spent.
func (w *Rewriter) Commit() error {
	if w.done {
		return fmt.Errorf("rewrite of table %q already finished", w.tf.table)
	}

	w.writer.Flush()
	if err := w.writer.Error(); err != nil {
		w.discard()
		return fmt.Errorf("failed to flush temp file for table %q: %w", w.tf.table, err)
	}

	if err := w.file.Sync(); err != nil {
		w.discard()
		return fmt.Errorf("failed to sync temp file for table %q: %w", w.tf.table, err)
	}

	if err := w.file.Close(); err != nil {
		w.file = nil
		w.discard()
		return fmt.Errorf("failed to close temp file for table %q: %w", w.tf.table, err)
	}
	w.file = nil

	if err := os.Rename(w.tmpPath, w.tf.DataPath()); err != nil {
		w.discard()
		return fmt.Errorf("failed to swap in new version of table %q: %w", w.tf.table, err)
	}

	w.done = true
	return nil
}

// Abort discards the temp file, leaving the table's previous version
// untouched. Safe to call multiple times and after Commit.
func (w *Rewriter) Abort() error {
	if w.done {
		return nil
	}
	w.discard()
	return nil
}

func (w *Rewriter) discard() {
	if w.file != nil {
		w.file.Close()
		w.file = nil
	}
	os.Remove(w.tmpPath)
	w.done = true
}
