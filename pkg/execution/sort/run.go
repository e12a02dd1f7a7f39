package sort

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"chunkdb/pkg/row"
)

// A run is one sorted chunk spilled to disk as a CSV file. Runs are written
// once during the partition phase and streamed back during the merge phase,
// one buffered row at a time.

// writeRun spills a sorted batch of rows to run file number idx under dir.
func writeRun(dir string, idx int, rows []*row.Row) (string, error) {
	path := filepath.Join(dir, fmt.Sprintf("run-%04d.csv", idx))

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create run file %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	for _, r := range rows {
		if err := w.Write(r.Strings()); err != nil {
			f.Close()
			return "", fmt.Errorf("failed to write run file %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to flush run file %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close run file %s: %w", path, err)
	}
	return path, nil
}

// runReader streams one spilled run back in order.
type runReader struct {
	path   string
	schema *row.Schema
	file   *os.File
	csv    *csv.Reader
}

func openRun(path string, schema *row.Schema) (*runReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open run file %s: %w", path, err)
	}

	r := csv.NewReader(f)
	r.FieldsPerRecord = schema.NumColumns()
	r.ReuseRecord = false

	return &runReader{
		path:   path,
		schema: schema,
		file:   f,
		csv:    r,
	}, nil
}

// next returns the following row of the run, or nil when the run is
// exhausted.
func (rr *runReader) next() (*row.Row, error) {
	record, err := rr.csv.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read run file %s: %w", rr.path, err)
	}
	return row.FromStrings(rr.schema, record)
}

func (rr *runReader) close() error {
	if rr.file == nil {
		return nil
	}
	err := rr.file.Close()
	rr.file = nil
	return err
}
