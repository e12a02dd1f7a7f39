package sort

import (
	"container/heap"
	"fmt"
	"os"
	"slices"

	"golang.org/x/sync/errgroup"

	"chunkdb/pkg/execution/scan"
	"chunkdb/pkg/iterator"
	"chunkdb/pkg/logging"
	"chunkdb/pkg/row"
	"chunkdb/pkg/value"
)

// Sort orders its child's rows by one column without ever holding more than
// one chunk of rows in memory.
//
// Implementation:
//   - Partition phase: drain the child one chunk at a time, sort each chunk
//     in memory, spill it to a run file
//   - Merge phase: stream all runs back through a k-way merge heap that
//     buffers a single row per run
//   - Inputs that fit in one chunk are sorted and served from memory, no
//     disk involved
//
// The sort is stable: equal keys come out in input order, because chunks
// preserve input order, the per-chunk sort is stable, and the merge breaks
// ties by run number.
type Sort struct {
	base      *iterator.BaseIterator
	child     iterator.RowIterator
	column    string
	sortIndex int
	ascending bool
	chunkCap  int

	materialized bool
	inMemory     *iterator.SliceIterator[*row.Row]
	tempDir      string
	runPaths     []string
	readers      []*runReader
	heap         *mergeHeap
}

// NewSort creates a sort of the child's output by the named column. The
// column must exist in the child's schema; chunkCap bounds how many rows are
// held in memory at once.
func NewSort(child iterator.RowIterator, column string, ascending bool, chunkCap int) (*Sort, error) {
	if child == nil {
		return nil, fmt.Errorf("child operator cannot be nil")
	}
	if chunkCap < 1 {
		return nil, fmt.Errorf("chunk capacity must be at least 1, got %d", chunkCap)
	}

	childSchema := child.GetSchema()
	if childSchema == nil {
		return nil, fmt.Errorf("child operator has nil schema")
	}
	sortIndex, err := childSchema.ColumnIndex(column)
	if err != nil {
		return nil, err
	}

	s := &Sort{
		child:     child,
		column:    column,
		sortIndex: sortIndex,
		ascending: ascending,
		chunkCap:  chunkCap,
	}
	s.base = iterator.NewBaseIterator(s.readNext)
	return s, nil
}

// Open opens the child. The input is not drained until the first row is
// requested.
func (s *Sort) Open() error {
	if err := s.child.Open(); err != nil {
		return fmt.Errorf("failed to open child operator: %w", err)
	}
	s.materialized = false
	s.base.MarkOpened()
	return nil
}

// Close releases run files and readers and closes the child.
func (s *Sort) Close() error {
	s.closeReaders()
	if err := s.cleanupRuns(); err != nil {
		logging.WithError(err).Warn("failed to remove sort spill files")
	}
	s.inMemory = nil
	s.heap = nil
	s.materialized = false

	if err := s.child.Close(); err != nil {
		return fmt.Errorf("failed to close child operator: %w", err)
	}
	return s.base.Close()
}

// GetSchema returns the child's schema; sorting changes only row order.
func (s *Sort) GetSchema() *row.Schema {
	return s.child.GetSchema()
}

// HasNext checks if there are more sorted rows available.
func (s *Sort) HasNext() (bool, error) {
	return s.base.HasNext()
}

// Next returns the next row in sort order.
func (s *Sort) Next() (*row.Row, error) {
	return s.base.Next()
}

// Rewind restarts the sorted stream from the first row. The input is not
// re-read and not re-sorted; in-memory results reset their position and
// spilled runs are reopened.
func (s *Sort) Rewind() error {
	if !s.materialized {
		return s.base.Rewind()
	}

	if s.inMemory != nil {
		if err := s.inMemory.Rewind(); err != nil {
			return err
		}
		return s.base.Rewind()
	}

	s.closeReaders()
	if err := s.openReaders(); err != nil {
		return fmt.Errorf("failed to reopen sorted runs: %w", err)
	}
	return s.base.Rewind()
}

// readNext drives both phases: the first call materializes the sorted
// output, every call streams one row from it.
func (s *Sort) readNext() (*row.Row, error) {
	if !s.materialized {
		if err := s.materialize(); err != nil {
			return nil, err
		}
	}

	if s.inMemory != nil {
		if !s.inMemory.HasNext() {
			return nil, nil
		}
		return s.inMemory.Next()
	}

	if s.heap.Len() == 0 {
		return nil, nil
	}

	entry := heap.Pop(s.heap).(mergeEntry)
	if err := s.pushHead(entry.runIdx); err != nil {
		return nil, err
	}
	return entry.row, nil
}

// materialize drains the child chunk by chunk. A single chunk stays in
// memory; anything larger is spilled to sorted runs and merged.
func (s *Sort) materialize() error {
	reader, err := scan.NewChunkReader(s.child, s.chunkCap)
	if err != nil {
		return err
	}

	first, err := reader.NextChunk()
	if err != nil {
		return err
	}
	if first == nil {
		s.inMemory = iterator.NewSliceIterator[*row.Row](nil)
		s.materialized = true
		return nil
	}
	s.sortChunk(first.Rows())

	second, err := reader.NextChunk()
	if err != nil {
		return err
	}
	if second == nil {
		s.inMemory = iterator.NewSliceIterator(first.Rows())
		s.materialized = true
		return nil
	}

	if err := s.spillAll(first, second, reader); err != nil {
		s.cleanupRuns()
		return err
	}
	if err := s.openReaders(); err != nil {
		s.cleanupRuns()
		return err
	}
	s.materialized = true
	return nil
}

// spillAll writes the two chunks already read plus every remaining chunk of
// the child as sorted run files.
func (s *Sort) spillAll(first, second *row.Chunk, reader *scan.ChunkReader) error {
	dir, err := os.MkdirTemp("", "chunkdb-sort-")
	if err != nil {
		return fmt.Errorf("failed to create spill directory: %w", err)
	}
	s.tempDir = dir

	if err := s.spillChunk(first); err != nil {
		return err
	}
	s.sortChunk(second.Rows())
	if err := s.spillChunk(second); err != nil {
		return err
	}

	for {
		chunk, err := reader.NextChunk()
		if err != nil {
			return err
		}
		if chunk == nil {
			break
		}
		s.sortChunk(chunk.Rows())
		if err := s.spillChunk(chunk); err != nil {
			return err
		}
	}

	logging.WithComponent("sort").Debug("partition phase complete",
		"runs", len(s.runPaths), "chunk_cap", s.chunkCap)
	return nil
}

func (s *Sort) spillChunk(chunk *row.Chunk) error {
	path, err := writeRun(s.tempDir, len(s.runPaths), chunk.Rows())
	if err != nil {
		return err
	}
	s.runPaths = append(s.runPaths, path)
	return nil
}

// sortChunk orders one chunk in place. Equal keys keep their input order.
// The key index is bounds-checked at construction, so value access here
// cannot fail.
func (s *Sort) sortChunk(rows []*row.Row) {
	slices.SortStableFunc(rows, func(a, b *row.Row) int {
		av, _ := a.GetValue(s.sortIndex)
		bv, _ := b.GetValue(s.sortIndex)
		c := value.Compare(av, bv)
		if !s.ascending {
			c = -c
		}
		return c
	})
}

// openReaders opens every run and seeds the merge heap with each run's
// first row.
func (s *Sort) openReaders() error {
	schema := s.child.GetSchema()
	s.readers = make([]*runReader, len(s.runPaths))
	for i, path := range s.runPaths {
		rr, err := openRun(path, schema)
		if err != nil {
			s.closeReaders()
			return err
		}
		s.readers[i] = rr
	}

	s.heap = &mergeHeap{ascending: s.ascending}
	heap.Init(s.heap)
	for i := range s.readers {
		if err := s.pushHead(i); err != nil {
			s.closeReaders()
			return err
		}
	}
	return nil
}

// pushHead reads the next row of run runIdx and pushes it onto the heap.
// An exhausted run pushes nothing.
func (s *Sort) pushHead(runIdx int) error {
	r, err := s.readers[runIdx].next()
	if err != nil {
		return err
	}
	if r == nil {
		return nil
	}

	key, err := r.GetValue(s.sortIndex)
	if err != nil {
		return err
	}
	heap.Push(s.heap, mergeEntry{row: r, key: key, runIdx: runIdx})
	return nil
}

func (s *Sort) closeReaders() {
	for _, rr := range s.readers {
		if rr != nil {
			rr.close()
		}
	}
	s.readers = nil
}

// cleanupRuns removes all spill files in parallel, then the directory
// holding them.
func (s *Sort) cleanupRuns() error {
	if s.tempDir == "" {
		return nil
	}

	var g errgroup.Group
	for _, path := range s.runPaths {
		g.Go(func() error {
			return os.Remove(path)
		})
	}
	err := g.Wait()

	if rmErr := os.Remove(s.tempDir); rmErr != nil && err == nil {
		err = rmErr
	}
	s.runPaths = nil
	s.tempDir = ""
	return err
}
