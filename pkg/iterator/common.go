package iterator

import "chunkdb/pkg/row"

// Iterate encapsulates the common HasNext/Next loop over any row source,
// skipping nil rows automatically. The processFunc controls the flow:
// return (false, nil) to stop early, (true, nil) to continue, or an error to
// stop with that error.
func Iterate(iter RowSource, processFunc func(*row.Row) (continueLooping bool, err error)) error {
	for {
		hasNext, err := iter.HasNext()
		if err != nil {
			return err
		}
		if !hasNext {
			break
		}

		r, err := iter.Next()
		if err != nil {
			return err
		}
		if r == nil {
			continue
		}

		shouldContinue, err := processFunc(r)
		if err != nil {
			return err
		}
		if !shouldContinue {
			break
		}
	}

	return nil
}

// ForEach applies a processing function to every row in the iterator,
// stopping early if processFunc returns an error. The iterator must be
// opened before calling.
func ForEach(iter RowSource, processFunc func(*row.Row) error) error {
	return Iterate(iter, func(r *row.Row) (bool, error) {
		err := processFunc(r)
		return true, err
	})
}

// Collect drains the iterator into a slice. Callers use it only where the
// result is known to be bounded; operators themselves stream.
func Collect(iter RowSource) ([]*row.Row, error) {
	var results []*row.Row

	err := Iterate(iter, func(r *row.Row) (bool, error) {
		results = append(results, r)
		return true, nil
	})

	return results, err
}

// Count consumes the iterator and returns how many rows it produced.
func Count(iter RowSource) (int, error) {
	count := 0

	err := Iterate(iter, func(*row.Row) (bool, error) {
		count++
		return true, nil
	})

	return count, err
}

// Reduce accumulates a value by applying a function to each row. The
// accumulator receives the current value and the next row.
func Reduce[T any](iter RowSource, initial T, accumulator func(T, *row.Row) (T, error)) (T, error) {
	result := initial

	err := Iterate(iter, func(r *row.Row) (bool, error) {
		var err error
		result, err = accumulator(result, r)
		return true, err
	})

	return result, err
}
