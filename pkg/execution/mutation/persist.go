package mutation

import (
	"chunkdb/pkg/iterator"
	"chunkdb/pkg/storage/tablefile"
)

// Persist replaces the table's content with the rows produced by source,
// using the same temp-then-rename discipline as update and delete. Sorted
// output is written back through here so a later scan observes the new
// order.
func Persist(tf *tablefile.TableFile, source iterator.RowSource) (int, error) {
	w, err := tf.BeginRewrite()
	if err != nil {
		return 0, err
	}
	defer w.Abort()

	if err := iterator.ForEach(source, w.WriteRow); err != nil {
		return 0, err
	}

	if err := w.Commit(); err != nil {
		return 0, err
	}
	return w.Rows(), nil
}
