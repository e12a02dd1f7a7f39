package sort

import (
	"chunkdb/pkg/row"
	"chunkdb/pkg/value"
)

// mergeEntry is one run's buffered head row inside the merge heap.
type mergeEntry struct {
	row    *row.Row
	key    value.Value
	runIdx int
}

// mergeHeap orders run heads by sort key. Equal keys fall back to the run
// index, and runs are numbered in input order, so the merge keeps the sort
// stable: of two equal rows, the one read earlier comes out first.
type mergeHeap struct {
	entries   []mergeEntry
	ascending bool
}

func (h *mergeHeap) Len() int { return len(h.entries) }

func (h *mergeHeap) Less(i, j int) bool {
	a, b := h.entries[i], h.entries[j]
	c := value.Compare(a.key, b.key)
	if !h.ascending {
		c = -c
	}
	if c != 0 {
		return c < 0
	}
	return a.runIdx < b.runIdx
}

func (h *mergeHeap) Swap(i, j int) {
	h.entries[i], h.entries[j] = h.entries[j], h.entries[i]
}

func (h *mergeHeap) Push(x any) {
	h.entries = append(h.entries, x.(mergeEntry))
}

func (h *mergeHeap) Pop() any {
	old := h.entries
	n := len(old)
	entry := old[n-1]
	h.entries = old[:n-1]
	return entry
}
