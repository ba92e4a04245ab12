package result

import "container/heap"

// BestHeap is the best_n_within accumulator: a max-heap ordered by
// payload value (not distance), capped at n (spec §4.4 "best-n-within",
// §9 "Best neighbor"). Distance is carried along only to be reported; it
// never participates in ordering once a candidate has passed the radius
// admission check.
type BestHeap[D any, T ~int | ~int32 | ~int64 | ~uint | ~uint32 | ~uint64 | ~string] struct {
	cap int
	h   bestPQ[D, T]
}

// NewBestHeap creates an empty best-neighbor heap capped at n entries.
func NewBestHeap[D any, T ~int | ~int32 | ~int64 | ~uint | ~uint32 | ~uint64 | ~string](n int) *BestHeap[D, T] {
	b := &BestHeap[D, T]{cap: n}
	heap.Init(&b.h)
	return b
}

// Add admits a candidate that has already passed the radius check
// (dist <= radius). When the heap is full, a new candidate replaces the
// current worst (largest-payload) entry only if its payload is strictly
// smaller, regardless of distance.
func (b *BestHeap[D, T]) Add(dist D, item T) {
	if len(b.h) < b.cap {
		heap.Push(&b.h, Pair[D, T]{dist, item})
		return
	}
	if b.cap == 0 {
		return
	}
	if len(b.h) > 0 && item < b.h[0].Item {
		b.h[0] = Pair[D, T]{dist, item}
		heap.Fix(&b.h, 0)
	}
}

// Len returns the number of held entries.
func (b *BestHeap[D, T]) Len() int { return len(b.h) }

// WorstPayload returns the current largest payload held, for callers
// that want to short-circuit further admission (not required by the
// spec's pruning-bound table, which keeps the radius constant for this
// query shape, but convenient for callers with a cheap pre-filter).
func (b *BestHeap[D, T]) WorstPayload() (T, bool) {
	var zero T
	if len(b.h) == 0 {
		return zero, false
	}
	return b.h[0].Item, true
}

// IntoSlice drains the heap in heap order (the spec leaves
// best_n_within's iteration order unspecified: "heap-order (unspecified)").
func (b *BestHeap[D, T]) IntoSlice() []Pair[D, T] {
	return append([]Pair[D, T](nil), b.h...)
}

type bestPQ[D any, T ~int | ~int32 | ~int64 | ~uint | ~uint32 | ~uint64 | ~string] []Pair[D, T]

func (h bestPQ[D, T]) Len() int           { return len(h) }
func (h bestPQ[D, T]) Less(i, j int) bool { return h[i].Item > h[j].Item } // max-heap on payload
func (h bestPQ[D, T]) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *bestPQ[D, T]) Push(x interface{}) { *h = append(*h, x.(Pair[D, T])) }
func (h *bestPQ[D, T]) Pop() interface{} {
	old := *h
	n := len(old)
	it := old[n-1]
	*h = old[:n-1]
	return it
}
