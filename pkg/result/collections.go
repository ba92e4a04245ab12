// Package result implements the three interchangeable "distance
// collection" accumulators (spec §4.4.2) and the payload-ordered
// best-neighbor heap (spec §4.2 overview, §4.4 "best-n-within"). The
// bounded collections are grounded on katalvlaran-lvlath's
// graph/dijkstra.go priority queue (a small named slice type wrapping
// container/heap) and on the teacher's pkg/hnsw/index.go insertSorted
// helper for the small bounded case.
package result

import (
	"container/heap"
	"sort"
)

// Pair is one nearest-neighbour result: a distance and the payload found
// at that distance.
type Pair[D, T any] struct {
	Distance D
	Item     T
}

// Collection accumulates candidate (distance, item) pairs during a
// descent and exposes the pruning bound the query engine needs
// (spec §4.4's pruning-bound table references Worst()).
type Collection[D ~float32 | ~float64 | ~uint16 | ~uint32 | ~uint64, T any] interface {
	// Add offers a candidate; bounded collections may reject or evict.
	Add(dist D, item T)
	Len() int
	Cap() int // 0 means unbounded
	// Worst returns the largest distance currently held; ok is false
	// when the collection is empty.
	Worst() (dist D, ok bool)
	IntoVec() []Pair[D, T]
	IntoSortedVec() []Pair[D, T]
}

// MaxVecResultSize is the threshold below which a bounded sorted slice
// is preferred over a heap (spec §4.4.2, §9): small n favours a sorted
// array's lower memory traffic; at this size a heap's O(log n) wins.
const MaxVecResultSize = 20

// NewBounded picks a sorted-vector or heap-backed collection per the
// selection policy in spec §4.4.2.
func NewBounded[D ~float32 | ~float64 | ~uint16 | ~uint32 | ~uint64, T any](maxItems int) Collection[D, T] {
	if maxItems <= MaxVecResultSize {
		return &sortedBounded[D, T]{cap: maxItems}
	}
	return newHeapBounded[D, T](maxItems)
}

// --- unbounded ---

type unbounded[D ~float32 | ~float64 | ~uint16 | ~uint32 | ~uint64, T any] struct {
	items []Pair[D, T]
}

// NewUnbounded returns an unbounded collection (max_items == usize::MAX,
// sorted == false case of spec §4.4.2's table).
func NewUnbounded[D ~float32 | ~float64 | ~uint16 | ~uint32 | ~uint64, T any]() Collection[D, T] {
	return &unbounded[D, T]{}
}

func (c *unbounded[D, T]) Add(dist D, item T) { c.items = append(c.items, Pair[D, T]{dist, item}) }
func (c *unbounded[D, T]) Len() int           { return len(c.items) }
func (c *unbounded[D, T]) Cap() int           { return 0 }

func (c *unbounded[D, T]) Worst() (D, bool) {
	var zero D
	if len(c.items) == 0 {
		return zero, false
	}
	worst := c.items[0].Distance
	for _, p := range c.items[1:] {
		if p.Distance > worst {
			worst = p.Distance
		}
	}
	return worst, true
}

func (c *unbounded[D, T]) IntoVec() []Pair[D, T] { return c.items }

func (c *unbounded[D, T]) IntoSortedVec() []Pair[D, T] {
	out := append([]Pair[D, T](nil), c.items...)
	sort.Slice(out, func(i, j int) bool { return out[i].Distance < out[j].Distance })
	return out
}

// --- bounded sorted vector (small n) ---

type sortedBounded[D ~float32 | ~float64 | ~uint16 | ~uint32 | ~uint64, T any] struct {
	cap   int
	items []Pair[D, T] // kept ascending by Distance
}

func (c *sortedBounded[D, T]) Add(dist D, item T) {
	if len(c.items) >= c.cap && dist >= c.items[len(c.items)-1].Distance {
		return
	}
	i := sort.Search(len(c.items), func(i int) bool { return c.items[i].Distance >= dist })
	c.items = append(c.items, Pair[D, T]{})
	copy(c.items[i+1:], c.items[i:])
	c.items[i] = Pair[D, T]{dist, item}
	if len(c.items) > c.cap {
		c.items = c.items[:c.cap]
	}
}

func (c *sortedBounded[D, T]) Len() int { return len(c.items) }
func (c *sortedBounded[D, T]) Cap() int { return c.cap }

func (c *sortedBounded[D, T]) Worst() (D, bool) {
	var zero D
	if len(c.items) == 0 {
		return zero, false
	}
	return c.items[len(c.items)-1].Distance, true
}

func (c *sortedBounded[D, T]) IntoVec() []Pair[D, T] { return c.items }
func (c *sortedBounded[D, T]) IntoSortedVec() []Pair[D, T] {
	return c.items
}

// --- bounded max-heap (large n) ---

type pairHeap[D ~float32 | ~float64 | ~uint16 | ~uint32 | ~uint64, T any] []Pair[D, T]

func (h pairHeap[D, T]) Len() int            { return len(h) }
func (h pairHeap[D, T]) Less(i, j int) bool  { return h[i].Distance > h[j].Distance } // max-heap
func (h pairHeap[D, T]) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *pairHeap[D, T]) Push(x interface{}) { *h = append(*h, x.(Pair[D, T])) }
func (h *pairHeap[D, T]) Pop() interface{} {
	old := *h
	n := len(old)
	it := old[n-1]
	*h = old[:n-1]
	return it
}

type heapBounded[D ~float32 | ~float64 | ~uint16 | ~uint32 | ~uint64, T any] struct {
	cap int
	h   pairHeap[D, T]
}

func newHeapBounded[D ~float32 | ~float64 | ~uint16 | ~uint32 | ~uint64, T any](maxItems int) *heapBounded[D, T] {
	hb := &heapBounded[D, T]{cap: maxItems}
	heap.Init(&hb.h)
	return hb
}

func (c *heapBounded[D, T]) Add(dist D, item T) {
	if len(c.h) < c.cap {
		heap.Push(&c.h, Pair[D, T]{dist, item})
		return
	}
	if len(c.h) > 0 && dist < c.h[0].Distance {
		c.h[0] = Pair[D, T]{dist, item}
		heap.Fix(&c.h, 0)
	}
}

func (c *heapBounded[D, T]) Len() int { return len(c.h) }
func (c *heapBounded[D, T]) Cap() int { return c.cap }

func (c *heapBounded[D, T]) Worst() (D, bool) {
	var zero D
	if len(c.h) == 0 {
		return zero, false
	}
	return c.h[0].Distance, true
}

func (c *heapBounded[D, T]) IntoVec() []Pair[D, T] {
	return append([]Pair[D, T](nil), c.h...)
}

func (c *heapBounded[D, T]) IntoSortedVec() []Pair[D, T] {
	out := append([]Pair[D, T](nil), c.h...)
	sort.Slice(out, func(i, j int) bool { return out[i].Distance < out[j].Distance })
	return out
}
