package query

import (
	"kdforest/pkg/axis"
	"kdforest/pkg/metric"
	"kdforest/pkg/result"
)

// BestPayload is the constraint on item types usable with BestNWithin:
// admission once the heap is full compares payload values directly, so
// the item type itself must be ordered (spec §4.4 "best_n_within").
type BestPayload interface {
	~int | ~int32 | ~int64 | ~uint | ~uint32 | ~uint64 | ~string
}

// BestNWithin returns up to n points within radius of query, keeping
// whichever n have the smallest payload values once more than n
// candidates qualify (spec §4.4 "best_n_within", §9 "Best neighbor").
// Unlike NearestNWithin, admission to a full heap is decided by payload
// comparison, not distance, so the pruning bound stays fixed at radius
// for the whole descent — a full heap does not mean "no closer point can
// help" the way it does for nearest_n_within.
func BestNWithin[A axis.Coord, D axis.Coord, T BestPayload](tree Accessor[A, D, T], m metric.Metric[A, D], query []A, n int, radius D) []result.Pair[D, T] {
	if n <= 0 {
		return nil
	}
	heap := result.NewBestHeap[D, T](n)
	b := func() (D, bool) { return radius, true }
	descend(tree, m, query, b, func(dist D, item T) {
		if dist <= radius {
			heap.Add(dist, item)
		}
	})
	return heap.IntoSlice()
}
