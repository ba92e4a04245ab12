package query

import (
	"kdforest/pkg/axis"
	"kdforest/pkg/metric"
	"kdforest/pkg/result"
)

// Within returns every point within radius of query, sorted ascending
// by distance (spec §4.4 "within").
func Within[A axis.Coord, D axis.Coord, T any](tree Accessor[A, D, T], m metric.Metric[A, D], query []A, radius D) []result.Pair[D, T] {
	coll := result.NewUnbounded[D, T]()
	radiusDescend(tree, m, query, radius, coll)
	return coll.IntoSortedVec()
}

// WithinUnsorted is like Within but returns results in whatever order
// the descent visits them, avoiding the final sort (spec §4.4
// "within_unsorted").
func WithinUnsorted[A axis.Coord, D axis.Coord, T any](tree Accessor[A, D, T], m metric.Metric[A, D], query []A, radius D) []result.Pair[D, T] {
	coll := result.NewUnbounded[D, T]()
	radiusDescend(tree, m, query, radius, coll)
	return coll.IntoVec()
}

// radiusDescend runs the shared descent with a constant pruning bound of
// radius, admitting only points strictly inside it.
func radiusDescend[A axis.Coord, D axis.Coord, T any](tree Accessor[A, D, T], m metric.Metric[A, D], query []A, radius D, coll result.Collection[D, T]) {
	b := func() (D, bool) { return radius, true }
	descend(tree, m, query, b, func(dist D, item T) {
		if dist < radius {
			coll.Add(dist, item)
		}
	})
}

// NearestNWithin returns up to n closest points within radius of query,
// sorted ascending by distance (spec §4.4 "nearest_n_within"): both the
// count cap and the radius cap apply simultaneously.
func NearestNWithin[A axis.Coord, D axis.Coord, T any](tree Accessor[A, D, T], m metric.Metric[A, D], query []A, n int, radius D) []result.Pair[D, T] {
	if n <= 0 {
		return nil
	}
	coll := result.NewBounded[D, T](n)
	b := func() (D, bool) {
		if coll.Len() < coll.Cap() {
			return radius, true
		}
		worst, _ := coll.Worst()
		if worst < radius {
			return worst, true
		}
		return radius, true
	}
	descend(tree, m, query, b, func(dist D, item T) {
		if dist < radius {
			coll.Add(dist, item)
		}
	})
	return coll.IntoSortedVec()
}
