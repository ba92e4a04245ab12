package query

import (
	"kdforest/pkg/axis"
	"kdforest/pkg/metric"
	"kdforest/pkg/result"
)

// NearestOne returns the single closest point to query (spec §4.4
// "nearest_one"). found is false only for an empty tree.
func NearestOne[A axis.Coord, D axis.Coord, T any](tree Accessor[A, D, T], m metric.Metric[A, D], query []A) (result.Pair[D, T], bool) {
	var best result.Pair[D, T]
	found := false

	b := func() (D, bool) { return best.Distance, found }
	descend(tree, m, query, b, func(dist D, item T) {
		if !found || dist < best.Distance {
			best = result.Pair[D, T]{Distance: dist, Item: item}
			found = true
		}
	})
	return best, found
}

// NearestN returns up to n closest points to query, sorted ascending by
// distance (spec §4.4 "nearest_n").
func NearestN[A axis.Coord, D axis.Coord, T any](tree Accessor[A, D, T], m metric.Metric[A, D], query []A, n int) []result.Pair[D, T] {
	if n <= 0 {
		return nil
	}
	coll := result.NewBounded[D, T](n)
	boundedCollectionDescend(tree, m, query, coll)
	return coll.IntoSortedVec()
}

// boundedCollectionDescend runs the shared descent, pruning once coll
// is full against its current worst distance and unpruned otherwise (a
// collection with spare capacity must still accept anything, however
// far, until it is full).
func boundedCollectionDescend[A axis.Coord, D axis.Coord, T any](tree Accessor[A, D, T], m metric.Metric[A, D], query []A, coll result.Collection[D, T]) {
	b := func() (D, bool) {
		if coll.Len() < coll.Cap() {
			var zero D
			return zero, false
		}
		return coll.Worst()
	}
	descend(tree, m, query, b, func(dist D, item T) {
		coll.Add(dist, item)
	})
}
