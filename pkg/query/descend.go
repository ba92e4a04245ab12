package query

import (
	"kdforest/pkg/axis"
	"kdforest/pkg/metric"
)

// visitor is called once per point reached during the descent, with its
// distance to query and its item.
type visitor[D axis.Coord, T any] func(dist D, item T)

// bound reports the descent's current pruning threshold and whether it
// is active (false means unbounded: every subtree must be visited). It
// is queried at every stem so callers whose threshold tightens as
// results accumulate (nearest_n, nearest_one) prune more aggressively
// over the course of a single call, while callers with a fixed radius
// (within, best_n_within) simply return a constant bound.
type bound[D axis.Coord] func() (worst D, ok bool)

// descend runs the generic incremental-bound k-d tree search described
// by spec §4.1/§4.4: off holds, per axis, the already-crossed boundary
// offset contributing to the running region distance rd; at a stem,
// recursing into the near child leaves both unchanged, while recursing
// into the far child updates off[dim] to the distance from query to the
// split plane and folds that into rd via metric.RDUpdate.
func descend[A axis.Coord, D axis.Coord, T any](
	tree Accessor[A, D, T],
	m metric.Metric[A, D],
	query []A,
	b bound[D],
	visit visitor[D, T],
) {
	k := tree.K()
	off := make([]A, k)
	traits := tree.Traits()
	var zero D

	var walk func(node int64, rd D, depth int)
	walk = func(node int64, rd D, depth int) {
		if worst, ok := b(); ok && rd > worst {
			return
		}
		left, right, splitVal, isStem := tree.Descend(node)
		if !isStem {
			dists, items := tree.ScanLeaf(node, query, m)
			for i, d := range dists {
				visit(d, items[i])
			}
			return
		}

		dim := depth % k
		near, far := left, right
		if query[dim] >= splitVal {
			near, far = right, left
		}
		walk(near, rd, depth+1)

		oldOff := off[dim]
		newOff := traits.SaturatingDist(query[dim], splitVal)
		newRD := metric.RDUpdate(traits, m, rd, oldOff, newOff)
		if worst, ok := b(); ok && newRD > worst {
			return
		}
		off[dim] = newOff
		walk(far, newRD, depth+1)
		off[dim] = oldOff
	}
	walk(tree.Root(), zero, 0)
}
