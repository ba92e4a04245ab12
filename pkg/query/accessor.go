// Package query implements the seven read-only query shapes shared by
// both tree flavours (spec §4.4): nearest_one, nearest_n, within,
// within_unsorted, within_unsorted_iter, nearest_n_within and
// best_n_within. All seven are
// expressed once, generically, over the Accessor interface below, so
// pkg/mutable.Tree and pkg/immutable.Tree need not duplicate the descent
// logic — grounded on the teacher's pkg/hnsw/index.go searchLayer, which
// similarly runs one generic best-first graph walk shared by every
// exported search entry point.
package query

import (
	"kdforest/pkg/axis"
	"kdforest/pkg/metric"
)

// Accessor is the shared read surface a k-d tree must expose for the
// generic descent in descend.go to run over it. Both pkg/mutable.Tree
// and pkg/immutable.Tree satisfy it directly.
type Accessor[A axis.Coord, D axis.Coord, T any] interface {
	K() int
	Root() int64
	Traits() axis.Traits[A, D]
	// Descend reports whether node is a stem; if so, it returns the
	// split value and both children's node indices.
	Descend(node int64) (left, right int64, splitVal A, ok bool)
	// ScanLeaf returns, in matching order, the distance from query to
	// every point held in the leaf at node and that point's item.
	ScanLeaf(node int64, query []A, m metric.Metric[A, D]) (dists []D, items []T)
}
