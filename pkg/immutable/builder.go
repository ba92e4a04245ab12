package immutable

import (
	"kdforest/pkg/axis"
	"kdforest/pkg/leaf"
)

// BuildFromSlice bulk-builds a balanced immutable tree over points/items
// (spec §4.3 "Immutable tree construction"). points and items are
// consumed (reordered in place); callers that need the original order
// preserved elsewhere should pass copies.
func BuildFromSlice[A axis.Coord, D axis.Coord, T any](k, b int, traits axis.Traits[A, D], points [][]A, items []T) (*Tree[A, D, T], error) {
	if k <= 0 {
		return nil, ErrInvalidK
	}
	if b <= 0 {
		return nil, ErrInvalidBucketSize
	}
	if len(points) != len(items) {
		return nil, ErrLengthMismatch
	}
	if len(points) == 0 {
		return nil, ErrEmpty
	}

	n := len(points)
	leafCount := (n + b - 1) / b

	t := &Tree[A, D, T]{
		stems:     make([]A, leafCount),
		leaves:    make([]*leaf.SoA[A, T], leafCount),
		leafCount: leafCount,
		k:         k,
		b:         b,
		size:      n,
		traits:    traits,
	}

	bld := &builder[A, D, T]{tree: t, points: points, items: items}
	if err := bld.build(1, 0, n, leafCount, 0); err != nil {
		return nil, err
	}
	return t, nil
}

type builder[A axis.Coord, D axis.Coord, T any] struct {
	tree   *Tree[A, D, T]
	points [][]A
	items  []T
}

// build recursively lays out the subtree rooted at nodeIndex, covering
// points/items range [lo, hi) and spanning subtreeLeaves leaves, at the
// given split depth (used to pick dim = depth mod K). It returns
// leaf.ErrBucketExceeded, unchanged, if every point in some range ties
// on the split axis and can't be partitioned into the required leaf
// sizes (spec §4.6 "fatal misconfiguration" — the caller learns of this
// rather than silently getting an oversized leaf).
func (bld *builder[A, D, T]) build(nodeIndex int64, lo, hi, subtreeLeaves, depth int) error {
	if subtreeLeaves == 1 {
		bld.fillLeaf(nodeIndex, lo, hi)
		return nil
	}

	leftLeaves, rightLeaves := splitLeafCounts(subtreeLeaves)
	b := bld.tree.b
	m := hi - lo

	// Clamp the left point count to respect both subtrees' capacity
	// (leftLeaves*B, rightLeaves*B) while giving every leaf at least one
	// point.
	leftCount := leftLeaves * b
	if lower := m - rightLeaves*b; leftCount < lower {
		leftCount = lower
	}
	if upper := m - rightLeaves; leftCount > upper {
		leftCount = upper
	}

	dim := depth % bld.tree.k
	splitVal, pivot, err := leaf.MedianSplit(bld.points[lo:hi], bld.items[lo:hi], dim, leftCount)
	if err != nil {
		return err
	}

	bld.tree.stems[nodeIndex] = splitVal
	if err := bld.build(ChildIndex(nodeIndex, false), lo, lo+pivot, leftLeaves, depth+1); err != nil {
		return err
	}
	return bld.build(ChildIndex(nodeIndex, true), lo+pivot, hi, rightLeaves, depth+1)
}

func (bld *builder[A, D, T]) fillLeaf(nodeIndex int64, lo, hi int) {
	slot := int(nodeIndex) - bld.tree.leafCount
	s := leaf.NewSoA[A, T](bld.tree.k, hi-lo)
	for i := lo; i < hi; i++ {
		s.Set(i-lo, bld.points[i], bld.items[i])
	}
	bld.tree.leaves[slot] = s
}

// splitLeafCounts divides a subtree of n leaves into a left and right
// child subtree the way a binary heap divides n elements across its two
// children: the left side is filled first, so the tree stays
// left-complete with every level but the last full (spec §4.3 "balanced
// median split").
func splitLeafCounts(n int) (left, right int) {
	if n <= 1 {
		return 0, 0
	}
	h := 0
	for (1 << (h + 1)) <= n {
		h++
	}
	full := 1 << h
	half := full / 2
	leftover := n - full
	left = half + min(leftover, half)
	right = n - left
	return left, right
}
