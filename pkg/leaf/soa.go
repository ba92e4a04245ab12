package leaf

import "kdforest/pkg/axis"

// SoA is the immutable tree's leaf layout: struct-of-arrays, one []A per
// dimension, so the hot scan path ("for each dim, accumulate per-slot
// contributions") walks contiguous memory one axis at a time instead of
// striding through whole points (spec §3 "Immutable tree", §9 "Leaf
// layout split"). Capacity is fixed at construction (the immutable
// builder allocates every leaf once).
type SoA[A axis.Coord, T any] struct {
	// ContentPoints[dim][slot] is the dim-th coordinate of the slot-th point.
	ContentPoints [][]A
	ContentItems  []T
	Size          int
}

// NewSoA allocates an empty leaf with room for capB entries across k dims.
func NewSoA[A axis.Coord, T any](k, capB int) *SoA[A, T] {
	cols := make([][]A, k)
	for d := range cols {
		cols[d] = make([]A, capB)
	}
	return &SoA[A, T]{
		ContentPoints: cols,
		ContentItems:  make([]T, capB),
	}
}

// Len returns the number of live slots.
func (s *SoA[A, T]) Len() int { return s.Size }

// PointAt gathers the slot-th point across all dimensions. It is not on
// the query path: every query scans an SoA leaf through DistancesSoA in
// scan.go, which walks ContentPoints directly to stay vectorizable.
func (s *SoA[A, T]) PointAt(slot int) []A {
	k := len(s.ContentPoints)
	pt := make([]A, k)
	for d := 0; d < k; d++ {
		pt[d] = s.ContentPoints[d][slot]
	}
	return pt
}

// ItemAt returns the payload stored at slot.
func (s *SoA[A, T]) ItemAt(slot int) T { return s.ContentItems[slot] }

// Set writes point/item into slot and, if slot >= Size, grows Size to
// include it. Used only by the bulk builder while populating a leaf.
func (s *SoA[A, T]) Set(slot int, point []A, item T) {
	for d, v := range point {
		s.ContentPoints[d][slot] = v
	}
	s.ContentItems[slot] = item
	if slot >= s.Size {
		s.Size = slot + 1
	}
}
