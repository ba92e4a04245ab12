package leaf

import (
	"kdforest/pkg/axis"
	"kdforest/pkg/metric"
)

// Slots is satisfied by both leaf layouts and is all the query engine
// needs to read back items once it has a distance for each slot.
type Slots[A axis.Coord, T any] interface {
	Len() int
	ItemAt(i int) T
}

// DistancesAoS computes the distance from query to every live point in a
// mutable (array-of-points) bucket. Each point is a contiguous []A, so
// this calls the metric's whole-point Dist directly.
func DistancesAoS[A, D axis.Coord, T any](b *Bucket[A, T], query []A, m metric.Metric[A, D]) []D {
	n := b.Len()
	out := make([]D, n)
	for i := 0; i < n; i++ {
		out[i] = m.Dist(b.Points[i], query)
	}
	return out
}

// DistancesSoA computes the distance from query to every live point in
// an immutable (struct-of-arrays) leaf. It walks one dimension at a time
// across every slot, accumulating each axis's per-slot contribution into
// a flat buffer — the "leaf-slice SIMD-friendly scan" of spec §4.4: this
// inner loop has no data dependency between slots and is the shape a
// vectorized min/compare-select could replace without changing the
// result (must stay bit-identical to this scalar form).
func DistancesSoA[A, D axis.Coord, T any](s *SoA[A, T], query []A, m metric.Metric[A, D]) []D {
	n := s.Size
	dists := make([]D, n)
	for d, col := range s.ContentPoints {
		qd := query[d]
		for i := 0; i < n; i++ {
			dists[i] += m.Dist1(col[i], qd)
		}
	}
	return dists
}
