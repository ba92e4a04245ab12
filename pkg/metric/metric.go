// Package metric implements the distance-metric abstraction used by
// every query shape and by the axis-level region-distance update
// (spec §4.1). Two metrics are provided: SquaredEuclidean and Manhattan,
// each usable with either a float axis (D == A) or a fixed/unsigned axis
// (D wider than A).
package metric

import "kdforest/pkg/axis"

// Metric computes a total distance between two K-dimensional points and
// the single-axis contribution used for pruning.
type Metric[A, D axis.Coord] interface {
	// Dist returns the total distance between a and b.
	Dist(a, b []A) D
	// Dist1 returns the single-axis contribution for a pair of
	// coordinates on the same axis.
	Dist1(a, b A) D
}

// RDUpdate lifts a per-axis offset change into the running region
// distance rd. It is implemented uniformly for every metric/axis pair as
// rd' = (rd - dist1(old, zero)) + dist1(new, zero), using the axis's
// saturating add/sub — this is the generic form from spec §4.1, and for
// SquaredEuclidean over floats it reduces to rd + new*new - old*old.
func RDUpdate[A, D axis.Coord](tr axis.Traits[A, D], m Metric[A, D], rd D, oldOff, newOff A) D {
	zero := tr.ZeroA()
	return tr.SatAdd(tr.SatSub(rd, m.Dist1(oldOff, zero)), m.Dist1(newOff, zero))
}

// --- float family: D == A ---

type squaredEuclideanFloat[A ~float32 | ~float64] struct{}

// SquaredEuclideanFloat is the default "Euclidean" metric: squared
// Euclidean distance (spec's own documented open question resolves the
// ambiguous "Euclidean" naming to squared Euclidean — see DESIGN.md).
func SquaredEuclideanFloat[A ~float32 | ~float64]() Metric[A, A] {
	return squaredEuclideanFloat[A]{}
}

func (squaredEuclideanFloat[A]) Dist(a, b []A) A {
	var sum A
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

func (squaredEuclideanFloat[A]) Dist1(a, b A) A {
	d := a - b
	return d * d
}

type manhattanFloat[A ~float32 | ~float64] struct{}

// ManhattanFloat is the L1 (sum of absolute differences) metric over a
// float axis.
func ManhattanFloat[A ~float32 | ~float64]() Metric[A, A] {
	return manhattanFloat[A]{}
}

func (manhattanFloat[A]) Dist(a, b []A) A {
	var sum A
	for i := range a {
		d := a[i] - b[i]
		if d < 0 {
			d = -d
		}
		sum += d
	}
	return sum
}

func (manhattanFloat[A]) Dist1(a, b A) A {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d
}

// --- fixed/unsigned family: D wider than A ---

type squaredEuclideanFixed[A, D axis.Unsigned] struct{}

// SquaredEuclideanFixed is the squared Euclidean metric over an unsigned
// (fixed-point) axis A, accumulating into the wider type D to avoid
// overflow on the sum of squares.
func SquaredEuclideanFixed[A, D axis.Unsigned]() Metric[A, D] {
	return squaredEuclideanFixed[A, D]{}
}

func absDiff[A axis.Unsigned](a, b A) A {
	if a > b {
		return a - b
	}
	return b - a
}

func (squaredEuclideanFixed[A, D]) Dist(a, b []A) D {
	var sum D
	for i := range a {
		d := D(absDiff(a[i], b[i]))
		sum += d * d
	}
	return sum
}

func (squaredEuclideanFixed[A, D]) Dist1(a, b A) D {
	d := D(absDiff(a, b))
	return d * d
}

type manhattanFixed[A, D axis.Unsigned] struct{}

// ManhattanFixed is the L1 metric over an unsigned (fixed-point) axis A,
// accumulating into the wider type D.
func ManhattanFixed[A, D axis.Unsigned]() Metric[A, D] {
	return manhattanFixed[A, D]{}
}

func (manhattanFixed[A, D]) Dist(a, b []A) D {
	var sum D
	for i := range a {
		sum += D(absDiff(a[i], b[i]))
	}
	return sum
}

func (manhattanFixed[A, D]) Dist1(a, b A) D {
	return D(absDiff(a, b))
}
