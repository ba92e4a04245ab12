// Package leaf implements the two physical leaf layouts described by the
// spec (array-of-points for the mutable tree, struct-of-arrays for the
// immutable tree) and the leaf-slice scan operations the query engine
// runs over them (spec §3 "LeafNode"/"Immutable tree", §4.4 "Leaf
// scans"). It is grounded on the teacher's fixed-capacity page node
// (pkg/btree/node.go in the teacher repo): an explicit size/count field
// and append-while-room. The room check itself is left to the owning
// tree: Bucket.Add never rejects an insert.
package leaf

import "kdforest/pkg/axis"

// Bucket is the mutable tree's leaf: an array-of-points of up to some
// caller-enforced capacity B. Capacity is not stored on the Bucket
// itself (the owning tree enforces it, the way the teacher's Node never
// self-enforces a page size either) so the same type works across trees
// built with different B.
type Bucket[A axis.Coord, T any] struct {
	Points [][]A
	Items  []T
}

// NewBucket creates an empty bucket with room for capB entries.
func NewBucket[A axis.Coord, T any](capB int) *Bucket[A, T] {
	return &Bucket[A, T]{
		Points: make([][]A, 0, capB),
		Items:  make([]T, 0, capB),
	}
}

// Len returns the number of live entries.
func (b *Bucket[A, T]) Len() int { return len(b.Points) }

// PointAt returns the point stored at slot i.
func (b *Bucket[A, T]) PointAt(i int) []A { return b.Points[i] }

// ItemAt returns the payload stored at slot i.
func (b *Bucket[A, T]) ItemAt(i int) T { return b.Items[i] }

// Add appends a point/item pair. The caller is responsible for checking
// capacity first (Len() < B); Add never rejects an insert on its own.
func (b *Bucket[A, T]) Add(point []A, item T) {
	b.Points = append(b.Points, point)
	b.Items = append(b.Items, item)
}

// RemoveAt removes the entry at slot i via swap-with-last, matching the
// spec's "order of remaining entries in a leaf is not preserved" (§6
// Remove contract).
func (b *Bucket[A, T]) RemoveAt(i int) {
	last := len(b.Points) - 1
	b.Points[i] = b.Points[last]
	b.Items[i] = b.Items[last]
	b.Points = b.Points[:last]
	b.Items = b.Items[:last]
}

// Split partitions the bucket's entries along dim around target (see
// MedianSplit) and moves the right partition into a freshly allocated
// Bucket, truncating the receiver to the left partition. Returns the
// split value and the new right-hand bucket.
func (b *Bucket[A, T]) Split(dim, target int) (splitVal A, right *Bucket[A, T], err error) {
	splitVal, pivot, err := MedianSplit(b.Points, b.Items, dim, target)
	if err != nil {
		return splitVal, nil, err
	}

	right = &Bucket[A, T]{
		Points: append([][]A(nil), b.Points[pivot:]...),
		Items:  append([]T(nil), b.Items[pivot:]...),
	}
	b.Points = b.Points[:pivot:pivot]
	b.Items = b.Items[:pivot:pivot]
	return splitVal, right, nil
}
