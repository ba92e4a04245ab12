// Package mutable implements the incrementally-built k-d tree: an arena
// of stems plus an arena of leaves, insertion with on-demand leaf split
// (spec §3 "StemNode"/"LeafNode", §4.2, §4.5). Grounded on the teacher's
// pkg/btree/btree.go descend-until-leaf / split-on-full / rewire-parent
// control flow (insertRecursive, splitLeaf, createNewRoot), generalized
// from byte-page cells addressed by on-disk pageNo to typed point/payload
// slots addressed by the spec's high-bit-tagged arena index.
package mutable

import (
	"errors"

	"kdforest/pkg/axis"
	"kdforest/pkg/leaf"
	"kdforest/pkg/metric"
)

// idx is the arena index type described in spec §3: values below
// leafOffset address the stems arena, values at or above it address the
// leaves arena (after subtracting leafOffset). A single field can
// therefore address either arena without a separate discriminant tag.
type idx int64

// leafOffset is this module's IDX::MAX>>1: comfortably larger than any
// realistic arena while leaving stem indices a huge usable range.
const leafOffset idx = 1 << 62

func isLeafIdx(i idx) bool    { return i >= leafOffset }
func leafSlot(i idx) int      { return int(i - leafOffset) }
func stemSlot(i idx) int      { return int(i) }
func leafIdxOf(slot int) idx  { return leafOffset + idx(slot) }
func stemIdxOf(slot int) idx  { return idx(slot) }

// stem is spec's StemNode: left/right child indices and the split value.
// The split dimension is not stored — it is depth mod K.
type stem[A axis.Coord] struct {
	Left, Right idx
	SplitVal    A
}

// ErrInvalidK is returned when a tree is constructed with K <= 0
// (spec §7 "K = 0").
var ErrInvalidK = errors.New("mutable: K must be > 0")

// ErrInvalidBucketSize is returned when a tree is constructed with a
// bucket capacity too small to ever host a median split.
var ErrInvalidBucketSize = errors.New("mutable: bucket capacity must be >= 2")

// Tree is the mutable k-d tree (spec §3 "Mutable tree"). It is generic
// over the coordinate type A, the region-distance accumulator type D
// (tied to A via axis.Traits — see axis.Float64, axis.Uint16To32, etc.),
// and the payload type T. The distance metric is NOT fixed on the tree:
// it is supplied per query call, matching the spec's external interface
// ("D is a distance-metric type parameter" on each query).
//
// Tree has no internal locking: Add and Remove must not run concurrently
// with each other or with queries. Concurrent queries alone are safe.
type Tree[A axis.Coord, D axis.Coord, T any] struct {
	stems  []stem[A]
	leaves []*leaf.Bucket[A, T]
	root   idx
	k      int
	b      int
	size   int
	traits axis.Traits[A, D]
}

// New creates an empty mutable tree over K dimensions with leaf capacity
// B, using the given axis traits (select via axis.Float64(), etc.).
func New[A axis.Coord, D axis.Coord, T any](k, b int, traits axis.Traits[A, D]) (*Tree[A, D, T], error) {
	return WithCapacity[A, D, T](k, b, traits, 0)
}

// WithCapacity is like New but pre-sizes the leaf arena for n expected
// points.
func WithCapacity[A axis.Coord, D axis.Coord, T any](k, b int, traits axis.Traits[A, D], n int) (*Tree[A, D, T], error) {
	if k <= 0 {
		return nil, ErrInvalidK
	}
	if b < 2 {
		return nil, ErrInvalidBucketSize
	}
	leaves := make([]*leaf.Bucket[A, T], 1, 1+(n/b))
	leaves[0] = leaf.NewBucket[A, T](b)
	return &Tree[A, D, T]{
		leaves: leaves,
		root:   leafIdxOf(0),
		k:      k,
		b:      b,
		traits: traits,
	}, nil
}

// K returns the tree's fixed dimensionality.
func (t *Tree[A, D, T]) K() int { return t.k }

// B returns the tree's leaf capacity.
func (t *Tree[A, D, T]) B() int { return t.b }

// Size returns the number of (point, item) entries currently stored.
func (t *Tree[A, D, T]) Size() int { return t.size }

// Traits returns the axis traits the tree was built with.
func (t *Tree[A, D, T]) Traits() axis.Traits[A, D] { return t.traits }

// Root returns the root arena index, for use by the query package's
// shared descent.
func (t *Tree[A, D, T]) Root() int64 { return int64(t.root) }

// Descend returns the stem at the given arena index (as returned via
// Root/child indices) and whether idx addressed a stem at all. It
// satisfies pkg/query's Accessor interface.
func (t *Tree[A, D, T]) Descend(i int64) (left, right int64, splitVal A, ok bool) {
	ix := idx(i)
	if isLeafIdx(ix) {
		return 0, 0, splitVal, false
	}
	s := t.stems[stemSlot(ix)]
	return int64(s.Left), int64(s.Right), s.SplitVal, true
}

// Leaf returns the leaf bucket at the given arena index, and whether idx
// addressed a leaf.
func (t *Tree[A, D, T]) Leaf(i int64) (*leaf.Bucket[A, T], bool) {
	ix := idx(i)
	if !isLeafIdx(ix) {
		return nil, false
	}
	return t.leaves[leafSlot(ix)], true
}

// Add inserts (point, item). Duplicates (same point or same item) are
// permitted and occupy distinct slots (spec §4.2).
func (t *Tree[A, D, T]) Add(point []A, item T) error {
	cur := t.root
	parentStem := -1
	parentIsRight := false
	depth := 0

	for !isLeafIdx(cur) {
		s := &t.stems[stemSlot(cur)]
		dim := depth % t.k
		parentStem = stemSlot(cur)
		if point[dim] < s.SplitVal {
			parentIsRight = false
			cur = s.Left
		} else {
			parentIsRight = true
			cur = s.Right
		}
		depth++
	}

	slot := leafSlot(cur)
	bucket := t.leaves[slot]
	if bucket.Len() < t.b {
		bucket.Add(point, item)
		t.size++
		return nil
	}

	// Full: split, then insert into the appropriate new leaf.
	dim := depth % t.k
	splitVal, right, err := bucket.Split(dim, t.b/2)
	if err != nil {
		return err
	}

	rightSlot := len(t.leaves)
	t.leaves = append(t.leaves, right)
	newStemSlot := len(t.stems)
	t.stems = append(t.stems, stem[A]{
		Left:     leafIdxOf(slot),
		Right:    leafIdxOf(rightSlot),
		SplitVal: splitVal,
	})
	newStemIdx := stemIdxOf(newStemSlot)

	switch {
	case parentStem < 0:
		t.root = newStemIdx
	case parentIsRight:
		t.stems[parentStem].Right = newStemIdx
	default:
		t.stems[parentStem].Left = newStemIdx
	}

	if point[dim] < splitVal {
		bucket.Add(point, item)
	} else {
		right.Add(point, item)
	}
	t.size++
	return nil
}

// Remove deletes every entry matching both point and item, returning the
// count removed. Order of the remaining entries in the affected leaf is
// not preserved (spec §6 "remove"). Offered for both float and
// fixed/unsigned trees — see DESIGN.md's open-question decision.
func (t *Tree[A, D, T]) Remove(point []A, item T) int {
	cur := t.root
	depth := 0
	for !isLeafIdx(cur) {
		s := t.stems[stemSlot(cur)]
		dim := depth % t.k
		if point[dim] < s.SplitVal {
			cur = s.Left
		} else {
			cur = s.Right
		}
		depth++
	}

	bucket := t.leaves[leafSlot(cur)]
	removed := 0
	for i := 0; i < bucket.Len(); {
		if pointEqual(bucket.PointAt(i), point) && equalItem(bucket.ItemAt(i), item) {
			bucket.RemoveAt(i)
			removed++
			continue
		}
		i++
	}
	t.size -= removed
	return removed
}

func pointEqual[A axis.Coord](a, b []A) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalItem[T any](a, b T) bool {
	return any(a) == any(b)
}

// Metric is re-exported for callers that only import pkg/mutable.
type Metric[A, D axis.Coord] = metric.Metric[A, D]

// ScanLeaf computes the distance from query to every point in the leaf
// at node and returns those distances alongside their items, in
// matching order. Satisfies pkg/query's Accessor interface.
func (t *Tree[A, D, T]) ScanLeaf(node int64, query []A, m metric.Metric[A, D]) ([]D, []T) {
	bucket, ok := t.Leaf(node)
	if !ok {
		return nil, nil
	}
	dists := leaf.DistancesAoS[A, D, T](bucket, query, m)
	items := make([]T, bucket.Len())
	for i := range items {
		items[i] = bucket.ItemAt(i)
	}
	return dists, items
}
