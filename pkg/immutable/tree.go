// Package immutable implements the bulk-built, balanced k-d tree (spec §3
// "Immutable tree", §4.3). Stems are addressed by the classic implicit
// binary-tree-over-n-leaves scheme (root index 1, children 2i/2i+1,
// childIndex >= leafCount means the child is a leaf rather than a
// further stem) — the same style of level-order array addressing the
// pack's MetaCubeX-bart routing tables use for their complete binary
// tries, generalized here from a fixed fanout trie to a two-way split
// tree. Leaves are stored struct-of-arrays (pkg/leaf.SoA) for the
// vectorizable scan described in pkg/leaf/scan.go.
package immutable

import (
	"errors"

	"kdforest/pkg/axis"
	"kdforest/pkg/leaf"
	"kdforest/pkg/metric"
)

// ErrInvalidK is returned when K <= 0.
var ErrInvalidK = errors.New("immutable: K must be > 0")

// ErrInvalidBucketSize is returned when B <= 0.
var ErrInvalidBucketSize = errors.New("immutable: bucket capacity must be > 0")

// ErrLengthMismatch is returned when points and items disagree on length.
var ErrLengthMismatch = errors.New("immutable: points and items must have the same length")

// ErrEmpty is returned when building from zero points.
var ErrEmpty = errors.New("immutable: cannot build from zero points")

// Tree is the bulk-built k-d tree. Unlike Tree in pkg/mutable it cannot
// grow after construction; all its storage is sized exactly once. It has
// no internal locking and is never written after construction, so
// concurrent queries are safe.
type Tree[A axis.Coord, D axis.Coord, T any] struct {
	stems     []A             // 1-indexed; stems[0] unused
	leaves    []*leaf.SoA[A, T]
	leafCount int
	k         int
	b         int
	size      int
	traits    axis.Traits[A, D]
}

// K returns the tree's fixed dimensionality.
func (t *Tree[A, D, T]) K() int { return t.k }

// B returns the leaf capacity the tree was built with.
func (t *Tree[A, D, T]) B() int { return t.b }

// Size returns the total number of stored points.
func (t *Tree[A, D, T]) Size() int { return t.size }

// Traits returns the axis traits the tree was built with.
func (t *Tree[A, D, T]) Traits() axis.Traits[A, D] { return t.traits }

// Root returns the root node index for the query package's shared
// descent (always 1, exposed as a method so query code does not need to
// know the indexing convention).
func (t *Tree[A, D, T]) Root() int64 { return 1 }

// IsLeaf reports whether the given node index addresses a leaf rather
// than a stem.
func (t *Tree[A, D, T]) IsLeaf(nodeIndex int64) bool {
	return int(nodeIndex) >= t.leafCount
}

// Stem returns the split value stored at a stem node index. ok is false
// if nodeIndex addresses a leaf.
func (t *Tree[A, D, T]) Stem(nodeIndex int64) (splitVal A, ok bool) {
	if t.IsLeaf(nodeIndex) {
		return splitVal, false
	}
	return t.stems[nodeIndex], true
}

// ChildIndex computes the left (isRight=false) or right (isRight=true)
// child index of a stem node.
func ChildIndex(nodeIndex int64, isRight bool) int64 {
	if isRight {
		return 2*nodeIndex + 1
	}
	return 2 * nodeIndex
}

// Leaf returns the leaf at the given node index (already known to
// satisfy IsLeaf), translating it to a slot in the leaves arena.
func (t *Tree[A, D, T]) Leaf(nodeIndex int64) (*leaf.SoA[A, T], bool) {
	if !t.IsLeaf(nodeIndex) {
		return nil, false
	}
	slot := int(nodeIndex) - t.leafCount
	if slot < 0 || slot >= len(t.leaves) {
		return nil, false
	}
	return t.leaves[slot], true
}

// LeafCount returns the total number of leaves in the arena.
func (t *Tree[A, D, T]) LeafCount() int { return t.leafCount }

// StemCount returns the number of populated stem slots (indices 1..leafCount-1).
func (t *Tree[A, D, T]) StemCount() int {
	if t.leafCount == 0 {
		return 0
	}
	return t.leafCount - 1
}

// RawStems returns the 1-indexed stem split-value array (index 0 unused)
// for serialization by pkg/archive.
func (t *Tree[A, D, T]) RawStems() []A { return t.stems }

// LeafAt returns the leaf stored at arena slot i (0 <= i < LeafCount()),
// for serialization by pkg/archive.
func (t *Tree[A, D, T]) LeafAt(i int) *leaf.SoA[A, T] { return t.leaves[i] }

// Descend returns the stem at node as (left, right, splitVal, ok),
// matching pkg/mutable.Tree's method of the same name so both tree
// kinds satisfy pkg/query's Accessor interface uniformly.
func (t *Tree[A, D, T]) Descend(node int64) (left, right int64, splitVal A, ok bool) {
	splitVal, ok = t.Stem(node)
	if !ok {
		return 0, 0, splitVal, false
	}
	return ChildIndex(node, false), ChildIndex(node, true), splitVal, true
}

// ScanLeaf computes the distance from query to every point in the leaf
// at node and returns those distances alongside their items, in
// matching order.
func (t *Tree[A, D, T]) ScanLeaf(node int64, query []A, m metric.Metric[A, D]) ([]D, []T) {
	l, ok := t.Leaf(node)
	if !ok {
		return nil, nil
	}
	dists := leaf.DistancesSoA[A, D, T](l, query, m)
	items := make([]T, l.Len())
	for i := range items {
		items[i] = l.ItemAt(i)
	}
	return dists, items
}

// FromParts reconstructs a Tree directly from already-decoded arena
// contents. Used by pkg/archive when loading a serialized tree; not
// meant for callers building a tree from raw points (use
// BuildFromSlice).
func FromParts[A axis.Coord, D axis.Coord, T any](k, b int, traits axis.Traits[A, D], stems []A, leaves []*leaf.SoA[A, T], size int) *Tree[A, D, T] {
	return &Tree[A, D, T]{
		stems:     stems,
		leaves:    leaves,
		leafCount: len(leaves),
		k:         k,
		b:         b,
		size:      size,
		traits:    traits,
	}
}
