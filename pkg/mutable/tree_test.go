package mutable

import (
	"testing"

	"kdforest/pkg/axis"
)

func TestAddBelowCapacityStaysSingleLeaf(t *testing.T) {
	tr, err := New[float64, float64, int](2, 4, axis.Float64())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	tr.Add([]float64{1, 1}, 1)
	tr.Add([]float64{2, 2}, 2)
	if tr.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", tr.Size())
	}
	if !isLeafIdx(tr.root) {
		t.Fatalf("expected root to still be a single leaf below capacity")
	}
}

func TestAddSplitsOnOverflow(t *testing.T) {
	tr, err := New[float64, float64, int](2, 4, axis.Float64())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	pts := [][]float64{{1, 1}, {2, 2}, {3, 3}, {4, 4}, {5, 5}}
	for i, p := range pts {
		if err := tr.Add(p, i); err != nil {
			t.Fatalf("Add(%v): %v", p, err)
		}
	}
	if tr.Size() != len(pts) {
		t.Fatalf("Size() = %d, want %d", tr.Size(), len(pts))
	}
	if isLeafIdx(tr.root) {
		t.Fatalf("expected root to have split into a stem after exceeding capacity")
	}
	// Every inserted point must be found in exactly one leaf.
	found := 0
	var walk func(idx idx)
	walk = func(i idx) {
		if isLeafIdx(i) {
			found += tr.leaves[leafSlot(i)].Len()
			return
		}
		s := tr.stems[stemSlot(i)]
		walk(s.Left)
		walk(s.Right)
	}
	walk(tr.root)
	if found != len(pts) {
		t.Fatalf("found %d points across leaves, want %d", found, len(pts))
	}
}

func TestRemoveDeletesMatchingEntries(t *testing.T) {
	tr, err := New[float64, float64, int](2, 4, axis.Float64())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	tr.Add([]float64{1, 1}, 10)
	tr.Add([]float64{1, 1}, 11)
	tr.Add([]float64{2, 2}, 20)

	removed := tr.Remove([]float64{1, 1}, 10)
	if removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}
	if tr.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", tr.Size())
	}
}

func TestRemoveOnFixedUnsignedTree(t *testing.T) {
	tr, err := New[uint16, uint32, string](1, 4, axis.Uint16To32())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	tr.Add([]uint16{7}, "a")
	if tr.Remove([]uint16{7}, "a") != 1 {
		t.Fatalf("expected removal to succeed on a fixed/unsigned tree")
	}
	if tr.Size() != 0 {
		t.Fatalf("Size() = %d, want 0", tr.Size())
	}
}

func TestInvalidConstructionArguments(t *testing.T) {
	if _, err := New[float64, float64, int](0, 4, axis.Float64()); err != ErrInvalidK {
		t.Fatalf("err = %v, want ErrInvalidK", err)
	}
	if _, err := New[float64, float64, int](2, 1, axis.Float64()); err != ErrInvalidBucketSize {
		t.Fatalf("err = %v, want ErrInvalidBucketSize", err)
	}
}
