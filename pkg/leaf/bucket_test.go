package leaf

import "testing"

func TestBucketAddAndLen(t *testing.T) {
	b := NewBucket[float64, string](4)
	b.Add([]float64{1, 2}, "a")
	b.Add([]float64{3, 4}, "b")
	if b.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", b.Len())
	}
	if b.ItemAt(1) != "b" {
		t.Fatalf("ItemAt(1) = %v, want b", b.ItemAt(1))
	}
}

func TestBucketRemoveAtSwapsWithLast(t *testing.T) {
	b := NewBucket[float64, string](4)
	b.Add([]float64{1}, "a")
	b.Add([]float64{2}, "b")
	b.Add([]float64{3}, "c")

	b.RemoveAt(0)
	if b.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", b.Len())
	}
	if b.ItemAt(0) != "c" {
		t.Fatalf("ItemAt(0) = %v, want c (swapped from the last slot)", b.ItemAt(0))
	}
}

func TestBucketSplitMovesRightPartitionOut(t *testing.T) {
	b := NewBucket[float64, int](8)
	for i, v := range []float64{5, 1, 9, 3, 7, 2, 8, 4} {
		b.Add([]float64{v}, i)
	}

	splitVal, right, err := b.Split(0, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Len()+right.Len() != 8 {
		t.Fatalf("left+right = %d, want 8", b.Len()+right.Len())
	}
	for i := 0; i < b.Len(); i++ {
		if b.PointAt(i)[0] >= splitVal {
			t.Fatalf("left entry %v not < splitVal %v", b.PointAt(i)[0], splitVal)
		}
	}
	for i := 0; i < right.Len(); i++ {
		if right.PointAt(i)[0] < splitVal {
			t.Fatalf("right entry %v < splitVal %v", right.PointAt(i)[0], splitVal)
		}
	}
}
