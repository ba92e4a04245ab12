package result

import "testing"

func TestUnboundedKeepsEverything(t *testing.T) {
	c := NewUnbounded[float64, string]()
	c.Add(3, "c")
	c.Add(1, "a")
	c.Add(2, "b")
	if c.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", c.Len())
	}
	sorted := c.IntoSortedVec()
	want := []string{"a", "b", "c"}
	for i, p := range sorted {
		if p.Item != want[i] {
			t.Fatalf("sorted[%d] = %v, want %v", i, p.Item, want[i])
		}
	}
}

func TestSortedBoundedEvictsWorstOnOverflow(t *testing.T) {
	c := NewBounded[float64, string](2)
	c.Add(5, "far")
	c.Add(1, "near")
	c.Add(3, "mid")

	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}
	worst, ok := c.Worst()
	if !ok || worst != 3 {
		t.Fatalf("Worst() = %v,%v, want 3,true", worst, ok)
	}
	sorted := c.IntoSortedVec()
	if sorted[0].Item != "near" || sorted[1].Item != "mid" {
		t.Fatalf("sorted = %+v, want [near mid]", sorted)
	}
}

func TestHeapBoundedUsedAboveThreshold(t *testing.T) {
	c := NewBounded[float64, int](MaxVecResultSize + 1)
	if _, ok := c.(*heapBounded[float64, int]); !ok {
		t.Fatalf("NewBounded(%d) = %T, want *heapBounded", MaxVecResultSize+1, c)
	}
	if c.Cap() != MaxVecResultSize+1 {
		t.Fatalf("Cap() = %d, want %d", c.Cap(), MaxVecResultSize+1)
	}
	for i := 0; i < 100; i++ {
		c.Add(float64(100-i), i)
	}
	if c.Len() != MaxVecResultSize+1 {
		t.Fatalf("Len() = %d, want %d", c.Len(), MaxVecResultSize+1)
	}
	sorted := c.IntoSortedVec()
	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].Distance > sorted[i].Distance {
			t.Fatalf("sorted out of order at %d: %v > %v", i, sorted[i-1].Distance, sorted[i].Distance)
		}
	}
	// The smallest distances inserted were for the largest i, i.e. items
	// near 99; confirm the worst retained entry is within the expected band.
	worst, _ := c.Worst()
	if worst > float64(MaxVecResultSize+1) {
		t.Fatalf("worst = %v, want <= %d", worst, MaxVecResultSize+1)
	}
}
