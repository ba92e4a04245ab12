package query

import (
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"kdforest/pkg/axis"
	"kdforest/pkg/immutable"
	"kdforest/pkg/metric"
	"kdforest/pkg/mutable"
)

func genPoints(n, k int, seed int) [][]float64 {
	pts := make([][]float64, n)
	x := uint32(seed + 1)
	next := func() float64 {
		x ^= x << 13
		x ^= x >> 17
		x ^= x << 5
		return float64(x%1000) / 10
	}
	for i := range pts {
		p := make([]float64, k)
		for d := range p {
			p[d] = next()
		}
		pts[i] = p
	}
	return pts
}

func bruteForceNearest(pts [][]float64, query []float64) (float64, int) {
	m := metric.SquaredEuclideanFloat[float64]()
	best := math.MaxFloat64
	bestIdx := -1
	for i, p := range pts {
		d := m.Dist(p, query)
		if d < best {
			best = d
			bestIdx = i
		}
	}
	return best, bestIdx
}

func buildMutable(t *testing.T, pts [][]float64, k, b int) *mutable.Tree[float64, float64, int] {
	tr, err := mutable.New[float64, float64, int](k, b, axis.Float64())
	if err != nil {
		t.Fatalf("mutable.New: %v", err)
	}
	for i, p := range pts {
		if err := tr.Add(p, i); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
	return tr
}

func buildImmutable(t *testing.T, pts [][]float64, k, b int) *immutable.Tree[float64, float64, int] {
	items := make([]int, len(pts))
	cp := make([][]float64, len(pts))
	for i := range pts {
		items[i] = i
		cp[i] = append([]float64(nil), pts[i]...)
	}
	tr, err := immutable.BuildFromSlice[float64, float64, int](k, b, axis.Float64(), cp, items)
	if err != nil {
		t.Fatalf("immutable.BuildFromSlice: %v", err)
	}
	return tr
}

func TestNearestOneMatchesBruteForceMutable(t *testing.T) {
	pts := genPoints(200, 3, 1)
	tr := buildMutable(t, pts, 3, 8)
	m := metric.SquaredEuclideanFloat[float64]()

	query := []float64{50, 50, 50}
	wantDist, _ := bruteForceNearest(pts, query)

	got, found := NearestOne[float64, float64, int](tr, m, query)
	require.True(t, found, "NearestOne reported not found")
	require.Equal(t, wantDist, got.Distance)
}

func TestNearestOneMatchesBruteForceImmutable(t *testing.T) {
	pts := genPoints(300, 2, 2)
	tr := buildImmutable(t, pts, 2, 16)
	m := metric.SquaredEuclideanFloat[float64]()

	query := []float64{10, 90}
	wantDist, _ := bruteForceNearest(pts, query)

	got, found := NearestOne[float64, float64, int](tr, m, query)
	require.True(t, found, "NearestOne reported not found")
	require.Equal(t, wantDist, got.Distance)
}

func TestNearestNSortedAndSizeConsistent(t *testing.T) {
	pts := genPoints(150, 2, 3)
	tr := buildMutable(t, pts, 2, 6)
	m := metric.SquaredEuclideanFloat[float64]()

	got := NearestN[float64, float64, int](tr, m, []float64{40, 60}, 5)
	if len(got) != 5 {
		t.Fatalf("len(got) = %d, want 5", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i-1].Distance > got[i].Distance {
			t.Fatalf("results not sorted ascending at %d", i)
		}
	}
}

func TestWithinFindsEverythingBruteForceWouldWithinRadius(t *testing.T) {
	pts := genPoints(120, 2, 4)
	tr := buildImmutable(t, pts, 2, 8)
	m := metric.SquaredEuclideanFloat[float64]()
	query := []float64{33, 66}
	radius := 400.0

	var want []int
	for i, p := range pts {
		if m.Dist(p, query) < radius {
			want = append(want, i)
		}
	}

	got := Within[float64, float64, int](tr, m, query, radius)
	require.Len(t, got, len(want))
	seen := make(map[int]bool)
	for _, p := range got {
		seen[p.Item] = true
		require.Less(t, p.Distance, radius)
	}
	for _, idx := range want {
		require.True(t, seen[idx], "brute-force match %d missing from Within result", idx)
	}
}

func TestWithinUnsortedIterYieldsSameSetAsWithin(t *testing.T) {
	pts := genPoints(80, 2, 5)
	tr := buildMutable(t, pts, 2, 4)
	m := metric.SquaredEuclideanFloat[float64]()
	query := []float64{20, 20}
	radius := 300.0

	want := Within[float64, float64, int](tr, m, query, radius)
	wantSet := make(map[int]float64, len(want))
	for _, p := range want {
		wantSet[p.Item] = p.Distance
	}

	it := WithinUnsortedIter[float64, float64, int](tr, m, query, radius)
	gotCount := 0
	for {
		p, ok := it.Next()
		if !ok {
			break
		}
		gotCount++
		d, present := wantSet[p.Item]
		if !present || d != p.Distance {
			t.Fatalf("iterator produced unexpected result %+v", p)
		}
	}
	if gotCount != len(want) {
		t.Fatalf("iterator yielded %d results, want %d", gotCount, len(want))
	}
}

func TestWithinUnsortedIterCloseStopsEarly(t *testing.T) {
	pts := genPoints(500, 2, 6)
	tr := buildImmutable(t, pts, 2, 16)
	m := metric.SquaredEuclideanFloat[float64]()

	it := WithinUnsortedIter[float64, float64, int](tr, m, []float64{0, 0}, 1e9)
	_, ok := it.Next()
	if !ok {
		t.Fatal("expected at least one result")
	}
	it.Close() // must not hang or panic even though the descent is mid-flight
}

func TestNearestNWithinRespectsBothCaps(t *testing.T) {
	pts := genPoints(200, 2, 7)
	tr := buildMutable(t, pts, 2, 5)
	m := metric.SquaredEuclideanFloat[float64]()
	query := []float64{50, 50}
	radius := 50.0

	got := NearestNWithin[float64, float64, int](tr, m, query, 3, radius)
	if len(got) > 3 {
		t.Fatalf("len(got) = %d, want <= 3", len(got))
	}
	for _, p := range got {
		if p.Distance >= radius {
			t.Fatalf("result %v does not satisfy strict radius %v", p, radius)
		}
	}
}

func TestBestNWithinOrdersByPayloadNotDistance(t *testing.T) {
	pts := genPoints(100, 2, 8)
	tr := buildImmutable(t, pts, 2, 8)
	m := metric.SquaredEuclideanFloat[float64]()
	query := []float64{50, 50}
	radius := 1e9 // everything qualifies; the heap decides purely on payload

	got := BestNWithin[float64, float64, int](tr, m, query, 5, radius)
	if len(got) != 5 {
		t.Fatalf("len(got) = %d, want 5", len(got))
	}

	var items []int
	for _, p := range got {
		items = append(items, p.Item)
	}
	sort.Ints(items)
	for i := 0; i < 5; i++ {
		if items[i] != i {
			t.Fatalf("kept items = %v, want the 5 smallest indices [0..4]", items)
		}
	}
}
