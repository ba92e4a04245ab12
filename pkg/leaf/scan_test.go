package leaf

import (
	"testing"

	"kdforest/pkg/metric"
)

func TestDistancesAoSMatchesDirectComputation(t *testing.T) {
	b := NewBucket[float64, string](4)
	b.Add([]float64{0, 0}, "origin")
	b.Add([]float64{3, 4}, "pythagorean")

	m := metric.SquaredEuclideanFloat[float64]()
	dists := DistancesAoS[float64, float64, string](b, []float64{0, 0}, m)
	if len(dists) != 2 {
		t.Fatalf("len(dists) = %d, want 2", len(dists))
	}
	if dists[0] != 0 {
		t.Fatalf("dists[0] = %v, want 0", dists[0])
	}
	if dists[1] != 25 {
		t.Fatalf("dists[1] = %v, want 25", dists[1])
	}
}

func TestDistancesSoAMatchesAoSForSameData(t *testing.T) {
	points := [][]float64{{0, 0}, {3, 4}, {1, 1}}
	items := []string{"a", "b", "c"}

	bucket := NewBucket[float64, string](4)
	soa := NewSoA[float64, string](2, 4)
	for i, p := range points {
		bucket.Add(append([]float64(nil), p...), items[i])
		soa.Set(i, p, items[i])
	}

	m := metric.SquaredEuclideanFloat[float64]()
	query := []float64{0, 0}

	aos := DistancesAoS[float64, float64, string](bucket, query, m)
	rows := DistancesSoA[float64, float64, string](soa, query, m)

	if len(aos) != len(rows) {
		t.Fatalf("length mismatch: %d vs %d", len(aos), len(rows))
	}
	for i := range aos {
		if aos[i] != rows[i] {
			t.Fatalf("distance mismatch at %d: AoS=%v SoA=%v", i, aos[i], rows[i])
		}
	}
}
