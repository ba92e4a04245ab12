package leaf

import "kdforest/pkg/axis"

// quickselectNth reorders points/items in place (Hoare-style quickselect)
// so that the element at position k along dim holds the (k+1)-th
// smallest value: every element before k is <= points[k][dim], every
// element after is >=.
func quickselectNth[A axis.Coord, T any](points [][]A, items []T, dim, k int) {
	lo, hi := 0, len(points)-1
	for lo < hi {
		p := partitionLomuto(points, items, dim, lo, hi)
		switch {
		case k == p:
			return
		case k < p:
			hi = p - 1
		default:
			lo = p + 1
		}
	}
}

func partitionLomuto[A axis.Coord, T any](points [][]A, items []T, dim, lo, hi int) int {
	pivot := points[hi][dim]
	i := lo
	for j := lo; j < hi; j++ {
		if points[j][dim] < pivot {
			points[i], points[j] = points[j], points[i]
			items[i], items[j] = items[j], items[i]
			i++
		}
	}
	points[i], points[hi] = points[hi], points[i]
	items[i], items[hi] = items[hi], items[i]
	return i
}

// partition3 reorders points/items so that entries with points[i][dim] <
// pivotVal come first, followed by entries with points[i][dim] >=
// pivotVal (the partition invariant "right = >= split_val"). Returns the
// count of entries strictly less than pivotVal.
func partition3[A axis.Coord, T any](points [][]A, items []T, dim int, pivotVal A) int {
	i, j := 0, len(points)-1
	for i <= j {
		for i <= j && points[i][dim] < pivotVal {
			i++
		}
		for i <= j && points[j][dim] >= pivotVal {
			j--
		}
		if i < j {
			points[i], points[j] = points[j], points[i]
			items[i], items[j] = items[j], items[i]
			i++
			j--
		}
	}
	return i
}

// MedianSplit selects a split value along dim and partitions points/items
// in place so that the first returned-pivot entries are strictly less
// than the split value and the rest are >= it (spec §4.2 step 1-3,
// §4.3's duplicate-aware cut).
//
// target is the desired size of the left partition (⌊B/2⌋ for a mutable
// leaf split, or the left subtree's target point count for the bulk
// builder). When duplicates on dim prevent any entry from landing left of
// the target's value (pivot would be 0, collapsing the left side
// entirely) the split value is advanced to the smallest value strictly
// greater than the original pivot value, per the spec's tie-breaking
// fallback; the returned pivot then reflects that adjusted value.
//
// Returns ErrBucketExceeded if every entry shares the same coordinate on
// dim, making any split impossible.
func MedianSplit[A axis.Coord, T any](points [][]A, items []T, dim, target int) (splitVal A, pivot int, err error) {
	n := len(points)
	if target >= n {
		target = n - 1
	}
	if target < 0 {
		target = 0
	}
	quickselectNth(points, items, dim, target)
	splitVal = points[target][dim]
	pivot = partition3(points, items, dim, splitVal)

	if pivot == 0 && target > 0 {
		found := false
		var minGreater A
		for _, p := range points {
			if p[dim] > splitVal {
				if !found || p[dim] < minGreater {
					minGreater = p[dim]
					found = true
				}
			}
		}
		if !found {
			return splitVal, 0, ErrBucketExceeded
		}
		splitVal = minGreater
		pivot = partition3(points, items, dim, splitVal)
	}

	return splitVal, pivot, nil
}
