package immutable

// vebOrder computes a van Emde Boas layout permutation for a complete
// binary tree of height h (h+1 levels, node indices 1..2^(h+1)-1 in
// level order, 1-based as in tree.go's indexing): perm[levelOrderIndex]
// gives the physical storage slot a stem at that level-order index
// should occupy instead, grouping each recursive top/bottom half into a
// contiguous memory range so a root-to-leaf descent touches fewer cache
// lines than plain level order (spec §9 "alternate layout", an Open
// Question resolved in DESIGN.md: offered as an alternate storage order;
// neither BuildFromSlice nor ChildIndex uses it).
//
// perm[0] is unused (node indices are 1-based).
func vebOrder(h int) []int {
	size := 1 << (h + 1)
	perm := make([]int, size)
	next := 1

	// seq lays out, in vEB order, the subtree rooted at idx spanning
	// levels levels (levels == 1 means idx itself, with no children
	// considered part of this subtree).
	var seq func(idx, levels int)
	seq = func(idx, levels int) {
		if levels <= 1 {
			perm[idx] = next
			next++
			return
		}
		topLevels := (levels + 1) / 2
		bottomLevels := levels - topLevels
		seq(idx, topLevels)

		frontierWidth := 1 << topLevels
		base := idx << topLevels
		for j := 0; j < frontierWidth; j++ {
			seq(base+j, bottomLevels)
		}
	}
	seq(1, h+1)
	return perm
}
