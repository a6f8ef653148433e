package quilt

// Prune collapses every subtree whose leaves all lie within tolerance
// of that subtree root's stored average color, deepest subtrees first
// so prunable regions bubble up as high as possible. The comparison is
// inclusive (distance <= tolerance).
//
// Pruning criteria are only meaningful against the averages of an
// unpruned tree: a tree must not be pruned twice, nor may a copy of a
// pruned tree be pruned again.
func (t *QuadTree) Prune(tolerance float64) {
	pruneNode(t.root, tolerance)
}

func pruneNode(n *Node, tolerance float64) {
	if n == nil || n.IsLeaf() {
		return
	}

	pruneNode(n.NW, tolerance)
	pruneNode(n.NE, tolerance)
	pruneNode(n.SW, tolerance)
	pruneNode(n.SE, tolerance)

	if canPrune(n, n.Avg, tolerance) {
		clearNode(n.NW)
		clearNode(n.NE)
		clearNode(n.SW)
		clearNode(n.SE)
		n.NW, n.NE, n.SW, n.SE = nil, nil, nil, nil
	}
}

// canPrune reports whether every leaf under n is within tolerance of
// avg. Absent children are vacuously prunable.
func canPrune(n *Node, avg Pixel, tolerance float64) bool {
	if n == nil {
		return true
	}
	if n.IsLeaf() {
		return n.Avg.DistanceTo(avg) <= tolerance
	}
	return canPrune(n.NW, avg, tolerance) &&
		canPrune(n.NE, avg, tolerance) &&
		canPrune(n.SW, avg, tolerance) &&
		canPrune(n.SE, avg, tolerance)
}
