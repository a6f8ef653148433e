package quilt

import "image"

// FlipHorizontal mirrors the tree across the vertical centerline in
// place: no nodes are allocated or freed, only pointers and x-ranges
// change. After flipping, the rule that only 1-pixel-wide rectangles
// may lack eastern children no longer holds; every rectangle is still
// geometrically valid and the leaves still tile the image.
func (t *QuadTree) FlipHorizontal() {
	flipNode(t.root, t.width)
}

func flipNode(n *Node, width int) {
	if n == nil {
		return
	}

	// Mirror this node's x-range, keeping coordinates in increasing
	// order: the old right edge becomes the new left edge.
	n.UpperLeft.X, n.LowerRight.X = width-1-n.LowerRight.X, width-1-n.UpperLeft.X

	n.NW, n.NE = n.NE, n.NW
	n.SW, n.SE = n.SE, n.SW

	flipNode(n.NW, width)
	flipNode(n.NE, width)
	flipNode(n.SW, width)
	flipNode(n.SE, width)
}

// RotateCCW rotates the rendered image 90 degrees counter-clockwise in
// place and swaps the tree's logical width and height. Each point maps
// as (x, y) -> (y, W-1-x) into the new H x W space; applying that rigid
// map to every node's own rectangle keeps parents and children
// consistent without threading bounding boxes through the recursion.
// Quadrant contents move one corner counter-clockwise, so the new NW
// child is the old NE, and as with FlipHorizontal the null-child
// pattern of 1-pixel strips is relaxed afterwards.
func (t *QuadTree) RotateCCW() {
	rotateNode(t.root, t.width)
	t.width, t.height = t.height, t.width
}

func rotateNode(n *Node, width int) {
	if n == nil {
		return
	}

	ul, lr := n.UpperLeft, n.LowerRight
	n.UpperLeft = image.Pt(ul.Y, width-1-lr.X)
	n.LowerRight = image.Pt(lr.Y, width-1-ul.X)

	n.NW, n.NE, n.SE, n.SW = n.NE, n.SE, n.SW, n.NW

	rotateNode(n.NW, width)
	rotateNode(n.NE, width)
	rotateNode(n.SW, width)
	rotateNode(n.SE, width)
}
