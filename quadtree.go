package quilt

import "image"

// Node is a rectangle of the logical image plus the average color of
// the pixels that rectangle covered at construction time. UpperLeft
// and LowerRight are inclusive, in the tree's current (post-transform)
// coordinate space. A node with all four children nil is a leaf:
// either an original single pixel or a pruned uniform region.
type Node struct {
	UpperLeft  image.Point
	LowerRight image.Point
	Avg        Pixel

	NW, NE, SW, SE *Node
}

// IsLeaf reports whether n has no children.
func (n *Node) IsLeaf() bool {
	return n.NW == nil && n.NE == nil && n.SW == nil && n.SE == nil
}

// area returns the number of pixels covered by n's rectangle.
func (n *Node) area() int64 {
	w := int64(n.LowerRight.X-n.UpperLeft.X) + 1
	h := int64(n.LowerRight.Y-n.UpperLeft.Y) + 1
	return w * h
}

// QuadTree owns a tree of nodes partitioning a width x height image.
// Nodes are never shared between trees; Copy allocates a fresh tree.
type QuadTree struct {
	root   *Node
	width  int
	height int
}

// Width returns the logical image width the tree currently represents.
// Rotation swaps Width and Height.
func (t *QuadTree) Width() int { return t.width }

// Height returns the logical image height the tree currently represents.
func (t *QuadTree) Height() int { return t.height }

// Root returns the root node, or nil for a cleared tree. The returned
// subtree is still owned by t; callers must not mutate it.
func (t *QuadTree) Root() *Node { return t.root }

// Build constructs a tree over src with one leaf per pixel. Regions
// split at the floor midpoint of each axis, so an odd extra row or
// column lands in the upper/left children; 1-pixel-wide regions have
// no NE/SE children and 1-pixel-tall regions no SW/SE children.
func Build(src Image) (*QuadTree, error) {
	w, h := src.Width(), src.Height()
	if w <= 0 || h <= 0 {
		return nil, ErrEmptyImage
	}
	return &QuadTree{
		root:   buildNode(src, image.Pt(0, 0), image.Pt(w-1, h-1)),
		width:  w,
		height: h,
	}, nil
}

func buildNode(src Image, ul, lr image.Point) *Node {
	if ul == lr {
		return &Node{UpperLeft: ul, LowerRight: lr, Avg: src.PixelAt(ul.X, ul.Y)}
	}

	midX := (ul.X + lr.X) / 2
	midY := (ul.Y + lr.Y) / 2

	n := &Node{UpperLeft: ul, LowerRight: lr}
	n.NW = buildNode(src, ul, image.Pt(midX, midY))
	if midX+1 <= lr.X {
		n.NE = buildNode(src, image.Pt(midX+1, ul.Y), image.Pt(lr.X, midY))
	}
	if midY+1 <= lr.Y {
		n.SW = buildNode(src, image.Pt(ul.X, midY+1), image.Pt(midX, lr.Y))
	}
	if midX+1 <= lr.X && midY+1 <= lr.Y {
		n.SE = buildNode(src, image.Pt(midX+1, midY+1), lr)
	}
	n.Avg = combineAverage(n.NW, n.NE, n.SW, n.SE)
	return n
}

// combineAverage folds the stored averages of up to four children into
// an area-weighted mean with truncating per-channel division. It never
// rescans pixels, so the cost per node is constant. Averaging averages
// discards within-child variance; shallow nodes accumulate that
// rounding, which is the accepted price of O(1) construction.
func combineAverage(children ...*Node) Pixel {
	var sumR, sumG, sumB, sumA, total uint64
	for _, c := range children {
		if c == nil {
			continue
		}
		area := uint64(c.area())
		sumR += uint64(c.Avg.R) * area
		sumG += uint64(c.Avg.G) * area
		sumB += uint64(c.Avg.B) * area
		sumA += uint64(c.Avg.A) * area
		total += area
	}
	if total == 0 {
		return Pixel{}
	}
	return Pixel{
		R: uint8(sumR / total),
		G: uint8(sumG / total),
		B: uint8(sumB / total),
		A: uint8(sumA / total),
	}
}

// Copy returns a deep clone of t. The clone shares no nodes with t, so
// mutating one tree never affects the other.
func (t *QuadTree) Copy() *QuadTree {
	return &QuadTree{
		root:   copyNode(t.root),
		width:  t.width,
		height: t.height,
	}
}

func copyNode(n *Node) *Node {
	if n == nil {
		return nil
	}
	return &Node{
		UpperLeft:  n.UpperLeft,
		LowerRight: n.LowerRight,
		Avg:        n.Avg,
		NW:         copyNode(n.NW),
		NE:         copyNode(n.NE),
		SW:         copyNode(n.SW),
		SE:         copyNode(n.SE),
	}
}

// Clear resets t to an empty tree with zero dimensions. Child links
// are detached post-order so a stale Root alias cannot keep walking
// the old structure.
func (t *QuadTree) Clear() {
	clearNode(t.root)
	t.root = nil
	t.width = 0
	t.height = 0
}

func clearNode(n *Node) {
	if n == nil {
		return
	}
	clearNode(n.NW)
	clearNode(n.NE)
	clearNode(n.SW)
	clearNode(n.SE)
	n.NW, n.NE, n.SW, n.SE = nil, nil, nil, nil
}

// CountNodes returns the total number of nodes in the tree.
func (t *QuadTree) CountNodes() int { return countNodes(t.root) }

func countNodes(n *Node) int {
	if n == nil {
		return 0
	}
	return 1 + countNodes(n.NW) + countNodes(n.NE) + countNodes(n.SW) + countNodes(n.SE)
}

// CountLeaves returns the number of leaves, i.e. the number of
// rectangles Render will draw.
func (t *QuadTree) CountLeaves() int { return countLeaves(t.root) }

func countLeaves(n *Node) int {
	if n == nil {
		return 0
	}
	if n.IsLeaf() {
		return 1
	}
	return countLeaves(n.NW) + countLeaves(n.NE) + countLeaves(n.SW) + countLeaves(n.SE)
}
