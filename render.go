package quilt

import (
	"image"
	"image/color"
)

// Render draws every leaf rectangle, scaled by the integer factor
// scale, into a fresh RGBA canvas of size (Width*scale, Height*scale).
// Upscaling replicates pixels with no interpolation. Internal nodes
// are skipped, which is why pruning changes the output. Target pixels
// outside the canvas are silently dropped.
func (t *QuadTree) Render(scale int) (*image.RGBA, error) {
	if scale < 1 {
		return nil, ErrInvalidScale
	}
	canvas := image.NewRGBA(image.Rect(0, 0, t.width*scale, t.height*scale))
	renderNode(t.root, scale, canvas)
	return canvas, nil
}

func renderNode(n *Node, scale int, canvas *image.RGBA) {
	if n == nil {
		return
	}
	if !n.IsLeaf() {
		renderNode(n.NW, scale, canvas)
		renderNode(n.NE, scale, canvas)
		renderNode(n.SW, scale, canvas)
		renderNode(n.SE, scale, canvas)
		return
	}

	b := canvas.Bounds()
	c := color.RGBA{R: n.Avg.R, G: n.Avg.G, B: n.Avg.B, A: n.Avg.A}
	for y := n.UpperLeft.Y * scale; y < (n.LowerRight.Y+1)*scale; y++ {
		if y < b.Min.Y || y >= b.Max.Y {
			continue
		}
		for x := n.UpperLeft.X * scale; x < (n.LowerRight.X+1)*scale; x++ {
			if x < b.Min.X || x >= b.Max.X {
				continue
			}
			canvas.SetRGBA(x, y, c)
		}
	}
}
