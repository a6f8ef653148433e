package quilt

import (
	"fmt"
	"testing"
)

// Render(1) on an unpruned tree must reproduce the source exactly.
func TestRenderRoundTrip(t *testing.T) {
	for _, size := range []struct{ w, h int }{
		{1, 1}, {2, 3}, {8, 8}, {7, 5}, {1, 9}, {9, 1}, {33, 17},
	} {
		t.Run(fmt.Sprintf("%dx%d", size.w, size.h), func(t *testing.T) {
			img := makeTestImage(size.w, size.h)
			tree := buildTest(t, img)

			out, err := tree.Render(1)
			if err != nil {
				t.Fatalf("Render: %v", err)
			}
			if !imagesEqual(img, out) {
				t.Fatalf("Render(1) does not reproduce the source image")
			}
		})
	}
}

func TestRenderScaleReplicates(t *testing.T) {
	img := makeTestImage(6, 4)
	tree := buildTest(t, img)

	const scale = 3
	out, err := tree.Render(scale)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got, want := out.Bounds().Dx(), 6*scale; got != want {
		t.Fatalf("rendered width %d, want %d", got, want)
	}
	for y := 0; y < 4*scale; y++ {
		for x := 0; x < 6*scale; x++ {
			if got, want := out.RGBAAt(x, y), img.RGBAAt(x/scale, y/scale); got != want {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestRenderInvalidScale(t *testing.T) {
	tree := buildTest(t, makeTestImage(4, 4))
	for _, scale := range []int{0, -1} {
		if _, err := tree.Render(scale); err != ErrInvalidScale {
			t.Fatalf("Render(%d): err = %v, want ErrInvalidScale", scale, err)
		}
	}
}

func TestRenderPruned(t *testing.T) {
	img := makeTestImage(12, 12)
	tree := buildTest(t, img)
	tree.Prune(64)

	out, err := tree.Render(1)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	// Every rendered pixel comes from the leaf covering it.
	walkLeaves(tree.Root(), func(n *Node) {
		want := n.Avg
		for y := n.UpperLeft.Y; y <= n.LowerRight.Y; y++ {
			for x := n.UpperLeft.X; x <= n.LowerRight.X; x++ {
				got := out.RGBAAt(x, y)
				if (Pixel{got.R, got.G, got.B, got.A}) != want {
					t.Fatalf("pixel (%d,%d) = %v, want leaf average %v", x, y, got, want)
				}
			}
		}
	})
}
