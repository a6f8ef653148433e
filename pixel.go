package quilt

import (
	"image"
	"image/draw"
	"math"
)

// Pixel is an 8-bit RGBA color value.
type Pixel struct {
	R, G, B, A uint8
}

// DistanceTo returns the Euclidean distance between p and o across all
// four channels. It is symmetric, non-negative and zero only for equal
// pixels; Prune compares it against the caller's tolerance.
func (p Pixel) DistanceTo(o Pixel) float64 {
	dr := float64(p.R) - float64(o.R)
	dg := float64(p.G) - float64(o.G)
	db := float64(p.B) - float64(o.B)
	da := float64(p.A) - float64(o.A)
	return math.Sqrt(dr*dr + dg*dg + db*db + da*da)
}

// Image is the read-only raster a tree is built from. Coordinates are
// 0-indexed with x in [0, Width) and y in [0, Height).
type Image interface {
	Width() int
	Height() int
	PixelAt(x, y int) Pixel
}

// FromImage copies src into an RGBA raster with bounds starting at
// (0,0) and returns it as an Image. The copy decouples the tree from
// whatever backing store src uses.
func FromImage(src image.Image) Image {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return &rgbaImage{img: dst}
}

type rgbaImage struct {
	img *image.RGBA
}

func (r *rgbaImage) Width() int  { return r.img.Rect.Dx() }
func (r *rgbaImage) Height() int { return r.img.Rect.Dy() }

func (r *rgbaImage) PixelAt(x, y int) Pixel {
	c := r.img.RGBAAt(x, y)
	return Pixel{R: c.R, G: c.G, B: c.B, A: c.A}
}
