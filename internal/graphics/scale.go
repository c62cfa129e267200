package graphics

import (
	"image"

	"golang.org/x/image/draw"
)

// ScaleNearest resizes src into a w x h RGBA image with nearest-neighbour
// sampling, reusing dst when it already has that size.
func ScaleNearest(dst *image.RGBA, src image.Image, w, h int) *image.RGBA {
	if dst == nil || dst.Rect.Dx() != w || dst.Rect.Dy() != h {
		dst = image.NewRGBA(image.Rect(0, 0, w, h))
	}
	draw.NearestNeighbor.Scale(dst, dst.Rect, src, src.Bounds(), draw.Src, nil)
	return dst
}
