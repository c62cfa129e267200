// Package render turns a camera, a grid and a sprite list into a frame.
//
// Everything here draws into a plain RGBA buffer at the projection plane
// resolution. Frontends (ebiten window, terminal) upload or scale it.
package render

import (
	"image"
	"image/color"
)

// Texture is a pixel surface that walls, floors and sprites sample from.
type Texture interface {
	Size() (width, height int)
	Texel(x, y int) color.RGBA
}

// Frame is the software framebuffer.
type Frame struct {
	Width, Height int
	img           *image.RGBA
}

// NewFrame allocates a frame of the given size.
func NewFrame(width, height int) *Frame {
	return &Frame{
		Width:  width,
		Height: height,
		img:    image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// Image exposes the frame as an image without copying.
func (f *Frame) Image() *image.RGBA {
	return f.img
}

// Pix returns the raw RGBA bytes, row-major, 4 bytes per pixel.
func (f *Frame) Pix() []byte {
	return f.img.Pix
}

// Set writes one pixel. Out-of-range writes are dropped.
func (f *Frame) Set(x, y int, c color.RGBA) {
	if x < 0 || y < 0 || x >= f.Width || y >= f.Height {
		return
	}
	i := y*f.img.Stride + x*4
	p := f.img.Pix[i : i+4 : i+4]
	p[0], p[1], p[2], p[3] = c.R, c.G, c.B, 255
}

// At reads one pixel.
func (f *Frame) At(x, y int) color.RGBA {
	return f.img.RGBAAt(x, y)
}

// Fill paints the whole frame.
func (f *Frame) Fill(c color.RGBA) {
	c.A = 255
	pix := f.img.Pix
	for i := 0; i < len(pix); i += 4 {
		pix[i], pix[i+1], pix[i+2], pix[i+3] = c.R, c.G, c.B, c.A
	}
}

// FillColumn paints rows [y0, y1) of column x.
func (f *Frame) FillColumn(x, y0, y1 int, c color.RGBA) {
	y0 = max(y0, 0)
	y1 = min(y1, f.Height)
	for y := y0; y < y1; y++ {
		f.Set(x, y, c)
	}
}
