package mathutil

import "image/color"

// IntMin returns the smaller of two ints (search: int-math).
func IntMin(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// IntMax returns the larger of two ints (search: int-math).
func IntMax(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// IntClamp limits v to [lo, hi] (search: int-math).
func IntClamp(v, lo, hi int) int {
	return IntMax(lo, IntMin(v, hi))
}

// ClampByte saturates v into a colour channel.
func ClampByte(v int) uint8 {
	return uint8(IntClamp(v, 0, 255))
}

// RGB converts a config colour triple into an opaque colour.
func RGB(c [3]int) color.RGBA {
	return color.RGBA{R: ClampByte(c[0]), G: ClampByte(c[1]), B: ClampByte(c[2]), A: 255}
}

// ScaleRGB multiplies the colour channels of c by f, saturating at 255.
// Alpha is kept.
func ScaleRGB(c color.RGBA, f float64) color.RGBA {
	return color.RGBA{
		R: ClampByte(int(float64(c.R) * f)),
		G: ClampByte(int(float64(c.G) * f)),
		B: ClampByte(int(float64(c.B) * f)),
		A: c.A,
	}
}
