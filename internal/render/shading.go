package render

import (
	"image/color"

	"gridcaster/internal/mathutil"
)

// Shading holds the brightness rules shared by walls, floors and sprites.
type Shading struct {
	CeilingShade  float64
	Fog           bool
	FogStart      float64 // tiles
	FogEnd        float64 // tiles
	MinBrightness float64
}

// Brightness returns the fog multiplier for distance d tiles: 1 before
// FogStart, falling linearly to MinBrightness at FogEnd and beyond.
func (s Shading) Brightness(d float64) float64 {
	if !s.Fog || d <= s.FogStart {
		return 1
	}
	if d >= s.FogEnd {
		return s.MinBrightness
	}
	t := (d - s.FogStart) / (s.FogEnd - s.FogStart)
	return mathutil.Clamp(1-t*(1-s.MinBrightness), s.MinBrightness, 1)
}

// Shade scales a colour by b in [0, 1].
func Shade(c color.RGBA, b float64) color.RGBA {
	if b >= 1 {
		return c
	}
	if b <= 0 {
		return color.RGBA{A: c.A}
	}
	return color.RGBA{
		R: uint8(float64(c.R) * b),
		G: uint8(float64(c.G) * b),
		B: uint8(float64(c.B) * b),
		A: c.A,
	}
}
