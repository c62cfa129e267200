package graphics

import (
	"image"
	"image/color"

	"gridcaster/internal/mathutil"
)

// Base colours for procedural wall strips, cycled by strip index.
var placeholderPalette = []color.RGBA{
	{150, 150, 150, 255}, // stone
	{170, 70, 50, 255},   // brick
	{130, 90, 50, 255},   // wood
	{70, 120, 60, 255},   // moss
	{70, 90, 160, 255},   // slate
	{120, 70, 140, 255},  // amethyst
}

var (
	placeholderFloor   = color.RGBA{90, 85, 80, 255}
	placeholderCeiling = color.RGBA{60, 60, 90, 255}
	placeholderSprite  = color.RGBA{200, 160, 60, 255}
)

// PlaceholderWallAtlas draws a wall atlas of the given number of tile-wide
// strips: bricks for wall strips, a checkerboard for the floor strip and a
// plain grid for the ceiling strip.
func PlaceholderWallAtlas(tile, strips, floorIndex, ceilingIndex int) *Atlas {
	img := image.NewRGBA(image.Rect(0, 0, tile*strips, tile))
	for s := 0; s < strips; s++ {
		for y := 0; y < tile; y++ {
			for x := 0; x < tile; x++ {
				var c color.RGBA
				switch s {
				case floorIndex:
					c = checker(x, y, tile, placeholderFloor)
				case ceilingIndex:
					c = grid(x, y, tile, placeholderCeiling)
				default:
					c = brick(x, y, tile, placeholderPalette[s%len(placeholderPalette)])
				}
				img.SetRGBA(s*tile+x, y, c)
			}
		}
	}
	return &Atlas{img: img}
}

// PlaceholderSpriteAtlas draws one round pillar per frame on a transparent
// background, each frame a different shade.
func PlaceholderSpriteAtlas(tile, frames int) *Atlas {
	img := image.NewRGBA(image.Rect(0, 0, tile*frames, tile))
	r := float64(tile) / 4
	cx := float64(tile) / 2
	for f := 0; f < frames; f++ {
		base := placeholderPalette[(f+1)%len(placeholderPalette)]
		if f == 0 {
			base = placeholderSprite
		}
		for y := tile / 4; y < tile; y++ {
			for x := 0; x < tile; x++ {
				dx := float64(x) + 0.5 - cx
				if dx*dx > r*r {
					continue
				}
				// Lighter towards the left edge to read as a cylinder.
				light := 1.1 - 0.5*(dx+r)/(2*r)
				img.SetRGBA(f*tile+x, y, mathutil.ScaleRGB(base, light))
			}
		}
	}
	return &Atlas{img: img}
}

func brick(x, y, tile int, base color.RGBA) color.RGBA {
	rowH := max(1, tile/4)
	brickW := max(1, tile/2)
	row := y / rowH
	shift := 0
	if row%2 == 1 {
		shift = brickW / 2
	}
	if y%rowH == 0 || (x+shift)%brickW == 0 {
		return mathutil.ScaleRGB(base, 0.55)
	}
	// Mild per-brick variation.
	v := float64(((x+shift)/brickW+row*7)%5) * 0.04
	return mathutil.ScaleRGB(base, 0.9+v)
}

func checker(x, y, tile int, base color.RGBA) color.RGBA {
	half := max(1, tile/2)
	if (x/half+y/half)%2 == 0 {
		return base
	}
	return mathutil.ScaleRGB(base, 0.75)
}

func grid(x, y, tile int, base color.RGBA) color.RGBA {
	if x == 0 || y == 0 || x == tile/2 || y == tile/2 {
		return mathutil.ScaleRGB(base, 0.7)
	}
	return base
}
